package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/bondit-dk/dnscheck/dnsclient"
	"github.com/bondit-dk/dnscheck/domain"
	"github.com/bondit-dk/dnscheck/model"
	"github.com/bondit-dk/dnscheck/tlsa"
	"github.com/bondit-dk/dnscheck/validator"
)

// NewValidateCommand creates new command instance
func NewValidateCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "validate <domain> [<domain>...]",
		Args:  cobra.MinimumNArgs(1),
		Short: "validates the DNSSEC chain of trust for one or more domains",
		RunE:  validateDomains,
	}

	c.Flags().Bool("detailed", false, "attach the detailed analysis to each result")
	c.Flags().Bool("tlsa", false, "run the full TLSA/DANE validation instead of the chain of trust check")
	c.Flags().Bool("no-fallback", false, "disable the root domain fallback for subdomains")

	return c
}

type validateOptions struct {
	detailed bool
	tlsaOnly bool
	fallback bool
}

func validateDomains(cmd *cobra.Command, args []string) error {
	detailed, _ := cmd.Flags().GetBool("detailed")
	tlsaOnly, _ := cmd.Flags().GetBool("tlsa")
	noFallback, _ := cmd.Flags().GetBool("no-fallback")

	opts := validateOptions{
		detailed: detailed,
		tlsaOnly: tlsaOnly,
		fallback: cfg.Fallback.Enabled && !noFallback,
	}

	client := dnsclient.New(cfg.Resolver)
	fetcher := tlsa.NewTLSFetcher(cfg.TLSA.Timeout.ToDuration())
	tlsaValidator := tlsa.New(client, fetcher, cfg.TLSA)
	chainValidator := validator.New(client, tlsaValidator, cfg.TLSA.QuickCheckTimeout.ToDuration())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// validations run concurrently, the output preserves input order
	outputs := make([]any, len(args))

	var (
		wg   sync.WaitGroup
		mux  sync.Mutex
		errs *multierror.Error
	)

	for i, input := range args {
		wg.Add(1)

		go func(idx int, input string) {
			defer wg.Done()

			out, err := validateOne(ctx, input, opts, chainValidator, tlsaValidator)
			if err != nil {
				mux.Lock()
				errs = multierror.Append(errs, err)
				mux.Unlock()

				return
			}

			outputs[idx] = out
		}(i, input)
	}

	wg.Wait()

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	for _, out := range outputs {
		if out == nil {
			continue
		}

		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("can't encode result: %w", err)
		}
	}

	return errs.ErrorOrNil()
}

func validateOne(ctx context.Context, input string, opts validateOptions,
	chainValidator *validator.Validator, tlsaValidator *tlsa.Validator,
) (any, error) {
	domainName, inputType := domain.NormalizeInput(input)
	if inputType == domain.InputTypeInvalid {
		return nil, fmt.Errorf("invalid domain '%s'", input)
	}

	if opts.tlsaOnly {
		if opts.detailed {
			return tlsaValidator.ValidateDetailed(ctx, domainName), nil
		}

		return tlsaValidator.Validate(ctx, domainName), nil
	}

	var result *model.ValidationResult
	if opts.fallback {
		result = chainValidator.ValidateWithFallback(ctx, domainName, input).Final
	} else {
		result = chainValidator.Validate(ctx, domainName)
	}

	if opts.detailed {
		return &model.DetailedResult{
			ValidationResult: *result,
			Analysis:         chainValidator.Analyze(result),
		}, nil
	}

	return result, nil
}
