package cmd

import (
	"bytes"
	"time"

	"github.com/miekg/dns"
	"github.com/spf13/cobra"

	"github.com/bondit-dk/dnscheck/config"
	"github.com/bondit-dk/dnscheck/dnsclient"
	"github.com/bondit-dk/dnscheck/helpertest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Validate command", func() {
	var (
		mock *dnsclient.MockUDPServer
		out  *bytes.Buffer
	)

	newCommand := func(args ...string) *cobra.Command {
		c := NewValidateCommand()
		c.SetOut(out)
		c.SetArgs(args)

		return c
	}

	// answers DNSKEY and DS queries for the given zones, everything else
	// (including the TLSA side check) gets an empty answer
	zoneAnswers := func(zones map[string][]dns.RR) func(*dns.Msg) *dns.Msg {
		return func(request *dns.Msg) *dns.Msg {
			msg := new(dns.Msg)
			question := request.Question[0]

			for _, rr := range zones[question.Name] {
				if rr.Header().Rrtype == question.Qtype {
					msg.Answer = append(msg.Answer, rr)
				}
			}

			return msg
		}
	}

	BeforeEach(func() {
		out = new(bytes.Buffer)
		mock = dnsclient.NewMockUDPServer()
	})

	AfterEach(func() {
		mock.Close()
	})

	startWithZones := func(zones map[string][]dns.RR) {
		mock.WithAnswerFn(zoneAnswers(zones))
		addr := mock.Start()

		cfg = &config.Config{
			Resolver: config.ResolverConfig{
				Nameserver: addr,
				Timeout:    config.Duration(2 * time.Second),
				Attempts:   1,
			},
			TLSA: config.TLSAConfig{
				Port:              443,
				Protocol:          "tcp",
				Timeout:           config.Duration(time.Second),
				QuickCheckTimeout: config.Duration(time.Second),
			},
			Fallback: config.FallbackConfig{Enabled: true},
		}
	}

	It("should print a valid result for a correctly delegated domain", func() {
		key := helpertest.GenerateDNSKEY("bondit.dk")
		ds := helpertest.MatchingDS(key)

		startWithZones(map[string][]dns.RR{
			"bondit.dk.": {key, ds},
		})

		Expect(validateDomains(newCommand(), []string{"bondit.dk"})).Should(Succeed())

		Expect(out.String()).Should(ContainSubstring(`"status": "valid"`))
		Expect(out.String()).Should(ContainSubstring(`"domain": "bondit.dk"`))
	})

	It("should fall back to the root domain for an invalid subdomain", func() {
		subKey := helpertest.GenerateDNSKEY("www.bondit.dk")
		rootKey := helpertest.GenerateDNSKEY("bondit.dk")
		rootDS := helpertest.MatchingDS(rootKey)

		startWithZones(map[string][]dns.RR{
			"www.bondit.dk.": {subKey},
			"bondit.dk.":     {rootKey, rootDS},
		})

		Expect(validateDomains(newCommand(), []string{"www.bondit.dk"})).Should(Succeed())

		Expect(out.String()).Should(ContainSubstring(`"fallback_used": true`))
		Expect(out.String()).Should(ContainSubstring(`"validated_domain": "bondit.dk"`))
		Expect(out.String()).Should(ContainSubstring(`"status": "valid"`))
	})

	It("should keep the subdomain verdict with --no-fallback", func() {
		subKey := helpertest.GenerateDNSKEY("www.bondit.dk")

		startWithZones(map[string][]dns.RR{
			"www.bondit.dk.": {subKey},
		})

		command := newCommand()
		Expect(command.Flags().Set("no-fallback", "true")).Should(Succeed())

		Expect(validateDomains(command, []string{"www.bondit.dk"})).Should(Succeed())

		Expect(out.String()).Should(ContainSubstring(`"status": "invalid"`))
		Expect(out.String()).ShouldNot(ContainSubstring(`"fallback_used"`))
	})

	It("should attach the analysis with --detailed", func() {
		key := helpertest.GenerateDNSKEY("bondit.dk")
		ds := helpertest.MatchingDS(key)

		startWithZones(map[string][]dns.RR{
			"bondit.dk.": {key, ds},
		})

		command := newCommand()
		Expect(command.Flags().Set("detailed", "true")).Should(Succeed())

		Expect(validateDomains(command, []string{"bondit.dk"})).Should(Succeed())

		Expect(out.String()).Should(ContainSubstring(`"detailed_analysis"`))
		Expect(out.String()).Should(ContainSubstring(`"ECDSAP256SHA256"`))
	})

	It("should normalize URL input before validating", func() {
		key := helpertest.GenerateDNSKEY("bondit.dk")
		ds := helpertest.MatchingDS(key)

		startWithZones(map[string][]dns.RR{
			"bondit.dk.": {key, ds},
		})

		Expect(validateDomains(newCommand(), []string{"https://Bondit.DK/path"})).Should(Succeed())

		Expect(out.String()).Should(ContainSubstring(`"domain": "bondit.dk"`))
	})

	It("should report malformed input as an error", func() {
		startWithZones(map[string][]dns.RR{})

		err := validateDomains(newCommand(), []string{"invalid..domain"})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("invalid domain 'invalid..domain'"))
	})

	It("should preserve input order for bulk validation", func() {
		firstKey := helpertest.GenerateDNSKEY("first.dk")
		firstDS := helpertest.MatchingDS(firstKey)

		startWithZones(map[string][]dns.RR{
			"first.dk.": {firstKey, firstDS},
		})

		Expect(validateDomains(newCommand(), []string{"first.dk", "second.dk"})).Should(Succeed())

		firstIdx := bytes.Index(out.Bytes(), []byte(`"domain": "first.dk"`))
		secondIdx := bytes.Index(out.Bytes(), []byte(`"domain": "second.dk"`))
		Expect(firstIdx).Should(BeNumerically(">=", 0))
		Expect(secondIdx).Should(BeNumerically(">", firstIdx))
	})
})
