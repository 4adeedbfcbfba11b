package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bondit-dk/dnscheck/config"
	"github.com/bondit-dk/dnscheck/evt"
	"github.com/bondit-dk/dnscheck/log"
	"github.com/bondit-dk/dnscheck/metrics"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"

	configPath string
	cfg        *config.Config
)

//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Use:   "dnscheck",
	Short: "dnscheck validates the DNSSEC chain of trust and TLSA/DANE associations",
	Long: `dnscheck checks whether a domain is securely delegated: signed with
DNSKEY records, chained via a matching DS record and, optionally, pinned
with TLSA/DANE certificate associations.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

//nolint:gochecknoinits
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "path to config file")

	rootCmd.AddCommand(NewValidateCommand(), NewVersionCommand())
}

func initConfig() {
	var err error

	cfg, err = config.LoadConfig(configPath, false)
	if err != nil {
		log.Log().Fatalf("can't load config: %v", err)
	}

	log.ConfigureLogger(cfg.Log)

	if log.Log().IsLevelEnabled(logrus.DebugLevel) {
		cfg.LogConfig(log.PrefixedLog("config"))
	}

	metrics.StartCollection()
	evt.Bus().Publish(evt.ApplicationStarted, version, buildTime)
}

// Execute runs the root command, on error the program exits with code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
