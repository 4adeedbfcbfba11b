package config

import (
	"fmt"
	"os"

	"github.com/bondit-dk/dnscheck/log"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config is the top-level application configuration
type Config struct {
	Log      log.Config     `yaml:"log"`
	Resolver ResolverConfig `yaml:"resolver"`
	TLSA     TLSAConfig     `yaml:"tlsa"`
	Fallback FallbackConfig `yaml:"fallback"`
}

// ValueLogger is implemented by config sections which log their effective values
type ValueLogger interface {
	LogValues(logger *logrus.Entry)
}

// LogConfig writes the effective configuration to the log
func (cfg *Config) LogConfig(logger *logrus.Entry) {
	logger.Info("resolver:")
	cfg.Resolver.LogValues(logger)

	logger.Info("tlsa:")
	cfg.TLSA.LogValues(logger)

	logger.Infof("fallback enabled = %t", cfg.Fallback.Enabled)
}

// ResolverConfig configures the DNS query client
type ResolverConfig struct {
	// Nameserver in host:port form. Empty: first nameserver from /etc/resolv.conf,
	// or a public resolver if that file is unusable.
	Nameserver string   `yaml:"nameserver"`
	Timeout    Duration `yaml:"timeout" default:"5s"`
	Attempts   uint     `yaml:"attempts" default:"3"`
}

// LogValues implements `ValueLogger`.
func (c *ResolverConfig) LogValues(logger *logrus.Entry) {
	if c.Nameserver != "" {
		logger.Infof("nameserver = %s", c.Nameserver)
	} else {
		logger.Info("nameserver from resolv.conf")
	}

	logger.Infof("timeout = %s", c.Timeout)
	logger.Infof("attempts = %d", c.Attempts)
}

// TLSAConfig configures TLSA/DANE validation
type TLSAConfig struct {
	Port     uint16   `yaml:"port" default:"443"`
	Protocol string   `yaml:"protocol" default:"tcp"`
	Timeout  Duration `yaml:"timeout" default:"10s"`
	// QuickCheckTimeout bounds the TLSA side check attached to chain validation results
	QuickCheckTimeout Duration `yaml:"quickCheckTimeout" default:"5s"`
}

// LogValues implements `ValueLogger`.
func (c *TLSAConfig) LogValues(logger *logrus.Entry) {
	logger.Infof("port = %d", c.Port)
	logger.Infof("protocol = %s", c.Protocol)
	logger.Infof("timeout = %s", c.Timeout)
	logger.Infof("quickCheckTimeout = %s", c.QuickCheckTimeout)
}

// FallbackConfig configures the subdomain to root domain retry behavior
type FallbackConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// LoadConfig reads the config file from path. A missing file is not an
// error if mustExist is false: defaults are used instead.
func LoadConfig(path string, mustExist bool) (*Config, error) {
	cfg := Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			if derr := defaults.Set(&cfg); derr != nil {
				return nil, fmt.Errorf("can't apply default values: %w", derr)
			}

			return &cfg, nil
		}

		return nil, fmt.Errorf("can't read config file '%s': %w", path, err)
	}

	if err := unmarshalConfig(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func unmarshalConfig(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("wrong file structure: %w", err)
	}

	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("can't apply default values: %w", err)
	}

	return nil
}
