package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"q.log/cgcut/gomory"
)

// Config is the command configuration. Values come from flags, then
// CGCUT_* environment variables, then the optional config file.
type Config struct {
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
	MaxCuts       int     `mapstructure:"max_cuts"`
	FullDual      bool    `mapstructure:"full_dual"`
	LPOnly        bool    `mapstructure:"lp_only"`
	Format        string  `mapstructure:"format"`
	LogLevel      string  `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tolerance", gomory.DefaultTolerance)
	v.SetDefault("max_iterations", 0)
	v.SetDefault("max_cuts", 0)
	v.SetDefault("full_dual", false)
	v.SetDefault("lp_only", false)
	v.SetDefault("format", "")
	v.SetDefault("log_level", "info")
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"tolerance":      "tolerance",
	"max-iterations": "max_iterations",
	"max-cuts":       "max_cuts",
	"full-dual":      "full_dual",
	"lp-only":        "lp_only",
	"format":         "format",
	"log-level":      "log_level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return errors.Wrapf(err, "binding flag %s", name)
		}
	}

	return nil
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("CGCUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Tolerance < 0 || cfg.Tolerance >= 0.5 {
		return errors.Errorf("tolerance %v must be in [0, 0.5)", cfg.Tolerance)
	}
	if cfg.MaxIterations < 0 {
		return errors.Errorf("max_iterations %d is negative", cfg.MaxIterations)
	}
	if cfg.MaxCuts < 0 {
		return errors.Errorf("max_cuts %d is negative", cfg.MaxCuts)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	return nil
}

func setupLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// validated in loadConfig
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
