// Package config loads py3wiki settings. Precedence, highest first: command-line
// flags, PY3WIKI_* environment variables, the config file, built-in defaults.
//
// The config file is --config if given, otherwise .py3wiki.yaml in the working
// directory when present.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/frederic-klein/py3wiki/internal/repoquery"
	"github.com/frederic-klein/py3wiki/internal/wiki"
)

// Keys, also used as flag names.
const (
	KeyURL         = "url"
	KeyTextarea    = "textarea"
	KeyCapability  = "capability"
	KeyRepoquery   = "repoquery"
	KeyOverrides   = "overrides"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyHTTPTimeout = "http-timeout"
	KeyHTTPRetries = "http-retries"
)

const (
	envPrefix      = "PY3WIKI"
	configName     = ".py3wiki"
	defaultTimeout = 30 * time.Second
)

// Config holds the settings of one run.
type Config struct {
	URL         string        // edit page of the wiki section
	Textarea    string        // name of the edit box on that page
	Capability  string        // what candidate subpackages must require
	Repoquery   string        // package-query command, split shell-style
	Overrides   string        // optional YAML file of extra module overrides
	LogLevel    string
	LogFormat   string
	HTTPTimeout time.Duration
	HTTPRetries int
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyURL, wiki.DefaultURL)
	v.SetDefault(KeyTextarea, wiki.DefaultTextarea)
	v.SetDefault(KeyCapability, repoquery.DefaultCapability)
	v.SetDefault(KeyRepoquery, repoquery.DefaultCommand)
	v.SetDefault(KeyOverrides, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyHTTPTimeout, defaultTimeout)
	v.SetDefault(KeyHTTPRetries, 0)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// RegisterFlags adds one flag per key to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyURL, wiki.DefaultURL, "Wiki edit page holding the table")
	fs.String(KeyTextarea, wiki.DefaultTextarea, "Name of the edit box on the page")
	fs.String(KeyCapability, repoquery.DefaultCapability, "Capability candidate subpackages require")
	fs.String(KeyRepoquery, repoquery.DefaultCommand, "Package query command")
	fs.String(KeyOverrides, "", "YAML file with extra subpackage->module overrides")
	fs.String(KeyLogLevel, "info", "Log level (trace, debug, info, warn, error)")
	fs.String(KeyLogFormat, "auto", "Log format (auto, console, json)")
	fs.Duration(KeyHTTPTimeout, defaultTimeout, "Timeout for fetching the wiki page")
	fs.Int(KeyHTTPRetries, 0, "Retries for fetching the wiki page")
}

// Load reads the config file (if any) and resolves the final settings.
// Flags in fs override everything else; only flags the user set count.
func Load(v *viper.Viper, configFile string, fs *pflag.FlagSet) (*Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		URL:         v.GetString(KeyURL),
		Textarea:    v.GetString(KeyTextarea),
		Capability:  v.GetString(KeyCapability),
		Repoquery:   v.GetString(KeyRepoquery),
		Overrides:   v.GetString(KeyOverrides),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		HTTPRetries: v.GetInt(KeyHTTPRetries),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	switch {
	case c.URL == "":
		return fmt.Errorf("invalid config: %s is empty", KeyURL)
	case c.Capability == "":
		return fmt.Errorf("invalid config: %s is empty", KeyCapability)
	case strings.TrimSpace(c.Repoquery) == "":
		return fmt.Errorf("invalid config: %s is empty", KeyRepoquery)
	case c.HTTPTimeout < 0:
		return fmt.Errorf("invalid config: %s is negative", KeyHTTPTimeout)
	case c.HTTPRetries < 0:
		return fmt.Errorf("invalid config: %s is negative", KeyHTTPRetries)
	}
	return nil
}
