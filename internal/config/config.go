package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/kmadof/mediare/internal/naming"
	"github.com/kmadof/mediare/internal/resolver"
	"github.com/kmadof/mediare/internal/solution"
)

// Environment variables read by ApplyEnv
const (
	EnvConfig          = "MEDIARE_CONFIG"
	EnvSourceExtension = "MEDIARE_SOURCE_EXTENSION"
	EnvSkipSuffixes    = "MEDIARE_SKIP_SUFFIXES"
	EnvReplaceEnding   = "MEDIARE_REPLACE_ENDING"
	EnvWorkers         = "MEDIARE_WORKERS"
	EnvLogLevel        = "MEDIARE_LOG_LEVEL"
)

// DefaultFile is the config file looked up in the working directory
const DefaultFile = "mediare.toml"

var (
	ErrInvalidExtension  = errors.New("source extension must start with '.'")
	ErrInvalidConvention = errors.New("convention needs endings and a companion suffix")
	ErrInvalidWorkers    = errors.New("workers must be >= 0")
	ErrInvalidLogLevel   = errors.New("unknown log level")
)

// Convention is one naming rule of the config file
//
//	[[convention]]
//	endings = ["Command", "Query", "Request"]
//	companion = "Handler"
type Convention struct {
	Endings   []string `toml:"endings"`
	Companion string   `toml:"companion"`
}

// Config is the static configuration of the resolver and its hosts
type Config struct {
	SourceExtension string       `toml:"source_extension"`
	SkipSuffixes    []string     `toml:"skip_suffixes"`
	ReplaceEnding   bool         `toml:"replace_ending"`
	Conventions     []Convention `toml:"convention"`
	ExcludeDirs     []string     `toml:"exclude_dirs"`
	Workers         int          `toml:"workers"`
	LogLevel        string       `toml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	def := naming.Default()

	cfg := &Config{
		SourceExtension: def.SourceExtension,
		SkipSuffixes:    append([]string(nil), resolver.DefaultSkipSuffixes...),
		ExcludeDirs:     append([]string(nil), solution.DefaultExcludeDirs...),
		Workers:         1,
		LogLevel:        "info",
	}
	for _, rule := range def.Rules {
		cfg.Conventions = append(cfg.Conventions, Convention{
			Endings:   append([]string(nil), rule.Endings...),
			Companion: rule.Companion,
		})
	}
	return cfg
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	cfg.merge(&file, md)

	return cfg, nil
}

// merge copies the keys defined in the file over c. A [[convention]] list
// replaces the default rules as a whole.
func (c *Config) merge(file *Config, md toml.MetaData) {
	if md.IsDefined("source_extension") {
		c.SourceExtension = file.SourceExtension
	}
	if md.IsDefined("skip_suffixes") {
		c.SkipSuffixes = nonNil(file.SkipSuffixes)
	}
	if md.IsDefined("replace_ending") {
		c.ReplaceEnding = file.ReplaceEnding
	}
	if md.IsDefined("convention") {
		c.Conventions = file.Conventions
	}
	if md.IsDefined("exclude_dirs") {
		c.ExcludeDirs = nonNil(file.ExcludeDirs)
	}
	if md.IsDefined("workers") {
		c.Workers = file.Workers
	}
	if md.IsDefined("log_level") {
		c.LogLevel = file.LogLevel
	}
}

// LoadEnv loads a .env file from the working directory, if present, then
// reads the config file named by MEDIARE_CONFIG (or path when the variable
// is unset) and applies environment overrides.
func LoadEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	if envPath := strings.TrimSpace(os.Getenv(EnvConfig)); envPath != "" {
		path = envPath
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvSourceExtension)); v != "" {
		c.SourceExtension = v
	}
	if v, ok := os.LookupEnv(EnvSkipSuffixes); ok {
		c.SkipSuffixes = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvReplaceEnding)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReplaceEnding, err)
		}
		c.ReplaceEnding = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the configuration for values the resolver cannot use
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.SourceExtension, ".") || len(c.SourceExtension) < 2 {
		return fmt.Errorf("%w: %q", ErrInvalidExtension, c.SourceExtension)
	}
	for i, conv := range c.Conventions {
		if conv.Companion == "" || len(conv.Endings) == 0 {
			return fmt.Errorf("%w: convention %d", ErrInvalidConvention, i+1)
		}
		for _, e := range conv.Endings {
			if strings.TrimSpace(e) == "" {
				return fmt.Errorf("%w: convention %d has an empty ending", ErrInvalidConvention, i+1)
			}
		}
	}
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Convention builds the naming convention described by the config
func (c *Config) Convention() naming.Convention {
	conv := naming.Convention{
		SourceExtension: c.SourceExtension,
		ReplaceEnding:   c.ReplaceEnding,
	}
	for _, rule := range c.Conventions {
		conv.Rules = append(conv.Rules, naming.Rule{
			Endings:   rule.Endings,
			Companion: rule.Companion,
		})
	}
	return conv
}

// ResolverOptions builds resolver options logging to logger
func (c *Config) ResolverOptions(logger *log.Logger) resolver.Options {
	skip := c.SkipSuffixes
	if skip == nil {
		skip = []string{}
	}
	return resolver.Options{
		Convention:   c.Convention(),
		SkipSuffixes: skip,
		Workers:      c.Workers,
		Logger:       logger,
	}
}

// LoadOptions builds project loading options logging to logger
func (c *Config) LoadOptions(logger *log.Logger) solution.LoadOptions {
	return solution.LoadOptions{
		ExcludeDirs: c.ExcludeDirs,
		Logger:      logger,
	}
}

// NewLogger creates a stderr logger at the configured level
func (c *Config) NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: prefix,
	})
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
