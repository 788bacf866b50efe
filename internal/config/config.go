// Package config loads wryneck.toml, the optional per-project settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"wryneck/grammar"
	"wryneck/token"
)

// FileName is the settings file looked up by Find.
const FileName = "wryneck.toml"

// EnvVar names an explicit settings file, overriding the lookup.
const EnvVar = "WRYNECK_CONFIG"

// DialectAuto selects the dialect per file from its contents.
const DialectAuto = "auto"

// Config holds the complete toolchain configuration
type Config struct {
	Dialect string      `toml:"dialect"`
	Indent  int         `toml:"indent"`
	Color   bool        `toml:"color"`
	Strict  bool        `toml:"strict"`
	Check   CheckConfig `toml:"check"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// CheckConfig holds settings for `wryneck check`
type CheckConfig struct {
	Warnings bool     `toml:"warnings"`
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Dialect: DialectAuto,
		Indent:  4,
		Color:   true,
		Check: CheckConfig{
			Warnings: true,
			Debounce: Duration{100 * time.Millisecond},
		},
	}
}

// Load reads a configuration file. Keys missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.Path = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Find locates the settings for files in dir: the file named by EnvVar if
// set, else the nearest wryneck.toml in dir or its parents, else defaults.
func Find(dir string) (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

func (c *Config) applyDefaults() {
	if c.Dialect == "" {
		c.Dialect = DialectAuto
	}
	if c.Indent == 0 {
		c.Indent = 4
	}
	if c.Check.Debounce.Duration == 0 {
		c.Check.Debounce.Duration = 100 * time.Millisecond
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Dialect != DialectAuto {
		if _, err := token.DialectByName(c.Dialect); err != nil {
			return err
		}
	}
	if c.Indent < 1 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 1 and 16, got %d", c.Indent)
	}
	if c.Check.Debounce.Duration < 0 {
		return fmt.Errorf("check.debounce must not be negative")
	}
	return nil
}

// DialectFor returns the configured dialect, or the one detected from
// source when the setting is "auto".
func (c *Config) DialectFor(source string) (*token.Dialect, error) {
	if c.Dialect == "" || c.Dialect == DialectAuto {
		return grammar.DetectDialect(source), nil
	}
	return token.DialectByName(c.Dialect)
}
