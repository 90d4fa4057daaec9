// Package config loads settings for the calc command.
package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zephyrtronium/calc"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "CALC_CONFIG"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds settings read from a TOML file.
type Config struct {
	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level"`
	// Format is a printf verb for results. Empty means integral results
	// print as integers and others in the shortest exact form.
	Format string `toml:"format"`
	// Output is OutputText or OutputJSON.
	Output string `toml:"output"`
	// MaxRepeat is the parser's limit on consecutive operators.
	MaxRepeat int `toml:"max_repeat"`
	// MaxDepth is the parser's limit on nested brackets.
	MaxDepth int `toml:"max_depth"`

	// Source is the file the config was read from, or empty if defaults.
	Source string `toml:"-"`
}

// Default returns the settings used when there is no config file.
func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		Output:    OutputText,
		MaxRepeat: calc.DefaultMaxRepeat,
		MaxDepth:  calc.DefaultMaxDepth,
	}
}

// DefaultPath is the config file used when neither a path nor EnvVar is
// given, or the empty string if there is no user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calc", "calc.toml")
}

// Load reads the config file at path. If path is empty, the file named by
// EnvVar is used, and failing that DefaultPath, which may be absent. Values
// missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := true
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		path, explicit = DefaultPath(), false
		if path == "" {
			return cfg, nil
		}
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	md, err := toml.Decode(string(contents), cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding config file %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.Errorf("unknown keys in config file %s: %v", path, keys)
	}
	cfg.Source = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return errors.Errorf("output must be %q or %q, not %q", OutputText, OutputJSON, c.Output)
	}
	if c.MaxRepeat <= 0 {
		return errors.Errorf("max_repeat must be positive, not %d", c.MaxRepeat)
	}
	if c.MaxDepth <= 0 {
		return errors.Errorf("max_depth must be positive, not %d", c.MaxDepth)
	}
	return nil
}
