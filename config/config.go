// Package config loads the uhppoted-sheets configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"
)

// Config holds the settings shared by the CLI commands. Command line flags override the
// corresponding file values.
type Config struct {
	Credentials      string `yaml:"credentials"`
	Workdir          string `yaml:"workdir"`
	RateLimit        uint   `yaml:"rate-limit"`
	ValueInputOption string `yaml:"value-input-option"`
	Debug            bool   `yaml:"debug"`
}

// NewConfig returns a Config initialised with the platform defaults.
func NewConfig() *Config {
	return &Config{
		Credentials:      DEFAULT_CREDENTIALS,
		Workdir:          DEFAULT_WORKDIR,
		RateLimit:        DEFAULT_RATE_LIMIT,
		ValueInputOption: "RAW",
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an error.
func Load(file string) (*Config, error) {
	c := NewConfig()

	if file == "" {
		return c, nil
	}

	path, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return nil, err
	}

	if err := yaml.UnmarshalStrict(bytes, c); err != nil {
		return nil, fmt.Errorf("invalid config file %v (%w)", path, err)
	}

	if err := c.expand(); err != nil {
		return nil, err
	}

	switch c.ValueInputOption {
	case "RAW", "USER_ENTERED":
	default:
		return nil, fmt.Errorf("invalid value-input-option '%v' - expected RAW or USER_ENTERED", c.ValueInputOption)
	}

	return c, nil
}

// TokensDir is the directory holding the OAuth2 tokens files.
func (c *Config) TokensDir() string {
	return filepath.Join(c.Workdir, ".google")
}

func (c *Config) expand() error {
	var err error

	if c.Credentials, err = homedir.Expand(c.Credentials); err != nil {
		return err
	}

	if c.Workdir, err = homedir.Expand(c.Workdir); err != nil {
		return err
	}

	return nil
}
