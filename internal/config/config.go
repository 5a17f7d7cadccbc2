// Package config loads CLI configuration for the rst2html command. The
// rendering settings bundle itself is fixed; configuration covers only the
// display-policy switches and small presentation knobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gifhuppp/markup"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// MaxConfigSize bounds config input to keep hostile files cheap to reject.
const MaxConfigSize = 1 << 20

// Config holds the rst2html command configuration.
type Config struct {
	Policy      PolicyConfig `yaml:"policy"`
	TableStyle  string       `yaml:"tableStyle"`
	HeaderLevel int          `yaml:"headerLevel"` // 0 = platform default
}

// PolicyConfig selects display modes by name: "show", "hide", or "strict".
type PolicyConfig struct {
	Directives string `yaml:"directives"`
	Comments   string `yaml:"comments"`
}

// DefaultConfig returns the platform defaults: show everything.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks mode names and ranges.
func (c *Config) Validate() error {
	if _, err := markup.ParseMode(c.Policy.Directives); err != nil {
		return fmt.Errorf("policy.directives: %w", err)
	}
	if _, err := markup.ParseMode(c.Policy.Comments); err != nil {
		return fmt.Errorf("policy.comments: %w", err)
	}
	if c.HeaderLevel < 0 || c.HeaderLevel > 6 {
		return fmt.Errorf("headerLevel: must be between 1 and 6, got %d", c.HeaderLevel)
	}
	return nil
}

// Options converts the config into converter options.
func (c *Config) Options() ([]markup.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []markup.Option
	dirs, _ := markup.ParseMode(c.Policy.Directives)
	comments, _ := markup.ParseMode(c.Policy.Comments)
	if dirs != markup.ModeShow || comments != markup.ModeShow {
		opts = append(opts, markup.WithPolicy(markup.Policy{Directives: dirs, Comments: comments}))
	}
	if c.TableStyle != "" {
		opts = append(opts, markup.WithTableStyle(c.TableStyle))
	}
	if c.HeaderLevel > 0 {
		opts = append(opts, markup.WithInitialHeaderLevel(c.HeaderLevel))
	}
	return opts, nil
}

// LoadConfig loads configuration from a file path or config name. A value
// containing a path separator is treated as a path; otherwise it is searched
// as a name in the standard locations. Missing files are an error, never a
// silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrConfigParse, MaxConfigSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name: current directory
// first, then the user config directory, trying .yaml and .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "rst2html", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
