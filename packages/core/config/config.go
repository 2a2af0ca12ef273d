package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/oohttp/packages/url"
	"gopkg.in/yaml.v3"
)

// Config represents the oohttp configuration
type Config struct {
	BaseURL           *url.URL          `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	Headers           map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
	Timeout           int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	ValidateSSL       *bool             `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	AutoContentLength *bool             `json:"autoContentLength,omitempty" yaml:"autoContentLength,omitempty"`
	FollowRedirects   *bool             `json:"followRedirects,omitempty" yaml:"followRedirects,omitempty"`
	MaxRedirects      int               `json:"maxRedirects,omitempty" yaml:"maxRedirects,omitempty"`
	Proxy             string            `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	RateLimit         float64           `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"` // requests per second
	Verbose           *bool             `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor           *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetAutoContentLength returns the auto content-length setting, defaulting to false
func (c *Config) GetAutoContentLength() bool {
	return getBool(c.AutoContentLength, false)
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// TimeoutDuration returns Timeout as a duration, falling back to the default
// when unset.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return time.Duration(DefaultTimeoutMs) * time.Millisecond
	}
	return time.Duration(c.Timeout) * time.Millisecond
}

// ConfigFilenames contains the possible config file names, in search order
var ConfigFilenames = []string{
	".oohttp.json",
	"oohttp.json",
	".oohttp.yaml",
	".oohttp.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return DefaultConfig(), nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence.
// Base URLs are combined: parts missing from other's base URL are taken
// from this one.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c
	result.BaseURL = c.BaseURL.Clone()
	result.Headers = maps.Clone(c.Headers)

	if other.BaseURL != nil {
		merged := other.BaseURL.Clone()
		merged.MergeFrom(c.BaseURL)
		result.BaseURL = merged
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}

	// Boolean flags - only override if explicitly set in other config
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.AutoContentLength != nil {
		result.AutoContentLength = other.AutoContentLength
	}
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		maps.Copy(result.Headers, other.Headers)
	}

	return &result
}

// SaveConfig saves the configuration to a file, as YAML when the path ends in
// .yaml or .yml and as JSON otherwise.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
