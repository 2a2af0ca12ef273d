package config

const (
	DefaultTimeoutMs    = 60000
	DefaultMaxRedirects = 10
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:           DefaultTimeoutMs,
		ValidateSSL:       BoolPtr(true),
		AutoContentLength: BoolPtr(false),
		FollowRedirects:   BoolPtr(true),
		MaxRedirects:      DefaultMaxRedirects,
		Verbose:           BoolPtr(false),
		NoColor:           BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.BaseURL == nil &&
		len(c.Headers) == 0 &&
		c.Timeout == defaults.Timeout &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.GetAutoContentLength() == defaults.GetAutoContentLength() &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.Proxy == defaults.Proxy &&
		c.RateLimit == defaults.RateLimit &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
