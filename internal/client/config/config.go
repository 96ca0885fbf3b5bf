package config

import "time"

// Config holds runtime settings for the studynotes CLI.
//
// Fields:
//   - ServerURL: base URL of the studynotes web server.
//   - Email: account email; when empty the CLI prompts for it.
//   - RequestTimeout: per-request HTTP timeout.
//   - Args: positional arguments (the subcommand and its operands).
type Config struct {
	ServerURL      string
	Email          string
	RequestTimeout time.Duration
	Args           []string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Email = ""
	c.RequestTimeout = 60 * time.Second
	c.Args = []string{}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
