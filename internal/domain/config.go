package domain

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultTimeout        = 300 * time.Second
	DefaultPreviewRows    = 5
	DefaultStateDir       = ".csvcheck"
	DefaultServerAddr     = ":8080"
	DefaultRateLimit      = 1.0
	DefaultRateBurst      = 3
	DefaultMaxUploadBytes = 32 << 20
)

// Config holds everything a run needs, resolved once at process start from
// .csvcheck.yaml, the environment and command-line flags.
type Config struct {
	Endpoint    string        `yaml:"endpoint"     json:"endpoint"`
	Token       string        `yaml:"token"        json:"-"`
	Timeout     time.Duration `yaml:"timeout"      json:"timeout"`
	PreviewRows int           `yaml:"preview_rows" json:"preview_rows"`
	StateDir    string        `yaml:"state_dir"    json:"state_dir"`
	Server      ServerConfig  `yaml:"server"       json:"server"`
}

// ServerConfig tunes the web surface.
type ServerConfig struct {
	Addr           string  `yaml:"addr"             json:"addr"`
	RateLimit      float64 `yaml:"rate_limit"       json:"rate_limit"`
	Burst          int     `yaml:"burst"            json:"burst"`
	MaxUploadBytes int64   `yaml:"max_upload_bytes" json:"max_upload_bytes"`
}

// DefaultConfig returns a config with every optional field filled in.
// Endpoint and Token have no defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		PreviewRows: DefaultPreviewRows,
		StateDir:    DefaultStateDir,
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			RateLimit:      DefaultRateLimit,
			Burst:          DefaultRateBurst,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
	}
}

// WithDefaults fills zero-valued optional fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.PreviewRows == 0 {
		c.PreviewRows = d.PreviewRows
	}
	if c.StateDir == "" {
		c.StateDir = d.StateDir
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = d.Server.RateLimit
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = d.Server.Burst
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = d.Server.MaxUploadBytes
	}
	return c
}

// Validate checks the values that can be checked without a network call.
// It does not require Endpoint or Token; see RequireUpstream.
func (c Config) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", c.Timeout)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("preview_rows must be >= 0 (got %d)", c.PreviewRows)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be > 0 (got %.2f)", c.Server.RateLimit)
	}
	if c.Server.Burst < 0 {
		return fmt.Errorf("server.burst must be > 0 (got %d)", c.Server.Burst)
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0 (got %d)", c.Server.MaxUploadBytes)
	}
	return nil
}

// RequireUpstream reports whether the config can reach the validation service.
func (c Config) RequireUpstream() error {
	if c.Endpoint == "" {
		return fmt.Errorf("no endpoint configured (set endpoint in .csvcheck.yaml, CSVCHECK_ENDPOINT or --endpoint)")
	}
	if c.Token == "" {
		return fmt.Errorf("no token configured (set CSVCHECK_TOKEN or token in .csvcheck.yaml)")
	}
	return nil
}
