package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/csvcheck/csvcheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is read from the working directory when no path is given.
const DefaultFileName = ".csvcheck.yaml"

// Environment variables that override the file.
const (
	EnvEndpoint = "CSVCHECK_ENDPOINT"
	EnvToken    = "CSVCHECK_TOKEN"
	EnvTimeout  = "CSVCHECK_TIMEOUT"
)

// YAMLLoader implements domain.ConfigLoader by reading .csvcheck.yaml and
// applying environment overrides on top.
type YAMLLoader struct {
	lookupEnv func(string) (string, bool)
}

// New creates a YAMLLoader that reads the process environment.
func New() *YAMLLoader { return &YAMLLoader{lookupEnv: os.LookupEnv} }

// NewWithEnv creates a YAMLLoader with a custom environment lookup.
func NewWithEnv(lookup func(string) (string, bool)) *YAMLLoader {
	return &YAMLLoader{lookupEnv: lookup}
}

// Load reads the config file at path, or DefaultFileName when path is empty.
// A missing default file yields defaults; a missing explicit file is an error.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	cfg := domain.Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return domain.Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}

	// Validate before defaults so zero values do not mask typos like timeout: -5s.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg.WithDefaults(), nil
}

func (l *YAMLLoader) applyEnv(cfg *domain.Config) error {
	if v, ok := l.lookupEnv(EnvEndpoint); ok && v != "" {
		cfg.Endpoint = v
	}
	if v, ok := l.lookupEnv(EnvToken); ok && v != "" {
		cfg.Token = v
	}
	if v, ok := l.lookupEnv(EnvTimeout); ok && v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

// ParseTimeout accepts a Go duration ("90s", "5m") or a bare number of seconds.
func ParseTimeout(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q (use a duration like 300s or a number of seconds)", v)
	}
	return time.Duration(secs) * time.Second, nil
}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)
