package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/csvcheck/csvcheck/internal/domain"
)

var checksumPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Store is a file-based implementation of domain.ResponseCache. One JSON file
// per file checksum lives under <stateDir>/cache.
type Store struct {
	root string
}

// New creates a new file-based cache store.
func New(stateDir string) *Store {
	return &Store{root: stateDir}
}

// Load reads a cached response. Returns (nil, nil) if none exists.
func (s *Store) Load(checksum string) (*domain.CachedResponse, error) {
	path, err := s.entryPath(checksum)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var entry domain.CachedResponse
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Save writes a cached response to disk, creating directories as needed.
func (s *Store) Save(entry *domain.CachedResponse) error {
	path, err := s.entryPath(entry.Checksum)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Invalidate removes the cached response for checksum.
func (s *Store) Invalidate(checksum string) error {
	path, err := s.entryPath(checksum)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) entryPath(checksum string) (string, error) {
	if !checksumPattern.MatchString(checksum) {
		return "", fmt.Errorf("invalid checksum %q", checksum)
	}
	return filepath.Join(s.root, "cache", checksum+".json"), nil
}

var _ domain.ResponseCache = (*Store)(nil)
