package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/csvcheck/csvcheck/internal/domain"
)

const historyFile = "history/runs.json"

// FileHistory implements domain.RunHistory using JSON file storage under a
// state directory.
type FileHistory struct {
	root string
}

func New(stateDir string) *FileHistory {
	return &FileHistory{root: stateDir}
}

// Path returns the history file location.
func (h *FileHistory) Path() string {
	return filepath.Join(h.root, historyFile)
}

func (h *FileHistory) Save(entry domain.RunEntry) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := h.Path()
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load() ([]domain.RunEntry, error) {
	data, err := os.ReadFile(h.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

var _ domain.RunHistory = (*FileHistory)(nil)
