package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
	"time"
)

// AcceptedExtensions lists the file types the upload surfaces accept.
var AcceptedExtensions = []string{".csv", ".txt"}

// Upload is a file submitted for validation. Data is forwarded verbatim.
type Upload struct {
	Name        string `json:"name"`
	Path        string `json:"path,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"-"`
}

// Checksum returns the hex sha256 of the upload bytes.
func (u Upload) Checksum() string {
	sum := sha256.Sum256(u.Data)
	return hex.EncodeToString(sum[:])
}

// HasAcceptedExtension reports whether name ends in .csv or .txt (any case).
func HasAcceptedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// Run is the outcome of one successful validation.
type Run struct {
	FileName   string              `json:"file_name"`
	Checksum   string              `json:"checksum"`
	StartedAt  time.Time           `json:"started_at"`
	Duration   time.Duration       `json:"duration"`
	CommitHash string              `json:"commit_hash,omitempty"`
	FromCache  bool                `json:"from_cache,omitempty"`
	Text       string              `json:"text"`
	Response   *ValidationResponse `json:"response"`
	Blocks     []Block             `json:"blocks"`
}

// Status returns the run's status level.
func (r *Run) Status() StatusLevel {
	if r.Response == nil {
		return StatusNone
	}
	return r.Response.Status
}

// Preview summarizes the head of an uploaded CSV.
type Preview struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
	Warnings  []string   `json:"warnings,omitempty"`
}

// RunEntry is one line of the run history.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	File       string `json:"file"`
	Checksum   string `json:"checksum"`
	CommitHash string `json:"commit_hash,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
}

// Failed reports whether the run ended in an error.
func (e RunEntry) Failed() bool { return e.Error != "" }
