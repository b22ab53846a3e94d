package domain

import "context"

// Validator submits a file to the remote validation service and returns the
// text blob from its response envelope.
type Validator interface {
	Submit(ctx context.Context, upload Upload) (string, error)
}

// Previewer summarizes the head of a CSV upload.
type Previewer interface {
	Preview(data []byte, contentType string, maxRows int) (*Preview, error)
}

// ConfigLoader resolves the runtime configuration.
type ConfigLoader interface {
	Load(path string) (Config, error)
}

// RunHistory persists one entry per validation run.
type RunHistory interface {
	Save(entry RunEntry) error
	Load() ([]RunEntry, error)
}

// ResponseCache stores response text by file checksum.
type ResponseCache interface {
	Load(checksum string) (*CachedResponse, error)
	Save(entry *CachedResponse) error
	Invalidate(checksum string) error
}

// GitInfo reads version-control metadata for a path.
type GitInfo interface {
	CommitHash(path string) (string, error)
}
