package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/cache"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/config"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/gitinfo"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/history"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/preview"
	"github.com/csvcheck/csvcheck/internal/adapters/outbound/upstream"
	"github.com/csvcheck/csvcheck/internal/application"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the persistent flags and the logger built for the run.
type rootOptions struct {
	configPath string
	endpoint   string
	timeout    time.Duration
	verbose    bool
	logger     *zap.Logger
}

// loadConfig resolves configuration: flags > env > file > defaults.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (domain.Config, error) {
	cfg, err := config.New().Load(o.configPath)
	if err != nil {
		return domain.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = o.endpoint
	}
	if flags.Changed("timeout") {
		if o.timeout <= 0 {
			return domain.Config{}, fmt.Errorf("--timeout must be > 0 (got %s)", o.timeout)
		}
		cfg.Timeout = o.timeout
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid flags: %w", err)
	}

	o.logger.Debug("config resolved",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("timeout", cfg.Timeout),
		zap.String("state_dir", cfg.StateDir),
	)
	return cfg, nil
}

func (o *rootOptions) validateService(cfg domain.Config) *application.ValidateService {
	return application.NewValidateService(
		upstream.NewValidator(cfg, o.logger),
		history.New(cfg.StateDir),
		cache.New(cfg.StateDir),
		gitinfo.New(),
		o.logger,
	)
}

func previewService(cfg domain.Config) *application.PreviewService {
	return application.NewPreviewService(preview.New(), cfg.PreviewRows)
}

// readUpload loads a local file for submission, enforcing the accepted extensions.
func readUpload(path string) (domain.Upload, error) {
	if !domain.HasAcceptedExtension(path) {
		return domain.Upload{}, fmt.Errorf("unsupported file type %q: only .csv and .txt are accepted", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("reading file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return domain.Upload{
		Name:        filepath.Base(path),
		Path:        abs,
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

// runReport is the JSON shape printed by validate and show.
type runReport struct {
	File       string             `json:"file"`
	Checksum   string             `json:"checksum"`
	CommitHash string             `json:"commit_hash,omitempty"`
	Status     domain.StatusLevel `json:"status,omitempty"`
	FromCache  bool               `json:"from_cache,omitempty"`
	Blocks     []domain.Block     `json:"blocks"`
}

func newRunReport(run *domain.Run) runReport {
	return runReport{
		File:       run.FileName,
		Checksum:   run.Checksum,
		CommitHash: run.CommitHash,
		Status:     run.Status(),
		FromCache:  run.FromCache,
		Blocks:     run.Blocks,
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
