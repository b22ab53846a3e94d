package application

import (
	"context"
	"fmt"
	"time"

	"github.com/csvcheck/csvcheck/internal/domain"
	"go.uber.org/zap"
)

// ValidateOptions tunes a single validation run.
type ValidateOptions struct {
	// UseCache reuses the stored response for identical bytes instead of
	// calling the service again.
	UseCache bool
}

// ValidateService orchestrates one validation run:
// checksum → cache lookup → upstream submit → parse → blocks → cache + history.
type ValidateService struct {
	validator domain.Validator
	history   domain.RunHistory
	cache     domain.ResponseCache
	git       domain.GitInfo
	logger    *zap.Logger
	now       func() time.Time
}

// NewValidateService creates a new ValidateService with all required dependencies.
// git may be nil when commit metadata is not wanted.
func NewValidateService(
	validator domain.Validator,
	history domain.RunHistory,
	cache domain.ResponseCache,
	git domain.GitInfo,
	logger *zap.Logger,
) *ValidateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidateService{
		validator: validator,
		history:   history,
		cache:     cache,
		git:       git,
		logger:    logger.Named("validate"),
		now:       time.Now,
	}
}

// Validate submits the upload and returns the parsed run. Any upstream error
// ends the run without a partial result; the failure is still recorded.
func (s *ValidateService) Validate(ctx context.Context, upload domain.Upload, opts ValidateOptions) (*domain.Run, error) {
	start := s.now()
	run := &domain.Run{
		FileName:   upload.Name,
		Checksum:   upload.Checksum(),
		StartedAt:  start,
		CommitHash: s.commitHash(upload.Path),
	}
	log := s.logger.With(zap.String("file", upload.Name), zap.String("checksum", run.Checksum[:12]))

	// 1. Cached text for identical bytes
	if opts.UseCache {
		cached, err := s.cache.Load(run.Checksum)
		if err != nil {
			log.Warn("reading cache", zap.Error(err))
		}
		if cached != nil {
			log.Debug("using cached response", zap.Time("fetched_at", cached.FetchedAt))
			run.Text = cached.Text
			run.FromCache = true
		}
	}

	// 2. Upstream call
	if !run.FromCache {
		text, err := s.validator.Submit(ctx, upload)
		if err != nil {
			log.Info("validation failed", zap.String("kind", domain.ErrorKind(err)), zap.Error(err))
			s.record(domain.RunEntry{
				Timestamp:  start.UTC().Format(time.RFC3339),
				File:       upload.Name,
				Checksum:   run.Checksum,
				CommitHash: run.CommitHash,
				Error:      err.Error(),
				ErrorKind:  domain.ErrorKind(err),
			})
			return nil, err
		}
		run.Text = text
	}

	// 3. Parse and lay out
	run.Response = domain.ParseResponse(run.Text)
	run.Blocks = domain.BuildBlocks(run.Response)
	run.Duration = s.now().Sub(start)

	// 4. Persist (best effort)
	if !run.FromCache {
		if err := s.cache.Save(&domain.CachedResponse{
			Checksum:  run.Checksum,
			FileName:  upload.Name,
			Text:      run.Text,
			FetchedAt: start.UTC(),
		}); err != nil {
			log.Warn("saving cache", zap.Error(err))
		}
	}
	s.record(domain.RunEntry{
		Timestamp:  start.UTC().Format(time.RFC3339),
		File:       upload.Name,
		Checksum:   run.Checksum,
		CommitHash: run.CommitHash,
		Status:     string(run.Status()),
	})

	log.Info("validation finished",
		zap.String("status", string(run.Status())),
		zap.Int("blocks", len(run.Blocks)),
		zap.Bool("cached", run.FromCache),
		zap.Duration("elapsed", run.Duration),
	)
	return run, nil
}

// Show re-renders the cached response for the upload's bytes without
// contacting the service.
func (s *ValidateService) Show(upload domain.Upload) (*domain.Run, error) {
	sum := upload.Checksum()
	cached, err := s.cache.Load(sum)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	if cached == nil {
		return nil, fmt.Errorf("%s: %w", upload.Name, domain.ErrNoCachedResponse)
	}

	resp := domain.ParseResponse(cached.Text)
	return &domain.Run{
		FileName:  upload.Name,
		Checksum:  sum,
		StartedAt: cached.FetchedAt,
		FromCache: true,
		Text:      cached.Text,
		Response:  resp,
		Blocks:    domain.BuildBlocks(resp),
	}, nil
}

// Forget drops the cached response for the upload's bytes.
func (s *ValidateService) Forget(upload domain.Upload) error {
	if err := s.cache.Invalidate(upload.Checksum()); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// History lists recorded runs, oldest first.
func (s *ValidateService) History() ([]domain.RunEntry, error) {
	entries, err := s.history.Load()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

func (s *ValidateService) commitHash(path string) string {
	if s.git == nil || path == "" {
		return ""
	}
	hash, err := s.git.CommitHash(path)
	if err != nil {
		s.logger.Debug("no commit for file", zap.String("path", path), zap.Error(err))
		return ""
	}
	return hash
}

func (s *ValidateService) record(entry domain.RunEntry) {
	if err := s.history.Save(entry); err != nil {
		s.logger.Warn("saving history", zap.Error(err))
	}
}

