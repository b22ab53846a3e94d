package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/csvcheck/csvcheck/internal/domain"
	"go.uber.org/zap"
)

const (
	contentTypeCSV = "text/csv"
	maxBodyBytes   = 64 << 20
)

// Client implements domain.Validator against the remote validation endpoint.
// It never retries: every failure is returned to the caller as-is.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client for cfg.Endpoint with cfg.Timeout bounding each request.
func New(cfg domain.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("upstream"),
	}
}

// Submit posts the upload bytes verbatim and returns the envelope's text blob.
func (c *Client) Submit(ctx context.Context, upload domain.Upload) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(upload.Data))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentTypeCSV)

	log := c.logger.With(zap.String("file", upload.Name), zap.Int("bytes", len(upload.Data)))
	log.Debug("submitting file", zap.String("endpoint", c.endpoint))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug("response received", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", &domain.HTTPStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &domain.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	body, err = decodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding response charset: %w", domain.ErrMalformedJSON)
	}

	return ExtractText(body)
}

// unconfigured stands in for a Client when no endpoint or token is set, so
// offline commands still work and only the upstream call fails.
type unconfigured struct{ err error }

func (u unconfigured) Submit(context.Context, domain.Upload) (string, error) { return "", u.err }

// NewValidator returns a Client for cfg, or a validator that reports the
// missing setting on every Submit when cfg lacks an endpoint or token.
func NewValidator(cfg domain.Config, logger *zap.Logger) domain.Validator {
	if err := cfg.RequireUpstream(); err != nil {
		return unconfigured{err: err}
	}
	return New(cfg, logger)
}

var _ domain.Validator = (*Client)(nil)
