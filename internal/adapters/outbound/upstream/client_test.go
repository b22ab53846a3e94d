package upstream_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/upstream"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const envelopeRed = `[{"output":{"message":{"content":[{"text":"Validation status: RED\n\nErrors and warnings:\nMissing column X"}]}}}]`

func newClient(t *testing.T, url string, timeout time.Duration) *upstream.Client {
	t.Helper()
	cfg := domain.DefaultConfig()
	cfg.Endpoint = url
	cfg.Token = "test-token"
	cfg.Timeout = timeout
	return upstream.New(cfg, zaptest.NewLogger(t))
}

func TestClient_Submit_SendsFileVerbatim(t *testing.T) {
	payload := []byte("id,name\n1,\"Ada, Countess\"\n2,Bob\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, payload, body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, envelopeRed)
	}))
	defer srv.Close()

	text, err := newClient(t, srv.URL, 5*time.Second).Submit(context.Background(), domain.Upload{Name: "c.csv", Data: payload})
	require.NoError(t, err)
	assert.Equal(t, "Validation status: RED\n\nErrors and warnings:\nMissing column X", text)
}

func TestClient_Submit_Non200IsHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	text, err := newClient(t, srv.URL, 5*time.Second).Submit(context.Background(), domain.Upload{Data: []byte("a\n")})
	require.Error(t, err)
	assert.Empty(t, text)

	var httpErr *domain.HTTPStatusError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.StatusCode)
	assert.Equal(t, "API request failed with status code: 500", err.Error())
}

func TestClient_Submit_EmptyArrayIsInvalidFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, 5*time.Second).Submit(context.Background(), domain.Upload{Data: []byte("a\n")})
	assert.ErrorIs(t, err, domain.ErrInvalidResponseFormat)
}

func TestClient_Submit_NonJSONIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>gateway</html>`)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, 5*time.Second).Submit(context.Background(), domain.Upload{Data: []byte("a\n")})
	assert.ErrorIs(t, err, domain.ErrMalformedJSON)
}

func TestClient_Submit_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, 50*time.Millisecond).Submit(context.Background(), domain.Upload{Data: []byte("a\n")})
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "connection error")
}

func TestClient_Submit_ConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(t, url, time.Second).Submit(context.Background(), domain.Upload{Data: []byte("a\n")})
	var netErr *domain.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_Submit_CancelledContextIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, envelopeRed)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(t, srv.URL, time.Second).Submit(ctx, domain.Upload{Data: []byte("a\n")})
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Submit_DecodesDeclaredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=iso-8859-1")
		_, _ = w.Write([]byte("[{\"output\":{\"message\":{\"content\":[{\"text\":\"Caf\xe9 column\"}]}}}]"))
	}))
	defer srv.Close()

	text, err := newClient(t, srv.URL, time.Second).Submit(context.Background(), domain.Upload{Data: []byte("a\n")})
	require.NoError(t, err)
	assert.Equal(t, "Café column", text)
}

func TestNewValidator_MissingTokenFailsOnSubmit(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Endpoint = "https://example.invalid/validate"

	v := upstream.NewValidator(cfg, zaptest.NewLogger(t))
	_, err := v.Submit(context.Background(), domain.Upload{Name: "a.csv"})
	assert.ErrorContains(t, err, "no token configured")
}
