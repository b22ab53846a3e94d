package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/csvcheck/csvcheck/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/require"
)

const (
	redText    = "Validation status: RED\n\nErrors and warnings:\nMissing column X\nMissing column Y"
	yellowText = "Validation status: YELLOW\n\nRecommendations:\nTrim whitespace"
	greenText  = "Validation status: GREEN\n\nConclusion:\nReady to import"
)

func envelope(text string) string {
	quoted, _ := json.Marshal(text)
	return `[{"output":{"message":{"content":[{"text":` + string(quoted) + `}]}}}]`
}

// workspace moves the test into a fresh directory with a token set and no
// config file, so state lands in <tmp>/.csvcheck.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CSVCHECK_TOKEN", "tok")
	t.Setenv("CSVCHECK_ENDPOINT", "")
	t.Setenv("CSVCHECK_TIMEOUT", "")
	return dir
}

func upstreamReplying(t *testing.T, status int, body string) (string, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL, calls
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
