package upstream_test

import (
	"testing"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/upstream"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{"valid", `[{"output":{"message":{"content":[{"text":"hello"}]}}}]`, "hello", nil},
		{"extra elements ignored", `[{"output":{"message":{"content":[{"text":"a"},{"text":"b"}]}}},{}]`, "a", nil},
		{"empty body", ``, "", domain.ErrMalformedJSON},
		{"not json", `Validation status: GREEN`, "", domain.ErrMalformedJSON},
		{"truncated json", `[{"output":`, "", domain.ErrMalformedJSON},
		{"empty array", `[]`, "", domain.ErrInvalidResponseFormat},
		{"object root", `{"output":{"message":{"content":[{"text":"x"}]}}}`, "", domain.ErrInvalidResponseFormat},
		{"scalar element", `[1]`, "", domain.ErrInvalidResponseFormat},
		{"missing output", `[{"result":"x"}]`, "", domain.ErrInvalidResponseFormat},
		{"missing message", `[{"output":{}}]`, "", domain.ErrInvalidResponseFormat},
		{"empty content", `[{"output":{"message":{"content":[]}}}]`, "", domain.ErrInvalidResponseFormat},
		{"missing text", `[{"output":{"message":{"content":[{}]}}}]`, "", domain.ErrInvalidResponseFormat},
		{"non-string text", `[{"output":{"message":{"content":[{"text":42}]}}}]`, "", domain.ErrInvalidResponseFormat},
		{"empty text", `[{"output":{"message":{"content":[{"text":""}]}}}]`, "", domain.ErrInvalidResponseFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := upstream.ExtractText([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
