package tui_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/tui"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleBlocks() []domain.Block {
	resp := domain.ParseResponse("Validation status: RED\n\n" +
		"Errors and warnings:\n- Row 4 is missing an email\n- Row 9 has an invalid date\n\n" +
		"Recommendations:\n- Fill in the email column\n\n" +
		"The file needs fixes before import.")
	return domain.BuildBlocks(resp)
}

func TestRenderReport_ShowsBanner(t *testing.T) {
	output := tui.RenderReport(sampleBlocks())
	assert.Contains(t, output, "Validation Status: RED")
	assert.Contains(t, output, "🔴")
}

func TestRenderReport_ShowsHeadersAndIndentedBody(t *testing.T) {
	output := tui.RenderReport(sampleBlocks())
	assert.Contains(t, output, "Errors and warnings:")
	assert.Contains(t, output, "Recommendations:")
	assert.Contains(t, output, "    - Row 4 is missing an email")
	assert.Contains(t, output, "    - Fill in the email column")
}

func TestRenderReport_KeepsBlockOrder(t *testing.T) {
	output := tui.RenderReport(sampleBlocks())
	banner := strings.Index(output, "Validation Status")
	errs := strings.Index(output, "Errors and warnings:")
	recs := strings.Index(output, "Recommendations:")
	plain := strings.Index(output, "before import")
	assert.True(t, banner < errs && errs < recs && recs < plain, "blocks should render in order")
}

func TestRenderReport_PlainText(t *testing.T) {
	output := tui.RenderReport(sampleBlocks())
	assert.Contains(t, output, "The file needs fixes")
}

func TestRenderReport_NoBannerForUnknownStatus(t *testing.T) {
	blocks := domain.BuildBlocks(domain.ParseResponse("Validation status: PURPLE\n\nAll done."))
	output := tui.RenderReport(blocks)
	assert.NotContains(t, output, "Validation Status")
	assert.Contains(t, output, "All done.")
}

func TestRenderReport_Empty(t *testing.T) {
	output := tui.RenderReport(nil)
	assert.Contains(t, output, "no displayable content")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No validation history")
}

func TestRenderHistory_Entries(t *testing.T) {
	entries := []domain.RunEntry{
		{Timestamp: "2026-03-01T10:00:00Z", File: "customers.csv", Checksum: "abcdef0123456789", CommitHash: "1234567890abcdef", Status: "GREEN"},
		{Timestamp: "2026-03-02T10:00:00Z", File: "broken.csv", Error: "API request failed with status code: 500", ErrorKind: "http_status"},
	}

	output := tui.RenderHistory(entries)
	assert.Contains(t, output, "customers.csv")
	assert.Contains(t, output, "abcdef0")
	assert.NotContains(t, output, "abcdef0123456789")
	assert.Contains(t, output, "GREEN")
	assert.Contains(t, output, "@1234567")
	assert.Contains(t, output, "broken.csv")
	assert.Contains(t, output, "status code: 500")
}

func TestRenderError(t *testing.T) {
	output := tui.RenderError(errors.New("Connection Error: refused"))
	assert.Contains(t, output, "error")
	assert.Contains(t, output, "Connection Error: refused")
}

func TestRenderUploaded(t *testing.T) {
	assert.Contains(t, tui.RenderUploaded("customers.csv"), "customers.csv")
}
