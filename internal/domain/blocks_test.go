package domain_test

import (
	"testing"

	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocksFor(text string) []domain.Block {
	return domain.BuildBlocks(domain.ParseResponse(text))
}

func TestBuildBlocks_RedWithErrors(t *testing.T) {
	got := blocksFor("Validation status: RED\n\nErrors and warnings:\nMissing column X\nMissing column Y")

	want := []domain.Block{
		{Kind: domain.BlockBanner, Status: domain.StatusRed, Icon: "🔴", Color: "#842029", Text: "Validation Status: RED"},
		{Kind: domain.BlockHeader, Topic: domain.TopicErrors, Text: "Errors and warnings:"},
		{Kind: domain.BlockBody, Topic: domain.TopicErrors, Lines: []string{"Missing column X", "Missing column Y"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildBlocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildBlocks_GreenBannerAlwaysFirst(t *testing.T) {
	texts := []string{
		"Validation status: GREEN",
		"Intro\n\nValidation status: GREEN",
		"Conclusion:\nok\n\nMore text\n\nValidation status: GREEN\n\nTail",
		"Validation status: green\n\nRecommendations:\nnone",
	}
	for _, text := range texts {
		blocks := blocksFor(text)
		require.NotEmpty(t, blocks, "text %q", text)
		assert.Equal(t, domain.BlockBanner, blocks[0].Kind, "text %q", text)
		assert.Equal(t, domain.StatusGreen, blocks[0].Status, "text %q", text)
		assert.Equal(t, "🟢", blocks[0].Icon)
		assert.Equal(t, "#0f5132", blocks[0].Color)
	}
}

func TestBuildBlocks_UnknownStatusEmitsNoBanner(t *testing.T) {
	for _, token := range []string{"", "blue", "Green-ish", "PENDING", "  "} {
		blocks := blocksFor("Validation status: " + token + "\n\nSome text")
		for _, b := range blocks {
			assert.NotEqual(t, domain.BlockBanner, b.Kind, "token %q", token)
		}
		require.Len(t, blocks, 1, "token %q", token)
		assert.Equal(t, domain.BlockPlain, blocks[0].Kind)
	}
}

func TestBuildBlocks_PlainOnly(t *testing.T) {
	got := blocksFor("All good.\n\nNo issues found.")
	want := []domain.Block{
		{Kind: domain.BlockPlain, Text: "All good."},
		{Kind: domain.BlockPlain, Text: "No issues found."},
	}
	assert.Equal(t, want, got)
}

func TestBuildBlocks_HeaderWithoutBodyHasNoBodyBlock(t *testing.T) {
	got := blocksFor("Conclusion:\n\nAfter")
	require.Len(t, got, 2)
	assert.Equal(t, domain.BlockHeader, got[0].Kind)
	assert.Equal(t, "Conclusion:", got[0].Text)
	assert.Equal(t, domain.BlockPlain, got[1].Kind)
}

func TestBuildBlocks_BlankSectionsContributeNothing(t *testing.T) {
	got := blocksFor("First\n\n\n\n  \n\nSecond")
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Text)
	assert.Equal(t, "Second", got[1].Text)
}

func TestBuildBlocks_SkipsEveryStatusSection(t *testing.T) {
	got := blocksFor("Validation status: YELLOW\n\nbody\n\nValidation status: RED")
	require.Len(t, got, 2)
	assert.Equal(t, domain.StatusYellow, got[0].Status)
	assert.Equal(t, "body", got[1].Text)
}

func TestBuildBlocks_PlainTextIsUnprocessed(t *testing.T) {
	text := "**bold** and <b>tags</b>\n- item"
	got := blocksFor(text)
	require.Len(t, got, 1)
	assert.Equal(t, text, got[0].Text)
}

func TestStatusLevel_Styles(t *testing.T) {
	assert.Equal(t, "🟡", domain.StatusYellow.Icon())
	assert.Equal(t, "#997404", domain.StatusYellow.Color())
	assert.Equal(t, "", domain.StatusUnknown.Icon())
	assert.Equal(t, "#1e1e1e", domain.StatusUnknown.Color())
	assert.False(t, domain.StatusUnknown.Known())
	assert.False(t, domain.StatusNone.Known())
}
