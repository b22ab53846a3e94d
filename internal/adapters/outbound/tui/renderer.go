package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/csvcheck/csvcheck/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#0D6EFD") // header rule
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	white   = lipgloss.Color("#FFFFFF")
)

const contentWidth = 68

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(white).
			Padding(1, 2).
			Margin(1, 0).
			Width(contentWidth)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			PaddingLeft(1).
			MarginTop(1)

	topicColors = map[domain.HeaderTopic]lipgloss.Color{
		domain.TopicErrors:          danger,
		domain.TopicRecommendations: accent,
		domain.TopicConclusion:      success,
	}

	bodyStyle     = lipgloss.NewStyle().Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
)

// RenderReport draws display blocks for the terminal in slice order.
func RenderReport(blocks []domain.Block) string {
	var b strings.Builder

	if len(blocks) == 0 {
		b.WriteString("  " + dimStyle.Render("The service returned no displayable content.") + "\n")
		return b.String()
	}

	for _, blk := range blocks {
		switch blk.Kind {
		case domain.BlockBanner:
			renderBanner(&b, blk)
		case domain.BlockHeader:
			renderHeader(&b, blk)
		case domain.BlockBody:
			renderBody(&b, blk)
		case domain.BlockPlain:
			b.WriteString(renderMarkdown(blk.Text))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderBanner(b *strings.Builder, blk domain.Block) {
	style := bannerStyle.Background(lipgloss.Color(blk.Color))
	b.WriteString(style.Render(blk.Icon + "  " + blk.Text))
	b.WriteString("\n")
}

func renderHeader(b *strings.Builder, blk domain.Block) {
	color, ok := topicColors[blk.Topic]
	if !ok {
		color = accent
	}
	b.WriteString(headerStyle.BorderForeground(color).Render(blk.Text))
	b.WriteString("\n")
}

func renderBody(b *strings.Builder, blk domain.Block) {
	for _, line := range blk.Lines {
		b.WriteString("    " + bodyStyle.Render(line) + "\n")
	}
}

// renderMarkdown draws free text through glamour, falling back to the raw
// text if the renderer fails.
func renderMarkdown(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text + "\n"
		}
	}()

	mdOnce.Do(func() {
		mdRenderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(contentWidth),
		)
	})
	if mdRenderer == nil {
		return text + "\n"
	}
	rendered, err := mdRenderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return rendered
}

// RenderUploaded prints the line shown before a file is sent.
func RenderUploaded(name string) string {
	return "  " + titleStyle.Render("File uploaded:") + " " + name + "\n"
}

// RenderError formats a terminal error for a failed command.
func RenderError(err error) string {
	return "  " + errorTagStyle.Render("error") + " " + err.Error() + "\n"
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, e := range entries {
		sum := e.Checksum
		if len(sum) > 7 {
			sum = sum[:7]
		}
		if sum == "" {
			sum = "·······"
		}

		ts := e.Timestamp
		if len(ts) > 19 {
			ts = ts[:19]
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(ts),
			faintStyle.Render(sum),
			statusTag(e),
			e.File,
		)
		if e.CommitHash != "" {
			line += "  " + faintStyle.Render("@"+shortHash(e.CommitHash))
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}

func statusTag(e domain.RunEntry) string {
	if e.Failed() {
		return errorTagStyle.Render(padRight("error", 7)) + " " + dimStyle.Render(e.Error)
	}
	label := padRight(e.Status, 7)
	switch domain.StatusLevel(e.Status) {
	case domain.StatusGreen:
		return passStyle.Render(label)
	case domain.StatusYellow:
		return warnStyle.Render(label)
	case domain.StatusRed:
		return failStyle.Render(label)
	default:
		return dimStyle.Render(padRight("-", 7))
	}
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
