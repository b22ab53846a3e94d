package domain

import (
	"fmt"
	"strings"
)

// BlockKind identifies how a display block should be drawn.
type BlockKind string

const (
	BlockBanner BlockKind = "banner"
	BlockHeader BlockKind = "header"
	BlockBody   BlockKind = "body"
	BlockPlain  BlockKind = "plain"
)

// Block is one unit of rendered output. Surfaces (terminal, HTML, JSON, MCP)
// draw blocks in slice order.
type Block struct {
	Kind   BlockKind   `json:"kind"`
	Status StatusLevel `json:"status,omitempty"`
	Icon   string      `json:"icon,omitempty"`
	Color  string      `json:"color,omitempty"`
	Text   string      `json:"text,omitempty"`
	Lines  []string    `json:"lines,omitempty"`
	Topic  HeaderTopic `json:"topic,omitempty"`
}

// BannerText is the caption shown inside a status banner.
func BannerText(status StatusLevel) string {
	return fmt.Sprintf("Validation Status: %s", status)
}

// BuildBlocks maps a parsed response to display blocks: the status banner
// first when the status is recognized, then one left-to-right pass over the
// remaining sections.
func BuildBlocks(resp *ValidationResponse) []Block {
	var blocks []Block

	if resp.Status.Known() {
		blocks = append(blocks, Block{
			Kind:   BlockBanner,
			Status: resp.Status,
			Icon:   resp.Status.Icon(),
			Color:  resp.Status.Color(),
			Text:   BannerText(resp.Status),
		})
	}

	for _, s := range resp.Sections {
		switch s.Kind {
		case SectionHeader:
			blocks = append(blocks, Block{Kind: BlockHeader, Topic: s.Topic, Text: s.Label + ":"})
			if len(s.Body) > 0 {
				blocks = append(blocks, Block{Kind: BlockBody, Topic: s.Topic, Lines: s.Body})
			}
		case SectionPlain:
			if strings.TrimSpace(s.Raw) == "" {
				continue
			}
			blocks = append(blocks, Block{Kind: BlockPlain, Text: s.Raw})
		}
	}

	return blocks
}
