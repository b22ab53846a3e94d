package domain

import "strings"

// StatusMarker introduces the status token in the service's response text.
const StatusMarker = "Validation status:"

// SectionDelimiter separates sections in the response text.
const SectionDelimiter = "\n\n"

// SplitSections splits text on the blank-line delimiter. Blank pieces are kept
// so that JoinSections(SplitSections(t)) == t.
func SplitSections(text string) []string {
	return strings.Split(text, SectionDelimiter)
}

// JoinSections is the inverse of SplitSections.
func JoinSections(sections []string) string {
	return strings.Join(sections, SectionDelimiter)
}

// ParseResponse turns the service's text blob into a ValidationResponse.
// Only the first section carrying the status marker determines the status;
// every marker section is tagged SectionStatus and never rendered as content.
func ParseResponse(text string) *ValidationResponse {
	raw := SplitSections(text)
	resp := &ValidationResponse{Sections: make([]Section, 0, len(raw))}

	for _, piece := range raw {
		if strings.Contains(piece, StatusMarker) {
			if !resp.HasStatus() {
				resp.StatusText = statusToken(piece)
				resp.Status = ParseStatusLevel(resp.StatusText)
			}
			resp.Sections = append(resp.Sections, Section{Kind: SectionStatus, Raw: piece})
			continue
		}
		resp.Sections = append(resp.Sections, classify(piece))
	}

	return resp
}

// statusToken returns the trimmed text after the first marker, stopping at a
// second marker if the section repeats it.
func statusToken(section string) string {
	_, after, _ := strings.Cut(section, StatusMarker)
	token, _, _ := strings.Cut(after, StatusMarker)
	return strings.TrimSpace(token)
}

func classify(piece string) Section {
	topic, ok := matchTopic(piece)
	if !ok {
		return Section{Kind: SectionPlain, Body: []string{piece}, Raw: piece}
	}

	label, rest, _ := strings.Cut(piece, ":")
	return Section{
		Kind:  SectionHeader,
		Topic: topic,
		Label: label,
		Body:  nonBlankLines(rest),
		Raw:   piece,
	}
}

func matchTopic(piece string) (HeaderTopic, bool) {
	for _, t := range HeaderTopics {
		if strings.Contains(piece, string(t)) {
			return t, true
		}
	}
	return "", false
}

func nonBlankLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
