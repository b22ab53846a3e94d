package domain

import "strings"

// StatusLevel is the coarse outcome reported by the validation service.
type StatusLevel string

const (
	// StatusNone means the response carried no status marker at all.
	StatusNone    StatusLevel = ""
	StatusGreen   StatusLevel = "GREEN"
	StatusYellow  StatusLevel = "YELLOW"
	StatusRed     StatusLevel = "RED"
	StatusUnknown StatusLevel = "UNKNOWN"
)

// neutralColor is used whenever the status token is not recognized.
const neutralColor = "#1e1e1e"

var statusStyles = map[StatusLevel]struct{ icon, color string }{
	StatusGreen:  {"🟢", "#0f5132"},
	StatusYellow: {"🟡", "#997404"},
	StatusRed:    {"🔴", "#842029"},
}

// ParseStatusLevel maps a status token to a level, case-insensitively.
// Anything outside GREEN, YELLOW and RED (including "") is StatusUnknown.
func ParseStatusLevel(token string) StatusLevel {
	switch lvl := StatusLevel(strings.ToUpper(token)); lvl {
	case StatusGreen, StatusYellow, StatusRed:
		return lvl
	default:
		return StatusUnknown
	}
}

// Known reports whether the level is one of the three banner levels.
func (s StatusLevel) Known() bool {
	_, ok := statusStyles[s]
	return ok
}

// Icon returns the level's fixed icon, or "" for unknown levels.
func (s StatusLevel) Icon() string { return statusStyles[s].icon }

// Color returns the level's fixed hex color, falling back to a neutral tone.
func (s StatusLevel) Color() string {
	if st, ok := statusStyles[s]; ok {
		return st.color
	}
	return neutralColor
}

// SectionKind tags a parsed section.
type SectionKind string

const (
	SectionStatus SectionKind = "status"
	SectionHeader SectionKind = "header"
	SectionPlain  SectionKind = "plain"
)

// HeaderTopic is one of the fixed header labels the service emits.
type HeaderTopic string

const (
	TopicErrors          HeaderTopic = "Errors and warnings:"
	TopicRecommendations HeaderTopic = "Recommendations:"
	TopicConclusion      HeaderTopic = "Conclusion:"
)

// HeaderTopics lists the recognized header labels in match order.
var HeaderTopics = []HeaderTopic{TopicErrors, TopicRecommendations, TopicConclusion}

// Section is one blank-line separated block of the response text.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Topic HeaderTopic `json:"topic,omitempty"`
	Label string      `json:"label,omitempty"`
	Body  []string    `json:"body,omitempty"`
	Raw   string      `json:"raw"`
}

// ValidationResponse is the parsed form of the service's text blob.
type ValidationResponse struct {
	Status     StatusLevel `json:"status,omitempty"`
	StatusText string      `json:"status_text,omitempty"`
	Sections   []Section   `json:"sections"`
}

// HasStatus reports whether a status marker was found.
func (r *ValidationResponse) HasStatus() bool { return r.Status != StatusNone }
