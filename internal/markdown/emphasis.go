// Package markdown handles the small markdown subset accepted in resume text:
// **bold** spans and "- " bullet lists.
package markdown

import (
	"regexp"
	"strings"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Segment is a run of text that is either plain or bold.
type Segment struct {
	Text string
	Bold bool
}

// ParseEmphasis splits the first **highlight** span out of value.
// The remaining text has whitespace runs collapsed and is trimmed.
// Any later ** spans are left in the text untouched.
func ParseEmphasis(value string) (text, highlight string) {
	loc := boldPattern.FindStringSubmatchIndex(value)
	if loc == nil {
		return strings.TrimSpace(value), ""
	}

	highlight = strings.TrimSpace(value[loc[2]:loc[3]])
	rest := value[:loc[0]] + value[loc[1]:]
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(rest, " "))
	return text, highlight
}

// RenderEmphasis is the inverse of ParseEmphasis.
func RenderEmphasis(text, highlight string) string {
	highlight = strings.TrimSpace(highlight)
	if highlight == "" {
		return text
	}
	return text + " **" + highlight + "**"
}

// Segments breaks value into plain and bold pieces for every **span**.
// Empty pieces are dropped.
func Segments(value string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range boldPattern.FindAllStringSubmatchIndex(value, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: value[last:loc[0]]})
		}
		if inner := value[loc[2]:loc[3]]; inner != "" {
			segments = append(segments, Segment{Text: inner, Bold: true})
		}
		last = loc[1]
	}
	if last < len(value) {
		segments = append(segments, Segment{Text: value[last:]})
	}
	return segments
}
