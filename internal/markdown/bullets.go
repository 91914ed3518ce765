package markdown

import (
	"regexp"
	"strings"
)

var bulletMarker = regexp.MustCompile(`^\s*[-*]\s*`)

// EncodeBullets writes one "- item" line per bullet.
func EncodeBullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// DecodeBullets parses a newline-delimited bullet block. A leading - or *
// marker is optional; blank lines are dropped. A line without a marker that
// starts with "**" loses its first asterisk to the marker rule.
func DecodeBullets(value string) []string {
	bullets := []string{}
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
