package fetch

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// ToMarkdown converts an HTML fragment to markdown, the format the crawl API returns.
func ToMarkdown(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(markdown, "\n\n")), nil
}
