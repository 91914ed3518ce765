// Package ingestion tidies fetched job descriptions and saves them next to a
// metadata record describing where they came from.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Output file names written by WriteOutput.
const (
	TextFileName     = "job_posting.md"
	MetadataFileName = "job_posting.meta.json"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
	unicodeBullet = regexp.MustCompile(`^[•·▪◦‣]\s*`)
)

// CleanText normalizes line endings and spacing while keeping markdown
// headings, bullets and indentation intact. At most one blank line separates
// blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace. Leading indentation is kept so nested
// lists survive; unicode bullet glyphs become "- ".
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return spaceRun.ReplaceAllString(trimmed, " ")
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))
	if loc := unicodeBullet.FindStringIndex(trimmed); loc != nil {
		trimmed = "- " + trimmed[loc[1]:]
	}
	return indent + spaceRun.ReplaceAllString(trimmed, " ")
}

// isBulletLine reports whether line is a list item.
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		unicodeBullet.MatchString(trimmed)
}

// CountBullets returns how many list items text contains.
func CountBullets(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if isBulletLine(line) {
			n++
		}
	}
	return n
}

// WriteOutput writes text and its metadata into outDir, creating it if needed.
// It returns the path of the text file.
func WriteOutput(outDir string, text string, metadata *Metadata) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, TextFileName)
	if err := os.WriteFile(textPath, []byte(text+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(outDir, MetadataFileName), metaJSON, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata file: %w", err)
	}
	return textPath, nil
}
