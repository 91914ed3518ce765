// Package observability provides formatted summaries for the CLI's --summary mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/crawl"
	"github.com/jonathan/resume-studio/internal/markdown"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is how many lines of crawled text are shown
	previewLines = 8
)

// Printer writes boxed summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // summaries go to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens line to fit inside a box, counting runes so multi-byte
// characters are never split.
func truncate(line string) string {
	runes := []rune(line)
	if len(runes) <= boxWidth-4 {
		return line
	}
	return string(runes[:boxWidth-7]) + "..."
}

// plain strips bold markers for display.
func plain(value string) string {
	var sb strings.Builder
	for _, seg := range markdown.Segments(value) {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", plain(items[i]))
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintResume outputs a human-readable summary of a normalized resume.
func (p *Printer) PrintResume(data types.ResumeData, employer string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Name:      %s\n", data.Header.FullName)
	fmt.Fprintf(&sb, "Employer:  %s\n", employer)
	fmt.Fprintf(&sb, "Contact:   %s\n", strings.Join(nonEmpty(data.Header.Email, data.Header.Phone, data.Header.Location), " | "))
	if data.PersonalProfileHighlight != "" {
		fmt.Fprintf(&sb, "Highlight: %s\n", data.PersonalProfileHighlight)
	}
	sb.WriteString("\n")

	if len(data.TechnicalSkills) > 0 {
		labels := make([]string, len(data.TechnicalSkills))
		for i, s := range data.TechnicalSkills {
			labels[i] = s.Label
		}
		sb.WriteString("Skills:\n")
		writeList(&sb, labels)
		sb.WriteString("\n")
	}

	if len(data.Experience) > 0 {
		sb.WriteString("Experience:\n")
		for _, e := range data.Experience {
			fmt.Fprintf(&sb, "  %s, %s (%s)\n", e.Role, e.Company, e.DateRange)
			fmt.Fprintf(&sb, "    %d bullets\n", len(e.Bullets))
		}
		sb.WriteString("\n")
	}

	if len(data.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range data.Education {
			fmt.Fprintf(&sb, "  %s, %s (%s)\n", e.Degree, e.School, e.DateRange)
		}
	}

	p.printBox("RESUME SUMMARY", sb.String())
}

// PrintWarnings lists schema warnings. Nothing is printed when there are none.
func (p *Printer) PrintWarnings(warnings []schemas.FieldError) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&sb, "⚠ %s\n", w.String())
	}
	p.printBox(fmt.Sprintf("WARNINGS (%d)", len(warnings)), sb.String())
}

// PrintCrawl outputs where a crawl result came from and the start of its text.
func (p *Printer) PrintCrawl(pageURL string, res *crawl.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "URL:     %s\n", pageURL)
	fmt.Fprintf(&sb, "Source:  %s\n", res.Source)
	if res.Partial {
		sb.WriteString("Status:  partial (timed out)\n")
	}
	fmt.Fprintf(&sb, "Length:  %d characters\n", len(res.Text))
	sb.WriteString("\n")

	lines := strings.Split(strings.TrimSpace(res.Text), "\n")
	for _, line := range lines[:min(len(lines), previewLines)] {
		sb.WriteString(line + "\n")
	}
	if len(lines) > previewLines {
		fmt.Fprintf(&sb, "... and %d more lines\n", len(lines)-previewLines)
	}

	p.printBox("CRAWL RESULT", sb.String())
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
