package crawl

import (
	"fmt"
	"strings"
)

// Pages returns the finished pages of a status response, or the partial pages while the job runs.
func (s *StatusResponse) Pages() []Page {
	if len(s.Data) > 0 {
		return s.Data
	}
	return s.PartialData
}

// ProgressMessage renders the status line shown while polling.
func (s *StatusResponse) ProgressMessage() string {
	completed := s.Completed
	if completed == 0 {
		completed = s.Current
	}
	if s.Total > 0 {
		return fmt.Sprintf("Crawling... %d / %d", completed, s.Total)
	}
	if s.Status != "" {
		return "Crawling... " + s.Status
	}
	return "Crawling..."
}

// FailureMessage returns the server's explanation of a failed job.
func (s *StatusResponse) FailureMessage() string {
	if s.Error != "" {
		return s.Error
	}
	if s.Message != "" {
		return s.Message
	}
	return "Crawl failed"
}

// ExtractText joins the text of pages separated by blank lines.
// Each page contributes an optional "# title" heading and "Source:" line followed by its
// markdown (or plain content). Pages without body text are skipped.
func ExtractText(pages []Page) string {
	var parts []string
	for _, page := range pages {
		body := strings.TrimSpace(page.Markdown)
		if body == "" {
			body = strings.TrimSpace(page.Content)
		}
		if body == "" {
			continue
		}

		var sb strings.Builder
		if title := strings.TrimSpace(page.Metadata.Title); title != "" {
			sb.WriteString("# " + title + "\n")
		}
		if src := strings.TrimSpace(page.Metadata.SourceURL); src != "" {
			sb.WriteString("Source: " + src + "\n")
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(body)
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

// bestText keeps the longest non-empty text seen so far. Ties go to the newer text.
func bestText(current, candidate string) string {
	if candidate == "" {
		return current
	}
	if len(candidate) >= len(current) {
		return candidate
	}
	return current
}
