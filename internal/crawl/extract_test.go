package crawl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	pages := []Page{
		{Markdown: "  Body one  ", Metadata: PageMetadata{Title: "Engineer", SourceURL: "https://a.example"}},
		{Content: "Plain body"},
		{Metadata: PageMetadata{Title: "Empty page"}},
	}

	assert.Equal(t, "# Engineer\nSource: https://a.example\n\nBody one\n\nPlain body", ExtractText(pages))
	assert.Equal(t, "", ExtractText(nil))
	assert.Equal(t, "", ExtractText([]Page{{Metadata: PageMetadata{Title: "only title"}}}))
}

func TestStatusResponse_Pages(t *testing.T) {
	data := []Page{{Markdown: "final"}}
	partial := []Page{{Markdown: "partial"}}

	assert.Equal(t, data, (&StatusResponse{Data: data, PartialData: partial}).Pages())
	assert.Equal(t, partial, (&StatusResponse{PartialData: partial}).Pages())
	assert.Empty(t, (&StatusResponse{}).Pages())
}

func TestStatusResponse_ProgressMessage(t *testing.T) {
	assert.Equal(t, "Crawling... 2 / 5", (&StatusResponse{Status: "scraping", Completed: 2, Total: 5}).ProgressMessage())
	assert.Equal(t, "Crawling... 1 / 4", (&StatusResponse{Current: 1, Total: 4}).ProgressMessage())
	assert.Equal(t, "Crawling... scraping", (&StatusResponse{Status: "scraping"}).ProgressMessage())
	assert.Equal(t, "Crawling...", (&StatusResponse{}).ProgressMessage())
}

func TestStatusResponse_FailureMessage(t *testing.T) {
	assert.Equal(t, "boom", (&StatusResponse{Error: "boom", Message: "other"}).FailureMessage())
	assert.Equal(t, "other", (&StatusResponse{Message: "other"}).FailureMessage())
	assert.Equal(t, "Crawl failed", (&StatusResponse{}).FailureMessage())
}

func TestBestText(t *testing.T) {
	assert.Equal(t, "abc", bestText("", "abc"))
	assert.Equal(t, "abcd", bestText("abcd", "ab"))
	assert.Equal(t, "abcd", bestText("abcd", ""))
	assert.Equal(t, "wxyz", bestText("abcd", "wxyz"), "ties go to the newer text")
}

func TestValidateURL(t *testing.T) {
	valid := map[string]string{
		"https://jobs.example.com/123":  "https://jobs.example.com/123",
		"  http://example.com/path?q=1 ": "http://example.com/path?q=1",
	}
	for input, want := range valid {
		got, err := ValidateURL(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "   ", "not a url", "ftp://example.com/file", "mailto:a@b.c", "example.com"} {
		_, err := ValidateURL(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrInvalidURL), input)
	}
}
