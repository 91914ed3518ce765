package fetch

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Scraper fetches a single job posting and returns its main content as markdown.
// It satisfies crawl.Scraper.
type Scraper struct {
	Options *Options
	// UseBrowser re-renders pages whose text is shorter than MinContentLength.
	UseBrowser     bool
	BrowserTimeout time.Duration
	Verbose        bool

	render RenderFunc
}

// NewScraper creates a scraper using headless Chrome for short pages when useBrowser is set.
func NewScraper(opts *Options, useBrowser, verbose bool) *Scraper {
	return &Scraper{
		Options:        opts,
		UseBrowser:     useBrowser,
		BrowserTimeout: DefaultBrowserTimeout,
		Verbose:        verbose,
		render:         WithBrowser,
	}
}

// Scrape downloads pageURL and converts its main content to markdown.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	result, err := URL(ctx, pageURL, s.Options)
	if err != nil {
		return "", err
	}

	platform := DetectPlatform(result.URL)
	markdown, text, err := s.convert(result.HTML, platform)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "failed to extract content", Cause: err}
	}
	if s.Verbose {
		log.Printf("[VERBOSE] Scraped %s (%s): %d chars of text", pageURL, platform, len(text))
	}

	if s.UseBrowser && ShouldUseBrowser(text) {
		rendered, err := s.renderer()(ctx, pageURL, s.BrowserTimeout, s.Verbose)
		if err != nil {
			log.Printf("[FETCH] Browser render failed for %s, keeping HTTP content: %v", pageURL, err)
			return markdown, nil
		}
		if m, t, err := s.convert(rendered, platform); err == nil && len(t) > len(text) {
			markdown = m
		}
	}
	return markdown, nil
}

func (s *Scraper) renderer() RenderFunc {
	if s.render != nil {
		return s.render
	}
	return WithBrowser
}

// convert extracts the main content of html as markdown and as plain text.
func (s *Scraper) convert(html string, platform Platform) (string, string, error) {
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	text, err := ExtractMainText(html, content, noise...)
	if err != nil {
		return "", "", err
	}
	inner, err := ExtractMainHTML(html, content, noise...)
	if err != nil {
		return "", "", err
	}
	markdown, err := ToMarkdown(inner)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert %s page: %w", platform, err)
	}
	if markdown == "" {
		markdown = text
	}
	return markdown, text, nil
}
