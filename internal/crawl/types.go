package crawl

import "time"

// Phase is the visible lifecycle stage of a crawl attempt.
type Phase string

// Crawl phases.
const (
	PhaseIdle     Phase = "idle"
	PhaseStarting Phase = "starting"
	PhasePolling  Phase = "polling"
	PhaseScraping Phase = "scraping"
	PhaseDone     Phase = "done"
	PhaseFailed   Phase = "failed"
	PhaseTimedOut Phase = "timed_out"
)

// Terminal reports whether no further updates follow this phase.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseIdle, PhaseDone, PhaseFailed, PhaseTimedOut:
		return true
	default:
		return false
	}
}

// Source records where the result text came from.
type Source string

// Result sources.
const (
	SourceCrawl          Source = "crawl"
	SourceScrape         Source = "scrape"
	SourceTimeoutPartial Source = "timeout-partial"
	SourceLocal          Source = "local"
	SourceCache          Source = "cache"
)

// APIVersion is the crawl API route family a job was accepted on.
type APIVersion string

// API versions, newest first.
const (
	APIv2 APIVersion = "v2"
	APIv1 APIVersion = "v1"
)

// Job identifies a started crawl.
type Job struct {
	ID      string     `json:"id"`
	Version APIVersion `json:"version"`
}

// StatusResponse is the body of a crawl status request.
type StatusResponse struct {
	Status      string `json:"status"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Current     int    `json:"current"`
	Data        []Page `json:"data"`
	PartialData []Page `json:"partial_data"`
	Error       string `json:"error"`
	Message     string `json:"message"`
}

// Page is one crawled page.
type Page struct {
	Markdown string       `json:"markdown"`
	Content  string       `json:"content"`
	Metadata PageMetadata `json:"metadata"`
}

// PageMetadata carries page details reported by the crawl API.
type PageMetadata struct {
	Title     string `json:"title"`
	SourceURL string `json:"sourceURL"`
}

// Progress is reported while an attempt runs.
type Progress struct {
	Phase     Phase  `json:"phase"`
	Message   string `json:"message"`
	Completed int    `json:"completed,omitempty"`
	Total     int    `json:"total,omitempty"`
}

// Result is the text produced by a finished attempt.
type Result struct {
	Text    string `json:"text"`
	Source  Source `json:"source"`
	Partial bool   `json:"partial,omitempty"`
}

// State is the visible state of the most recent attempt.
type State struct {
	Attempt   Attempt   `json:"attempt"`
	URL       string    `json:"url,omitempty"`
	Phase     Phase     `json:"phase"`
	Progress  string    `json:"progress,omitempty"`
	Text      string    `json:"text,omitempty"`
	Source    Source    `json:"source,omitempty"`
	Partial   bool      `json:"partial,omitempty"`
	Error     string    `json:"error,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
