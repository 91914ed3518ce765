package crawl

import (
	"context"
	"log"
	"strings"
	"time"
)

// Default polling parameters.
const (
	DefaultPollInterval = 1500 * time.Millisecond
	DefaultTimeout      = 60 * time.Second
)

// Progress messages for the non-polling phases.
const (
	MessageStarting = "Starting crawl..."
	MessageScraping = "Crawl returned no content, scraping page..."
)

// API is the subset of the crawl API the orchestrator drives. *Client implements it.
type API interface {
	StartCrawl(ctx context.Context, pageURL string) (*Job, error)
	Status(ctx context.Context, job *Job) (*StatusResponse, error)
	Scrape(ctx context.Context, pageURL string) (string, error)
}

// Clock abstracts time so polling can be tested without sleeping.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Hooks connect a running attempt to its owner.
type Hooks struct {
	// OnProgress receives every visible state change. May be nil.
	OnProgress func(Progress)
	// Active reports whether the attempt is still the current one.
	// When it returns false the loop stops scheduling polls. May be nil.
	Active func() bool
}

func (h Hooks) progress(p Progress) {
	if h.OnProgress != nil {
		h.OnProgress(p)
	}
}

func (h Hooks) active() bool {
	return h.Active == nil || h.Active()
}

// OrchestratorOptions configures polling.
type OrchestratorOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
	Clock        Clock
	Verbose      bool
}

// Orchestrator runs one crawl attempt: start, poll, and fall back to a scrape.
type Orchestrator struct {
	api          API
	pollInterval time.Duration
	timeout      time.Duration
	clock        Clock
	verbose      bool
}

// NewOrchestrator creates an orchestrator. Zero options take the defaults.
func NewOrchestrator(api API, opts OrchestratorOptions) *Orchestrator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	return &Orchestrator{
		api:          api,
		pollInterval: opts.PollInterval,
		timeout:      opts.Timeout,
		clock:        opts.Clock,
		verbose:      opts.Verbose,
	}
}

// Run crawls rawURL and returns its text.
//
// Status requests are issued one at a time, PollInterval apart. A "completed" status
// yields the longest text seen across all polls; a "failed" status yields *FailedError.
// Once Timeout has elapsed the best text so far is returned as a partial result, or
// *TimedOutError when there is none. A completed crawl without text falls back to a
// single-page scrape. Invalid URLs are rejected before any request.
func (o *Orchestrator) Run(ctx context.Context, rawURL string, hooks Hooks) (*Result, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	hooks.progress(Progress{Phase: PhaseStarting, Message: MessageStarting})
	started := o.clock.Now()

	job, err := o.api.StartCrawl(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if o.verbose {
		log.Printf("[CRAWL] Started job %s (%s) for %s", job.ID, job.Version, pageURL)
	}

	var best string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-o.clock.After(o.pollInterval):
		}

		if !hooks.active() {
			return nil, ErrSuperseded
		}

		status, err := o.api.Status(ctx, job)
		if err != nil {
			return nil, err
		}
		best = bestText(best, ExtractText(status.Pages()))

		hooks.progress(Progress{
			Phase:     PhasePolling,
			Message:   status.ProgressMessage(),
			Completed: status.Completed,
			Total:     status.Total,
		})
		if o.verbose {
			log.Printf("[CRAWL] Job %s: status=%s completed=%d total=%d text=%d chars",
				job.ID, status.Status, status.Completed, status.Total, len(best))
		}

		switch strings.ToLower(status.Status) {
		case "completed":
			return o.finish(ctx, pageURL, best, hooks)
		case "failed":
			return nil, &FailedError{
				Message:   status.FailureMessage(),
				Completed: status.Completed,
				Total:     status.Total,
			}
		}

		if elapsed := o.clock.Now().Sub(started); elapsed > o.timeout {
			if best != "" {
				return &Result{Text: best, Source: SourceTimeoutPartial, Partial: true}, nil
			}
			return nil, &TimedOutError{Elapsed: elapsed}
		}
	}
}

// finish returns crawled text, or scrapes the page when the crawl produced none.
func (o *Orchestrator) finish(ctx context.Context, pageURL, text string, hooks Hooks) (*Result, error) {
	if text != "" {
		return &Result{Text: text, Source: SourceCrawl}, nil
	}

	if !hooks.active() {
		return nil, ErrSuperseded
	}
	hooks.progress(Progress{Phase: PhaseScraping, Message: MessageScraping})

	scraped, err := o.api.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scraped) == "" {
		return nil, &RequestError{Message: "No content returned"}
	}
	return &Result{Text: scraped, Source: SourceScrape}, nil
}
