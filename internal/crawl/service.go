package crawl

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
)

// Scraper fetches page text without the crawl API.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) (string, error)
}

// Cache stores finished crawl text by URL.
type Cache interface {
	Lookup(ctx context.Context, pageURL string) (text string, ok bool, err error)
	Store(ctx context.Context, pageURL, text string, source Source) error
}

// ServiceOptions wires the optional parts of a Service.
type ServiceOptions struct {
	// Orchestrator drives the crawl API. Nil means only Local is used.
	Orchestrator *Orchestrator
	// Local scrapes pages directly. It is used when there is no orchestrator,
	// and as a fallback when the crawl API cannot be reached.
	Local Scraper
	// Cache short-circuits repeated crawls of the same URL. May be nil.
	Cache   Cache
	Verbose bool
}

// Service runs crawl attempts in the background and publishes their state on a Tracker.
type Service struct {
	tracker      *Tracker
	orchestrator *Orchestrator
	local        Scraper
	cache        Cache
	verbose      bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a service publishing to tracker.
func NewService(tracker *Tracker, opts ServiceOptions) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		tracker:      tracker,
		orchestrator: opts.Orchestrator,
		local:        opts.Local,
		cache:        opts.Cache,
		verbose:      opts.Verbose,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Tracker returns the tracker the service publishes to.
func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// Start validates rawURL, begins a new attempt and returns immediately with its initial state.
// Any attempt still running is superseded. An invalid URL leaves the tracker untouched.
func (s *Service) Start(ctx context.Context, rawURL string) (State, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return State{}, err
	}
	if err := ctx.Err(); err != nil {
		return State{}, err
	}

	attempt := s.tracker.Start(pageURL)
	state := s.tracker.Snapshot()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		hooks := Hooks{
			OnProgress: func(p Progress) { s.tracker.Update(attempt, p) },
			Active:     func() bool { return s.tracker.Current(attempt) },
		}
		res, err := s.Crawl(s.ctx, pageURL, hooks)
		if errors.Is(err, ErrSuperseded) {
			return
		}
		if !s.tracker.Finish(attempt, res, err) {
			log.Printf("[CRAWL] Dropped result of superseded attempt %d for %s", attempt, pageURL)
			return
		}
		if err != nil {
			log.Printf("[CRAWL] Attempt %d for %s failed: %v", attempt, pageURL, err)
		}
	}()

	return state, nil
}

// Crawl runs one attempt synchronously: cache, then crawl API, then local scraper.
func (s *Service) Crawl(ctx context.Context, rawURL string, hooks Hooks) (*Result, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		text, ok, err := s.cache.Lookup(ctx, pageURL)
		if err != nil {
			log.Printf("[CRAWL] Cache lookup failed for %s: %v", pageURL, err)
		} else if ok {
			if s.verbose {
				log.Printf("[VERBOSE] Cache hit for %s", pageURL)
			}
			return &Result{Text: text, Source: SourceCache}, nil
		}
	}

	var res *Result
	switch {
	case s.orchestrator != nil:
		res, err = s.orchestrator.Run(ctx, pageURL, hooks)
		var network *NetworkError
		if err != nil && errors.As(err, &network) && s.local != nil {
			log.Printf("[CRAWL] Crawl API unreachable, scraping %s locally: %v", pageURL, err)
			res, err = s.scrapeLocal(ctx, pageURL, hooks)
		}
	case s.local != nil:
		res, err = s.scrapeLocal(ctx, pageURL, hooks)
	default:
		err = &RequestError{Message: "no crawl API or local scraper configured"}
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil && !res.Partial {
		if err := s.cache.Store(ctx, pageURL, res.Text, res.Source); err != nil {
			log.Printf("[CRAWL] Cache store failed for %s: %v", pageURL, err)
		}
	}
	return res, nil
}

func (s *Service) scrapeLocal(ctx context.Context, pageURL string, hooks Hooks) (*Result, error) {
	if !hooks.active() {
		return nil, ErrSuperseded
	}
	hooks.progress(Progress{Phase: PhaseScraping, Message: "Scraping page..."})

	text, err := s.local.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &RequestError{Message: "No content returned"}
	}
	return &Result{Text: text, Source: SourceLocal}, nil
}

// Close cancels running attempts and waits for them to finish.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until every background attempt has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}
