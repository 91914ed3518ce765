package crawl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	mu     sync.Mutex
	text   map[string]string
	err    error
	gates  map[string]chan struct{}
	called []string
}

func (f *fakeScraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	f.mu.Lock()
	f.called = append(f.called, pageURL)
	gate := f.gates[pageURL]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text[pageURL], nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	stored  []Source
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (c *memoryCache) Lookup(ctx context.Context, pageURL string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.entries[pageURL]
	return text, ok, nil
}

func (c *memoryCache) Store(ctx context.Context, pageURL, text string, source Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[pageURL] = text
	c.stored = append(c.stored, source)
	return nil
}

func TestService_CacheHit(t *testing.T) {
	cache := newMemoryCache()
	cache.entries["https://a.example"] = "cached text"
	api := &scriptedAPI{}
	svc := NewService(NewTracker(), ServiceOptions{
		Orchestrator: newTestOrchestrator(api, newFakeClock()),
		Cache:        cache,
	})
	defer svc.Close()

	res, err := svc.Crawl(context.Background(), " https://a.example ", Hooks{})
	require.NoError(t, err)

	assert.Equal(t, &Result{Text: "cached text", Source: SourceCache}, res)
	assert.Equal(t, 0, api.startCalls)
}

func TestService_StoresCompleteResults(t *testing.T) {
	cache := newMemoryCache()
	api := &scriptedAPI{statuses: []*StatusResponse{pageStatus("completed", "fresh")}}
	svc := NewService(NewTracker(), ServiceOptions{
		Orchestrator: newTestOrchestrator(api, newFakeClock()),
		Cache:        cache,
	})
	defer svc.Close()

	res, err := svc.Crawl(context.Background(), "https://a.example", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, "fresh", res.Text)
	assert.Equal(t, "fresh", cache.entries["https://a.example"])
	assert.Equal(t, []Source{SourceCrawl}, cache.stored)
}

func TestService_DoesNotCachePartialResults(t *testing.T) {
	cache := newMemoryCache()
	api := &scriptedAPI{statuses: []*StatusResponse{{Status: "scraping", PartialData: []Page{{Markdown: "some"}}}}}
	svc := NewService(NewTracker(), ServiceOptions{
		Orchestrator: newTestOrchestrator(api, newFakeClock()),
		Cache:        cache,
	})
	defer svc.Close()

	res, err := svc.Crawl(context.Background(), "https://a.example", Hooks{})
	require.NoError(t, err)
	assert.True(t, res.Partial)
	assert.Empty(t, cache.entries)
}

func TestService_LocalOnly(t *testing.T) {
	local := &fakeScraper{text: map[string]string{"https://a.example": "local text"}}
	svc := NewService(NewTracker(), ServiceOptions{Local: local})
	defer svc.Close()

	var phases []Phase
	res, err := svc.Crawl(context.Background(), "https://a.example", Hooks{
		OnProgress: func(p Progress) { phases = append(phases, p.Phase) },
	})
	require.NoError(t, err)

	assert.Equal(t, &Result{Text: "local text", Source: SourceLocal}, res)
	assert.Equal(t, []Phase{PhaseScraping}, phases)
}

func TestService_LocalEmpty(t *testing.T) {
	svc := NewService(NewTracker(), ServiceOptions{Local: &fakeScraper{}})
	defer svc.Close()

	_, err := svc.Crawl(context.Background(), "https://a.example", Hooks{})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "No content returned", reqErr.Message)
}

func TestService_NetworkErrorFallsBackToLocal(t *testing.T) {
	api := &scriptedAPI{startErr: &NetworkError{Message: "dial tcp"}}
	local := &fakeScraper{text: map[string]string{"https://a.example": "rescued"}}
	svc := NewService(NewTracker(), ServiceOptions{
		Orchestrator: newTestOrchestrator(api, newFakeClock()),
		Local:        local,
	})
	defer svc.Close()

	res, err := svc.Crawl(context.Background(), "https://a.example", Hooks{})
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, res.Source)
	assert.Equal(t, "rescued", res.Text)
}

func TestService_RequestErrorDoesNotFallBack(t *testing.T) {
	api := &scriptedAPI{startErr: &RequestError{Status: 401, Message: "Unauthorized"}}
	local := &fakeScraper{text: map[string]string{"https://a.example": "unused"}}
	svc := NewService(NewTracker(), ServiceOptions{
		Orchestrator: newTestOrchestrator(api, newFakeClock()),
		Local:        local,
	})
	defer svc.Close()

	_, err := svc.Crawl(context.Background(), "https://a.example", Hooks{})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Empty(t, local.called)
}

func TestService_NothingConfigured(t *testing.T) {
	svc := NewService(NewTracker(), ServiceOptions{})
	defer svc.Close()

	_, err := svc.Crawl(context.Background(), "https://a.example", Hooks{})
	assert.Error(t, err)
}

func TestService_StartInvalidURLLeavesTrackerUntouched(t *testing.T) {
	tracker := NewTracker()
	svc := NewService(tracker, ServiceOptions{Local: &fakeScraper{}})
	defer svc.Close()

	_, err := svc.Start(context.Background(), "nope")

	assert.True(t, errors.Is(err, ErrInvalidURL))
	state := tracker.Snapshot()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Equal(t, Attempt(0), state.Attempt)
}

func TestService_StartPublishesResult(t *testing.T) {
	tracker := NewTracker()
	local := &fakeScraper{text: map[string]string{"https://a.example": "job text"}}
	svc := NewService(tracker, ServiceOptions{Local: local})
	defer svc.Close()

	initial, err := svc.Start(context.Background(), "https://a.example")
	require.NoError(t, err)
	assert.Equal(t, PhaseStarting, initial.Phase)
	assert.Equal(t, Attempt(1), initial.Attempt)

	svc.Wait()
	state := tracker.Snapshot()
	assert.Equal(t, PhaseDone, state.Phase)
	assert.Equal(t, "job text", state.Text)
	assert.Equal(t, SourceLocal, state.Source)
}

// gatedAPI completes every job on its first status poll. Jobs with a gate
// block inside Status until the gate is closed, after signalling entered.
type gatedAPI struct {
	text    map[string]string
	gates   map[string]chan struct{}
	entered chan string

	mu       sync.Mutex
	finished []string
}

func (a *gatedAPI) StartCrawl(ctx context.Context, pageURL string) (*Job, error) {
	return &Job{ID: pageURL, Version: APIv2}, nil
}

func (a *gatedAPI) Status(ctx context.Context, job *Job) (*StatusResponse, error) {
	if gate := a.gates[job.ID]; gate != nil {
		a.entered <- job.ID
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a.mu.Lock()
	a.finished = append(a.finished, job.ID)
	a.mu.Unlock()
	return &StatusResponse{Status: "completed", Data: []Page{{Markdown: a.text[job.ID]}}}, nil
}

func (a *gatedAPI) Scrape(ctx context.Context, pageURL string) (string, error) {
	return "", errors.New("unexpected scrape")
}

func TestService_NewerAttemptSupersedesOlder(t *testing.T) {
	tracker := NewTracker()
	slow := make(chan struct{})
	api := &gatedAPI{
		text: map[string]string{
			"https://old.example": "old text",
			"https://new.example": "new text",
		},
		gates:   map[string]chan struct{}{"https://old.example": slow},
		entered: make(chan string, 1),
	}
	orch := NewOrchestrator(api, OrchestratorOptions{PollInterval: time.Millisecond, Timeout: time.Minute})
	svc := NewService(tracker, ServiceOptions{Orchestrator: orch})
	defer svc.Close()

	_, err := svc.Start(context.Background(), "https://old.example")
	require.NoError(t, err)
	// The first attempt is now blocked inside its status request.
	assert.Equal(t, "https://old.example", <-api.entered)

	second, err := svc.Start(context.Background(), "https://new.example")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		state := tracker.Snapshot()
		return state.Attempt == second.Attempt && state.Phase == PhaseDone
	}, 5*time.Second, time.Millisecond)

	// The first attempt's completed status arrives last and must be dropped.
	close(slow)
	svc.Wait()

	api.mu.Lock()
	assert.Equal(t, []string{"https://new.example", "https://old.example"}, api.finished)
	api.mu.Unlock()

	state := tracker.Snapshot()
	assert.Equal(t, second.Attempt, state.Attempt)
	assert.Equal(t, PhaseDone, state.Phase)
	assert.Equal(t, "https://new.example", state.URL)
	assert.Equal(t, "new text", state.Text)
	assert.Equal(t, SourceCrawl, state.Source)
}

func TestService_CloseCancelsRunningAttempts(t *testing.T) {
	tracker := NewTracker()
	local := &fakeScraper{gates: map[string]chan struct{}{"https://a.example": make(chan struct{})}}
	svc := NewService(tracker, ServiceOptions{Local: local})

	_, err := svc.Start(context.Background(), "https://a.example")
	require.NoError(t, err)
	svc.Close()

	state := tracker.Snapshot()
	assert.Equal(t, PhaseFailed, state.Phase)
	assert.Contains(t, state.Error, "context canceled")
}
