package crawl

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Attempt numbers crawl attempts. Later attempts have larger numbers.
type Attempt uint64

// subscriberBuffer is the per-subscriber queue length; slow readers only see the latest states.
const subscriberBuffer = 8

// Tracker owns the visible crawl state and guards it with an attempt counter.
// Only the most recently started attempt may change the state; updates from
// superseded attempts are dropped. In-flight requests are never aborted.
type Tracker struct {
	mu      sync.Mutex
	counter Attempt
	state   State
	subs    map[chan State]struct{}
	now     func() time.Time
}

// NewTracker creates a tracker in the idle phase.
func NewTracker() *Tracker {
	t := &Tracker{
		subs: make(map[chan State]struct{}),
		now:  time.Now,
	}
	t.state = State{Phase: PhaseIdle, UpdatedAt: t.now()}
	return t
}

// Start begins a new attempt for url and makes it current.
func (t *Tracker) Start(url string) Attempt {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counter++
	t.state = State{
		Attempt:   t.counter,
		URL:       url,
		Phase:     PhaseStarting,
		Progress:  MessageStarting,
		UpdatedAt: t.now(),
	}
	t.broadcast()
	return t.counter
}

// Current reports whether a is still the most recent attempt.
func (t *Tracker) Current(a Attempt) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return a == t.counter
}

// Update applies progress from attempt a. It reports false when a is stale.
func (t *Tracker) Update(a Attempt, p Progress) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if a != t.counter {
		return false
	}
	t.state.Phase = p.Phase
	t.state.Progress = p.Message
	t.state.UpdatedAt = t.now()
	t.broadcast()
	return true
}

// Finish records the outcome of attempt a. It reports false when a is stale.
func (t *Tracker) Finish(a Attempt, res *Result, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if a != t.counter {
		return false
	}

	next := State{
		Attempt:   a,
		URL:       t.state.URL,
		UpdatedAt: t.now(),
	}
	switch {
	case err != nil:
		next.Phase, next.Error, next.Detail = describeError(err)
	case res == nil:
		next.Phase = PhaseFailed
		next.Error = "crawl finished without a result"
	default:
		next.Phase = PhaseDone
		next.Text = res.Text
		next.Source = res.Source
		next.Partial = res.Partial
		next.Progress = "Done"
		if res.Partial {
			next.Progress = "Timed out, showing partial content"
		}
	}

	t.state = next
	t.broadcast()
	return true
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Subscribe returns a channel that receives the current state and every later change.
// Call the returned cancel function to stop receiving; it closes the channel.
func (t *Tracker) Subscribe() (<-chan State, func()) {
	ch := make(chan State, subscriberBuffer)

	t.mu.Lock()
	t.subs[ch] = struct{}{}
	ch <- t.state
	t.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, ch)
			t.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// broadcast sends the state to every subscriber, dropping the oldest queued state when full.
// Callers hold t.mu.
func (t *Tracker) broadcast() {
	for ch := range t.subs {
		select {
		case ch <- t.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- t.state:
			default:
			}
		}
	}
}

// describeError maps an attempt error to a phase, a user-facing message and optional detail.
func describeError(err error) (Phase, string, string) {
	var (
		timedOut *TimedOutError
		failed   *FailedError
		request  *RequestError
		network  *NetworkError
		invalid  *InvalidURLError
	)
	switch {
	case errors.As(err, &timedOut):
		return PhaseTimedOut, "Crawl timed out before any content was returned.", ""
	case errors.As(err, &failed):
		return PhaseFailed, failed.Message, fmt.Sprintf("%d / %d pages completed", failed.Completed, failed.Total)
	case errors.As(err, &request):
		return PhaseFailed, request.Message, ""
	case errors.As(err, &network):
		return PhaseFailed, "Could not reach the crawl API.", network.Hint()
	case errors.As(err, &invalid):
		return PhaseFailed, invalid.Message, ""
	default:
		return PhaseFailed, err.Error(), ""
	}
}
