package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const keepAliveInterval = 15 * time.Second

// CrawlRequest starts a crawl of URL.
type CrawlRequest struct {
	URL string `json:"url"`
}

// handleStartCrawl starts a crawl attempt and answers with its initial state.
func (s *Server) handleStartCrawl(w http.ResponseWriter, r *http.Request) {
	if s.crawl == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, (&ErrUnavailable{Feature: "crawling"}).Error())
		return
	}

	var req CrawlRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	state, err := s.crawl.Start(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), errorMessage(err))
		return
	}
	s.jsonResponse(w, http.StatusAccepted, state)
}

// handleCrawlState returns the state of the most recent attempt.
func (s *Server) handleCrawlState(w http.ResponseWriter, _ *http.Request) {
	if s.crawl == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, (&ErrUnavailable{Feature: "crawling"}).Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.crawl.Tracker().Snapshot())
}

// handleCrawlStream streams state changes as "state" events. When a started
// attempt reaches a terminal phase a "complete" event follows and the stream ends.
func (s *Server) handleCrawlStream(w http.ResponseWriter, r *http.Request) {
	if s.crawl == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, (&ErrUnavailable{Feature: "crawling"}).Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	states, cancel := s.crawl.Tracker().Subscribe()
	defer cancel()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.shutdown:
			sse.WriteError("server shutting down")
			return
		case <-keepAlive.C:
			if err := sse.WriteKeepAlive(); err != nil {
				return
			}
		case state, ok := <-states:
			if !ok {
				return
			}
			if err := sse.WriteEvent("state", state); err != nil {
				log.Printf("[CRAWL] Stream write failed: %v", err)
				return
			}
			if state.Attempt > 0 && state.Phase.Terminal() {
				sse.WriteComplete(state)
				return
			}
		}
	}
}
