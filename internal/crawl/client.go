package crawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Firecrawl API.
const DefaultBaseURL = "https://api.firecrawl.dev"

// DefaultUserAgent identifies crawl API requests.
const DefaultUserAgent = "resume-studio/1.0"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client talks to a Firecrawl-compatible crawl API.
// New jobs are tried on the v2 routes first and fall back to v1 when the server answers 404.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. An empty apiKey sends no Authorization header.
// A nil httpClient uses http.DefaultClient, which has no per-request timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// BaseURL returns the API base the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type scrapeOptions struct {
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type crawlRequest struct {
	URL               string        `json:"url"`
	Limit             int           `json:"limit"`
	Sitemap           string        `json:"sitemap"`
	MaxDiscoveryDepth int           `json:"maxDiscoveryDepth"`
	ScrapeOptions     scrapeOptions `json:"scrapeOptions"`
}

type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type startResponse struct {
	ID    string `json:"id"`
	JobID string `json:"jobId"`
}

type scrapeBody struct {
	Markdown string `json:"markdown"`
	Content  string `json:"content"`
}

type scrapeResponse struct {
	Data *scrapeBody `json:"data"`
	scrapeBody
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StartCrawl starts a single-page crawl of pageURL.
func (c *Client) StartCrawl(ctx context.Context, pageURL string) (*Job, error) {
	body := crawlRequest{
		URL:               pageURL,
		Limit:             1,
		Sitemap:           "skip",
		MaxDiscoveryDepth: 0,
		ScrapeOptions:     scrapeOptions{Formats: []string{"markdown"}, OnlyMainContent: true},
	}

	var resp startResponse
	version, err := c.postWithFallback(ctx, "/v2/crawl", "/v1/crawl", body, &resp)
	if err != nil {
		return nil, err
	}

	id := resp.ID
	if id == "" {
		id = resp.JobID
	}
	if id == "" {
		return nil, &RequestError{Message: "crawl API did not return a job id"}
	}
	return &Job{ID: id, Version: version}, nil
}

// Status fetches the status of job on the route family it was accepted on.
func (c *Client) Status(ctx context.Context, job *Job) (*StatusResponse, error) {
	path := "/v2/crawl/" + url.PathEscape(job.ID)
	if job.Version == APIv1 {
		path = "/v1/crawl/status/" + url.PathEscape(job.ID)
	}

	status, resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, requestError(status, resp)
	}

	var out StatusResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, &RequestError{Status: status, Message: fmt.Sprintf("invalid status response: %v", err)}
	}
	return &out, nil
}

// Scrape fetches the main content of pageURL as markdown in a single request.
func (c *Client) Scrape(ctx context.Context, pageURL string) (string, error) {
	body := scrapeRequest{URL: pageURL, Formats: []string{"markdown"}, OnlyMainContent: true}

	var resp scrapeResponse
	if _, err := c.postWithFallback(ctx, "/v2/scrape", "/v1/scrape", body, &resp); err != nil {
		return "", err
	}

	candidates := []string{resp.Markdown, resp.Content}
	if resp.Data != nil {
		candidates = []string{resp.Data.Markdown, resp.Data.Content, resp.Markdown, resp.Content}
	}
	for _, text := range candidates {
		if text != "" {
			return text, nil
		}
	}
	return "", nil
}

// postWithFallback posts body to v2Path, retrying on v1Path when the server answers 404.
func (c *Client) postWithFallback(ctx context.Context, v2Path, v1Path string, body, out any) (APIVersion, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	version := APIv2
	status, resp, err := c.do(ctx, http.MethodPost, v2Path, payload)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		version = APIv1
		status, resp, err = c.do(ctx, http.MethodPost, v1Path, payload)
		if err != nil {
			return "", err
		}
	}
	if status < 200 || status > 299 {
		return "", requestError(status, resp)
	}

	if err := json.Unmarshal(resp, out); err != nil {
		return "", &RequestError{Status: status, Message: fmt.Sprintf("invalid response: %v", err)}
	}
	return version, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &NetworkError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, ctxErr
		}
		return 0, nil, &NetworkError{Message: fmt.Sprintf("%s %s failed", method, path), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	limit := int64(maxErrorBody)
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		limit = 64 << 20
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return 0, nil, &NetworkError{Message: "failed to read response body", Cause: err}
	}
	return resp.StatusCode, body, nil
}

// requestError builds a RequestError, preferring the server's own error text.
func requestError(status int, body []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return &RequestError{Status: status, Message: parsed.Error}
		}
		if parsed.Message != "" {
			return &RequestError{Status: status, Message: parsed.Message}
		}
	}
	if text := http.StatusText(status); text != "" {
		return &RequestError{Status: status, Message: text}
	}
	return &RequestError{Status: status, Message: "unexpected status"}
}
