package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/utils/safe"
)

const defaultBaseURL = "https://api.tavily.com"

// DefaultMaxResults is the number of search results requested per query
const DefaultMaxResults = 5

// Service provides web search for financial news and data
type Service interface {
	// Search runs a web search and returns the top results
	Search(ctx context.Context, query string) ([]Result, error)
}

// Result is one web search hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// client implements Service interface
type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	tracker    *ratelimit.Tracker
	maxResults int
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithMaxResults sets the number of results requested per query
func WithMaxResults(n int) Option {
	return func(c *client) {
		c.maxResults = n
	}
}

// New creates a new Tavily search service. Calls are recorded to the given
// tracker under the "tavily" service name.
func New(apiKey string, tracker *ratelimit.Tracker, opts ...Option) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("Tavily API key is required")
	}

	c := &client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		tracker:    tracker,
		maxResults: DefaultMaxResults,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search runs a web search and returns the top results
func (c *client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.tracker != nil {
		c.tracker.LogCall("tavily")
	}

	body, err := json.Marshal(searchRequest{
		APIKey:     c.apiKey,
		Query:      query,
		MaxResults: c.maxResults,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal search request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call Tavily API", goerr.V("query", query))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("Tavily API returned non-OK status",
			goerr.V("status", resp.StatusCode), goerr.V("query", query))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode Tavily response")
	}

	return result.Results, nil
}

// FormatResults renders search results as compact text for agent consumption
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s (%s)\n%s\n", i+1, r.Title, r.URL, r.Content)
	}
	return sb.String()
}
