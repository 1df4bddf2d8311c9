package serpnews

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/utils/safe"
)

const defaultBaseURL = "https://serpapi.com"

// DefaultMaxHeadlines is the number of headlines returned per query
const DefaultMaxHeadlines = 5

// Service provides news headlines via the SerpAPI Google News engine
type Service interface {
	// Headlines returns the latest news headlines for a query
	Headlines(ctx context.Context, query string) ([]string, error)
}

// client implements Service interface
type client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	tracker      *ratelimit.Tracker
	maxHeadlines int
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

// WithMaxHeadlines sets the number of headlines returned per query
func WithMaxHeadlines(n int) Option {
	return func(c *client) {
		c.maxHeadlines = n
	}
}

// New creates a new news headline service. Calls are recorded to the given
// tracker under the "serpapi" service name.
func New(apiKey string, tracker *ratelimit.Tracker, opts ...Option) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("SerpAPI key is required")
	}

	c := &client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		httpClient:   http.DefaultClient,
		tracker:      tracker,
		maxHeadlines: DefaultMaxHeadlines,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type newsResponse struct {
	NewsResults []struct {
		Title string `json:"title"`
	} `json:"news_results"`
}

// Headlines returns the latest news headlines for a query
func (c *client) Headlines(ctx context.Context, query string) ([]string, error) {
	if c.tracker != nil {
		c.tracker.LogCall("serpapi")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("tbm", "nws")
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create news request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call SerpAPI", goerr.V("query", query))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("SerpAPI returned non-OK status",
			goerr.V("status", resp.StatusCode), goerr.V("query", query))
	}

	var result newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode SerpAPI response")
	}

	headlines := make([]string, 0, c.maxHeadlines)
	for _, item := range result.NewsResults {
		if len(headlines) >= c.maxHeadlines {
			break
		}
		headlines = append(headlines, item.Title)
	}
	return headlines, nil
}
