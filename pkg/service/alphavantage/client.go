package alphavantage

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

const defaultBaseURL = "https://www.alphavantage.co"

// Service provides market data quotes
type Service interface {
	// GetQuote returns the latest quote for a ticker symbol
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}

// Quote is the latest price snapshot for a symbol
type Quote struct {
	Symbol string
	Price  string
	Change string
	Volume string
}

// client implements Service interface
type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	tracker    *ratelimit.Tracker
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

// New creates a new Alpha Vantage service. Calls are recorded to the given
// tracker under the "alphavantage" service name.
func New(apiKey string, tracker *ratelimit.Tracker, opts ...Option) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("Alpha Vantage API key is required")
	}

	c := &client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		tracker:    tracker,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type quoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

// GetQuote returns the latest quote for a ticker symbol
func (c *client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	if c.tracker != nil {
		c.tracker.LogCall("alphavantage")
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create quote request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call Alpha Vantage API", goerr.V("symbol", symbol))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("Alpha Vantage API returned non-OK status",
			goerr.V("status", resp.StatusCode), goerr.V("symbol", symbol))
	}

	var result quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode Alpha Vantage response")
	}

	if len(result.GlobalQuote) == 0 {
		return nil, goerr.New("no quote data found", goerr.V("symbol", symbol))
	}

	return &Quote{
		Symbol: result.GlobalQuote["01. symbol"],
		Price:  result.GlobalQuote["05. price"],
		Change: result.GlobalQuote["09. change"],
		Volume: result.GlobalQuote["06. volume"],
	}, nil
}
