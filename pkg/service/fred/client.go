package fred

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

const defaultBaseURL = "https://api.stlouisfed.org"

// Service provides macroeconomic data series from FRED
type Service interface {
	// LatestObservation returns the most recent value of a data series
	// (e.g. DFF, FEDFUNDS)
	LatestObservation(ctx context.Context, seriesID string) (*Observation, error)
}

// Observation is one data point of a FRED series
type Observation struct {
	SeriesID string
	Date     string
	Value    string
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

// New creates a new FRED service. Calls are recorded to the given tracker
// under the "fred" service name.
func New(apiKey string, tracker *ratelimit.Tracker, opts ...Option) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("FRED API key is required")
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

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// LatestObservation returns the most recent value of a data series
func (c *client) LatestObservation(ctx context.Context, seriesID string) (*Observation, error) {
	if c.tracker != nil {
		c.tracker.LogCall("fred")
	}

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("sort_order", "desc")
	params.Set("limit", "1")

	endpoint := c.baseURL + "/fred/series/observations?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create observations request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call FRED API", goerr.V("seriesID", seriesID))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("FRED API returned non-OK status",
			goerr.V("status", resp.StatusCode), goerr.V("seriesID", seriesID))
	}

	var result observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode FRED response")
	}

	if len(result.Observations) == 0 {
		return nil, goerr.New("no observations found", goerr.V("seriesID", seriesID))
	}

	return &Observation{
		SeriesID: seriesID,
		Date:     result.Observations[0].Date,
		Value:    result.Observations[0].Value,
	}, nil
}
