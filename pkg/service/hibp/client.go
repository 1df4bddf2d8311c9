package hibp

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

const defaultBaseURL = "https://haveibeenpwned.com"

const userAgent = "pentarisk"

// Service checks accounts against the HaveIBeenPwned breach corpus
type Service interface {
	// ListBreaches returns the breaches an account appears in.
	// An empty slice means no breaches were found.
	ListBreaches(ctx context.Context, account string) ([]Breach, error)
}

// Breach is one known data breach an account appeared in
type Breach struct {
	Name string `json:"Name"`
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

// New creates a new HaveIBeenPwned service. Calls are recorded to the given
// tracker under the "hibp" service name.
func New(apiKey string, tracker *ratelimit.Tracker, opts ...Option) (Service, error) {
	if apiKey == "" {
		return nil, goerr.New("HaveIBeenPwned API key is required")
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

// ListBreaches returns the breaches an account appears in
func (c *client) ListBreaches(ctx context.Context, account string) ([]Breach, error) {
	if c.tracker != nil {
		c.tracker.LogCall("hibp")
	}

	endpoint := c.baseURL + "/api/v3/breachedaccount/" + url.PathEscape(account) + "?truncateResponse=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create breach request")
	}
	req.Header.Set("hibp-api-key", c.apiKey)
	req.Header.Set("user-agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call HaveIBeenPwned API")
	}
	defer safe.Close(ctx, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		var breaches []Breach
		if err := json.NewDecoder(resp.Body).Decode(&breaches); err != nil {
			return nil, goerr.Wrap(err, "failed to decode breach response")
		}
		return breaches, nil

	case http.StatusNotFound:
		// Not found means the account has no known breaches
		return nil, nil

	default:
		return nil, goerr.New("HaveIBeenPwned API returned unexpected status",
			goerr.V("status", resp.StatusCode))
	}
}
