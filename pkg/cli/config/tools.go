package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/agent/tool/finance"
	"github.com/fintel-lab/pentarisk/pkg/service/alphavantage"
	"github.com/fintel-lab/pentarisk/pkg/service/fred"
	"github.com/fintel-lab/pentarisk/pkg/service/hibp"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/service/serpnews"
	"github.com/fintel-lab/pentarisk/pkg/service/tavily"
)

// Tools holds API keys for the external data services used by the risk
// agents. Any key left empty disables the corresponding tool.
type Tools struct {
	tavilyAPIKey       string
	alphaVantageAPIKey string
	fredAPIKey         string
	hibpAPIKey         string
	serpAPIKey         string
}

// Flags returns CLI flags for data service configuration
func (t *Tools) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "tavily-api-key",
			Usage:       "Tavily API key for web search",
			Category:    "Data services",
			Sources:     cli.EnvVars("PENTARISK_TAVILY_API_KEY"),
			Destination: &t.tavilyAPIKey,
		},
		&cli.StringFlag{
			Name:        "alpha-vantage-api-key",
			Usage:       "Alpha Vantage API key for market data",
			Category:    "Data services",
			Sources:     cli.EnvVars("PENTARISK_ALPHA_VANTAGE_API_KEY"),
			Destination: &t.alphaVantageAPIKey,
		},
		&cli.StringFlag{
			Name:        "fred-api-key",
			Usage:       "FRED API key for macroeconomic data",
			Category:    "Data services",
			Sources:     cli.EnvVars("PENTARISK_FRED_API_KEY"),
			Destination: &t.fredAPIKey,
		},
		&cli.StringFlag{
			Name:        "hibp-api-key",
			Usage:       "HaveIBeenPwned API key for breach lookups",
			Category:    "Data services",
			Sources:     cli.EnvVars("PENTARISK_HIBP_API_KEY"),
			Destination: &t.hibpAPIKey,
		},
		&cli.StringFlag{
			Name:        "serp-api-key",
			Usage:       "SerpAPI key for news headlines",
			Category:    "Data services",
			Sources:     cli.EnvVars("PENTARISK_SERP_API_KEY"),
			Destination: &t.serpAPIKey,
		},
	}
}

// LogAttrs reports which data services are enabled, never the keys
func (t *Tools) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("tavily", t.tavilyAPIKey != ""),
		slog.Bool("alpha_vantage", t.alphaVantageAPIKey != ""),
		slog.Bool("fred", t.fredAPIKey != ""),
		slog.Bool("hibp", t.hibpAPIKey != ""),
		slog.Bool("serpapi", t.serpAPIKey != ""),
	}
}

// Configure builds the service bundle for the configured keys. Calls are
// recorded to the given tracker.
func (t *Tools) Configure(tracker *ratelimit.Tracker) (finance.Services, error) {
	var services finance.Services

	if t.tavilyAPIKey != "" {
		svc, err := tavily.New(t.tavilyAPIKey, tracker)
		if err != nil {
			return finance.Services{}, goerr.Wrap(err, "failed to initialize tavily service")
		}
		services.Search = svc
	}

	if t.alphaVantageAPIKey != "" {
		svc, err := alphavantage.New(t.alphaVantageAPIKey, tracker)
		if err != nil {
			return finance.Services{}, goerr.Wrap(err, "failed to initialize alpha vantage service")
		}
		services.Market = svc
	}

	if t.fredAPIKey != "" {
		svc, err := fred.New(t.fredAPIKey, tracker)
		if err != nil {
			return finance.Services{}, goerr.Wrap(err, "failed to initialize fred service")
		}
		services.Macro = svc
	}

	if t.hibpAPIKey != "" {
		svc, err := hibp.New(t.hibpAPIKey, tracker)
		if err != nil {
			return finance.Services{}, goerr.Wrap(err, "failed to initialize hibp service")
		}
		services.Breach = svc
	}

	if t.serpAPIKey != "" {
		svc, err := serpnews.New(t.serpAPIKey, tracker)
		if err != nil {
			return finance.Services{}, goerr.Wrap(err, "failed to initialize serpapi service")
		}
		services.News = svc
	}

	return services, nil
}
