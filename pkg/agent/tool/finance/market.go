package finance

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fintel-lab/pentarisk/pkg/agent/tool"
	"github.com/fintel-lab/pentarisk/pkg/service/alphavantage"
	"github.com/fintel-lab/pentarisk/pkg/service/fred"
)

// stockQuoteTool fetches the latest market quote for a ticker
type stockQuoteTool struct {
	market alphavantage.Service
}

func (t *stockQuoteTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "finance__stock_quote",
		Description: "Get the latest stock quote (price, change, volume) for a ticker " +
			"symbol. Use this to check financial data related to risk-relevant parameters " +
			"such as price moves and trading volume.",
		Parameters: map[string]*gollem.Parameter{
			"symbol": {
				Type:        gollem.TypeString,
				Description: "The ticker symbol, e.g. UBS",
				Required:    true,
			},
		},
	}
}

func (t *stockQuoteTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	symbol, ok := extractString(args, "symbol")
	if !ok {
		return nil, goerr.New("symbol is required")
	}

	tool.Update(ctx, fmt.Sprintf("Fetching quote for %s...", symbol))
	quote, err := t.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get quote", goerr.V("symbol", symbol))
	}

	return map[string]any{
		"symbol": quote.Symbol,
		"price":  quote.Price,
		"change": quote.Change,
		"volume": quote.Volume,
	}, nil
}

// macroSeriesTool fetches the latest value of a macroeconomic data series
type macroSeriesTool struct {
	macro fred.Service
}

func (t *macroSeriesTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "finance__macro_series",
		Description: "Get the latest value of a FRED macroeconomic data series " +
			"(e.g. DFF for the federal funds rate). Use this for interest rate, " +
			"liquidity, and other macro indicators.",
		Parameters: map[string]*gollem.Parameter{
			"series_id": {
				Type:        gollem.TypeString,
				Description: "The FRED series ID, e.g. DFF or FEDFUNDS",
				Required:    true,
			},
		},
	}
}

func (t *macroSeriesTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	seriesID, ok := extractString(args, "series_id")
	if !ok {
		return nil, goerr.New("series_id is required")
	}

	tool.Update(ctx, fmt.Sprintf("Fetching series %s...", seriesID))
	obs, err := t.macro.LatestObservation(ctx, seriesID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get observation", goerr.V("seriesID", seriesID))
	}

	return map[string]any{
		"series_id": obs.SeriesID,
		"date":      obs.Date,
		"value":     obs.Value,
	}, nil
}
