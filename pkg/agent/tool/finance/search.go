package finance

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fintel-lab/pentarisk/pkg/agent/tool"
	"github.com/fintel-lab/pentarisk/pkg/service/tavily"
)

// webSearchTool searches the web for risk-relevant news and data
type webSearchTool struct {
	search tavily.Service
}

func (t *webSearchTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "finance__web_search",
		Description: "Web search for financial news and data. Use this to search for " +
			"occurrences of risk-relevant keywords (e.g. 'Rate Hike', 'Credit Downgrade', " +
			"'Liquidity Crunch', 'Cyber Attack', 'Regulatory Fine') and parameters across " +
			"market, credit, liquidity, operational, and regulatory risk categories.",
		Parameters: map[string]*gollem.Parameter{
			"query": {
				Type:        gollem.TypeString,
				Description: "The search query",
				Required:    true,
			},
		},
	}
}

func (t *webSearchTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, ok := extractString(args, "query")
	if !ok {
		return nil, goerr.New("query is required")
	}

	tool.Update(ctx, fmt.Sprintf("Searching the web for %q...", query))
	results, err := t.search.Search(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search the web", goerr.V("query", query))
	}

	return map[string]any{"results": tavily.FormatResults(results)}, nil
}
