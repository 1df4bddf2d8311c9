package finance

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fintel-lab/pentarisk/pkg/agent/tool"
	"github.com/fintel-lab/pentarisk/pkg/service/serpnews"
)

// newsHeadlinesTool fetches recent news headlines for a query
type newsHeadlinesTool struct {
	news serpnews.Service
}

func (t *newsHeadlinesTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "finance__news_headlines",
		Description: "Get recent news headlines for a query. Use this to gauge " +
			"sentiment and to find recent events tied to risk keywords for the " +
			"analyzed company.",
		Parameters: map[string]*gollem.Parameter{
			"query": {
				Type:        gollem.TypeString,
				Description: "The news search query, e.g. a company name plus a risk keyword",
				Required:    true,
			},
		},
	}
}

func (t *newsHeadlinesTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, ok := extractString(args, "query")
	if !ok {
		return nil, goerr.New("query is required")
	}

	tool.Update(ctx, fmt.Sprintf("Fetching headlines for %q...", query))
	headlines, err := t.news.Headlines(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch headlines", goerr.V("query", query))
	}

	return map[string]any{"headlines": headlines}, nil
}
