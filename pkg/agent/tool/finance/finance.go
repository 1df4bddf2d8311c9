// Package finance provides the data-gathering tools available to the risk
// analysis agents. Every tool wraps one external data service; services
// that are not configured are simply left out of the tool set.
package finance

import (
	"github.com/m-mizutani/gollem"

	"github.com/fintel-lab/pentarisk/pkg/service/alphavantage"
	"github.com/fintel-lab/pentarisk/pkg/service/fred"
	"github.com/fintel-lab/pentarisk/pkg/service/hibp"
	"github.com/fintel-lab/pentarisk/pkg/service/serpnews"
	"github.com/fintel-lab/pentarisk/pkg/service/tavily"
)

// Services bundles the optional external data services for tool construction
type Services struct {
	Search tavily.Service
	Market alphavantage.Service
	Macro  fred.Service
	Breach hibp.Service
	News   serpnews.Service
}

// New builds the tool set for the risk agents from the configured services.
// A nil service omits the corresponding tool.
func New(services Services) []gollem.Tool {
	var tools []gollem.Tool

	if services.Search != nil {
		tools = append(tools, &webSearchTool{search: services.Search})
	}
	if services.Market != nil {
		tools = append(tools, &stockQuoteTool{market: services.Market})
	}
	if services.Macro != nil {
		tools = append(tools, &macroSeriesTool{macro: services.Macro})
	}
	if services.Breach != nil {
		tools = append(tools, &breachCheckTool{breach: services.Breach})
	}
	if services.News != nil {
		tools = append(tools, &newsHeadlinesTool{news: services.News})
	}

	return tools
}

// extractString reads a required string argument from tool args
func extractString(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
