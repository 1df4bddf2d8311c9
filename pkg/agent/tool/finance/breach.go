package finance

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/fintel-lab/pentarisk/pkg/agent/tool"
	"github.com/fintel-lab/pentarisk/pkg/service/hibp"
)

// breachCheckTool checks an account against the known data breach corpus
type breachCheckTool struct {
	breach hibp.Service
}

func (t *breachCheckTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name: "finance__breach_check",
		Description: "Check whether an account (typically a corporate domain or " +
			"email address) appears in known data breaches. Use this for operational " +
			"and cyber risk signals such as data breaches and IT failures.",
		Parameters: map[string]*gollem.Parameter{
			"account": {
				Type:        gollem.TypeString,
				Description: "The account to check, e.g. a corporate email or domain",
				Required:    true,
			},
		},
	}
}

func (t *breachCheckTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	account, ok := extractString(args, "account")
	if !ok {
		return nil, goerr.New("account is required")
	}

	tool.Update(ctx, fmt.Sprintf("Checking breach records for %s...", account))
	breaches, err := t.breach.ListBreaches(ctx, account)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check breaches", goerr.V("account", account))
	}

	names := make([]string, 0, len(breaches))
	for _, b := range breaches {
		names = append(names, b.Name)
	}

	return map[string]any{
		"breached": len(names) > 0,
		"breaches": names,
	}, nil
}
