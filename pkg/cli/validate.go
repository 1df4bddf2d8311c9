package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/cli/config"
	"github.com/fintel-lab/pentarisk/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var profileCfg config.Profile

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a risk profile file",
		Flags:   profileCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if profileCfg.Path() == "" {
				return goerr.New("risk-profile is required")
			}

			profile, err := config.LoadRiskProfile(profileCfg.Path())
			if err != nil {
				return goerr.Wrap(err, "profile validation failed")
			}

			logger.Info("Profile validation passed", "path", profileCfg.Path())
			for _, cp := range profile.Categories {
				logger.Info("Category profile",
					"category", cp.Category,
					"parameter_count", len(cp.Parameters),
					"keyword_count", len(cp.Keywords),
				)
			}

			return nil
		},
	}
}
