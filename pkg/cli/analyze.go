package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/cli/config"
	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/utils/logging"
)

func cmdAnalyze() *cli.Command {
	var company string
	var ticker string
	var geminiCfg config.Gemini
	var repoCfg config.Repository
	var toolsCfg config.Tools
	var slackCfg config.Slack
	var storageCfg config.Storage
	var profileCfg config.Profile

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "company",
			Usage:       "Company name to analyze",
			Required:    true,
			Sources:     cli.EnvVars("PENTARISK_COMPANY"),
			Destination: &company,
		},
		&cli.StringFlag{
			Name:        "ticker",
			Usage:       "Ticker symbol of the company",
			Sources:     cli.EnvVars("PENTARISK_TICKER"),
			Destination: &ticker,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, toolsCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Run a risk analysis and print the result as JSON",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, repoClose, err := buildUseCases(ctx, &geminiCfg, &repoCfg, &toolsCfg,
				&slackCfg, &storageCfg, &profileCfg)
			if err != nil {
				return err
			}
			defer repoClose()

			target := model.Target{Company: company, Ticker: ticker}
			logging.Default().Info("Starting analysis", "company", company, "ticker", ticker)

			rep, err := uc.Analysis.StartAnalysis(ctx, target)
			if err != nil {
				return goerr.Wrap(err, "failed to start analysis")
			}
			if err := uc.Analysis.RunReport(ctx, rep.ID); err != nil {
				return err
			}

			stored, err := uc.Repository().Report().Get(ctx, rep.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to load result")
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(stored.Result); err != nil {
				return goerr.Wrap(err, "failed to encode result")
			}

			return nil
		},
	}
}
