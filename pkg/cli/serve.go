package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/agent/tool/finance"
	"github.com/fintel-lab/pentarisk/pkg/cli/config"
	httpctrl "github.com/fintel-lab/pentarisk/pkg/controller/http"
	"github.com/fintel-lab/pentarisk/pkg/service/ratelimit"
	"github.com/fintel-lab/pentarisk/pkg/usecase"
	"github.com/fintel-lab/pentarisk/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var geminiCfg config.Gemini
	var repoCfg config.Repository
	var toolsCfg config.Tools
	var slackCfg config.Slack
	var sentryCfg config.Sentry
	var storageCfg config.Storage
	var profileCfg config.Profile

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PENTARISK_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, toolsCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flushSentry, err := sentryCfg.Configure(c.Version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer flushSentry()

			uc, repoClose, err := buildUseCases(ctx, &geminiCfg, &repoCfg, &toolsCfg,
				&slackCfg, &storageCfg, &profileCfg)
			if err != nil {
				return err
			}
			defer repoClose()

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// buildUseCases wires repository, LLM client, tools, and optional services
// into the use case layer. The returned closer releases the repository.
func buildUseCases(
	ctx context.Context,
	geminiCfg *config.Gemini,
	repoCfg *config.Repository,
	toolsCfg *config.Tools,
	slackCfg *config.Slack,
	storageCfg *config.Storage,
	profileCfg *config.Profile,
) (*usecase.UseCases, func(), error) {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	repoClose := func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}

	llmClient, err := geminiCfg.Configure(ctx)
	if err != nil {
		repoClose()
		return nil, nil, goerr.Wrap(err, "failed to configure LLM client")
	}

	tracker := ratelimit.New()

	services, err := toolsCfg.Configure(tracker)
	if err != nil {
		repoClose()
		return nil, nil, goerr.Wrap(err, "failed to configure data services")
	}

	profile, err := profileCfg.Configure()
	if err != nil {
		repoClose()
		return nil, nil, goerr.Wrap(err, "failed to load risk profile")
	}

	opts := []usecase.Option{
		usecase.WithTools(finance.New(services)),
		usecase.WithProfile(profile),
		usecase.WithTracker(tracker),
	}

	notifier, err := slackCfg.Configure()
	if err != nil {
		repoClose()
		return nil, nil, goerr.Wrap(err, "failed to configure slack")
	}
	if notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
		logging.Default().Info("Slack notification enabled")
	}

	archiver, err := storageCfg.Configure(ctx)
	if err != nil {
		repoClose()
		return nil, nil, goerr.Wrap(err, "failed to configure archive")
	}
	if archiver != nil {
		opts = append(opts, usecase.WithArchiver(archiver))
		logging.Default().Info("Report archival enabled")
	}

	return usecase.New(repo, llmClient, opts...), repoClose, nil
}
