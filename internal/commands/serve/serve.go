package serve

import (
	"context"
	"errors"
	"time"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/commands"
	"github.com/thomas-vilte/prtitle/internal/config"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/metrics"
	"github.com/thomas-vilte/prtitle/internal/providers"
	"github.com/thomas-vilte/prtitle/internal/services"
	"github.com/thomas-vilte/prtitle/internal/webhook"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

type ServeCommand struct{}

func NewServeCommand() *ServeCommand {
	return &ServeCommand{}
}

func (c *ServeCommand) CreateCommand(rt *commands.Runtime) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the GitHub App webhook server",
		Before: commands.Bootstrap(rt, ""),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "override server.port",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if port := cmd.Int("port"); port > 0 {
				rt.Config.Server.Port = port
			}

			server, err := BuildServer(ctx, rt.Config, rt.Translations)
			if err != nil {
				logger.Error(ctx, "failed to build webhook server", err)
				return err
			}

			return run(ctx, server, rt.Config.ListenAddr(), rt.Translations)
		},
	}
}

// BuildServer wires the completion provider, the GitHub client factory and
// both services into a webhook server.
func BuildServer(ctx context.Context, cfg *config.Config, t *i18n.Translations) (*webhook.Server, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}

	suggester, err := providers.NewTitleSuggester(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clients, err := providers.NewVCSClientFactory(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	titles := services.NewTitleService(
		services.WithTitleClientFactory(clients),
		services.WithTitleSuggester(ai.NewTrackingSuggester(suggester, m)),
		services.WithTitleTranslations(t),
		services.WithTitleMetrics(m),
	)
	issues := services.NewIssueService(
		services.WithIssueClientFactory(clients),
		services.WithIssueTranslations(t),
	)

	router := webhook.NewDefaultRouter(titles, issues)

	logger.Info(ctx, "webhook routes registered",
		"path", cfg.Server.WebhookPath,
		"kinds", router.Kinds(),
		"provider", suggester.ProviderName(),
		"model", cfg.AI.ModelName(),
		"github_app", cfg.GitHub.UsesApp())

	return webhook.NewServer(cfg.Server, router,
		webhook.WithMetrics(m),
		webhook.WithLogger(logger.FromContext(ctx)),
	), nil
}

// run serves until ctx is cancelled, then drains in-flight deliveries.
func run(ctx context.Context, server *webhook.Server, addr string, t *i18n.Translations) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	logger.Info(ctx, t.GetMessage("serve_listening", 0, map[string]interface{}{"Addr": addr}))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down webhook server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
