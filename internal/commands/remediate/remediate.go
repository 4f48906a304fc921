package remediate

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/thomas-vilte/prtitle/internal/commands"
	"github.com/thomas-vilte/prtitle/internal/config"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/thomas-vilte/prtitle/internal/models"
	"github.com/thomas-vilte/prtitle/internal/providers"
	"github.com/thomas-vilte/prtitle/internal/services"
	"github.com/urfave/cli/v3"
)

// TitleValidator is a minimal interface for testing purposes
type TitleValidator interface {
	ValidatePullRequest(ctx context.Context, ev models.PullRequestEvent) (models.RemediationResult, error)
}

// TitleServiceProvider builds the TitleValidator once configuration is loaded.
type TitleServiceProvider func(ctx context.Context, cfg *config.Config, t *i18n.Translations) (TitleValidator, error)

type RemediateCommand struct {
	provider TitleServiceProvider
}

func NewRemediateCommand(provider TitleServiceProvider) *RemediateCommand {
	if provider == nil {
		provider = DefaultTitleServiceProvider
	}
	return &RemediateCommand{provider: provider}
}

// DefaultTitleServiceProvider wires the configured completion provider and
// GitHub credentials.
func DefaultTitleServiceProvider(ctx context.Context, cfg *config.Config, t *i18n.Translations) (TitleValidator, error) {
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

	return services.NewTitleService(
		services.WithTitleClientFactory(clients),
		services.WithTitleSuggester(suggester),
		services.WithTitleTranslations(t),
	), nil
}

func (c *RemediateCommand) CreateCommand(rt *commands.Runtime) *cli.Command {
	return &cli.Command{
		Name:   "remediate",
		Usage:  "run the title check once against a pull request",
		Before: commands.Bootstrap(rt, logger.FormatPretty),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "owner",
				Usage:    "repository owner",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "repo",
				Usage:    "repository name",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "pr-number",
				Aliases:  []string{"n"},
				Usage:    "pull request number",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "title",
				Usage:    "current pull request title",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "installation-id",
				Usage: "GitHub App installation id (uses github.token when omitted)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()

			ev := models.PullRequestEvent{
				Action:         "manual",
				Owner:          cmd.String("owner"),
				Repo:           cmd.String("repo"),
				Number:         cmd.Int("pr-number"),
				Title:          cmd.String("title"),
				InstallationID: cmd.Int64("installation-id"),
			}

			if ev.Number <= 0 {
				return fmt.Errorf("pr-number must be positive")
			}

			log.Info("executing remediate command",
				"repo", ev.FullRepo(),
				"number", ev.Number)

			svc, err := c.provider(ctx, rt.Config, rt.Translations)
			if err != nil {
				log.Error("failed to create title service", "error", err)
				return err
			}

			result, err := svc.ValidatePullRequest(ctx, ev)
			if err != nil {
				log.Error("title check failed",
					"error", err,
					"duration", time.Since(start))
				return err
			}

			w := cmd.Root().Writer
			data := map[string]interface{}{"Number": ev.Number, "Title": result.SuggestedTitle}
			if result.Conforms {
				_, _ = fmt.Fprintln(w, color.GreenString(rt.Translations.GetMessage("remediate_conforms", 0, data)))
			} else {
				_, _ = fmt.Fprintln(w, color.CyanString(rt.Translations.GetMessage("remediate_updated", 0, data)))
			}

			log.Debug("remediate command finished", "duration", time.Since(start))
			return nil
		},
	}
}
