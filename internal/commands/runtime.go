package commands

import (
	"context"
	"log/slog"

	"github.com/thomas-vilte/prtitle/internal/config"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/urfave/cli/v3"
)

const (
	FlagConfig = "config"
	FlagDebug  = "debug"
)

// Runtime holds what every subcommand needs once the global flags are known.
// It is filled by the Before hook returned from Bootstrap.
type Runtime struct {
	Config       *config.Config
	Translations *i18n.Translations
	Logger       *slog.Logger
}

// GlobalFlags are declared on the root command and inherited by subcommands.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   "path to a YAML config file",
			Sources: cli.EnvVars("PRTITLE_CONFIG"),
		},
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: "enable debug logging",
		},
	}
}

// Bootstrap loads configuration, logging and translations into rt.
// An empty format uses the configured log.format.
func Bootstrap(rt *Runtime, format logger.Format) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		cfg, err := config.Load(cmd.String(FlagConfig))
		if err != nil {
			return ctx, err
		}

		logFormat := format
		if logFormat == "" {
			logFormat = logger.Format(cfg.Log.Format)
		}
		log := logger.Initialize(logger.Options{
			Level:  cfg.Log.Level,
			Format: logFormat,
			Debug:  cmd.Bool(FlagDebug),
			Writer: cmd.Root().ErrWriter,
		})

		translations, err := i18n.NewTranslations(cfg.Language)
		if err != nil {
			return ctx, err
		}

		rt.Config = cfg
		rt.Translations = translations
		rt.Logger = log

		if cfg.PathFile != "" {
			log.Debug("configuration loaded", "path", cfg.PathFile)
		}

		return logger.WithLogger(ctx, log), nil
	}
}
