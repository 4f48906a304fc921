package check

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/thomas-vilte/prtitle/internal/commands"
	"github.com/thomas-vilte/prtitle/internal/conventional"
	"github.com/thomas-vilte/prtitle/internal/i18n"
	"github.com/thomas-vilte/prtitle/internal/logger"
	"github.com/urfave/cli/v3"
)

type CheckCommand struct{}

func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

func (c *CheckCommand) CreateCommand(rt *commands.Runtime) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "check whether a title follows the conventional commit format",
		ArgsUsage: "<title>",
		Before:    commands.Bootstrap(rt, logger.FormatPretty),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title := strings.Join(cmd.Args().Slice(), " ")

			conforms := c.report(cmd.Root().Writer, rt.Translations, title)

			logger.Debug(ctx, "title classified", "title", title, "conforms", conforms)

			if !conforms {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// report prints the verdict for title and returns it.
func (c *CheckCommand) report(w io.Writer, t *i18n.Translations, title string) bool {
	data := map[string]interface{}{"Title": title}

	if parsed, ok := conventional.Parse(title); ok {
		_, _ = fmt.Fprintln(w, color.GreenString("✔ %s", t.GetMessage("check_conforms", 0, data)))
		_, _ = fmt.Fprintln(w, color.HiBlackString("  type=%s scope=%s", parsed.Type, parsed.Scope))
		return true
	}

	_, _ = fmt.Fprintln(w, color.RedString("✘ %s", t.GetMessage("check_not_conforming", 0, data)))
	_, _ = fmt.Fprintln(w, color.YellowString("  %s", t.GetMessage("check_allowed_types", 0,
		map[string]interface{}{"Types": strings.Join(conventional.Types, ", ")})))
	return false
}
