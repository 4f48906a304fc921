package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomas-vilte/prtitle/internal/commands"
	"github.com/thomas-vilte/prtitle/internal/commands/check"
	"github.com/thomas-vilte/prtitle/internal/commands/remediate"
	"github.com/thomas-vilte/prtitle/internal/commands/serve"
	"github.com/thomas-vilte/prtitle/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	rt := &commands.Runtime{}

	return &cli.Command{
		Name:    "prtitle",
		Usage:   "keep pull request titles in Conventional Commits form",
		Version: version.FullVersion(),
		Flags:   commands.GlobalFlags(),
		Commands: []*cli.Command{
			serve.NewServeCommand().CreateCommand(rt),
			check.NewCheckCommand().CreateCommand(rt),
			remediate.NewRemediateCommand(nil).CreateCommand(rt),
		},
		EnableShellCompletion: true,
	}
}
