package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/irisforge/irisd/internal/commands"
)

// NewAuthCommand returns the "auth" subcommand group, driving the
// auth_status / switch_model slash commands directly from the CLI
// instead of through a running task's decision loop.
func NewAuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Inspect or change model provider auth state",
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "Report a provider's health",
				ArgsUsage: "<provider>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSlashCommand(ctx, cmd, "/auth status "+cmd.Args().First())
				},
			},
			{
				Name:      "switch",
				Usage:     "Switch the active provider",
				ArgsUsage: "<provider>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSlashCommand(ctx, cmd, "/switch model "+cmd.Args().First())
				},
			},
		},
	}
}

// runSlashCommand builds a bare ExecContext (no active task) and runs text
// through the built-in command registry, printing the result.
func runSlashCommand(ctx context.Context, cmd *cli.Command, text string) error {
	a, err := newApp(configPath(cmd))
	if err != nil {
		return err
	}
	registry := commands.NewRegistry()
	execCtx := commands.ExecContext{
		Ctx:      ctx,
		Router:   a.router,
		Registry: a.registry,
		Metrics:  a.metrics,
		Now:      time.Now(),
	}
	result, handled := registry.Execute(text, execCtx)
	if !handled {
		return fmt.Errorf("no command matched %q", text)
	}
	fmt.Println(result.Output)
	if !result.Success {
		return fmt.Errorf("command failed")
	}
	return nil
}
