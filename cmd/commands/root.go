package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/irisforge/irisd/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand(version, commit string) *cli.Command {
	return &cli.Command{
		Name:    "irisd",
		Usage:   "Autonomous task execution daemon",
		Version: version + " (" + commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
		},
		Commands: []*cli.Command{
			NewTaskAddCommand(),
			NewTaskListCommand(),
			NewTaskStatusCommand(),
			NewTaskLogsCommand(),
			NewRunCommand(),
			NewAuthCommand(),
			NewIRISCommand(),
		},
	}
}

func configPath(cmd *cli.Command) string {
	if v := cmd.String("config"); v != "" {
		return v
	}
	return config.ConfigPath()
}
