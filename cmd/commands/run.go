package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/irisforge/irisd/internal/profile"
)

// NewRunCommand returns the "run" subcommand: drains every PENDING task
// through a worker pool sized from config (or --workers), blocking until
// the queue and every active task have drained, the process is
// interrupted, or RunAllPending's 300-second timeout elapses. Per-task remote delegation and collaboration strategy are
// the Supervisor's own concern (see internal/supervisor).
func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run every pending task to completion",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "workers", Usage: "Worker pool size (0 = config default)"},
			&cli.StringFlag{Name: "profile", Usage: "Named profile to run workers under", Value: "balanced"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(configPath(cmd))
			if err != nil {
				return err
			}

			p, ok := a.profiles.Get(cmd.String("profile"))
			if !ok {
				p = profile.Balanced
			}

			maxWorkers := int(cmd.Int("workers"))
			if maxWorkers <= 0 {
				maxWorkers = a.cfg.Supervisor.MaxWorkers
			}

			sup := a.newSupervisor(maxWorkers, p)
			sup.Start(ctx)
			defer sup.Stop()

			summary, err := sup.RunAllPending(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("total=%d completed=%d failed=%d queued=%d active_workers=%d\n",
				summary.Total, summary.Completed, summary.Failed, summary.Queued, summary.ActiveWorkers)
			return nil
		},
	}
}
