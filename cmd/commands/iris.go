package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/irisforge/irisd/internal/iris"
)

// NewIRISCommand returns the "iris" subcommand group, driving the
// deterministic READ→PLAN→WRITE enforcement engine over a project
// directory directly from the CLI.
func NewIRISCommand() *cli.Command {
	return &cli.Command{
		Name:  "iris",
		Usage: "Deterministic read/plan/write task execution",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project", Usage: "Project root (defaults to the configured data directory)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Initialize an IRIS context for a project",
				ArgsUsage: "<project-name>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					a, err := newApp(configPath(cmd))
					if err != nil {
						return err
					}
					mgr, err := a.irisManager(cmd.String("project"))
					if err != nil {
						return err
					}
					created, err := mgr.Initialize(cmd.Args().First())
					if err != nil {
						return err
					}
					if created {
						fmt.Println("initialized new IRIS context")
					} else {
						fmt.Println("IRIS context already present")
					}
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "Run a task through READ→PLAN→WRITE→VERIFY",
				ArgsUsage: "<task-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := parseTaskID(cmd)
					if err != nil {
						return err
					}
					a, err := newApp(configPath(cmd))
					if err != nil {
						return err
					}
					root := cmd.String("project")
					if root == "" {
						root = a.cfg.DataDir
					}
					mgr, err := a.irisManager(root)
					if err != nil {
						return err
					}
					loop := iris.NewAgentLoop(root, mgr, a.tasks, a.router, nil)
					ok, err := loop.ExecuteTask(ctx, id)
					if err != nil {
						return err
					}
					if ok {
						fmt.Println("task completed")
					} else {
						fmt.Println("task did not complete; see journal for details")
					}
					return nil
				},
			},
			{
				Name:  "logs",
				Usage: "Print the IRIS journal",
				Action: func(_ context.Context, cmd *cli.Command) error {
					a, err := newApp(configPath(cmd))
					if err != nil {
						return err
					}
					mgr, err := a.irisManager(cmd.String("project"))
					if err != nil {
						return err
					}
					journal, err := mgr.LoadJournal()
					if err != nil {
						return err
					}
					for _, e := range journal.Entries {
						fmt.Printf("[task %d] %s: %s\n", e.TaskID, e.Phase, e.Desc)
					}
					return nil
				},
			},
		},
	}
}
