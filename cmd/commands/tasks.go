package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewTaskAddCommand returns the "add" subcommand, creating a new PENDING
// task from its goal text.
func NewTaskAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a new task",
		ArgsUsage: "<goal>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "priority", Usage: "Task priority (higher runs first)"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			goal := cmd.Args().First()
			if goal == "" {
				return fmt.Errorf("usage: irisd add <goal>")
			}
			a, err := newApp(configPath(cmd))
			if err != nil {
				return err
			}
			task, err := a.tasks.Create(goal)
			if err != nil {
				return err
			}
			if p := cmd.Int("priority"); p != 0 {
				task.Priority = int(p)
				if err := a.tasks.Update(task); err != nil {
					return err
				}
			}
			fmt.Printf("created task %d: %s\n", task.ID, task.Goal)
			return nil
		},
	}
}

// NewTaskListCommand returns the "list" subcommand.
func NewTaskListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every task",
		Action: func(_ context.Context, cmd *cli.Command) error {
			a, err := newApp(configPath(cmd))
			if err != nil {
				return err
			}
			all, err := a.tasks.ListAll()
			if err != nil {
				return err
			}
			for _, t := range all {
				fmt.Printf("%4d  %-8s  %s\n", t.ID, t.Status, t.Goal)
			}
			return nil
		},
	}
}

// NewTaskStatusCommand returns the "status" subcommand, printing one
// task's current state.
func NewTaskStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show a task's status",
		ArgsUsage: "<task-id>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			id, err := parseTaskID(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(configPath(cmd))
			if err != nil {
				return err
			}
			t, err := a.tasks.Get(id)
			if err != nil {
				return err
			}
			fmt.Printf("task %d: %s\nstatus: %s\nsteps: %d\nupdated: %s\n",
				t.ID, t.Goal, t.Status, len(t.Steps), t.UpdatedAt)
			return nil
		},
	}
}

// NewTaskLogsCommand returns the "logs" subcommand, printing a task's
// step log.
func NewTaskLogsCommand() *cli.Command {
	return &cli.Command{
		Name:      "logs",
		Usage:     "Show a task's step log",
		ArgsUsage: "<task-id>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "tail", Usage: "Only show the last N steps"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			id, err := parseTaskID(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(configPath(cmd))
			if err != nil {
				return err
			}
			t, err := a.tasks.Get(id)
			if err != nil {
				return err
			}
			steps := t.Steps
			if n := int(cmd.Int("tail")); n > 0 {
				steps = t.LastSteps(n)
			}
			for _, s := range steps {
				line := fmt.Sprintf("[%d] %s: %s", s.StepID, s.Action, s.Result)
				if s.Error != "" {
					line = fmt.Sprintf("[%d] %s: ERROR %s", s.StepID, s.Action, s.Error)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func parseTaskID(cmd *cli.Command) (int, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("usage: irisd <subcommand> <task-id>")
	}
	var id int
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

