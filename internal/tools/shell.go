package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/irisforge/irisd/internal/sandbox"
)

// ShellTool is the one built-in Tool every Worker ships with: it hands its
// "command" argument to a Sandbox and reports back stdout/stderr/exit code,
// the same contract the original agent's shell tool exposed to the model.
type ShellTool struct {
	sandbox *sandbox.Sandbox
}

// NewShellTool builds a Tool that runs shell commands through sb. sb must
// be non-nil; irisd never registers an unsandboxed shell.
func NewShellTool(sb *sandbox.Sandbox) *ShellTool {
	return &ShellTool{sandbox: sb}
}

func (t *ShellTool) Schema() Schema {
	return Schema{
		Name:        "shell",
		Description: "Run a shell command inside the sandbox and return its output.",
		Parameters: map[string]ParamSpec{
			"command": {Type: "string", Description: "shell command to execute", Required: true},
			"timeout": {Type: "string", Description: "timeout in seconds (default 30, max 300)"},
		},
	}
}

func (t *ShellTool) Execute(ctx context.Context, args map[string]string) Result {
	command := args["command"]
	if command == "" {
		return Result{Error: "shell: command is required"}
	}

	timeoutSecs := 0
	if raw := args["timeout"]; raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			timeoutSecs = n
		}
	}

	res, err := t.sandbox.Run(ctx, command, "", timeoutSecs)
	if err != nil {
		return Result{Error: fmt.Sprintf("Security violation in shell: %s", err)}
	}
	if res.ExitCode != 0 {
		return Result{Output: res.Stdout, Error: fmt.Sprintf("exit %d: %s", res.ExitCode, res.Stderr)}
	}
	return Result{Output: res.Stdout}
}

var _ Tool = (*ShellTool)(nil)
