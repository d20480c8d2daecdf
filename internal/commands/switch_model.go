package commands

import (
	"fmt"
	"regexp"
	"strings"
)

var switchModelRe = regexp.MustCompile(`/switch\s+(?:model|provider)\s+(\w+)`)

// SwitchModelCommand changes the active model provider mid-execution.
type SwitchModelCommand struct{ baseCommand }

// NewSwitchModelCommand returns the "/switch model <provider>" command.
func NewSwitchModelCommand() *SwitchModelCommand {
	return &SwitchModelCommand{baseCommand{
		name:        "switch_model",
		description: "Switch to a different model provider",
		triggers:    []string{"/switch model", "/switch provider", "/change model"},
	}}
}

func (c *SwitchModelCommand) ParseArgs(text string) map[string]string {
	m := switchModelRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return nil
	}
	return map[string]string{"provider": m[1]}
}

func (c *SwitchModelCommand) Execute(ctx ExecContext, args map[string]string) Result {
	if ctx.Registry == nil {
		return Result{Output: "Model router not available"}
	}
	provider := args["provider"]
	if provider == "" {
		return Result{Output: "No provider specified for switch"}
	}

	known := false
	for _, name := range ctx.Registry.Names() {
		if name == provider {
			known = true
			break
		}
	}
	if !known {
		return Result{Output: fmt.Sprintf("Provider '%s' not found. Available: %s", provider, strings.Join(ctx.Registry.Names(), ", "))}
	}

	if ctx.Metrics != nil {
		available, err := ctx.Metrics.IsAvailable(provider)
		if err == nil && !available {
			return Result{Output: fmt.Sprintf("Provider '%s' is not currently available", provider)}
		}
	}

	p, err := ctx.Registry.Get(ctx.Ctx, provider)
	if err != nil {
		return Result{Output: fmt.Sprintf("Model switch failed: %v", err)}
	}

	output := fmt.Sprintf("Switched to provider: %s\nAuth Type: %s\nStreaming: %v", provider, p.AuthType(), p.SupportsStreaming())
	return Result{
		Success:      true,
		Output:       output,
		StateChanges: StateChanges{SwitchProvider: provider},
	}
}
