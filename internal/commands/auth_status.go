package commands

import (
	"fmt"
	"regexp"
	"strings"
)

var authStatusRe = regexp.MustCompile(`/auth\s+status\s+(\w+)`)

// AuthStatusCommand reports authentication/health status for a provider.
type AuthStatusCommand struct{ baseCommand }

// NewAuthStatusCommand returns the "/auth status [provider]" command.
func NewAuthStatusCommand() *AuthStatusCommand {
	return &AuthStatusCommand{baseCommand{
		name:        "auth_status",
		description: "Check authentication status for providers",
		triggers:    []string{"/auth status", "/auth check", "/check auth"},
	}}
}

func (c *AuthStatusCommand) ParseArgs(text string) map[string]string {
	m := authStatusRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return nil
	}
	return map[string]string{"provider": m[1]}
}

func (c *AuthStatusCommand) Execute(ctx ExecContext, args map[string]string) Result {
	if ctx.Registry == nil {
		return Result{Output: "Model router not available"}
	}

	provider := args["provider"]
	if provider == "" {
		provider = ctx.Registry.DefaultName()
	}

	p, err := ctx.Registry.Get(ctx.Ctx, provider)
	if err != nil {
		return Result{Output: fmt.Sprintf("Provider '%s' not found", provider)}
	}

	lines := []string{
		fmt.Sprintf("Provider: %s", provider),
		fmt.Sprintf("Auth Type: %s", p.AuthType()),
		fmt.Sprintf("Streaming: %v", p.SupportsStreaming()),
	}

	if ctx.Metrics != nil {
		health, err := ctx.Metrics.GetHealth(provider)
		if err == nil {
			lines = append(lines,
				fmt.Sprintf("Available: %v", health.Available),
				fmt.Sprintf("Health Score: %.2f", health.HealthScore),
				fmt.Sprintf("Total Requests: %d", health.TotalRequests),
			)
			if health.InCooldown {
				lines = append(lines, "Status: In cooldown")
			}
		}
	}

	return Result{Success: true, Output: strings.Join(lines, "\n")}
}
