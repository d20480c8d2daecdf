// Package commands implements irisd's urfave/cli/v3 CLI surface: one file
// per subcommand, wired against a shared app built from config.Config.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/irisforge/irisd/internal/commands"
	"github.com/irisforge/irisd/internal/config"
	"github.com/irisforge/irisd/internal/iris"
	"github.com/irisforge/irisd/internal/models"
	"github.com/irisforge/irisd/internal/node"
	"github.com/irisforge/irisd/internal/profile"
	"github.com/irisforge/irisd/internal/sandbox"
	"github.com/irisforge/irisd/internal/supervisor"
	"github.com/irisforge/irisd/internal/tasks"
	"github.com/irisforge/irisd/internal/tools"
	"github.com/irisforge/irisd/internal/worker"
)

// app bundles every collaborator a subcommand might need, built once from
// the resolved config.Config and shared across the process.
type app struct {
	cfg      *config.Config
	tasks    *tasks.Repository
	registry *models.Registry
	metrics  *models.Metrics
	router   *models.Router
	sandbox  *sandbox.Sandbox
	nodes    *node.Registry
	profiles *profile.Registry
	tools    *tools.Registry
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(config.NewLogger(cfg.Log))

	taskRepo := tasks.NewRepository(config.StateFile("tasks.json"))
	registry := models.NewRegistry(cfg.Models)
	metrics := models.NewMetrics(config.StateFile("model_metrics.json"))
	accounts := models.NewAccountManager(config.StateFile("accounts.json"))
	rotator := models.NewRotator(accounts)
	policy := models.NewPolicy(metrics)
	router := models.NewRouter(registry, metrics, policy, rotator)

	limits := sandbox.ResourceLimits{
		MaxCPUTimeSecs:    cfg.Sandbox.MaxCPUTime,
		MaxMemoryMB:       cfg.Sandbox.MaxMemoryMB,
		MaxProcesses:      cfg.Sandbox.MaxProcesses,
		MaxOpenFiles:      cfg.Sandbox.MaxOpenFiles,
		TimeoutKillSignal: true,
	}
	sb := sandbox.New(cfg.DataDir, cfg.Sandbox.Allowlist, cfg.Sandbox.Denylist, limits,
		config.StateFile("sandbox.log"))

	profiles, err := profile.NewRegistry(config.StateFile("profiles.json"))
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	toolRegistry := tools.NewRegistry()
	if err := toolRegistry.Register(tools.NewShellTool(sb)); err != nil {
		return nil, fmt.Errorf("register shell tool: %w", err)
	}

	return &app{
		cfg:      cfg,
		tasks:    taskRepo,
		registry: registry,
		metrics:  metrics,
		router:   router,
		sandbox:  sb,
		nodes:    node.NewRegistry(),
		profiles: profiles,
		tools:    toolRegistry,
	}, nil
}

// newSupervisor builds a Supervisor of maxWorkers Workers, each sharing
// the app's router/commands/tools/sandbox and the named profile.
func (a *app) newSupervisor(maxWorkers int, p profile.Profile) *supervisor.Supervisor {
	return supervisor.New(a.tasks, a.nodes, p, maxWorkers, a.cfg.Supervisor.MaxStepsDefault, func() *worker.Worker {
		return worker.New(a.router, commands.NewRegistry(), a.tools, a.sandbox, p)
	})
}

// irisManager returns an IRIS ContextManager rooted at the given project
// directory, defaulting to the configured data directory.
func (a *app) irisManager(projectRoot string) (*iris.ContextManager, error) {
	if projectRoot == "" {
		projectRoot = a.cfg.DataDir
	}
	return iris.NewContextManager(projectRoot)
}
