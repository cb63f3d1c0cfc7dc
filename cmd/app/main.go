// Command fintrack runs the finance API and its operator tasks: schema migrations,
// master key generation, user creation and data key provisioning.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fintrack/cmd/app/commands"
	"github.com/allisson/fintrack/internal/app"
	"github.com/allisson/fintrack/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "fintrack",
		Usage:    "Personal finance tracker with per-user field encryption",
		Version:  version,
		Commands: append(systemCommands(), operatorCommands()...),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func systemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API (and the metrics listener when enabled)",
			Action: func(ctx context.Context, _ *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply pending migrations for DB_DRIVER",
			Action: withContainer(func(ctx context.Context, _ *cli.Command, cfg *config.Config, c *app.Container) error {
				return commands.RunMigrations(c.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			}),
		},
	}
}

type containerAction func(ctx context.Context, cmd *cli.Command, cfg *config.Config, c *app.Container) error

// withContainer loads the configuration, builds a container and shuts it down once fn
// returns.
func withContainer(fn containerAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.Load()
		container := app.NewContainer(cfg)
		defer func() { _ = container.Shutdown(ctx) }()
		return fn(ctx, cmd, cfg, container)
	}
}
