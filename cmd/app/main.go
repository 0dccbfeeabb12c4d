// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/glennballman/Community-Canvas-sub004/cmd/app/commands"
)

var version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Community Canvas authorization service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "seed-catalog",
				Usage: "Mirror the compiled capability catalog into the database",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSeedCatalog(ctx)
				},
			},
			{
				Name:  "clean-audit-records",
				Usage: "Delete audit records older than specified days",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Value:   0,
						Usage:   "Delete audit records older than this many days (0 uses AUDIT_RETENTION_DAYS)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanAuditRecords(ctx, cmd.Int("days"), cmd.String("format"))
				},
			},
			{
				Name:  "expire-machine-sessions",
				Usage: "Expire machine control sessions older than the maximum age",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-age-minutes",
						Aliases: []string{"m"},
						Value:   0,
						Usage:   "Expire active sessions older than this many minutes (0 uses MACHINE_SESSION_MAX_AGE_MINUTES)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunExpireMachineSessions(ctx, cmd.Int("max-age-minutes"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
