package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate status

import (
	"os"

	"github.com/spf13/cobra"

	"career-backend/internal/shared/config"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or inspect the career database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newDirectionCmd(db.Up, "Apply all pending migrations"),
		newDirectionCmd(db.Down, "Roll back the most recent migration"),
		newDirectionCmd(db.Status, "Print migration status"),
	)
	return root
}

func newDirectionCmd(dir db.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(dir),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, dir)
			if err != nil {
				telemetry.Error("migrate.failed", map[string]any{"direction": string(dir), "error": err})
			}
			return err
		},
	}
}

func run(cmd *cobra.Command, dir db.Direction) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	telemetry.Init(cfg.Env)
	defer telemetry.Sync()

	ctx := cmd.Context()
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, dir); err != nil {
		return err
	}
	telemetry.Info("migrate.done", map[string]any{"direction": string(dir)})
	return nil
}
