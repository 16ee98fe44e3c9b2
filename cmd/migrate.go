package main

import (
	"context"
	"fmt"

	root "loan-offers"
	"loan-offers/internal/infrastructure/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(apply func(m *postgres.Migrator, ctx context.Context) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := postgres.NewConnectionPool(ctx, a.cfg.Database, a.logger)
			if err != nil {
				return fmt.Errorf("could not connect to database: %w", err)
			}
			defer pool.Close()

			db := postgres.OpenSQLDB(pool)
			defer db.Close()

			migrator, err := postgres.NewMigrator(db, root.Migrations, a.logger)
			if err != nil {
				return err
			}
			return apply(migrator, ctx)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  run((*postgres.Migrator).Up),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE:  run((*postgres.Migrator).Down),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the status of every migration",
			RunE:  run((*postgres.Migrator).Status),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: run(func(m *postgres.Migrator, ctx context.Context) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			}),
		},
	)
	return cmd
}
