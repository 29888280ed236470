package main

import (
	"context"
	"fmt"
	"time"

	"career-sync/internal/app"
	"career-sync/internal/database/migration"
	"career-sync/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE:  runMigrate,
}

var (
	migrateDir     string
	migrateTimeout time.Duration
)

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "", "Read migrations from this directory instead of the embedded set")
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 2*time.Minute, "Abort when migrations take longer than this")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	return withContainer(func(c *app.Container) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
		defer cancel()

		r := migration.Runner{Dir: migrateDir, Log: c.Logger.Named("migrate")}
		if migrateDir == "" {
			r.FS = migrations.FS
		}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		return nil
	})
}
