package main

import (
	"context"
	"time"

	"career-sync/internal/app"
	"career-sync/internal/database/seeder"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter career catalog",
	Long:  "Inserts the bundled career catalog. Careers whose title already exists are left untouched.",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	return withContainer(func(c *app.Container) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, c.DB); err != nil {
			return err
		}
		if err := c.Cache.InvalidateCatalog(ctx); err != nil {
			c.Logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
		c.Logger.Info("seed finished")
		return nil
	})
}
