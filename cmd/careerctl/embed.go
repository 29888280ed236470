package main

import (
	"context"
	"fmt"
	"time"

	"career-sync/internal/app"
	"career-sync/internal/usecase"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed-careers",
	Short: "Compute embeddings for careers that have none",
	RunE:  runEmbed,
}

var (
	embedBatch   int
	embedTimeout time.Duration
)

func init() {
	embedCmd.Flags().IntVar(&embedBatch, "batch", 25, "Careers embedded per round")
	embedCmd.Flags().DurationVar(&embedTimeout, "timeout", 10*time.Minute, "Abort the backfill after this long")

	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, _ []string) error {
	return withContainer(func(c *app.Container) error {
		if len(c.Embeddings.Providers()) == 0 {
			return fmt.Errorf("no embedding provider configured")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), embedTimeout)
		defer cancel()

		report, err := usecase.NewEmbeddingBackfill(c.Careers, c.Embeddings, c.Cache, c.Logger.Named("backfill"), embedBatch).Run(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("embedded %d careers, %d failed\n", report.Updated, report.Failed)
		return nil
	})
}
