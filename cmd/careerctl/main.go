// Command careerctl runs maintenance jobs against the career catalog.
package main

import (
	"fmt"
	"os"

	"career-sync/internal/app"
	"career-sync/internal/config"
	"career-sync/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Career Sync maintenance commands",
	Long:          "careerctl applies migrations, seeds the career catalog, backfills career embeddings and regenerates stored matches.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withContainer loads config, builds the dependency container and releases
// it after fn returns.
func withContainer(fn func(c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	c, err := app.NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warn("container close failed", zap.Error(err))
		}
	}()

	return fn(c)
}
