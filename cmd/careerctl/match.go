package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-sync/internal/app"
	"career-sync/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Regenerate stored career matches",
	Long:  "Regenerates career matches for one user (--user) or for every user with a profile (--all).",
	RunE:  runMatch,
}

var (
	matchUser    string
	matchAll     bool
	matchLimit   int
	matchTimeout time.Duration
)

func init() {
	matchCmd.Flags().StringVar(&matchUser, "user", "", "User ID to regenerate matches for")
	matchCmd.Flags().BoolVar(&matchAll, "all", false, "Regenerate matches for every user with a profile")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "Matches kept per user (default MATCHING_DEFAULT_LIMIT, at most MATCHING_MAX_LIMIT)")
	matchCmd.Flags().DurationVar(&matchTimeout, "timeout", 30*time.Minute, "Abort the run after this long")
	matchCmd.MarkFlagsMutuallyExclusive("user", "all")
	matchCmd.MarkFlagsOneRequired("user", "all")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchLimit < 0 {
		return errors.New("--limit must be positive")
	}

	var userID uuid.UUID
	if matchUser != "" {
		id, err := uuid.Parse(matchUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		userID = id
	}

	return withContainer(func(c *app.Container) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), matchTimeout)
		defer cancel()

		limit, err := resolveMatchLimit(matchLimit, c.Config.Matching.DefaultLimit, c.Config.Matching.MaxLimit)
		if err != nil {
			return err
		}

		refresh := usecase.NewMatchRefresh(c.UserQueries, c.Profile, c.Matching, c.Logger.Named("refresh"))
		if !matchAll {
			n, err := refresh.RefreshUser(ctx, userID, limit)
			if err != nil {
				return err
			}
			cmd.Printf("stored %d matches for %s\n", n, userID)
			return nil
		}

		report, err := refresh.RefreshAll(ctx, limit)
		if err != nil {
			return err
		}
		cmd.Printf("users=%d refreshed=%d incomplete=%d failed=%d\n",
			report.Users, report.Refreshed, report.Incomplete, report.Failed)
		return nil
	})
}

// resolveMatchLimit applies the same defaults as the HTTP generate endpoint
// but rejects values above max instead of clamping them.
func resolveMatchLimit(flag, defaultLimit, maxLimit int) (int, error) {
	if maxLimit <= 0 {
		maxLimit = 20
	}
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(10, maxLimit)
	}
	switch {
	case flag == 0:
		return defaultLimit, nil
	case flag > maxLimit:
		return 0, fmt.Errorf("--limit %d exceeds MATCHING_MAX_LIMIT (%d)", flag, maxLimit)
	}
	return flag, nil
}
