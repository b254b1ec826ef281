package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/matching"
	"github.com/finverse/matchmaker/internal/matchmaker"
	"github.com/finverse/matchmaker/internal/output"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find the best match for a profile or keyword list",
	Long: `Score every candidate in a pool by how many keywords it shares with the
subject, and show the best one. Ties go to the earliest listed candidate.

The subject is either a profile's interests (--profile) or an explicit
keyword list (--keywords). Matching ignores case and surrounding spaces.

Examples:
  finverse match --profile Ada
  finverse match --keywords blockchain,ai,saas
  finverse match --profile Ada --pool profiles --all
  finverse match --profile Ada -o json`,
	RunE: runMatch,
}

var (
	matchProfile  string
	matchKeywords []string
	matchPool     string
	matchAll      bool
)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchProfile, "profile", "", "Profile name or ID whose interests are matched")
	matchCmd.Flags().StringSliceVar(&matchKeywords, "keywords", nil, "Explicit subject keywords (comma-separated)")
	matchCmd.Flags().StringVar(&matchPool, "pool", "", "Candidate pool: startups or profiles (default from config)")
	matchCmd.Flags().BoolVar(&matchAll, "all", false, "Show every candidate's score")
	matchCmd.MarkFlagsMutuallyExclusive("profile", "keywords")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if matchProfile == "" && len(matchKeywords) == 0 {
		return errors.New("--profile or --keywords is required")
	}

	cfg, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	poolName := matchPool
	if poolName == "" {
		poolName = cfg.Matching.DefaultPool
	}
	pool, err := database.ParsePoolSource(poolName)
	if err != nil {
		return err
	}

	service := matchmaker.New(db, db, logger)
	req := matchmaker.Request{Pool: pool}

	if len(matchKeywords) > 0 {
		service = service.WithSubjects(matchmaker.StaticKeywords(matchKeywords))
	} else {
		profile, err := db.FindProfile(ctx, matchProfile)
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if profile == nil {
			return fmt.Errorf("profile not found: %s", matchProfile)
		}
		req.SubjectID = profile.ID
	}

	result, err := service.Match(ctx, req)
	if errors.Is(err, matching.ErrEmptyPool) {
		fmt.Printf("No candidates to match: there are no %s yet.\n", pool)
		return nil
	}
	if err != nil {
		return fmt.Errorf("matchmaking failed: %w", err)
	}

	if outputFmt == "json" {
		return output.JSON(result)
	}
	if outputFmt != "table" && outputFmt != "" {
		return fmt.Errorf("unknown output format: %s", outputFmt)
	}

	NewTerminal().Reveal(ctx, "Finding your best match...", cfg.Matching.RevealDelay())

	return output.MatchResult(os.Stdout, result, cfg.Matching.ShowScores || matchAll)
}
