package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/output"
)

var startupCmd = &cobra.Command{
	Use:   "startup",
	Short: "Manage the startup discovery feed",
}

var startupAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "List a new startup",
	Long: `List a new startup in the discovery feed.

Examples:
  finverse startup add Kite --keywords saas,fintech --sector fintech
  finverse startup add Bayrack --keywords ai,blockchain,saas --goal 500000 --raised 125000`,
	Args: cobra.ExactArgs(1),
	RunE: runStartupAdd,
}

var startupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List startups, newest first",
	Long: `List startups in the discovery feed.

Examples:
  finverse startup list
  finverse startup list --sector fintech
  finverse startup list -o json`,
	RunE: runStartupList,
}

var (
	startupTagline  string
	startupSector   string
	startupGoal     float64
	startupRaised   float64
	startupKeywords []string
	startupLimit    int
)

func init() {
	rootCmd.AddCommand(startupCmd)
	startupCmd.AddCommand(startupAddCmd)
	startupCmd.AddCommand(startupListCmd)

	startupAddCmd.Flags().StringVar(&startupTagline, "tagline", "", "One-line pitch")
	startupAddCmd.Flags().StringVar(&startupSector, "sector", "", "Industry sector")
	startupAddCmd.Flags().Float64Var(&startupGoal, "goal", 0, "Funding goal")
	startupAddCmd.Flags().Float64Var(&startupRaised, "raised", 0, "Funding raised so far")
	startupAddCmd.Flags().StringSliceVar(&startupKeywords, "keywords", nil, "Keywords (comma-separated)")

	startupListCmd.Flags().StringVar(&startupSector, "sector", "", "Filter by sector")
	startupListCmd.Flags().IntVar(&startupLimit, "limit", 0, "Maximum number of results")
}

func runStartupAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	s := &database.Startup{
		Name:          args[0],
		FundingGoal:   startupGoal,
		FundingRaised: startupRaised,
		Keywords:      startupKeywords,
	}
	if startupTagline != "" {
		s.Tagline = &startupTagline
	}
	if startupSector != "" {
		s.Sector = &startupSector
	}

	if err := db.CreateStartup(ctx, s); err != nil {
		return fmt.Errorf("failed to create startup: %w", err)
	}
	logger.Info("startup created", "id", s.ID, "keywords", len(s.Keywords))

	if outputFmt == "json" {
		return output.JSON(s)
	}
	fmt.Printf("Listed startup %s (%s)\n", s.Name, s.ID)
	return nil
}

func runStartupList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	opts := database.ListOptions{Limit: startupLimit}
	if startupSector != "" {
		opts.Sector = &startupSector
	}

	startups, err := db.ListStartups(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list startups: %w", err)
	}

	return output.Output(outputFmt, startups)
}
