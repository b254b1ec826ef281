package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile",
	Long: `Create a profile. Interests are the keywords used for matchmaking.

Examples:
  finverse profile add "Ada Lovelace" --interests ai,blockchain,saas
  finverse profile add Grace --email grace@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileAdd,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileInterestsCmd = &cobra.Command{
	Use:   "interests <name|id> [keyword...]",
	Short: "Replace a profile's interests",
	Long: `Replace a profile's interest keywords.

Examples:
  finverse profile interests Ada ai saas fintech
  finverse profile interests Ada --clear`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProfileInterests,
}

var (
	profileEmail     string
	profileBio       string
	profileInterests []string
	profileLimit     int
	profileClear     bool
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileInterestsCmd)

	profileAddCmd.Flags().StringVar(&profileEmail, "email", "", "Contact email")
	profileAddCmd.Flags().StringVar(&profileBio, "bio", "", "Short bio")
	profileAddCmd.Flags().StringSliceVar(&profileInterests, "interests", nil, "Interest keywords (comma-separated)")

	profileListCmd.Flags().IntVar(&profileLimit, "limit", 0, "Maximum number of results")

	profileInterestsCmd.Flags().BoolVar(&profileClear, "clear", false, "Remove all interests")
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p := &database.Profile{
		Name:      args[0],
		Interests: profileInterests,
	}
	if profileEmail != "" {
		p.Email = &profileEmail
	}
	if profileBio != "" {
		p.Bio = &profileBio
	}

	if err := db.CreateProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	logger.Info("profile created", "id", p.ID, "interests", len(p.Interests))

	if outputFmt == "json" {
		return output.JSON(p)
	}
	fmt.Printf("Created profile %s (%s)\n", p.Name, p.ID)
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	profiles, err := db.ListProfiles(ctx, database.ListOptions{Limit: profileLimit})
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	return output.Output(outputFmt, profiles)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.FindProfile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if p == nil {
		return fmt.Errorf("profile not found: %s", args[0])
	}

	return output.Output(outputFmt, p)
}

func runProfileInterests(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var interests []string
	switch {
	case profileClear:
		// nil clears the column
	case len(args) > 1:
		interests = args[1:]
	default:
		return errors.New("give at least one keyword, or --clear")
	}

	_, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.FindProfile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if p == nil {
		return fmt.Errorf("profile not found: %s", args[0])
	}

	if err := db.SetInterests(ctx, p.ID, interests); err != nil {
		return fmt.Errorf("failed to update interests: %w", err)
	}
	logger.Info("interests updated", "profile", p.ID, "count", len(interests))

	fmt.Printf("Updated interests for %s\n", p.Name)
	return nil
}
