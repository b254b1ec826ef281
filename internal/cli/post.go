package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/output"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Read and write the social feed",
}

var postAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Publish a post",
	Long: `Publish a post to the social feed.

Examples:
  finverse post add --author Ada "Looking for a SaaS co-founder"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPostAdd,
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the feed, newest first",
	Long: `Show the social feed.

Examples:
  finverse post list
  finverse post list --since=7d`,
	RunE: runPostList,
}

var postLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostLike,
}

var (
	postAuthor string
	postSince  string
	postLimit  int
)

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postLikeCmd)

	postAddCmd.Flags().StringVar(&postAuthor, "author", "", "Author profile name or ID")
	_ = postAddCmd.MarkFlagRequired("author")

	postListCmd.Flags().StringVar(&postSince, "since", "", "Filter by time (e.g., 7d, 2w, 1m)")
	postListCmd.Flags().IntVar(&postLimit, "limit", 0, "Maximum number of results")
}

func runPostAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	author, err := db.FindProfile(ctx, postAuthor)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if author == nil {
		return fmt.Errorf("profile not found: %s", postAuthor)
	}

	p := &database.Post{
		AuthorID: author.ID,
		Body:     strings.Join(args, " "),
	}
	if err := db.CreatePost(ctx, p); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	logger.Info("post created", "id", p.ID, "author", author.ID)

	if outputFmt == "json" {
		return output.JSON(p)
	}
	fmt.Printf("Posted as %s (%s)\n", author.Name, p.ID)
	return nil
}

func runPostList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts := database.ListOptions{Limit: postLimit}
	if postSince != "" {
		since, err := parseDuration(postSince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-since)
		opts.Since = &sinceTime
	}

	_, db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	posts, err := db.ListPosts(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	return output.Output(outputFmt, posts)
}

func runPostLike(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, db, _, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	likes, err := db.LikePost(ctx, args[0])
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("post not found: %s", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}

	fmt.Printf("Liked (%d)\n", likes)
	return nil
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'h':
		return time.Duration(value) * time.Hour, nil
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use h, d, w, or m)", unit)
	}
}
