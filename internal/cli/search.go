package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finverse/matchmaker/internal/output"
	"github.com/finverse/matchmaker/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search profiles, startups and posts",
	Long: `Search across profiles, startups and posts by name, text or keyword.
Names tolerate small typos, and word forms are matched by stem.

Examples:
  finverse search bayrack
  finverse search "blockchain engineers"
  finverse search kyte --kind startup`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var searchKinds []string

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceVar(&searchKinds, "kind", nil, "Restrict to entity types (profile, startup, post)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	cfg, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	docs, err := db.Documents(ctx)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	opts := search.Options{
		FuzzyThreshold: cfg.Search.FuzzyThreshold,
		Stemming:       cfg.Search.Stemming,
		Limit:          cfg.Search.Limit,
	}
	for _, k := range searchKinds {
		opts.Kinds = append(opts.Kinds, search.Kind(k))
	}

	results := search.Rank(query, docs, opts)
	logger.Debug("search ranked", "query", query, "documents", len(docs), "hits", len(results))

	if len(results) == 0 {
		fmt.Printf("Nothing found matching: %s\n", query)
		return nil
	}

	if outputFmt != "json" {
		fmt.Printf("Found %d result(s) matching: %s\n\n", len(results), query)
	}

	return output.Output(outputFmt, results)
}
