package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/matchmaker"
	"github.com/finverse/matchmaker/internal/search"
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case []database.Startup:
		return startupsTable(w, v)
	case []database.Profile:
		return profilesTable(w, v)
	case *database.Profile:
		return profileDetail(w, v)
	case []database.Post:
		return postsTable(w, v)
	case *matchmaker.Result:
		return matchResult(w, v, true)
	case []search.Hit:
		return hitsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func newTable(w io.Writer, header ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	return table
}

func startupsTable(w io.Writer, startups []database.Startup) error {
	if len(startups) == 0 {
		fmt.Fprintln(w, "No startups found.")
		return nil
	}

	table := newTable(w, "NAME", "SECTOR", "FUNDED", "KEYWORDS", "ID")
	for _, s := range startups {
		funded := "-"
		if s.FundingGoal > 0 {
			funded = fmt.Sprintf("%.0f%% of %s", s.FundingProgress()*100, formatMoney(s.FundingGoal))
		}
		if err := table.Append([]string{
			truncate(s.Name, 24),
			deref(s.Sector),
			funded,
			truncate(strings.Join(s.Keywords, ", "), 40),
			s.ID,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func profilesTable(w io.Writer, profiles []database.Profile) error {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles found.")
		return nil
	}

	table := newTable(w, "NAME", "EMAIL", "INTERESTS", "ID")
	for _, p := range profiles {
		if err := table.Append([]string{
			truncate(p.Name, 24),
			deref(p.Email),
			truncate(strings.Join(p.Interests, ", "), 40),
			p.ID,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func profileDetail(w io.Writer, p *database.Profile) error {
	fmt.Fprintf(w, "Name:        %s\n", p.Name)
	if p.Email != nil {
		fmt.Fprintf(w, "Email:       %s\n", *p.Email)
	}
	if p.Bio != nil && *p.Bio != "" {
		fmt.Fprintf(w, "Bio:         %s\n", *p.Bio)
	}
	if len(p.Interests) > 0 {
		fmt.Fprintf(w, "Interests:   %s\n", strings.Join(p.Interests, ", "))
	} else {
		fmt.Fprintln(w, "Interests:   (none)")
	}
	fmt.Fprintf(w, "ID:          %s\n", p.ID)
	fmt.Fprintf(w, "Joined:      %s\n", p.CreatedAt.Format("Jan 02, 2006"))
	return nil
}

func postsTable(w io.Writer, posts []database.Post) error {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts yet.")
		return nil
	}

	table := newTable(w, "POSTED", "LIKES", "BODY", "ID")
	for _, p := range posts {
		if err := table.Append([]string{
			p.CreatedAt.Format("Jan 02 15:04"),
			strconv.Itoa(p.Likes),
			truncate(p.Body, 60),
			p.ID,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// MatchResult writes the best match and, optionally, every candidate's score
func MatchResult(w io.Writer, r *matchmaker.Result, showScores bool) error {
	return matchResult(w, r, showScores)
}

func matchResult(w io.Writer, r *matchmaker.Result, showScores bool) error {
	name := r.BestName
	if name == "" {
		name = r.Best.CandidateID
	}

	fmt.Fprintf(w, "Best match:  %s\n", name)
	fmt.Fprintf(w, "Score:       %d\n", r.Best.Score)
	if len(r.Shared) > 0 {
		fmt.Fprintf(w, "Shared:      %s\n", strings.Join(r.Shared, ", "))
	}

	if !showScores || len(r.Scores) < 2 {
		return nil
	}

	fmt.Fprintln(w)
	table := newTable(w, "CANDIDATE", "SCORE")
	for _, s := range r.Scores {
		label := r.Names[s.CandidateID]
		if label == "" {
			label = s.CandidateID
		}
		if s.CandidateID == r.Best.CandidateID && s.Score == r.Best.Score {
			label += " *"
		}
		if err := table.Append([]string{label, strconv.Itoa(s.Score)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func hitsTable(w io.Writer, hits []search.Hit) error {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results.")
		return nil
	}

	table := newTable(w, "TYPE", "TITLE", "MATCH", "SCORE", "ID")
	for _, h := range hits {
		if err := table.Append([]string{
			string(h.Kind),
			truncate(h.Title, 30),
			string(h.Match),
			fmt.Sprintf("%.2f", h.Score),
			h.ID,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate shortens s to at most max runes, ending in "..."
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
