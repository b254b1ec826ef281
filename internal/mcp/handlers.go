package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/matching"
	"github.com/finverse/matchmaker/internal/matchmaker"
	"github.com/finverse/matchmaker/internal/search"
)

const defaultLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["find_best_match"] = s.handleFindBestMatch
	s.handlers["score_candidates"] = s.handleScoreCandidates
	s.handlers["list_startups"] = s.handleListStartups
	s.handlers["list_profiles"] = s.handleListProfiles
	s.handlers["search"] = s.handleSearch
}

type matchParams struct {
	Profile  string   `json:"profile"`
	Keywords []string `json:"keywords"`
	Pool     string   `json:"pool"`
}

// runMatch resolves the subject and pool from the parameters and runs the matcher
func (s *Server) runMatch(ctx context.Context, params json.RawMessage) (*matchmaker.Result, error) {
	var p matchParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	poolName := p.Pool
	if poolName == "" {
		poolName = s.config.Matching.DefaultPool
	}
	pool, err := database.ParsePoolSource(poolName)
	if err != nil {
		return nil, err
	}

	matcher := s.matcher
	req := matchmaker.Request{Pool: pool}

	switch {
	case len(p.Keywords) > 0:
		matcher = matcher.WithSubjects(matchmaker.StaticKeywords(p.Keywords))
	case p.Profile != "":
		profile, err := s.db.FindProfile(ctx, p.Profile)
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if profile == nil {
			return nil, fmt.Errorf("profile not found: %s", p.Profile)
		}
		req.SubjectID = profile.ID
	default:
		return nil, errors.New("profile or keywords is required")
	}

	result, err := matcher.Match(ctx, req)
	if errors.Is(err, matching.ErrEmptyPool) {
		return nil, fmt.Errorf("no %s to match against", pool)
	}
	return result, err
}

func (s *Server) handleFindBestMatch(ctx context.Context, params json.RawMessage) (any, error) {
	return s.runMatch(ctx, params)
}

type scoredCandidate struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
}

type scoreCandidatesResult struct {
	Pool   database.PoolSource `json:"pool"`
	Scores []scoredCandidate   `json:"scores"`
}

func (s *Server) handleScoreCandidates(ctx context.Context, params json.RawMessage) (any, error) {
	result, err := s.runMatch(ctx, params)
	if err != nil {
		return nil, err
	}

	out := scoreCandidatesResult{Pool: result.Pool, Scores: make([]scoredCandidate, 0, len(result.Scores))}
	for _, r := range result.Scores {
		out.Scores = append(out.Scores, scoredCandidate{
			CandidateID: r.CandidateID,
			Name:        result.Names[r.CandidateID],
			Score:       r.Score,
		})
	}
	return out, nil
}

type listParams struct {
	Sector string `json:"sector"`
	Limit  int    `json:"limit"`
}

func parseListParams(params json.RawMessage) (database.ListOptions, error) {
	var p listParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return database.ListOptions{}, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{Limit: defaultLimit}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}
	if p.Sector != "" {
		opts.Sector = &p.Sector
	}
	return opts, nil
}

func (s *Server) handleListStartups(ctx context.Context, params json.RawMessage) (any, error) {
	opts, err := parseListParams(params)
	if err != nil {
		return nil, err
	}

	startups, err := s.db.ListStartups(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return startups, nil
}

func (s *Server) handleListProfiles(ctx context.Context, params json.RawMessage) (any, error) {
	opts, err := parseListParams(params)
	if err != nil {
		return nil, err
	}

	profiles, err := s.db.ListProfiles(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return profiles, nil
}

type searchParams struct {
	Query string   `json:"query"`
	Kinds []string `json:"kinds"`
}

func (s *Server) handleSearch(ctx context.Context, params json.RawMessage) (any, error) {
	var p searchParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}
	if strings.TrimSpace(p.Query) == "" {
		return nil, errors.New("query is required")
	}

	docs, err := s.db.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	opts := search.Options{
		FuzzyThreshold: s.config.Search.FuzzyThreshold,
		Stemming:       s.config.Search.Stemming,
		Limit:          s.config.Search.Limit,
	}
	for _, k := range p.Kinds {
		opts.Kinds = append(opts.Kinds, search.Kind(k))
	}

	hits := search.Rank(p.Query, docs, opts)
	if hits == nil {
		hits = []search.Hit{}
	}
	return hits, nil
}

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "finverse://startups":
		return s.getResourceStartups(ctx)
	case "finverse://profiles":
		return s.getResourceProfiles(ctx)
	case "finverse://feed":
		return s.getResourceFeed(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceStartups(ctx context.Context) (string, error) {
	startups, err := s.db.ListStartups(ctx, database.ListOptions{Limit: 50})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Startup Discovery Feed\n======================\n\n")
	if len(startups) == 0 {
		b.WriteString("No startups listed yet.\n")
		return b.String(), nil
	}

	for _, st := range startups {
		fmt.Fprintf(&b, "- %s", st.Name)
		if st.Sector != nil {
			fmt.Fprintf(&b, " [%s]", *st.Sector)
		}
		if st.FundingGoal > 0 {
			fmt.Fprintf(&b, " %.0f%% funded", st.FundingProgress()*100)
		}
		if len(st.Keywords) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(st.Keywords, ", "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *Server) getResourceProfiles(ctx context.Context) (string, error) {
	profiles, err := s.db.ListProfiles(ctx, database.ListOptions{Limit: 50})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Profiles\n========\n\n")
	if len(profiles) == 0 {
		b.WriteString("No profiles yet.\n")
		return b.String(), nil
	}

	for _, p := range profiles {
		fmt.Fprintf(&b, "- %s", p.Name)
		if len(p.Interests) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(p.Interests, ", "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *Server) getResourceFeed(ctx context.Context) (string, error) {
	posts, err := s.db.ListPosts(ctx, database.ListOptions{Limit: 20})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Social Feed\n===========\n\n")
	if len(posts) == 0 {
		b.WriteString("No posts yet.\n")
		return b.String(), nil
	}

	for _, p := range posts {
		fmt.Fprintf(&b, "[%s] %s (%d likes)\n", p.CreatedAt.Format("Jan 02"), p.Body, p.Likes)
	}
	return b.String(), nil
}
