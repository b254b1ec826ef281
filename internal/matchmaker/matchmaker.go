// Package matchmaker fetches a subject's keywords and a candidate pool,
// then runs the keyword matcher over them.
package matchmaker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/matching"
)

// SubjectKeywordProvider returns the keywords of the subject being matched.
// A nil list is valid and means the subject has no keywords.
type SubjectKeywordProvider interface {
	SubjectKeywords(ctx context.Context, subjectID string) ([]string, error)
}

// CandidatePoolProvider returns the candidates to score against
type CandidatePoolProvider interface {
	CandidatePool(ctx context.Context, q database.PoolQuery) ([]database.PoolMember, error)
}

// StaticKeywords serves a fixed keyword list for any subject. The list is
// put into NFC form like stored keywords.
type StaticKeywords []string

// SubjectKeywords implements SubjectKeywordProvider
func (s StaticKeywords) SubjectKeywords(ctx context.Context, subjectID string) ([]string, error) {
	return database.CleanKeywords(s), nil
}

// Request describes one matchmaking run
type Request struct {
	SubjectID string
	Pool      database.PoolSource
	Limit     int // Maximum pool size (0 = all)
}

// Result is the outcome of a matchmaking run
type Result struct {
	SubjectID string                 `json:"subject_id,omitempty"`
	Pool      database.PoolSource    `json:"pool"`
	Best      matching.BestMatch     `json:"best"`
	BestName  string                 `json:"best_name"`
	Shared    []string               `json:"shared_keywords"`
	Scores    []matching.MatchResult `json:"scores"`
	Names     map[string]string      `json:"-"` // Candidate ID -> display name
}

// Service runs matchmaking against the configured providers
type Service struct {
	subjects SubjectKeywordProvider
	pool     CandidatePoolProvider
	logger   *slog.Logger
}

// New creates a new Service
func New(subjects SubjectKeywordProvider, pool CandidatePoolProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		subjects: subjects,
		pool:     pool,
		logger:   logger,
	}
}

// WithSubjects returns a copy of the service using a different subject provider
func (s *Service) WithSubjects(subjects SubjectKeywordProvider) *Service {
	clone := *s
	clone.subjects = subjects
	return &clone
}

// Match fetches the subject's keywords and the candidate pool concurrently
// and selects the best match. If either fetch fails the matcher is not run.
// An empty pool returns matching.ErrEmptyPool.
func (s *Service) Match(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if req.Pool == "" {
		req.Pool = database.PoolStartups
	}

	var subject []string
	var members []database.PoolMember

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		kws, err := s.subjects.SubjectKeywords(gCtx, req.SubjectID)
		if err != nil {
			return fmt.Errorf("failed to fetch subject keywords: %w", err)
		}
		subject = kws
		return nil
	})

	g.Go(func() error {
		pool, err := s.pool.CandidatePool(gCtx, database.PoolQuery{
			Source:    req.Pool,
			ExcludeID: req.SubjectID,
			Limit:     req.Limit,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch candidate pool: %w", err)
		}
		members = pool
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Debug("matchmaking fetch failed", "subject", req.SubjectID, "error", err)
		return nil, err
	}

	candidates := make([]matching.Candidate, len(members))
	names := make(map[string]string, len(members))
	for i, m := range members {
		candidates[i] = m.Candidate
		names[m.ID] = m.Name
	}

	scores := matching.ScoreAll(candidates, subject)
	best, err := matching.Best(scores)
	if err != nil {
		s.logger.Info("no candidates to match", "subject", req.SubjectID, "pool", req.Pool)
		return nil, err
	}

	var shared []string
	for _, c := range candidates {
		if c.ID == best.CandidateID {
			shared = matching.Shared(subject, c.Keywords)
			break
		}
	}

	s.logger.Info("matchmaking complete",
		"subject", req.SubjectID,
		"pool", req.Pool,
		"candidates", len(candidates),
		"best", best.CandidateID,
		"score", best.Score,
		"duration", time.Since(start),
	)

	return &Result{
		SubjectID: req.SubjectID,
		Pool:      req.Pool,
		Best:      best,
		BestName:  names[best.CandidateID],
		Shared:    shared,
		Scores:    scores,
		Names:     names,
	}, nil
}
