package matching

import "errors"

// ErrEmptyPool is returned when there is no candidate to select from
var ErrEmptyPool = errors.New("matching: empty candidate pool")

// Candidate is an entity scored against a subject
type Candidate struct {
	ID       string   `json:"id"`
	Keywords []string `json:"keywords"`
}

// MatchResult pairs a candidate with its score
type MatchResult struct {
	CandidateID string `json:"candidateId"`
	Score       int    `json:"score"`
}

// BestMatch is the highest scoring result of a run
type BestMatch MatchResult

// ScoreAll scores every candidate against the subject, in pool order
func ScoreAll(pool []Candidate, subject []string) []MatchResult {
	subjectSet := Normalize(subject)

	results := make([]MatchResult, 0, len(pool))
	for _, c := range pool {
		results = append(results, MatchResult{
			CandidateID: c.ID,
			Score:       subjectSet.Intersect(Normalize(c.Keywords)).Len(),
		})
	}
	return results
}

// SelectBest returns the candidate with the highest score.
// Ties go to the candidate that appears first in the pool.
func SelectBest(pool []Candidate, subject []string) (BestMatch, error) {
	if len(pool) == 0 {
		return BestMatch{}, ErrEmptyPool
	}
	return Best(ScoreAll(pool, subject))
}

// Best reduces scored results to the leftmost maximum
func Best(results []MatchResult) (BestMatch, error) {
	if len(results) == 0 {
		return BestMatch{}, ErrEmptyPool
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return BestMatch(best), nil
}
