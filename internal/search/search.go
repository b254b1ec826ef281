// Package search ranks profiles, startups and posts against a free-text query.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"
)

// Kind identifies the entity type of a document
type Kind string

const (
	KindProfile Kind = "profile"
	KindStartup Kind = "startup"
	KindPost    Kind = "post"
)

// Document is a searchable entity
type Document struct {
	Kind     Kind     `json:"kind"`
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Text     string   `json:"text,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// MatchType records which rule produced a hit's score
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchToken MatchType = "token"
	MatchFuzzy MatchType = "fuzzy"
)

// Hit is a ranked search result
type Hit struct {
	Document
	Score float64   `json:"score"`
	Match MatchType `json:"match"`
}

// Options configures ranking
type Options struct {
	FuzzyThreshold float64 // Minimum Jaro-Winkler similarity for a fuzzy title hit
	Stemming       bool    // Compare Porter2 stems instead of raw tokens
	Limit          int     // Maximum hits (0 = no limit)
	Kinds          []Kind  // Restrict to these kinds (empty = all)
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold: 0.85,
		Stemming:       true,
		Limit:          20,
	}
}

// Rank scores every document against the query and returns the hits,
// best first. Documents that do not match at all are dropped.
func Rank(query string, docs []Document, opts Options) []Hit {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	queryTokens := tokenize(query, opts.Stemming)
	allowed := kindFilter(opts.Kinds)

	var hits []Hit
	for _, doc := range docs {
		if allowed != nil && !allowed[doc.Kind] {
			continue
		}
		score, match := scoreDocument(query, queryTokens, doc, opts)
		if score <= 0 {
			continue
		}
		hits = append(hits, Hit{Document: doc, Score: score, Match: match})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		if hits[i].Kind != hits[j].Kind {
			return hits[i].Kind < hits[j].Kind
		}
		return strings.ToLower(hits[i].Title) < strings.ToLower(hits[j].Title)
	})

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}
	return hits
}

func scoreDocument(query string, queryTokens []string, doc Document, opts Options) (float64, MatchType) {
	title := strings.ToLower(doc.Title)
	if strings.Contains(title, query) {
		return 1.0, MatchExact
	}

	best, match := 0.0, MatchType("")

	if len(queryTokens) > 0 {
		docTokens := make(map[string]bool)
		for _, field := range append([]string{doc.Title, doc.Text}, doc.Keywords...) {
			for _, tok := range tokenize(strings.ToLower(field), opts.Stemming) {
				docTokens[tok] = true
			}
		}

		matched := 0
		for _, tok := range queryTokens {
			if docTokens[tok] {
				matched++
			}
		}
		if matched > 0 {
			// Token hits rank below exact title hits
			best = 0.9 * float64(matched) / float64(len(queryTokens))
			match = MatchToken
		}
	}

	if sim := similarity(query, title); sim >= opts.FuzzyThreshold && sim*0.9 > best {
		best = sim * 0.9
		match = MatchFuzzy
	}

	return best, match
}

// similarity returns the Jaro-Winkler similarity of two strings (0-1)
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return float64(score)
}

// tokenize splits text on non-alphanumerics, optionally stemming each token
func tokenize(text string, stem bool) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if stem {
			w = porter2.Stem(w)
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func kindFilter(kinds []Kind) map[Kind]bool {
	if len(kinds) == 0 {
		return nil
	}
	allowed := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	return allowed
}
