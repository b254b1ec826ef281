package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocs() []Document {
	return []Document{
		{Kind: KindStartup, ID: "s1", Title: "Stripe", Text: "Online payment infrastructure", Keywords: []string{"fintech", "payments"}},
		{Kind: KindStartup, ID: "s2", Title: "Bayrack", Text: "Ledger tooling", Keywords: []string{"ai", "blockchain", "saas"}},
		{Kind: KindProfile, ID: "p1", Title: "Ada Lovelace", Text: "Analytical engines", Keywords: []string{"math"}},
		{Kind: KindPost, ID: "t1", Title: "Ada Lovelace", Text: "We just closed our seed round for blockchain payments"},
	}
}

func TestRank_ExactTitle(t *testing.T) {
	hits := Rank("STRIPE", testDocs(), DefaultOptions())
	require.NotEmpty(t, hits)
	assert.Equal(t, "s1", hits[0].ID)
	assert.Equal(t, MatchExact, hits[0].Match)
	assert.Equal(t, 1.0, hits[0].Score)
}

func TestRank_StemmedTokens(t *testing.T) {
	hits := Rank("payment", testDocs(), DefaultOptions())

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
		assert.Equal(t, MatchToken, h.Match)
	}
	assert.ElementsMatch(t, []string{"s1", "t1"}, ids)
}

func TestRank_WithoutStemming(t *testing.T) {
	opts := DefaultOptions()
	opts.Stemming = false

	hits := Rank("payment", testDocs(), opts)
	require.Len(t, hits, 1)
	assert.Equal(t, "s1", hits[0].ID)
}

func TestRank_FuzzyTitle(t *testing.T) {
	hits := Rank("bayrak", testDocs(), DefaultOptions())
	require.NotEmpty(t, hits)
	assert.Equal(t, "s2", hits[0].ID)
	assert.Equal(t, MatchFuzzy, hits[0].Match)
	assert.Greater(t, hits[0].Score, 0.8)
	assert.Less(t, hits[0].Score, 1.0)
}

func TestRank_KindsAndLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.Kinds = []Kind{KindPost}

	hits := Rank("ada", testDocs(), opts)
	require.Len(t, hits, 1)
	assert.Equal(t, KindPost, hits[0].Kind)

	opts = DefaultOptions()
	opts.Limit = 1
	hits = Rank("ada", testDocs(), opts)
	require.Len(t, hits, 1)
	// Equal scores fall back to kind order
	assert.Equal(t, KindPost, hits[0].Kind)
}

func TestRank_NoMatch(t *testing.T) {
	assert.Empty(t, Rank("", testDocs(), DefaultOptions()))
	assert.Empty(t, Rank("   ", testDocs(), DefaultOptions()))
	assert.Empty(t, Rank("quantum", testDocs(), DefaultOptions()))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, tokenize("engineer", true), tokenize("engineers", true))
	assert.Equal(t, []string{"hiring", "engineers"}, tokenize("hiring engineers!", false))
	assert.Empty(t, tokenize("a , b", false))
}
