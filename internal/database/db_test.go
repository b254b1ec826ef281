package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finverse/matchmaker/internal/search"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to open database")
	t.Cleanup(func() { db.Close() })

	return db
}

func strPtr(s string) *string { return &s }

func TestOpen(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"profiles", "startups", "posts"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "expected %s table to exist", table)
	}

	assert.NoError(t, db.Health(context.Background()))
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.CreateStartup(context.Background(), &Startup{Name: "Kite"}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	startups, err := db.ListStartups(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, startups, 1)
}

func TestProfileCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := &Profile{
		Name:      "Ada Lovelace",
		Email:     strPtr("ada@example.com"),
		Interests: []string{"AI", " Fintech "},
	}
	require.NoError(t, db.CreateProfile(ctx, p))
	assert.NotEmpty(t, p.ID)

	fetched, err := db.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Ada Lovelace", fetched.Name)
	assert.Equal(t, []string{"AI", " Fintech "}, fetched.Interests, "stored keywords keep case and spacing")

	byName, err := db.FindProfile(ctx, "ada lovelace")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, p.ID, byName.ID)

	require.NoError(t, db.SetInterests(ctx, p.ID, []string{"saas"}))
	kws, err := db.SubjectKeywords(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"saas"}, kws)

	profiles, err := db.ListProfiles(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestGetProfile_NotFound(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.GetProfile(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestCreateProfile_Validation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		profile Profile
	}{
		{"missing name", Profile{}},
		{"bad email", Profile{Name: "Bob", Email: strPtr("not-an-email")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.CreateProfile(ctx, &tt.profile)
			assert.Error(t, err)
		})
	}
}

func TestSubjectKeywords(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	p := &Profile{Name: "No Interests"}
	require.NoError(t, db.CreateProfile(ctx, p))

	kws, err := db.SubjectKeywords(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, kws, "NULL interests decode to a nil list")

	_, err = db.SubjectKeywords(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, db.SetInterests(ctx, "missing", nil), ErrNotFound)
}

func TestCandidatePool(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, s := range []*Startup{
		{Name: "Kite", Keywords: []string{"saas", "fintech"}},
		{Name: "Bayrack", Keywords: []string{"ai", "blockchain", "saas"}},
		{Name: "1px"},
	} {
		require.NoError(t, db.CreateStartup(ctx, s))
	}

	pool, err := db.CandidatePool(ctx, PoolQuery{Source: PoolStartups})
	require.NoError(t, err)
	require.Len(t, pool, 3)
	assert.Equal(t, "Kite", pool[0].Name)
	assert.Equal(t, "Bayrack", pool[1].Name)
	assert.Equal(t, "1px", pool[2].Name)
	assert.Nil(t, pool[2].Keywords)

	subject := &Profile{Name: "Subject", Interests: []string{"ai"}}
	other := &Profile{Name: "Other", Interests: []string{"ai"}}
	require.NoError(t, db.CreateProfile(ctx, subject))
	require.NoError(t, db.CreateProfile(ctx, other))

	people, err := db.CandidatePool(ctx, PoolQuery{Source: PoolProfiles, ExcludeID: subject.ID})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, other.ID, people[0].ID)

	_, err = db.CandidatePool(ctx, PoolQuery{Source: "wallets"})
	assert.Error(t, err)
}

func TestStartups(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := &Startup{Name: "Kite", Sector: strPtr("Fintech"), FundingGoal: 100000, FundingRaised: 25000}
	require.NoError(t, db.CreateStartup(ctx, s))

	fetched, err := db.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.InDelta(t, 0.25, fetched.FundingProgress(), 1e-9)

	sector := "fintech"
	list, err := db.ListStartups(ctx, ListOptions{Sector: &sector})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Error(t, db.CreateStartup(ctx, &Startup{Name: "Neg", FundingGoal: -1}))
}

func TestPosts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := &Profile{Name: "Ada"}
	require.NoError(t, db.CreateProfile(ctx, author))

	post := &Post{AuthorID: author.ID, Body: "Closed our seed round"}
	require.NoError(t, db.CreatePost(ctx, post))

	likes, err := db.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = db.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	_, err = db.LikePost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, db.CreatePost(ctx, &Post{AuthorID: author.ID}), "empty body")
	assert.Error(t, db.CreatePost(ctx, &Post{AuthorID: "nobody", Body: "hi"}), "unknown author")
}

func TestTransaction(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insert := func(tx *sql.Tx, id string) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO startups (id, name, created_at, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`, id, id)
		return err
	}
	count := func() int {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM startups`).Scan(&n))
		return n
	}

	require.NoError(t, db.Transaction(ctx, func(tx *sql.Tx) error {
		return insert(tx, "committed")
	}))
	assert.Equal(t, 1, count())

	boom := errors.New("boom")
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		require.NoError(t, insert(tx, "rolled-back"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count())

	assert.Panics(t, func() {
		_ = db.Transaction(ctx, func(tx *sql.Tx) error {
			require.NoError(t, insert(tx, "panicked"))
			panic("boom")
		})
	})
	assert.Equal(t, 1, count(), "panic must roll back and release the connection")
}

func TestLikePost_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := &Profile{Name: "Ada"}
	require.NoError(t, db.CreateProfile(ctx, author))
	post := &Post{AuthorID: author.ID, Body: "Demo day"}
	require.NoError(t, db.CreatePost(ctx, post))

	const n = 10
	counts := make(chan int, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			likes, err := db.LikePost(ctx, post.ID)
			errs <- err
			counts <- likes
		}()
	}

	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
		seen[<-counts] = true
	}
	// Each like reads back its own increment
	assert.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "missing like count %d", i)
	}
}

func TestDocuments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := &Profile{Name: "Ada", Bio: strPtr("Engines")}
	require.NoError(t, db.CreateProfile(ctx, author))
	require.NoError(t, db.CreateStartup(ctx, &Startup{Name: "Kite", Tagline: strPtr("Payments for kids")}))
	require.NoError(t, db.CreatePost(ctx, &Post{AuthorID: author.ID, Body: "Hello"}))

	docs, err := db.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	kinds := map[search.Kind]search.Document{}
	for _, d := range docs {
		kinds[d.Kind] = d
	}
	assert.Equal(t, "Engines", kinds[search.KindProfile].Text)
	assert.Equal(t, "Payments for kids", kinds[search.KindStartup].Text)
	assert.Equal(t, "Ada", kinds[search.KindPost].Title)
}

func TestParsePoolSource(t *testing.T) {
	src, err := ParsePoolSource("profiles")
	require.NoError(t, err)
	assert.Equal(t, PoolProfiles, src)

	_, err = ParsePoolSource("wallet")
	assert.Error(t, err)
}
