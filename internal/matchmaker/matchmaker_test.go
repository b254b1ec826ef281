package matchmaker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/finverse/matchmaker/internal/database"
	"github.com/finverse/matchmaker/internal/logging"
	"github.com/finverse/matchmaker/internal/matching"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSubjects struct {
	keywords map[string][]string
	err      error
}

func (f *fakeSubjects) SubjectKeywords(ctx context.Context, subjectID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	kws, ok := f.keywords[subjectID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return kws, nil
}

type fakePool struct {
	members []database.PoolMember
	err     error
	block   bool // Wait for cancellation before returning
	calls   atomic.Int32
	lastQ   database.PoolQuery
}

func (f *fakePool) CandidatePool(ctx context.Context, q database.PoolQuery) ([]database.PoolMember, error) {
	f.calls.Add(1)
	f.lastQ = q
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.members, f.err
}

func member(id, name string, keywords ...string) database.PoolMember {
	return database.PoolMember{
		Candidate: matching.Candidate{ID: id, Keywords: keywords},
		Name:      name,
	}
}

func startupPool() *fakePool {
	return &fakePool{members: []database.PoolMember{
		member("s1", "Kite", "saas", "fintech"),
		member("s2", "Bayrack", "ai", "blockchain", "saas"),
		member("s3", "1px", "design"),
	}}
}

func TestMatch(t *testing.T) {
	subjects := &fakeSubjects{keywords: map[string][]string{
		"me": {"Blockchain", "AI", "SaaS"},
	}}
	pool := startupPool()
	svc := New(subjects, pool, logging.Discard())

	result, err := svc.Match(context.Background(), Request{SubjectID: "me"})
	require.NoError(t, err)

	assert.Equal(t, matching.BestMatch{CandidateID: "s2", Score: 3}, result.Best)
	assert.Equal(t, "Bayrack", result.BestName)
	assert.Equal(t, []string{"ai", "blockchain", "saas"}, result.Shared)
	assert.Equal(t, []matching.MatchResult{
		{CandidateID: "s1", Score: 1},
		{CandidateID: "s2", Score: 3},
		{CandidateID: "s3", Score: 0},
	}, result.Scores)
	assert.Equal(t, database.PoolStartups, result.Pool)
	assert.Equal(t, "me", pool.lastQ.ExcludeID)
}

func TestMatch_StaticKeywords(t *testing.T) {
	svc := New(&fakeSubjects{err: errors.New("should not be called")}, startupPool(), logging.Discard())

	result, err := svc.WithSubjects(StaticKeywords{"design"}).Match(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "s3", result.Best.CandidateID)
	assert.Equal(t, 1, result.Best.Score)
}

func TestMatch_StaticKeywordsNFC(t *testing.T) {
	// Stored keywords are NFC; an explicit decomposed "café" must still match
	pool := &fakePool{members: []database.PoolMember{
		member("s1", "Kite", "saas"),
		member("s2", "Brew", "caf\u00e9"),
	}}
	svc := New(&fakeSubjects{}, pool, logging.Discard())

	result, err := svc.WithSubjects(StaticKeywords{"CAFE\u0301 "}).Match(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, matching.BestMatch{CandidateID: "s2", Score: 1}, result.Best)
	assert.Equal(t, []string{"caf\u00e9"}, result.Shared)
}

func TestMatch_NilSubjectKeywords(t *testing.T) {
	subjects := &fakeSubjects{keywords: map[string][]string{"me": nil}}
	svc := New(subjects, startupPool(), logging.Discard())

	result, err := svc.Match(context.Background(), Request{SubjectID: "me"})
	require.NoError(t, err)
	assert.Equal(t, matching.BestMatch{CandidateID: "s1", Score: 0}, result.Best)
	assert.Empty(t, result.Shared)
}

func TestMatch_EmptyPool(t *testing.T) {
	svc := New(StaticKeywords{"x"}, &fakePool{}, logging.Discard())

	_, err := svc.Match(context.Background(), Request{})
	assert.ErrorIs(t, err, matching.ErrEmptyPool)
}

func TestMatch_SubjectFetchFails(t *testing.T) {
	pool := &fakePool{block: true}
	svc := New(&fakeSubjects{}, pool, logging.Discard())

	result, err := svc.Match(context.Background(), Request{SubjectID: "ghost"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorContains(t, err, "subject keywords")
}

func TestMatch_PoolFetchFails(t *testing.T) {
	boom := errors.New("connection reset")
	svc := New(StaticKeywords{"x"}, &fakePool{err: boom}, logging.Discard())

	result, err := svc.Match(context.Background(), Request{})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "candidate pool")
}

func TestMatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New(StaticKeywords{"x"}, &fakePool{block: true}, logging.Discard())
	_, err := svc.Match(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
