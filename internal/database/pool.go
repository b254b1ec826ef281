package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/finverse/matchmaker/internal/matching"
)

// PoolMember is a matching candidate with its display name
type PoolMember struct {
	matching.Candidate
	Name string `json:"name"`
}

// SubjectKeywords returns a profile's interests. A profile without interests
// yields a nil list; a missing profile is an error wrapping ErrNotFound.
func (db *DB) SubjectKeywords(ctx context.Context, profileID string) ([]string, error) {
	var interests sql.NullString
	err := db.QueryRowContext(ctx, `SELECT interests FROM profiles WHERE id = ?`, profileID).Scan(&interests)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return decodeKeywords(interests)
}

// CandidatePool lists the candidates for a matchmaking run in insertion
// order so that tie-breaks are reproducible.
func (db *DB) CandidatePool(ctx context.Context, q PoolQuery) ([]PoolMember, error) {
	var query string
	switch q.Source {
	case PoolStartups, "":
		query = `SELECT id, name, keywords FROM startups WHERE id != ? ORDER BY rowid ASC`
	case PoolProfiles:
		query = `SELECT id, name, interests FROM profiles WHERE id != ? ORDER BY rowid ASC`
	default:
		return nil, fmt.Errorf("unknown pool source: %s", q.Source)
	}
	query += limitClause(q.Limit, 0)

	rows, err := db.QueryContext(ctx, query, q.ExcludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pool []PoolMember
	for rows.Next() {
		var m PoolMember
		var keywords sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &keywords); err != nil {
			return nil, err
		}
		if m.Keywords, err = decodeKeywords(keywords); err != nil {
			return nil, fmt.Errorf("candidate %s: %w", m.ID, err)
		}
		pool = append(pool, m)
	}

	return pool, rows.Err()
}
