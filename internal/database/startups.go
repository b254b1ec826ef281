package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const startupColumns = `id, name, tagline, sector, funding_goal, funding_raised, keywords, created_at, updated_at`

func scanStartup(row rowScanner) (*Startup, error) {
	s := &Startup{}
	var tagline, sector, keywords sql.NullString

	if err := row.Scan(
		&s.ID, &s.Name, &tagline, &sector, &s.FundingGoal, &s.FundingRaised,
		&keywords, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	kws, err := decodeKeywords(keywords)
	if err != nil {
		return nil, fmt.Errorf("startup %s: %w", s.ID, err)
	}

	s.Tagline = StringPtr(tagline)
	s.Sector = StringPtr(sector)
	s.Keywords = kws
	return s, nil
}

// CreateStartup inserts a new startup
func (db *DB) CreateStartup(ctx context.Context, s *Startup) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid startup: %w", err)
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.Keywords = CleanKeywords(s.Keywords)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt

	keywords, err := encodeKeywords(s.Keywords)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO startups (`+startupColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID, s.Name, NullString(s.Tagline), NullString(s.Sector),
		s.FundingGoal, s.FundingRaised, keywords, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

// GetStartup retrieves a startup by ID
func (db *DB) GetStartup(ctx context.Context, id string) (*Startup, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+startupColumns+` FROM startups WHERE id = ?
	`, id)

	s, err := scanStartup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// ListStartups retrieves startups for the discovery feed, newest first
func (db *DB) ListStartups(ctx context.Context, opts ListOptions) ([]Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups WHERE 1=1`
	args := []any{}

	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}
	if opts.Sector != nil {
		query += " AND LOWER(sector) = LOWER(?)"
		args = append(args, *opts.Sector)
	}

	query += " ORDER BY created_at DESC"
	query += limitClause(opts.Limit, opts.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var startups []Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		startups = append(startups, *s)
	}

	return startups, rows.Err()
}
