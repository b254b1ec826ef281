package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const profileColumns = `id, name, email, bio, interests, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	p := &Profile{}
	var email, bio, interests sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &email, &bio, &interests, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	keywords, err := decodeKeywords(interests)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.ID, err)
	}

	p.Email = StringPtr(email)
	p.Bio = StringPtr(bio)
	p.Interests = keywords
	return p, nil
}

// CreateProfile inserts a new profile
func (db *DB) CreateProfile(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Interests = CleanKeywords(p.Interests)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	interests, err := encodeKeywords(p.Interests)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Name, NullString(p.Email), NullString(p.Bio), interests,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetProfile retrieves a profile by ID
func (db *DB) GetProfile(ctx context.Context, id string) (*Profile, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = ?
	`, id)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// GetProfileByName retrieves a profile by name (case-insensitive)
func (db *DB) GetProfileByName(ctx context.Context, name string) (*Profile, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE LOWER(name) = LOWER(?)
		ORDER BY created_at ASC LIMIT 1
	`, name)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// FindProfile looks a profile up by ID first, then by name
func (db *DB) FindProfile(ctx context.Context, identifier string) (*Profile, error) {
	p, err := db.GetProfile(ctx, identifier)
	if err != nil || p != nil {
		return p, err
	}
	return db.GetProfileByName(ctx, identifier)
}

// ListProfiles retrieves profiles, newest first
func (db *DB) ListProfiles(ctx context.Context, opts ListOptions) ([]Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []any{}

	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}

	query += " ORDER BY created_at DESC"
	query += limitClause(opts.Limit, opts.Offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	return profiles, rows.Err()
}

// SetInterests replaces a profile's interest keywords. A nil list clears them.
func (db *DB) SetInterests(ctx context.Context, id string, interests []string) error {
	encoded, err := encodeKeywords(CleanKeywords(interests))
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `
		UPDATE profiles SET interests = ?, updated_at = ? WHERE id = ?
	`, encoded, time.Now(), id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

func limitClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	clause := fmt.Sprintf(" LIMIT %d", limit)
	if offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", offset)
	}
	return clause
}
