package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

var validate = validator.New()

// Profile is a person using the app
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=120"`
	Email     *string   `json:"email,omitempty" validate:"omitempty,email"`
	Bio       *string   `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Interests []string  `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the profile fields before it is stored
func (p *Profile) Validate() error {
	return validate.Struct(p)
}

// Startup is an organization listed in the discovery feed
type Startup struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required,max=120"`
	Tagline       *string   `json:"tagline,omitempty" validate:"omitempty,max=280"`
	Sector        *string   `json:"sector,omitempty"`
	FundingGoal   float64   `json:"funding_goal" validate:"gte=0"`
	FundingRaised float64   `json:"funding_raised" validate:"gte=0"`
	Keywords      []string  `json:"keywords"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate checks the startup fields before it is stored
func (s *Startup) Validate() error {
	return validate.Struct(s)
}

// FundingProgress returns raised/goal, or 0 when there is no goal
func (s *Startup) FundingProgress() float64 {
	if s.FundingGoal <= 0 {
		return 0
	}
	return s.FundingRaised / s.FundingGoal
}

// Post is a social feed entry
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id" validate:"required"`
	Body      string    `json:"body" validate:"required,max=2000"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the post fields before it is stored
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// PoolSource selects which entity type forms the candidate pool
type PoolSource string

const (
	PoolStartups PoolSource = "startups"
	PoolProfiles PoolSource = "profiles"
)

// ParsePoolSource converts a user-supplied name into a PoolSource
func ParsePoolSource(s string) (PoolSource, error) {
	switch PoolSource(s) {
	case PoolStartups, PoolProfiles:
		return PoolSource(s), nil
	default:
		return "", fmt.Errorf("unknown pool %q (use startups or profiles)", s)
	}
}

// PoolQuery describes a candidate pool lookup
type PoolQuery struct {
	Source    PoolSource
	ExcludeID string // Never include this record (usually the subject)
	Limit     int
}

// ListOptions contains options for listing records
type ListOptions struct {
	Since  *time.Time
	Sector *string
	Limit  int
	Offset int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// CleanKeywords puts keywords into Unicode NFC form so that visually equal
// strings compare equal. Case and whitespace are left untouched. Every
// keyword list that reaches the matcher goes through it.
func CleanKeywords(keywords []string) []string {
	if keywords == nil {
		return nil
	}
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = norm.NFC.String(kw)
	}
	return out
}

// encodeKeywords stores a nil list as NULL
func encodeKeywords(keywords []string) (sql.NullString, error) {
	if keywords == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode keywords: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// decodeKeywords turns NULL back into a nil list
func decodeKeywords(ns sql.NullString) ([]string, error) {
	if !ns.Valid {
		return nil, nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(ns.String), &keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}
	return keywords, nil
}
