package database

import (
	"context"
	"strings"

	"github.com/finverse/matchmaker/internal/search"
)

// Documents loads every profile, startup and post as a search document.
// Posts are titled with their author's name.
func (db *DB) Documents(ctx context.Context) ([]search.Document, error) {
	profiles, err := db.ListProfiles(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	startups, err := db.ListStartups(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	posts, err := db.ListPosts(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}

	authors := make(map[string]string, len(profiles))
	docs := make([]search.Document, 0, len(profiles)+len(startups)+len(posts))

	for _, p := range profiles {
		authors[p.ID] = p.Name
		doc := search.Document{Kind: search.KindProfile, ID: p.ID, Title: p.Name, Keywords: p.Interests}
		if p.Bio != nil {
			doc.Text = *p.Bio
		}
		docs = append(docs, doc)
	}

	for _, s := range startups {
		var text []string
		if s.Tagline != nil {
			text = append(text, *s.Tagline)
		}
		if s.Sector != nil {
			text = append(text, *s.Sector)
		}
		docs = append(docs, search.Document{
			Kind:     search.KindStartup,
			ID:       s.ID,
			Title:    s.Name,
			Text:     strings.Join(text, " "),
			Keywords: s.Keywords,
		})
	}

	for _, p := range posts {
		docs = append(docs, search.Document{
			Kind:  search.KindPost,
			ID:    p.ID,
			Title: authors[p.AuthorID],
			Text:  p.Body,
		})
	}

	return docs, nil
}
