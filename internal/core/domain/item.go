package domain

import "time"

// Item is a catalog entry: a movie, series, game, book, anime or other
// piece of media. Items are shared across users; lists reference them
// by id only.
type Item struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	ReleaseDate *time.Time     `json:"release_date,omitempty"`
	Cover       string         `json:"cover,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ItemType is a catalog-wide tag constraining which items a list may
// contain (e.g. "movie", "game").
type ItemType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tag is a free-form genre label attached to catalog items.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
