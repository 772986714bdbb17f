package ports

import (
	"context"
	"time"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// CreateListInput carries the fields for a new list.
type CreateListInput struct {
	Name     string
	ItemType string
}

// AddListItemInput adds a catalog item to one of the user's lists,
// optionally with an initial rating.
type AddListItemInput struct {
	ListName string
	ItemID   string
	Rating   *float64
}

// UpdateListItemInput updates an existing membership: a new rating, a
// move to another list, or both. A nil Rating leaves the current rating
// untouched; an empty NewListName means no move.
type UpdateListItemInput struct {
	ListName    string
	ItemID      string
	Rating      *float64
	NewListName string
}

// ItemView is the catalog projection embedded in a dereferenced list
// response. It is deliberately thinner than the full admin item view.
type ItemView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Cover       string     `json:"cover,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// MembershipView is one list entry in a response. Item is populated
// only when the caller asked for dereferenced items and the catalog
// still holds the entry.
type MembershipView struct {
	ItemID string    `json:"item"`
	Rating *float64  `json:"rating,omitempty"`
	Item   *ItemView `json:"details,omitempty"`
}

// ListView is the response shape for a single list.
type ListView struct {
	Name     string           `json:"name"`
	ItemType string           `json:"itemType"`
	Items    []MembershipView `json:"items"`
}

// ListService owns every list and membership mutation on a user
// aggregate. The authenticated user is passed in explicitly; each
// operation persists the whole aggregate exactly once on success.
type ListService interface {
	Lists(ctx context.Context, user *domain.User) []ListView
	CreateList(ctx context.Context, user *domain.User, in CreateListInput) (*ListView, error)
	// GetList returns the named list; with dereference the catalog
	// entries are embedded where they still exist.
	GetList(ctx context.Context, user *domain.User, name string, dereference bool) (*ListView, error)
	RenameList(ctx context.Context, user *domain.User, name, newName string) (*ListView, error)
	DeleteList(ctx context.Context, user *domain.User, name string) error
	AddItem(ctx context.Context, user *domain.User, in AddListItemInput) (*ListView, error)
	// UpdateItem applies rating change and/or move as one atomic
	// operation with a single persist, returning the list the item
	// ended up in.
	UpdateItem(ctx context.Context, user *domain.User, in UpdateListItemInput) (*ListView, error)
	RemoveItem(ctx context.Context, user *domain.User, listName, itemID string) (*ListView, error)
}
