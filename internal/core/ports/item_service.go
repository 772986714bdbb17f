package ports

import (
	"context"
	"time"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// ImageUpload is one uploaded image file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateItemInput carries the fields for a new catalog item. Images
// come either as uploads or as external urls, never both.
type CreateItemInput struct {
	Name        string
	Type        string
	Description string
	ReleaseDate *time.Time
	Tags        []string
	Meta        map[string]any
	ImageURLs   []string
	Uploads     []ImageUpload
}

// UpdateItemInput carries partial catalog item changes. Nil fields are
// left untouched; a non-nil Images or Uploads replaces the image set.
type UpdateItemInput struct {
	Name        *string
	Description *string
	ReleaseDate *time.Time
	Tags        []string
	Meta        map[string]any
	ImageURLs   []string
	Uploads     []ImageUpload
}

// ItemWithList pairs a catalog item with the name of the requesting
// user's list containing it, when any does.
type ItemWithList struct {
	Item     *domain.Item `json:"item"`
	ListName string       `json:"list,omitempty"`
}

// ItemService handles catalog reads for everyone and catalog writes
// for admins.
type ItemService interface {
	Create(ctx context.Context, in CreateItemInput) (*domain.Item, error)
	// GetByID returns the item, annotated with the name of the
	// requesting user's list containing it. user may be nil.
	GetByID(ctx context.Context, user *domain.User, id string) (*ItemWithList, error)
	GetBySlug(ctx context.Context, user *domain.User, itemType, slug string) (*ItemWithList, error)
	Update(ctx context.Context, id string, in UpdateItemInput) (*domain.Item, error)
	// Delete removes the item and its stored images. Memberships
	// referencing the id are left in place and resolve to bare ids.
	Delete(ctx context.Context, id string) error
	ItemTypes(ctx context.Context) ([]domain.ItemType, error)
	Tags(ctx context.Context) ([]domain.Tag, error)
}
