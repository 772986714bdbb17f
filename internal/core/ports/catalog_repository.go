package ports

import (
	"context"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// CatalogItemLookup is the narrow read-only view of the catalog the
// list core depends on. Both the Mongo repository and the Redis cache
// satisfy it.
type CatalogItemLookup interface {
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// FindByIDs resolves a batch of item ids in one round-trip. Missing
	// ids are simply absent from the result, not an error.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Item, error)
}

// ItemTypeLookup answers whether an item type is part of the catalog.
type ItemTypeLookup interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// ItemRepository defines persistence for catalog items.
type ItemRepository interface {
	CatalogItemLookup
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByTypeAndSlug(ctx context.Context, itemType, slug string) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id string) error
}

// ItemInvalidator drops cached catalog entries after admin writes.
type ItemInvalidator interface {
	Invalidate(ctx context.Context, ids ...string) error
}

// ItemTypeRepository defines persistence for the item-type taxonomy.
type ItemTypeRepository interface {
	ItemTypeLookup
	List(ctx context.Context) ([]domain.ItemType, error)
	// Ensure inserts any of the given type names that are missing.
	Ensure(ctx context.Context, names []string) error
}

// TagRepository defines persistence for catalog tags.
type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Ensure(ctx context.Context, names []string) error
}
