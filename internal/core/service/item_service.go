package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

// ItemService implements catalog reads and the admin-only catalog
// writes. Uploaded images go to the image store keyed by item id, and
// every write invalidates the item cache.
type ItemService struct {
	items     ports.ItemRepository
	itemTypes ports.ItemTypeRepository
	tags      ports.TagRepository
	images    ports.ImageStore
	cache     ports.ItemInvalidator
	log       zerolog.Logger
}

func NewItemService(items ports.ItemRepository, itemTypes ports.ItemTypeRepository, tags ports.TagRepository, images ports.ImageStore, cache ports.ItemInvalidator, log zerolog.Logger) *ItemService {
	return &ItemService{
		items:     items,
		itemTypes: itemTypes,
		tags:      tags,
		images:    images,
		cache:     cache,
		log:       log,
	}
}

// Create inserts a catalog item. Images come either as uploads or as
// external urls; uploads are stored after the document exists so the
// storage prefix can be the item id.
func (s *ItemService) Create(ctx context.Context, in ports.CreateItemInput) (*domain.Item, error) {
	ok, err := s.itemTypes.Exists(ctx, in.Type)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownItemType
	}
	if len(in.Uploads) > 0 && len(in.ImageURLs) > 0 {
		return nil, domain.ErrMixedImageSources
	}

	item := &domain.Item{
		Name:        in.Name,
		Type:        in.Type,
		Slug:        slugFromName(in.Name),
		Description: in.Description,
		ReleaseDate: in.ReleaseDate,
		Images:      in.ImageURLs,
		Tags:        normalizeTags(in.Tags),
		Meta:        in.Meta,
	}
	if len(item.Images) > 0 {
		item.Cover = item.Images[0]
	}

	item, err = s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	if len(in.Uploads) > 0 {
		urls, err := s.images.Save(ctx, item.ID, in.Uploads)
		if err != nil {
			return nil, err
		}
		item.Images = urls
		item.Cover = urls[0]
		if err := s.items.Update(ctx, item); err != nil {
			return nil, err
		}
	}

	if len(item.Tags) > 0 {
		if err := s.tags.Ensure(ctx, item.Tags); err != nil {
			s.log.Warn().Err(err).Msg("tag upsert failed")
		}
	}

	s.log.Info().Str("item_id", item.ID).Str("type", item.Type).Str("slug", item.Slug).Msg("item created")
	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, user *domain.User, id string) (*ports.ItemWithList, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return annotate(item, user), nil
}

func (s *ItemService) GetBySlug(ctx context.Context, user *domain.User, itemType, slug string) (*ports.ItemWithList, error) {
	item, err := s.items.FindByTypeAndSlug(ctx, itemType, slug)
	if err != nil {
		return nil, err
	}
	return annotate(item, user), nil
}

// Update applies the non-nil fields. Renaming recomputes the slug; a
// new image set replaces the stored one.
func (s *ItemService) Update(ctx context.Context, id string, in ports.UpdateItemInput) (*domain.Item, error) {
	if len(in.Uploads) > 0 && len(in.ImageURLs) > 0 {
		return nil, domain.ErrMixedImageSources
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
		item.Slug = slugFromName(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ReleaseDate != nil {
		item.ReleaseDate = in.ReleaseDate
	}
	if in.Tags != nil {
		item.Tags = normalizeTags(in.Tags)
		if err := s.tags.Ensure(ctx, item.Tags); err != nil {
			s.log.Warn().Err(err).Msg("tag upsert failed")
		}
	}
	if in.Meta != nil {
		item.Meta = in.Meta
	}

	switch {
	case len(in.Uploads) > 0:
		urls, err := s.images.Replace(ctx, item.ID, item.Images, in.Uploads)
		if err != nil {
			return nil, err
		}
		item.Images = urls
		item.Cover = urls[0]
	case in.ImageURLs != nil:
		if err := s.images.Delete(ctx, item.Images); err != nil {
			s.log.Warn().Err(err).Str("item_id", item.ID).Msg("stale image cleanup failed")
		}
		item.Images = in.ImageURLs
		item.Cover = ""
		if len(in.ImageURLs) > 0 {
			item.Cover = in.ImageURLs[0]
		}
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, item.ID); err != nil {
		s.log.Warn().Err(err).Str("item_id", item.ID).Msg("cache invalidation failed")
	}

	s.log.Info().Str("item_id", item.ID).Msg("item updated")
	return item, nil
}

// Delete removes the item and its stored images. List memberships
// pointing at the id are left alone and resolve to bare references.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.Delete(ctx, item.Images); err != nil {
		s.log.Warn().Err(err).Str("item_id", id).Msg("image cleanup failed")
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("item_id", id).Msg("cache invalidation failed")
	}

	s.log.Info().Str("item_id", id).Msg("item deleted")
	return nil
}

func (s *ItemService) ItemTypes(ctx context.Context) ([]domain.ItemType, error) {
	return s.itemTypes.List(ctx)
}

func (s *ItemService) Tags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// annotate pairs the item with the name of the caller's list holding
// it, when the caller is known and tracks it.
func annotate(item *domain.Item, user *domain.User) *ports.ItemWithList {
	out := &ports.ItemWithList{Item: item}
	if user == nil {
		return out
	}
	for i := range user.Lists {
		if user.Lists[i].HasItem(item.ID) {
			out.ListName = user.Lists[i].Name
			return out
		}
	}
	return out
}

// slugFromName lowercases the name and folds every run of
// non-alphanumeric characters into a single dash.
func slugFromName(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
