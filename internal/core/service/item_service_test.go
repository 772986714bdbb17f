package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type stubItemRepo struct {
	stubItemLookup
	nextID     int
	updated    []*domain.Item
	deletedIDs []string
	bySlug     map[string]*domain.Item
	createErr  error
}

func newStubItemRepo(items ...*domain.Item) *stubItemRepo {
	r := &stubItemRepo{
		stubItemLookup: *newStubItemLookup(items...),
		bySlug:         map[string]*domain.Item{},
	}
	for _, it := range items {
		r.bySlug[it.Type+"/"+it.Slug] = it
	}
	return r
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	item.ID = fmt.Sprintf("item-%d", r.nextID)
	r.items[item.ID] = item
	r.bySlug[item.Type+"/"+item.Slug] = item
	return item, nil
}

func (r *stubItemRepo) FindByTypeAndSlug(_ context.Context, itemType, slug string) (*domain.Item, error) {
	if it, ok := r.bySlug[itemType+"/"+slug]; ok {
		return it, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item) error {
	r.updated = append(r.updated, item)
	r.items[item.ID] = item
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id string) error {
	r.deletedIDs = append(r.deletedIDs, id)
	delete(r.items, id)
	return nil
}

type stubTypeRepo struct {
	stubTypeLookup
}

func (r *stubTypeRepo) List(_ context.Context) ([]domain.ItemType, error) {
	var out []domain.ItemType
	for name := range r.known {
		out = append(out, domain.ItemType{Name: name})
	}
	return out, nil
}

func (r *stubTypeRepo) Ensure(_ context.Context, names []string) error {
	for _, n := range names {
		r.known[n] = true
	}
	return nil
}

type stubTagRepo struct {
	ensured [][]string
}

func (r *stubTagRepo) List(_ context.Context) ([]domain.Tag, error) { return nil, nil }

func (r *stubTagRepo) Ensure(_ context.Context, names []string) error {
	r.ensured = append(r.ensured, names)
	return nil
}

type stubImageStore struct {
	savedPrefix string
	saved       int
	replaced    int
	deleted     [][]string
}

func (s *stubImageStore) Save(_ context.Context, prefix string, uploads []ports.ImageUpload) ([]string, error) {
	s.savedPrefix = prefix
	s.saved++
	urls := make([]string, len(uploads))
	for i := range uploads {
		urls[i] = fmt.Sprintf("https://img.example/%s/%d", prefix, i)
	}
	return urls, nil
}

func (s *stubImageStore) Replace(ctx context.Context, prefix string, old []string, uploads []ports.ImageUpload) ([]string, error) {
	s.replaced++
	s.deleted = append(s.deleted, old)
	return s.Save(ctx, prefix, uploads)
}

func (s *stubImageStore) Delete(_ context.Context, urls []string) error {
	s.deleted = append(s.deleted, urls)
	return nil
}

type stubInvalidator struct {
	invalidated []string
}

func (s *stubInvalidator) Invalidate(_ context.Context, ids ...string) error {
	s.invalidated = append(s.invalidated, ids...)
	return nil
}

type itemFixture struct {
	svc   *ItemService
	repo  *stubItemRepo
	tags  *stubTagRepo
	store *stubImageStore
	cache *stubInvalidator
}

func newItemFixture(items ...*domain.Item) *itemFixture {
	repo := newStubItemRepo(items...)
	types := &stubTypeRepo{stubTypeLookup: *newStubTypeLookup("movie", "series", "book", "game", "anime", "other")}
	tags := &stubTagRepo{}
	store := &stubImageStore{}
	cache := &stubInvalidator{}
	return &itemFixture{
		svc:   NewItemService(repo, types, tags, store, cache, zerolog.Nop()),
		repo:  repo,
		tags:  tags,
		store: store,
		cache: cache,
	}
}

func TestSlugFromName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Outer Wilds", "outer-wilds"},
		{"The Lord of the Rings: The Two Towers", "the-lord-of-the-rings-the-two-towers"},
		{"  spaced  out  ", "spaced-out"},
		{"Già perfetto!", "gi-perfetto"},
		{"2001: A Space Odyssey", "2001-a-space-odyssey"},
	}
	for _, tt := range tests {
		if got := slugFromName(tt.in); got != tt.want {
			t.Errorf("slugFromName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemCreate_WithURLs(t *testing.T) {
	f := newItemFixture()

	item, err := f.svc.Create(context.Background(), ports.CreateItemInput{
		Name: "Outer Wilds", Type: "game",
		Tags:      []string{"Exploration", "puzzle", "exploration"},
		ImageURLs: []string{"https://cdn.example/a.png", "https://cdn.example/b.png"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Slug != "outer-wilds" {
		t.Errorf("slug = %q", item.Slug)
	}
	if item.Cover != "https://cdn.example/a.png" {
		t.Errorf("cover = %q, want first image", item.Cover)
	}
	if want := []string{"exploration", "puzzle"}; !reflect.DeepEqual(item.Tags, want) {
		t.Errorf("tags = %v, want %v deduped and sorted", item.Tags, want)
	}
	if len(f.tags.ensured) != 1 {
		t.Errorf("tag upserts = %v", f.tags.ensured)
	}
	if f.store.saved != 0 {
		t.Error("url-only create must not touch the image store")
	}
}

func TestItemCreate_WithUploads(t *testing.T) {
	f := newItemFixture()

	item, err := f.svc.Create(context.Background(), ports.CreateItemInput{
		Name: "Alien", Type: "movie",
		Uploads: []ports.ImageUpload{{Filename: "poster.png", ContentType: "image/png"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// uploads land under the generated id, which means the document is
	// inserted first and patched with the urls after
	if f.store.savedPrefix != item.ID {
		t.Errorf("storage prefix = %q, want item id %q", f.store.savedPrefix, item.ID)
	}
	if len(item.Images) != 1 || item.Cover != item.Images[0] {
		t.Errorf("images = %v, cover = %q", item.Images, item.Cover)
	}
	if len(f.repo.updated) != 1 {
		t.Errorf("updates = %d, want 1 url patch", len(f.repo.updated))
	}
}

func TestItemCreate_UnknownType(t *testing.T) {
	f := newItemFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateItemInput{Name: "X", Type: "record"})
	if !errors.Is(err, domain.ErrUnknownItemType) {
		t.Fatalf("err = %v, want ErrUnknownItemType", err)
	}
}

func TestItemCreate_MixedImageSources(t *testing.T) {
	f := newItemFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateItemInput{
		Name: "X", Type: "movie",
		ImageURLs: []string{"https://cdn.example/a.png"},
		Uploads:   []ports.ImageUpload{{Filename: "a.png"}},
	})
	if !errors.Is(err, domain.ErrMixedImageSources) {
		t.Fatalf("err = %v, want ErrMixedImageSources", err)
	}
}

func TestItemGetByID_AnnotatesList(t *testing.T) {
	item := &domain.Item{ID: "m1", Name: "Alien", Type: "movie", Slug: "alien"}
	f := newItemFixture(item)

	u := testUser()
	u.FindList("Movies").Items = []domain.ItemMembership{{ItemID: "m1"}}

	got, err := f.svc.GetByID(context.Background(), u, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ListName != "Movies" {
		t.Errorf("ListName = %q, want Movies", got.ListName)
	}

	anon, err := f.svc.GetByID(context.Background(), nil, "m1")
	if err != nil {
		t.Fatalf("GetByID anonymous: %v", err)
	}
	if anon.ListName != "" {
		t.Errorf("anonymous ListName = %q, want empty", anon.ListName)
	}
}

func TestItemGetBySlug(t *testing.T) {
	item := &domain.Item{ID: "m1", Name: "Alien", Type: "movie", Slug: "alien"}
	f := newItemFixture(item)

	got, err := f.svc.GetBySlug(context.Background(), nil, "movie", "alien")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Item.ID != "m1" {
		t.Errorf("item = %+v", got.Item)
	}

	if _, err := f.svc.GetBySlug(context.Background(), nil, "game", "alien"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("cross-type slug err = %v, want ErrItemNotFound", err)
	}
}

func TestItemUpdate_RenameRecomputesSlug(t *testing.T) {
	item := &domain.Item{ID: "m1", Name: "Alien", Type: "movie", Slug: "alien"}
	f := newItemFixture(item)

	got, err := f.svc.Update(context.Background(), "m1", ports.UpdateItemInput{Name: strPtr("Aliens")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Slug != "aliens" {
		t.Errorf("slug = %q, want aliens", got.Slug)
	}
	if !reflect.DeepEqual(f.cache.invalidated, []string{"m1"}) {
		t.Errorf("invalidated = %v", f.cache.invalidated)
	}
}

func TestItemUpdate_ReplaceImages(t *testing.T) {
	item := &domain.Item{ID: "m1", Name: "Alien", Type: "movie", Slug: "alien", Images: []string{"old-url"}}
	f := newItemFixture(item)

	got, err := f.svc.Update(context.Background(), "m1", ports.UpdateItemInput{
		Uploads: []ports.ImageUpload{{Filename: "new.png"}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if f.store.replaced != 1 {
		t.Errorf("replaced = %d, want 1", f.store.replaced)
	}
	if len(f.store.deleted) != 1 || f.store.deleted[0][0] != "old-url" {
		t.Errorf("deleted = %v, want the old url", f.store.deleted)
	}
	if got.Cover != got.Images[0] {
		t.Errorf("cover = %q, images = %v", got.Cover, got.Images)
	}
}

func TestItemDelete(t *testing.T) {
	item := &domain.Item{ID: "m1", Name: "Alien", Type: "movie", Slug: "alien", Images: []string{"url-1"}}
	f := newItemFixture(item)

	if err := f.svc.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !reflect.DeepEqual(f.repo.deletedIDs, []string{"m1"}) {
		t.Errorf("deletedIDs = %v", f.repo.deletedIDs)
	}
	if len(f.store.deleted) != 1 {
		t.Errorf("image deletions = %v", f.store.deleted)
	}
	if !reflect.DeepEqual(f.cache.invalidated, []string{"m1"}) {
		t.Errorf("invalidated = %v", f.cache.invalidated)
	}

	if err := f.svc.Delete(context.Background(), "m1"); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("second delete err = %v, want ErrItemNotFound", err)
	}
}
