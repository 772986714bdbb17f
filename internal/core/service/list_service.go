package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

// ListService implements every list and membership mutation on the
// user aggregate. Each write operation mutates the in-memory aggregate
// and persists it with a single whole-document save; concurrent saves
// of the same user are last write wins.
type ListService struct {
	users     ports.UserRepository
	items     ports.CatalogItemLookup
	itemTypes ports.ItemTypeLookup
	log       zerolog.Logger
}

func NewListService(users ports.UserRepository, items ports.CatalogItemLookup, itemTypes ports.ItemTypeLookup, log zerolog.Logger) *ListService {
	return &ListService{
		users:     users,
		items:     items,
		itemTypes: itemTypes,
		log:       log,
	}
}

// Lists projects all of the user's lists without touching the catalog.
func (s *ListService) Lists(_ context.Context, user *domain.User) []ports.ListView {
	views := make([]ports.ListView, 0, len(user.Lists))
	for i := range user.Lists {
		views = append(views, listView(&user.Lists[i]))
	}
	return views
}

func (s *ListService) CreateList(ctx context.Context, user *domain.User, in ports.CreateListInput) (*ports.ListView, error) {
	if user.HasList(in.Name) {
		return nil, domain.ErrDuplicateListName
	}

	ok, err := s.itemTypes.Exists(ctx, in.ItemType)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnknownItemType
	}

	user.Lists = append(user.Lists, domain.List{Name: in.Name, ItemType: in.ItemType})
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("list", in.Name).Str("item_type", in.ItemType).Msg("list created")
	v := listView(user.FindList(in.Name))
	return &v, nil
}

func (s *ListService) GetList(ctx context.Context, user *domain.User, name string, dereference bool) (*ports.ListView, error) {
	list := user.FindList(name)
	if list == nil {
		return nil, domain.ErrListNotFound
	}

	if !dereference {
		v := listView(list)
		return &v, nil
	}
	return s.dereferencedView(ctx, list)
}

// RenameList changes a list's name. The new name is not checked
// against the user's other lists, so renaming onto an existing name
// leaves two lists sharing it; lookups then resolve to the first.
// TODO: enforcing uniqueness here needs a cleanup pass over accounts
// that already carry duplicates.
func (s *ListService) RenameList(ctx context.Context, user *domain.User, name, newName string) (*ports.ListView, error) {
	list := user.FindList(name)
	if list == nil {
		return nil, domain.ErrListNotFound
	}

	list.Name = newName
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("from", name).Str("to", newName).Msg("list renamed")
	v := listView(list)
	return &v, nil
}

func (s *ListService) DeleteList(ctx context.Context, user *domain.User, name string) error {
	idx := user.ListIndex(name)
	if idx < 0 {
		return domain.ErrListNotFound
	}

	user.Lists = append(user.Lists[:idx], user.Lists[idx+1:]...)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Str("list", name).Msg("list deleted")
	return nil
}

// AddItem adds a catalog item to a list, optionally rated. The
// membership check runs before the catalog lookup, so adding an id
// that is already in the list never costs a catalog read.
func (s *ListService) AddItem(ctx context.Context, user *domain.User, in ports.AddListItemInput) (*ports.ListView, error) {
	list := user.FindList(in.ListName)
	if list == nil {
		return nil, domain.ErrListNotFound
	}
	if list.HasItem(in.ItemID) {
		return nil, domain.ErrAlreadyInList
	}

	item, err := s.items.FindByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Type != list.ItemType {
		return nil, domain.ErrItemTypeMismatch
	}
	if in.Rating != nil && !domain.ValidRating(*in.Rating) {
		return nil, domain.ErrInvalidRating
	}

	list.Items = append(list.Items, domain.ItemMembership{ItemID: in.ItemID, Rating: in.Rating})
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("list", in.ListName).Str("item_id", in.ItemID).Msg("item added to list")
	v := listView(list)
	return &v, nil
}

// UpdateItem changes a membership's rating, moves it to another list,
// or both, as one operation with a single save. An invalid or absent
// rating leaves the stored rating untouched rather than failing the
// whole request; a move carries the rating along. Moving to the list
// the item is already in fails the same way as any occupied
// destination.
func (s *ListService) UpdateItem(ctx context.Context, user *domain.User, in ports.UpdateListItemInput) (*ports.ListView, error) {
	src := user.FindList(in.ListName)
	if src == nil {
		return nil, domain.ErrListNotFound
	}
	idx := src.IndexOfItem(in.ItemID)
	if idx < 0 {
		return nil, domain.ErrNotInList
	}

	if in.Rating != nil && domain.ValidRating(*in.Rating) {
		src.Items[idx].Rating = in.Rating
	}

	result := src
	if in.NewListName != "" {
		dst := user.FindList(in.NewListName)
		if dst == nil {
			return nil, domain.ErrDestinationNotFound
		}
		if dst.HasItem(in.ItemID) {
			return nil, domain.ErrAlreadyInList
		}

		dst.Items = append(dst.Items, src.Items[idx])
		src.Items = append(src.Items[:idx], src.Items[idx+1:]...)
		result = dst
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("list", in.ListName).Str("item_id", in.ItemID).Str("moved_to", in.NewListName).Msg("list item updated")
	v := listView(result)
	return &v, nil
}

func (s *ListService) RemoveItem(ctx context.Context, user *domain.User, listName, itemID string) (*ports.ListView, error) {
	list := user.FindList(listName)
	if list == nil {
		return nil, domain.ErrListNotFound
	}
	idx := list.IndexOfItem(itemID)
	if idx < 0 {
		return nil, domain.ErrNotInList
	}

	list.Items = append(list.Items[:idx], list.Items[idx+1:]...)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("list", listName).Str("item_id", itemID).Msg("item removed from list")
	v := listView(list)
	return &v, nil
}

// dereferencedView embeds the catalog entry for every membership whose
// item still exists. Stale ids stay in the response as bare references.
func (s *ListService) dereferencedView(ctx context.Context, list *domain.List) (*ports.ListView, error) {
	ids := make([]string, 0, len(list.Items))
	for _, m := range list.Items {
		ids = append(ids, m.ItemID)
	}

	found, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Item, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}

	v := ports.ListView{
		Name:     list.Name,
		ItemType: list.ItemType,
		Items:    make([]ports.MembershipView, 0, len(list.Items)),
	}
	for _, m := range list.Items {
		mv := ports.MembershipView{ItemID: m.ItemID, Rating: m.Rating}
		if it, ok := byID[m.ItemID]; ok {
			mv.Item = itemView(it)
		}
		v.Items = append(v.Items, mv)
	}
	return &v, nil
}

func listView(list *domain.List) ports.ListView {
	v := ports.ListView{
		Name:     list.Name,
		ItemType: list.ItemType,
		Items:    make([]ports.MembershipView, 0, len(list.Items)),
	}
	for _, m := range list.Items {
		v.Items = append(v.Items, ports.MembershipView{ItemID: m.ItemID, Rating: m.Rating})
	}
	return v
}

func itemView(it *domain.Item) *ports.ItemView {
	return &ports.ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Type:        it.Type,
		Slug:        it.Slug,
		Description: it.Description,
		ReleaseDate: it.ReleaseDate,
		Cover:       it.Cover,
		Tags:        it.Tags,
	}
}
