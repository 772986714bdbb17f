package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

type stubListService struct {
	updateFn func(ctx context.Context, user *domain.User, in ports.UpdateListItemInput) (*ports.ListView, error)
	getFn    func(ctx context.Context, user *domain.User, name string, dereference bool) (*ports.ListView, error)
	addFn    func(ctx context.Context, user *domain.User, in ports.AddListItemInput) (*ports.ListView, error)
}

func (s *stubListService) Lists(context.Context, *domain.User) []ports.ListView { return nil }

func (s *stubListService) CreateList(context.Context, *domain.User, ports.CreateListInput) (*ports.ListView, error) {
	return &ports.ListView{}, nil
}

func (s *stubListService) GetList(ctx context.Context, user *domain.User, name string, dereference bool) (*ports.ListView, error) {
	return s.getFn(ctx, user, name, dereference)
}

func (s *stubListService) RenameList(context.Context, *domain.User, string, string) (*ports.ListView, error) {
	return &ports.ListView{}, nil
}

func (s *stubListService) DeleteList(context.Context, *domain.User, string) error { return nil }

func (s *stubListService) AddItem(ctx context.Context, user *domain.User, in ports.AddListItemInput) (*ports.ListView, error) {
	return s.addFn(ctx, user, in)
}

func (s *stubListService) UpdateItem(ctx context.Context, user *domain.User, in ports.UpdateListItemInput) (*ports.ListView, error) {
	return s.updateFn(ctx, user, in)
}

func (s *stubListService) RemoveItem(context.Context, *domain.User, string, string) (*ports.ListView, error) {
	return &ports.ListView{}, nil
}

func withUser(c echo.Context) *domain.User {
	u := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser, Verified: true, Lists: domain.DefaultLists()}
	c.Set("user", u)
	return u
}

func TestParseLenientRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"number", `7.5`, ratingOf(7.5)},
		{"integer", `9`, ratingOf(9)},
		{"numeric string", `"8.5"`, ratingOf(8.5)},
		{"garbage string", `"abc"`, nil},
		{"object", `{"v":1}`, nil},
		{"null", `null`, nil},
		{"absent", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLenientRating([]byte(tt.raw))
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("got nil, want %v", *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("got %v, want nil", *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("got %v, want %v", *got, *tt.want)
			}
		})
	}
}

func ratingOf(v float64) *float64 { return &v }

func TestListHandler_UpdateItem_StringRating(t *testing.T) {
	var captured ports.UpdateListItemInput
	stub := &stubListService{
		updateFn: func(_ context.Context, _ *domain.User, in ports.UpdateListItemInput) (*ports.ListView, error) {
			captured = in
			return &ports.ListView{Name: in.ListName}, nil
		},
	}
	h := NewListHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/me/lists/Games/items/g1",
		`{"rating":"8.5","list":"Finished"}`)
	c.SetParamNames("name", "id")
	c.SetParamValues("Games", "g1")
	withUser(c)

	if err := h.UpdateItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Rating == nil || *captured.Rating != 8.5 {
		t.Errorf("rating = %v, want 8.5 parsed from string", captured.Rating)
	}
	if captured.NewListName != "Finished" || captured.ItemID != "g1" || captured.ListName != "Games" {
		t.Errorf("captured = %+v", captured)
	}
}

// A rating the service cannot use still reaches it as nil instead of
// failing the request at the boundary.
func TestListHandler_UpdateItem_GarbageRating(t *testing.T) {
	var captured ports.UpdateListItemInput
	stub := &stubListService{
		updateFn: func(_ context.Context, _ *domain.User, in ports.UpdateListItemInput) (*ports.ListView, error) {
			captured = in
			return &ports.ListView{}, nil
		},
	}
	h := NewListHandler(stub)

	c, rec := newTestContext(t, http.MethodPatch, "/me/lists/Games/items/g1",
		`{"rating":"not a number"}`)
	c.SetParamNames("name", "id")
	c.SetParamValues("Games", "g1")
	withUser(c)

	if err := h.UpdateItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Rating != nil {
		t.Errorf("rating = %v, want nil", captured.Rating)
	}
}

func TestListHandler_GetList_ExpandQuery(t *testing.T) {
	var gotDereference bool
	stub := &stubListService{
		getFn: func(_ context.Context, _ *domain.User, name string, dereference bool) (*ports.ListView, error) {
			gotDereference = dereference
			return &ports.ListView{Name: name}, nil
		},
	}
	h := NewListHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/me/lists/Games?expand=items", "")
	c.SetParamNames("name")
	c.SetParamValues("Games")
	withUser(c)

	if err := h.GetList(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !gotDereference {
		t.Error("expand=items did not request dereferencing")
	}

	c2, _ := newTestContext(t, http.MethodGet, "/me/lists/Games", "")
	c2.SetParamNames("name")
	c2.SetParamValues("Games")
	withUser(c2)

	if err := h.GetList(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotDereference {
		t.Error("plain read requested dereferencing")
	}
}

func TestListHandler_AddItem_MissingUser(t *testing.T) {
	stub := &stubListService{
		addFn: func(context.Context, *domain.User, ports.AddListItemInput) (*ports.ListView, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewListHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/me/lists/Games/items", `{"item":"g1"}`)
	c.SetParamNames("name")
	c.SetParamValues("Games")

	err := h.AddItem(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestListHandler_AddItem(t *testing.T) {
	var captured ports.AddListItemInput
	stub := &stubListService{
		addFn: func(_ context.Context, _ *domain.User, in ports.AddListItemInput) (*ports.ListView, error) {
			captured = in
			return &ports.ListView{Name: in.ListName}, nil
		},
	}
	h := NewListHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/me/lists/Games/items",
		`{"item":"g1","rating":9.5}`)
	c.SetParamNames("name")
	c.SetParamValues("Games")
	withUser(c)

	if err := h.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.ItemID != "g1" || captured.Rating == nil || *captured.Rating != 9.5 {
		t.Errorf("captured = %+v", captured)
	}
}
