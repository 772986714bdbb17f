package domain

import (
	"math"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ActionCode is a single-use code mailed to the user, used for account
// verification and password resets.
type ActionCode struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemMembership associates a List with a catalog Item, carrying an
// optional personal rating. The item is referenced by id only, never
// embedded.
type ItemMembership struct {
	ItemID string   `json:"item"`
	Rating *float64 `json:"rating,omitempty"`
}

// List is a named, typed collection of item memberships owned by one
// user. Names are unique within the owning user (case-sensitive);
// membership order carries no meaning.
type List struct {
	Name     string           `json:"name"`
	ItemType string           `json:"itemType"`
	Items    []ItemMembership `json:"items"`
}

// IndexOfItem returns the position of the membership referencing
// itemID, or -1 when the item is not in the list.
func (l *List) IndexOfItem(itemID string) int {
	for i, m := range l.Items {
		if m.ItemID == itemID {
			return i
		}
	}
	return -1
}

// HasItem reports whether the list contains a membership for itemID.
func (l *List) HasItem(itemID string) bool {
	return l.IndexOfItem(itemID) >= 0
}

// User is the aggregate root and the sole unit of persistence for the
// list subsystem: every list and membership mutation is a whole-document
// rewrite of the owning user.
type User struct {
	ID                string      `json:"id"`
	Username          string      `json:"username"`
	FirstName         string      `json:"first_name,omitempty"`
	LastName          string      `json:"last_name,omitempty"`
	Email             string      `json:"email"`
	PasswordHash      string      `json:"-"`
	Lists             []List      `json:"lists"`
	Role              string      `json:"role"`
	Verified          bool        `json:"verified"`
	VerificationCode  *ActionCode `json:"-"`
	PasswordResetCode *ActionCode `json:"-"`
	DeletedAt         *time.Time  `json:"deleted_at,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ListIndex returns the position of the list with the given name
// (exact match), or -1. Linear scan: users hold a handful of lists.
func (u *User) ListIndex(name string) int {
	for i := range u.Lists {
		if u.Lists[i].Name == name {
			return i
		}
	}
	return -1
}

// FindList returns a pointer into the Lists slice for the named list,
// or nil. Mutations through the pointer are part of the aggregate and
// are persisted on the next save.
func (u *User) FindList(name string) *List {
	if i := u.ListIndex(name); i >= 0 {
		return &u.Lists[i]
	}
	return nil
}

// HasList reports whether the user owns a list with the given name.
func (u *User) HasList(name string) bool {
	return u.ListIndex(name) >= 0
}

// Deleted reports whether the account has been soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

// DefaultLists returns the six lists every new account starts with.
func DefaultLists() []List {
	return []List{
		{Name: "Movies", ItemType: "movie"},
		{Name: "Series", ItemType: "series"},
		{Name: "Books", ItemType: "book"},
		{Name: "Games", ItemType: "game"},
		{Name: "Anime", ItemType: "anime"},
		{Name: "Other", ItemType: "other"},
	}
}

// ValidRating reports whether v is a usable rating: greater than zero,
// at most ten, with at most one fractional digit. Zero itself is
// invalid, the range is open at the bottom.
func ValidRating(v float64) bool {
	if v <= 0 || v > 10 {
		return false
	}
	scaled := v * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
