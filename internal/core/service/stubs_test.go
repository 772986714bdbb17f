package service

import (
	"context"
	"sync"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

// stubUserRepo records saves and serves canned users.
type stubUserRepo struct {
	users      map[string]*domain.User
	byEmail    map[string]*domain.User
	saveCount  int
	updateErr  error
	created    []*domain.User
	resetCodes map[string]domain.ActionCode
	verified   []string
	deleted    []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:      map[string]*domain.User{},
		byEmail:    map[string]*domain.User{},
		resetCodes: map[string]domain.ActionCode{},
	}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	u.ID = "generated-id"
	r.created = append(r.created, u)
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetCode(_ context.Context, code string) (*domain.User, error) {
	for id, c := range r.resetCodes {
		if c.Code == code {
			return r.users[id], nil
		}
	}
	return nil, domain.ErrInvalidResetCode
}

func (r *stubUserRepo) Verify(_ context.Context, code string) error {
	for _, u := range r.users {
		if u.VerificationCode != nil && u.VerificationCode.Code == code {
			u.Verified = true
			u.VerificationCode = nil
			r.verified = append(r.verified, u.ID)
			return nil
		}
	}
	return domain.ErrInvalidVerificationCode
}

func (r *stubUserRepo) SetResetCode(_ context.Context, userID string, code domain.ActionCode) error {
	r.resetCodes[userID] = code
	return nil
}

func (r *stubUserRepo) ResetPassword(_ context.Context, code, passwordHash string) error {
	for id, c := range r.resetCodes {
		if c.Code == code {
			r.users[id].PasswordHash = passwordHash
			delete(r.resetCodes, id)
			return nil
		}
	}
	return domain.ErrInvalidResetCode
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.saveCount++
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, userID string) error {
	r.deleted = append(r.deleted, userID)
	return nil
}

// stubItemLookup serves canned catalog items and counts lookups.
type stubItemLookup struct {
	items       map[string]*domain.Item
	findCalls   int
	batchCalls  int
	lastBatchIn []string
}

func newStubItemLookup(items ...*domain.Item) *stubItemLookup {
	m := map[string]*domain.Item{}
	for _, it := range items {
		m[it.ID] = it
	}
	return &stubItemLookup{items: m}
}

func (l *stubItemLookup) FindByID(_ context.Context, id string) (*domain.Item, error) {
	l.findCalls++
	if it, ok := l.items[id]; ok {
		return it, nil
	}
	return nil, domain.ErrItemNotFound
}

func (l *stubItemLookup) FindByIDs(_ context.Context, ids []string) ([]*domain.Item, error) {
	l.batchCalls++
	l.lastBatchIn = ids
	var out []*domain.Item
	for _, id := range ids {
		if it, ok := l.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// stubTypeLookup knows a fixed set of item types.
type stubTypeLookup struct {
	known map[string]bool
}

func newStubTypeLookup(names ...string) *stubTypeLookup {
	m := map[string]bool{}
	for _, n := range names {
		m[n] = true
	}
	return &stubTypeLookup{known: m}
}

func (l *stubTypeLookup) Exists(_ context.Context, name string) (bool, error) {
	return l.known[name], nil
}

// stubMailer records the mails the services ask for.
type stubMailer struct {
	mu            sync.Mutex
	verifications []string
	resets        []string
	goodbyes      []string
	lastCode      string
}

func (m *stubMailer) SendVerification(_ context.Context, to, _ string, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, to)
	m.lastCode = code
}

func (m *stubMailer) SendPasswordReset(_ context.Context, to, _ string, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, to)
	m.lastCode = code
}

func (m *stubMailer) SendAccountDeleted(_ context.Context, to, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goodbyes = append(m.goodbyes, to)
}

var _ ports.UserRepository = (*stubUserRepo)(nil)
var _ ports.CatalogItemLookup = (*stubItemLookup)(nil)
var _ ports.ItemTypeLookup = (*stubTypeLookup)(nil)
var _ ports.Mailer = (*stubMailer)(nil)
