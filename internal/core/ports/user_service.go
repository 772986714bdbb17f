package ports

import (
	"context"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// UpdateProfileInput carries partial profile changes. Nil fields are
// left untouched. Changing the password requires OldPassword.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Password    *string
	OldPassword *string
}

// UserService handles profile reads and writes for the authenticated
// account.
type UserService interface {
	UpdateProfile(ctx context.Context, user *domain.User, in UpdateProfileInput) (*domain.User, error)
	// DeleteAccount soft-deletes the account after re-checking the
	// password, and mails a goodbye notice.
	DeleteAccount(ctx context.Context, user *domain.User, password string) error
}
