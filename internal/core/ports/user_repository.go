package ports

import (
	"context"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// UserRepository defines persistence for the User aggregate. The user
// document is the unit of atomicity: Update replaces the whole document
// in a single write, and there is no partial list or membership update.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrUsername returns any user matching either field.
	// Used by signup to report which field collides.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	FindByResetCode(ctx context.Context, code string) (*domain.User, error)
	// Verify marks the account holding the verification code as verified
	// and consumes the code. Returns ErrInvalidVerificationCode when no
	// account holds it.
	Verify(ctx context.Context, code string) error
	SetResetCode(ctx context.Context, userID string, code domain.ActionCode) error
	// ResetPassword replaces the password of the account holding the
	// reset code and consumes the code.
	ResetPassword(ctx context.Context, code, passwordHash string) error
	// Update persists the whole aggregate in one write (last write wins).
	Update(ctx context.Context, u *domain.User) error
	SoftDelete(ctx context.Context, userID string) error
}
