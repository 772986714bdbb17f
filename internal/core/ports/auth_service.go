package ports

import (
	"context"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

// SignupInput carries the fields for a new account.
type SignupInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService handles account lifecycle up to and including login.
type AuthService interface {
	// Signup creates an unverified account with the default lists and
	// mails a verification code.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// VerifyAccount consumes a verification code.
	VerifyAccount(ctx context.Context, code string) error
	// Login returns a signed token for a verified, non-deleted account.
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// RequestPasswordReset issues a reset code and mails it. Unknown
	// emails are not an error, to avoid account enumeration.
	RequestPasswordReset(ctx context.Context, email string) error
	// CheckResetCode reports whether the code is currently assigned.
	CheckResetCode(ctx context.Context, code string) error
	// ResetPassword consumes a reset code and replaces the password.
	ResetPassword(ctx context.Context, code, newPassword string) error
}
