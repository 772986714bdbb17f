package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

// UserService implements profile updates and account deletion.
type UserService struct {
	users  ports.UserRepository
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, mailer ports.Mailer, log zerolog.Logger) *UserService {
	return &UserService{users: users, mailer: mailer, log: log}
}

// UpdateProfile applies the non-nil fields. A password change re-checks
// the current password first.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User, in ports.UpdateProfileInput) (*domain.User, error) {
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}

	if in.Password != nil {
		if in.OldPassword == nil {
			return nil, domain.ErrOldPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*in.OldPassword)); err != nil {
			return nil, domain.ErrWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

// DeleteAccount soft-deletes the account after re-checking the
// password and mails a goodbye notice. The document stays in place so
// the email and username remain reserved.
func (s *UserService) DeleteAccount(ctx context.Context, user *domain.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.ErrWrongPassword
	}

	if err := s.users.SoftDelete(ctx, user.ID); err != nil {
		return err
	}

	s.mailer.SendAccountDeleted(ctx, user.Email, user.Username)
	s.log.Info().Str("user_id", user.ID).Msg("account deleted")
	return nil
}
