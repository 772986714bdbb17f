package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

const tokenTTL = 7 * 24 * time.Hour

// AuthService implements account signup, verification, login and
// password recovery.
type AuthService struct {
	users     ports.UserRepository
	mailer    ports.Mailer
	jwtSecret []byte
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, mailer ports.Mailer, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}
}

// Signup creates an unverified account seeded with the default lists
// and mails a verification code. Email and username collisions are
// reported together so the client can flag both fields at once.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	existing, err := s.users.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.SignupConflictError{
			EmailTaken:    existing.Email == in.Email,
			UsernameTaken: existing.Username == in.Username,
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Lists:        domain.DefaultLists(),
		Role:         domain.RoleUser,
		VerificationCode: &domain.ActionCode{
			Code:      uuid.NewString(),
			CreatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.mailer.SendVerification(ctx, user.Email, user.Username, user.VerificationCode.Code)
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("account created")
	return user, nil
}

func (s *AuthService) VerifyAccount(ctx context.Context, code string) error {
	return s.users.Verify(ctx, code)
}

// Login authenticates by email and password and returns a signed
// token. Unknown emails and wrong passwords produce the same error;
// deleted and unverified accounts are reported as such only after the
// password checks out.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Deleted() {
		return "", nil, domain.ErrAccountDeleted
	}
	if !user.Verified {
		return "", nil, domain.ErrNotVerified
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"email":     user.Email,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login")
	return token, user, nil
}

// RequestPasswordReset issues a reset code for the account behind the
// email. Unknown emails succeed silently so the endpoint cannot be
// used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	code := domain.ActionCode{Code: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if err := s.users.SetResetCode(ctx, user.ID, code); err != nil {
		return err
	}

	s.mailer.SendPasswordReset(ctx, user.Email, user.Username, code.Code)
	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

func (s *AuthService) CheckResetCode(ctx context.Context, code string) error {
	_, err := s.users.FindByResetCode(ctx, code)
	return err
}

func (s *AuthService) ResetPassword(ctx context.Context, code, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.ResetPassword(ctx, code, string(hash)); err != nil {
		return err
	}
	s.log.Info().Msg("password reset completed")
	return nil
}
