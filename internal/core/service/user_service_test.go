package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func newUserFixture() (*UserService, *stubUserRepo, *stubMailer) {
	users := newStubUserRepo()
	mailer := &stubMailer{}
	return NewUserService(users, mailer, zerolog.Nop()), users, mailer
}

func TestUpdateProfile_Names(t *testing.T) {
	svc, users, _ := newUserFixture()
	u := verifiedUser(t, "secret")

	got, err := svc.UpdateProfile(context.Background(), u, ports.UpdateProfileInput{
		FirstName: strPtr("Bilbo"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.FirstName != "Bilbo" {
		t.Errorf("FirstName = %q", got.FirstName)
	}
	if got.LastName != u.LastName {
		t.Error("untouched field changed")
	}
	if users.saveCount != 1 {
		t.Errorf("saveCount = %d, want 1", users.saveCount)
	}
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	svc, _, _ := newUserFixture()
	u := verifiedUser(t, "old-pass")

	_, err := svc.UpdateProfile(context.Background(), u, ports.UpdateProfileInput{
		Password: strPtr("new-pass"), OldPassword: strPtr("old-pass"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-pass")); err != nil {
		t.Error("new password not applied")
	}
}

func TestUpdateProfile_PasswordRequiresOld(t *testing.T) {
	svc, users, _ := newUserFixture()
	u := verifiedUser(t, "old-pass")

	_, err := svc.UpdateProfile(context.Background(), u, ports.UpdateProfileInput{
		Password: strPtr("new-pass"),
	})
	if !errors.Is(err, domain.ErrOldPasswordRequired) {
		t.Fatalf("err = %v, want ErrOldPasswordRequired", err)
	}

	_, err = svc.UpdateProfile(context.Background(), u, ports.UpdateProfileInput{
		Password: strPtr("new-pass"), OldPassword: strPtr("wrong"),
	})
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if users.saveCount != 0 {
		t.Errorf("saveCount = %d, want 0", users.saveCount)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, users, mailer := newUserFixture()
	u := verifiedUser(t, "secret")

	if err := svc.DeleteAccount(context.Background(), u, "secret"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if len(users.deleted) != 1 || users.deleted[0] != u.ID {
		t.Errorf("deleted = %v", users.deleted)
	}
	if len(mailer.goodbyes) != 1 || mailer.goodbyes[0] != u.Email {
		t.Errorf("goodbye mails = %v", mailer.goodbyes)
	}
}

func TestDeleteAccount_WrongPassword(t *testing.T) {
	svc, users, mailer := newUserFixture()
	u := verifiedUser(t, "secret")

	if err := svc.DeleteAccount(context.Background(), u, "nope"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if len(users.deleted) != 0 {
		t.Errorf("deleted = %v, want none", users.deleted)
	}
	if len(mailer.goodbyes) != 0 {
		t.Errorf("goodbye mails = %v, want none", mailer.goodbyes)
	}
}
