package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserExists              = errors.New("user already exists")
	ErrInvalidCredentials      = errors.New("no user with that email or password was found")
	ErrAccountDeleted          = errors.New("account has been deleted")
	ErrNotVerified             = errors.New("account is not verified")
	ErrForbidden               = errors.New("access forbidden")
	ErrWrongPassword           = errors.New("password is incorrect")
	ErrOldPasswordRequired     = errors.New("old password is required to update the password")
	ErrInvalidVerificationCode = errors.New("no user with that verification code exists")
	ErrInvalidResetCode        = errors.New("no user with that reset code exists")

	ErrListNotFound        = errors.New("no list with that name exists")
	ErrDuplicateListName   = errors.New("a list with the given name already exists")
	ErrUnknownItemType     = errors.New("the given item type does not exist")
	ErrDestinationNotFound = errors.New("new list does not exist")

	ErrItemNotFound     = errors.New("no item with that id exists")
	ErrAlreadyInList    = errors.New("item is already in the list")
	ErrNotInList        = errors.New("item is not in the list")
	ErrItemTypeMismatch = errors.New("item type does not match with the item type of the list")
	ErrInvalidRating    = errors.New("rating must be between 0.1 and 10 with at most one decimal")

	ErrMixedImageSources = errors.New("can't mix image files and image urls, send only one type")
)

// SignupConflictError reports which unique account fields are already
// taken, so the boundary can answer per field.
type SignupConflictError struct {
	EmailTaken    bool
	UsernameTaken bool
}

func (e *SignupConflictError) Error() string {
	switch {
	case e.EmailTaken && e.UsernameTaken:
		return "a user with this email and username already exists"
	case e.UsernameTaken:
		return "a user with this username already exists"
	default:
		return "a user with this email already exists"
	}
}

// DuplicateFieldError reports a catalog uniqueness violation and the
// offending field (name or slug, both scoped per item type).
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("an item with that %s already exists", e.Field)
}
