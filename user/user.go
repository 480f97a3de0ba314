package user

import (
	"net/mail"
	"strings"
	"time"

	"filmoteca/errs"
	"filmoteca/pkg/optional"
)

var (
	ErrUserNotFound    = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrUserExists      = errs.Errorf(errs.ECONFLICT, "user: username or email already registered")
	ErrInvalidUsername = errs.Errorf(errs.EINVALID, "user: invalid username")
	ErrInvalidEmail    = errs.Errorf(errs.EINVALID, "user: invalid email")
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// UpdateUser is a patch: nil fields were not supplied and keep their prior
// value. FullName is tri-state so an explicit null clears the stored name.
type UpdateUser struct {
	Username *string
	Email    *string
	FullName optional.Value[string]
	IsActive *bool
}

// Apply merges the patch into u field by field.
func (p UpdateUser) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName.Present() {
		u.FullName = p.FullName.Ptr()
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}
