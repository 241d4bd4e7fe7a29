package domain

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MinPasswordLength is the shortest plaintext password accepted at registration.
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's practical input limit.
	MaxPasswordLength = 72
	// MaxNameLength bounds user, project and task title lengths in characters.
	MaxNameLength = 255
)

// User represents a registered account. Users own projects, author comments
// and can be assigned tasks.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"-"`        // plaintext, only set during registration
	HashedPassword string    `json:"-" db:"password"` // never exposed
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// NewUser creates a User with a fresh ID. The caller hashes Password before storage.
func NewUser(name, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if u.Name == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		return NewValidationError("name", "must be at most 255 characters", nil)
	}
	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", nil)
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return NewValidationError("email", "invalid email format", err)
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password", "must be at least 6 characters long", nil)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "must be at most 72 characters long", nil)
		}
	} else if u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", nil)
	}

	return nil
}
