package user

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrUsernameIsRequired is returned when attempting to create a user without a username.
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrEmailIsRequired is returned when attempting to create a user without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrPasswordHashIsRequired is returned when attempting to create a user without a password hash.
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("passwordHash")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

// User represents an account in the system. It is an aggregate root holding
// the identity that every authorization decision is made against.
//
// Business rules:
//   - A user must have a valid UUID, non-empty username and email, and a password hash
//   - The role is fixed at creation and cannot be changed afterwards
//   - Disabled users cannot authenticate
type User struct {
	id           kernel.UUID
	username     string
	email        string
	role         Role
	passwordHash string
	disabled     bool

	guard guard.ConstructorGuard
}

// NewUser creates a new User with the specified identity and role.
// This is the only way to create a valid User instance; the role is
// immutable from this point on.
func NewUser(id kernel.UUID, username, email string, role Role, passwordHash string) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setEmail(email),
		u.setRole(role),
		u.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence, including its disabled flag.
// All invariants are revalidated so corrupted rows surface as errors.
func RestoreUser(id kernel.UUID, username, email string, role Role, passwordHash string, disabled bool) (*User, error) {
	u, err := NewUser(id, username, email, role, passwordHash)
	if err != nil {
		return nil, err
	}

	u.disabled = disabled
	return u, nil
}

// Validate ensures the User instance was properly constructed through NewUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the unique login name.
func (u *User) Username() string {
	return u.username
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's immutable role.
func (u *User) Role() Role {
	return u.role
}

// PasswordHash returns the stored bcrypt hash of the user's password.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// IsDisabled reports whether the account has been deactivated.
func (u *User) IsDisabled() bool {
	return u.disabled
}

// Disable deactivates the account. Disabled users fail authentication.
func (u *User) Disable() {
	u.disabled = true
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	if username == "" {
		return ErrUsernameIsRequired
	}
	u.username = username
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	u.email = email
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	u.passwordHash = hash
	return nil
}
