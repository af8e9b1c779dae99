package principal

import (
	"errors"
	"time"

	"attendly/internal/auth"
)

// Sentinel errors returned by the repository.
var (
	ErrNotFound   = errors.New("principal not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User is a self-service principal. The password hash never leaves the
// process: it is excluded from JSON and from every read that feeds a
// response.
type User struct {
	ID             string    `json:"id"`
	Role           string    `json:"role"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Admin is an administrative principal, independent from User: admin
// actions are not attributed to any user record.
type Admin struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser builds a user with the password hash already computed. Hashing
// happens here, exactly once, instead of in an implicit pre-save hook.
func NewUser(name, email, password string) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}
	return User{Role: "User", Name: name, Email: email, PasswordHash: hash}, nil
}

// NewAdmin builds an admin with the password hash already computed.
func NewAdmin(name, email, password string) (Admin, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return Admin{}, err
	}
	return Admin{Role: "admin", Name: name, Email: email, PasswordHash: hash}, nil
}
