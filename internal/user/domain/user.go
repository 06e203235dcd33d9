package domain

import "time"

// User is the durable identity record: immutable by replacement. Mutation
// (password change) returns a new value; callers persist the replacement.
type User struct {
	ID           string
	Username     string
	Email        Email
	PasswordHash string // populated only when loaded with password
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds the identity value created at registration. CreatedAt and
// UpdatedAt start equal; UpdatedAt advances only on password change.
func NewUser(id, username string, email Email, passwordHash string, now time.Time) User {
	return User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// WithPasswordHash returns a copy of the user carrying the replacement hash
// and an advanced UpdatedAt.
func (u User) WithPasswordHash(hash string, now time.Time) User {
	u.PasswordHash = hash
	u.UpdatedAt = now
	return u
}

// HasPassword reports whether the password slot was loaded. Lookups that do
// not ask for the password leave it empty.
func (u User) HasPassword() bool { return u.PasswordHash != "" }

// Response is the outward projection of a user. It never carries the password
// hash; a User with a populated password slot must pass through here before
// serialization.
type Response struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Response returns the response-facing projection of the user.
func (u User) Response() Response {
	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email.Value(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
