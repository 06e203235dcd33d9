// Package service implements the authentication core: credential validation,
// token pair issuance, refresh, and logout.
package service

import (
	"context"

	"github.com/shelllbyyyyyy/authcore/internal/apperr"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/session"
	"github.com/shelllbyyyyyy/authcore/internal/user/domain"
)

// TokenPair is the credential pair issued at login. It is never persisted as
// an entity; the refresh token is separately tracked in the session store.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	FindWithPasswordByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthService implements password login, access-token refresh, and logout.
type AuthService struct {
	users  UserRepo
	store  session.Store
	hasher *security.Hasher
	tokens *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(users UserRepo, store session.Store, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{
		users:  users,
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// ValidateCredentials loads the identity with its password slot and verifies
// the password. Fails NotFound when the email is unregistered and Unauthorized
// on mismatch.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindWithPasswordByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.New(apperr.KindNotFound, "Email not registered")
	}
	match, err := s.hasher.Matches(u.PasswordHash, []byte(password))
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, apperr.New(apperr.KindUnauthorized, "Wrong password")
	}
	return u, nil
}

// Login authenticates the identity and issues a fresh token pair. The refresh
// token is written to the session store under the identity id with the refresh
// TTL, overwriting any prior record: a concurrent session's refresh token
// stops working, though its access token stays valid for its own lifetime.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	access, _, err := s.tokens.IssueAccess(u.ID, u.Email.Value())
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.IssueRefresh(u.ID, u.Email.Value())
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, u.ID, refresh, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies the refresh token and requires it to equal the live refresh
// record for its identity; a logged-out or overwritten token cannot mint
// access tokens even before its expiry. On success returns a new access token
// bound to the same claims. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, email, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", apperr.New(apperr.KindUnauthorized, "Invalid refresh token")
	}

	current, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok || current != refreshToken {
		return "", apperr.New(apperr.KindUnauthorized, "Invalid refresh token")
	}

	access, _, err := s.tokens.IssueAccess(userID, email)
	if err != nil {
		return "", err
	}
	return access, nil
}

// Logout deletes the identity's refresh record. Idempotent: deleting a
// non-existent record is not an error.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}
