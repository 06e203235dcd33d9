// Package service implements the identity lifecycle core: registration,
// lookup, password change, and deletion.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelllbyyyyyy/authcore/internal/apperr"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/user/domain"
	"github.com/shelllbyyyyyy/authcore/internal/user/repository"
)

// UserService orchestrates identity creation, lookup, and password change.
type UserService struct {
	repo   repository.Repository
	hasher *security.Hasher
}

// NewUserService returns a UserService with the given dependencies.
func NewUserService(repo repository.Repository, hasher *security.Hasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Register creates a new identity. Fails Conflict when the email is already
// registered and InvalidInput when the email is malformed. The returned
// projection never carries the password hash.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.Response, error) {
	addr, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, addr.Value())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Newf(apperr.KindConflict, "This email %s already exists", addr.Value())
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}

	u := domain.NewUser(uuid.New().String(), username, addr, hash, time.Now().UTC())
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	resp := u.Response()
	return &resp, nil
}

// FindByEmail returns the response projection for the identity, never the
// password hash. Fails NotFound when absent.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.Response, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}
	resp := u.Response()
	return &resp, nil
}

// UpdatePassword replaces the identity's password hash. The old password must
// match the stored hash and the new password must not; the two comparisons run
// concurrently and are both awaited before branching, so callers must not
// assume left-to-right evaluation. Returns the identity id.
func (s *UserService) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) (string, error) {
	u, err := s.repo.FindWithPasswordByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", apperr.New(apperr.KindNotFound, "User not found")
	}

	var (
		oldMatch, newMatch bool
		oldErr, newErr     error
		wg                 sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		oldMatch, oldErr = s.hasher.Matches(u.PasswordHash, []byte(oldPassword))
	}()
	go func() {
		defer wg.Done()
		newMatch, newErr = s.hasher.Matches(u.PasswordHash, []byte(newPassword))
	}()
	wg.Wait()
	if oldErr != nil {
		return "", oldErr
	}
	if newErr != nil {
		return "", newErr
	}

	if !oldMatch {
		return "", apperr.New(apperr.KindUnauthorized, "Password not match")
	}
	if newMatch {
		return "", apperr.New(apperr.KindInvalidInput, "New Password have to be different with old password")
	}

	hash, err := s.hasher.Hash([]byte(newPassword))
	if err != nil {
		return "", err
	}

	replacement := u.WithPasswordHash(hash, time.Now().UTC())
	if err := s.repo.ReplacePassword(ctx, replacement); err != nil {
		return "", err
	}
	return replacement.ID, nil
}

// Delete removes the identity. Fails NotFound when absent.
func (s *UserService) Delete(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.New(apperr.KindNotFound, "User not found")
	}
	return s.repo.Delete(ctx, email)
}
