package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shelllbyyyyyy/authcore/internal/user/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the user to the database.
func (r *PostgresRepository) Create(ctx context.Context, u domain.User) error {
	const q = `INSERT INTO users (id, username, email, password, "createdAt", "updatedAt")
	           VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Username, u.Email.Value(), u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return err
}

// FindByEmail returns the user with the given email, password slot empty, or
// nil if not found. It returns an error only for database failures.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT id, username, email, "createdAt", "updatedAt" FROM users WHERE email = $1`
	return r.scanRow(r.db.QueryRowContext(ctx, q, email), false)
}

// FindByID returns the user for id, password slot empty, or nil if not found.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT id, username, email, "createdAt", "updatedAt" FROM users WHERE id = $1`
	return r.scanRow(r.db.QueryRowContext(ctx, q, id), false)
}

// FindWithPasswordByEmail returns the user including its password hash, or nil
// if not found.
func (r *PostgresRepository) FindWithPasswordByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT id, username, email, password, "createdAt", "updatedAt" FROM users WHERE email = $1`
	return r.scanRow(r.db.QueryRowContext(ctx, q, email), true)
}

// Delete removes the user row for email. Deleting a missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = $1`, email)
	return err
}

// ReplacePassword persists the replacement hash and UpdatedAt for the user's email.
func (r *PostgresRepository) ReplacePassword(ctx context.Context, u domain.User) error {
	const q = `UPDATE users SET password = $1, "updatedAt" = $2 WHERE email = $3`
	_, err := r.db.ExecContext(ctx, q, u.PasswordHash, u.UpdatedAt, u.Email.Value())
	return err
}

func (r *PostgresRepository) scanRow(row *sql.Row, withPassword bool) (*domain.User, error) {
	var u domain.User
	var rawEmail string
	var err error
	if withPassword {
		err = row.Scan(&u.ID, &u.Username, &rawEmail, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	} else {
		err = row.Scan(&u.ID, &u.Username, &rawEmail, &u.CreatedAt, &u.UpdatedAt)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	// Re-validate on reconstruction; a failure here is a store-layer inconsistency.
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, fmt.Errorf("user %s: stored email invalid: %w", u.ID, err)
	}
	u.Email = email
	return &u, nil
}
