package domain

import (
	"regexp"
	"strings"

	"github.com/shelllbyyyyyy/authcore/internal/apperr"
)

// The sole place email format is enforced: at construction and at every
// reconstruction from storage.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated email address. The zero value is invalid; construct
// via NewEmail.
type Email struct {
	value string
}

// NewEmail validates raw and returns the Email value. Fails with InvalidInput
// when raw is empty or does not match the local@domain.tld shape.
func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !emailPattern.MatchString(trimmed) {
		return Email{}, apperr.New(apperr.KindInvalidInput, "Invalid email format")
	}
	return Email{value: trimmed}, nil
}

// Value returns the underlying address.
func (e Email) Value() string { return e.value }

func (e Email) String() string { return e.value }

// Equals reports whether two Email values wrap the same address.
func (e Email) Equals(other Email) bool { return e.value == other.value }

// IsZero reports whether the Email was never constructed.
func (e Email) IsZero() bool { return e.value == "" }
