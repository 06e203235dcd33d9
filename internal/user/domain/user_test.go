package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewUser(t *testing.T) {
	email, _ := NewEmail("test@gmail.com")
	now := time.Now().UTC()
	u := NewUser("id-1", "tes123", email, "hash", now)

	if u.CreatedAt != u.UpdatedAt {
		t.Error("CreatedAt and UpdatedAt should start equal")
	}
	if !u.HasPassword() {
		t.Error("password slot should be populated")
	}
}

func TestUser_WithPasswordHash(t *testing.T) {
	email, _ := NewEmail("test@gmail.com")
	created := time.Now().UTC().Add(-time.Hour)
	u := NewUser("id-1", "tes123", email, "old-hash", created)

	later := time.Now().UTC()
	u2 := u.WithPasswordHash("new-hash", later)

	if u.PasswordHash != "old-hash" {
		t.Error("original value must not be mutated")
	}
	if u2.PasswordHash != "new-hash" || u2.UpdatedAt != later {
		t.Errorf("replacement: hash=%q updatedAt=%v", u2.PasswordHash, u2.UpdatedAt)
	}
	if u2.CreatedAt != created {
		t.Error("CreatedAt must not change on password replacement")
	}
}

func TestUser_ResponseOmitsPassword(t *testing.T) {
	email, _ := NewEmail("test@gmail.com")
	u := NewUser("id-1", "tes123", email, "super-secret-hash", time.Now().UTC())

	b, err := json.Marshal(u.Response())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "super-secret-hash") || strings.Contains(strings.ToLower(s), "password") {
		t.Errorf("projection leaked password material: %s", s)
	}
	if !strings.Contains(s, `"email":"test@gmail.com"`) {
		t.Errorf("projection missing email: %s", s)
	}
}
