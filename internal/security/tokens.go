package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, carries a bad
	// signature, or was signed with an unexpected method.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a correctly signed token is past its
	// expiry. Callers doing silent refresh branch on this.
	ErrTokenExpired = errors.New("token expired")
)

// Claims holds the JWT claims for both access and refresh tokens: the identity
// id as subject plus its email. Access and refresh tokens share claim shape and
// signing secret; only the expiry window differs.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenProvider issues and verifies HS256-signed access and refresh tokens
// using a single process-wide secret.
type TokenProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret. accessTTL and
// refreshTTL bound the respective token lifetimes.
func NewTokenProvider(secret []byte, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the access token lifetime.
func (p *TokenProvider) AccessTTL() time.Duration { return p.accessTTL }

// RefreshTTL returns the refresh token lifetime. Login uses it as the TTL of
// the refresh record.
func (p *TokenProvider) RefreshTTL() time.Duration { return p.refreshTTL }

// IssueAccess issues a short-lived access token for the identity.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueAccess(userID, email string) (string, time.Time, error) {
	return p.issue(userID, email, p.accessTTL)
}

// IssueRefresh issues a long-lived refresh token for the identity.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueRefresh(userID, email string) (string, time.Time, error) {
	return p.issue(userID, email, p.refreshTTL)
}

func (p *TokenProvider) issue(userID, email string, ttl time.Duration) (string, time.Time, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens for the same identity distinguishable even
			// when issued within the same second; the single-slot refresh
			// record relies on that.
			ID:        jti,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// VerifyAccess parses and verifies an access token (signature and expiry
// together). Returns the identity id and email, ErrTokenExpired for a
// correctly signed but expired token, ErrInvalidToken otherwise.
func (p *TokenProvider) VerifyAccess(tokenString string) (userID, email string, err error) {
	return p.verify(tokenString)
}

// VerifyRefresh parses and verifies a refresh token. Same error semantics as
// VerifyAccess. The refresh record check is the caller's concern; this only
// proves the token was ours and is still within its window.
func (p *TokenProvider) VerifyRefresh(tokenString string) (userID, email string, err error) {
	return p.verify(tokenString)
}

func (p *TokenProvider) verify(tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrTokenExpired
		}
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, claims.Email, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
