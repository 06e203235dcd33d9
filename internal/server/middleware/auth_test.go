package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelllbyyyyyy/authcore/internal/auth/service"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/session"
	"github.com/shelllbyyyyyy/authcore/internal/user/domain"
)

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func (r *memUserRepo) FindWithPasswordByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byEmail[email], nil
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type authFixture struct {
	router  *gin.Engine
	auth    *service.AuthService
	tokens  *security.TokenProvider
	expired *security.TokenProvider
	store   *session.MemoryStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := security.NewHasher(4)
	hash, err := hasher.Hash([]byte("12345678"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	email, err := domain.NewEmail("test@gmail.com")
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	u := domain.NewUser("u1", "tes123", email, hash, time.Now().UTC())
	repo := &memUserRepo{byEmail: map[string]*domain.User{"test@gmail.com": &u}}
	store := session.NewMemoryStore()

	secret := []byte("test-secret")
	tokens := security.NewTokenProvider(secret, 15*time.Minute, 7*24*time.Hour)
	// Same secret with a negative access TTL mints already-expired access tokens.
	expired := security.NewTokenProvider(secret, -time.Minute, 7*24*time.Hour)

	auth := service.NewAuthService(repo, store, hasher, tokens)

	r := gin.New()
	r.GET("/me", RequireAuth(tokens, auth, false), func(c *gin.Context) {
		userID, email, _ := Identity(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "email": email})
	})

	return &authFixture{router: r, auth: auth, tokens: tokens, expired: expired, store: store}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return e
}

func TestRequireAuth_MissingToken(t *testing.T) {
	f := newAuthFixture(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Missing access token" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestRequireAuth_BearerToken(t *testing.T) {
	f := newAuthFixture(t)
	access, _, err := f.tokens.IssueAccess("u1", "test@gmail.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
	var got struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "u1" || got.Email != "test@gmail.com" {
		t.Errorf("identity = %+v", got)
	}
}

func TestRequireAuth_CookieToken(t *testing.T) {
	f := newAuthFixture(t)
	access, _, err := f.tokens.IssueAccess("u1", "test@gmail.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: access})
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	f := newAuthFixture(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Invalid access token" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestRequireAuth_ExpiredWithoutRefreshCookie(t *testing.T) {
	f := newAuthFixture(t)
	access, _, err := f.expired.IssueAccess("u1", "test@gmail.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Token has expired" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestRequireAuth_SilentRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.auth.Login(ctx, "test@gmail.com", "12345678")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	stale, _, err := f.expired.IssueAccess("u1", "test@gmail.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: stale})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: pair.RefreshToken})
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}

	var refreshed bool
	for _, c := range w.Result().Cookies() {
		if c.Name == AccessCookie && c.Value != "" && c.Value != stale {
			refreshed = true
		}
	}
	if !refreshed {
		t.Error("a fresh access_token cookie should be set")
	}
}

func TestRequireAuth_SilentRefreshAfterLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.auth.Login(ctx, "test@gmail.com", "12345678")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.auth.Logout(ctx, "u1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	stale, _, err := f.expired.IssueAccess("u1", "test@gmail.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: stale})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: pair.RefreshToken})
	f.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 (%s)", w.Code, w.Body.String())
	}
	if e := decodeEnvelope(t, w); e.Message != "Invalid refresh token" {
		t.Errorf("message = %q", e.Message)
	}
}
