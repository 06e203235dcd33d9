package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shelllbyyyyyy/authcore/internal/apperr"
	"github.com/shelllbyyyyyy/authcore/internal/auth/service"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/server/response"
)

// RequireAuth guards a route group. It verifies the access token from the
// Authorization header or the access_token cookie. When the token is expired
// and a refresh_token cookie is present, it silently mints a fresh access
// token through the auth service, re-issues the cookie, and lets the request
// through. Any other failure aborts with 401.
func RequireAuth(tokens *security.TokenProvider, auth *service.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := accessToken(c)
		if !ok {
			response.AbortError(c, apperr.New(apperr.KindUnauthorized, "Missing access token"))
			return
		}

		userID, email, err := tokens.VerifyAccess(raw)
		if err == nil {
			SetIdentity(c, userID, email)
			c.Next()
			return
		}
		if !errors.Is(err, security.ErrTokenExpired) {
			response.AbortError(c, apperr.New(apperr.KindUnauthorized, "Invalid access token"))
			return
		}

		refresh, cookieErr := c.Cookie(RefreshCookie)
		if cookieErr != nil || refresh == "" {
			response.AbortError(c, apperr.New(apperr.KindUnauthorized, "Token has expired"))
			return
		}
		fresh, refreshErr := auth.Refresh(c.Request.Context(), refresh)
		if refreshErr != nil {
			response.AbortError(c, refreshErr)
			return
		}
		userID, email, err = tokens.VerifyAccess(fresh)
		if err != nil {
			response.AbortError(c, apperr.New(apperr.KindUnauthorized, "Invalid access token"))
			return
		}
		SetAccessCookie(c, fresh, tokens.AccessTTL(), secureCookies)
		SetIdentity(c, userID, email)
		c.Next()
	}
}

func accessToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		if t, found := strings.CutPrefix(h, "Bearer "); found && t != "" {
			return t, true
		}
	}
	if t, err := c.Cookie(AccessCookie); err == nil && t != "" {
		return t, true
	}
	return "", false
}
