package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// AccessCookie is the cookie carrying the access token.
	AccessCookie = "access_token"
	// RefreshCookie is the cookie carrying the refresh token.
	RefreshCookie = "refresh_token"
)

// SetAccessCookie installs the access token as an httpOnly cookie.
func SetAccessCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// SetRefreshCookie installs the refresh token as an httpOnly cookie.
func SetRefreshCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearAuthCookies removes both token cookies at logout.
func ClearAuthCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", secure, true)
}
