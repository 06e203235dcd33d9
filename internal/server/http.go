// Package server assembles the HTTP surface: router, middleware chain, and
// route registration for every handler group.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	authhandler "github.com/shelllbyyyyyy/authcore/internal/auth/handler"
	authsvc "github.com/shelllbyyyyyy/authcore/internal/auth/service"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/server/middleware"
	"github.com/shelllbyyyyyy/authcore/internal/server/response"
	userhandler "github.com/shelllbyyyyyy/authcore/internal/user/handler"
	usersvc "github.com/shelllbyyyyyy/authcore/internal/user/service"
)

// Deps carries everything the router needs. All wiring is explicit; nothing
// here reaches for globals.
type Deps struct {
	Logger        *slog.Logger
	Tracer        trace.Tracer
	Tokens        *security.TokenProvider
	Auth          *authsvc.AuthService
	Users         *usersvc.UserService
	SecureCookies bool
}

// NewRouter builds the gin engine with the full middleware chain and routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Tracer != nil {
		r.Use(middleware.Tracing(d.Tracer))
	}
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}

	r.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, "OK", nil)
	})

	authh := authhandler.New(d.Users, d.Auth, d.Tokens, d.SecureCookies)
	userh := userhandler.New(d.Users)
	guard := middleware.RequireAuth(d.Tokens, d.Auth, d.SecureCookies)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authh.Register)
		auth.POST("/login", authh.Login)
		auth.POST("/refresh", authh.Refresh)
		auth.POST("/logout", guard, authh.Logout)
	}

	users := r.Group("/users", guard)
	{
		users.GET("/:email", userh.Find)
		users.PATCH("/:email/password", userh.UpdatePassword)
		users.DELETE("/:email", userh.Delete)
	}

	return r
}
