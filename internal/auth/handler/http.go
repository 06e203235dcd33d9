// Package handler exposes registration and session endpoints over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/shelllbyyyyyy/authcore/internal/apperr"
	authsvc "github.com/shelllbyyyyyy/authcore/internal/auth/service"
	"github.com/shelllbyyyyyy/authcore/internal/security"
	"github.com/shelllbyyyyyy/authcore/internal/server/middleware"
	"github.com/shelllbyyyyyy/authcore/internal/server/response"
	usersvc "github.com/shelllbyyyyyy/authcore/internal/user/service"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=4,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Handler serves the /auth routes.
type Handler struct {
	users         *usersvc.UserService
	auth          *authsvc.AuthService
	tokens        *security.TokenProvider
	secureCookies bool
}

func New(users *usersvc.UserService, auth *authsvc.AuthService, tokens *security.TokenProvider, secureCookies bool) *Handler {
	return &Handler{users: users, auth: auth, tokens: tokens, secureCookies: secureCookies}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindMessage(err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, "Register user successfull", user)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindMessage(err))
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetAccessCookie(c, pair.AccessToken, h.tokens.AccessTTL(), h.secureCookies)
	middleware.SetRefreshCookie(c, pair.RefreshToken, h.tokens.RefreshTTL(), h.secureCookies)
	response.JSON(c, http.StatusOK, "Login successfully", nil)
}

// Refresh mints a new access token from the refresh cookie. Clients without
// cookie support may send the token in the body instead.
func (h *Handler) Refresh(c *gin.Context) {
	token, err := c.Cookie(middleware.RefreshCookie)
	if err != nil || token == "" {
		var req refreshRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			response.Error(c, apperr.New(apperr.KindUnauthorized, "Invalid refresh token"))
			return
		}
		token = req.RefreshToken
	}

	access, err := h.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetAccessCookie(c, access, h.tokens.AccessTTL(), h.secureCookies)
	response.JSON(c, http.StatusOK, "Token refreshed", gin.H{"access_token": access})
}

func (h *Handler) Logout(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperr.New(apperr.KindUnauthorized, "Missing access token"))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	middleware.ClearAuthCookies(c, h.secureCookies)
	response.JSON(c, http.StatusOK, "You have been logout!", nil)
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return "Invalid email format"
		case "min":
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		case "max":
			return fe.Field() + " must be at most " + fe.Param() + " characters"
		}
		return fe.Field() + " is invalid"
	}
	return "Invalid request body"
}
