// Package handler exposes user lookup and account maintenance over HTTP.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/shelllbyyyyyy/authcore/internal/server/response"
	"github.com/shelllbyyyyyy/authcore/internal/user/service"
)

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required,min=8,max=255"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=255"`
}

// Handler serves the /users routes.
type Handler struct {
	users *service.UserService
}

func New(users *service.UserService) *Handler {
	return &Handler{users: users}
}

func (h *Handler) Find(c *gin.Context) {
	user, err := h.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "User found", user)
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindMessage(err))
		return
	}

	id, err := h.users.UpdatePassword(c.Request.Context(), c.Param("email"), req.OldPassword, req.NewPassword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Password updated", gin.H{"id": id})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("email")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "min":
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		case "max":
			return fe.Field() + " must be at most " + fe.Param() + " characters"
		}
		return fe.Field() + " is invalid"
	}
	return "Invalid request body"
}
