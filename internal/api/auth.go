package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/healthlens/internal/auth"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *handler) signUp(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *handler) signIn(c *gin.Context) {
	var req credentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handler) signOut(c *gin.Context) {
	token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.Auth.SignOut(c.Request.Context(), strings.TrimSpace(token)); err != nil {
		h.authError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authError passes the backend's client errors through and hides the rest.
func (h *handler) authError(c *gin.Context, err error) {
	var apiErr *auth.APIError
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		abort(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, auth.ErrMissingToken):
		abort(c, http.StatusUnauthorized, err.Error())
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		abort(c, apiErr.Status, apiErr.Message)
	default:
		c.Error(err)
		abort(c, http.StatusBadGateway, "authentication service unavailable")
	}
}
