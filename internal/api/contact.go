package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/healthlens/internal/contact"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}

func (h *handler) submitContact(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.Contact.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	switch {
	case errors.Is(err, contact.ErrMissingField), errors.Is(err, contact.ErrInvalidEmail):
		abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		c.Error(err)
		abort(c, http.StatusInternalServerError, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, msg)
}
