package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Skufu/healthlens/internal/chat"
	"github.com/Skufu/healthlens/internal/gamification"
)

type conversationResponse struct {
	ID       uuid.UUID      `json:"id"`
	Messages []chat.Message `json:"messages"`
}

func (h *handler) conversation(c *gin.Context) (*chat.Conversation, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(c, http.StatusNotFound, chat.ErrConversationNotFound.Error())
		return nil, false
	}
	conv, err := h.Chat.Conversation(id)
	if err != nil {
		abort(c, http.StatusNotFound, err.Error())
		return nil, false
	}
	return conv, true
}

func (h *handler) startConversation(c *gin.Context) {
	conv := h.Chat.Start()
	c.JSON(http.StatusCreated, conversationResponse{ID: conv.ID, Messages: conv.Visible()})
}

func (h *handler) listMessages(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, conversationResponse{ID: conv.ID, Messages: conv.Visible()})
}

type sendRequest struct {
	Message   string `json:"message" binding:"required,max=4000"`
	JourneyID string `json:"journeyId"`
}

type sendResponse struct {
	chat.Exchange
	Events []gamification.Event `json:"events,omitempty"`
}

func (h *handler) sendMessage(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	var req sendRequest
	if !bindJSON(c, &req) {
		return
	}
	tracker, ok := h.optionalJourney(c, req.JourneyID)
	if !ok {
		return
	}

	ex, err := h.Chat.Send(c.Request.Context(), conv.ID, req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, chat.ErrConversationNotFound):
		abort(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		c.Error(err)
		abort(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp := sendResponse{Exchange: ex}
	if tracker != nil {
		for _, id := range []string{gamification.AchievementFirstChat, gamification.AchievementChatMaster} {
			evs, err := tracker.Progress(id, 1)
			if err != nil {
				h.Log.Error("chat achievement progress failed", zap.String("achievement", id), zap.Error(err))
				continue
			}
			resp.Events = append(resp.Events, evs...)
		}
	}
	c.JSON(http.StatusOK, resp)
}
