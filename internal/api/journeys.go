package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/healthlens/internal/gamification"
)

const keepAliveInterval = 25 * time.Second

type journeyState struct {
	ID string `json:"id"`
	gamification.Snapshot
	ResetInSeconds int64 `json:"resetInSeconds"`
}

func stateOf(id string, t *gamification.Tracker) journeyState {
	s := t.Snapshot()
	return journeyState{ID: id, Snapshot: s, ResetInSeconds: int64(s.ResetIn / time.Second)}
}

type journeyUpdate struct {
	Events []gamification.Event `json:"events"`
	State  journeyState         `json:"state"`
}

func (h *handler) journey(c *gin.Context) (*gamification.Tracker, bool) {
	t, err := h.Journeys.Lookup(c.Param("id"))
	if err != nil {
		abort(c, http.StatusNotFound, err.Error())
		return nil, false
	}
	return t, true
}

// optionalJourney resolves a journey id carried in a request body. An empty id
// yields a nil tracker.
func (h *handler) optionalJourney(c *gin.Context, raw string) (*gamification.Tracker, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := h.Journeys.Lookup(raw)
	if err != nil {
		abort(c, http.StatusNotFound, err.Error())
		return nil, false
	}
	return t, true
}

func (h *handler) respondUpdate(c *gin.Context, t *gamification.Tracker, evs []gamification.Event) {
	if evs == nil {
		evs = []gamification.Event{}
	}
	c.JSON(http.StatusOK, journeyUpdate{Events: evs, State: stateOf(c.Param("id"), t)})
}

func (h *handler) createJourney(c *gin.Context) {
	id, t := h.Journeys.Create()
	c.JSON(http.StatusCreated, stateOf(id.String(), t))
}

func (h *handler) getJourney(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stateOf(c.Param("id"), t))
}

type pointsRequest struct {
	Points int `json:"points" binding:"required,gt=0"`
}

func (h *handler) addPoints(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}
	var req pointsRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondUpdate(c, t, t.AddPoints(req.Points))
}

func (h *handler) recordVisit(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}
	h.respondUpdate(c, t, t.RecordVisit())
}

type progressRequest struct {
	Delta int `json:"delta"`
}

func (h *handler) progressAchievement(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}
	req := progressRequest{Delta: 1}
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	evs, err := t.Progress(c.Param("aid"), req.Delta)
	if err != nil {
		h.gamificationError(c, err)
		return
	}
	h.respondUpdate(c, t, evs)
}

func (h *handler) unlockAchievement(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}
	evs, err := t.Unlock(c.Param("aid"))
	if err != nil {
		h.gamificationError(c, err)
		return
	}
	h.respondUpdate(c, t, evs)
}

func (h *handler) completeChallenge(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}
	evs, err := t.CompleteChallenge(c.Param("cid"))
	if err != nil {
		h.gamificationError(c, err)
		return
	}
	h.respondUpdate(c, t, evs)
}

func (h *handler) gamificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gamification.ErrUnknownAchievement), errors.Is(err, gamification.ErrUnknownChallenge):
		abort(c, http.StatusNotFound, err.Error())
	default:
		c.Error(err)
		abort(c, http.StatusInternalServerError, "internal error")
	}
}

// streamJourney sends the journey's events as server-sent events until the client
// goes away or the tracker is closed.
func (h *handler) streamJourney(c *gin.Context) {
	t, ok := h.journey(c)
	if !ok {
		return
	}

	sub := t.Subscribe()
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("state", stateOf(c.Param("id"), t))
	c.Writer.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				return
			}
			c.SSEvent(string(ev.Kind), ev)
			c.Writer.Flush()
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{})
			c.Writer.Flush()
		}
	}
}
