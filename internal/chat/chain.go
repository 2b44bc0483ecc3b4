package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

const (
	NoticeOffline = "All AI APIs failed. Using offline mode."
	NoticeError   = "Error processing request"
)

// Reply is the answer plus which provider produced it.
type Reply struct {
	Content  string `json:"content"`
	Provider string `json:"provider"`
	Status   Status `json:"status"`
	Notice   string `json:"notice,omitempty"`
}

// Chain tries providers in order and uses the first usable reply. Failures are
// logged and never returned; the local responder is the last resort.
type Chain struct {
	providers []Provider
	local     LocalResponder
	log       *zap.Logger
}

func NewChain(log *zap.Logger, providers ...Provider) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{providers: providers, log: log}
}

func (c *Chain) Reply(ctx context.Context, history []Message, message string) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("chat chain panicked", zap.Any("panic", r))
			reply = Reply{Content: ApologyReply, Provider: c.local.Name(), Status: StatusOffline, Notice: NoticeError}
		}
	}()

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			c.log.Warn("chat request canceled", zap.Error(err))
			break
		}

		text, err := p.Reply(ctx, history, message)
		switch {
		case errors.Is(err, ErrNotConfigured):
			c.log.Debug("chat provider skipped", zap.String("provider", p.Name()))
			continue
		case err != nil:
			c.log.Warn("chat provider failed", zap.String("provider", p.Name()), zap.Error(err))
			continue
		case strings.TrimSpace(text) == "":
			c.log.Warn("chat provider returned empty reply", zap.String("provider", p.Name()))
			continue
		}
		return Reply{Content: text, Provider: p.Name(), Status: StatusOnline}
	}

	return Reply{
		Content:  c.local.Respond(message),
		Provider: c.local.Name(),
		Status:   StatusOffline,
		Notice:   NoticeOffline,
	}
}
