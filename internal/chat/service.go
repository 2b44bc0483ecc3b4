package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Service runs the chat exchange for stored conversations.
type Service struct {
	store *Store
	chain *Chain
}

func NewService(store *Store, chain *Chain) *Service {
	return &Service{store: store, chain: chain}
}

func (s *Service) Start() *Conversation { return s.store.Create() }

func (s *Service) Conversation(id uuid.UUID) (*Conversation, error) { return s.store.Get(id) }

// Exchange is one user turn and the answer to it.
type Exchange struct {
	ConversationID uuid.UUID `json:"conversationId"`
	Question       Message   `json:"question"`
	Answer         Message   `json:"answer"`
	Provider       string    `json:"provider"`
	Status         Status    `json:"status"`
	Notice         string    `json:"notice,omitempty"`
}

// Send appends the user message, asks the chain, and appends the answer. Only a
// missing conversation or an empty message is an error.
func (s *Service) Send(ctx context.Context, id uuid.UUID, text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{}, ErrEmptyMessage
	}
	conv, err := s.store.Get(id)
	if err != nil {
		return Exchange{}, err
	}

	history := conv.Messages()
	question := conv.Append(RoleUser, text)
	reply := s.chain.Reply(ctx, history, text)
	answer := conv.Append(RoleAssistant, reply.Content)

	return Exchange{
		ConversationID: conv.ID,
		Question:       question,
		Answer:         answer,
		Provider:       reply.Provider,
		Status:         reply.Status,
		Notice:         reply.Notice,
	}, nil
}
