package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const SystemPrompt = `You are an AI health assistant specializing in health risk assessment and disease detection. Your responses should be:
1. Professional and accurate
2. Focused on health-related information
3. Clear and easy to understand
4. Include relevant medical context when appropriate
5. Always encourage consulting healthcare professionals for serious concerns`

const Greeting = "Hello! I'm your AI health assistant. How can I help you today?"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message is empty")
)

type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an append-only message log.
type Conversation struct {
	ID uuid.UUID

	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
}

func (c *Conversation) Append(role Role, content string) Message {
	m := Message{ID: uuid.New(), Role: role, Content: content, Timestamp: c.now()}
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.mu.Unlock()
	return m
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Visible omits the system prompt.
func (c *Conversation) Visible() []Message {
	all := c.Messages()
	out := all[:0]
	for _, m := range all {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}

// Store keeps conversations in memory for the life of the process.
type Store struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]*Conversation
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		conversations: make(map[uuid.UUID]*Conversation),
		now:           time.Now,
	}
}

// Create starts a conversation seeded with the system prompt and greeting.
func (s *Store) Create() *Conversation {
	c := &Conversation{ID: uuid.New(), now: s.now}
	c.Append(RoleSystem, SystemPrompt)
	c.Append(RoleAssistant, Greeting)

	s.mu.Lock()
	s.conversations[c.ID] = c
	s.mu.Unlock()
	return c
}

func (s *Store) Get(id uuid.UUID) (*Conversation, error) {
	s.mu.RLock()
	c, ok := s.conversations[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrConversationNotFound
	}
	return c, nil
}
