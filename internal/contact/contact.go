// Package contact stores messages sent through the contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const StatusPending = "pending"

var (
	ErrMissingField = errors.New("name, email and message are required")
	ErrInvalidEmail = errors.New("invalid email address")
)

type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository persists contact messages. Save fills in CreatedAt.
type Repository interface {
	Save(ctx context.Context, m *Message) error
}

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// Submit stores a new pending message and returns the stored row.
func (s *Service) Submit(ctx context.Context, name, email, message string) (Message, error) {
	m := Message{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
		Status:  StatusPending,
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return Message{}, ErrMissingField
	}
	if addr, err := mail.ParseAddress(m.Email); err != nil || addr.Address != m.Email {
		return Message{}, ErrInvalidEmail
	}

	if err := s.repo.Save(ctx, &m); err != nil {
		return Message{}, fmt.Errorf("save contact message: %w", err)
	}

	s.log.Info("contact message stored", zap.Stringer("id", m.ID))
	return m, nil
}
