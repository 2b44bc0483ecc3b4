package contact

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps messages in process when no database is configured.
type MemoryRepository struct {
	mu       sync.Mutex
	messages []Message
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Save(ctx context.Context, m *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m.CreatedAt = r.now().UTC()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *MemoryRepository) All() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
