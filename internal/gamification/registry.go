package gamification

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrJourneyNotFound = errors.New("journey not found")

// Registry holds one Tracker per journey.
type Registry struct {
	mu       sync.RWMutex
	trackers map[uuid.UUID]*Tracker
	opts     []Option
}

func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		trackers: make(map[uuid.UUID]*Tracker),
		opts:     opts,
	}
}

func (r *Registry) Create() (uuid.UUID, *Tracker) {
	id := uuid.New()
	t := NewTracker(r.opts...)

	r.mu.Lock()
	r.trackers[id] = t
	r.mu.Unlock()
	return id, t
}

func (r *Registry) Get(id uuid.UUID) (*Tracker, error) {
	r.mu.RLock()
	t, ok := r.trackers[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrJourneyNotFound
	}
	return t, nil
}

// Lookup parses a journey id and returns its tracker.
func (r *Registry) Lookup(raw string) (*Tracker, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrJourneyNotFound
	}
	return r.Get(id)
}

// Close closes every tracker's subscriptions.
func (r *Registry) Close() {
	r.mu.Lock()
	trackers := r.trackers
	r.trackers = make(map[uuid.UUID]*Tracker)
	r.mu.Unlock()

	for _, t := range trackers {
		t.Close()
	}
}
