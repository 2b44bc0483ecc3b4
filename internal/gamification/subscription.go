package gamification

import (
	"sync"
	"time"
)

type EventKind string

const (
	EventPointsAwarded       EventKind = "points_awarded"
	EventLevelChanged        EventKind = "level_changed"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventChallengeCompleted  EventKind = "challenge_completed"
)

// Event is a notification for the UI. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind    `json:"kind"`
	Points      int          `json:"points,omitempty"`
	TotalPoints int          `json:"totalPoints"`
	Level       int          `json:"level"`
	Achievement *Achievement `json:"achievement,omitempty"`
	Challenge   *Challenge   `json:"challenge,omitempty"`
	At          time.Time    `json:"at"`
}

// Subscription receives every event published after it was created, in order.
// Publishing never blocks: events queue until the subscriber reads them.
type Subscription struct {
	tracker *Tracker
	out     chan Event
	done    chan struct{}

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Event
	closed bool
}

func newSubscription(t *Tracker) *Subscription {
	s := &Subscription{
		tracker: t,
		out:     make(chan Event),
		done:    make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.pump()
	return s
}

// Events is closed after Close.
func (s *Subscription) Events() <-chan Event { return s.out }

// Close stops delivery. Queued events not yet read are dropped.
func (s *Subscription) Close() {
	s.tracker.unsubscribe(s)
	s.shutdown()
}

func (s *Subscription) shutdown() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *Subscription) push(events []Event) {
	s.mu.Lock()
	if !s.closed {
		s.queue = append(s.queue, events...)
		s.cond.Signal()
	}
	s.mu.Unlock()
}

func (s *Subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		ev := s.queue[0]
		s.queue[0] = Event{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- ev:
		case <-s.done:
			return
		}
	}
}
