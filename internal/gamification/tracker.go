// Package gamification tracks health points, levels, achievements and daily
// challenges for one user journey, and notifies subscribers of every change.
package gamification

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrUnknownAchievement = errors.New("unknown achievement")
	ErrUnknownChallenge   = errors.New("unknown challenge")
)

type Option func(*Tracker)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker is safe for concurrent use. Mutations and event publication happen under
// one lock, so subscribers observe events in mutation order.
type Tracker struct {
	mu           sync.Mutex
	now          func() time.Time
	points       int
	level        int
	achievements []Achievement
	challenges   []Challenge
	challengeDay string
	lastVisitDay time.Time
	subs         map[*Subscription]struct{}
}

type Snapshot struct {
	Points       int           `json:"points"`
	Level        int           `json:"level"`
	Achievements []Achievement `json:"achievements"`
	Challenges   []Challenge   `json:"challenges"`
	ResetIn      time.Duration `json:"resetIn"`
}

func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		now:          time.Now,
		level:        1,
		achievements: defaultAchievements(),
		subs:         make(map[*Subscription]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	now := t.now()
	t.lastVisitDay = truncateDay(now)
	t.refreshChallengesLocked(now)
	return t
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.refreshChallengesLocked(now)

	s := Snapshot{
		Points:       t.points,
		Level:        t.level,
		Achievements: make([]Achievement, len(t.achievements)),
		Challenges:   make([]Challenge, len(t.challenges)),
		ResetIn:      TimeUntilReset(now),
	}
	copy(s.Achievements, t.achievements)
	copy(s.Challenges, t.challenges)
	return s
}

// Subscribe starts a subscription. Callers must Close it.
func (t *Tracker) Subscribe() *Subscription {
	s := newSubscription(t)
	t.mu.Lock()
	t.subs[s] = struct{}{}
	t.mu.Unlock()
	return s
}

func (t *Tracker) unsubscribe(s *Subscription) {
	t.mu.Lock()
	delete(t.subs, s)
	t.mu.Unlock()
}

// Close ends every subscription.
func (t *Tracker) Close() {
	t.mu.Lock()
	subs := t.subs
	t.subs = make(map[*Subscription]struct{})
	t.mu.Unlock()

	for s := range subs {
		s.shutdown()
	}
}

// AddPoints awards points directly. Non-positive amounts are ignored.
func (t *Tracker) AddPoints(n int) []Event {
	if n <= 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var evs []Event
	t.awardLocked(n, &evs)
	t.publishLocked(evs)
	return evs
}

// Progress advances an achievement by delta. Progress is capped at the maximum;
// reaching it unlocks the achievement once. Updates after unlock are no-ops.
func (t *Tracker) Progress(id string, delta int) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.achievementIndex(id)
	if i < 0 {
		return nil, ErrUnknownAchievement
	}
	if delta <= 0 {
		return nil, nil
	}

	var evs []Event
	t.setProgressLocked(i, t.achievements[i].Progress+delta, &evs)
	t.publishLocked(evs)
	return evs, nil
}

// Unlock unlocks an achievement regardless of progress. Idempotent.
func (t *Tracker) Unlock(id string) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.achievementIndex(id)
	if i < 0 {
		return nil, ErrUnknownAchievement
	}

	var evs []Event
	t.unlockLocked(i, &evs)
	t.publishLocked(evs)
	return evs, nil
}

// CompleteChallenge marks one of today's challenges done and awards its points.
// Completing it again is a no-op.
func (t *Tracker) CompleteChallenge(id string) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refreshChallengesLocked(t.now())
	for i := range t.challenges {
		c := &t.challenges[i]
		if c.ID != id {
			continue
		}
		if c.Completed {
			return nil, nil
		}
		c.Completed = true

		done := *c
		evs := []Event{{Kind: EventChallengeCompleted, Points: c.Points, Challenge: &done, At: t.now()}}
		t.awardLocked(c.Points, &evs)
		evs[0].TotalPoints, evs[0].Level = t.points, t.level
		t.publishLocked(evs)
		return evs, nil
	}
	return nil, ErrUnknownChallenge
}

// RecordVisit advances the streak achievement on consecutive days and restarts it
// after a missed day.
func (t *Tracker) RecordVisit() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := truncateDay(t.now())
	last := t.lastVisitDay
	t.lastVisitDay = today

	i := t.achievementIndex(AchievementStreak3)
	if !today.After(last) || t.achievements[i].Unlocked {
		return nil
	}

	var evs []Event
	if today.Equal(last.AddDate(0, 0, 1)) {
		t.setProgressLocked(i, t.achievements[i].Progress+1, &evs)
	} else {
		t.achievements[i].Progress = 1
	}
	t.publishLocked(evs)
	return evs
}

func (t *Tracker) achievementIndex(id string) int {
	for i := range t.achievements {
		if t.achievements[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) setProgressLocked(i, value int, evs *[]Event) {
	a := &t.achievements[i]
	if a.Unlocked {
		return
	}
	if value > a.MaxProgress {
		value = a.MaxProgress
	}
	a.Progress = value
	if a.Progress >= a.MaxProgress {
		t.unlockLocked(i, evs)
	}
}

func (t *Tracker) unlockLocked(i int, evs *[]Event) {
	a := &t.achievements[i]
	if a.Unlocked {
		return
	}
	a.Unlocked = true
	a.Progress = a.MaxProgress

	unlocked := *a
	at := len(*evs)
	*evs = append(*evs, Event{
		Kind:        EventAchievementUnlocked,
		Points:      a.Points,
		Achievement: &unlocked,
		At:          t.now(),
	})
	t.awardLocked(a.Points, evs)
	(*evs)[at].TotalPoints, (*evs)[at].Level = t.points, t.level
}

func (t *Tracker) awardLocked(n int, evs *[]Event) {
	t.points += n
	*evs = append(*evs, Event{
		Kind:        EventPointsAwarded,
		Points:      n,
		TotalPoints: t.points,
		Level:       t.level,
		At:          t.now(),
	})

	level := LevelFor(t.points)
	if level == t.level {
		return
	}
	t.level = level
	*evs = append(*evs, Event{
		Kind:        EventLevelChanged,
		TotalPoints: t.points,
		Level:       level,
		At:          t.now(),
	})
	if i := t.achievementIndex(AchievementHealthGuru); i >= 0 {
		t.setProgressLocked(i, level, evs)
	}
}

func (t *Tracker) publishLocked(evs []Event) {
	if len(evs) == 0 {
		return
	}
	for s := range t.subs {
		s.push(evs)
	}
}

func (t *Tracker) refreshChallengesLocked(now time.Time) {
	day := dayKey(now)
	if day == t.challengeDay {
		return
	}
	t.challengeDay = day
	t.challenges = DailyChallenges(now)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
