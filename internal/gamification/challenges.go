package gamification

import (
	"math/rand/v2"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const challengesPerDay = 3

type Challenge struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Difficulty  Difficulty `json:"difficulty"`
	Completed   bool       `json:"completed"`
}

var challengePool = []Challenge{
	{ID: "water_intake", Title: "Stay Hydrated", Description: "Drink at least 8 glasses of water today", Points: 50, Difficulty: DifficultyEasy},
	{ID: "steps_count", Title: "Step Challenge", Description: "Take at least 8,000 steps today", Points: 75, Difficulty: DifficultyMedium},
	{ID: "meditation", Title: "Mindful Moment", Description: "Practice meditation for 10 minutes", Points: 60, Difficulty: DifficultyEasy},
	{ID: "nutrition", Title: "Balanced Diet", Description: "Eat at least 3 servings of vegetables today", Points: 70, Difficulty: DifficultyMedium},
	{ID: "sleep", Title: "Sleep Well", Description: "Get 7-8 hours of sleep tonight", Points: 80, Difficulty: DifficultyMedium},
	{ID: "workout", Title: "Active Living", Description: "Complete a 30-minute workout session", Points: 100, Difficulty: DifficultyHard},
	{ID: "sugar_free", Title: "Sugar Detox", Description: "Avoid added sugars for the entire day", Points: 90, Difficulty: DifficultyHard},
	{ID: "posture", Title: "Posture Perfect", Description: "Practice good posture throughout the day", Points: 60, Difficulty: DifficultyEasy},
	{ID: "screen_time", Title: "Digital Detox", Description: "Reduce screen time by 1 hour today", Points: 70, Difficulty: DifficultyMedium},
}

func dayKey(t time.Time) string { return t.Format(time.DateOnly) }

// DailyChallenges picks three challenges for the calendar day of t. Every caller
// gets the same three for the same day.
func DailyChallenges(t time.Time) []Challenge {
	y, m, d := t.Date()
	seed := uint64(y*10000 + int(m)*100 + d)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	out := make([]Challenge, 0, challengesPerDay)
	for _, i := range r.Perm(len(challengePool))[:challengesPerDay] {
		out = append(out, challengePool[i])
	}
	return out
}

// TimeUntilReset is the time left until the next local midnight.
func TimeUntilReset(now time.Time) time.Duration {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Sub(now)
}
