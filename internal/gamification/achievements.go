package gamification

const (
	AchievementFirstChat      = "first_chat"
	AchievementRiskAssessment = "risk_assessment"
	AchievementStreak3        = "streak_3"
	AchievementChatMaster     = "chat_master"
	AchievementHealthGuru     = "health_guru"
)

const (
	pointsPerLevel  = 200
	healthGuruLevel = 5
)

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"maxProgress"`
	Points      int    `json:"points"`
}

func defaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          AchievementFirstChat,
			Title:       "Health Explorer",
			Description: "Started your first conversation with the health assistant",
			MaxProgress: 1,
			Points:      50,
		},
		{
			ID:          AchievementRiskAssessment,
			Title:       "Risk Analyzer",
			Description: "Completed your first health risk assessment",
			MaxProgress: 1,
			Points:      100,
		},
		{
			ID:          AchievementStreak3,
			Title:       "Health Enthusiast",
			Description: "Used the app for 3 consecutive days",
			Progress:    1,
			MaxProgress: 3,
			Points:      150,
		},
		{
			ID:          AchievementChatMaster,
			Title:       "Conversation Master",
			Description: "Had 10 meaningful conversations with the health assistant",
			Progress:    2,
			MaxProgress: 10,
			Points:      200,
		},
		{
			ID:          AchievementHealthGuru,
			Title:       "Health Guru",
			Description: "Reached level 5 in your health journey",
			MaxProgress: healthGuruLevel,
			Points:      500,
		},
	}
}

// LevelFor is one level per 200 points, starting at level 1.
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/pointsPerLevel + 1
}
