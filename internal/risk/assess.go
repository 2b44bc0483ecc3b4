// Package risk scores a stroke-risk form with a fixed additive point table.
package risk

import "strings"

type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Assessment is the result shown to the user. RawScore is the unclamped sum and
// drives the escalation tiers of Recommendations.
type Assessment struct {
	RiskPercentage  int      `json:"riskPercentage"`
	Level           Level    `json:"level"`
	RawScore        int      `json:"rawScore"`
	Recommendations []string `json:"recommendations"`
}

type band struct {
	above  float64
	points int
}

var (
	ageBands     = []band{{65, 30}, {55, 20}, {45, 10}}
	bpBands      = []band{{180, 30}, {140, 20}, {120, 10}}
	glucoseBands = []band{{200, 20}, {140, 15}, {100, 5}}
	bmiBands     = []band{{30, 20}, {25, 10}}

	smokingPoints = map[string]int{
		SmokingCurrent: 25,
		SmokingFormer:  15,
	}
	heartDiseasePoints = 30
)

var (
	baseRecommendations = []string{
		"Maintain a balanced, heart-healthy diet",
		"Exercise regularly (at least 150 minutes per week)",
		"Monitor blood pressure regularly",
		"Stay hydrated",
		"Get adequate sleep (7-9 hours)",
	}
	elevatedRecommendations = []string{
		"Consider consulting a cardiologist",
		"Monitor blood pressure daily",
		"Reduce sodium intake",
		"Practice stress management techniques",
	}
	urgentRecommendations = []string{
		"Urgent medical consultation recommended",
		"Consider medication review with your doctor",
		"Implement strict dietary changes",
		"Daily blood pressure and glucose monitoring",
	}
)

const (
	elevatedThreshold = 50
	urgentThreshold   = 70
)

// Assess scores the profile. Fields that do not parse as numbers score zero.
func Assess(p HealthProfile) Assessment {
	score := 0

	if age, ok := p.Age.Int(); ok {
		score += bandPoints(ageBands, age)
	}
	if bp, ok := p.BloodPressure.Int(); ok {
		score += bandPoints(bpBands, bp)
	}
	if glucose, ok := p.Glucose.Int(); ok {
		score += bandPoints(glucoseBands, glucose)
	}
	if bmi, ok := p.BMI.Float(); ok {
		score += bandPoints(bmiBands, bmi)
	}

	score += smokingPoints[strings.ToLower(strings.TrimSpace(p.Smoking))]
	if strings.EqualFold(strings.TrimSpace(p.HeartDisease), "yes") {
		score += heartDiseasePoints
	}

	pct := score
	if pct > 100 {
		pct = 100
	}

	return Assessment{
		RiskPercentage:  pct,
		Level:           LevelFor(pct),
		RawScore:        score,
		Recommendations: Recommendations(score),
	}
}

func bandPoints(bands []band, v float64) int {
	for _, b := range bands {
		if v > b.above {
			return b.points
		}
	}
	return 0
}

// Recommendations returns the base advice plus the escalation tiers the raw score
// crosses.
func Recommendations(rawScore int) []string {
	out := make([]string, 0, len(baseRecommendations)+len(elevatedRecommendations)+len(urgentRecommendations))
	out = append(out, baseRecommendations...)
	if rawScore > elevatedThreshold {
		out = append(out, elevatedRecommendations...)
	}
	if rawScore > urgentThreshold {
		out = append(out, urgentRecommendations...)
	}
	return out
}

// LevelFor maps a percentage onto the gauge colours: green up to 30, amber up to 60.
func LevelFor(pct int) Level {
	switch {
	case pct <= 30:
		return LevelLow
	case pct <= 60:
		return LevelModerate
	default:
		return LevelHigh
	}
}
