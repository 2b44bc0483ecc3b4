package risk

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess_MaxRiskClamped(t *testing.T) {
	got := Assess(HealthProfile{
		Age:           "70",
		BloodPressure: "185",
		Glucose:       "210",
		BMI:           "32",
		Smoking:       SmokingCurrent,
		HeartDisease:  "yes",
	})

	assert.Equal(t, 155, got.RawScore)
	assert.Equal(t, 100, got.RiskPercentage)
	assert.Equal(t, LevelHigh, got.Level)
	assert.Len(t, got.Recommendations, 13)
	assert.Contains(t, got.Recommendations, "Consider consulting a cardiologist")
	assert.Contains(t, got.Recommendations, "Urgent medical consultation recommended")
}

func TestAssess_HealthyProfile(t *testing.T) {
	got := Assess(HealthProfile{
		Age:           "30",
		BloodPressure: "110",
		Glucose:       "85",
		BMI:           "22",
		Smoking:       SmokingNever,
		HeartDisease:  "no",
	})

	assert.Equal(t, 0, got.RiskPercentage)
	assert.Equal(t, LevelLow, got.Level)
	assert.Equal(t, baseRecommendations, got.Recommendations)
}

func TestAssess_NonNumericFieldsScoreZero(t *testing.T) {
	got := Assess(HealthProfile{
		Age:           "old",
		BloodPressure: "",
		Glucose:       "n/a",
		BMI:           "?",
		Smoking:       SmokingFormer,
	})

	assert.Equal(t, 15, got.RiskPercentage)
	assert.Len(t, got.Recommendations, 5)
}

func TestAssess_LeadingNumberParsing(t *testing.T) {
	got := Assess(HealthProfile{Age: " 66 years", BloodPressure: "141mmHg", BMI: "25.5kg"})
	assert.Equal(t, 30+20+10, got.RawScore)
}

func TestAssess_EscalationUsesRawScore(t *testing.T) {
	// 30 + 30 = 60: elevated tier only.
	got := Assess(HealthProfile{Age: "70", HeartDisease: "yes"})
	assert.Len(t, got.Recommendations, 9)

	// 71 crosses both tiers.
	got = Assess(HealthProfile{Age: "70", HeartDisease: "yes", Glucose: "101", BloodPressure: "121"})
	assert.Equal(t, 75, got.RawScore)
	assert.Len(t, got.Recommendations, 13)
}

func TestAssess_PercentageAlwaysInRange(t *testing.T) {
	values := []Field{"", "abc", "-40", "0", "46", "56", "66", "101", "121", "141", "181", "201", "26", "31", "1e9"}
	smoking := []string{"", SmokingNever, SmokingFormer, SmokingCurrent}
	heart := []string{"", "no", "yes"}

	for _, v := range values {
		for _, s := range smoking {
			for _, h := range heart {
				got := Assess(HealthProfile{Age: v, BloodPressure: v, Glucose: v, BMI: v, Smoking: s, HeartDisease: h})
				require.GreaterOrEqual(t, got.RiskPercentage, 0)
				require.LessOrEqual(t, got.RiskPercentage, 100)
			}
		}
	}
}

func TestAssess_MonotonicInNumericFields(t *testing.T) {
	steps := []Field{"0", "40", "46", "50", "56", "70", "101", "121", "141", "181", "201", "300"}

	fields := map[string]func(Field) HealthProfile{
		"age":     func(v Field) HealthProfile { return HealthProfile{Age: v} },
		"bp":      func(v Field) HealthProfile { return HealthProfile{BloodPressure: v} },
		"glucose": func(v Field) HealthProfile { return HealthProfile{Glucose: v} },
		"bmi":     func(v Field) HealthProfile { return HealthProfile{BMI: v} },
	}

	for name, build := range fields {
		t.Run(name, func(t *testing.T) {
			prev := -1
			for _, v := range steps {
				score := Assess(build(v)).RawScore
				assert.GreaterOrEqual(t, score, prev, "value %s", v)
				prev = score
			}
		})
	}
}

func TestField_Infinity(t *testing.T) {
	for _, v := range []Field{"Infinity", "+Infinity", "1e400", "Infinitykg"} {
		f, ok := v.Float()
		require.True(t, ok, v)
		assert.True(t, math.IsInf(f, 1), v)
		assert.Equal(t, 20, Assess(HealthProfile{BMI: v}).RawScore, v)
	}

	f, ok := Field("-Infinity").Float()
	require.True(t, ok)
	assert.True(t, math.IsInf(f, -1))
	assert.Equal(t, 0, Assess(HealthProfile{BMI: "-Infinity"}).RawScore)

	// Integer fields never read "Infinity"; "1e400" stops at the exponent.
	_, ok = Field("Infinity").Int()
	assert.False(t, ok)
	age, ok := Field("1e400").Int()
	require.True(t, ok)
	assert.Equal(t, 1.0, age)
}

func TestAssess_CategoricalFieldsIgnoreCase(t *testing.T) {
	got := Assess(HealthProfile{Smoking: "Current", HeartDisease: " Yes "})
	assert.Equal(t, 55, got.RawScore)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelLow, LevelFor(30))
	assert.Equal(t, LevelModerate, LevelFor(31))
	assert.Equal(t, LevelModerate, LevelFor(60))
	assert.Equal(t, LevelHigh, LevelFor(61))
}

func TestHealthProfile_AcceptsNumbersAndStrings(t *testing.T) {
	var p HealthProfile
	err := json.Unmarshal([]byte(`{"age":70,"bloodPressure":"185","glucose":null,"bmi":32.5,"smoking":"current","heartDisease":"yes"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, Field("70"), p.Age)
	assert.Equal(t, Field("185"), p.BloodPressure)
	assert.Equal(t, Field(""), p.Glucose)
	bmi, ok := p.BMI.Float()
	assert.True(t, ok)
	assert.InDelta(t, 32.5, bmi, 1e-9)
}
