// Package tips holds the rotating health tips.
package tips

import "time"

type Category string

const (
	Nutrition Category = "nutrition"
	Fitness   Category = "fitness"
	Mental    Category = "mental"
	Sleep     Category = "sleep"
	General   Category = "general"
)

// RotateEvery is how long a client shows one tip before advancing.
const RotateEvery = 8 * time.Second

type Tip struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	Source    string   `json:"source,omitempty"`
	SourceURL string   `json:"sourceUrl,omitempty"`
}

var all = []Tip{
	{
		ID:        1,
		Title:     "Stay Hydrated",
		Content:   "Drink at least 8 glasses of water daily. Proper hydration improves energy levels, brain function, and helps maintain healthy skin.",
		Category:  General,
		Source:    "Mayo Clinic",
		SourceURL: "https://www.mayoclinic.org/healthy-lifestyle/nutrition-and-healthy-eating/in-depth/water/art-20044256",
	},
	{
		ID:        2,
		Title:     "Mindful Eating",
		Content:   "Pay attention to what and when you eat. Avoid distractions like TV during meals to prevent overeating and improve digestion.",
		Category:  Nutrition,
		Source:    "Harvard Health",
		SourceURL: "https://www.health.harvard.edu/staying-healthy/mindful-eating",
	},
	{
		ID:        3,
		Title:     "Regular Exercise",
		Content:   "Aim for at least 150 minutes of moderate aerobic activity or 75 minutes of vigorous activity each week, plus muscle-strengthening activities twice weekly.",
		Category:  Fitness,
		Source:    "CDC",
		SourceURL: "https://www.cdc.gov/physicalactivity/basics/adults/index.htm",
	},
	{
		ID:        4,
		Title:     "Prioritize Sleep",
		Content:   "Adults should get 7-9 hours of quality sleep per night. Consistent sleep schedules help regulate your body's internal clock.",
		Category:  Sleep,
		Source:    "Sleep Foundation",
		SourceURL: "https://www.sleepfoundation.org/how-sleep-works/how-much-sleep-do-we-really-need",
	},
	{
		ID:        5,
		Title:     "Manage Stress",
		Content:   "Practice stress-reduction techniques like deep breathing, meditation, or yoga. Chronic stress can lead to various health problems.",
		Category:  Mental,
		Source:    "American Psychological Association",
		SourceURL: "https://www.apa.org/topics/stress/manage-stress",
	},
	{
		ID:        6,
		Title:     "Balanced Diet",
		Content:   "Include a variety of fruits, vegetables, whole grains, lean proteins, and healthy fats in your diet. Limit processed foods and added sugars.",
		Category:  Nutrition,
		Source:    "USDA",
		SourceURL: "https://www.myplate.gov/",
	},
	{
		ID:        7,
		Title:     "Regular Health Check-ups",
		Content:   "Schedule regular preventive screenings and check-ups with your healthcare provider, even when you feel healthy.",
		Category:  General,
		Source:    "CDC",
		SourceURL: "https://www.cdc.gov/prevention/index.html",
	},
}

func All() []Tip { return append([]Tip(nil), all...) }

func Len() int { return len(all) }

// Index maps any integer onto the tip list, wrapping in both directions.
func Index(i int) int {
	n := len(all)
	return ((i % n) + n) % n
}

func At(i int) Tip { return all[Index(i)] }

func Next(i int) int { return Index(i + 1) }

func Prev(i int) int { return Index(i - 1) }
