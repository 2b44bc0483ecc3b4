package chat

import (
	"strings"
	"unicode"
)

type topic struct {
	keywords []string
	reply    string
}

var localTopics = []topic{
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! How can I help with your health questions today?",
	},
	{
		keywords: []string{"headache", "head pain"},
		reply:    "Headaches can be caused by various factors including stress, dehydration, lack of sleep, or eye strain. For occasional headaches, rest, hydration, and over-the-counter pain relievers may help. If headaches are severe, persistent, or accompanied by other symptoms, please consult a healthcare professional.",
	},
	{
		keywords: []string{"cold", "flu", "fever"},
		reply:    "Common cold and flu symptoms include fever, cough, sore throat, body aches, and fatigue. Rest, hydration, and over-the-counter medications can help manage symptoms. If symptoms are severe or persist for more than a week, please consult a healthcare professional.",
	},
	{
		keywords: []string{"diet", "nutrition", "eat", "eating"},
		reply:    "A balanced diet rich in fruits, vegetables, whole grains, lean proteins, and healthy fats is essential for good health. Try to limit processed foods, added sugars, and excessive salt. Remember that individual nutritional needs vary, so consulting with a nutritionist can provide personalized guidance.",
	},
	{
		keywords: []string{"exercise", "workout", "fitness"},
		reply:    "Regular physical activity is important for maintaining good health. Aim for at least 150 minutes of moderate-intensity exercise per week, along with muscle-strengthening activities twice a week. Always start gradually and consult with a healthcare provider before beginning a new exercise program, especially if you have existing health conditions.",
	},
	{
		keywords: []string{"stress", "anxiety", "depression"},
		reply:    "Mental health is as important as physical health. Stress management techniques include regular exercise, adequate sleep, mindfulness practices, and maintaining social connections. If you're experiencing persistent feelings of anxiety or depression that interfere with daily life, please reach out to a mental health professional for support.",
	},
	{
		keywords: []string{"sleep", "insomnia"},
		reply:    "Quality sleep is essential for overall health. Adults typically need 7-9 hours of sleep per night. To improve sleep, maintain a regular sleep schedule, create a restful environment, limit screen time before bed, and avoid caffeine and large meals close to bedtime. If sleep problems persist, consider consulting a healthcare provider.",
	},
}

const (
	echoLength       = 30
	minPrefixKeyword = 5
	defaultReplyEnd  = "... While I aim to provide helpful health information, I recommend consulting with a qualified healthcare professional for personalized advice tailored to your specific situation."

	// ApologyReply is shown when answering failed outright.
	ApologyReply = "I apologize, but I'm having trouble processing your request right now. Please try again later."
)

// LocalResponder answers from canned text by keyword. It never fails.
type LocalResponder struct{}

func (LocalResponder) Name() string { return "fallback" }

// Respond matches keywords at the start of a word, so "stressed" hits "stress".
// Keywords shorter than minPrefixKeyword must match a whole word, so "this" does
// not hit "hi". Topics are checked in order and the first hit wins.
func (LocalResponder) Respond(message string) string {
	lower := strings.ToLower(message)
	padded := " " + strings.Join(strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ") + " "

	for _, t := range localTopics {
		for _, kw := range t.keywords {
			needle := " " + kw
			if len(kw) < minPrefixKeyword {
				needle += " "
			}
			if strings.Contains(padded, needle) {
				return t.reply
			}
		}
	}

	echo := []rune(message)
	if len(echo) > echoLength {
		echo = echo[:echoLength]
	}
	return "I understand you're asking about " + string(echo) + defaultReplyEnd
}
