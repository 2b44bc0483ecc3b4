package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		stored      string
		prefersDark bool
		want        Mode
	}{
		{"", false, Light},
		{"", true, Dark},
		{"dark", false, Dark},
		{"light", true, Light},
		{" DARK ", false, Dark},
		{"sepia", true, Dark},
		{"sepia", false, Light},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.stored, tt.prefersDark), "stored=%q prefersDark=%v", tt.stored, tt.prefersDark)
	}
}

func TestFor(t *testing.T) {
	assert.Equal(t, "#3b82f6", For(Light).Primary)
	assert.Equal(t, "#121212", For(Dark).Background)
	assert.Equal(t, For(Light), For(Mode("unknown")))
	assert.NotEqual(t, For(Light).Gradient, For(Dark).Gradient)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Dark, Toggle(Light))
	assert.Equal(t, Light, Toggle(Dark))
}
