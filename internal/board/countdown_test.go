package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown(t *testing.T) {
	launch := time.Date(2024, 9, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		before  time.Duration
		text    string
		urgency Urgency
	}{
		{"weeks out", 26*24*time.Hour + 21*time.Hour, "26 days, 21h", UrgencyNormal},
		{"one week", 7*24*time.Hour + 3*time.Hour, "7 days, 3h", UrgencyWarning},
		{"two days", 2*24*time.Hour + 5*time.Minute, "2 days, 0h", UrgencyWarning},
		{"one day", 24*time.Hour + 2*time.Hour + 30*time.Minute, "1 day, 2h 30m", UrgencyCritical},
		{"hours", 5*time.Hour + 4*time.Minute + 3*time.Second, "5h 4m 3s", UrgencyCritical},
		{"minutes", 4*time.Minute + 3*time.Second, "4m 3s", UrgencyCritical},
		{"seconds", 9 * time.Second, "9s", UrgencyCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Countdown(launch.Add(-tt.before), launch)
			assert.Equal(t, tt.text, view.Text)
			assert.Equal(t, tt.urgency, view.Urgency)
			assert.False(t, view.Launched())
		})
	}
}

func TestCountdown_Launched(t *testing.T) {
	launch := time.Date(2024, 9, 10, 9, 0, 0, 0, time.UTC)

	for _, now := range []time.Time{launch, launch.Add(time.Hour)} {
		view := Countdown(now, launch)
		assert.True(t, view.Launched())
		assert.Equal(t, LaunchedText, view.Text)
	}
}

func TestCountdown_SimulatedToday(t *testing.T) {
	// The board's demo clock: noon on August 14 against a 9 AM September 10 launch.
	now := time.Date(2024, 8, 14, 12, 0, 0, 0, time.UTC)
	launch := time.Date(2024, 9, 10, 9, 0, 0, 0, time.UTC)

	view := Countdown(now, launch)
	assert.Equal(t, 26, view.Days)
	assert.Equal(t, "26 days, 21h", view.Text)
}
