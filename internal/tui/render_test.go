package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/baiirun/launchboard/internal/board"
	"github.com/baiirun/launchboard/internal/model"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRenderBoard(t *testing.T) {
	due := model.MillisOf(time.Date(2024, time.August, 20, 0, 0, 0, 0, time.UTC))
	cache := board.NewCache()
	cache.Replace([]model.Task{
		{ID: "a", Title: "Second", Status: model.StatusWeek1, Order: 2, Priority: model.PriorityHigh, Assignee: "Dana"},
		{ID: "b", Title: "First", Status: model.StatusWeek1, Order: 1, Tags: []string{"email"}, DueDate: &due},
		{ID: "c", Title: "", Status: model.StatusBacklog},
		{ID: "d", Title: "Shipped", Status: model.StatusCompleted, Completed: true},
	})

	out := RenderBoard(cache, BoardOptions{Now: time.Date(2024, time.August, 25, 0, 0, 0, 0, time.UTC)})

	assert.Contains(t, out, "Backlog (1)")
	assert.Contains(t, out, "Week 1 (2)")
	assert.Contains(t, out, "Week 4 (0)")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "○ Untitled Task")
	assert.Contains(t, out, "● Shipped")
	assert.Contains(t, out, "@Dana")
	assert.Contains(t, out, "#email")
	assert.Contains(t, out, "due Aug 20 !", "overdue cards are flagged")
	assert.Less(t, strings.Index(out, "First"), strings.Index(out, "Second"), "cards sort by order")
}

func TestRenderBoard_Empty(t *testing.T) {
	out := RenderBoard(board.NewCache(), BoardOptions{Width: 200})
	for _, status := range model.Statuses {
		assert.Contains(t, out, status.Label()+" (0)")
	}
}

func TestRenderStats(t *testing.T) {
	stats := board.Stats{
		Total:     3,
		Completed: 1,
		Pending:   2,
		Progress:  33,
		Counts: map[model.Status]int{
			model.StatusBacklog: 2, model.StatusWeek1: 1,
			model.StatusWeek2: 0, model.StatusWeek3: 0, model.StatusWeek4: 0, model.StatusCompleted: 0,
		},
	}

	out := RenderStats(stats)

	assert.Contains(t, out, "Total: 3   Completed: 1   Pending: 2")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "Backlog    "+strings.Repeat("█", chartWidth)+" 2")
	assert.Contains(t, out, "Week 1     "+strings.Repeat("█", chartWidth/2)+" 1")
	assert.Contains(t, out, "Completed   0")
}

func TestRenderCountdown(t *testing.T) {
	assert.Equal(t, "Launch in 3 days, 2h", RenderCountdown(board.CountdownView{Text: "3 days, 2h", Days: 3, Urgency: board.UrgencyWarning}))
	assert.Equal(t, board.LaunchedText, RenderCountdown(board.CountdownView{Text: board.LaunchedText, Urgency: board.UrgencyLaunched}))
}

func TestRenderHeader(t *testing.T) {
	view := board.CountdownView{Text: "5s", Urgency: board.UrgencyCritical}
	stats := board.Stats{Progress: 50}

	assert.Contains(t, RenderHeader(view, stats, board.ModeRemote), "[remote]")
	assert.Contains(t, RenderHeader(view, stats, board.ModeLocal), "[local storage]")
	assert.Contains(t, RenderHeader(view, stats, board.ModeLocal), "50%")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "much to…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.width), tt.in)
	}
}
