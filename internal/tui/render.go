package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/baiirun/launchboard/internal/board"
	"github.com/baiirun/launchboard/internal/model"
)

// Card icons
const (
	iconOpen = "○"
	iconDone = "●"
)

// Layout constants
const (
	columnGap      = 1
	minColumnWidth = 18
	chartWidth     = 30
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	columnColors = map[model.Status]lipgloss.Color{
		model.StatusBacklog:   lipgloss.Color("252"),
		model.StatusWeek1:     lipgloss.Color("42"),
		model.StatusWeek2:     lipgloss.Color("77"),
		model.StatusWeek3:     lipgloss.Color("114"),
		model.StatusWeek4:     lipgloss.Color("151"),
		model.StatusCompleted: lipgloss.Color("39"),
	}

	priorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityLow:      lipgloss.Color("245"),
		model.PriorityMedium:   lipgloss.Color("39"),
		model.PriorityHigh:     lipgloss.Color("214"),
		model.PriorityCritical: lipgloss.Color("196"),
	}

	urgencyColors = map[board.Urgency]lipgloss.Color{
		board.UrgencyNormal:   lipgloss.Color("42"),
		board.UrgencyWarning:  lipgloss.Color("214"),
		board.UrgencyCritical: lipgloss.Color("196"),
		board.UrgencyLaunched: lipgloss.Color("205"),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147"))
)

func checkIcon(done bool) string {
	if done {
		return iconDone
	}
	return iconOpen
}

// BoardOptions controls RenderBoard.
type BoardOptions struct {
	// Width is the terminal width; zero means 6 minimum-width columns
	Width int
	// Selected is the id of the highlighted card
	Selected string
	// Now marks overdue cards; zero disables the check
	Now time.Time
}

// RenderBoard draws every column side by side, cards sorted by order.
func RenderBoard(cache *board.Cache, opts BoardOptions) string {
	width := columnWidth(opts.Width)
	columns := make([]string, 0, len(model.Statuses))
	for i, status := range model.Statuses {
		col := renderColumn(status, cache.Column(status), width, opts)
		if i > 0 {
			col = lipgloss.NewStyle().MarginLeft(columnGap).Render(col)
		}
		columns = append(columns, col)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func columnWidth(total int) int {
	n := len(model.Statuses)
	w := (total - columnGap*(n-1)) / n
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

func renderColumn(status model.Status, tasks []model.Task, width int, opts BoardOptions) string {
	color := columnColors[status]
	heading := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))

	var b strings.Builder
	b.WriteString(padToWidth(heading, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("─", width)))
	for _, task := range tasks {
		b.WriteString("\n")
		b.WriteString(renderCard(task, width, task.ID != "" && task.ID == opts.Selected, opts.Now))
	}
	if len(tasks) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("(empty)"))
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// renderCard draws one task: checkbox and title, priority and assignee,
// then due date and tags when set.
func renderCard(task model.Task, width int, selected bool, now time.Time) string {
	title := truncate(checkIcon(task.Completed)+" "+task.DisplayTitle(), width)

	priority := task.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	meta := lipgloss.NewStyle().Foreground(priorityColors[priority]).Render(string(priority))
	if task.Assignee != "" {
		meta += " " + dimStyle.Render("@"+truncate(task.Assignee, width-len(priority)-2))
	}

	lines := []string{title, "  " + meta}

	if task.DueDate != nil && !task.DueDate.IsZero() {
		due := "due " + task.DueDate.Time().Format("Jan 2")
		if !now.IsZero() && !task.Completed && task.DueDate.Time().Before(now) {
			due = errorStyle.Render(due + " !")
		}
		lines = append(lines, "  "+due)
	}
	if len(task.Tags) > 0 {
		tags := make([]string, len(task.Tags))
		for i, tag := range task.Tags {
			tags[i] = "#" + tag
		}
		lines = append(lines, "  "+tagStyle.Render(truncate(strings.Join(tags, " "), width-2)))
	}

	card := strings.Join(lines, "\n")
	if selected {
		return selectedStyle.Width(width).Render(card)
	}
	if task.Completed {
		return dimStyle.Width(width).Render(card)
	}
	return lipgloss.NewStyle().Width(width).Render(card)
}

// RenderStats draws the totals, a progress bar, and a per-column bar chart.
func RenderStats(stats board.Stats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Launch stats"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total: %d   Completed: %d   Pending: %d\n", stats.Total, stats.Completed, stats.Pending)
	fmt.Fprintf(&b, "Progress %s %d%%\n\n", progressBar(stats.Progress, chartWidth), stats.Progress)

	peak := 0
	for _, n := range stats.Counts {
		peak = max(peak, n)
	}
	for _, status := range model.Statuses {
		n := stats.Counts[status]
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", n*chartWidth/peak)
		}
		label := fmt.Sprintf("%-10s", status.Label())
		fmt.Fprintf(&b, "%s %s %d\n", label, lipgloss.NewStyle().Foreground(columnColors[status]).Render(bar), n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func progressBar(percent, width int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * width / 100
	color := lipgloss.Color("42")
	if percent >= 50 && percent < 75 {
		color = lipgloss.Color("39")
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// RenderCountdown draws the time left until launch, colored by urgency.
func RenderCountdown(view board.CountdownView) string {
	text := view.Text
	if !view.Launched() {
		text = "Launch in " + text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(urgencyColors[view.Urgency]).Render(text)
}

// RenderHeader draws the title line: countdown, progress, and which
// backend is in use.
func RenderHeader(view board.CountdownView, stats board.Stats, mode board.Mode) string {
	backend := dimStyle.Render("[" + mode.String() + "]")
	if mode == board.ModeLocal {
		backend = errorStyle.Render("[local storage]")
	}
	return fmt.Sprintf("%s  %s  %s %d%%  %s",
		titleStyle.Render("Launch board"),
		RenderCountdown(view),
		progressBar(stats.Progress, 10),
		stats.Progress,
		backend,
	)
}

// truncate shortens s to width visible cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// padToWidth pads a string to the specified width with spaces.
// Accounts for ANSI escape codes when calculating visible width.
func padToWidth(s string, width int) string {
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
