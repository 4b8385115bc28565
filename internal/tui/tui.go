// Package tui renders the launch board and runs the interactive board
// using Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/baiirun/launchboard/internal/board"
	"github.com/baiirun/launchboard/internal/model"
)

// ViewMode represents the current view state.
type ViewMode int

const (
	ViewBoard ViewMode = iota
	ViewStats
)

// InputMode represents what kind of text input is active.
type InputMode int

const (
	InputNone    InputMode = iota
	InputCreate            // Entering new task title
	InputConfirm           // Confirming a delete
)

// Options configures the interactive board.
type Options struct {
	Launch time.Time
	Clock  func() time.Time
}

// Model is the Bubble Tea model for the interactive board. Board
// operations run inside commands; the view draws from its own snapshot
// of the task list, and only one operation is in flight at a time.
type Model struct {
	ctx    context.Context
	board  *board.Board
	launch time.Time
	clock  func() time.Time

	snapshot *board.Cache
	mode     board.Mode
	now      time.Time

	column   int // index into model.Statuses
	row      int
	viewMode ViewMode
	busy     bool

	inputMode InputMode
	inputText string

	width   int
	height  int
	err     error
	message string
}

// New creates the interactive board model over b.
func New(ctx context.Context, b *board.Board, opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return Model{
		ctx:      ctx,
		board:    b,
		launch:   opts.Launch,
		clock:    clock,
		snapshot: board.NewCache(),
		mode:     b.Mode(),
		now:      clock(),
	}
}

// Messages
type loadedMsg struct {
	tasks   []model.Task
	mode    board.Mode
	message string
	err     error
}

type tickMsg time.Time

// run performs op against the board and reports the reloaded list.
func (m Model) run(message string, op func(context.Context) error) tea.Cmd {
	b := m.board
	ctx := m.ctx
	return func() tea.Msg {
		err := op(ctx)
		msg := loadedMsg{tasks: b.Cache().Tasks(), mode: b.Mode(), err: err}
		if err == nil {
			msg.message = message
		}
		return msg
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run("", m.board.Start), m.tick())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Clear message on any key
		m.message = ""
		m.err = nil
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = m.clock()
		return m, m.tick()

	case loadedMsg:
		m.busy = false
		m.snapshot.Replace(msg.tasks)
		m.mode = msg.mode
		m.err = msg.err
		m.message = msg.message
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.viewMode == ViewBoard {
			m.viewMode = ViewStats
		} else {
			m.viewMode = ViewBoard
		}
		return m, nil
	case "left", "h":
		if m.column > 0 {
			m.column--
		}
		m.clampCursor()
		return m, nil
	case "right", "l":
		if m.column < len(model.Statuses)-1 {
			m.column++
		}
		m.clampCursor()
		return m, nil
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return m, nil
	case "down", "j":
		m.row++
		m.clampCursor()
		return m, nil
	}

	if m.busy {
		m.message = "Working..."
		return m, nil
	}

	switch msg.String() {
	case "r":
		return m.start(m.run("Reloaded", m.board.Load))
	case "H", "shift+left":
		return m.moveAcross(-1)
	case "L", "shift+right":
		return m.moveAcross(1)
	case "K", "shift+up":
		return m.moveWithin(-1)
	case "J", "shift+down":
		return m.moveWithin(1)
	case " ", "x":
		return m.toggleCompleted()
	case "n":
		m.inputMode = InputCreate
		m.inputText = ""
		return m, nil
	case "d":
		if _, ok := m.selected(); ok {
			m.inputMode = InputConfirm
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode == InputConfirm {
		m.inputMode = InputNone
		if msg.String() != "y" {
			m.message = "Delete canceled"
			return m, nil
		}
		return m.deleteSelected()
	}

	switch msg.String() {
	case "esc":
		m.inputMode = InputNone
		m.inputText = ""
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.inputText)
		m.inputMode = InputNone
		m.inputText = ""
		if title == "" {
			return m, nil
		}
		form := model.Form{Title: title, Status: string(m.currentColumn())}
		return m.start(m.run(fmt.Sprintf("Created %q", title), func(ctx context.Context) error {
			_, err := m.board.Submit(ctx, "", form)
			return err
		}))

	case "backspace":
		if len(m.inputText) > 0 {
			runes := []rune(m.inputText)
			m.inputText = string(runes[:len(runes)-1])
		}

	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.inputText += string(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) start(cmd tea.Cmd) (Model, tea.Cmd) {
	m.busy = true
	return m, cmd
}

// moveAcross drops the selected card at the end of the neighboring column.
func (m Model) moveAcross(step int) (Model, tea.Cmd) {
	task, ok := m.selected()
	target := m.column + step
	if !ok || target < 0 || target >= len(model.Statuses) {
		return m, nil
	}
	status := model.Statuses[target]
	ev := board.DragEvent{
		ItemID:       task.ID,
		TargetColumn: status,
		NewIndex:     len(m.snapshot.Column(status)),
	}
	m.column, m.row = target, ev.NewIndex
	return m.start(m.run("Moved to "+status.Label(), func(ctx context.Context) error {
		return m.board.Move(ctx, ev)
	}))
}

// moveWithin drops the selected card one slot up or down its column.
func (m Model) moveWithin(step int) (Model, tea.Cmd) {
	task, ok := m.selected()
	index := m.row + step
	if !ok || index < 0 || index >= len(m.snapshot.Column(task.Status)) {
		return m, nil
	}
	ev := board.DragEvent{ItemID: task.ID, TargetColumn: task.Status, NewIndex: index}
	m.row = index
	return m.start(m.run("", func(ctx context.Context) error {
		return m.board.Move(ctx, ev)
	}))
}

func (m Model) toggleCompleted() (Model, tea.Cmd) {
	task, ok := m.selected()
	if !ok {
		return m, nil
	}
	done := !task.Completed
	message := "Unchecked " + task.DisplayTitle()
	if done {
		message = "Checked " + task.DisplayTitle()
	}
	return m.start(m.run(message, func(ctx context.Context) error {
		return m.board.SetCompleted(ctx, task.ID, done)
	}))
}

func (m Model) deleteSelected() (Model, tea.Cmd) {
	task, ok := m.selected()
	if !ok {
		return m, nil
	}
	return m.start(m.run("Deleted "+task.DisplayTitle(), func(ctx context.Context) error {
		return m.board.Delete(ctx, task.ID)
	}))
}

func (m Model) currentColumn() model.Status {
	return model.Statuses[m.column]
}

func (m Model) selected() (model.Task, bool) {
	column := m.snapshot.Column(m.currentColumn())
	if m.row < 0 || m.row >= len(column) {
		return model.Task{}, false
	}
	return column[m.row], true
}

func (m *Model) clampCursor() {
	n := len(m.snapshot.Column(m.currentColumn()))
	if m.row >= n {
		m.row = max(0, n-1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	stats := m.snapshot.Stats()
	b.WriteString(RenderHeader(board.Countdown(m.now, m.launch), stats, m.mode))
	b.WriteString("\n\n")

	switch m.viewMode {
	case ViewBoard:
		selected := ""
		if task, ok := m.selected(); ok {
			selected = task.ID
		}
		b.WriteString(RenderBoard(m.snapshot, BoardOptions{Width: m.width, Selected: selected, Now: m.now}))
	case ViewStats:
		b.WriteString(RenderStats(stats))
	}
	b.WriteString("\n\n")

	switch m.inputMode {
	case InputCreate:
		b.WriteString(inputStyle.Render(fmt.Sprintf("New task in %s: %s█", m.currentColumn().Label(), m.inputText)))
	case InputConfirm:
		if task, ok := m.selected(); ok {
			b.WriteString(inputStyle.Render(fmt.Sprintf("Delete %q? (y/n)", task.DisplayTitle())))
		}
	default:
		if m.err != nil {
			b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		} else if m.message != "" {
			b.WriteString(messageStyle.Render(m.message))
		} else {
			b.WriteString(helpStyle.Render("h/l/j/k:nav  H/L:move column  J/K:reorder  space:check  n:new  d:delete  r:refresh  tab:stats  q:quit"))
		}
	}

	return b.String()
}

// Run starts the interactive board.
func Run(ctx context.Context, b *board.Board, opts Options) error {
	p := tea.NewProgram(New(ctx, b, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
