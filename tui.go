package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWindowHeight = 24
	defaultWindowWidth  = 80
	minVisibleHeight    = 3
	maxInputWidth       = 70
	minInputWidth       = 30
	cursorCharacter     = ">"

	// Store writes made by this session echo back through the watcher;
	// changes seen within this window after a save are our own.
	selfSaveWindow = 500 * time.Millisecond
)

// screen identifies which view is active. It doubles as the display
// label for the tab bar.
type screen int

const (
	screenHome screen = iota
	screenTasks
)

var screens = []screen{screenHome, screenTasks}

func (s screen) label() string {
	switch s {
	case screenHome:
		return "Home"
	case screenTasks:
		return "Tasks"
	default:
		return "?"
	}
}

// model is the BubbleTea model. It is the single consumer of the event
// stream and the only caller of the Store.
type model struct {
	store   *Store
	source  *EventSource
	cfgPath string

	active screen
	tasks  []Task
	sel    Selection

	adding   bool
	addInput textinput.Model

	viewport     viewport.Model
	windowHeight int
	windowWidth  int

	selfSavedAt time.Time

	quitting bool
	err      error
}

func newModel(store *Store, source *EventSource, cfgPath string, tasks []Task) model {
	m := model{
		store:        store,
		source:       source,
		cfgPath:      cfgPath,
		active:       screenHome,
		tasks:        tasks,
		windowHeight: defaultWindowHeight,
		windowWidth:  defaultWindowWidth,
		viewport:     viewport.New(defaultWindowWidth, defaultWindowHeight),
	}
	m.sel.Resize(len(tasks))
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize()}
	if m.source != nil {
		cmds = append(cmds, m.source.NextCmd())
	}
	return tea.Batch(cmds...)
}

// nextEvent re-arms the blocking receive on the event channel. Exactly
// one of these is outstanding at a time.
func (m *model) nextEvent() tea.Cmd {
	if m.source == nil {
		return nil
	}
	return m.source.NextCmd()
}

// fail records a fatal error and terminates the loop. BubbleTea
// restores the terminal before the program returns.
func (m *model) fail(err error) tea.Cmd {
	logger.Error("fatal error, shutting down", "error", err)
	m.err = err
	m.quitting = true
	return tea.Quit
}

// reload re-reads the store and re-validates the selection. Returns a
// non-nil command only on a fatal store error.
func (m *model) reload() tea.Cmd {
	tasks, err := m.store.Load()
	if err != nil {
		return m.fail(err)
	}
	m.tasks = tasks
	m.sel.Resize(len(tasks))
	return nil
}

func (m *model) markSelfSaved() {
	m.selfSavedAt = now()
}

func (m *model) startAdd() {
	ti := textinput.New()
	ti.Placeholder = "New task name..."
	ti.Focus()
	ti.CharLimit = 200
	m.addInput = ti
	m.adding = true
}

func (m *model) commitAdd() tea.Cmd {
	defer func() { m.adding = false }()

	name := strings.TrimSpace(m.addInput.Value())
	if name == "" {
		return nil
	}

	tasks, err := m.store.Add(name)
	if err != nil {
		return m.fail(err)
	}

	m.markSelfSaved()
	m.tasks = tasks
	m.sel.Resize(len(tasks))
	logger.Info("task added", "name", name, "count", len(tasks))
	return nil
}

func (m *model) advanceSelected() tea.Cmd {
	idx, ok := m.sel.Index()
	if !ok {
		return nil
	}

	tasks, err := m.store.Advance(idx)
	if err != nil {
		return m.fail(err)
	}

	m.markSelfSaved()
	m.tasks = tasks
	m.sel.Resize(len(tasks))

	// The store reloads before mutating, so an external writer may have
	// shrunk the list out from under the selection.
	if idx < len(tasks) {
		logger.Info("task advanced", "id", tasks[idx].ID, "state", tasks[idx].State.String())
	}
	return nil
}

func (m *model) deleteSelected() tea.Cmd {
	idx, ok := m.sel.Index()
	if !ok {
		return nil
	}

	tasks, err := m.store.Remove(idx)
	if err != nil {
		return m.fail(err)
	}

	m.markSelfSaved()
	m.tasks = tasks
	m.sel.Removed(idx, len(tasks))
	logger.Info("task deleted", "index", idx, "count", len(tasks))
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		m.windowWidth = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height

	case TickMsg:
		// The render after this Update is the periodic refresh.
		return m, m.nextEvent()

	case StoreChangedMsg:
		if time.Since(m.selfSavedAt) < selfSaveWindow {
			return m, m.nextEvent()
		}
		if cmd := m.reload(); cmd != nil {
			return m, cmd
		}
		return m, m.nextEvent()

	case SourceClosedMsg:
		if m.quitting {
			return m, tea.Quit
		}
		return m, m.fail(ErrEventSource)

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "esc", "ctrl+[":
				m.adding = false
				return m, nil

			case "enter":
				return m, m.commitAdd()

			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit

			default:
				var cmd tea.Cmd
				m.addInput, cmd = m.addInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "h":
			m.active = screenHome

		case "t":
			m.active = screenTasks

		case "a":
			m.startAdd()

		case "p":
			return m, m.advanceSelected()

		case "d":
			return m, m.deleteSelected()

		case "down", "j":
			m.sel.Down()

		case "up", "k":
			m.sel.Up()
		}
	}

	return m, nil
}

func (m *model) inputWidth() int {
	return max(minInputWidth, min(maxInputWidth, m.windowWidth-10))
}

func (m model) renderTabBar() string {
	var tabs []string
	sep := tabSeparatorStyle.Render(" │ ")

	for _, s := range screens {
		label := s.label()
		if s == screenTasks {
			label = fmt.Sprintf("%s (%d)", label, len(m.tasks))
		}

		if s == m.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	return strings.Join(tabs, sep)
}

func (m model) renderFooter() string {
	items := [][2]string{
		{"h/t", "screens"},
		{"a", "add"},
		{"p", "progress"},
		{"d", "delete"},
		{"↑/↓", "move"},
		{"q", "quit"},
	}

	var parts []string
	for _, item := range items {
		parts = append(parts, helpBarKeyStyle.Render(item[0])+helpBarDescStyle.Render(" "+item[1]))
	}
	left := strings.Join(parts, helpBarDescStyle.Render(" • "))

	right := helpBarInfoStyle.Render(fmt.Sprintf("%d tasks", len(m.tasks)))

	spacing := m.windowWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		return helpBarStyle.Width(m.windowWidth).Render(left)
	}

	return helpBarStyle.Width(m.windowWidth).Render(left + strings.Repeat(" ", spacing) + right)
}

// buildList renders the scrollable task name list, keeping the cursor
// visible.
func (m model) buildList(width, height int) string {
	if height < minVisibleHeight {
		height = minVisibleHeight
	}

	var lines []string
	cursorIdx := 0

	for i, task := range m.tasks {
		cursor := " "
		selected := false
		if idx, ok := m.sel.Index(); ok && idx == i {
			cursor = cursorStyle.Render(cursorCharacter)
			cursorIdx = i
			selected = true
		}

		name := task.Name
		if task.State == StateDone {
			name = doneStyle.Render(name)
		}
		if selected {
			name = selectedStyle.Render(task.Name)
		}

		lines = append(lines, fmt.Sprintf("%s %s", cursor, name))
	}

	vp := m.viewport
	vp.Width = width
	vp.Height = height
	vp.SetContent(strings.Join(lines, "\n"))

	offset := 0
	if cursorIdx >= height {
		offset = cursorIdx - height + 1
	}
	vp.YOffset = offset

	return lipgloss.NewStyle().Width(width).Height(height).Render(vp.View())
}

// buildDetail renders the selected task's fields. Timestamp rows only
// appear once the corresponding state has been reached.
func (m model) buildDetail(width int) string {
	idx, ok := m.sel.Index()
	if !ok {
		return detailBoxStyle.Width(width).Render(countStyle.Render("No task selected."))
	}

	task := m.tasks[idx]

	row := func(label, value string) string {
		return detailLabelStyle.Render(fmt.Sprintf("%-9s", label)) + value
	}

	rows := []string{
		row("ID", fmt.Sprintf("%d", task.ID)),
		row("Name", task.Name),
		row("State", stateStyle(task.State).Render(task.State.String())),
		row("Created", formatTime(task.CreatedAt)),
	}

	if task.StartedAt != nil {
		rows = append(rows, row("Started", formatTime(*task.StartedAt)))
	}
	if task.FinishedAt != nil {
		rows = append(rows, row("Finished", formatTime(*task.FinishedAt)))
	}

	return detailBoxStyle.Width(width).Render(strings.Join(rows, "\n"))
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func (m model) View() string {
	if m.err != nil {
		return dangerStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	if m.adding {
		titleLine := confirmStyle.Render("+ Add Task")

		input := m.addInput
		input.Width = m.inputWidth() - 6
		inputLine := input.View()

		addHelp := helpStyle.Render("enter save • esc cancel")
		box := dialogBoxStyle.Render(titleLine + "\n\n" + inputLine + "\n" + addHelp)

		return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center, box)
	}

	windowHeight := m.windowHeight
	if windowHeight <= 0 {
		windowHeight = defaultWindowHeight
	}

	arrow := barColor.Render(" → ")
	titleLine := titleStyle.Render("taskdeck") + arrow + m.renderTabBar()
	headerView := headerBarStyle.Width(m.windowWidth).Render(titleLine)

	contentHeight := windowHeight - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.active {
	case screenTasks:
		if len(m.tasks) == 0 {
			empty := countStyle.Render("No tasks yet. Press 'a' to add one.")
			content = lipgloss.NewStyle().Width(m.windowWidth).Height(contentHeight).Render(empty)
			break
		}

		listWidth := m.windowWidth / 3
		if listWidth < 20 {
			listWidth = 20
		}
		detailWidth := m.windowWidth - listWidth - 2
		if detailWidth < 20 {
			detailWidth = 20
		}

		list := m.buildList(listWidth, contentHeight)
		detail := m.buildDetail(detailWidth)
		content = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
		content = lipgloss.NewStyle().Width(m.windowWidth).Height(contentHeight).Render(content)

	default:
		home := renderHome(m.store.Path(), m.cfgPath)
		content = lipgloss.Place(m.windowWidth, contentHeight, lipgloss.Center, lipgloss.Center, home)
	}

	return lipgloss.JoinVertical(lipgloss.Left, headerView, content, m.renderFooter())
}
