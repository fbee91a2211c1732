// Package tui is the interactive two pane todo browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todo"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionEdit
)

const (
	paneLists = 0
	paneTodos = 1
)

const ddWindow = 600 * time.Millisecond

const normalStatus = "NORMAL: h/l panes, j/k move, enter open list, o add, i edit, x toggle, c complete, dd delete, :q quit"

// listItem is one row of the left pane.
type listItem struct {
	entry  lists.Entry
	header bool
	active bool
}

func (it listItem) Title() string {
	marker := "  "
	if it.active {
		marker = "> "
	}
	name := duedate.Shorten(it.entry.Date)
	if !it.header {
		name = "  " + name
	}
	return fmt.Sprintf("%s%-14s %3d", marker, name, it.entry.Count)
}
func (it listItem) Description() string { return "" }
func (it listItem) FilterValue() string { return it.entry.Date }

// todoItem is one row of the right pane.
type todoItem struct {
	t     *todo.Todo
	width int
}

func (it todoItem) Title() string {
	check := "[ ]"
	if it.t.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %s - %s", check, it.t.Title, duedate.Shorten(it.t.DueDate()))
	if it.width > 0 {
		line = truncate.StringWithTail(line, uint(it.width), "…")
	}
	return line
}
func (it todoItem) Description() string { return it.t.Description }
func (it todoItem) FilterValue() string { return it.t.Title }

type stateMsg struct {
	st     engine.State
	status string
	gen    int
}
type errMsg struct{ err error }
type watchStartedMsg struct{ events <-chan store.Event }
type watchMsg struct{ ev store.Event }

// Model contains UI state.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	mode   mode
	action action

	focus int

	listList list.Model
	todoList list.Model

	input textinput.Model

	status string
	theme  Theme
	state  engine.State
	events <-chan store.Event

	// gen counts states applied directly from key handlers. A load started
	// under an older gen is stale once it arrives.
	gen int

	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int

	focusDel list.DefaultDelegate
	blurDel  list.DefaultDelegate
}

// New creates a UI model backed by svc.
func New(ctx context.Context, svc *app.Service) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	dFocus := list.NewDefaultDelegate()
	dBlur := list.NewDefaultDelegate()
	dBlur.Styles.SelectedTitle = dBlur.Styles.NormalTitle
	dBlur.Styles.SelectedDesc = dBlur.Styles.NormalDesc
	dFocus.ShowDescription = false
	dBlur.ShowDescription = false
	dFocus.SetSpacing(0)
	dBlur.SetSpacing(0)

	l1 := list.New([]list.Item{}, dFocus, 28, 20)
	l1.SetShowHelp(false)
	l1.SetShowStatusBar(false)
	l1.SetFilteringEnabled(false)

	l2 := list.New([]list.Item{}, dBlur, 80, 20)
	l2.SetShowHelp(false)
	l2.SetShowStatusBar(false)
	l2.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	m := Model{
		svc:      svc,
		ctx:      ctx,
		mode:     modeNormal,
		focus:    paneLists,
		listList: l1,
		todoList: l2,
		input:    ti,
		status:   normalStatus,
		theme:    DefaultTheme(),
		focusDel: dFocus,
		blurDel:  dBlur,
	}
	m.updateFocusHeaders()
	return m
}

// Init loads the todos and starts watching the store.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(""), m.watch())
}

func (m Model) load(status string) tea.Cmd {
	svc, ctx, gen := m.svc, m.ctx, m.gen
	return func() tea.Msg {
		if svc == nil {
			return errMsg{errors.New("no persistence")}
		}
		st, err := svc.Load(ctx)
		if err != nil {
			return errMsg{err}
		}
		return stateMsg{st: st, status: status, gen: gen}
	}
}

func (m Model) watch() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return nil
		}
		events, err := svc.Watch(ctx)
		if err != nil {
			return errMsg{fmt.Errorf("watch: %w", err)}
		}
		return watchStartedMsg{events: events}
	}
}

func waitForEvent(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return watchMsg{ev: ev}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
		m.apply(m.state)
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case stateMsg:
		if msg.gen != m.gen {
			break
		}
		m.apply(msg.st)
		if msg.status != "" {
			m.status = msg.status
		}
	case watchStartedMsg:
		m.events = msg.events
		cmds = append(cmds, waitForEvent(m.events))
	case watchMsg:
		cmds = append(cmds, m.load(""), waitForEvent(m.events))
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
		case modeInsert:
			cmds = append(cmds, m.updateInsert(msg)...)
		case modeCommand:
			cmds = append(cmds, m.updateCommand(msg)...)
		case modeNormal:
			cmds = append(cmds, m.updateNormal(msg)...)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	key := msg.String()
	if key != "d" {
		m.awaitingDD = false
	}

	switch key {
	case ":":
		cmds = append(cmds, m.enterInput(modeCommand, actionNone, "command", ""))
		m.status = "COMMAND: type :q or :exit to quit"

	case "h", "left":
		m.focus = paneLists
		m.updateFocusHeaders()
	case "l", "right":
		m.focus = paneTodos
		m.updateFocusHeaders()

	case "j", "down":
		m.focused().CursorDown()
	case "k", "up":
		m.focused().CursorUp()
	case "g":
		m.focused().Select(0)
	case "G":
		m.focused().Select(len(m.focused().Items()) - 1)

	case "enter":
		if m.focus == paneLists {
			if it, ok := m.listList.SelectedItem().(listItem); ok && m.svc != nil {
				m.applyLocal(m.svc.Select(it.entry.Scope, it.entry.Date))
				m.status = "Showing " + it.entry.Date
			}
		}

	case "o", "O":
		cmds = append(cmds, m.enterInput(modeInsert, actionAdd, "New todo title", ""))
	case "i":
		if t := m.currentTodo(); t != nil {
			cmds = append(cmds, m.enterInput(modeInsert, actionEdit, "Edit title", t.Title))
		}

	case "x", " ", "space":
		if t := m.currentTodo(); t != nil && m.svc != nil {
			_, st, err := m.svc.Toggle(m.ctx, t.ID)
			m.afterMutation(&cmds, st, err, "Toggled")
		}
	case "c":
		if t := m.currentTodo(); t != nil && m.svc != nil {
			_, st, err := m.svc.Complete(m.ctx, t.ID)
			m.afterMutation(&cmds, st, err, "Completed")
		}
	case "d":
		if t := m.currentTodo(); t != nil && m.svc != nil {
			if m.awaitingDD && time.Since(m.lastDTime) < ddWindow {
				st, err := m.svc.Delete(m.ctx, t.ID)
				m.afterMutation(&cmds, st, err, "Deleted")
				m.awaitingDD = false
			} else {
				m.awaitingDD = true
				m.lastDTime = time.Now()
			}
		}

	case "?":
		m.mode = modeHelp
	case "r":
		cmds = append(cmds, m.load("Reloaded"))
	case "q":
		m.status = "Use :q or :exit to quit"
	}
	return cmds
}

func (m *Model) updateInsert(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		switch m.action {
		case actionAdd:
			if input != "" && m.svc != nil {
				_, st, err := m.svc.Create(m.ctx, m.newFields(input))
				m.afterMutation(&cmds, st, err, "Added")
			}
		case actionEdit:
			if t := m.currentTodo(); t != nil && input != "" && m.svc != nil {
				f := store.FieldsOf(t)
				f.Title = input
				_, st, err := m.svc.Update(m.ctx, t.ID, f)
				m.afterMutation(&cmds, st, err, "Edited")
			}
		}
		m.leaveInput()
	case "esc":
		switch m.action {
		case actionAdd:
			m.status = "Add cancelled"
		case actionEdit:
			m.status = "Edit cancelled"
		}
		m.leaveInput()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *Model) updateCommand(msg tea.KeyPressMsg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		switch input {
		case "q", "quit", "exit":
			cmds = append(cmds, tea.Quit)
		case "":
		default:
			m.status = fmt.Sprintf("Unknown command: %s", input)
		}
		m.leaveInput()
	case "esc":
		m.leaveInput()
		m.status = "Command cancelled"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m *Model) enterInput(md mode, a action, placeholder, value string) tea.Cmd {
	m.mode = md
	m.action = a
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) afterMutation(cmds *[]tea.Cmd, st engine.State, err error, status string) {
	if err != nil {
		*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		return
	}
	m.applyLocal(st)
	m.status = status
}

func (m *Model) applyLocal(st engine.State) {
	m.gen++
	m.apply(st)
}

// newFields dates a new todo after the active list when it names a month.
func (m *Model) newFields(title string) store.Fields {
	f := store.Fields{Title: title}
	date := m.state.Selection.Date()
	if !m.state.Selection.Active() || date == duedate.NoDueDate || duedate.IsPseudo(date) {
		return f
	}
	if duedate.Valid(date) != nil {
		return f
	}
	if month, year, ok := strings.Cut(date, "/"); ok {
		f.Month, f.Year = month, year
	}
	return f
}

func (m *Model) focused() *list.Model {
	if m.focus == paneLists {
		return &m.listList
	}
	return &m.todoList
}

func (m *Model) currentTodo() *todo.Todo {
	if m.focus != paneTodos {
		return nil
	}
	it, ok := m.todoList.SelectedItem().(todoItem)
	if !ok {
		return nil
	}
	return it.t
}

// apply renders st into both panes, keeping the cursors in range.
func (m *Model) apply(st engine.State) {
	m.state = st

	var rows []list.Item
	for _, scope := range lists.Scopes() {
		section := st.Lists.Section(scope)
		rows = append(rows, listItem{entry: section.Header, header: true, active: st.Selection.Is(scope, section.Header.Date)})
		for _, e := range section.Entries {
			rows = append(rows, listItem{entry: e, active: st.Selection.Is(e.Scope, e.Date)})
		}
	}
	keep := m.listList.Index()
	m.listList.SetItems(rows)
	m.listList.Select(clamp(keep, len(rows)))

	width := m.todoList.Width() - 4
	todos := make([]list.Item, 0, len(st.Visible.Todos))
	for _, t := range st.Visible.Todos {
		todos = append(todos, todoItem{t: t, width: width})
	}
	keep = m.todoList.Index()
	m.todoList.SetItems(todos)
	m.todoList.Select(clamp(keep, len(todos)))

	m.updateFocusHeaders()
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// View renders both panes and the status line.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.listList.View(), m.theme.Gap.Render(" "), m.todoList.View())

	switch m.mode {
	case modeInsert:
		prompt := "Add: "
		if m.action == actionEdit {
			prompt = "Edit: "
		}
		body += "\n\n" + m.theme.Prompt.Render(prompt) + m.input.View()
	case modeCommand:
		body += "\n\n" + m.theme.Prompt.Render(":") + m.input.View()
	case modeHelp:
		help := "Keys: h/l switch panes, j/k move, g/G top/bottom, enter open list, o add, i edit title, space/x toggle, c complete, dd delete, r reload, :q quit"
		body += "\n\n" + m.theme.Help.Render(help)
	}

	modeStr := map[mode]string{modeNormal: "NORMAL", modeInsert: "INSERT", modeCommand: "CMD", modeHelp: "HELP"}[m.mode]
	style := m.theme.Status
	if strings.HasPrefix(m.status, "ERR: ") {
		style = m.theme.Error
	}
	return body + "\n\n" + style.Render(fmt.Sprintf("[%s] %s", modeStr, m.status))
}

// Run starts the UI and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 3
	if left < 28 {
		left = 28
	}
	if left > 40 {
		left = 40
	}
	right := m.termWidth - left - 4
	if right < 20 {
		right = 20
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.listList.SetSize(left, height)
	m.todoList.SetSize(right, height)
}

// updateFocusHeaders marks the focused pane and titles the todo pane after
// the active list.
func (m *Model) updateFocusHeaders() {
	const on = "» "
	const off = "  "

	heading := "Todos"
	if m.state.Selection.Active() {
		heading = duedate.Shorten(m.state.Heading()) + " - " + strconv.Itoa(m.state.Visible.Count)
	}

	if m.focus == paneLists {
		m.listList.Title = on + "Lists"
		m.todoList.Title = off + heading
		m.listList.SetDelegate(m.focusDel)
		m.todoList.SetDelegate(m.blurDel)
	} else {
		m.listList.Title = off + "Lists"
		m.todoList.Title = on + heading
		m.listList.SetDelegate(m.blurDel)
		m.todoList.SetDelegate(m.focusDel)
	}
}
