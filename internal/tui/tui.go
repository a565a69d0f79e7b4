// Package tui implements the interactive todo list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/todo"
)

// Client is the server API the TUI needs.
type Client interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Exists(ctx context.Context, title string, opts todo.NameCheckOptions) (bool, error)
	Create(ctx context.Context, title string, opts todo.CreateOptions) (todo.Todo, error)
	Update(ctx context.Context, id int, opts todo.UpdateOptions) (todo.Todo, error)
	DeleteCompleted(ctx context.Context, id int) (bool, error)
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
)

type model struct {
	ctx         context.Context
	client      Client
	keys        keyMap
	help        help.Model
	list        list.Model
	input       textinput.Model
	mode        mode
	width       int
	height      int
	status      string
	statusLevel statusLevel
	selectedID  int
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, client Client) error {
	if client == nil {
		return fmt.Errorf("client is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, client), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, client Client) model {
	todoList := list.New(nil, todoItemDelegate{}, 0, 0)
	todoList.Title = "Tasks"
	todoList.Styles.Title = titleStyle
	todoList.SetShowStatusBar(false)
	todoList.SetFilteringEnabled(false)
	todoList.SetShowHelp(false)
	todoList.SetShowPagination(false)

	input := textinput.New()
	input.Placeholder = "Task name"
	input.CharLimit = todo.MaxTitleLength
	input.Prompt = "New task: "

	return model{
		ctx:    ctx,
		client: client,
		keys:   newKeyMap(),
		help:   help.New(),
		list:   todoList,
		input:  input,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadTodosCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAdd(msg)
		}
		return m.updateBrowse(msg)
	case todosLoadedMsg:
		m.handleTodosLoaded(msg)
		return m, nil
	case todoSavedMsg:
		return m.handleTodoSaved(msg)
	case todoDeletedMsg:
		return m.handleTodoDeleted(msg)
	}
	return m, nil
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Refreshing...", statusNone)
		return m, m.loadTodosCmd()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.setStatus("", statusNone)
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Cycle):
		item, ok := m.currentTodo()
		if !ok {
			return m, nil
		}
		return m, m.cycleStatusCmd(item)
	case key.Matches(msg, m.keys.Delete):
		item, ok := m.currentTodo()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(item.ID)
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		if item, ok := m.currentTodo(); ok {
			m.selectedID = item.ID
		}
		return m, cmd
	}
	return m, nil
}

func (m model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.input.Blur()
		m.setStatus("", statusNone)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		title := m.input.Value()
		if internalstrings.IsBlank(title) {
			m.setStatus(todo.MessageTitleRequired, statusError)
			return m, nil
		}
		return m, m.createCmd(title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	sections := []string{m.list.View()}
	if m.mode == modeAdd {
		sections = append(sections, m.input.View())
	}
	if line := m.renderStatusLine(); line != "" {
		sections = append(sections, line)
	}
	bindings := m.keys.browseHelp()
	if m.mode == modeAdd {
		bindings = m.keys.addHelp()
	}
	sections = append(sections, m.help.ShortHelpView(bindings))
	return strings.Join(sections, "\n")
}

func (m *model) resize() {
	listHeight := m.height - 3
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.width, listHeight)
	m.input.Width = m.width - len(m.input.Prompt) - 1
	m.help.Width = m.width
}

func (m *model) handleTodosLoaded(msg todosLoadedMsg) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Load failed: %v", msg.err), statusError)
		return
	}
	items := make([]list.Item, 0, len(msg.todos))
	for _, item := range msg.todos {
		items = append(items, todoItem{todo: item})
	}
	m.list.SetItems(items)
	m.selectByID(m.selectedID)
	if item, ok := m.currentTodo(); ok {
		m.selectedID = item.ID
	}
	if m.statusLevel == statusNone {
		m.setStatus(fmt.Sprintf("%d tasks", len(items)), statusNone)
	}
}

func (m model) handleTodoSaved(msg todoSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(saveErrorText(msg.err), statusError)
		return m, nil
	}
	if m.mode == modeAdd {
		m.mode = modeBrowse
		m.input.Blur()
		m.input.SetValue("")
	}
	m.selectedID = msg.todo.ID
	m.setStatus(fmt.Sprintf("%s: %s (%s)", msg.verb, msg.todo.Title, msg.todo.Status.Label()), statusInfo)
	return m, m.loadTodosCmd()
}

func (m model) handleTodoDeleted(msg todoDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Delete failed: %v", msg.err), statusError)
		return m, nil
	}
	if !msg.deleted {
		m.setStatus(fmt.Sprintf("Cannot delete task ID %d. Only completed tasks can be deleted.", msg.id), statusError)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Deleted task %d", msg.id), statusInfo)
	return m, m.loadTodosCmd()
}

func saveErrorText(err error) string {
	if errors.Is(err, todo.ErrDuplicateTitle) {
		return todo.MessageDuplicateTitle
	}
	return fmt.Sprintf("Save failed: %v", err)
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusInfo:
		style = statusSuccessStyle
	}
	return style.Render(m.status)
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) currentTodo() (todo.Todo, bool) {
	item := m.list.SelectedItem()
	if item == nil {
		return todo.Todo{}, false
	}
	current, ok := item.(todoItem)
	return current.todo, ok
}

func (m *model) selectByID(id int) {
	for i, item := range m.list.Items() {
		if current, ok := item.(todoItem); ok && current.todo.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m model) loadTodosCmd() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.client.List(m.ctx)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m model) cycleStatusCmd(item todo.Todo) tea.Cmd {
	next := item.Status.Next()
	return func() tea.Msg {
		updated, err := m.client.Update(m.ctx, item.ID, todo.UpdateOptions{Status: &next})
		return todoSavedMsg{verb: "Updated", todo: updated, err: err}
	}
}

func (m model) createCmd(title string) tea.Cmd {
	return func() tea.Msg {
		exists, err := m.client.Exists(m.ctx, title, todo.NameCheckOptions{})
		if err != nil {
			return todoSavedMsg{err: err}
		}
		if exists {
			return todoSavedMsg{err: todo.ErrDuplicateTitle}
		}
		created, err := m.client.Create(m.ctx, title, todo.CreateOptions{})
		return todoSavedMsg{verb: "Added", todo: created, err: err}
	}
}

func (m model) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		deleted, err := m.client.DeleteCompleted(m.ctx, id)
		return todoDeletedMsg{id: id, deleted: deleted, err: err}
	}
}

type todosLoadedMsg struct {
	todos []todo.Todo
	err   error
}

type todoSavedMsg struct {
	verb string
	todo todo.Todo
	err  error
}

type todoDeletedMsg struct {
	id      int
	deleted bool
	err     error
}
