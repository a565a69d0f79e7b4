package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/todo"
)

type todoItem struct {
	todo todo.Todo
}

func (item todoItem) FilterValue() string {
	return item.todo.Title
}

type todoItemDelegate struct{}

func (d todoItemDelegate) Height() int                             { return 1 }
func (d todoItemDelegate) Spacing() int                            { return 0 }
func (d todoItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d todoItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(todoItem)
	if !ok {
		return
	}

	line := formatTodoItem(item.todo, m.Width())
	style := normalStyle
	if index == m.Index() {
		style = selectedStyle
	} else if item.todo.IsCompleted() {
		style = valueMuted
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTodoItem(item todo.Todo, width int) string {
	line := fmt.Sprintf("%s %3d  P%-3d %s", ui.StatusMarker(item.Status), item.ID, item.Priority, item.Title)
	if width <= 0 {
		return line
	}
	return truncate.StringWithTail(line, uint(width), "...")
}
