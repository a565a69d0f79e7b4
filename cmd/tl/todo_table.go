package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/todo"
)

// printTodoTable prints todos in a table format.
func printTodoTable(w io.Writer, todos []todo.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos found.")
		return
	}

	fmt.Fprint(w, formatTodoTable(todos))
}

func formatTodoTable(todos []todo.Todo) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "STATUS", "TITLE"}, len(todos))
	for _, t := range todos {
		builder.AddRow([]string{
			strconv.Itoa(t.ID),
			strconv.Itoa(t.Priority),
			ui.StatusBadge(t.Status),
			ui.TruncateTableCell(t.Title),
		})
	}
	return builder.String()
}

func printTodoDetail(w io.Writer, t todo.Todo) {
	fmt.Fprintf(w, "ID:       %d\n", t.ID)
	fmt.Fprintf(w, "Title:    %s\n", t.Title)
	fmt.Fprintf(w, "Priority: %d\n", t.Priority)
	fmt.Fprintf(w, "Status:   %s\n", ui.StatusBadge(t.Status))
}
