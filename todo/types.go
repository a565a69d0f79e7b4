// Package todo implements the task list core: the todo item model, title
// normalization, and an in-memory store that assigns identifiers and gates
// deletion on completion.
//
// The public API mirrors the operations exposed by the server and CLI:
//   - All, Get for querying
//   - ExistsWithName for the title-uniqueness rule
//   - Add, Update for writes
//   - DeleteCompleted, the only way to remove an item
package todo

import (
	"strings"

	"github.com/amonks/tasklist/internal/validation"
)

// Status represents the state of a todo.
type Status string

const (
	// StatusNotStarted indicates no work has happened yet (default).
	StatusNotStarted Status = "not_started"

	// StatusInProgress indicates the todo is currently being worked on.
	StatusInProgress Status = "in_progress"

	// StatusCompleted indicates the todo is finished. Only completed todos
	// can be deleted.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Label returns a human-readable name for the status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Next returns the status that follows s in the not started, in progress,
// completed cycle.
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// ParseStatus accepts snake_case, kebab-case, spaced, or PascalCase spellings
// of a status, case-insensitively.
func ParseStatus(value string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "notstarted":
		return StatusNotStarted, nil
	case "inprogress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", validation.InvalidValueError(ErrInvalidStatus, value, ValidStatuses())
}

// Priority and title bounds enforced by input validation. The store itself
// accepts any priority and treats it purely as a sort key.
const (
	PriorityMin = 1
	PriorityMax = 100

	// DefaultPriority is used by the CLI when no priority is given.
	DefaultPriority = 1

	MinTitleLength = 3
	MaxTitleLength = 100
)

// IDPtr returns a pointer to the provided id.
func IDPtr(id int) *int {
	return &id
}
