package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTodo_Valid(t *testing.T) {
	tests := []Todo{
		{Title: "abc", Priority: 1, Status: StatusNotStarted},
		{Title: strings.Repeat("x", 100), Priority: 100, Status: StatusCompleted},
		{Title: "Design API", Priority: 50, Status: StatusInProgress},
	}

	for _, item := range tests {
		if err := ValidateTodo(item); err != nil {
			t.Errorf("ValidateTodo(%+v) returned %v", item, err)
		}
	}
}

func TestValidateTodo_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		item    Todo
		field   string
		message string
		target  error
	}{
		{"empty title", Todo{Title: "", Priority: 1}, "title", MessageTitleRequired, ErrEmptyTitle},
		{"blank title", Todo{Title: "    ", Priority: 1}, "title", MessageTitleRequired, ErrEmptyTitle},
		{"short title", Todo{Title: "ab", Priority: 1}, "title", MessageTitleLength, ErrTitleLength},
		{"long title", Todo{Title: strings.Repeat("x", 101), Priority: 1}, "title", MessageTitleLength, ErrTitleLength},
		{"zero priority", Todo{Title: "Valid", Priority: 0}, "priority", MessagePriorityRange, ErrInvalidPriority},
		{"large priority", Todo{Title: "Valid", Priority: 101}, "priority", MessagePriorityRange, ErrInvalidPriority},
		{"bad status", Todo{Title: "Valid", Priority: 1, Status: "done"}, "status", MessageStatusInvalid, ErrInvalidStatus},
		{"empty status", Todo{Title: "Valid", Priority: 1, Status: ""}, "status", MessageStatusInvalid, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTodo(tt.item)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if got := verrs.Fields()[tt.field]; got != tt.message {
				t.Fatalf("expected %s message %q, got %q", tt.field, tt.message, got)
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected errors.Is(%v), got %v", tt.target, err)
			}
		})
	}
}

func TestValidateTodo_MultipleFields(t *testing.T) {
	err := ValidateTodo(Todo{Title: "", Priority: 0, Status: StatusNotStarted})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	fields := verrs.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 invalid fields, got %v", fields)
	}
	if !strings.Contains(err.Error(), MessageTitleRequired) || !strings.Contains(err.Error(), MessagePriorityRange) {
		t.Fatalf("expected both messages in %q", err.Error())
	}
}

func TestDuplicateTitleError(t *testing.T) {
	err := DuplicateTitleError()

	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatal("expected ErrDuplicateTitle")
	}
	if got := err.Fields()["title"]; got != MessageDuplicateTitle {
		t.Fatalf("expected %q, got %q", MessageDuplicateTitle, got)
	}
}
