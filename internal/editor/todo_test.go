package editor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/tasklist/todo"
)

func TestRender_Create(t *testing.T) {
	content, err := Render(CreateForm("Write docs"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.HasPrefix(content, "# New todo\n") {
		t.Errorf("expected create header, got %q", content)
	}
	if !strings.Contains(content, `title = "Write docs"`) {
		t.Error("expected title to be prefilled")
	}
	if !strings.Contains(content, "priority = 1 ") {
		t.Error("expected default priority 1")
	}
	if strings.Contains(content, "status =") {
		t.Error("status should not be present for create")
	}
}

func TestRender_Update(t *testing.T) {
	content, err := Render(UpdateForm(todo.Todo{ID: 3, Title: `Say "hi"`, Priority: 40, Status: todo.StatusInProgress}))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.HasPrefix(content, "# Editing todo 3\n") {
		t.Errorf("expected update header, got %q", content)
	}
	if !strings.Contains(content, `title = "Say \"hi\""`) {
		t.Errorf("expected quoted title, got %q", content)
	}
	if !strings.Contains(content, "priority = 40") {
		t.Error("expected priority 40")
	}
	if !strings.Contains(content, `status = "in_progress" # not_started, in_progress, completed`) {
		t.Errorf("expected status line, got %q", content)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	current := todo.Todo{ID: 2, Title: "Implement Services", Priority: 2, Status: todo.StatusInProgress}
	content, err := Render(UpdateForm(current))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	parsed, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	opts := parsed.UpdateOptions(current)
	if opts.Title != nil || opts.Priority != nil || opts.Status != nil {
		t.Fatalf("expected unchanged form to produce no updates, got %+v", opts)
	}
}

func TestParse(t *testing.T) {
	parsed, err := Parse("title = \"Ship\"\npriority = 7\nstatus = \"Completed\"\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Title == nil || *parsed.Title != "Ship" {
		t.Fatalf("expected title Ship, got %v", parsed.Title)
	}
	if parsed.Priority == nil || *parsed.Priority != 7 {
		t.Fatalf("expected priority 7, got %v", parsed.Priority)
	}
	if parsed.Status == nil || *parsed.Status != string(todo.StatusCompleted) {
		t.Fatalf("expected normalized status, got %v", parsed.Status)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
		message string
	}{
		{"syntax", "title = ", nil, "parse TOML"},
		{"unknown key", "title = \"x\"\ncolour = \"red\"\n", nil, "unknown key colour"},
		{"bad status", "status = \"done\"\n", todo.ErrInvalidStatus, "invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("expected errors.Is(%v), got %v", tt.target, err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestCreateOptions(t *testing.T) {
	parsed, err := Parse("title = \"New\"\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	title, opts := parsed.CreateOptions()
	if title != "New" {
		t.Fatalf("expected title New, got %q", title)
	}
	if opts.Priority != nil {
		t.Fatalf("expected missing priority to stay nil, got %d", *opts.Priority)
	}
}

func TestUpdateOptions_OnlyChangedFields(t *testing.T) {
	current := todo.Todo{ID: 1, Title: "Design API", Priority: 1, Status: todo.StatusCompleted}
	parsed, err := Parse("title = \"Design API\"\npriority = 5\nstatus = \"not_started\"\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	opts := parsed.UpdateOptions(current)
	if opts.Title != nil {
		t.Fatalf("expected title unchanged, got %q", *opts.Title)
	}
	if opts.Priority == nil || *opts.Priority != 5 {
		t.Fatalf("expected priority 5, got %v", opts.Priority)
	}
	if opts.Status == nil || *opts.Status != todo.StatusNotStarted {
		t.Fatalf("expected status not_started, got %v", opts.Status)
	}
}

func TestEditForm_UsesEditorOutput(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "editor.sh")
	body := "#!/bin/sh\nprintf 'title = \"From editor\"\\npriority = 9\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write editor script: %v", err)
	}
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	parsed, err := EditForm(CreateForm(""))
	if err != nil {
		t.Fatalf("EditForm failed: %v", err)
	}
	title, opts := parsed.CreateOptions()
	if title != "From editor" {
		t.Fatalf("expected title from editor, got %q", title)
	}
	if opts.Priority == nil || *opts.Priority != 9 {
		t.Fatalf("expected priority 9, got %v", opts.Priority)
	}
}

func TestEditForm_EditorFailure(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditForm(CreateForm(""))
	if err == nil || !strings.Contains(err.Error(), "editor exited with status 1") {
		t.Fatalf("expected editor exit error, got %v", err)
	}
}

func TestEditorCommandPrefersVisual(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "nano")
	if got := editorCommand(); got != "code --wait" {
		t.Fatalf("expected VISUAL, got %q", got)
	}

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	if got := editorCommand(); got != "vi" {
		t.Fatalf("expected vi fallback, got %q", got)
	}
}
