package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/amonks/tasklist/internal/validation"
	"github.com/amonks/tasklist/todo"
)

// Form is the data rendered into the TOML template.
type Form struct {
	// IsUpdate is true when editing an existing todo; only then is status
	// shown.
	IsUpdate bool
	ID       int
	Title    string
	Priority int
	Status   todo.Status
}

// CreateForm returns a form for a new todo, prefilled with title.
func CreateForm(title string) Form {
	return Form{Title: title, Priority: todo.DefaultPriority}
}

// UpdateForm returns a form holding the current values of t.
func UpdateForm(t todo.Todo) Form {
	return Form{IsUpdate: true, ID: t.ID, Title: t.Title, Priority: t.Priority, Status: t.Status}
}

var formTemplate = template.Must(template.New("todo").Funcs(template.FuncMap{
	"statuses": func() string { return validation.FormatValidValues(todo.ValidStatuses()) },
}).Parse(`{{- if .IsUpdate }}# Editing todo {{ .ID }}
{{ else }}# New todo
{{ end -}}
# Save and quit to apply. Lines starting with # are ignored.
title = {{ printf "%q" .Title }}
priority = {{ .Priority }} # 1 (highest) to 100
{{- if .IsUpdate }}
status = {{ printf "%q" .Status }} # {{ statuses }}
{{- end }}
`))

// Render renders the form as TOML for editing.
func Render(form Form) (string, error) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, form); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// Parsed is the result of decoding an edited form. Fields the user deleted
// are nil.
type Parsed struct {
	Title    *string `toml:"title"`
	Priority *int    `toml:"priority"`
	Status   *string `toml:"status"`
}

// Parse decodes an edited form. It checks syntax and the status spelling;
// field rules are left to the server so messages match every other client.
func Parse(content string) (*Parsed, error) {
	var parsed Parsed
	meta, err := toml.Decode(content, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown key %s", undecoded[0])
	}
	if parsed.Status != nil {
		status, err := todo.ParseStatus(*parsed.Status)
		if err != nil {
			return nil, err
		}
		value := string(status)
		parsed.Status = &value
	}
	return &parsed, nil
}

// CreateOptions converts the parsed form into the title and options for
// a create call.
func (p *Parsed) CreateOptions() (string, todo.CreateOptions) {
	title := ""
	if p.Title != nil {
		title = *p.Title
	}
	return title, todo.CreateOptions{Priority: p.Priority}
}

// UpdateOptions converts the parsed form into an update that only carries
// fields that differ from current.
func (p *Parsed) UpdateOptions(current todo.Todo) todo.UpdateOptions {
	opts := todo.UpdateOptions{}
	if p.Title != nil && *p.Title != current.Title {
		opts.Title = p.Title
	}
	if p.Priority != nil && *p.Priority != current.Priority {
		opts.Priority = p.Priority
	}
	if p.Status != nil && todo.Status(*p.Status) != current.Status {
		opts.Status = todo.StatusPtr(todo.Status(*p.Status))
	}
	return opts
}

// EditForm writes form to a temp file, opens the editor on it, and parses
// the result.
func EditForm(form Form) (*Parsed, error) {
	content, err := Render(form)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "tl-todo-*.toml")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}
	if strings.TrimSpace(string(edited)) == "" {
		return nil, fmt.Errorf("edited file is empty, aborting")
	}

	return Parse(string(edited))
}
