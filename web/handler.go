// Package web serves the HTML pages for browsing and editing todos.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	charmlog "github.com/charmbracelet/log"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/todo"
)

// Store is the subset of the todo store the pages use.
type Store interface {
	All() []todo.Todo
	Get(id int) (todo.Todo, bool)
	ExistsWithName(title string, opts todo.NameCheckOptions) bool
	Create(title string, opts todo.CreateOptions) (todo.Todo, error)
	Edit(id int, opts todo.UpdateOptions) (todo.Todo, error)
	DeleteCompleted(id int) bool
}

// Options configures the web handler.
type Options struct {
	Store  Store
	Logger *charmlog.Logger
}

// Handler serves the todo web client. Flash messages and rejected create
// forms are held per browser session until the next page load.
type Handler struct {
	store     Store
	logger    *charmlog.Logger
	mux       *http.ServeMux
	templates *template.Template
	sessions  *sessions
}

// Messages for form input that never reaches the validator.
const (
	messagePriorityRequired = "Priority is required."
	messageInvalidForm      = "Invalid form input."
)

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = charmlog.Default()
	}
	handler := &Handler{
		store:     opts.Store,
		logger:    logger,
		templates: newTemplates(),
		sessions:  newSessions(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/web/todos", handler.handleTodos)
	mux.HandleFunc("/web/todos/create", handler.handleTodosCreate)
	mux.HandleFunc("/web/todos/delete", handler.handleTodosDelete)
	mux.HandleFunc("/web/todos/edit", handler.handleTodosEdit)
	mux.HandleFunc("/web/todos/validate-name", handler.handleValidateName)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type formValues struct {
	ID       int
	Title    string
	Priority string
	Status   string
}

type createDraft struct {
	values formValues
	errors map[string]string
}

type indexData struct {
	Todos  []todo.Todo
	Flash  string
	Form   formValues
	Errors map[string]string
}

type editData struct {
	Form          formValues
	Errors        map[string]string
	StatusOptions []todo.Status
}

func (h *Handler) handleTodos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	state := h.sessions.consume(r)
	data := indexData{
		Todos: h.store.All(),
		Flash: state.flash,
		Form:  formValues{Priority: strconv.Itoa(todo.DefaultPriority)},
	}
	if draft := state.createDraft; draft != nil {
		data.Form = draft.values
		data.Errors = draft.errors
	}
	h.render(w, http.StatusOK, "index", data)
}

func (h *Handler) handleTodosCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setCreateDraft(w, r, createDraft{errors: map[string]string{"form": messageInvalidForm}})
		http.Redirect(w, r, "/web/todos", http.StatusSeeOther)
		return
	}

	values := formValuesFromRequest(r)
	priority, priorityMessage := parsePriority(values.Priority)
	_, err := h.store.Create(values.Title, todo.CreateOptions{Priority: &priority})
	if fields := fieldErrors(err, priorityMessage); len(fields) > 0 {
		h.setCreateDraft(w, r, createDraft{values: values, errors: fields})
		http.Redirect(w, r, "/web/todos", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.logger.Error("create todo", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/web/todos", http.StatusSeeOther)
}

func (h *Handler) handleTodosDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, messageInvalidForm, http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(internalstrings.TrimSpace(r.PostForm.Get("id")))
	if err != nil {
		http.Error(w, "invalid todo id", http.StatusBadRequest)
		return
	}
	if !h.store.DeleteCompleted(id) {
		h.setFlash(w, r, fmt.Sprintf("Cannot delete task ID %d. Only completed tasks can be deleted.", id))
	}
	http.Redirect(w, r, "/web/todos", http.StatusSeeOther)
}

func (h *Handler) handleTodosEdit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.showEdit(w, r)
	case http.MethodPost:
		h.submitEdit(w, r)
	default:
		writeMethodNotAllowed(w, "GET, POST")
	}
}

func (h *Handler) showEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(internalstrings.TrimSpace(r.URL.Query().Get("id")))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	item, ok := h.store.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, "edit", editData{
		Form:          formValuesFromTodo(item),
		StatusOptions: todo.ValidStatuses(),
	})
}

func (h *Handler) submitEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, messageInvalidForm, http.StatusBadRequest)
		return
	}
	values := formValuesFromRequest(r)
	id, err := strconv.Atoi(internalstrings.TrimSpace(r.PostForm.Get("id")))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	values.ID = id

	priority, priorityMessage := parsePriority(values.Priority)
	opts := todo.UpdateOptions{Title: &values.Title, Priority: &priority}
	if values.Status != "" {
		status := todo.Status(values.Status)
		if parsed, parseErr := todo.ParseStatus(values.Status); parseErr == nil {
			status = parsed
		}
		opts.Status = &status
	}
	_, err = h.store.Edit(id, opts)
	if errors.Is(err, todo.ErrTodoNotFound) {
		http.NotFound(w, r)
		return
	}
	if fields := fieldErrors(err, priorityMessage); len(fields) > 0 {
		h.render(w, http.StatusOK, "edit", editData{
			Form:          values,
			Errors:        fields,
			StatusOptions: todo.ValidStatuses(),
		})
		return
	}
	if err != nil {
		h.logger.Error("update todo", "id", id, "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/web/todos", http.StatusSeeOther)
}

// handleValidateName answers remote validation requests from the forms:
// true when the title is free, otherwise the message to show.
func (h *Handler) handleValidateName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	opts := todo.NameCheckOptions{}
	if id, err := strconv.Atoi(internalstrings.TrimSpace(query.Get("id"))); err == nil && id != 0 {
		opts.ExcludeID = todo.IDPtr(id)
	}

	var result any = true
	if h.store.ExistsWithName(query.Get("title"), opts) {
		result = todo.MessageDuplicateTitle
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", "template", name, "err", err)
	}
}

func (h *Handler) setFlash(w http.ResponseWriter, r *http.Request, message string) {
	h.sessions.update(w, r, func(state *pageState) {
		state.flash = message
	})
}

func (h *Handler) setCreateDraft(w http.ResponseWriter, r *http.Request, draft createDraft) {
	h.sessions.update(w, r, func(state *pageState) {
		state.createDraft = &draft
	})
}

func formValuesFromRequest(r *http.Request) formValues {
	return formValues{
		Title:    r.PostForm.Get("title"),
		Priority: internalstrings.TrimSpace(r.PostForm.Get("priority")),
		Status:   internalstrings.TrimSpace(r.PostForm.Get("status")),
	}
}

func formValuesFromTodo(item todo.Todo) formValues {
	return formValues{
		ID:       item.ID,
		Title:    item.Title,
		Priority: strconv.Itoa(item.Priority),
		Status:   string(item.Status),
	}
}

// parsePriority returns 0 and a message when value is not a number, so the
// validator still reports every other field in the same pass.
func parsePriority(value string) (int, string) {
	if value == "" {
		return 0, messagePriorityRequired
	}
	priority, err := strconv.Atoi(value)
	if err != nil {
		return 0, todo.MessagePriorityRange
	}
	return priority, ""
}

func fieldErrors(err error, priorityMessage string) map[string]string {
	fields := map[string]string{}
	var verrs todo.ValidationErrors
	if errors.As(err, &verrs) {
		fields = verrs.Fields()
	}
	if priorityMessage != "" {
		fields["priority"] = priorityMessage
	}
	return fields
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
