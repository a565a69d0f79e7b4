// Package server exposes the todo store as JSON RPCs over HTTP and mounts
// the web pages next to them.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/amonks/tasklist/internal/logging"
	"github.com/amonks/tasklist/todo"
	"github.com/amonks/tasklist/web"
)

// Options configures a server.
type Options struct {
	// Store defaults to a seeded store.
	Store  *todo.Store
	Logger *charmlog.Logger
}

// Server handles todo RPCs.
type Server struct {
	store  *todo.Store
	logger *charmlog.Logger
}

const shutdownTimeout = 5 * time.Second

// New creates a server.
func New(opts Options) *Server {
	store := opts.Store
	if store == nil {
		store = todo.NewStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(logging.Config{Prefix: "tasklist"})
	}
	return &Server{store: store, logger: logger}
}

// Store returns the store the server reads and writes.
func (s *Server) Store() *todo.Store {
	return s.store
}

// Handler returns the HTTP handler for todo RPCs and the web pages.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/todos/list", s.handleTodosList)
	mux.HandleFunc("/todos/get", s.handleTodosGet)
	mux.HandleFunc("/todos/exists", s.handleTodosExists)
	mux.HandleFunc("/todos/create", s.handleTodosCreate)
	mux.HandleFunc("/todos/update", s.handleTodosUpdate)
	mux.HandleFunc("/todos/delete", s.handleTodosDelete)
	mux.Handle("/web/", web.NewHandler(web.Options{Store: s.store, Logger: s.logger}))
	mux.Handle("/web", http.RedirectHandler("/web/todos", http.StatusFound))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/web/todos", http.StatusFound)
	})
	return s.recoverHandler(mux)
}

// Serve runs the server on the given address until an interrupt arrives.
func (s *Server) Serve(addr string) error {
	listener, err := net.Listen("tcp", listenAddr(addr))
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupts:
			s.logger.Info("interrupt received, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return s.ServeListener(ctx, listener)
}

// ServeListener serves on listener until ctx is done, then shuts down
// gracefully.
func (s *Server) ServeListener(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:  s.Handler(),
		ErrorLog: s.logger.StandardLog(charmlog.StandardLogOptions{ForceLevel: charmlog.ErrorLevel}),
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.Serve(listener)
	}()
	s.logger.Info("listening", "addr", listener.Addr().String(), "todos", s.store.Len())

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		if errors.Is(shutdownErr, http.ErrServerClosed) {
			shutdownErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

func (s *Server) handleTodosList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload todosListRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, todosListResponse{Todos: s.store.All()})
}

func (s *Server) handleTodosGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload todosGetRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	item, ok := s.store.Get(payload.ID)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("%w: %d", todo.ErrTodoNotFound, payload.ID))
		return
	}
	writeJSON(w, http.StatusOK, todoResponse{Todo: item})
}

func (s *Server) handleTodosExists(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload todosExistsRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	opts := todo.NameCheckOptions{}
	if payload.ExcludeID != nil && *payload.ExcludeID != 0 {
		opts.ExcludeID = payload.ExcludeID
	}
	writeJSON(w, http.StatusOK, todosExistsResponse{Exists: s.store.ExistsWithName(payload.Title, opts)})
}

func (s *Server) handleTodosCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload todosCreateRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.Create(payload.Title, todo.CreateOptions{Priority: payload.Priority})
	if err != nil {
		s.writeError(w, r, statusForError(err), err)
		return
	}
	s.logger.Debug("todo created", "id", created.ID, "title", created.Title)
	writeJSON(w, http.StatusOK, todoResponse{Todo: created})
}

func (s *Server) handleTodosUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload todosUpdateRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.Edit(payload.ID, todo.UpdateOptions{
		Title:    payload.Title,
		Priority: payload.Priority,
		Status:   payload.Status,
	})
	if err != nil {
		if errors.Is(err, todo.ErrTodoNotFound) {
			err = fmt.Errorf("%w: %d", err, payload.ID)
		}
		s.writeError(w, r, statusForError(err), err)
		return
	}
	s.logger.Debug("todo updated", "id", updated.ID, "status", updated.Status)
	writeJSON(w, http.StatusOK, todoResponse{Todo: updated})
}

func (s *Server) handleTodosDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload todosDeleteRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	deleted := s.store.DeleteCompleted(payload.ID)
	s.logger.Debug("todo delete", "id", payload.ID, "deleted", deleted)
	writeJSON(w, http.StatusOK, todosDeleteResponse{Deleted: deleted})
}

func statusForError(err error) int {
	var verrs todo.ValidationErrors
	switch {
	case errors.Is(err, todo.ErrTodoNotFound):
		return http.StatusNotFound
	case errors.Is(err, todo.ErrDuplicateTitle):
		return http.StatusConflict
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Error("panic handling request", "method", r.Method, "path", r.URL.Path, "panic", recovered, "stack", string(debug.Stack()))
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
			s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", writer.status, "duration", time.Since(start))
		}()
		next.ServeHTTP(writer, r)
	})
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logRequestError(r, status, err)
	response := errorResponse{Error: err.Error()}
	var verrs todo.ValidationErrors
	if errors.As(err, &verrs) {
		response.Fields = verrs.Fields()
	}
	writeJSON(w, status, response)
}

func (s *Server) logRequestError(r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
		return
	}
	s.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
	status      int
}

func (w *responseTracker) WriteHeader(status int) {
	w.wroteHeader = true
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(data)
}

func (w *responseTracker) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
