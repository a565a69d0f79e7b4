package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/todo"
)

// Client calls todo RPCs.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := internalstrings.TrimTrailingSlash(internalstrings.TrimSpace(addr))
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// BaseURL returns the URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns all todos ordered by priority.
func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var response todosListResponse
	if err := c.post(ctx, "/todos/list", todosListRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Todos, nil
}

// Get returns a single todo. A missing todo yields an error matching
// todo.ErrTodoNotFound.
func (c *Client) Get(ctx context.Context, id int) (todo.Todo, error) {
	var response todoResponse
	if err := c.post(ctx, "/todos/get", todosGetRequest{ID: id}, &response); err != nil {
		return todo.Todo{}, err
	}
	return response.Todo, nil
}

// Exists reports whether another todo already uses title.
func (c *Client) Exists(ctx context.Context, title string, opts todo.NameCheckOptions) (bool, error) {
	var response todosExistsResponse
	request := todosExistsRequest{Title: title, ExcludeID: opts.ExcludeID}
	if err := c.post(ctx, "/todos/exists", request, &response); err != nil {
		return false, err
	}
	return response.Exists, nil
}

// Create adds a todo.
func (c *Client) Create(ctx context.Context, title string, opts todo.CreateOptions) (todo.Todo, error) {
	var response todoResponse
	request := todosCreateRequest{Title: title, Priority: opts.Priority}
	if err := c.post(ctx, "/todos/create", request, &response); err != nil {
		return todo.Todo{}, err
	}
	return response.Todo, nil
}

// Update changes the fields set in opts.
func (c *Client) Update(ctx context.Context, id int, opts todo.UpdateOptions) (todo.Todo, error) {
	var response todoResponse
	request := todosUpdateRequest{ID: id, Title: opts.Title, Priority: opts.Priority, Status: opts.Status}
	if err := c.post(ctx, "/todos/update", request, &response); err != nil {
		return todo.Todo{}, err
	}
	return response.Todo, nil
}

// DeleteCompleted deletes a completed todo. It reports false when the todo
// is missing or not completed.
func (c *Client) DeleteCompleted(ctx context.Context, id int) (bool, error) {
	var response todosDeleteResponse
	if err := c.post(ctx, "/todos/delete", todosDeleteRequest{ID: id}, &response); err != nil {
		return false, err
	}
	return response.Deleted, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

// APIError is a non-200 response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the response onto the todo package sentinels so callers can
// use errors.Is.
func (e *APIError) Unwrap() []error {
	var errs []error
	if e.StatusCode == http.StatusNotFound {
		errs = append(errs, todo.ErrTodoNotFound)
	}
	for _, message := range e.Fields {
		if sentinel, ok := fieldSentinels[message]; ok {
			errs = append(errs, sentinel)
		}
	}
	return errs
}

var fieldSentinels = map[string]error{
	todo.MessageTitleRequired:  todo.ErrEmptyTitle,
	todo.MessageTitleLength:    todo.ErrTitleLength,
	todo.MessagePriorityRange:  todo.ErrInvalidPriority,
	todo.MessageStatusInvalid:  todo.ErrInvalidStatus,
	todo.MessageDuplicateTitle: todo.ErrDuplicateTitle,
}

func readErrorResponse(resp *http.Response) error {
	var payload errorResponse
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error, Fields: payload.Fields}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("server error: %s", resp.Status)}
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	var apiErr *APIError
	return err != nil && !errors.As(err, &apiErr) && !errors.Is(err, context.Canceled)
}
