package server

import "github.com/amonks/tasklist/todo"

type todosListRequest struct{}

type todosListResponse struct {
	Todos []todo.Todo `json:"todos"`
}

type todosGetRequest struct {
	ID int `json:"id"`
}

type todoResponse struct {
	Todo todo.Todo `json:"todo"`
}

type todosExistsRequest struct {
	Title     string `json:"title"`
	ExcludeID *int   `json:"exclude_id,omitempty"`
}

type todosExistsResponse struct {
	Exists bool `json:"exists"`
}

type todosCreateRequest struct {
	Title    string `json:"title"`
	Priority *int   `json:"priority,omitempty"`
}

type todosUpdateRequest struct {
	ID       int          `json:"id"`
	Title    *string      `json:"title,omitempty"`
	Priority *int         `json:"priority,omitempty"`
	Status   *todo.Status `json:"status,omitempty"`
}

type todosDeleteRequest struct {
	ID int `json:"id"`
}

type todosDeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
