package todo

// Todo represents a single task.
type Todo struct {
	// ID is assigned by the store and never reused within a process.
	ID int `json:"id"`

	// Title is the display name; uniqueness is checked on its normalized form.
	Title string `json:"title" validate:"notblank,min=3,max=100"`

	// Priority orders the list ascending (1 is first).
	Priority int `json:"priority" validate:"min=1,max=100"`

	// Status is the current state of the todo.
	Status Status `json:"status" validate:"status"`
}

// IsCompleted reports whether the todo may be deleted.
func (t Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}
