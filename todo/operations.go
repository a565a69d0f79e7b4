package todo

// CreateOptions configures Store.Create.
type CreateOptions struct {
	// Priority defaults to DefaultPriority when nil.
	Priority *int `json:"priority,omitempty"`
}

// UpdateOptions lists the fields Store.Edit changes. Nil fields keep their
// current value.
type UpdateOptions struct {
	Title    *string `json:"title,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(priority int) *int {
	return &priority
}

// StatusPtr returns a pointer to the provided status.
func StatusPtr(status Status) *Status {
	return &status
}

// TitlePtr returns a pointer to the provided title.
func TitlePtr(title string) *string {
	return &title
}

// Create validates a new todo, rejects duplicate titles, and stores it as
// not started. Validation failures are ValidationErrors; a duplicate title
// also matches ErrDuplicateTitle.
func (s *Store) Create(title string, opts CreateOptions) (Todo, error) {
	priority := DefaultPriority
	if opts.Priority != nil {
		priority = *opts.Priority
	}
	item := Todo{Title: title, Priority: priority, Status: StatusNotStarted}
	if err := ValidateTodo(item); err != nil {
		return Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.existsLocked(title, nil) {
		return Todo{}, DuplicateTitleError()
	}
	return s.addLocked(item), nil
}

// Edit applies opts to the todo with the given id. It returns
// ErrTodoNotFound when the id is unknown, ValidationErrors for invalid
// fields, and a duplicate error when another todo has the new title.
func (s *Store) Edit(id int, opts UpdateOptions) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, ErrTodoNotFound
	}

	item := s.todos[i]
	if opts.Title != nil {
		item.Title = *opts.Title
	}
	if opts.Priority != nil {
		item.Priority = *opts.Priority
	}
	if opts.Status != nil {
		item.Status = *opts.Status
	}
	if err := ValidateTodo(item); err != nil {
		return Todo{}, err
	}
	if s.existsLocked(item.Title, &id) {
		return Todo{}, DuplicateTitleError()
	}

	s.todos[i] = item
	return item, nil
}
