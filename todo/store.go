package todo

import (
	"sort"
	"sync"
)

// Store holds the todo collection for a single process. Each Store owns its
// items and id counter; two stores never share state.
//
// Add and Update do not enforce title uniqueness; callers check
// ExistsWithName first. Create and Edit validate input and check uniqueness
// under the same lock as the write.
type Store struct {
	mu     sync.RWMutex
	todos  []Todo
	nextID int
}

// NameCheckOptions configures ExistsWithName.
type NameCheckOptions struct {
	// ExcludeID skips the todo with this id, so an item being edited does not
	// collide with its own title. Nil excludes nothing.
	ExcludeID *int
}

// SeedTodos returns the items every seeded store starts with.
func SeedTodos() []Todo {
	return []Todo{
		{ID: 1, Title: "Design API", Priority: 1, Status: StatusCompleted},
		{ID: 2, Title: "Implement Services", Priority: 2, Status: StatusInProgress},
		{ID: 3, Title: "Write Unit Tests", Priority: 3, Status: StatusNotStarted},
	}
}

// NewStore returns a store seeded with SeedTodos. The next assigned id is 4.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// NewEmptyStore returns a store with no items. The first assigned id is 1.
func NewEmptyStore() *Store {
	return &Store{nextID: 1}
}

// Reset discards all items and re-seeds the store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = SeedTodos()
	s.nextID = len(s.todos) + 1
}

// All returns every todo sorted by ascending priority. Todos with equal
// priority keep their insertion order.
func (s *Store) All() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Todo, len(s.todos))
	copy(result, s.todos)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result
}

// Get returns the todo with the given id.
func (s *Store) Get(id int) (Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, false
	}
	return s.todos[i], true
}

// ExistsWithName reports whether another todo already has a title that
// normalizes to the same key as title. A blank title never exists.
func (s *Store) ExistsWithName(title string, opts NameCheckOptions) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existsLocked(title, opts.ExcludeID)
}

// existsLocked must be called with s.mu held.
func (s *Store) existsLocked(title string, excludeID *int) bool {
	key := NormalizeTitle(title)
	if key == "" {
		return false
	}
	for _, t := range s.todos {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if NormalizeTitle(t.Title) == key {
			return true
		}
	}
	return false
}

// Add stores a new todo and returns it with its assigned id. Any id on item
// is ignored. An empty status defaults to StatusNotStarted.
func (s *Store) Add(item Todo) Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(item)
}

// addLocked must be called with s.mu held.
func (s *Store) addLocked(item Todo) Todo {
	item.ID = s.nextID
	s.nextID++
	if item.Status == "" {
		item.Status = StatusNotStarted
	}
	s.todos = append(s.todos, item)
	return item
}

// Update overwrites the title, priority, and status of the todo with
// item.ID. It returns false and changes nothing if no such todo exists.
func (s *Store) Update(item Todo) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(item.ID)
	if i < 0 {
		return Todo{}, false
	}

	existing := &s.todos[i]
	existing.Title = item.Title
	existing.Priority = item.Priority
	existing.Status = item.Status
	return *existing, true
}

// DeleteCompleted removes the todo with the given id if it is completed.
// It returns false when the todo does not exist or is not completed.
func (s *Store) DeleteCompleted(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 || !s.todos[i].IsCompleted() {
		return false
	}

	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return true
}

// Len returns the number of stored todos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
