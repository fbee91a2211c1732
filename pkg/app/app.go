package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todo"
)

// Service provides high-level operations over todos. It applies each mutation
// to persistence and feeds the stored result to the engine so UIs and CLIs
// share one derivation.
type Service struct {
	Persistence store.Persistence

	mu     sync.Mutex
	engine *engine.Engine
}

var (
	// ErrNotSaved is returned when acting on a todo the store has not
	// assigned an id yet.
	ErrNotSaved = errors.New("app: todo has not been created yet")

	errNoPersistence = errors.New("app: no persistence configured")
)

// NewService returns a Service over p whose engine starts with opts.
func NewService(p store.Persistence, opts ...engine.Option) *Service {
	return &Service{Persistence: p, engine: engine.New(opts...)}
}

func (s *Service) ready() error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if s.engine == nil {
		s.engine = engine.New()
	}
	return nil
}

// Load replaces the engine's records with everything in persistence.
func (s *Service) Load(ctx context.Context) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return engine.State{}, err
	}
	todos, err := s.Persistence.List(ctx)
	if err != nil {
		return s.engine.State(), fmt.Errorf("app: list todos: %w", err)
	}
	return s.engine.Load(todos), nil
}

// State returns the latest derivation.
func (s *Service) State() engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = engine.New()
	}
	return s.engine.State()
}

// Todo returns the loaded todo with id.
func (s *Service) Todo(id int) (*todo.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil, false
	}
	return s.engine.Todo(id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Create stores a new todo and activates the All Todos list.
func (s *Service) Create(ctx context.Context, f store.Fields) (*todo.Todo, engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, engine.State{}, err
	}
	t, err := s.Persistence.Create(ctx, f)
	if err != nil {
		return nil, s.engine.State(), err
	}
	slog.Debug("app: todo created", "id", t.ID, "due", t.DueDate())
	return t, s.engine.Created(t), nil
}

// Update replaces the editable fields of the todo with id.
func (s *Service) Update(ctx context.Context, id int, f store.Fields) (*todo.Todo, engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, engine.State{}, err
	}
	if id <= 0 {
		return nil, s.engine.State(), ErrNotSaved
	}
	t, err := s.Persistence.Update(ctx, id, f)
	if err != nil {
		return nil, s.engine.State(), err
	}
	slog.Debug("app: todo updated", "id", t.ID, "due", t.DueDate())
	return t, s.engine.Updated(t), nil
}

// Delete removes the todo with id.
func (s *Service) Delete(ctx context.Context, id int) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return engine.State{}, err
	}
	if id <= 0 {
		return s.engine.State(), ErrNotSaved
	}
	if err := s.Persistence.Delete(ctx, id); err != nil {
		return s.engine.State(), err
	}
	slog.Debug("app: todo deleted", "id", id)
	return s.engine.Deleted(id), nil
}

// Toggle flips the completed flag of the todo with id.
func (s *Service) Toggle(ctx context.Context, id int) (*todo.Todo, engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, engine.State{}, err
	}
	if id <= 0 {
		return nil, s.engine.State(), ErrNotSaved
	}
	t, err := s.Persistence.ToggleCompleted(ctx, id)
	if err != nil {
		return nil, s.engine.State(), err
	}
	slog.Debug("app: todo toggled", "id", t.ID, "completed", t.Completed)
	return t, s.engine.Toggled(t), nil
}

// Complete marks the todo with id as completed. A todo that is already
// completed is left alone.
func (s *Service) Complete(ctx context.Context, id int) (*todo.Todo, engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, engine.State{}, err
	}
	if id <= 0 {
		return nil, s.engine.State(), ErrNotSaved
	}
	t, err := s.Persistence.Read(ctx, id)
	if err != nil {
		return nil, s.engine.State(), err
	}
	if t.Completed {
		return t, s.engine.Updated(t), nil
	}
	t, err = s.Persistence.ToggleCompleted(ctx, id)
	if err != nil {
		return nil, s.engine.State(), err
	}
	slog.Debug("app: todo completed", "id", t.ID)
	return t, s.engine.Toggled(t), nil
}

// Select activates the list labelled date in scope.
func (s *Service) Select(scope lists.Scope, date string) engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = engine.New()
	}
	return s.engine.Select(scope, date)
}

// Deselect clears the active list.
func (s *Service) Deselect() engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = engine.New()
	}
	return s.engine.Deselect()
}
