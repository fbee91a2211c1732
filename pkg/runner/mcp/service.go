// Package mcp provides the Model Context Protocol server integration for todo.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todo"
)

// Service coordinates the todo operations shared by the MCP server.
type Service struct {
	App *app.Service
}

// TodoDTO is a transport-friendly projection of a todo.
type TodoDTO struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Day         string `json:"day,omitempty"`
	Month       string `json:"month,omitempty"`
	Year        string `json:"year,omitempty"`
	DueDate     string `json:"dueDate"`
	DueLabel    string `json:"dueLabel"`
	Completed   bool   `json:"completed"`
}

// ListDTO is one navigable list.
type ListDTO struct {
	Scope  string `json:"scope"`
	Date   string `json:"date"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Header bool   `json:"header"`
}

// ListViewDTO is the result of opening a list.
type ListViewDTO struct {
	Active *ListDTO  `json:"active"`
	Count  int       `json:"count"`
	Todos  []TodoDTO `json:"todos"`
	Lists  []ListDTO `json:"lists"`
}

// NewService builds a service over p.
func NewService(p store.Persistence) *Service {
	return &Service{App: app.NewService(p)}
}

func (s *Service) load(ctx context.Context) (engine.State, error) {
	if s.App == nil {
		return engine.State{}, errors.New("persistence is not configured")
	}
	return s.App.Load(ctx)
}

// Lists returns every list in display order, headers first.
func (s *Service) Lists(ctx context.Context) ([]ListDTO, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return toListDTOs(st.Lists), nil
}

// ShowList derives the todos of one list without changing the shared
// selection.
func (s *Service) ShowList(ctx context.Context, scopeName, date string) (ListViewDTO, error) {
	scope, err := lists.ParseScope(scopeName)
	if err != nil {
		return ListViewDTO{}, err
	}
	if strings.TrimSpace(date) == "" {
		date = scope.Header()
	}
	st, err := s.load(ctx)
	if err != nil {
		return ListViewDTO{}, err
	}
	view := engine.Derive(st.Records, selection.Select(scope, date))
	out := ListViewDTO{
		Count: view.Visible.Count,
		Todos: toTodoDTOs(view.Visible.Todos),
		Lists: toListDTOs(view.Lists),
	}
	if e, ok := view.Lists.Section(scope).Find(date); ok {
		dto := toListDTO(e, duedate.IsPseudo(e.Date))
		out.Active = &dto
	}
	return out, nil
}

// Todo returns the todo with id.
func (s *Service) Todo(ctx context.Context, id int) (TodoDTO, error) {
	if _, err := s.load(ctx); err != nil {
		return TodoDTO{}, err
	}
	t, ok := s.App.Todo(id)
	if !ok {
		return TodoDTO{}, fmt.Errorf("todo %d: %w", id, store.ErrNotFound)
	}
	return toTodoDTO(t), nil
}

// Search returns todos whose title or description contains query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]TodoDTO, error) {
	st, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]TodoDTO, 0)
	for _, t := range st.Records {
		text := strings.ToLower(t.Title + " " + t.Description)
		if query != "" && !strings.Contains(text, query) {
			continue
		}
		out = append(out, toTodoDTO(t))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Create stores a new todo.
func (s *Service) Create(ctx context.Context, f store.Fields) (TodoDTO, error) {
	if _, err := s.load(ctx); err != nil {
		return TodoDTO{}, err
	}
	t, _, err := s.App.Create(ctx, f)
	if err != nil {
		return TodoDTO{}, err
	}
	return toTodoDTO(t), nil
}

// Update overlays the non-empty values of patch onto the todo with id.
func (s *Service) Update(ctx context.Context, id int, patch store.Fields, clearDue bool) (TodoDTO, error) {
	current, err := s.Todo(ctx, id)
	if err != nil {
		return TodoDTO{}, err
	}
	f := store.Fields{
		Title:       current.Title,
		Day:         current.Day,
		Month:       current.Month,
		Year:        current.Year,
		Description: current.Description,
	}
	if patch.Title != "" {
		f.Title = patch.Title
	}
	if patch.Description != "" {
		f.Description = patch.Description
	}
	if patch.Day != "" {
		f.Day = patch.Day
	}
	if patch.Month != "" {
		f.Month = patch.Month
	}
	if patch.Year != "" {
		f.Year = patch.Year
	}
	if clearDue {
		f.Day, f.Month, f.Year = "", "", ""
	}
	t, _, err := s.App.Update(ctx, id, f)
	if err != nil {
		return TodoDTO{}, err
	}
	return toTodoDTO(t), nil
}

// Toggle flips the completed flag of the todo with id.
func (s *Service) Toggle(ctx context.Context, id int) (TodoDTO, error) {
	if _, err := s.load(ctx); err != nil {
		return TodoDTO{}, err
	}
	t, _, err := s.App.Toggle(ctx, id)
	if err != nil {
		return TodoDTO{}, err
	}
	return toTodoDTO(t), nil
}

// Complete marks the todo with id as completed.
func (s *Service) Complete(ctx context.Context, id int) (TodoDTO, error) {
	if _, err := s.load(ctx); err != nil {
		return TodoDTO{}, err
	}
	t, _, err := s.App.Complete(ctx, id)
	if err != nil {
		return TodoDTO{}, err
	}
	return toTodoDTO(t), nil
}

// Delete removes the todo with id.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.load(ctx); err != nil {
		return err
	}
	_, err := s.App.Delete(ctx, id)
	return err
}

func toTodoDTO(t *todo.Todo) TodoDTO {
	due := t.DueDate()
	return TodoDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Day:         t.Day,
		Month:       t.Month,
		Year:        t.Year,
		DueDate:     due,
		DueLabel:    duedate.Shorten(due),
		Completed:   t.Completed,
	}
}

func toTodoDTOs(todos []*todo.Todo) []TodoDTO {
	out := make([]TodoDTO, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoDTO(t))
	}
	return out
}

func toListDTO(e lists.Entry, header bool) ListDTO {
	return ListDTO{
		Scope:  string(e.Scope),
		Date:   e.Date,
		Label:  duedate.Shorten(e.Date),
		Count:  e.Count,
		Header: header,
	}
}

func toListDTOs(l lists.Lists) []ListDTO {
	var out []ListDTO
	for _, scope := range lists.Scopes() {
		section := l.Section(scope)
		out = append(out, toListDTO(section.Header, true))
		for _, e := range section.Entries {
			out = append(out, toListDTO(e, false))
		}
	}
	return out
}
