package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/todo"
)

var (
	// ErrNotFound is returned when no todo has the requested id.
	ErrNotFound = errors.New("store: todo not found")
	// ErrInvalid is returned when submitted fields are rejected.
	ErrInvalid = errors.New("store: invalid todo")
)

// Persistence defines the persistence contract for todos. Every mutation
// returns the record as stored.
type Persistence interface {
	List(ctx context.Context) ([]*todo.Todo, error)
	Create(ctx context.Context, f Fields) (*todo.Todo, error)
	Read(ctx context.Context, id int) (*todo.Todo, error)
	Update(ctx context.Context, id int, f Fields) (*todo.Todo, error)
	Delete(ctx context.Context, id int) error
	ToggleCompleted(ctx context.Context, id int) (*todo.Todo, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Fields are the editable values of a todo, as submitted by the todo form.
type Fields struct {
	Title       string `json:"title" yaml:"title"`
	Day         string `json:"day,omitempty" yaml:"day,omitempty"`
	Month       string `json:"month,omitempty" yaml:"month,omitempty"`
	Year        string `json:"year,omitempty" yaml:"year,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// FieldsOf returns the editable values of t.
func FieldsOf(t *todo.Todo) Fields {
	return Fields{
		Title:       t.Title,
		Day:         t.Day,
		Month:       t.Month,
		Year:        t.Year,
		Description: t.Description,
	}
}

// Normalize trims surrounding whitespace from every field and drops leading
// zeros from the month so "01" and "1" land in the same list.
func (f Fields) Normalize() Fields {
	return Fields{
		Title:       strings.TrimSpace(f.Title),
		Day:         strings.TrimSpace(f.Day),
		Month:       trimZeros(strings.TrimSpace(f.Month)),
		Year:        strings.TrimSpace(f.Year),
		Description: strings.TrimSpace(f.Description),
	}
}

// trimZeros strips leading zeros, keeping one digit so "0" stays invalid.
func trimZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}

// Validate rejects a blank title and due dates outside the "M/Y" grammar.
// A month without a year (or the reverse) is allowed and means no due date.
func (f Fields) Validate() error {
	f = f.Normalize()
	if f.Title == "" {
		return fmt.Errorf("%w: title required", ErrInvalid)
	}
	if err := duedate.Valid(duedate.Label(f.Month, f.Year)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Apply copies the fields onto t, keeping its id and completed flag.
func (f Fields) Apply(t *todo.Todo) {
	f = f.Normalize()
	t.Title = f.Title
	t.Day = f.Day
	t.Month = f.Month
	t.Year = f.Year
	t.Description = f.Description
}

// Open returns the Persistence selected by cfg.Driver(). A nil cfg loads the
// config from the environment.
func Open(ctx context.Context, cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Driver() {
	case DriverDiskv, "":
		return Load(cfg)
	case DriverSQLite:
		db, err := OpenSQLite(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("store: driver %q is not a local store", cfg.Driver())
	}
}
