package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"tableflip.dev/todo/pkg/todo"
)

const sqliteFile = "todos.db"

// SQLite is a Persistence backed by a sqlite database under the base path.
type SQLite struct {
	db       *sql.DB
	basePath string
}

var _ Persistence = (*SQLite)(nil)

// OpenSQLite opens (and migrates) the todo database under cfg.BasePath().
func OpenSQLite(ctx context.Context, cfg Config) (*SQLite, error) {
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("store: pragma failed", "pragma", pragma, "error", err)
			closeDB(db)
			return nil, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("store: database ping failed: %w", err)
	}

	// sqlite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("store: run migrations: %w", err)
	}

	return &SQLite{db: db, basePath: basePath}, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("store: error closing db", "error", err)
	}
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			day TEXT NOT NULL DEFAULT '',
			month TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT 0
		)
	`)
	return err
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const selectTodo = `SELECT id, title, day, month, year, description, completed FROM todos`

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*todo.Todo, error) {
	t := &todo.Todo{}
	if err := row.Scan(&t.ID, &t.Title, &t.Day, &t.Month, &t.Year, &t.Description, &t.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *SQLite) List(ctx context.Context) ([]*todo.Todo, error) {
	rows, err := s.db.QueryContext(ctx, selectTodo+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list todos: %w", err)
	}
	defer rows.Close()

	all := make([]*todo.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan todo: %w", err)
		}
		all = append(all, t)
	}
	return all, rows.Err()
}

func (s *SQLite) Create(ctx context.Context, f Fields) (*todo.Todo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f = f.Normalize()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (title, day, month, year, description) VALUES (?, ?, ?, ?, ?)`,
		f.Title, f.Day, f.Month, f.Year, f.Description)
	if err != nil {
		return nil, fmt.Errorf("store: insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("store: insert todo: %w", err)
	}
	return s.Read(ctx, int(id))
}

func (s *SQLite) Read(ctx context.Context, id int) (*todo.Todo, error) {
	return scanTodo(s.db.QueryRowContext(ctx, selectTodo+` WHERE id = ?`, id))
}

func (s *SQLite) Update(ctx context.Context, id int, f Fields) (*todo.Todo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f = f.Normalize()
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, day = ?, month = ?, year = ?, description = ? WHERE id = ?`,
		f.Title, f.Day, f.Month, f.Year, f.Description, id)
	if err != nil {
		return nil, fmt.Errorf("store: update todo %d: %w", id, err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.Read(ctx, id)
}

func (s *SQLite) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete todo %d: %w", id, err)
	}
	return requireRow(res)
}

func (s *SQLite) ToggleCompleted(ctx context.Context, id int) (*todo.Todo, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET completed = NOT completed WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("store: toggle todo %d: %w", id, err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.Read(ctx, id)
}

// Watch reports every change to the database files as EventInvalidated.
func (s *SQLite) Watch(ctx context.Context) (<-chan Event, error) {
	return watchTree(ctx, s.basePath, func(string) Event {
		return Event{Type: EventInvalidated}
	})
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
