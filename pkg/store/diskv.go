package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/todo/pkg/todo"
)

const (
	todosBucket = "todos"
	metaBucket  = "meta"
	nextIDKey   = metaBucket + "-nextid"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes write the same tree; reads must hit disk.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*todo.Todo, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t := &todo.Todo{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	// The file name is authoritative.
	if id, ok := idFromKey(key); ok {
		t.ID = id
	}
	return t, nil
}

func (p *persistence) write(t *todo.Todo) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(t.ID), data)
}

func (p *persistence) List(ctx context.Context) ([]*todo.Todo, error) {
	all := make([]*todo.Todo, 0)
	for key := range p.d.KeysPrefix(todosBucket+"-", ctx.Done()) {
		t, err := p.read(key)
		if err != nil {
			slog.Warn("store: skipping unreadable todo", "key", key, "error", err)
			continue
		}
		all = append(all, t)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortTodos(all)
	return all, nil
}

func (p *persistence) Create(ctx context.Context, f Fields) (*todo.Todo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.nextID()
	if err != nil {
		return nil, fmt.Errorf("store: allocate id: %w", err)
	}
	t := &todo.Todo{ID: id}
	f.Apply(t)
	if err := p.write(t); err != nil {
		return nil, fmt.Errorf("store: write todo %d: %w", id, err)
	}
	return t, nil
}

func (p *persistence) Read(ctx context.Context, id int) (*todo.Todo, error) {
	return p.read(toKey(id))
}

func (p *persistence) Update(ctx context.Context, id int, f Fields) (*todo.Todo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.read(toKey(id))
	if err != nil {
		return nil, err
	}
	f.Apply(t)
	if err := p.write(t); err != nil {
		return nil, fmt.Errorf("store: write todo %d: %w", id, err)
	}
	return t, nil
}

func (p *persistence) Delete(ctx context.Context, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := toKey(id)
	if !p.d.Has(key) {
		return ErrNotFound
	}
	return p.d.Erase(key)
}

func (p *persistence) ToggleCompleted(ctx context.Context, id int) (*todo.Todo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, err := p.read(toKey(id))
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := p.write(t); err != nil {
		return nil, fmt.Errorf("store: write todo %d: %w", id, err)
	}
	return t, nil
}

// nextID hands out ascending ids. Callers hold p.mu.
func (p *persistence) nextID() (int, error) {
	next := 1
	if p.d.Has(nextIDKey) {
		raw, err := p.d.Read(nextIDKey)
		if err != nil {
			return 0, err
		}
		if next, err = strconv.Atoi(strings.TrimSpace(string(raw))); err != nil {
			return 0, err
		}
	}
	if err := p.d.Write(nextIDKey, []byte(strconv.Itoa(next+1))); err != nil {
		return 0, err
	}
	return next, nil
}

func sortTodos(todos []*todo.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].ID < todos[j].ID
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `todos-id`
func toKey(id int) string {
	return fmt.Sprintf("%s-%d", todosBucket, id)
}

func idFromKey(key string) (int, bool) {
	pk := keyToPathTransform(key)
	if len(pk.Path) != 1 || pk.Path[0] != todosBucket {
		return 0, false
	}
	id, err := strconv.Atoi(pk.FileName)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
