package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todo"
)

type memoryPersistence struct {
	mu      sync.Mutex
	counter int
	todos   map[int]*todo.Todo
	fail    error
	toggles int
}

func newMemoryPersistence(todos ...*todo.Todo) *memoryPersistence {
	mp := &memoryPersistence{todos: make(map[int]*todo.Todo)}
	for _, t := range todos {
		if t == nil {
			continue
		}
		if t.ID == 0 {
			mp.counter++
			t.ID = mp.counter
		}
		if t.ID > mp.counter {
			mp.counter = t.ID
		}
		cp := *t
		mp.todos[t.ID] = &cp
	}
	return mp
}

func (m *memoryPersistence) List(context.Context) ([]*todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]*todo.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryPersistence) Create(_ context.Context, f store.Fields) (*todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	m.counter++
	t := &todo.Todo{ID: m.counter}
	f.Apply(t)
	cp := *t
	m.todos[t.ID] = &cp
	return t, nil
}

func (m *memoryPersistence) Read(_ context.Context, id int) (*todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memoryPersistence) Update(_ context.Context, id int, f store.Fields) (*todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	t, ok := m.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	f.Apply(t)
	cp := *t
	return &cp, nil
}

func (m *memoryPersistence) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.todos[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

func (m *memoryPersistence) ToggleCompleted(_ context.Context, id int) (*todo.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	t, ok := m.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	m.toggles++
	t.Completed = !t.Completed
	cp := *t
	return &cp, nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func scenario() *memoryPersistence {
	return newMemoryPersistence(
		&todo.Todo{ID: 1, Title: "a", Month: "1", Year: "2024"},
		&todo.Todo{ID: 2, Title: "b", Month: "1", Year: "2024", Completed: true},
		&todo.Todo{ID: 3, Title: "c", Month: "2", Year: "2024"},
	)
}

func visibleIDs(st engine.State) []int {
	out := []int{}
	for _, t := range st.Visible.Todos {
		out = append(out, t.ID)
	}
	return out
}

func TestLoadThenSelect(t *testing.T) {
	svc := NewService(scenario())
	ctx := context.Background()

	st, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Selection.Active() {
		t.Fatalf("expected nothing selected after load")
	}
	if st.Lists.All.Total() != 3 {
		t.Fatalf("expected 3 todos in lists, got %d", st.Lists.All.Total())
	}

	st = svc.Select(lists.ScopeAll, "1/2024")
	if got := visibleIDs(st); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("visible = %v, want [1 2]", got)
	}
}

func TestCreateActivatesAllTodos(t *testing.T) {
	svc := NewService(scenario(), engine.WithSelection(lists.ScopeAll, "2/2024"))
	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	created, st, err := svc.Create(ctx, store.Fields{Title: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 4 {
		t.Fatalf("expected id 4, got %d", created.ID)
	}
	if !st.Selection.Is(lists.ScopeAll, duedate.AllTodos) {
		t.Fatalf("expected All Todos selected, got %s", st.Selection)
	}
	if st.Visible.Count != 4 {
		t.Fatalf("expected 4 visible, got %d", st.Visible.Count)
	}
}

func TestFailedMutationLeavesStateAlone(t *testing.T) {
	mp := scenario()
	svc := NewService(mp, engine.WithSelection(lists.ScopeAll, "2/2024"))
	ctx := context.Background()
	before, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	boom := errors.New("disk full")
	mp.fail = boom
	if _, _, err := svc.Create(ctx, store.Fields{Title: "d"}); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.Delete(ctx, 3); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	after := svc.State()
	if !after.Selection.Is(lists.ScopeAll, "2/2024") {
		t.Fatalf("selection changed to %s", after.Selection)
	}
	if after.Lists.All.Total() != before.Lists.All.Total() {
		t.Fatalf("lists changed after failed mutations")
	}
}

func TestDeleteLastTodoClearsSelection(t *testing.T) {
	svc := NewService(scenario(), engine.WithSelection(lists.ScopeAll, "2/2024"))
	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	st, err := svc.Delete(ctx, 3)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if st.Selection.Active() {
		t.Fatalf("expected none, got %s", st.Selection)
	}
}

func TestToggleReconcilesCompletedList(t *testing.T) {
	svc := NewService(scenario(), engine.WithSelection(lists.ScopeCompleted, "1/2024"))
	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, st, err := svc.Toggle(ctx, 2)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got.Completed {
		t.Fatalf("expected todo 2 to be incomplete")
	}
	if st.Selection.Active() {
		t.Fatalf("expected none, got %s", st.Selection)
	}
	if len(st.Lists.Completed.Entries) != 0 {
		t.Fatalf("expected completed lists to be empty, got %+v", st.Lists.Completed.Entries)
	}
}

func TestCompleteOnlyTogglesOpenTodos(t *testing.T) {
	mp := scenario()
	svc := NewService(mp)
	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	got, _, err := svc.Complete(ctx, 2)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !got.Completed || mp.toggles != 0 {
		t.Fatalf("completed todo should be left alone, toggles=%d", mp.toggles)
	}

	got, st, err := svc.Complete(ctx, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !got.Completed || mp.toggles != 1 {
		t.Fatalf("expected one toggle, got %d", mp.toggles)
	}
	if st.Lists.Completed.Total() != 2 {
		t.Fatalf("expected 2 completed, got %d", st.Lists.Completed.Total())
	}
}

func TestUnsavedTodoIsRefused(t *testing.T) {
	svc := NewService(scenario())
	ctx := context.Background()
	if _, _, err := svc.Complete(ctx, 0); !errors.Is(err, ErrNotSaved) {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
	if _, _, err := svc.Toggle(ctx, 0); !errors.Is(err, ErrNotSaved) {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
	if _, _, err := svc.Update(ctx, -1, store.Fields{Title: "x"}); !errors.Is(err, ErrNotSaved) {
		t.Fatalf("expected ErrNotSaved, got %v", err)
	}
}

func TestUpdateMovesTodo(t *testing.T) {
	svc := NewService(scenario(), engine.WithSelection(lists.ScopeAll, "2/2024"))
	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, st, err := svc.Update(ctx, 1, store.Fields{Title: "a", Month: "2", Year: "2024"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DueDate() != "2/2024" {
		t.Fatalf("due date = %q", got.DueDate())
	}
	if ids := visibleIDs(st); len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("visible = %v, want [1 3]", ids)
	}
	if _, err := svc.Delete(ctx, 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestZeroServiceRequiresPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Load(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
	if svc.State().Selection.Active() {
		t.Fatalf("zero service should have nothing selected")
	}
}
