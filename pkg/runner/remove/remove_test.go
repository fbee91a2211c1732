package remove

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
)

func TestRemoveDropsEmptiedList(t *testing.T) {
	ctx := context.Background()
	p, err := store.Load(store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := p.Create(ctx, store.Fields{Title: "call mom", Month: "2", Year: "2024"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	svc := app.NewService(p)
	r := Remove{
		ID:      1,
		Scope:   lists.ScopeAll,
		Date:    "2/2024",
		Service: svc,
		Printer: printers.Printer{Format: printers.FormatJSON, Out: &bytes.Buffer{}},
	}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	st := svc.State()
	if st.Selection.Active() {
		t.Fatalf("expected no selection, got %s", st.Selection)
	}
	if len(st.Lists.All.Entries) != 0 {
		t.Fatalf("expected no date lists, got %+v", st.Lists.All.Entries)
	}
	if _, err := p.Read(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
