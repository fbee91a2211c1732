package add

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todo"
)

func TestAddPrintsStoredTodo(t *testing.T) {
	p, err := store.Load(store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	a := Add{
		Fields:  store.Fields{Title: "buy milk", Month: "1", Year: "2024"},
		Service: app.NewService(p),
		Printer: printers.Printer{Format: printers.FormatJSON, Out: &buf},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := todo.Todo{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.ID != 1 || got.Title != "buy milk" || got.DueDate() != "1/2024" {
		t.Fatalf("unexpected todo %+v", got)
	}

	all, err := p.List(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one stored todo, got %d, %v", len(all), err)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	p, err := store.Load(store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := Add{
		Service: app.NewService(p),
		Printer: printers.Printer{Format: printers.FormatJSON, Out: &bytes.Buffer{}},
	}
	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected error for blank title")
	}
}
