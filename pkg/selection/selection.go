// Package selection tracks which list is active across list rebuilds.
package selection

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/todo/pkg/lists"
)

// Selection is either none or an active (scope, date) pair. The zero value is
// none.
type Selection struct {
	active bool
	scope  lists.Scope
	date   string
}

// None returns the empty selection.
func None() Selection {
	return Selection{}
}

// Select activates the list labelled date in scope. It does not check that
// the list exists.
func Select(scope lists.Scope, date string) Selection {
	return Selection{active: true, scope: scope, date: date}
}

// Active reports whether a list is selected.
func (s Selection) Active() bool {
	return s.active
}

// Scope returns the scope of the active list, or "" when none is active.
func (s Selection) Scope() lists.Scope {
	return s.scope
}

// Date returns the label of the active list, or "" when none is active.
func (s Selection) Date() string {
	return s.date
}

// Is reports whether s selects the list labelled date in scope.
func (s Selection) Is(scope lists.Scope, date string) bool {
	return s.active && s.scope == scope && s.date == date
}

func (s Selection) String() string {
	if !s.active {
		return "none"
	}
	return fmt.Sprintf("%s/%s", s.scope, s.date)
}

type wire struct {
	Scope lists.Scope `json:"scope" yaml:"scope"`
	Date  string      `json:"date" yaml:"date"`
}

// MarshalJSON renders none as null.
func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.active {
		return []byte("null"), nil
	}
	return json.Marshal(wire{Scope: s.scope, Date: s.date})
}

// UnmarshalJSON accepts null or {"scope", "date"}.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var w *wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w == nil {
		*s = None()
		return nil
	}
	*s = Select(w.Scope, w.Date)
	return nil
}

// MarshalYAML renders none as null.
func (s Selection) MarshalYAML() (interface{}, error) {
	if !s.active {
		return nil, nil
	}
	return wire{Scope: s.scope, Date: s.date}, nil
}

// Reconcile re-validates s against freshly built lists. An active selection
// survives when its section still holds an entry with the same label;
// otherwise the result is none. The search never leaves the selection's own
// section.
//
// Lists are matched by their label text within the section. Two different
// buckets rendering the same label would be indistinguishable.
func Reconcile(s Selection, l lists.Lists) Selection {
	if !s.active {
		return s
	}
	if _, ok := l.Section(s.scope).Find(s.date); ok {
		return s
	}
	return None()
}
