package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/todo"
)

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Encode writes v to w as JSON or YAML.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Printer renders command results in the selected format.
type Printer struct {
	Format string
	ShowID bool
	Out    io.Writer
}

func (p Printer) pretty() *PrettyPrint {
	return &PrettyPrint{ShowID: p.ShowID, Out: p.Out}
}

func (p Printer) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return color.Output
}

// State renders a derivation.
func (p Printer) State(st engine.State) error {
	switch p.Format {
	case "", FormatPretty:
		p.pretty().State(st)
		return nil
	default:
		return Encode(p.out(), p.Format, st)
	}
}

// Changed renders the todo a command acted on. Pretty output shows the
// resulting lists instead.
func (p Printer) Changed(t *todo.Todo, st engine.State) error {
	switch p.Format {
	case "", FormatPretty:
		p.pretty().State(st)
		return nil
	default:
		return Encode(p.out(), p.Format, t)
	}
}

// Lists renders only the sections of a derivation.
func (p Printer) Lists(st engine.State) error {
	switch p.Format {
	case "", FormatPretty:
		p.pretty().Lists(st.Lists, st.Selection)
		return nil
	default:
		return Encode(p.out(), p.Format, st.Lists)
	}
}
