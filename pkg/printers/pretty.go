package printers

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/selection"
	"tableflip.dev/todo/pkg/todo"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

const idWidth = 6

var (
	spacing = strings.Repeat(" ", idWidth)
)

// Plain reports whether w should get uncolored output.
func Plain(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), duedate.Shorten(title))
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " todo")
	default:
		_, _ = c.Fprintln(pp.out(), " todos")
	}
}

func (pp *PrettyPrint) Todos(todos ...*todo.Todo) {
	if len(todos) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Faint)

	for _, td := range todos {
		if pp.ShowID {
			id := strconv.Itoa(td.ID)
			_, _ = y.Fprint(pp.out(), id)
			if pad := idWidth - len(id); pad > 0 {
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
			}
		}
		check := "[ ]"
		title := t
		if td.Completed {
			check = "[x]"
			title = done
		}
		_, _ = t.Fprintf(pp.out(), "%s ", check)
		_, _ = title.Fprint(pp.out(), td.Title)
		_, _ = d.Fprintf(pp.out(), " - %s\n", duedate.Shorten(td.DueDate()))
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Lists renders both sections as a table, marking the active entry.
func (pp *PrettyPrint) Lists(l lists.Lists, sel selection.Selection) {
	bold := color.New(color.Bold)
	active := color.New(color.FgHiGreen, color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, scope := range lists.Scopes() {
		section := l.Section(scope)
		entries := append([]lists.Entry{section.Header}, section.Entries...)
		for i, e := range entries {
			name := duedate.Shorten(e.Date)
			marker := " "
			count := faint.Sprint(e.Count)
			switch {
			case sel.Is(e.Scope, e.Date):
				marker = active.Sprint(">")
				name = active.Sprint(name)
			case i == 0:
				name = bold.Sprint(name)
			default:
				name = "  " + name
			}
			tbl.AddRow(marker, name, count)
		}
		tbl.AddRow("", "", "")
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// State renders the lists followed by the visible todos.
func (pp *PrettyPrint) State(st engine.State) {
	pp.Lists(st.Lists, st.Selection)
	if !st.Selection.Active() {
		return
	}
	pp.TitleWithCount(st.Heading(), st.Visible.Count)
	pp.Todos(st.Visible.Todos...)
}
