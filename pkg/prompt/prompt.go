// Package prompt asks for todo input on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/todo/pkg/duedate"
	"tableflip.dev/todo/pkg/lists"
	"tableflip.dev/todo/pkg/store"
)

// Prompter reads answers from In and draws on Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

// choice is one row of the list picker.
type choice struct {
	lists.Entry
	Name   string
	Header bool
}

// choices flattens both sections into picker rows, headers first.
func choices(l lists.Lists) []choice {
	var out []choice
	for _, scope := range lists.Scopes() {
		section := l.Section(scope)
		out = append(out, choice{Entry: section.Header, Name: section.Header.Date, Header: true})
		for _, e := range section.Entries {
			out = append(out, choice{Entry: e, Name: duedate.Shorten(e.Date)})
		}
	}
	return out
}

// PickList lets the user choose a list. cursor is the row to start on.
func (p Prompter) PickList(l lists.Lists, cursor int) (lists.Entry, error) {
	items := choices(l)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ if .Header }}{{ .Name | bold }}{{ else }}  {{ .Name | bold }}{{ end }} {{ .Count | green }}",
		Inactive: "   {{ if .Header }}{{ .Name }}{{ else }}  {{ .Name }}{{ end }} {{ .Count | cyan }}",
		Selected: "{{ .Name | bold }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(items[index].Name), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     "Lists",
		Items:     items,
		Templates: templates,
		Size:      10,
		CursorPos: cursor,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	i, _, err := sel.Run()
	if err != nil {
		return lists.Entry{}, fmt.Errorf("prompt failed: %w", err)
	}
	return items[i].Entry, nil
}

// Text asks for one line. An empty answer falls back to def; required
// rejects an empty result.
func (p Prompter) Text(label, def string, required bool) (string, error) {
	validate := func(input string) error {
		if required && strings.TrimSpace(input) == "" && def == "" {
			return errors.New("empty")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	pr := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	result, err := pr.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if strings.TrimSpace(result) == "" {
		result = def
	}
	return result, nil
}

// Fields asks for every todo form field, starting from f.
func (p Prompter) Fields(f store.Fields) (store.Fields, error) {
	var err error
	if f.Title, err = p.Text("Title", f.Title, true); err != nil {
		return f, err
	}
	due := ""
	if f.Month != "" && f.Year != "" {
		due = f.Month + "/" + f.Year
	}
	if due, err = p.Text("Due (month/year)", due, false); err != nil {
		return f, err
	}
	if due = strings.TrimSpace(due); due != "" {
		month, year, ok := strings.Cut(due, "/")
		if !ok {
			return f, fmt.Errorf("due %q: expected month/year", due)
		}
		f.Month, f.Year = month, year
	}
	if f.Description, err = p.Text("Description", f.Description, false); err != nil {
		return f, err
	}
	return f, nil
}
