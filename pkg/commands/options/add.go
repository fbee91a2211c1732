package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/store"
)

// TodoOptions holds the todo form fields.
type TodoOptions struct {
	Title       string
	Day         string
	Month       string
	Year        string
	Due         string
	Description string
}

func AddTodoArgs(cmd *cobra.Command, o *TodoOptions) {
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due date as month/year, example: --due="1/2024".`)
	cmd.Flags().StringVar(&o.Day, "day", "",
		"Day of the due date.")
	cmd.Flags().StringVar(&o.Month, "month", "",
		"Month of the due date.")
	cmd.Flags().StringVar(&o.Year, "year", "",
		"Year of the due date.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the todo.")
}

// Fields returns the form fields. --due wins over --month and --year.
func (o *TodoOptions) Fields() (store.Fields, error) {
	f := store.Fields{
		Title:       o.Title,
		Day:         o.Day,
		Month:       o.Month,
		Year:        o.Year,
		Description: o.Description,
	}
	if due := strings.TrimSpace(o.Due); due != "" {
		month, year, ok := strings.Cut(due, "/")
		if !ok {
			return store.Fields{}, fmt.Errorf("--due %q: expected month/year", due)
		}
		f.Month, f.Year = month, year
	}
	return f, nil
}

// Merge overlays the flags that were set on cmd onto f.
func (o *TodoOptions) Merge(cmd *cobra.Command, f store.Fields) (store.Fields, error) {
	set, err := o.Fields()
	if err != nil {
		return f, err
	}
	if o.Title != "" {
		f.Title = set.Title
	}
	flags := cmd.Flags()
	if flags.Changed("day") {
		f.Day = set.Day
	}
	if flags.Changed("month") || flags.Changed("due") {
		f.Month = set.Month
	}
	if flags.Changed("year") || flags.Changed("due") {
		f.Year = set.Year
	}
	if flags.Changed("description") {
		f.Description = set.Description
	}
	return f, nil
}
