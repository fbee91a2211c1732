// Package duedate orders the due-date labels todos are grouped by.
//
// A label is either a concrete "month/year" pair such as "1/2024" or the
// sentinel NoDueDate. Two more labels, AllTodos and Completed, name the
// header lists and never appear on a todo.
package duedate

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	// NoDueDate is the label of todos without a month and year.
	NoDueDate = "No Due Date"
	// AllTodos names the header list that matches every todo.
	AllTodos = "All Todos"
	// Completed names the header list that matches every completed todo.
	Completed = "Completed"

	monthsPerYear = 12
)

var (
	// ErrMalformed is returned by Valid for labels outside the label grammar.
	ErrMalformed = errors.New("duedate: malformed label")

	labelPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,4})$`)
	longYear     = regexp.MustCompile(`/\d\d(\d\d)$`)
)

// Weight converts a label into a comparable integer. NoDueDate weighs 0,
// "M/Y" weighs M + Y*12 so years dominate months. Weight does not validate;
// parts that are not numbers count as 0.
func Weight(label string) int {
	if label == NoDueDate {
		return 0
	}
	month, year, _ := strings.Cut(label, "/")
	return atoi(month) + atoi(year)*monthsPerYear
}

// Compare orders two labels by weight.
func Compare(a, b string) int {
	return Weight(a) - Weight(b)
}

// Sort orders labels by ascending weight in place. Labels of equal weight keep
// their relative order.
func Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Compare(labels[i], labels[j]) < 0
	})
}

// IsPseudo reports whether label is one of the header labels that select
// todos without filtering on a due date.
func IsPseudo(label string) bool {
	return label == AllTodos || label == Completed
}

// Valid checks label against the "M/Y" grammar (month 1-12, year of at most
// four digits) or NoDueDate.
func Valid(label string) error {
	if label == NoDueDate {
		return nil
	}
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrMalformed, label)
	}
	if month := atoi(m[1]); month < 1 || month > monthsPerYear {
		return fmt.Errorf("%w: month %d out of range in %q", ErrMalformed, month, label)
	}
	return nil
}

// Label builds the label for the given month and year form values.
func Label(month, year string) string {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)
	if month == "" || year == "" {
		return NoDueDate
	}
	return month + "/" + year
}

// Shorten renders a four digit year as two digits, "1/2024" -> "1/24".
func Shorten(label string) string {
	return longYear.ReplaceAllString(label, "/$1")
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
