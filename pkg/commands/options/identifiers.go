package options

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     int
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each todo.")
}

// ParseID reads the todo id from the first argument.
func (o *IDOptions) ParseID(args []string) error {
	if len(args) < 1 {
		return errors.New("requires a todo id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid todo id %q", args[0])
	}
	o.ID = id
	return nil
}
