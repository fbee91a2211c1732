package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Output, "output", "o", printers.FormatPretty,
		"Output format. One of 'pretty', 'json' or 'yaml'.")
}

// Format resolves --json and --output into one format.
func (o *OutputOptions) Format() string {
	if o.JSON {
		return printers.FormatJSON
	}
	if o.Output == "" {
		return printers.FormatPretty
	}
	return o.Output
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Format() == printers.FormatJSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
