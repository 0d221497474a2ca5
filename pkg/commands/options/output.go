package options

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out receives JSON errors; nil means color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError reports err as {"error": "..."} in JSON mode and swallows it so
// the command exits cleanly; otherwise err is returned unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}
	out := o.Out
	if out == nil {
		out = color.Output
	}
	return json.NewEncoder(out).Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
