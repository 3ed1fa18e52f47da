package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ddkit/weightdd/pkg/render"
)

// statsCommand creates the "stats" command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <diagram.json>",
		Short: "Print structural statistics for a diagram file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			tbl, d, err := c.loadDiagram(path)
			if err != nil {
				return err
			}
			s := render.Summarize(d)

			fmt.Println(StyleTitle.Render(path))
			printKeyValue("shape", formatShape(d.Shape))
			printKeyValue("weight", render.FmtWeight(d.Weight))
			printKeyValue("nodes", strconv.Itoa(s.Nodes))
			printKeyValue("depth", strconv.Itoa(s.Depth))
			printKeyValue("max range", strconv.Itoa(s.MaxRange))
			printKeyValue("norm", strconv.FormatFloat(s.Norm, 'g', -1, 64))
			printKeyValue("store", strconv.Itoa(tbl.Len())+" entries")
			return nil
		},
	}
}

// formatShape renders a tensor shape like "2x3x2". Scalars have no shape.
func formatShape(shape []int) string {
	if len(shape) == 0 {
		return "scalar"
	}
	dims := make([]string, len(shape))
	for i, n := range shape {
		dims[i] = strconv.Itoa(n)
	}
	return strings.Join(dims, "x")
}
