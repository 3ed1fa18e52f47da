package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddkit/weightdd/pkg/diagram"
)

// compactCommand creates the "compact" command.
func (c *CLI) compactCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compact <diagram.json>",
		Short: "Rewrite a diagram file with unreachable nodes removed",
		Long:  `Compact reloads a diagram into a fresh node store, drops every node not reachable from its root, renumbers the survivors, and writes the result back out.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if output == "" {
				output = path
			}

			p := newProgress(c.Logger)

			tbl, d, err := c.loadDiagram(path)
			if err != nil {
				return err
			}

			before := tbl.Len()
			d.Compact(tbl)
			after := tbl.Len()

			if err := diagram.ExportJSON(d, output); err != nil {
				return err
			}

			p.done(fmt.Sprintf("Compacted %s", path))
			if before == after {
				printInfo("Nothing to drop, %d nodes kept", after)
			} else {
				printSuccess("Dropped %d of %d nodes", before-after, before)
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default overwrite input)")

	return cmd
}
