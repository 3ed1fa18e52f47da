package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ddkit/weightdd/pkg/cache"
	"github.com/ddkit/weightdd/pkg/errors"
	"github.com/ddkit/weightdd/pkg/render"
)

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render <diagram.json>",
		Short: "Render a diagram as a DOT or SVG drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if format == "" {
				format = c.Config.Format
			}
			format = strings.ToLower(format)
			if !render.ValidFormat(format) {
				return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (use dot or svg)", format)
			}
			if output == "" {
				output = outputPath(path, format)
			}

			raw, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "diagram %s", path)
			}
			if err != nil {
				return err
			}

			p := newProgress(c.Logger)
			store := c.newCache(noCache)
			defer store.Close()

			// The tolerance participates in the key: the same file interns
			// differently under a different eps.
			key := cache.ArtifactKey(format, fmt.Appendf(nil, "%s|eps=%g", raw, c.Config.Eps))

			ctx := cmd.Context()
			artifact, cached, err := store.Get(ctx, key)
			if err != nil {
				c.Logger.Debug("cache read failed", "err", err)
			}

			if !cached {
				_, d, err := c.loadDiagram(path)
				if err != nil {
					return err
				}

				dot := render.ToDOT(d)
				artifact = []byte(dot)
				if format == render.FormatSVG {
					artifact, err = render.SVG(dot)
					if err != nil {
						return err
					}
				}

				if err := store.Set(ctx, key, artifact, 0); err != nil {
					c.Logger.Debug("cache write failed", "err", err)
				}
			}

			if err := os.WriteFile(output, artifact, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			p.done(fmt.Sprintf("Rendered %s", path))
			printArtifact(output, cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default input name with format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot or svg (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// outputPath swaps the input extension for the render format.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + format
}
