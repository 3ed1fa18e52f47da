// Package cli implements the weightdd command-line interface.
//
// This package provides commands for inspecting weighted decision diagrams
// stored as JSON, rendering them as DOT or SVG drawings, and compacting
// their node stores. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - stats: Print node count, depth, and norm for a diagram file
//   - render: Generate DOT or SVG drawings of a diagram
//   - compact: Rewrite a diagram file with unreachable nodes removed
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ddkit/weightdd/internal/config"
	"github.com/ddkit/weightdd/pkg/buildinfo"
	"github.com/ddkit/weightdd/pkg/cache"
	"github.com/ddkit/weightdd/pkg/dd"
	"github.com/ddkit/weightdd/pkg/diagram"
)

// appName is the application name used for directories and display.
const appName = "weightdd"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "weightdd inspects weighted decision diagrams",
		Long:         `weightdd is a CLI tool for working with weighted decision diagram files: printing structural statistics, rendering DOT or SVG drawings, and compacting node stores.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	// Register all subcommands
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.compactCommand())

	return root
}

// loadDiagram reads a diagram file into a fresh node store built from the
// configured tolerance.
func (c *CLI) loadDiagram(path string) (*dd.Table, *diagram.Diagram, error) {
	tbl := dd.New(dd.WithEps(c.Config.Eps))
	d, err := diagram.ImportJSON(tbl, path)
	if err != nil {
		return nil, nil, err
	}
	return tbl, d, nil
}

// newCache builds the artifact cache for render output.
// Falls back to a null cache when caching is disabled or the cache
// directory cannot be created.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache || c.Config.NoCache {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(c.Config.CacheDir)
	if err != nil {
		c.Logger.Debug("artifact cache unavailable", "dir", c.Config.CacheDir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}
