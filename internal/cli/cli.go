// Package cli implements the arbor command-line interface.
//
// # Commands
//
//   - render: write a tree document as SVG, JSON, DOT, Graphviz SVG, PDF,
//     PNG or terminal text, optionally re-rendering on change (--watch)
//   - explore: pan, zoom and expand the diagram interactively in the terminal
//   - info: summarize a tree document
//   - config: show, locate or initialize the config file
//   - cache: manage the rendered-artifact cache
//   - completion: shell completion scripts
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a TOML config file.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// appName is used for directories and display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Arbor draws zoomable, collapsible tree diagrams",
		Long: `Arbor lays out hierarchical documents (JSON or YAML) as left-to-right tree
diagrams with a pan/zoom viewport, a minimap overview and expand/collapse on
click. Render static artifacts with 'render' or explore interactively with
'explore'.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/arbor/config.toml)")

	for _, cmd := range []*cobra.Command{c.renderCommand(), c.exploreCommand(), c.infoCommand()} {
		registerCompletions(cmd)
		root.AddCommand(cmd)
	}
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default path when it exists.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.ConfigPath != "" {
		return config.Load(c.ConfigPath)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.LoadOptional(path)
	if err == nil {
		c.Logger.Debug("config", "path", path)
	}
	return cfg, err
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	// Artifacts from a different renderer build are never reused.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Resolved()+":")
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/arbor/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
