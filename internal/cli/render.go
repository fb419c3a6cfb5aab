package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/viewport"
	"github.com/matzehuels/arbor/pkg/watch"
)

// renderFlags are the render command flags that do not map 1:1 onto
// pipeline.Options.
type renderFlags struct {
	output    string
	formats   string
	transform string
	noCache   bool
	watch     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree document to SVG, JSON, DOT, PDF, PNG or text",
		Long: `Render a tree document (JSON or YAML) to one or more formats.

The diagram is laid out for a --width x --height container. Nodes follow the
document's isExpanded flags unless --expand or --toggle say otherwise, and
the viewport starts at the configured initial transform, optionally zoomed
with --zoom or replaced with --transform "a,b,c,d,e,f".

Formats:
  svg       main view plus minimap (default)
  json      the composed scene: nodes, links, transforms
  dot       Graphviz source for the visible tree
  graphviz  SVG laid out by Graphviz
  pdf, png  converted from the SVG with rsvg-convert
  text      terminal drawing (--cols x --rows)

With --watch the document is re-rendered whenever it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if flags.output != "" && flags.output != "-" {
				if err := errors.ValidateOutputPath(flags.output); err != nil {
					return err
				}
			}
			if flags.output == "-" && len(opts.Formats) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "stdout output (-o -) takes a single format")
			}
			if flags.transform != "" {
				m, err := parseMatrix(flags.transform)
				if err != nil {
					return err
				}
				opts.Transform = &m
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.Config = &cfg
			opts.Logger = c.Logger
			return c.runRender(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "container width")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "container height")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: lots (default), paper")
	cmd.Flags().StringVar(&opts.Expansion, "expand", pipeline.ExpandDocument, "initial expansion: document, all, none")
	cmd.Flags().StringSliceVar(&opts.Toggle, "toggle", nil, "node names to toggle after --expand (repeatable)")
	cmd.Flags().Float64Var(&opts.Zoom, "zoom", 0, "zoom factor about the centre, clamped to the zoom bounds")
	cmd.Flags().StringVar(&flags.transform, "transform", "", `explicit view transform "a,b,c,d,e,f"`)
	cmd.Flags().BoolVar(&opts.NoMinimap, "no-minimap", false, "omit the minimap")
	cmd.Flags().BoolVar(&opts.Payload, "payload", false, "include node payloads in json output")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include payload fields in dot/graphviz labels")
	cmd.Flags().StringVar(&opts.Title, "title", "", "svg document title")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "png resolution multiplier")
	cmd.Flags().IntVar(&opts.Cols, "cols", pipeline.DefaultCols, "text output columns")
	cmd.Flags().IntVar(&opts.Rows, "rows", pipeline.DefaultRows, "text output rows")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the document changes")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := c.renderOnce(ctx, runner, opts, flags); err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}

	w, err := watch.New(opts.Input, watch.WithOnError(func(err error) {
		c.Logger.Warn("watch", "error", err)
	}))
	if err != nil {
		return err
	}
	printInfo("Watching %s", StyleValue.Render(w.Path()))
	return w.Run(ctx, func() {
		if err := c.renderOnce(ctx, runner, opts, flags); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	})
}

func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, flags renderFlags) error {
	prog := newProgress(c.Logger)

	var spinner *Spinner
	if flags.output != "-" && slices.ContainsFunc(opts.Formats, slowFormat) {
		spinner = newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
	}
	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if flags.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.Input, flags.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", paths[format])
		}
	}

	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(opts.Input)))
	printStats(result.Stats.VisibleNodes, result.Stats.TreeNodes, result.CacheInfo.RenderHit())
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

func slowFormat(format string) bool {
	return format == pipeline.FormatPDF || format == pipeline.FormatPNG || format == pipeline.FormatGraphviz
}

// fileExt maps a format to its file suffix.
func fileExt(format string) string {
	switch format {
	case pipeline.FormatGraphviz:
		return "gv.svg"
	case pipeline.FormatText:
		return "txt"
	default:
		return format
	}
}

// outputPaths decides where each format is written. A single format with an
// explicit output uses it verbatim; otherwise files are named
// <base>.<ext>, where base is the output (minus a known extension) or the
// input path minus its extension.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = output
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); slices.Contains(pipeline.Formats, ext) || ext == "txt" {
			base = strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	for _, f := range formats {
		paths[f] = base + "." + fileExt(f)
	}
	return paths
}

// parseMatrix reads "a,b,c,d,e,f" in SVG matrix order.
func parseMatrix(s string) (viewport.Matrix, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != 6 {
		return viewport.Matrix{}, errors.New(errors.ErrCodeInvalidInput, "transform needs 6 numbers a,b,c,d,e,f, got %q", s)
	}
	var v [6]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return viewport.Matrix{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "transform component %d", i+1)
		}
		v[i] = f
	}
	return viewport.Matrix{
		ScaleX: v[0], SkewY: v[1], SkewX: v[2], ScaleY: v[3], TranslateX: v[4], TranslateY: v[5],
	}, nil
}
