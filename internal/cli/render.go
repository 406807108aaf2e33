package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/source/local"
)

// renderCommand creates the render command for generating charts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		flags  chartFlags
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tasks file]",
		Short: "Render a task set to SVG, JSON, PDF or PNG",
		Long: `Render a task set to SVG, JSON, PDF or PNG.

The task file may be JSON, YAML or TOML. Dates are RFC 3339 timestamps or
plain 2006-01-02 dates, which are read in --timezone.

With --type deps the dependency graph is drawn with Graphviz instead of the
Gantt chart; it supports the dot, svg, pdf and png formats.

Results are cached locally for faster subsequent runs.`,
		Example: `  stackgantt render tasks.yaml -v Week -f svg,png
  stackgantt render tasks.json --type deps -f dot -o deps.dot
  stackgantt render tasks.toml -c chart.toml --locale de-DE --task-list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.Logger)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	flags.register(cmd)
	flags.registerRender(cmd)
	cf.register(cmd)

	return cmd
}

// runRender loads the tasks, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading "+input+"...")
	spinner.Start()

	snap, err := runner.Load(ctx, local.New(input, opts.Location()))
	if err != nil {
		spinner.StopWithError("Load failed")
		prog.fail("load", err)
		return fmt.Errorf("load %s: %w", input, err)
	}
	spinner.SetMessage(fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))

	result, err := runner.Execute(ctx, snap, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		prog.fail("render", err)
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		suffix:    vizSuffix(opts),
	}); err != nil {
		return err
	}
	if output != "-" {
		printStats(result.Stats.TaskCount, result.Stats.VisibleRows, result.CacheInfo.RenderHit)
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))
	return nil
}

// vizSuffix keeps derived names apart from the input, so rendering
// tasks.json to json never overwrites it.
func vizSuffix(opts pipeline.Options) string {
	return "." + opts.VizType
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	suffix    string
}

// writeArtifacts writes one file per format. A single format goes to
// output as given; several formats share output as a base path.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		return writeArtifact(p.output, p.artifacts[p.formats[0]])
	}
	if p.output == "-" {
		return fmt.Errorf("cannot write %d formats to stdout", len(p.formats))
	}
	base := basePath(p.output, p.input)
	if p.output == "" {
		base += p.suffix
	}
	for _, format := range p.formats {
		if err := writeArtifact(base+"."+format, p.artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if path != "-" {
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if isFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func isFormat(s string) bool {
	for _, formats := range pipeline.ValidFormats {
		if slices.Contains(formats, s) {
			return true
		}
	}
	return false
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path; "-" is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
