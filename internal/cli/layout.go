package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackgantt/pkg/cache"
	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/source/local"
)

// layoutCommand creates the layout command for computing the calendar layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		full   bool
		flags  chartFlags
		cf     cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tasks file]",
		Short: "Compute the calendar header layout of a task set",
		Long: `Compute the calendar header layout of a task set.

The layout command writes the header geometry (top and bottom labels,
marker lines, today highlight and segments) as JSON. With --full the tick
sequence and bar geometry are included as well.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(c.Logger)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, full, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json), - for stdout")
	cmd.Flags().BoolVar(&full, "full", false, "include ticks and bars")
	flags.register(cmd)
	cf.register(cmd)

	return cmd
}

// runLayout loads the tasks, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, full bool, cf cacheFlags) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	snap, err := runner.Load(ctx, local.New(input, opts.Location()))
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode()))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, snap, cache.HashJSON(snap.Tasks()), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var v any = layout.Header
	if full {
		v = layout
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := writeArtifact(outputPath, data); err != nil {
		return err
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printKeyValue("View", string(layout.ViewMode))
	printKeyValue("Columns", fmt.Sprint(len(layout.Ticks)))
	printKeyValue("Width", fmt.Sprintf("%.0fpx", layout.Width()))
	printStats(snap.Len(), len(layout.Chart.Bars), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input+" -v '"+string(layout.ViewMode)+"'")

	return nil
}
