package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"strata/internal/plot"
	"strata/internal/report"
)

var (
	stackPlotOut       string
	stackPlotTitle     string
	stackPlotNormalize bool
	stackPlotMaxLabels int
	stackPlotWidth     float64
	stackPlotHeight    float64
)

var stackPlotCmd = &cobra.Command{
	Use:   "stack-plot <series.json>",
	Short: "Render a stacked-area chart from an emitted series",
	Long: `Stack-plot reads a series file written by analyze (cohorts.json,
exts.json, or authors.json) and renders a stacked-area chart. The
output format follows the file extension: .png, .svg, or .pdf.`,
	Args: cobra.ExactArgs(1),
	RunE: runStackPlot,
}

func init() {
	stackPlotCmd.Flags().StringVarP(&stackPlotOut, "out", "o", "stack_plot.png", "chart file to write")
	stackPlotCmd.Flags().StringVar(&stackPlotTitle, "title", "", "chart title (default: derived from the input file)")
	stackPlotCmd.Flags().BoolVar(&stackPlotNormalize, "normalize", false, "plot fractions instead of line counts")
	stackPlotCmd.Flags().IntVar(&stackPlotMaxLabels, "max-labels", 20, "fold curves beyond this many into 'other' (0 keeps all)")
	stackPlotCmd.Flags().Float64Var(&stackPlotWidth, "width", 12, "chart width in inches")
	stackPlotCmd.Flags().Float64Var(&stackPlotHeight, "height", 8, "chart height in inches")

	rootCmd.AddCommand(stackPlotCmd)
}

func runStackPlot(cmd *cobra.Command, args []string) error {
	series, err := report.ReadSeries(args[0])
	if err != nil {
		return err
	}

	applyPlotDefaults(cmd.Flags().Changed, plotDefaults(),
		&stackPlotWidth, &stackPlotHeight, &stackPlotMaxLabels)

	title := stackPlotTitle
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	if err := plot.RenderStack(series, stackPlotOut, plot.StackOptions{
		Title:     title,
		Normalize: stackPlotNormalize,
		MaxLabels: stackPlotMaxLabels,
		Width:     stackPlotWidth,
		Height:    stackPlotHeight,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", stackPlotOut)
	return nil
}
