package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/plot"
	"strata/internal/report"
)

var (
	survivalPlotOut    string
	survivalPlotTitle  string
	survivalPlotYears  float64
	survivalPlotExpFit bool
	survivalPlotWidth  float64
	survivalPlotHeight float64
)

var survivalPlotCmd = &cobra.Command{
	Use:   "survival-plot <survival.json>...",
	Short: "Render a survival curve of line lifetimes",
	Long: `Survival-plot reads one or more survival files written by analyze and
renders the mean fraction of lines still present as a function of code
age. Passing several files merges their commits into one curve, which
is how repositories get compared.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSurvivalPlot,
}

func init() {
	survivalPlotCmd.Flags().StringVarP(&survivalPlotOut, "out", "o", "survival_plot.png", "chart file to write")
	survivalPlotCmd.Flags().StringVar(&survivalPlotTitle, "title", "Line survival", "chart title")
	survivalPlotCmd.Flags().Float64Var(&survivalPlotYears, "years", 0, "x-axis extent in years (0 uses the observed range)")
	survivalPlotCmd.Flags().BoolVar(&survivalPlotExpFit, "exp-fit", false, "overlay an exponential decay fit with its half-life")
	survivalPlotCmd.Flags().Float64Var(&survivalPlotWidth, "width", 12, "chart width in inches")
	survivalPlotCmd.Flags().Float64Var(&survivalPlotHeight, "height", 8, "chart height in inches")

	rootCmd.AddCommand(survivalPlotCmd)
}

func runSurvivalPlot(cmd *cobra.Command, args []string) error {
	maps := make([]report.Survival, 0, len(args))
	for _, path := range args {
		surv, err := report.ReadSurvival(path)
		if err != nil {
			return err
		}
		maps = append(maps, surv)
	}

	applyPlotDefaults(cmd.Flags().Changed, plotDefaults(),
		&survivalPlotWidth, &survivalPlotHeight, nil)

	if err := plot.RenderSurvival(plot.MergeSurvival(maps), survivalPlotOut, plot.SurvivalOptions{
		Title:  survivalPlotTitle,
		Years:  survivalPlotYears,
		ExpFit: survivalPlotExpFit,
		Width:  survivalPlotWidth,
		Height: survivalPlotHeight,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", survivalPlotOut)
	return nil
}
