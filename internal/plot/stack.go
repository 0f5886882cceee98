// Package plot renders the two strata chart types: stacked-area
// charts of the aggregate curves and survival curves of per-commit
// line decay.
package plot

import (
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"strata/internal/errors"
	"strata/internal/report"
)

// StackOptions configures a stacked-area chart.
type StackOptions struct {
	Title     string
	Normalize bool
	MaxLabels int
	Width     float64 // inches
	Height    float64 // inches
}

// RenderStack draws a stacked-area chart of a series and writes it to
// out. The output format follows the file extension (.png, .svg,
// .pdf).
func RenderStack(s *report.Series, out string, opts StackOptions) error {
	if len(s.Y) == 0 || len(s.Ts) == 0 {
		return errors.New(errors.PlotError, "series is empty", nil)
	}

	xs, err := parseTimestamps(s.Ts)
	if err != nil {
		return errors.New(errors.PlotError, "series has malformed timestamps", err)
	}

	labels, rows := topLabels(s.Labels, s.Y, opts.MaxLabels)
	values := toFloats(rows)
	if opts.Normalize {
		values = toFractions(values)
	}
	cum := cumulative(values)

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	if opts.Normalize {
		p.Y.Label.Text = "Fraction of lines"
		p.Y.Max = 1
	} else {
		p.Y.Label.Text = "Lines of code"
	}
	p.Legend.Top = true
	p.Legend.Left = true

	// Fill from the top layer down so earlier layers stay visible
	lines := make([]*plotter.Line, len(cum))
	for i := len(cum) - 1; i >= 0; i-- {
		xys := make(plotter.XYs, len(xs))
		for j := range xs {
			xys[j].X = xs[j]
			xys[j].Y = cum[i][j]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return errors.New(errors.PlotError, "failed to build chart layer", err)
		}
		line.FillColor = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(0.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		lines[i] = line
	}
	for i, label := range labels {
		p.Legend.Add(label, lines[i])
	}

	if err := p.Save(inches(opts.Width, 12), inches(opts.Height, 8), out); err != nil {
		return errors.New(errors.PlotError, "failed to save chart to "+out, err)
	}
	return nil
}

// parseTimestamps converts RFC3339 timestamps to Unix seconds, the
// coordinate space plot.TimeTicks expects.
func parseTimestamps(ts []string) ([]float64, error) {
	xs := make([]float64, len(ts))
	for i, raw := range ts {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		xs[i] = float64(t.Unix())
	}
	return xs, nil
}

// topLabels keeps the max largest curves by total area and folds the
// rest into an "other" layer. max <= 0 keeps everything.
func topLabels(labels []string, y [][]int, max int) ([]string, [][]int) {
	if max <= 0 || len(labels) <= max {
		return labels, y
	}

	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return curveArea(y[order[a]]) > curveArea(y[order[b]])
	})

	keep := make(map[int]bool, max)
	for _, i := range order[:max] {
		keep[i] = true
	}

	var outLabels []string
	var outY [][]int
	other := make([]int, len(y[0]))
	hasOther := false
	for i, label := range labels {
		if keep[i] {
			outLabels = append(outLabels, label)
			outY = append(outY, y[i])
			continue
		}
		hasOther = true
		for j, v := range y[i] {
			other[j] += v
		}
	}
	if hasOther {
		outLabels = append(outLabels, "other")
		outY = append(outY, other)
	}
	return outLabels, outY
}

func curveArea(curve []int) int {
	total := 0
	for _, v := range curve {
		total += v
	}
	return total
}

func toFloats(y [][]int) [][]float64 {
	out := make([][]float64, len(y))
	for i, row := range y {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(v)
		}
	}
	return out
}

// toFractions normalizes each column to sum to 1.
func toFractions(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return rows
	}
	out := make([][]float64, len(rows))
	for i := range rows {
		out[i] = make([]float64, len(rows[i]))
	}
	for j := range rows[0] {
		total := 0.0
		for i := range rows {
			total += rows[i][j]
		}
		if total == 0 {
			continue
		}
		for i := range rows {
			out[i][j] = rows[i][j] / total
		}
	}
	return out
}

// cumulative stacks rows: row i becomes the sum of rows 0..i.
func cumulative(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	var prev []float64
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v
			if prev != nil {
				out[i][j] += prev[j]
			}
		}
		prev = out[i]
	}
	return out
}

func inches(v, fallback float64) vg.Length {
	if v <= 0 {
		v = fallback
	}
	return vg.Length(v) * vg.Inch
}
