package plot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"strata/internal/errors"
	"strata/internal/report"
)

// yearSeconds converts commit timestamp deltas to years.
const yearSeconds = 365.25 * 24 * 3600

// ageStepYears is the survival curve sampling resolution.
const ageStepYears = 0.25

// SurvivalOptions configures a survival-curve chart.
type SurvivalOptions struct {
	Title  string
	Years  float64 // x-axis extent; 0 uses the observed range
	ExpFit bool
	Width  float64 // inches
	Height float64 // inches
}

// RenderSurvival draws the mean surviving-line fraction by code age
// and writes it to out.
func RenderSurvival(surv report.Survival, out string, opts SurvivalOptions) error {
	ages, fracs := survivalCurve(surv, opts.Years)
	if len(ages) == 0 {
		return errors.New(errors.PlotError, "survival data is empty", nil)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Years"
	p.Y.Label.Text = "Fraction of lines still present"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Legend.Top = true

	xys := make(plotter.XYs, len(ages))
	for i := range ages {
		xys[i].X = ages[i]
		xys[i].Y = fracs[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.New(errors.PlotError, "failed to build survival curve", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	p.Add(line)
	p.Legend.Add("observed", line)

	if opts.ExpFit {
		if lambda, ok := expFit(ages, fracs); ok {
			fitXYs := make(plotter.XYs, len(ages))
			for i := range ages {
				fitXYs[i].X = ages[i]
				fitXYs[i].Y = math.Exp(-lambda * ages[i])
			}
			fit, err := plotter.NewLine(fitXYs)
			if err != nil {
				return errors.New(errors.PlotError, "failed to build fit curve", err)
			}
			fit.LineStyle.Width = vg.Points(1)
			fit.LineStyle.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
			fit.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(fit)
			p.Legend.Add(fmt.Sprintf("exp fit, half-life %.1f years", math.Ln2/lambda), fit)
		}
	}

	if err := p.Save(inches(opts.Width, 12), inches(opts.Height, 8), out); err != nil {
		return errors.New(errors.PlotError, "failed to save chart to "+out, err)
	}
	return nil
}

// survivalCurve computes the mean fraction of lines surviving at each
// age, weighted by each commit's initial line count. Ages a commit
// could not have been observed at (it is younger than that) are
// excluded so the right edge is not biased toward survivors.
func survivalCurve(surv report.Survival, maxYears float64) (ages, fracs []float64) {
	var observationEnd int64
	for _, points := range surv {
		for _, pt := range points {
			if pt[0] > observationEnd {
				observationEnd = pt[0]
			}
		}
	}
	if observationEnd == 0 {
		return nil, nil
	}

	for age := 0.0; maxYears <= 0 || age <= maxYears; age += ageStepYears {
		num, den := 0.0, 0.0
		for _, points := range surv {
			if len(points) == 0 || points[0][1] <= 0 {
				continue
			}
			t0, c0 := points[0][0], points[0][1]
			cutoff := t0 + int64(age*yearSeconds)
			if cutoff > observationEnd {
				continue // commit too young to observe at this age
			}
			surviving := int64(0)
			for _, pt := range points {
				if pt[0] > cutoff {
					break
				}
				surviving = pt[1]
			}
			num += float64(surviving)
			den += float64(c0)
		}
		if den == 0 {
			break
		}
		ages = append(ages, age)
		fracs = append(fracs, num/den)
	}
	return ages, fracs
}

// expFit fits frac = exp(-lambda * age) by least squares on the log
// scale, through the origin. Returns ok=false when the data cannot be
// fit (no positive decay).
func expFit(ages, fracs []float64) (lambda float64, ok bool) {
	var sumAL, sumAA float64
	for i := range ages {
		if ages[i] == 0 || fracs[i] <= 0 {
			continue
		}
		sumAL += ages[i] * math.Log(fracs[i])
		sumAA += ages[i] * ages[i]
	}
	if sumAA == 0 {
		return 0, false
	}
	lambda = -sumAL / sumAA
	if lambda <= 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return 0, false
	}
	return lambda, true
}

// MergeSurvival combines survival maps from multiple analysis runs.
// Later maps win on sha collisions.
func MergeSurvival(maps []report.Survival) report.Survival {
	merged := make(report.Survival)
	for _, m := range maps {
		for sha, points := range m {
			merged[sha] = points
		}
	}
	return merged
}
