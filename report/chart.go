// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/j0nem/multicast-performance/runstat"
	"github.com/j0nem/multicast-performance/statfmt"
)

// Chart file names written by the comparison tool.
const (
	CPUMemoryChartFile = "cpu_memory_comparison.png"
	NetworkChartFile   = "network_comparison.png"
)

const (
	chartWidth  = 30 * vg.Centimeter
	chartHeight = 12 * vg.Centimeter
	chartDPI    = 96

	barWidth vg.Length = 28 // points
	// barShift is the distance in X units between the centers of
	// a group's treatment and baseline bars.
	barShift = 0.35
)

var (
	treatmentColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	baselineColor  = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
)

// A panel is one subplot: bars for a set of metrics of one unit.
type panel struct {
	title   string
	ylabel  string
	metrics []string
	labels  []string
	scale   float64 // multiplies values before plotting
}

// CPUMemoryChart writes a PNG bar chart of p's CPU and memory usage.
func CPUMemoryChart(w io.Writer, p *Pair) error {
	return writeChart(w, p, []panel{
		{
			title:   "CPU usage",
			ylabel:  "CPU (%)",
			metrics: []string{runstat.AvgName(statfmt.MetricCPU), runstat.PeakName(statfmt.MetricCPU)},
			labels:  []string{"Average", "Peak"},
			scale:   1,
		},
		{
			title:   "Memory usage",
			ylabel:  "RSS (MiB)",
			metrics: []string{runstat.AvgName(statfmt.MetricMemory), runstat.PeakName(statfmt.MetricMemory)},
			labels:  []string{"Average", "Peak"},
			scale:   1.0 / 1024,
		},
	})
}

// NetworkChart writes a PNG bar chart of p's network usage.
func NetworkChart(w io.Writer, p *Pair) error {
	return writeChart(w, p, []panel{
		{
			title:   "Throughput",
			ylabel:  "KiB/s",
			metrics: []string{runstat.AvgName(statfmt.MetricTxKiB), runstat.AvgName(statfmt.MetricRxKiB)},
			labels:  []string{"Sent", "Received"},
			scale:   1,
		},
		{
			title:   "Captured traffic",
			ylabel:  "MiB",
			metrics: []string{statfmt.CapDataSize},
			labels:  []string{"Data size"},
			scale:   1.0 / (1024 * 1024),
		},
	})
}

func writeChart(w io.Writer, p *Pair, panels []panel) error {
	row := make([]*plot.Plot, len(panels))
	for i, pn := range panels {
		pl, err := p.plotPanel(pn)
		if err != nil {
			return fmt.Errorf("%s: %w", pn.title, err)
		}
		row[i] = pl
	}

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight),
		vgimg.UseDPI(chartDPI), vgimg.UseBackgroundColor(color.White))}
	tiles := draw.Tiles{
		Rows: 1, Cols: len(panels),
		PadX: vg.Centimeter, PadTop: vg.Millimeter * 5, PadBottom: vg.Millimeter * 5,
		PadLeft: vg.Millimeter * 5, PadRight: vg.Millimeter * 5,
	}
	plots := [][]*plot.Plot{row}
	canvases := plot.Align(plots, tiles, draw.New(can))
	for i, pl := range row {
		pl.Draw(canvases[0][i])
	}
	_, err := can.WriteTo(w)
	return err
}

// errorPoints are bar tops with their standard deviations.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (p *Pair) plotPanel(pn panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = pn.title
	pl.Y.Label.Text = pn.ylabel
	pl.Y.Min = 0
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	sides := []struct {
		name  string
		agg   runstat.Aggregates
		color color.Color
		shift float64
	}{
		{p.TreatmentName, p.Treatment, treatmentColor, -barShift / 2},
		{p.BaselineName, p.Baseline, baselineColor, barShift / 2},
	}
	for _, side := range sides {
		var errs errorPoints
		var legend *plotter.BarChart
		for i, metric := range pn.metrics {
			s := side.agg[metric]
			bar, err := plotter.NewBarChart(plotter.Values{s.Mean * pn.scale}, barWidth)
			if err != nil {
				return nil, err
			}
			bar.Color = side.color
			bar.LineStyle.Width = 0
			bar.XMin = float64(i) + side.shift
			pl.Add(bar)
			if legend == nil {
				legend = bar
			}
			if s.Count > 1 {
				x := float64(i) + side.shift
				errs.XYs = append(errs.XYs, plotter.XY{X: x, Y: s.Mean * pn.scale})
				e := s.Std * pn.scale
				errs.YErrors = append(errs.YErrors, struct{ Low, High float64 }{e, e})
			}
		}
		pl.Legend.Add(side.name, legend)
		if len(errs.XYs) > 0 {
			eb, err := plotter.NewYErrorBars(errs)
			if err != nil {
				return nil, err
			}
			pl.Add(eb)
		}
	}
	pl.Legend.Top = true
	pl.NominalX(pn.labels...)
	pl.X.Min = -0.5
	pl.X.Max = float64(len(pn.metrics)) - 0.5
	return pl, nil
}
