package report

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/user/endf6_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotOptions controls CreateTablePlot.
type PlotOptions struct {
	Title  string
	XLabel string
	YLabel string
	LogX   bool
	LogY   bool

	// CurvePoints > 0 overlays the interpolated function sampled at that many
	// points; tabulated points are always drawn as markers.
	CurvePoints int
	Width       vg.Length // 0 means 800pt
	Height      vg.Length // 0 means 400pt
}

var plotColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, // Blue
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, // Red
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, // Green
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}, // Orange
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 255}, // Purple
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 255}, // Teal
}

// CreateTablePlot draws one or more tables on shared axes and returns a PNG.
func CreateTablePlot(tables []analysis.NamedTable, opts PlotOptions) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to plot")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	seriesPlotted := 0
	for i, nt := range tables {
		if nt.Table == nil {
			continue
		}
		// log axes cannot show non-positive coordinates
		pts := make(plotter.XYs, 0, len(nt.Table.X))
		for k := range nt.Table.X {
			x, y := nt.Table.X[k], nt.Table.Y[k]
			if (opts.LogX && x <= 0) || (opts.LogY && y <= 0) {
				continue
			}
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
		if len(pts) < len(nt.Table.X) {
			log.Printf("Warning: %s: %d points not representable on log axes were dropped.", nt.Name, len(nt.Table.X)-len(pts))
		}
		if len(pts) == 0 {
			continue
		}

		c := plotColors[i%len(plotColors)]
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter for %s: %v", nt.Name, err)
		}
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)

		var line *plotter.Line
		if opts.CurvePoints > 1 {
			line = interpolatedLine(nt, opts)
		}
		if line == nil {
			if line, err = plotter.NewLine(pts); err != nil {
				return nil, fmt.Errorf("failed to create line for %s: %v", nt.Name, err)
			}
		}
		line.Color = c
		line.LineStyle.Width = vg.Points(1.2)
		p.Add(line)
		p.Legend.Add(nt.Name, line, scatter)
		seriesPlotted++
	}
	if seriesPlotted == 0 {
		return nil, fmt.Errorf("no plottable points in %d tables", len(tables))
	}

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	width, height := opts.Width, opts.Height
	if width == 0 {
		width = vg.Points(800)
	}
	if height == 0 {
		height = vg.Points(400)
	}
	return renderPNG(p, width, height)
}

// interpolatedLine samples the table with its own interpolation laws. It
// returns nil when that is not possible, and the caller falls back to
// straight segments.
func interpolatedLine(nt analysis.NamedTable, opts PlotOptions) *plotter.Line {
	xs, ys, err := analysis.Resample(nt.Table, opts.CurvePoints, opts.LogX)
	if err != nil {
		log.Printf("Warning: %s: drawing straight segments, interpolation failed: %v", nt.Name, err)
		return nil
	}
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if opts.LogY && ys[i] <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	line, err := plotter.NewLine(pts)
	if err != nil || len(pts) == 0 {
		return nil
	}
	return line
}

func renderPNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
