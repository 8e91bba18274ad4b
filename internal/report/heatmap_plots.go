package report

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"github.com/user/endf6_go/internal/parser"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// contentGrid is a plotter.GridXYZ with one column per MT and one row per MF.
// Cells hold log10 of the section's record count, NaN where absent.
type contentGrid struct {
	mts, mfs []int
	z        [][]float64 // [row][col]
}

func (g *contentGrid) Dims() (c, r int) { return len(g.mts), len(g.mfs) }
func (g *contentGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g *contentGrid) X(c int) float64 { return float64(c) }
func (g *contentGrid) Y(r int) float64 { return float64(r) }

func newContentGrid(entries []parser.ContentEntry, mat int) *contentGrid {
	mfSet := map[int]bool{}
	mtSet := map[int]bool{}
	for _, e := range entries {
		if e.MAT != mat {
			continue
		}
		mfSet[e.MF] = true
		mtSet[e.MT] = true
	}
	g := &contentGrid{mfs: sortedKeys(mfSet), mts: sortedKeys(mtSet)}

	col := make(map[int]int, len(g.mts))
	for i, mt := range g.mts {
		col[mt] = i
	}
	row := make(map[int]int, len(g.mfs))
	for i, mf := range g.mfs {
		row[mf] = i
	}

	g.z = make([][]float64, len(g.mfs))
	for r := range g.z {
		g.z[r] = make([]float64, len(g.mts))
		for c := range g.z[r] {
			g.z[r][c] = math.NaN()
		}
	}
	for _, e := range entries {
		if e.MAT != mat {
			continue
		}
		g.z[row[e.MF]][col[e.MT]] = math.Log10(float64(e.NumLines))
	}
	return g
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// CreateContentHeatmap draws the table of contents of one material as a
// heatmap of MF (rows) against MT (columns), coloured by record count.
// mat=0 takes the first material in entries.
func CreateContentHeatmap(entries []parser.ContentEntry, mat int, plotTitle string) ([]byte, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no sections to plot heatmap")
	}
	if mat == 0 {
		mat = entries[0].MAT
	}
	grid := newContentGrid(entries, mat)
	numCols, numRows := grid.Dims()
	if numCols == 0 {
		return nil, fmt.Errorf("no sections for MAT=%d", mat)
	}

	p := plot.New()
	p.Title.Text = plotTitle
	p.X.Label.Text = "MT"
	p.Y.Label.Text = "MF"

	yTicks := make([]plot.Tick, numRows)
	for i, mf := range grid.mfs {
		yTicks[i] = plot.Tick{Value: float64(i), Label: strconv.Itoa(mf)}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.Y.Min = -0.5
	p.Y.Max = float64(numRows) - 0.5

	// label every column while they fit, then thin out
	step := 1 + numCols/25
	xTicks := make([]plot.Tick, 0, numCols/step+1)
	for i := 0; i < numCols; i += step {
		xTicks = append(xTicks, plot.Tick{Value: float64(i), Label: strconv.Itoa(grid.mts[i])})
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.5
	p.X.Max = float64(numCols) - 0.5

	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	hm.NaN = color.Gray{Y: 230}
	hm.Min, hm.Max = 0, 1
	for r := range grid.z {
		for _, z := range grid.z[r] {
			if z > hm.Max {
				hm.Max = z
			}
		}
	}
	p.Add(hm)

	width := vg.Points(math.Max(400, 20*float64(numCols)+120))
	if width > vg.Points(1600) {
		width = vg.Points(1600)
	}
	height := vg.Points(80 + 40*float64(numRows))
	return renderPNG(p, width, height)
}
