package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/user/endf6_go/internal/analysis"
	"github.com/user/endf6_go/internal/parser"
	"github.com/user/endf6_go/internal/report"
)

// App carries what every command needs.
type App struct {
	sugar *zap.SugaredLogger
	out   io.Writer
}

// NewApp creates a new App writing results to out.
func NewApp(logger *zap.Logger, out io.Writer) *App {
	return &App{sugar: logger.Sugar(), out: out}
}

// SectionRef selects a section. MAT=0 matches any material.
type SectionRef struct {
	MAT int `name:"mat" help:"Material number (0 = first material carrying the section)" default:"0"`
	MF  int `name:"mf" help:"File number" default:"3"`
	MT  int `name:"mt" help:"Section number" required:""`
}

func (r SectionRef) find(lines []parser.Line) (parser.Section, error) {
	if r.MAT != 0 {
		return parser.FindMaterialSection(lines, r.MAT, r.MF, r.MT)
	}
	return parser.FindSection(lines, r.MF, r.MT)
}

func sectionLabel(k parser.SectionKey) string {
	if d, ok := parser.SectionDescriptions[k.MT]; ok && k.MF == 3 {
		return fmt.Sprintf("MAT=%d MT=%d %s", k.MAT, k.MT, d)
	}
	return fmt.Sprintf("MAT=%d MF=%d MT=%d", k.MAT, k.MF, k.MT)
}

func (a *App) load(path string) (*parser.Document, error) {
	a.sugar.Debugw("loading document", "path", path)
	doc, err := parser.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	a.sugar.Debugw("document loaded", "path", path, "records", len(doc.Lines))
	return doc, nil
}

// List prints the table of contents of an ENDF-6 file.
func (a *App) List(path string) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	entries := parser.ListContent(doc.Lines)
	fmt.Fprintf(a.out, "%6s %3s %4s %8s  %s\n", "MAT", "MF", "MT", "RECORDS", "DESCRIPTION")
	for _, e := range entries {
		desc := parser.FileDescriptions[e.MF]
		if d, ok := parser.SectionDescriptions[e.MT]; ok {
			desc += ": " + d
		}
		fmt.Fprintf(a.out, "%6d %3d %4d %8d  %s\n", e.MAT, e.MF, e.MT, e.NumLines, desc)
	}
	a.sugar.Infow("listed content", "path", path, "sections", len(entries))
	return nil
}

// Section prints the raw records of one section, terminator included.
func (a *App) Section(path string, ref SectionRef) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	sec, err := ref.find(doc.Lines)
	if err != nil {
		return err
	}
	for _, l := range sec.Lines() {
		fmt.Fprintln(a.out, l.Text)
	}
	return nil
}

func (a *App) readTable(doc *parser.Document, ref SectionRef) (analysis.NamedTable, error) {
	sec, err := ref.find(doc.Lines)
	if err != nil {
		return analysis.NamedTable{}, err
	}
	tab, err := parser.ReadTable(sec)
	if err != nil {
		return analysis.NamedTable{}, fmt.Errorf("%s: %w", sec.Key, err)
	}
	a.sugar.Debugw("decoded table", "section", sec.Key.String(), "points", tab.NumPoints(), "regions", len(tab.Regions))
	return analysis.NamedTable{Name: sectionLabel(sec.Key), Key: sec.Key, Table: tab}, nil
}

// Table writes the x,y pairs of a TAB1 section as delimited text.
func (a *App) Table(path string, ref SectionRef, delimiter rune, withRegions bool) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	nt, err := a.readTable(doc, ref)
	if err != nil {
		return err
	}

	w := csv.NewWriter(a.out)
	w.Comma = delimiter
	if withRegions {
		for _, r := range nt.Table.Regions {
			w.Write([]string{"#region", strconv.Itoa(r.Boundary), strconv.Itoa(r.Law), analysis.LawName(r.Law)})
		}
	}
	w.Write([]string{"x", "y"})
	for i := range nt.Table.X {
		w.Write([]string{
			strconv.FormatFloat(nt.Table.X[i], 'g', -1, 64),
			strconv.FormatFloat(nt.Table.Y[i], 'g', -1, 64),
		})
	}
	w.Flush()
	return w.Error()
}

// Evaluate prints the interpolated value of a table at each x.
func (a *App) Evaluate(path string, ref SectionRef, xs []float64) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	nt, err := a.readTable(doc, ref)
	if err != nil {
		return err
	}
	for _, x := range xs {
		y, err := analysis.Evaluate(nt.Table, x)
		if err != nil {
			return fmt.Errorf("%s at x=%g: %w", nt.Name, x, err)
		}
		fmt.Fprintf(a.out, "%g\t%g\n", x, y)
	}
	return nil
}

// Plot renders one or more tables of the same file into a PNG.
func (a *App) Plot(path string, refs []SectionRef, outPath string, opts report.PlotOptions) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	tables := make([]analysis.NamedTable, 0, len(refs))
	for _, ref := range refs {
		nt, err := a.readTable(doc, ref)
		if err != nil {
			return err
		}
		tables = append(tables, nt)
	}
	if opts.Title == "" {
		opts.Title = filepath.Base(path)
	}
	img, err := report.CreateTablePlot(tables, opts)
	if err != nil {
		return err
	}
	if err := writeOutput(outPath, img); err != nil {
		return err
	}
	a.sugar.Infow("plot written", "path", outPath, "tables", len(tables))
	return nil
}

// Report decodes every TAB1 section of file mf and writes a PDF with
// contents, summaries and plots. Sections that are not plain TAB1 tables are
// skipped with a warning.
func (a *App) Report(path string, mf int, outPath string, logAxes bool) error {
	doc, err := a.load(path)
	if err != nil {
		return err
	}
	contents := parser.ListContent(doc.Lines)

	var tables []analysis.NamedTable
	for _, e := range contents {
		if e.MF != mf {
			continue
		}
		nt, err := a.readTable(doc, SectionRef{MAT: e.MAT, MF: e.MF, MT: e.MT})
		if err != nil {
			if errors.Is(err, parser.ErrFormat) || errors.Is(err, parser.ErrTruncatedTable) {
				a.sugar.Warnw("section skipped", "section", e.SectionKey.String(), "error", err)
				continue
			}
			return err
		}
		tables = append(tables, nt)
	}

	in := &report.ReportInput{
		Source:     filepath.Base(path),
		Contents:   contents,
		PlotImages: make(map[string][]byte),
		Captions:   make(map[string]string),
	}

	if len(contents) > 0 {
		heat, err := report.CreateContentHeatmap(contents, 0, "Records per section")
		if err != nil {
			a.sugar.Warnw("heatmap not generated", "error", err)
		} else {
			in.PlotImages[report.HeatmapKey] = heat
		}
	}

	if len(tables) > 0 {
		if in.Results, err = analysis.AnalyzeTables(tables); err != nil {
			return err
		}
		for _, w := range in.Results.AnalysisErrors {
			a.sugar.Warn(w)
		}
	}

	for _, nt := range tables {
		key := fmt.Sprintf("mf%d_mt%d_mat%d", nt.Key.MF, nt.Key.MT, nt.Key.MAT)
		img, err := report.CreateTablePlot([]analysis.NamedTable{nt}, report.PlotOptions{
			Title:       nt.Name,
			XLabel:      "x",
			YLabel:      "y",
			LogX:        logAxes,
			LogY:        logAxes,
			CurvePoints: 200,
		})
		if err != nil {
			a.sugar.Warnw("plot not generated", "table", nt.Name, "error", err)
			continue
		}
		in.PlotImages[key] = img
		in.PlotOrder = append(in.PlotOrder, key)
		in.Captions[key] = fmt.Sprintf("%s, %d points", nt.Name, nt.Table.NumPoints())
	}

	if err := report.BuildPDFReport(outPath, in); err != nil {
		return err
	}
	a.sugar.Infow("report written", "path", outPath, "tables", len(tables), "sections", len(contents))
	return nil
}
