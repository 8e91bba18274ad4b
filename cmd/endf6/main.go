// Command endf6 lists, extracts, plots and reports tabulated data from
// ENDF-6 nuclear data files.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/user/endf6_go/internal/report"
)

const version = "0.2.0"

// CLI defines the command-line interface. Every flag can also be set through
// the environment variable named in its env tag.
var CLI struct {
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" env:"ENDF6_LOG_LEVEL"`

	List     ListCmd     `cmd:"" help:"List the sections of an ENDF-6 file"`
	Section  SectionCmd  `cmd:"" help:"Print the records of one section"`
	Table    TableCmd    `cmd:"" help:"Decode a TAB1 section into x,y pairs"`
	Evaluate EvaluateCmd `cmd:"" help:"Interpolate a TAB1 section at given x values"`
	Plot     PlotCmd     `cmd:"" help:"Plot TAB1 sections to PNG"`
	Report   ReportCmd   `cmd:"" help:"Write a PDF report of one file (MF) of an ENDF-6 tape"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ListCmd prints the table of contents.
type ListCmd struct {
	Path string `arg:"" help:"ENDF-6 file" type:"existingfile"`
}

func (c *ListCmd) Run(app *App) error {
	return app.List(c.Path)
}

// SectionCmd prints the raw records of a section.
type SectionCmd struct {
	SectionRef `embed:""`

	Path string `arg:"" help:"ENDF-6 file" type:"existingfile"`
}

func (c *SectionCmd) Run(app *App) error {
	return app.Section(c.Path, c.SectionRef)
}

// TableCmd writes x,y pairs as CSV or TSV.
type TableCmd struct {
	SectionRef `embed:""`

	Path    string `arg:"" help:"ENDF-6 file" type:"existingfile"`
	Format  string `name:"format" help:"Output format" enum:"csv,tsv" default:"csv" env:"ENDF6_TABLE_FORMAT"`
	Regions bool   `name:"regions" help:"Also print interpolation regions"`
}

func (c *TableCmd) Run(app *App) error {
	delim := ','
	if c.Format == "tsv" {
		delim = '\t'
	}
	return app.Table(c.Path, c.SectionRef, delim, c.Regions)
}

// EvaluateCmd interpolates a table.
type EvaluateCmd struct {
	SectionRef `embed:""`

	Path string    `arg:"" help:"ENDF-6 file" type:"existingfile"`
	X    []float64 `arg:"" name:"x" help:"Abscissae to evaluate"`
}

func (c *EvaluateCmd) Run(app *App) error {
	return app.Evaluate(c.Path, c.SectionRef, c.X)
}

// PlotCmd draws tables of one file into a PNG.
type PlotCmd struct {
	Path   string  `arg:"" help:"ENDF-6 file" type:"existingfile"`
	MAT    int     `name:"mat" help:"Material number (0 = first material carrying the section)" default:"0"`
	MF     int     `name:"mf" help:"File number" default:"3"`
	MT     []int   `name:"mt" help:"Section numbers, repeatable" required:""`
	Out    string  `name:"out" short:"o" help:"Output PNG path" default:"plot.png" type:"path"`
	Title  string  `name:"title" help:"Plot title (default: file name)"`
	XLabel string  `name:"xlabel" help:"X axis label" default:"Energy (eV)"`
	YLabel string  `name:"ylabel" help:"Y axis label" default:"Cross section (b)"`
	LogX   bool    `name:"logx" help:"Logarithmic x axis" negatable:"" default:"true"`
	LogY   bool    `name:"logy" help:"Logarithmic y axis" negatable:"" default:"true"`
	Curve  int     `name:"curve" help:"Overlay the interpolated curve sampled at N points (0 = off)" default:"200"`
	Width  float64 `name:"width" help:"Width in points" default:"800" env:"ENDF6_PLOT_WIDTH"`
	Height float64 `name:"height" help:"Height in points" default:"400" env:"ENDF6_PLOT_HEIGHT"`
}

func (c *PlotCmd) Run(app *App) error {
	refs := make([]SectionRef, len(c.MT))
	for i, mt := range c.MT {
		refs[i] = SectionRef{MAT: c.MAT, MF: c.MF, MT: mt}
	}
	return app.Plot(c.Path, refs, c.Out, report.PlotOptions{
		Title:       c.Title,
		XLabel:      c.XLabel,
		YLabel:      c.YLabel,
		LogX:        c.LogX,
		LogY:        c.LogY,
		CurvePoints: c.Curve,
		Width:       vg.Points(c.Width),
		Height:      vg.Points(c.Height),
	})
}

// ReportCmd writes the PDF report.
type ReportCmd struct {
	Path string `arg:"" help:"ENDF-6 file" type:"existingfile"`
	MF   int    `name:"mf" help:"File number whose TAB1 sections are tabulated and plotted" default:"3"`
	Out  string `name:"out" short:"o" help:"Output PDF path" default:"report.pdf" type:"path"`
	Log  bool   `name:"log" help:"Logarithmic plot axes" negatable:"" default:"true"`
}

func (c *ReportCmd) Run(app *App) error {
	return app.Report(c.Path, c.MF, c.Out, c.Log)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Fprintf(app.out, "endf6 version %s\n", version)
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("endf6"),
		kong.Description("Extract tabulated data from ENDF-6 nuclear data files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logger, err := newLogger(CLI.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app := NewApp(logger, os.Stdout)
	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}
