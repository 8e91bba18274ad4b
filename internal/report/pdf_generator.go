package report

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/user/endf6_go/internal/analysis"
	"github.com/user/endf6_go/internal/parser"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// HeatmapKey is the PlotImages key of the content heatmap.
const HeatmapKey = "content_heatmap"

// ReportInput is everything BuildPDFReport puts on paper.
type ReportInput struct {
	Source     string // file name shown in the title
	Contents   []parser.ContentEntry
	Results    *analysis.AnalysisResults
	PlotImages map[string][]byte // PNG data, keyed by plot name
	PlotOrder  []string          // plot names in the order they are printed; HeatmapKey is placed separately
	Captions   map[string]string
}

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func() // map of style name to function that sets font, color etc.
	lineHeight  float64
	currentY    float64 // To manually track Y position for flowing content
	pageHeight  float64
	contentTopY float64 // Top Y after margin
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200) // Light grey
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1 // Small gap after paragraph
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable draws a bordered table, repeating the header after page breaks.
// Column widths are fractions of the content width.
func (s *pdfStyler) writeTable(headers []string, colWidthsRel []float64, rows [][]string) {
	colWidthsAbs := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidthsAbs[i] = rel * pdfContentWidth
	}

	header := func() {
		s.applyStyle("tableHeader")
		x := pdfMargin
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidthsAbs[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
			x += colWidthsAbs[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	header()
	for _, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			header()
		}
		s.applyStyle("tableCell")
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidthsAbs[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += colWidthsAbs[i]
		}
		s.currentY += s.lineHeight
	}
	s.addSpacer(3)
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	// imageName is the registration key gofpdf refers to later
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 5, 64)
}

func lawList(laws []int) string {
	if len(laws) == 0 {
		return "-"
	}
	names := make([]string, len(laws))
	for i, l := range laws {
		names[i] = analysis.LawName(l)
	}
	return strings.Join(names, ", ")
}

func describeFile(mf int) string {
	if d, ok := parser.FileDescriptions[mf]; ok {
		return d
	}
	return ""
}

// BuildPDF renders the report to w.
func BuildPDF(w io.Writer, in *ReportInput) error {
	pdf := gofpdf.New("L", "mm", "Letter", "") // Landscape, mm, Letter size
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	title := "ENDF-6 Data Report"
	if in.Source != "" {
		title = fmt.Sprintf("ENDF-6 Data Report: %s", in.Source)
	}
	styler.writeParagraph(title, "h1", "C")
	styler.addSpacer(5)

	materials := map[int]bool{}
	for _, e := range in.Contents {
		materials[e.MAT] = true
	}
	styler.writeParagraph(fmt.Sprintf("%d materials, %d sections.", len(materials), len(in.Contents)), "normal", "L")
	styler.addSpacer(3)

	styler.writeParagraph("Contents", "h2", "L")
	if len(in.Contents) > 0 {
		rows := make([][]string, 0, len(in.Contents))
		for _, e := range in.Contents {
			rows = append(rows, []string{
				strconv.Itoa(e.MAT), strconv.Itoa(e.MF), strconv.Itoa(e.MT),
				strconv.Itoa(e.NumLines), describeFile(e.MF),
			})
		}
		styler.writeTable([]string{"MAT", "MF", "MT", "Records", "File"}, []float64{0.1, 0.1, 0.1, 0.15, 0.55}, rows)
	} else {
		styler.writeParagraph("The document holds no sections.", "normal", "L")
	}

	if img, ok := in.PlotImages[HeatmapKey]; ok && len(img) > 0 {
		imgWidth := pdfContentWidth * 0.9
		styler.addImage(img, HeatmapKey, imgWidth, imgWidth*0.4, "Records per section (log10)")
	}

	if in.Results != nil {
		styler.newPage()
		styler.writeParagraph("Tables", "h2", "L")
		if len(in.Results.Summaries) > 0 {
			rows := make([][]string, 0, len(in.Results.Summaries))
			for _, sm := range in.Results.Summaries {
				rows = append(rows, []string{
					sm.Name,
					strconv.Itoa(sm.NumPoints),
					lawList(sm.Laws),
					formatFloat(sm.XMin) + " - " + formatFloat(sm.XMax),
					formatFloat(sm.YMax),
					formatFloat(sm.PeakX),
					formatFloat(sm.Integral),
				})
			}
			styler.writeTable(
				[]string{"Table", "Points", "Interpolation", "x range", "Peak y", "Peak x", "Integral"},
				[]float64{0.22, 0.08, 0.2, 0.2, 0.1, 0.1, 0.1},
				rows,
			)
		} else {
			styler.writeParagraph("No tables were decoded.", "normal", "L")
		}

		rankings := []struct {
			Title string
			Data  []analysis.RankedTableInfo
		}{
			{"Top 10 Tables by Peak Value", in.Results.RankedByPeak},
			{"Top 10 Tables by Integral", in.Results.RankedByIntegral},
		}
		for _, rankSet := range rankings {
			styler.writeParagraph(rankSet.Title, "h2", "L")
			if len(rankSet.Data) == 0 {
				styler.writeParagraph(fmt.Sprintf("No data for %s.", strings.ToLower(rankSet.Title)), "normal", "L")
				continue
			}
			rows := make([][]string, 0, 10)
			for i, item := range rankSet.Data {
				if i >= 10 {
					break
				} // Top 10
				rows = append(rows, []string{strconv.Itoa(i + 1), item.Name, strconv.Itoa(item.Key.MT), formatFloat(item.Value)})
			}
			styler.writeTable([]string{"Rank", "Table", "MT", "Value"}, []float64{0.1, 0.5, 0.1, 0.3}, rows)
		}

		if len(in.Results.AnalysisErrors) > 0 {
			styler.writeParagraph("Analysis Warnings", "h2", "L")
			for _, e := range in.Results.AnalysisErrors {
				styler.writeParagraph(e, "normal", "L")
			}
		}
	}

	plotted := 0
	for _, key := range in.PlotOrder {
		img, ok := in.PlotImages[key]
		if !ok || len(img) == 0 {
			log.Printf("Warning: plot %s not available, skipped in PDF.", key)
			continue
		}
		if plotted%2 == 0 {
			styler.newPage()
			if plotted == 0 {
				styler.writeParagraph("Graphical Analysis", "h1", "C")
				styler.addSpacer(3)
			}
		}
		imgWidth := pdfContentWidth * 0.6
		styler.addImage(img, key, imgWidth, imgWidth*0.5, in.Captions[key]) // plots are 2:1
		plotted++
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf.Output(w)
}

// BuildPDFReport creates the PDF report at filepath.
func BuildPDFReport(filepath string, in *ReportInput) error {
	var buf bytes.Buffer
	if err := BuildPDF(&buf, in); err != nil {
		return err
	}
	if err := os.WriteFile(filepath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}
