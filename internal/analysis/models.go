package analysis

import "github.com/user/endf6_go/internal/parser"

// NamedTable is a decoded table together with where it came from.
type NamedTable struct {
	Name  string // display label, e.g. "MT=102 (n,gamma)"
	Key   parser.SectionKey
	Table *parser.TabulatedFunction
}

// TableSummary holds the calculated statistics for a single table.
type TableSummary struct {
	Name       string
	Key        parser.SectionKey
	NumPoints  int
	NumRegions int
	Laws       []int // interpolation law per region, in order
	XMin       float64
	XMax       float64
	YMin       float64
	YMax       float64
	PeakX      float64 // x at YMax, first occurrence
	Integral   float64 // lin-lin trapezoid over the whole table, NaN when undefined
	XMonotonic bool    // x is non-decreasing
}

// RankedTableInfo is used for ranking tables by different criteria.
type RankedTableInfo struct {
	Name  string
	Key   parser.SectionKey
	Value float64
}

// AnalysisResults holds all results from the analysis.
type AnalysisResults struct {
	Summaries        []TableSummary
	RankedByPeak     []RankedTableInfo // sorted by YMax, descending
	RankedByIntegral []RankedTableInfo // sorted by Integral, descending
	AnalysisErrors   []string
}

func NewAnalysisResults() *AnalysisResults {
	return &AnalysisResults{
		Summaries:        make([]TableSummary, 0),
		RankedByPeak:     make([]RankedTableInfo, 0),
		RankedByIntegral: make([]RankedTableInfo, 0),
		AnalysisErrors:   make([]string, 0),
	}
}
