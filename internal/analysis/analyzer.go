package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/user/endf6_go/internal/parser"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Summarize computes the statistics of one table. Fields that need points are
// NaN for an empty table.
func Summarize(name string, key parser.SectionKey, t *parser.TabulatedFunction) TableSummary {
	s := TableSummary{
		Name:       name,
		Key:        key,
		NumPoints:  len(t.X),
		NumRegions: len(t.Regions),
		Laws:       make([]int, len(t.Regions)),
		XMin:       math.NaN(),
		XMax:       math.NaN(),
		YMin:       math.NaN(),
		YMax:       math.NaN(),
		PeakX:      math.NaN(),
		Integral:   math.NaN(),
	}
	for i, r := range t.Regions {
		s.Laws[i] = r.Law
	}
	if len(t.X) == 0 {
		return s
	}

	s.XMonotonic = sort.Float64sAreSorted(t.X)
	s.XMin, s.XMax = floats.Min(t.X), floats.Max(t.X)
	s.YMin = floats.Min(t.Y)
	peak := floats.MaxIdx(t.Y)
	s.YMax, s.PeakX = t.Y[peak], t.X[peak]

	// integrate.Trapezoidal panics on unsorted abscissae
	if len(t.X) >= 2 && s.XMonotonic {
		s.Integral = integrate.Trapezoidal(t.X, t.Y)
	}
	return s
}

// AnalyzeTables summarizes a set of tables and ranks them.
func AnalyzeTables(tables []NamedTable) (*AnalysisResults, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables given, cannot analyze")
	}

	results := NewAnalysisResults()

	for _, nt := range tables {
		if nt.Table == nil {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Skipping %s: no table data.", nt.Name))
			continue
		}
		if len(nt.Table.X) != len(nt.Table.Y) {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Skipping %s: %d x values but %d y values.", nt.Name, len(nt.Table.X), len(nt.Table.Y)))
			continue
		}

		s := Summarize(nt.Name, nt.Key, nt.Table)
		if s.NumPoints == 0 {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Warning: %s has no points.", nt.Name))
		} else if !s.XMonotonic {
			results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Warning: %s has decreasing x values; integral not computed.", nt.Name))
		}
		for _, law := range s.Laws {
			if law < LawHistogram || law > LawGamow {
				results.AnalysisErrors = append(results.AnalysisErrors, fmt.Sprintf("Warning: %s uses unknown interpolation law %d.", nt.Name, law))
			}
		}

		if !math.IsNaN(s.YMax) {
			results.RankedByPeak = append(results.RankedByPeak, RankedTableInfo{Name: s.Name, Key: s.Key, Value: s.YMax})
		}
		if !math.IsNaN(s.Integral) {
			results.RankedByIntegral = append(results.RankedByIntegral, RankedTableInfo{Name: s.Name, Key: s.Key, Value: s.Integral})
		}
		results.Summaries = append(results.Summaries, s)
	}

	sort.SliceStable(results.RankedByPeak, func(i, j int) bool {
		return results.RankedByPeak[i].Value > results.RankedByPeak[j].Value // Descending
	})
	sort.SliceStable(results.RankedByIntegral, func(i, j int) bool {
		return results.RankedByIntegral[i].Value > results.RankedByIntegral[j].Value // Descending
	})

	if len(results.Summaries) == 0 {
		results.AnalysisErrors = append(results.AnalysisErrors, "Analysis completed but produced no table summaries.")
	}

	return results, nil
}
