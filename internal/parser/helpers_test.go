package parser

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// formatENDF writes v in the 11-column marker-less notation, dropping
// mantissa digits until it fits.
func formatENDF(v float64) string {
	for prec := 6; prec > 0; prec-- {
		s := strconv.FormatFloat(v, 'e', prec, 64)
		k := strings.IndexByte(s, 'e')
		exp, _ := strconv.Atoi(s[k+1:])
		s = s[:k] + fmt.Sprintf("%+d", exp)
		if v >= 0 {
			s = " " + s
		}
		if len(s) <= FieldWidth {
			return fmt.Sprintf("%11s", s)
		}
	}
	panic("value does not fit an ENDF field: " + strconv.FormatFloat(v, 'g', -1, 64))
}

// record assembles an 80-column record from up to six fields: float64 and int
// are formatted, strings are used verbatim (padded to 11 columns).
func record(mat, mf, mt, ns int, fields ...interface{}) string {
	var b strings.Builder
	for _, f := range fields {
		switch v := f.(type) {
		case float64:
			b.WriteString(formatENDF(v))
		case int:
			b.WriteString(fmt.Sprintf("%11d", v))
		case string:
			b.WriteString(fmt.Sprintf("%-11s", v))
		default:
			panic(fmt.Sprintf("unsupported field %T", f))
		}
	}
	return fmt.Sprintf("%-66s%4d%2d%3d%5d", b.String(), mat, mf, mt, ns)
}

// tab1Section builds HEAD, TAB1 and terminator records for one section.
func tab1Section(mat, mf, mt int, regions [][2]int, x, y []float64) []string {
	ns := 1
	next := func() int { ns++; return ns - 1 }
	out := []string{
		record(mat, mf, mt, next(), 1001.0, 0.9991673, 0, 0, 0, 0),
		record(mat, mf, mt, next(), 0.0, 0.0, 0, 0, len(regions), len(x)),
	}

	var ints []interface{}
	for _, r := range regions {
		ints = append(ints, r[0], r[1])
	}
	for i := 0; i < len(ints); i += FieldsPerLine {
		end := i + FieldsPerLine
		if end > len(ints) {
			end = len(ints)
		}
		out = append(out, record(mat, mf, mt, next(), ints[i:end]...))
	}

	var pairs []interface{}
	for i := range x {
		pairs = append(pairs, x[i], y[i])
	}
	for i := 0; i < len(pairs); i += FieldsPerLine {
		end := i + FieldsPerLine
		if end > len(pairs) {
			end = len(pairs)
		}
		out = append(out, record(mat, mf, mt, next(), pairs[i:end]...))
	}
	return append(out, record(mat, mf, 0, 99999, 0.0, 0.0, 0, 0, 0, 0))
}

func mustParse(t *testing.T, raw []string) []Line {
	t.Helper()
	doc, err := ParseDocument(raw)
	require.NoError(t, err)
	return doc.Lines
}

func loadSample(t *testing.T) *Document {
	t.Helper()
	doc, err := LoadDocument("testdata/sample.endf")
	require.NoError(t, err)
	return doc
}
