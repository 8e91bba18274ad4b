package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableEndToEnd(t *testing.T) {
	raw := []string{
		record(125, 3, 3, 1, 1001.0, 0.9991673, 0, 0, 0, 0),
		record(125, 3, 3, 2, 0.0, 0.0, 0, 0, 1, 3),
		record(125, 3, 3, 3, 3, 2),
		record(125, 3, 3, 4, 1.0, 10.0, 2.0, 20.0, 3.0, 30.0),
		record(125, 3, 0, 99999, 0.0, 0.0, 0, 0, 0, 0),
	}
	lines := mustParse(t, raw)

	sec, err := FindSection(lines, 3, 3)
	require.NoError(t, err)
	tab, err := ReadTable(sec)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, tab.X)
	assert.Equal(t, []float64{10, 20, 30}, tab.Y)
	assert.Equal(t, []InterpolationRegion{{Boundary: 3, Law: 2}}, tab.Regions)
	assert.Equal(t, 1, tab.Header.N1)
	assert.Equal(t, 3, tab.Header.N2)
	assert.Equal(t, 1001.0, tab.Head.C1)
	assert.Equal(t, 3, tab.NumPoints())
}

func TestReadTablePointCounts(t *testing.T) {
	for _, np := range []int{0, 1, 2, 3, 4, 7, 12, 25} {
		x := make([]float64, np)
		y := make([]float64, np)
		for i := range x {
			x[i] = float64(i+1) * 1.5
			y[i] = float64(i+1) * -0.25
		}
		regions := [][2]int{{np, 2}}
		if np == 0 {
			regions = nil
		}
		lines := mustParse(t, tab1Section(9228, 3, 18, regions, x, y))

		sec, err := FindSection(lines, 3, 18)
		require.NoError(t, err)
		tab, err := ReadTable(sec)
		require.NoError(t, err, "np=%d", np)

		require.Len(t, tab.X, np)
		require.Len(t, tab.Y, np)
		assert.Equal(t, x, tab.X)
		assert.Equal(t, y, tab.Y)
	}
}

func TestReadTableManyRegions(t *testing.T) {
	// four regions need eight integers, so the interpolation table spills
	// onto a second record
	regions := [][2]int{{2, 1}, {4, 2}, {6, 5}, {8, 4}}
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	lines := mustParse(t, tab1Section(125, 3, 2, regions, x, y))

	sec, err := FindSection(lines, 3, 2)
	require.NoError(t, err)
	tab, err := ReadTable(sec)
	require.NoError(t, err)

	require.Len(t, tab.Regions, 4)
	assert.Equal(t, InterpolationRegion{Boundary: 6, Law: 5}, tab.Regions[2])
	assert.Equal(t, x, tab.X)
	assert.Equal(t, y, tab.Y)
}

func TestReadTableSample(t *testing.T) {
	doc := loadSample(t)

	sec, err := FindSection(doc.Lines, 3, 1)
	require.NoError(t, err)
	tab, err := ReadTable(sec)
	require.NoError(t, err)
	require.Equal(t, 7, tab.NumPoints())
	assert.InDelta(t, 1e-5, tab.X[0], 1e-18)
	assert.InDelta(t, 37.16, tab.Y[0], 1e-12)
	assert.InDelta(t, 2e7, tab.X[6], 1e-6)
	assert.InDelta(t, 0.4827, tab.Y[6], 1e-12)

	sec, err = FindSection(doc.Lines, 3, 102)
	require.NoError(t, err)
	tab, err = ReadTable(sec)
	require.NoError(t, err)
	assert.Equal(t, []InterpolationRegion{{2, 5}, {5, 2}}, tab.Regions)
	assert.InDelta(t, 2.224631e6, tab.Header.C1, 1e-3)
}

func TestReadTableTruncated(t *testing.T) {
	full := tab1Section(125, 3, 1, [][2]int{{7, 2}},
		[]float64{1, 2, 3, 4, 5, 6, 7}, []float64{1, 2, 3, 4, 5, 6, 7})

	t.Run("missing data record", func(t *testing.T) {
		// drop the last data record but keep the terminator
		raw := append(append([]string{}, full[:len(full)-2]...), full[len(full)-1])
		sec, err := FindSection(mustParse(t, raw), 3, 1)
		require.NoError(t, err)

		tab, err := ReadTable(sec)
		assert.Nil(t, tab)
		require.ErrorIs(t, err, ErrTruncatedTable)

		var te *TruncatedTableError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 7, te.Declared)
		assert.Equal(t, 3, te.NeedLines)
		assert.Equal(t, 2, te.HaveLines)
	})

	t.Run("missing region record", func(t *testing.T) {
		raw := []string{full[0], full[1], full[len(full)-1]}
		sec, err := FindSection(mustParse(t, raw), 3, 1)
		require.NoError(t, err)

		_, err = ReadTable(sec)
		var te *TruncatedTableError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "interpolation regions", te.What)
	})

	t.Run("header only", func(t *testing.T) {
		raw := []string{full[0], full[len(full)-1]}
		sec, err := FindSection(mustParse(t, raw), 3, 1)
		require.NoError(t, err)

		_, err = ReadTable(sec)
		assert.ErrorIs(t, err, ErrTruncatedTable)
	})

	t.Run("empty section", func(t *testing.T) {
		_, err := ReadTable(Section{})
		assert.ErrorIs(t, err, ErrTruncatedTable)
	})
}

func TestReadTableFormatErrors(t *testing.T) {
	head := record(125, 3, 1, 1, 1001.0, 0.9991673, 0, 0, 0, 0)
	end := record(125, 3, 0, 99999, 0.0, 0.0, 0, 0, 0, 0)

	tests := []struct {
		name      string
		body      []string
		wantLine  int
		wantField int
	}{
		{
			name: "garbage data field",
			body: []string{
				record(125, 3, 1, 2, 0.0, 0.0, 0, 0, 1, 2),
				record(125, 3, 1, 3, 2, 2),
				record(125, 3, 1, 4, 1.0, 2.0, "abcdefghijk", 4.0),
			},
			wantLine: 3, wantField: 2,
		},
		{
			name: "point count not an integer",
			body: []string{
				record(125, 3, 1, 2, 0.0, 0.0, 0, 0, 1, "   x"),
			},
			wantLine: 1, wantField: 5,
		},
		{
			name: "negative region count",
			body: []string{
				record(125, 3, 1, 2, 0.0, 0.0, 0, 0, -1, 2),
			},
			wantLine: 1, wantField: 4,
		},
		{
			name: "bad interpolation law",
			body: []string{
				record(125, 3, 1, 2, 0.0, 0.0, 0, 0, 1, 1),
				record(125, 3, 1, 3, 1, "lin"),
				record(125, 3, 1, 4, 1.0, 2.0),
			},
			wantLine: 2, wantField: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := append(append([]string{head}, tt.body...), end)
			sec, err := FindSection(mustParse(t, raw), 3, 1)
			require.NoError(t, err)

			tab, err := ReadTable(sec)
			assert.Nil(t, tab)
			require.ErrorIs(t, err, ErrFormat)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestReadTAB1Cursor(t *testing.T) {
	// two TAB1 records back to back, as in sections carrying several tables
	raw := []string{
		record(125, 5, 18, 1, 0.0, 0.0, 0, 0, 1, 2),
		record(125, 5, 18, 2, 2, 2),
		record(125, 5, 18, 3, 1.0, 0.5, 2.0, 0.5),
		record(125, 5, 18, 4, 0.0, 0.0, 0, 0, 1, 1),
		record(125, 5, 18, 5, 1, 1),
		record(125, 5, 18, 6, 3.0, 9.0),
		record(125, 5, 0, 99999, 0.0, 0.0, 0, 0, 0, 0),
	}
	lines := mustParse(t, raw)

	first, next, err := ReadTAB1(lines, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
	assert.Equal(t, []float64{1, 2}, first.X)

	second, next, err := ReadTAB1(lines, next)
	require.NoError(t, err)
	assert.Equal(t, 6, next)
	assert.Equal(t, []float64{3}, second.X)
	assert.Equal(t, []float64{9}, second.Y)

	_, _, err = ReadTAB1(lines, next)
	assert.ErrorIs(t, err, ErrTruncatedTable)
}
