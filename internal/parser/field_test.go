package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  float64
	}{
		{"implicit positive exponent", " 6.022141+23", 6.022141e23},
		{"implicit negative exponent", "     1.5-03", 1.5e-3},
		{"negative mantissa", "-2.530000-2", -2.53e-2},
		{"explicit plus mantissa", "+1.000000+0", 1.0},
		{"single digit exponent", " 9.991673-1", 0.9991673},
		{"marker exponent", "   1.23E+05", 1.23e5},
		{"lowercase marker", "   1.23e-05", 1.23e-5},
		{"fortran double marker", "    1.0D+03", 1.0e3},
		{"marker without exponent sign", "     2.5E3 ", 2.5e3},
		{"integer valued", "         42", 42},
		{"negative integer", "         -7", -7},
		{"integer mantissa with exponent", "        2+3", 2000},
		{"leading dot", "       .5-1", 0.05},
		{"trailing dot", "        3.+2", 300},
		{"embedded blank", " 1.234567 +5", 1.234567e5},
		{"all blank", "           ", 0},
		{"empty", "", 0},
		{"zero", " 0.000000+0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloat(tt.field)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, math.Abs(tt.want)*1e-12)
		})
	}
}

func TestParseFloatErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"garbage", "abcdefghijk"},
		{"letters after digits", "  1.0abc   "},
		{"two dots", "   1.2.3+4 "},
		{"doubled sign", "   1.0+-5  "},
		{"only signs", "         --"},
		{"sign only", "          -"},
		{"dangling exponent sign", "      12.5-"},
		{"marker without digits", "      1.0E "},
		{"exponent with dot", "   1.0E2.5 "},
		{"no mantissa digits", "        .+3"},
		{"infinity", "        Inf"},
		{"nan", "        NaN"},
		{"overflow", " 1.000000+999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFloat(tt.field)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat), "want ErrFormat, got %v", err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Text)
		})
	}
}

func TestParseFloatRoundTrip(t *testing.T) {
	values := []float64{
		1e-5, 2.53e-2, 0.9991673, 1, 20.43, 1001, 2.224631e6, 2e7,
		-4.258, -1.5e-3, 6.022141e23, 1.23456e-30, 9.99999e99,
	}
	for _, v := range values {
		field := formatENDF(v)
		require.Len(t, field, FieldWidth)

		got, err := ParseFloat(field)
		require.NoError(t, err, "field %q", field)
		assert.InEpsilon(t, v, got, 1e-5, "field %q", field)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		field string
		want  int
	}{
		{"          7", 7},
		{"        -12", -12},
		{"           ", 0},
		{"", 0},
		{" 3.000000+0", 3},
		{" 1.200000+1", 12},
	}
	for _, tt := range tests {
		got, err := ParseInt(tt.field)
		require.NoError(t, err, "field %q", tt.field)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{" 1.500000+0", "  seven    ", "   1.0E300 "} {
		_, err := ParseInt(bad)
		assert.ErrorIs(t, err, ErrFormat, "field %q", bad)
	}
}
