package parser

import (
	"math"
	"strconv"
	"strings"
)

// FieldWidth is the width of one ENDF-6 data field.
const FieldWidth = 11

func fieldError(text, msg string, err error) *FormatError {
	return &FormatError{Line: -1, Field: -1, Text: text, Msg: msg, Err: err}
}

// ParseFloat decodes an ENDF-6 numeric field.
//
// The format writes exponents without a marker letter ("6.022141+23",
// "1.5-03"); a marker ("1.23E+05", "1.0D-3") is accepted as well. Blanks are
// ignored, so an all-blank field is 0.0.
func ParseFloat(field string) (float64, error) {
	s := strings.ReplaceAll(field, " ", "")
	if s == "" {
		return 0, nil
	}

	sign := ""
	rest := s
	if rest[0] == '+' || rest[0] == '-' {
		sign, rest = rest[:1], rest[1:]
	}

	mantissa, exponent, hasExp, ok := splitExponent(rest)
	if !ok {
		return 0, fieldError(field, "ambiguous exponent sign", nil)
	}
	if !isDecimal(mantissa) {
		return 0, fieldError(field, "invalid mantissa", nil)
	}
	canonical := sign + mantissa
	if hasExp {
		if !isExponent(exponent) {
			return 0, fieldError(field, "invalid exponent", nil)
		}
		canonical += "e" + exponent
	}

	v, err := strconv.ParseFloat(canonical, 64)
	if err != nil {
		return 0, fieldError(field, "value out of range", err)
	}
	return v, nil
}

// splitExponent separates the mantissa of an unsigned numeral from its
// exponent. A marker letter wins; otherwise the exponent begins at the
// rightmost sign that does not directly follow another sign. ok is false when
// the only candidate sign follows another one or opens the numeral.
func splitExponent(s string) (mantissa, exponent string, hasExp, ok bool) {
	if k := strings.IndexAny(s, "EeDd"); k >= 0 {
		return s[:k], s[k+1:], true, true
	}
	sawSign := false
	for k := len(s) - 1; k >= 0; k-- {
		if s[k] != '+' && s[k] != '-' {
			continue
		}
		sawSign = true
		if k == 0 {
			break
		}
		if prev := s[k-1]; prev == '+' || prev == '-' {
			continue
		}
		return s[:k], s[k:], true, true
	}
	if sawSign {
		return "", "", false, false
	}
	return s, "", false, true
}

// isDecimal reports whether s is digits with at most one decimal point and at
// least one digit.
func isDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func isExponent(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseInt decodes an integer field, as used for counts and control numbers.
// Blank is 0. Some producers write integer fields in float notation
// ("3.000000+0"); those are accepted when the value is integral.
func ParseInt(field string) (int, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := ParseFloat(field)
	if err != nil {
		return 0, fieldError(field, "invalid integer", err)
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fieldError(field, "non-integral value in integer field", nil)
	}
	return int(v), nil
}
