package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/user/endf6_go/internal/parser"
	"gonum.org/v1/gonum/floats"
)

// ENDF-6 interpolation law codes (the INT values of a TAB1 record).
const (
	LawHistogram = 1 // y is constant in x
	LawLinLin    = 2 // y is linear in x
	LawLinLog    = 3 // y is linear in ln(x)
	LawLogLin    = 4 // ln(y) is linear in x
	LawLogLog    = 5 // ln(y) is linear in ln(x)
	LawGamow     = 6 // charged-particle penetrability, T=0
)

var (
	ErrEmptyTable     = errors.New("analysis: table has no points")
	ErrOutOfRange     = errors.New("analysis: x outside tabulated range")
	ErrUnsupportedLaw = errors.New("analysis: unsupported interpolation law")
	ErrDomain         = errors.New("analysis: logarithmic law needs positive values")
)

// LawName gives a short label for an interpolation law code.
func LawName(law int) string {
	switch law {
	case LawHistogram:
		return "histogram"
	case LawLinLin:
		return "lin-lin"
	case LawLinLog:
		return "lin-log"
	case LawLogLin:
		return "log-lin"
	case LawLogLog:
		return "log-log"
	case LawGamow:
		return "gamow"
	}
	return fmt.Sprintf("law %d", law)
}

// lawFor returns the law governing the interval between points i and i+1
// (0-based). Boundaries are 1-based point indices, so the interval belongs to
// the first region whose boundary reaches point i+2. Tables without regions
// are treated as lin-lin.
func lawFor(regions []parser.InterpolationRegion, i int) int {
	if len(regions) == 0 {
		return LawLinLin
	}
	for _, r := range regions {
		if i+2 <= r.Boundary {
			return r.Law
		}
	}
	return regions[len(regions)-1].Law
}

// Evaluate interpolates t at x using the law of the enclosing interval. At a
// tabulated x the tabulated y is returned; at a discontinuity (repeated x)
// that is the first of the two values.
func Evaluate(t *parser.TabulatedFunction, x float64) (float64, error) {
	n := len(t.X)
	if n == 0 {
		return 0, ErrEmptyTable
	}
	if x < t.X[0] || x > t.X[n-1] || math.IsNaN(x) {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, x, t.X[0], t.X[n-1])
	}

	k := sort.SearchFloat64s(t.X, x)
	if t.X[k] == x {
		return t.Y[k], nil
	}
	i := k - 1
	return interpolate(lawFor(t.Regions, i), t.X[i], t.Y[i], t.X[i+1], t.Y[i+1], x)
}

func interpolate(law int, x1, y1, x2, y2, x float64) (float64, error) {
	if law < LawHistogram || law > LawGamow {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedLaw, law)
	}
	if law == LawHistogram || y1 == y2 {
		return y1, nil
	}
	switch law {
	case LawLinLin:
		return y1 + (y2-y1)*(x-x1)/(x2-x1), nil
	case LawLinLog:
		if x1 <= 0 || x <= 0 {
			return 0, ErrDomain
		}
		return y1 + (y2-y1)*math.Log(x/x1)/math.Log(x2/x1), nil
	case LawLogLin:
		if y1 <= 0 || y2 <= 0 {
			return 0, ErrDomain
		}
		return y1 * math.Exp(math.Log(y2/y1)*(x-x1)/(x2-x1)), nil
	case LawLogLog:
		if x1 <= 0 || x <= 0 || y1 <= 0 || y2 <= 0 {
			return 0, ErrDomain
		}
		return y1 * math.Exp(math.Log(y2/y1)*math.Log(x/x1)/math.Log(x2/x1)), nil
	case LawGamow:
		if x1 <= 0 || x <= 0 || y1 <= 0 || y2 <= 0 {
			return 0, ErrDomain
		}
		// ln(x*y) is linear in 1/sqrt(x)
		a, b := math.Log(x1*y1), math.Log(x2*y2)
		u1, u2, u := 1/math.Sqrt(x1), 1/math.Sqrt(x2), 1/math.Sqrt(x)
		return math.Exp(a+(b-a)*(u-u1)/(u2-u1)) / x, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedLaw, law)
}

// Resample evaluates t on n points spanning its domain, evenly spaced in x
// or, with logSpaced, in ln(x).
func Resample(t *parser.TabulatedFunction, n int, logSpaced bool) (xs, ys []float64, err error) {
	if len(t.X) == 0 {
		return nil, nil, ErrEmptyTable
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("analysis: resample needs at least 2 points, got %d", n)
	}
	lo, hi := t.X[0], t.X[len(t.X)-1]

	xs = make([]float64, n)
	if logSpaced {
		if lo <= 0 {
			return nil, nil, ErrDomain
		}
		floats.LogSpan(xs, lo, hi)
	} else {
		floats.Span(xs, lo, hi)
	}
	// endpoints can drift by an ulp through exp/log
	xs[0], xs[n-1] = lo, hi

	ys = make([]float64, n)
	for i, x := range xs {
		if ys[i], err = Evaluate(t, x); err != nil {
			return nil, nil, err
		}
	}
	return xs, ys, nil
}
