// Package equiv decides whether independently computed final-state
// snapshots agree. Comparison is purely pairwise and symmetric evidence
// for an operator to read; the engine never judges which backend is
// correct.
package equiv

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// relEpsilon guards the relative-difference denominator near zero.
const relEpsilon = 1e-20

// topMismatches is how many worst elements a failed comparison reports.
const topMismatches = 5

// ErrMissingSnapshot indicates fewer than two snapshots were available,
// so no pair can be compared.
var ErrMissingSnapshot = errors.New("need at least two snapshots to compare")

// Tolerances are the closeness-predicate inputs: an element passes when
// |a-b| <= Atol + Rtol*|b|.
type Tolerances struct {
	Rtol float64
	Atol float64
}

// ShapeError reports snapshots whose dimensions differ; such a pair
// produces no statistics.
type ShapeError struct {
	ARows, ACols int
	BRows, BCols int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: (%d,%d) vs (%d,%d)", e.ARows, e.ACols, e.BRows, e.BCols)
}

// Summary holds max/mean/min/std over a set of differences. Std is the
// population standard deviation.
type Summary struct {
	Max, Mean, Min, Std float64
}

// Mismatch is one element failing the closeness predicate, with its
// position and both values.
type Mismatch struct {
	Row, Col int
	A, B     float64
	Diff     float64
}

// Stats is the result of comparing two equally shaped snapshots.
//
// RelDiff summarizes |a-b| / (a + 1e-20) — a relative-difference proxy
// dividing by the first operand with an epsilon guard. It is
// deliberately asymmetric in a and b; treat it as a diagnostic
// approximation, not a symmetric relative error.
type Stats struct {
	Rows, Cols   int
	IsClose      bool
	NumClose     int
	Total        int
	PercentClose float64
	AbsDiff      Summary
	RelDiff      Summary
	Worst        []Mismatch // top mismatches by |a-b|, only when !IsClose
}

// Compare runs the elementwise closeness test |a-b| <= atol + rtol*|b|
// over two snapshots of identical shape. NumClose/PercentClose and the
// absolute-difference summary are symmetric under swapping a and b; the
// relative-difference proxy is not (see Stats).
func Compare(a, b [][]float64, tol Tolerances) (*Stats, error) {
	aRows, aCols, err := dims(a)
	if err != nil {
		return nil, err
	}
	bRows, bCols, err := dims(b)
	if err != nil {
		return nil, err
	}
	if aRows != bRows || aCols != bCols {
		return nil, &ShapeError{ARows: aRows, ACols: aCols, BRows: bRows, BCols: bCols}
	}
	total := aRows * aCols
	if total == 0 {
		return nil, errors.New("empty snapshot")
	}

	absDiff := make([]float64, 0, total)
	relDiff := make([]float64, 0, total)
	numClose := 0
	var worst []Mismatch

	for i := 0; i < aRows; i++ {
		for j := 0; j < aCols; j++ {
			av, bv := a[i][j], b[i][j]
			d := math.Abs(av - bv)
			absDiff = append(absDiff, d)
			relDiff = append(relDiff, math.Abs((av-bv)/(av+relEpsilon)))

			if d <= tol.Atol+tol.Rtol*math.Abs(bv) {
				numClose++
			} else {
				worst = append(worst, Mismatch{Row: i, Col: j, A: av, B: bv, Diff: d})
			}
		}
	}

	s := &Stats{
		Rows:         aRows,
		Cols:         aCols,
		IsClose:      numClose == total,
		NumClose:     numClose,
		Total:        total,
		PercentClose: 100.0 * float64(numClose) / float64(total),
		AbsDiff:      summarize(absDiff),
		RelDiff:      summarize(relDiff),
	}

	if !s.IsClose {
		sort.Slice(worst, func(i, j int) bool { return worst[i].Diff > worst[j].Diff })
		if len(worst) > topMismatches {
			worst = worst[:topMismatches]
		}
		s.Worst = worst
	}
	return s, nil
}

func summarize(d []float64) Summary {
	return Summary{
		Max:  floats.Max(d),
		Mean: stat.Mean(d, nil),
		Min:  floats.Min(d),
		Std:  math.Sqrt(stat.PopVariance(d, nil)),
	}
}

// dims returns the snapshot's shape, requiring rectangular rows.
func dims(m [][]float64) (rows, cols int, err error) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, nil
	}
	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("ragged snapshot: row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	return rows, cols, nil
}
