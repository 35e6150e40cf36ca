package equiv

import (
	"fmt"
	"sort"
	"strings"
)

// PairResult is one pairwise comparison. Stats is nil when Err is set
// (for example on shape mismatch); the pair renders as N/A and other
// pairs are unaffected.
type PairResult struct {
	A, B  string
	Stats *Stats
	Err   error
}

// Report aggregates every unordered pair of snapshots compared exactly
// once: N snapshots yield N*(N-1)/2 comparisons.
type Report struct {
	Names      []string
	Tolerances Tolerances
	Pairs      []PairResult
}

// ComparePairs compares all snapshots pairwise. Names are sorted so the
// matrix layout is stable. A pair that cannot be compared is recorded
// with its error rather than aborting the rest.
func ComparePairs(snaps map[string][][]float64, tol Tolerances) (*Report, error) {
	if len(snaps) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrMissingSnapshot, len(snaps))
	}

	names := make([]string, 0, len(snaps))
	for name := range snaps {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &Report{Names: names, Tolerances: tol}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			stats, err := Compare(snaps[a], snaps[b], tol)
			if err != nil {
				err = fmt.Errorf("comparing %s vs %s: %w", a, b, err)
			}
			r.Pairs = append(r.Pairs, PairResult{A: a, B: b, Stats: stats, Err: err})
		}
	}
	return r, nil
}

// Pair returns the result for an unordered name pair.
func (r *Report) Pair(a, b string) *PairResult {
	for i := range r.Pairs {
		p := &r.Pairs[i]
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return p
		}
	}
	return nil
}

// Markdown renders the symmetric pairwise matrix. Off-diagonal cells
// show max-abs-diff, mean-abs-diff and percent-close; the diagonal is
// marked not-applicable; failed pairs render as N/A.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Pairwise comparisons\n\n")
	sb.WriteString("Generated by `odebench compare`.\n\n")
	fmt.Fprintf(&sb, "Tolerances: rtol=%g, atol=%g.\n\n", r.Tolerances.Rtol, r.Tolerances.Atol)

	sb.WriteString("## Packages included\n\n")
	sb.WriteString(strings.Join(r.Names, ", "))
	sb.WriteString("\n\n")

	sb.WriteString("## Pairwise difference table\n\n")
	sb.WriteString("| |" + strings.Join(r.Names, "|") + "|\n")
	sb.WriteString("|" + strings.Repeat("---|", len(r.Names)+1) + "\n")

	for _, row := range r.Names {
		cells := []string{row}
		for _, col := range r.Names {
			cells = append(cells, r.cell(row, col))
		}
		sb.WriteString("|" + strings.Join(cells, "|") + "|\n")
	}

	return sb.String()
}

func (r *Report) cell(row, col string) string {
	if row == col {
		return "-"
	}
	p := r.Pair(row, col)
	if p == nil || p.Stats == nil {
		return "N/A"
	}
	// <br> keeps each labeled value on its own line inside the cell.
	return fmt.Sprintf("Max: %.2e<br>Mean: %.2e<br>%%Close: %.1f%%",
		p.Stats.AbsDiff.Max, p.Stats.AbsDiff.Mean, p.Stats.PercentClose)
}
