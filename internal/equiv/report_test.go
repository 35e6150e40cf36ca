package equiv

import (
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportSnapshots() map[string][][]float64 {
	return map[string][][]float64{
		"cpu_fixed":    {{1, 2}, {3, 4}},
		"cpu_adaptive": {{1, 2}, {3, 4.5}},
		"jax_fixed":    {{1, 2}, {3, 4}},
	}
}

func TestComparePairsCount(t *testing.T) {
	r, err := ComparePairs(reportSnapshots(), defaultTol())
	require.NoError(t, err)

	// N=3 snapshots -> N*(N-1)/2 = 3 comparisons, each unordered pair
	// exactly once.
	require.Len(t, r.Pairs, 3)
	assert.Equal(t, []string{"cpu_adaptive", "cpu_fixed", "jax_fixed"}, r.Names)

	seen := map[string]bool{}
	for _, p := range r.Pairs {
		seen[p.A+"|"+p.B] = true
	}
	assert.Len(t, seen, 3)
}

func TestComparePairsMissingSnapshot(t *testing.T) {
	_, err := ComparePairs(map[string][][]float64{"cpu_fixed": {{1}}}, defaultTol())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSnapshot))

	_, err = ComparePairs(nil, defaultTol())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSnapshot))
}

func TestComparePairsScopedFailure(t *testing.T) {
	snaps := reportSnapshots()
	snaps["mpgos_fixed"] = [][]float64{{1, 2, 3}} // wrong shape

	r, err := ComparePairs(snaps, defaultTol())
	require.NoError(t, err, "a bad pair must not abort the aggregation")

	bad := r.Pair("cpu_fixed", "mpgos_fixed")
	require.NotNil(t, bad)
	assert.Error(t, bad.Err)
	assert.Nil(t, bad.Stats)

	good := r.Pair("cpu_fixed", "jax_fixed")
	require.NotNil(t, good)
	require.NoError(t, good.Err)
	assert.True(t, good.Stats.IsClose)

	// The unavailable pair renders as N/A without poisoning the rest.
	md := r.Markdown()
	assert.Contains(t, md, "N/A")
	assert.Contains(t, md, "%Close: 100.0%")
}

func TestReportPairIsUnordered(t *testing.T) {
	r, err := ComparePairs(reportSnapshots(), defaultTol())
	require.NoError(t, err)

	ab := r.Pair("cpu_fixed", "jax_fixed")
	ba := r.Pair("jax_fixed", "cpu_fixed")
	require.NotNil(t, ab)
	assert.Same(t, ab, ba)
}

func TestMarkdownMatrixShape(t *testing.T) {
	r, err := ComparePairs(reportSnapshots(), defaultTol())
	require.NoError(t, err)

	md := r.Markdown()
	lines := strings.Split(strings.TrimRight(md, "\n"), "\n")

	// Header row + separator + one row per snapshot.
	var tableLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "|") {
			tableLines = append(tableLines, l)
		}
	}
	require.Len(t, tableLines, 2+3)

	// Diagonal marked not-applicable.
	assert.Contains(t, tableLines[2], "|cpu_adaptive|-|")
}

func TestMarkdownGolden(t *testing.T) {
	r, err := ComparePairs(reportSnapshots(), defaultTol())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "pairwise_report", []byte(r.Markdown()))
}
