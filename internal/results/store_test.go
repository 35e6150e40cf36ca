package results

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	require.NoError(t, s.Init())
	return s
}

func TestAppendTimingPreservesOrder(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.AppendTiming("cpu", "fixed", 100, 12.5))
	require.NoError(t, s.AppendTiming("cpu", "fixed", 200, 30.25))

	entries, err := s.ReadTimings("cpu", "fixed")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, TimingEntry{Count: 100, ElapsedMS: 12.5}, entries[0])
	assert.Equal(t, TimingEntry{Count: 200, ElapsedMS: 30.25}, entries[1])
}

func TestAppendTimingGrowsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	// Two store instances against the same directory, as two process
	// invocations would be.
	s1 := New(dir)
	require.NoError(t, s1.Init())
	require.NoError(t, s1.AppendTiming("cpu", "adaptive", 1024, 5.0))

	s2 := New(dir)
	require.NoError(t, s2.Init())
	require.NoError(t, s2.AppendTiming("cpu", "adaptive", 2048, 9.0))

	entries, err := s2.ReadTimings("cpu", "adaptive")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1024, entries[0].Count)
	assert.Equal(t, 2048, entries[1].Count)
}

func TestTimingLogsSeparatedByMode(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.AppendTiming("cpu", "fixed", 100, 1.0))
	require.NoError(t, s.AppendTiming("cpu", "adaptive", 100, 2.0))

	fixed, err := s.ReadTimings("cpu", "fixed")
	require.NoError(t, err)
	adaptive, err := s.ReadTimings("cpu", "adaptive")
	require.NoError(t, err)

	require.Len(t, fixed, 1)
	require.Len(t, adaptive, 1)
	assert.Equal(t, 1.0, fixed[0].ElapsedMS)
	assert.Equal(t, 2.0, adaptive[0].ElapsedMS)
}

func TestReadTimingsMissingLog(t *testing.T) {
	s := newStore(t)
	entries, err := s.ReadTimings("cpu", "fixed")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newStore(t)

	data := [][]float64{
		{1.0, -2.5, 3.25e-8},
		{4.0, 5.0, -6.0e12},
	}
	require.NoError(t, s.WriteSnapshot("cpu", "fixed", data))

	got, err := s.LoadSnapshot("cpu_fixed")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSnapshotOverwrite(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.WriteSnapshot("cpu", "fixed", [][]float64{{1, 2, 3}, {4, 5, 6}}))
	require.NoError(t, s.WriteSnapshot("cpu", "fixed", [][]float64{{7, 8, 9}}))

	got, err := s.LoadSnapshot("cpu_fixed")
	require.NoError(t, err)
	require.Len(t, got, 1, "rerun must replace the snapshot, not append")
	assert.Equal(t, []float64{7, 8, 9}, got[0])
}

func TestSnapshotHasNoHeader(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.WriteSnapshot("cpu", "fixed", [][]float64{{1.5, 2.5}}))

	raw, err := os.ReadFile(s.snapshotPath("cpu_fixed"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "x0", "snapshot must be headerless")
	assert.Contains(t, string(raw), ",", "snapshot must be comma separated")
}

func TestListSnapshotsSorted(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.WriteSnapshot("pytorch", "fixed", [][]float64{{1}}))
	require.NoError(t, s.WriteSnapshot("cpu", "fixed", [][]float64{{2}}))
	require.NoError(t, s.WriteSnapshot("jax", "adaptive", [][]float64{{3}}))

	names, err := s.ListSnapshots()
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu_fixed", "jax_adaptive", "pytorch_fixed"}, names)
}

func TestLoadAllSnapshots(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.WriteSnapshot("cpu", "fixed", [][]float64{{1, 2}}))
	require.NoError(t, s.WriteSnapshot("cpu", "adaptive", [][]float64{{3, 4}}))

	snaps, err := s.LoadAllSnapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, [][]float64{{1, 2}}, snaps["cpu_fixed"])
	assert.Equal(t, [][]float64{{3, 4}}, snaps["cpu_adaptive"])
}
