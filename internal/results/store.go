// Package results persists benchmark output under one base directory:
// per backend+mode timing logs (plain text, append-only, one
// "<count> <elapsed_ms>" line per measured cell) and final-state
// snapshots (headerless CSV, one row per trajectory in sweep order, one
// column per state variable, overwritten on rerun). The formats are
// fixed: external backends in other languages write the same files.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	timesDir     = "times"
	numericalDir = "numerical"
)

// TimingEntry is one line of a timing log.
type TimingEntry struct {
	Count     int
	ElapsedMS float64
}

// Store reads and writes benchmark artifacts under baseDir. Concurrent
// processes appending the same log must be serialized by the caller;
// the store does no locking.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.baseDir, timesDir), 0755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(s.baseDir, numericalDir), 0755)
}

// key names the artifact for one backend+mode pair.
func key(backendName, mode string) string {
	return fmt.Sprintf("%s_%s", backendName, mode)
}

func (s *Store) timingPath(backendName, mode string) string {
	return filepath.Join(s.baseDir, timesDir, key(backendName, mode)+".txt")
}

func (s *Store) snapshotPath(name string) string {
	return filepath.Join(s.baseDir, numericalDir, name+".csv")
}

// AppendTiming adds one measurement line to the backend+mode log. Logs
// only grow; nothing ever rewrites them.
func (s *Store) AppendTiming(backendName, mode string, count int, elapsedMS float64) error {
	f, err := os.OpenFile(s.timingPath(backendName, mode), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%d %s\n", count, strconv.FormatFloat(elapsedMS, 'g', -1, 64))
	return err
}

// ReadTimings returns the log lines for one backend+mode in insertion
// order. A missing log reads as empty.
func (s *Store) ReadTimings(backendName, mode string) ([]TimingEntry, error) {
	data, err := os.ReadFile(s.timingPath(backendName, mode))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []TimingEntry
	for i, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("timing log %s line %d: malformed line %q", key(backendName, mode), i+1, line)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("timing log %s line %d: %w", key(backendName, mode), i+1, err)
		}
		ms, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("timing log %s line %d: %w", key(backendName, mode), i+1, err)
		}
		entries = append(entries, TimingEntry{Count: count, ElapsedMS: ms})
	}
	return entries, nil
}

// WriteSnapshot overwrites the calibration snapshot for one
// backend+mode. Row order must be sweep order; the comparison step
// aligns rows positionally.
func (s *Store) WriteSnapshot(backendName, mode string, data [][]float64) error {
	f, err := os.Create(s.snapshotPath(key(backendName, mode)))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, 0, 8)
	for _, row := range data {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'e', 17, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadSnapshot reads one snapshot by its backend_mode name.
func (s *Store) LoadSnapshot(name string) ([][]float64, error) {
	f, err := os.Open(s.snapshotPath(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}

	data := make([][]float64, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("snapshot %s [%d,%d]: %w", name, i, j, err)
			}
			row[j] = v
		}
		data[i] = row
	}
	return data, nil
}

// ListSnapshots returns the backend_mode names of all stored snapshots,
// sorted.
func (s *Store) ListSnapshots() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, numericalDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadAllSnapshots loads every stored snapshot keyed by backend_mode.
func (s *Store) LoadAllSnapshots() (map[string][][]float64, error) {
	names, err := s.ListSnapshots()
	if err != nil {
		return nil, err
	}
	snaps := make(map[string][][]float64, len(names))
	for _, name := range names {
		data, err := s.LoadSnapshot(name)
		if err != nil {
			return nil, err
		}
		snaps[name] = data
	}
	return snaps, nil
}
