// Package harness measures one (backend, stepping mode, trajectory
// count) cell at a time. The protocol is fixed so numbers stay
// comparable across backends with very different startup costs: one
// untimed warm-up solve absorbs compilation and initialization, then R
// timed trials each solve the whole ensemble once, and the recorded
// elapsed time is the minimum over the trials — the minimum, not the
// mean, approximates steady-state cost net of scheduling noise.
package harness

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/odebench/internal/backend"
	"github.com/san-kum/odebench/internal/model"
	"github.com/san-kum/odebench/internal/results"
)

// Default trial counts per backend class.
const (
	DefaultResidentRepeats = 100
	DefaultTransferRepeats = 10
)

// BenchmarkResult is one measured cell. Created once, appended to the
// timing log, never mutated.
type BenchmarkResult struct {
	Backend   string
	Mode      backend.Mode
	Count     int
	ElapsedMS float64
}

// ExecError reports a backend failure during configuration, warm-up or
// a timed trial. The harness never retries and never masks it.
type ExecError struct {
	Backend string
	Mode    backend.Mode
	Count   int
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("backend %s (%s, n=%d): %v", e.Backend, e.Mode, e.Count, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Harness runs the measurement protocol and appends each result to the
// store's timing log. Cells run strictly sequentially; a Harness is not
// safe for concurrent use.
type Harness struct {
	store   *results.Store
	repeats map[backend.Class]int
	now     func() time.Time
}

// New returns a harness writing to store. repeats overrides the trial
// count per backend class; nil keeps the defaults.
func New(store *results.Store, repeats map[backend.Class]int) *Harness {
	r := map[backend.Class]int{
		backend.ClassResident: DefaultResidentRepeats,
		backend.ClassTransfer: DefaultTransferRepeats,
	}
	for class, n := range repeats {
		if n > 0 {
			r[class] = n
		}
	}
	return &Harness{store: store, repeats: r, now: time.Now}
}

// Repeats returns the trial count used for a backend class.
func (h *Harness) Repeats(class backend.Class) int { return h.repeats[class] }

// Measure runs the warm-up/repeat/minimum protocol for one cell and
// appends the result line to the backend+mode timing log. Any adapter
// error propagates as *ExecError; nothing is written on failure.
func (h *Harness) Measure(ad backend.Adapter, def model.Definition, cfg backend.StepConfig, params []float64) (BenchmarkResult, error) {
	count := len(params)
	fail := func(err error) (BenchmarkResult, error) {
		return BenchmarkResult{}, &ExecError{Backend: ad.Name(), Mode: cfg.Mode, Count: count, Err: err}
	}

	solver, err := ad.Configure(def, cfg)
	if err != nil {
		return fail(err)
	}

	// Warm-up: untimed, result discarded.
	if _, err := solver.Solve(params); err != nil {
		return fail(err)
	}

	best := math.Inf(1)
	for i := 0; i < h.repeats[ad.Class()]; i++ {
		start := h.now()
		if _, err := solver.Solve(params); err != nil {
			return fail(err)
		}
		if ms := h.now().Sub(start).Seconds() * 1000; ms < best {
			best = ms
		}
	}

	res := BenchmarkResult{Backend: ad.Name(), Mode: cfg.Mode, Count: count, ElapsedMS: best}
	if err := h.store.AppendTiming(res.Backend, string(res.Mode), res.Count, res.ElapsedMS); err != nil {
		return BenchmarkResult{}, fmt.Errorf("recording %s (%s, n=%d): %w", res.Backend, res.Mode, res.Count, err)
	}
	return res, nil
}

// FinalStates runs a single untimed solve and returns the ensemble's
// final states in sweep order, for the calibration snapshot.
func (h *Harness) FinalStates(ad backend.Adapter, def model.Definition, cfg backend.StepConfig, params []float64) ([][]float64, error) {
	solver, err := ad.Configure(def, cfg)
	if err != nil {
		return nil, &ExecError{Backend: ad.Name(), Mode: cfg.Mode, Count: len(params), Err: err}
	}
	out, err := solver.Solve(params)
	if err != nil {
		return nil, &ExecError{Backend: ad.Name(), Mode: cfg.Mode, Count: len(params), Err: err}
	}
	return out, nil
}
