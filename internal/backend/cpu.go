package backend

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"

	"github.com/san-kum/odebench/internal/dynamo"
	"github.com/san-kum/odebench/internal/integrators"
	"github.com/san-kum/odebench/internal/model"
	"github.com/san-kum/odebench/internal/physics"
)

// CPU is the in-process reference backend. It integrates every
// trajectory with the internal RK4/RK45 integrators, chunking the
// ensemble across workers. The parallelism is internal: Solve still
// blocks until the whole ensemble is done.
type CPU struct {
	workers int
}

func NewCPU() *CPU {
	return &CPU{workers: runtime.NumCPU()}
}

func (c *CPU) Name() string { return "cpu" }

// Class is transfer: each trial re-walks the whole ensemble on the host,
// so trials are expensive and few repeats suffice.
func (c *CPU) Class() Class { return ClassTransfer }

// translators maps catalog models to system constructors. This is the
// CPU backend's model translation; other backends keep their own.
var translators = map[string]func(def model.Definition, p float64) dynamo.System{
	"lorenz": func(def model.Definition, p float64) dynamo.System {
		return physics.NewLorenz(def.Constants["sigma"], def.Constants["beta"], p)
	},
	"vanderpol": func(def model.Definition, p float64) dynamo.System {
		return physics.NewVanDerPol(p)
	},
	"rossler": func(def model.Definition, p float64) dynamo.System {
		return physics.NewRossler(def.Constants["a"], def.Constants["b"], p)
	},
}

func (c *CPU) Configure(def model.Definition, cfg StepConfig) (Solver, error) {
	build, ok := translators[strings.ToLower(def.Name)]
	if !ok {
		return nil, fmt.Errorf("cpu backend: no translation for model %q", def.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cpu backend: %w", err)
	}
	return &cpuSolver{def: def, cfg: cfg, build: build, workers: c.workers}, nil
}

type cpuSolver struct {
	def     model.Definition
	cfg     StepConfig
	build   func(def model.Definition, p float64) dynamo.System
	workers int
}

func (s *cpuSolver) Solve(params []float64) ([][]float64, error) {
	n := len(params)
	out := make([][]float64, n)

	workers := s.workers
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunk
			end := start + chunk
			if end > n {
				end = n
			}

			for i := start; i < end; i++ {
				final, err := s.solveOne(params[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("trajectory %d (%s=%g): %w", i, s.def.Param.Name, params[i], err)
					}
					mu.Unlock()
					return
				}
				out[i] = final
			}
		}(w)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (s *cpuSolver) solveOne(p float64) ([]float64, error) {
	sys := s.build(s.def, p)
	x := dynamo.State(s.def.InitialState())
	t0, t1 := s.def.Span.T0, s.def.Span.T1

	switch s.cfg.Mode {
	case Fixed:
		integ := integrators.NewRK4()
		dt := s.cfg.Dt
		steps := int(math.Floor((t1 - t0) / dt))
		for i := 0; i < steps; i++ {
			x = integ.Step(sys, x, t0+float64(i)*dt, dt)
		}
		if rem := t1 - (t0 + float64(steps)*dt); rem > 1e-12 {
			x = integ.Step(sys, x, t1-rem, rem)
		}

	case Adaptive:
		integ := integrators.NewRK45()
		ctl := dynamo.StepControl{Atol: s.cfg.Atol, Rtol: s.cfg.Rtol, DtMin: s.cfg.DtMin, DtMax: s.cfg.DtMax}
		t := t0
		dt := s.cfg.Dt
		for t < t1 {
			if dt > t1-t {
				dt = t1 - t
			}
			xNew, dtTaken, dtNext, err := integ.StepAdaptive(sys, x, t, dt, ctl)
			if err != nil {
				return nil, err
			}
			x = xNew
			t += dtTaken
			dt = dtNext
		}
	}

	if !x.IsValid() {
		return nil, dynamo.ErrInvalidState
	}
	return x, nil
}
