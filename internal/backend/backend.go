// Package backend defines the contract every solver backend fulfills:
// translate a catalog model into its own representation, accept a
// stepping configuration and a parameter sweep, and return the final
// state of every trajectory in sweep order. Backends are selected by
// explicit name, never by runtime introspection.
package backend

import (
	"fmt"

	"github.com/san-kum/odebench/internal/model"
)

// Mode is the time-stepping policy.
type Mode string

const (
	Fixed    Mode = "fixed"
	Adaptive Mode = "adaptive"
)

// Class groups backends by per-call overhead. It selects how many timed
// trials the harness runs: many for resident backends whose steady-state
// cost dominates, few for backends that pay a heavy transfer cost on
// every call.
type Class int

const (
	ClassResident Class = iota
	ClassTransfer
)

// StepConfig configures one stepping mode. Dt is the fixed step, or the
// initial step when adaptive; the remaining fields apply to adaptive
// stepping only.
type StepConfig struct {
	Mode  Mode
	Dt    float64
	Atol  float64
	Rtol  float64
	DtMin float64
	DtMax float64
}

// Validate checks the configuration for the selected mode.
func (c StepConfig) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("step config: dt must be positive, got %g", c.Dt)
	}
	switch c.Mode {
	case Fixed:
	case Adaptive:
		if c.Atol <= 0 || c.Rtol <= 0 {
			return fmt.Errorf("step config: adaptive tolerances must be positive (atol=%g rtol=%g)", c.Atol, c.Rtol)
		}
		if c.DtMin <= 0 || c.DtMin > c.DtMax {
			return fmt.Errorf("step config: need 0 < dt_min <= dt_max (dt_min=%g dt_max=%g)", c.DtMin, c.DtMax)
		}
	default:
		return fmt.Errorf("step config: unknown mode %q", c.Mode)
	}
	return nil
}

// Solver is a backend instance configured for one (model, mode) pair.
// Solve integrates the whole ensemble once, one trajectory per sweep
// value, and returns the final states in sweep order (rows =
// trajectories, columns = state variables). Solve blocks until the
// backend's call returns.
type Solver interface {
	Solve(params []float64) ([][]float64, error)
}

// Adapter is one backend. Configure performs the backend-specific
// translation of the model definition and returns a solver bound to the
// requested stepping policy.
type Adapter interface {
	Name() string
	Class() Class
	Configure(def model.Definition, cfg StepConfig) (Solver, error)
}

// New returns the adapter registered under name.
func New(name string) (Adapter, error) {
	switch name {
	case "cpu":
		return NewCPU(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (available: cpu)", name)
	}
}
