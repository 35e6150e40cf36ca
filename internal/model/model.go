// Package model defines the parametric ODE systems the benchmark runs
// against. A Definition is the single source of truth for a system:
// every backend translates the same Definition into its own
// representation, which is what makes timings and final states
// comparable across backends.
package model

// StateVar is one state variable with its initial value. Order matters:
// snapshot columns follow the declaration order.
type StateVar struct {
	Name    string
	Initial float64
}

// Param is the one parameter varied across the ensemble. Lo and Hi are
// the inclusive sweep range.
type Param struct {
	Name    string
	Default float64
	Lo, Hi  float64
}

// TimeSpan is the integration interval.
type TimeSpan struct {
	T0, T1 float64
}

// Definition describes one ODE system: ordered state variables with
// initial values, fixed constants, the single swept parameter, and the
// time span. Definitions are immutable once registered.
type Definition struct {
	Name      string
	States    []StateVar
	Constants map[string]float64
	Param     Param
	Span      TimeSpan
}

// Dim returns the state dimension.
func (d Definition) Dim() int { return len(d.States) }

// InitialState returns a fresh initial-state vector in declaration
// order. Every trajectory of the ensemble starts from the same state;
// only the swept parameter differs.
func (d Definition) InitialState() []float64 {
	x := make([]float64, len(d.States))
	for i, s := range d.States {
		x[i] = s.Initial
	}
	return x
}
