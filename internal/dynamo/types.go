package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE right-hand side. A System is constructed for one
// trajectory with its swept-parameter value baked in; Derive must not
// mutate x.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// StepControl bounds an adaptive integrator: error tolerances and the
// step-size window the controller may move within.
type StepControl struct {
	Atol  float64
	Rtol  float64
	DtMin float64
	DtMax float64
}

// AdaptiveIntegrator advances by one error-controlled step, returning
// the accepted state, the step size actually taken (rejections shrink
// it below the requested dt), and the suggested next step size.
type AdaptiveIntegrator interface {
	StepAdaptive(sys System, x State, t, dt float64, ctl StepControl) (xNew State, dtTaken, dtNext float64, err error)
}
