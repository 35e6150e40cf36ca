package physics

import "github.com/san-kum/odebench/internal/dynamo"

type Rossler struct{ a, b, c float64 }

func NewRossler(a, b, c float64) *Rossler { return &Rossler{a, b, c} }
func (r *Rossler) StateDim() int          { return 3 }

// Derive calculates the Rossler attractor derivatives.
func (r *Rossler) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{-s[1] - s[2], s[0] + r.a*s[1], r.b + s[2]*(s[0]-r.c)}
}
