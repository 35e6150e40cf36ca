package physics

import "github.com/san-kum/odebench/internal/dynamo"

type Lorenz struct{ sigma, beta, rho float64 }

func NewLorenz(sigma, beta, rho float64) *Lorenz { return &Lorenz{sigma, beta, rho} }
func (l *Lorenz) StateDim() int                  { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}
