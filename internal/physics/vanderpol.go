package physics

import "github.com/san-kum/odebench/internal/dynamo"

type VanDerPol struct{ mu float64 }

func NewVanDerPol(mu float64) *VanDerPol { return &VanDerPol{mu} }
func (v *VanDerPol) StateDim() int       { return 2 }

// Derive calculates the Van der Pol oscillator derivatives.
func (v *VanDerPol) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{s[1], v.mu*(1.0-s[0]*s[0])*s[1] - s[0]}
}
