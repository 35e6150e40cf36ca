package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownModel indicates a lookup for a model the catalog does not
// define.
var ErrUnknownModel = errors.New("unknown model")

// Catalog is an explicit, immutable name -> Definition registry,
// constructed once at startup and passed to whatever needs it.
type Catalog struct {
	defs map[string]Definition
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	c := &Catalog{defs: make(map[string]Definition)}
	for _, d := range builtins() {
		c.defs[strings.ToLower(d.Name)] = d
	}
	return c
}

// Lookup resolves a model by name, case-insensitively.
func (c *Catalog) Lookup(name string) (Definition, error) {
	d, ok := c.defs[strings.ToLower(name)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownModel, name, strings.Join(c.Names(), ", "))
	}
	return d, nil
}

// Names lists the registered model names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtins() []Definition {
	return []Definition{
		{
			// dx = sigma*(y-x); dy = x*(rho-z) - y; dz = x*y - beta*z
			Name: "lorenz",
			States: []StateVar{
				{Name: "x", Initial: 1.0},
				{Name: "y", Initial: 0.0},
				{Name: "z", Initial: 0.0},
			},
			Constants: map[string]float64{"sigma": 10.0, "beta": 8.0 / 3.0},
			Param:     Param{Name: "rho", Default: 21.0, Lo: 0.0, Hi: 21.0},
			Span:      TimeSpan{T0: 0.0, T1: 1.0},
		},
		{
			// dx = y; dy = mu*(1-x^2)*y - x
			Name: "vanderpol",
			States: []StateVar{
				{Name: "x", Initial: 2.0},
				{Name: "y", Initial: 0.0},
			},
			Constants: map[string]float64{},
			Param:     Param{Name: "mu", Default: 1.0, Lo: 0.1, Hi: 5.0},
			Span:      TimeSpan{T0: 0.0, T1: 2.0 * math.Pi},
		},
		{
			// dx = -y-z; dy = x + a*y; dz = b + z*(x-c)
			Name: "rossler",
			States: []StateVar{
				{Name: "x", Initial: 1.0},
				{Name: "y", Initial: 1.0},
				{Name: "z", Initial: 1.0},
			},
			Constants: map[string]float64{"a": 0.2, "b": 0.2},
			Param:     Param{Name: "c", Default: 5.7, Lo: 4.0, Hi: 9.0},
			Span:      TimeSpan{T0: 0.0, T1: 1.0},
		},
	}
}
