// Package physics provides the in-process right-hand sides for the
// models the catalog defines. Each system implements [dynamo.System]
// and is constructed per trajectory with its swept-parameter value:
//
//   - [Lorenz]: butterfly attractor, rho swept
//   - [VanDerPol]: nonlinear oscillator, mu swept
//   - [Rossler]: banded attractor, c swept
//
// External backends translate the same catalog definitions themselves;
// these implementations exist for the reference CPU backend and for
// tests.
package physics
