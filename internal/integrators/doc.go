// Package integrators provides one-step solvers for scalar first-order ODEs.
//
// Every solver implements [dynamo.Integrator] and is generic over the float
// precision. The control input is held constant across a step (zero-order
// hold). Solvers carry no state between calls and are safe for concurrent use.
package integrators
