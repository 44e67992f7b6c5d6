// Package arm models a serial chain of motor-driven rigid links.
//
// An [Arm] owns an ordered, never-empty sequence of couples. Each couple pairs
// a [Joint] (gear ratio, anchor, angular velocity, angle, motor) with a [Link]
// (mass, length). Couples implement [dynamo.Dynamics], so any integrator can
// advance them; the arm advances every couple once per call to
// [Arm.AdvanceEach] under a zero-order-held current.
//
// # Timestep modes
//
// [TimestepSingle] assigns the integrator result as the new velocity and then
// accumulates angle += v·dt. [TimestepLegacy] reproduces the historical
// behaviour that multiplies the integrator result by dt once more before
// assigning it. Legacy mode is kept for regression comparison only.
//
// # Chain modes
//
// [ChainFixed] draws every link from the anchor its joint received when it was
// appended. [ChainForward] recomputes anchors at query time by accumulating
// link transforms from the base outward.
//
// # Thread Safety
//
// An Arm is NOT safe for concurrent use. The sim package serialises access
// and hands renderers immutable snapshots.
package arm
