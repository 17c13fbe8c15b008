// Package sbm implements the core of the NASA Standard Breakup Model: a
// Monte Carlo generator that turns one or two satellites involved in an
// on-orbit fragmentation event into a population of debris fragments.
//
// The package consumes already-materialized Satellite descriptors and a
// SimulationKind, and returns a dense Tensor of per-fragment position,
// characteristic length, area-to-mass ratio, area, mass, and velocity.
// Configuration-file parsing, orbital-element conversions, and orbital
// propagation after the event are external to this package.
package sbm
