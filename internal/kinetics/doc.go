// Package kinetics provides core primitives for pool-transfer simulations.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of saturable (Michaelis-Menten style) kinetic systems:
//
//   - [State]: amount of substance per pool
//   - [Snapshot]: diagnostic concentrations and fluxes per evaluation
//   - [System]: interface for kinetic models (dX/dt = f(X, t))
//
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Trace]: append-only run history of (time, state, snapshot)
//   - [Observer]: per-step notification boundary for renderers and loggers
//
// # Error Handling
//
// Failures are fail-fast: a concentration outside the flux formula's domain
// yields a [DomainError], non-finite values yield [ErrNonFinite], and both
// abort the running step with no partial state mutation. Malformed
// parameters are rejected at construction with [ErrConfig].
package kinetics
