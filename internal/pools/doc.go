// Package pools provides kinetic flux models over reservoir networks.
//
// A [Network] holds pools (capacity, optional constant inflow) and
// [FluxTerm] transfers between them, each a pure saturating function
// Vmax/(1+K/c) of the source pool's concentration. A pool's derivative is
// the signed sum of its incident fluxes plus its external inflow, so the
// same evaluation code serves any pool count and topology.
//
// [NewTwoPool] builds the concrete A/B system with exchange fluxes Fab and
// Fba and environmental outflow Fbo.
package pools
