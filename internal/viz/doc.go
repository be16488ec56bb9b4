// Package viz provides terminal output for simulation runs.
//
// Three consumers of the trace live here, all outside the numerical core:
//
//   - [StepLogger]: per-step comma-separated table with a header line
//   - [RenderPanels]: three stacked asciigraph charts (pools and total,
//     concentrations, fluxes)
//   - [LiveRenderer]: ANSI full-redraw view attached as a run observer
//   - [Model]: interactive Bubble Tea live view with pause and reset
//
// Observer calls are synchronous with the stepping loop, so any pacing
// delay configured on [LiveRenderer] throttles the simulation itself.
package viz
