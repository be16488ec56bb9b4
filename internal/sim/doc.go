// Package sim drives simulation runs: it advances an integrator over a
// system step by step, collects the trace, feeds metrics and observers,
// and maps integrator names to constructors for the CLI.
package sim
