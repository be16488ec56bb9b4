package kinetics

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Snapshot holds non-state quantities derived during one evaluation of a
// system: per-pool concentrations and per-flux transfer rates. A fresh
// value is produced per evaluation; snapshots are never integrated.
type Snapshot struct {
	Concentrations []float64
	Fluxes         []float64
}

func (a Snapshot) Clone() Snapshot {
	c := Snapshot{
		Concentrations: make([]float64, len(a.Concentrations)),
		Fluxes:         make([]float64, len(a.Fluxes)),
	}
	copy(c.Concentrations, a.Concentrations)
	copy(c.Fluxes, a.Fluxes)
	return c
}

func (a Snapshot) IsValid() bool {
	for _, v := range a.Concentrations {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range a.Fluxes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a pool model: dX/dt = f(X, t) plus the auxiliary snapshot
// computed along the way. Derive must be pure.
type System interface {
	Derive(x State, t float64) (State, Snapshot, error)
	StateDim() int
}

// Labeled is implemented by systems that can name their pools and fluxes
// for table headers and plot captions.
type Labeled interface {
	PoolNames() []string
	FluxNames() []string
}

// Integrator advances a state by one fixed step. The returned snapshot is
// the one from the integrator's final derivative evaluation. On error the
// input state is untouched and no partial result is returned.
type Integrator interface {
	Step(sys System, x State, t, dt float64) (State, Snapshot, error)
}

// Observer is notified synchronously after each committed step, with the
// committed record and the trace so far. The driver does not advance until
// the call returns.
type Observer interface {
	OnStep(rec Record, tr *Trace)
}

type Metric interface {
	Name() string
	Observe(rec Record)
	Value() float64
	Reset()
}

type Config struct {
	Dt    float64
	Steps int
	T0    float64
}

func DefaultConfig() Config {
	return Config{Dt: 0.1, Steps: 100}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrConfig, c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrConfig, c.Steps)
	}
	return nil
}
