package integrators

import (
	"fmt"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// Euler is the first-order explicit stepper. Its snapshot comes from the
// single evaluation at the start-of-step state.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys kinetics.System, x kinetics.State, t, dt float64) (kinetics.State, kinetics.Snapshot, error) {
	dx, aux, err := sys.Derive(x, t)
	if err != nil {
		return nil, kinetics.Snapshot{}, err
	}
	if !dx.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: derivative at t=%g", kinetics.ErrNonFinite, t)
	}

	result := make(kinetics.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	if !result.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: state after step at t=%g", kinetics.ErrNonFinite, t)
	}

	return result, aux, nil
}
