package integrators

import (
	"fmt"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// RK4 is the classic explicit 4th-order Runge-Kutta stepper with a fixed
// step size. A step commits all-or-nothing: any failed or non-finite
// derivative evaluation aborts the step and the caller's state is left
// untouched. The snapshot attached to a committed step comes from the
// final (k4) evaluation at the provisional end-of-step state.
type RK4 struct {
	k1, k2, k3, k4 kinetics.State
	scratch        kinetics.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(kinetics.State, n)
		r.k2 = make(kinetics.State, n)
		r.k3 = make(kinetics.State, n)
		r.k4 = make(kinetics.State, n)
		r.scratch = make(kinetics.State, n)
	}
}

func (r *RK4) Step(sys kinetics.System, x kinetics.State, t, dt float64) (kinetics.State, kinetics.Snapshot, error) {
	n := len(x)
	r.ensureScratch(n)

	k1, _, err := sys.Derive(x, t)
	if err != nil {
		return nil, kinetics.Snapshot{}, err
	}
	if !k1.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: derivative k1 at t=%g", kinetics.ErrNonFinite, t)
	}
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2, _, err := sys.Derive(r.scratch, t+dt*0.5)
	if err != nil {
		return nil, kinetics.Snapshot{}, err
	}
	if !k2.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: derivative k2 at t=%g", kinetics.ErrNonFinite, t)
	}
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3, _, err := sys.Derive(r.scratch, t+dt*0.5)
	if err != nil {
		return nil, kinetics.Snapshot{}, err
	}
	if !k3.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: derivative k3 at t=%g", kinetics.ErrNonFinite, t)
	}
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4, aux, err := sys.Derive(r.scratch, t+dt)
	if err != nil {
		return nil, kinetics.Snapshot{}, err
	}
	if !k4.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: derivative k4 at t=%g", kinetics.ErrNonFinite, t)
	}
	copy(r.k4, k4)

	result := make(kinetics.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	if !result.IsValid() {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: state after step at t=%g", kinetics.ErrNonFinite, t)
	}

	return result, aux, nil
}
