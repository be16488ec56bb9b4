package kinetics

import (
	"errors"
	"fmt"
)

// Error kinds for simulation operations.
var (
	// ErrDomain indicates a concentration outside the valid domain of the
	// saturating flux formula.
	ErrDomain = errors.New("kinetics: concentration outside flux domain")

	// ErrNonFinite indicates a derivative or state with NaN or Inf values.
	ErrNonFinite = errors.New("kinetics: non-finite value")

	// ErrConfig indicates malformed parameters or run configuration.
	ErrConfig = errors.New("kinetics: invalid configuration")

	// ErrDimensionMismatch indicates a state vector whose length does not
	// match the system's pool count.
	ErrDimensionMismatch = errors.New("kinetics: state dimension mismatch")
)

// DomainError reports the pool whose concentration left the domain of the
// Vmax/(1+K/c) form. Unwraps to [ErrDomain].
type DomainError struct {
	Pool          string
	Concentration float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("kinetics: pool %s concentration %g outside flux domain", e.Pool, e.Concentration)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// StepError wraps a failure during one integration step with the step index
// and the time at which the step started.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
