package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/poolsim/internal/kinetics"
)

func rec(t, total, outflow float64) kinetics.Record {
	return kinetics.Record{
		Time:  t,
		State: kinetics.State{total},
		Aux:   kinetics.Snapshot{Fluxes: []float64{outflow}},
	}
}

func TestBalanceConstantFlow(t *testing.T) {
	// Inflow 2.0, outflow 0.5: total mass should grow by 1.5 per unit time.
	b := NewBalance(2.0, []int{0})

	b.Observe(rec(0.0, 10.0, 0.5))
	b.Observe(rec(1.0, 11.5, 0.5))
	b.Observe(rec(2.0, 13.0, 0.5))

	if drift := b.Value(); math.Abs(drift) > 1e-12 {
		t.Errorf("drift = %g, want 0", drift)
	}
}

func TestBalanceDetectsLoss(t *testing.T) {
	b := NewBalance(2.0, []int{0})

	b.Observe(rec(0.0, 10.0, 0.5))
	b.Observe(rec(1.0, 10.0, 0.5)) // mass did not grow as the flows demand

	if drift := b.Value(); math.Abs(drift-1.5) > 1e-12 {
		t.Errorf("drift = %g, want 1.5", drift)
	}
}

func TestBalanceReset(t *testing.T) {
	b := NewBalance(2.0, []int{0})

	b.Observe(rec(0.0, 10.0, 0.5))
	b.Observe(rec(1.0, 10.0, 0.5))
	b.Reset()

	if b.Value() != 0 {
		t.Error("expected zero drift after reset")
	}

	b.Observe(rec(0.0, 10.0, 0.5))
	b.Observe(rec(1.0, 11.5, 0.5))
	if drift := b.Value(); math.Abs(drift) > 1e-12 {
		t.Errorf("drift after reset = %g, want 0", drift)
	}
}

func TestPeakFlux(t *testing.T) {
	p := NewPeakFlux()

	p.Observe(kinetics.Record{Aux: kinetics.Snapshot{Fluxes: []float64{1.0, 7.5, 3.0}}})
	p.Observe(kinetics.Record{Aux: kinetics.Snapshot{Fluxes: []float64{2.0, 4.0, 6.0}}})

	if p.Value() != 7.5 {
		t.Errorf("peak = %f, want 7.5", p.Value())
	}

	p.Reset()
	if p.Value() != 0 {
		t.Error("expected zero peak after reset")
	}
}
