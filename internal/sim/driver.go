package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// Driver owns the current time and state of a run and drives successive
// integrator steps, appending committed records to a trace and notifying
// observers synchronously after each commit.
type Driver struct {
	sys        kinetics.System
	integrator kinetics.Integrator
	observers  []kinetics.Observer
	metrics    []kinetics.Metric
}

func New(sys kinetics.System, integrator kinetics.Integrator) *Driver {
	return &Driver{
		sys:        sys,
		integrator: integrator,
		observers:  make([]kinetics.Observer, 0),
		metrics:    make([]kinetics.Metric, 0),
	}
}

func (d *Driver) AddObserver(o kinetics.Observer) { d.observers = append(d.observers, o) }
func (d *Driver) AddMetric(m kinetics.Metric)     { d.metrics = append(d.metrics, m) }

// Run evaluates the model once at (x0, t0) for record 0, then performs
// exactly cfg.Steps integration steps. On a step failure the error
// propagates and the trace retains all previously committed records.
// Cancellation is honored only between steps.
func (d *Driver) Run(ctx context.Context, x0 kinetics.State, cfg kinetics.Config) (*kinetics.Trace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != d.sys.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d pools, system has %d", kinetics.ErrDimensionMismatch, len(x0), d.sys.StateDim())
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := cfg.T0

	_, aux, err := d.sys.Derive(x, t)
	if err != nil {
		return nil, err
	}

	tr := kinetics.NewTrace(cfg.Steps + 1)
	rec := kinetics.Record{Time: t, State: x.Clone(), Aux: aux}
	tr.Append(rec)
	for _, m := range d.metrics {
		m.Observe(rec)
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		newX, aux, err := d.integrator.Step(d.sys, x, t, cfg.Dt)
		if err != nil {
			return tr, &kinetics.StepError{Step: i, Time: t, Err: err}
		}

		x = newX
		t += cfg.Dt

		rec := kinetics.Record{Time: t, State: x.Clone(), Aux: aux}
		tr.Append(rec)
		for _, m := range d.metrics {
			m.Observe(rec)
		}
		for _, o := range d.observers {
			o.OnStep(rec, tr)
		}
	}

	return tr, nil
}

// MetricValues reports the registered metrics after a run.
func (d *Driver) MetricValues() map[string]float64 {
	values := make(map[string]float64, len(d.metrics))
	for _, m := range d.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}
