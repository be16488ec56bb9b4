package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/poolsim/internal/integrators"
	"github.com/san-kum/poolsim/internal/kinetics"
	"github.com/san-kum/poolsim/internal/metrics"
	"github.com/san-kum/poolsim/internal/pools"
	"github.com/san-kum/poolsim/internal/sim"
)

// recordingObserver captures the trace length seen at each notification.
type recordingObserver struct {
	times   []float64
	lengths []int
}

func (o *recordingObserver) OnStep(rec kinetics.Record, tr *kinetics.Trace) {
	o.times = append(o.times, rec.Time)
	o.lengths = append(o.lengths, tr.Len())
}

// cancelingObserver cancels the run context after a fixed number of steps.
type cancelingObserver struct {
	after  int
	seen   int
	cancel context.CancelFunc
}

func (o *cancelingObserver) OnStep(rec kinetics.Record, tr *kinetics.Trace) {
	o.seen++
	if o.seen == o.after {
		o.cancel()
	}
}

var _ = Describe("Driver", func() {
	var (
		net   *pools.Network
		drv   *sim.Driver
		x0    kinetics.State
		cfg   kinetics.Config
		ctx   context.Context
	)

	BeforeEach(func() {
		var err error
		net, err = pools.NewTwoPool(pools.DefaultTwoPoolParams())
		Expect(err).NotTo(HaveOccurred())
		drv = sim.New(net, integrators.NewRK4())
		x0 = kinetics.State{9.0, 6.0}
		cfg = kinetics.Config{Dt: 0.1, Steps: 100}
		ctx = context.Background()
	})

	It("records the initial snapshot before any step", func() {
		cfg.Steps = 0
		tr, err := drv.Run(ctx, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(1))

		rec := tr.At(0)
		Expect(rec.Time).To(Equal(0.0))
		Expect([]float64(rec.State)).To(Equal([]float64{9.0, 6.0}))
		Expect(rec.Aux.Concentrations).To(HaveLen(2))
		Expect(rec.Aux.Fluxes).To(HaveLen(3))
	})

	It("does not alias the caller's initial state", func() {
		cfg.Steps = 0
		tr, err := drv.Run(ctx, x0, cfg)
		Expect(err).NotTo(HaveOccurred())

		x0[0] = 999
		Expect(tr.At(0).State[0]).To(Equal(9.0))
	})

	It("produces 101 records for the reference scenario", func() {
		tr, err := drv.Run(ctx, x0, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(101))

		Expect(tr.At(0).Time).To(Equal(0.0))
		Expect(tr.At(100).Time).To(BeNumerically("~", 10.0, 1e-9))

		for _, rec := range tr.Records() {
			Expect(rec.State.IsValid()).To(BeTrue())
			for _, c := range rec.Aux.Concentrations {
				Expect(c).To(BeNumerically(">", 0))
			}
			for _, f := range rec.Aux.Fluxes {
				Expect(f).To(BeNumerically(">=", 0))
				Expect(math.IsInf(f, 0)).To(BeFalse())
			}
		}
	})

	It("is deterministic across identical runs", func() {
		tr1, err := drv.Run(ctx, x0, cfg)
		Expect(err).NotTo(HaveOccurred())

		drv2 := sim.New(net, integrators.NewRK4())
		tr2, err := drv2.Run(ctx, x0, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(tr2.Len()).To(Equal(tr1.Len()))
		for i, rec := range tr1.All() {
			Expect([]float64(tr2.At(i).State)).To(Equal([]float64(rec.State)))
			Expect(tr2.At(i).Aux.Fluxes).To(Equal(rec.Aux.Fluxes))
		}
	})

	It("holds an equilibrium state steady", func() {
		// Pick Vmax values so both derivatives vanish at the initial state:
		// the outflow matches the inflow and the exchange fluxes cancel.
		p := pools.DefaultTwoPoolParams()
		conA := 9.0 / p.CapacityA
		conB := 6.0 / p.CapacityB
		fba := p.VmaxBA / (1 + p.KBA/conB)
		p.VmaxBO = p.Input * (1 + p.KBO/conB)
		p.VmaxAB = (p.Input + fba) * (1 + p.KAB/conA)

		eqNet, err := pools.NewTwoPool(p)
		Expect(err).NotTo(HaveOccurred())

		dx, _, err := eqNet.Derive(x0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(dx[0]).To(BeNumerically("~", 0, 1e-12))
		Expect(dx[1]).To(BeNumerically("~", 0, 1e-12))

		eqDrv := sim.New(eqNet, integrators.NewRK4())
		cfg.Steps = 50
		tr, err := eqDrv.Run(ctx, x0, cfg)
		Expect(err).NotTo(HaveOccurred())

		final := tr.Last().State
		Expect(final[0]).To(BeNumerically("~", 9.0, 1e-9))
		Expect(final[1]).To(BeNumerically("~", 6.0, 1e-9))
	})

	It("fails before stepping on a zero initial concentration", func() {
		tr, err := drv.Run(ctx, kinetics.State{0.0, 6.0}, cfg)
		Expect(err).To(MatchError(kinetics.ErrDomain))
		Expect(tr).To(BeNil())
	})

	It("halts on a mid-run domain violation and keeps committed records", func() {
		// A single pool drained at a near-constant rate: with K tiny the
		// flux stays close to Vmax, so an RK4 stage overshoots below zero
		// in finite time.
		drain, err := pools.NewNetwork(
			[]pools.Pool{{Name: "A", Capacity: 1.0}},
			[]pools.FluxTerm{{Name: "Fout", From: 0, To: pools.External, Vmax: 10.0, K: 1e-9}},
		)
		Expect(err).NotTo(HaveOccurred())

		drainDrv := sim.New(drain, integrators.NewRK4())
		tr, err := drainDrv.Run(ctx, kinetics.State{2.5}, kinetics.Config{Dt: 0.1, Steps: 100})

		Expect(err).To(MatchError(kinetics.ErrDomain))

		var stepErr *kinetics.StepError
		Expect(err).To(BeAssignableToTypeOf(stepErr))

		Expect(tr).NotTo(BeNil())
		Expect(tr.Len()).To(BeNumerically(">", 1))
		Expect(tr.Len()).To(BeNumerically("<", 101))
		for _, rec := range tr.Records() {
			Expect(rec.State[0]).To(BeNumerically(">", 0))
		}
	})

	It("rejects invalid run configurations", func() {
		_, err := drv.Run(ctx, x0, kinetics.Config{Dt: 0, Steps: 10})
		Expect(err).To(MatchError(kinetics.ErrConfig))

		_, err = drv.Run(ctx, x0, kinetics.Config{Dt: 0.1, Steps: -1})
		Expect(err).To(MatchError(kinetics.ErrConfig))

		_, err = drv.Run(ctx, kinetics.State{9.0}, cfg)
		Expect(err).To(MatchError(kinetics.ErrDimensionMismatch))
	})

	It("stops between steps when the context is canceled", func() {
		cancelCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		obs := &cancelingObserver{after: 3, cancel: cancel}
		drv.AddObserver(obs)

		tr, err := drv.Run(cancelCtx, x0, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(tr.Len()).To(Equal(4))
	})

	Describe("observers", func() {
		It("notifies once per committed step with the trace so far", func() {
			obs := &recordingObserver{}
			drv.AddObserver(obs)

			cfg.Steps = 5
			tr, err := drv.Run(ctx, x0, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.Len()).To(Equal(6))

			Expect(obs.times).To(HaveLen(5))
			for i, n := range obs.lengths {
				Expect(n).To(Equal(i + 2))
				Expect(obs.times[i]).To(BeNumerically("~", float64(i+1)*cfg.Dt, 1e-12))
			}
		})
	})

	Describe("metrics", func() {
		It("keeps mass accounting within the sampling tolerance", func() {
			balance := metrics.NewBalance(net.TotalInput(), net.ExternalFluxes())
			drv.AddMetric(balance)
			drv.AddMetric(metrics.NewPeakFlux())

			_, err := drv.Run(ctx, x0, cfg)
			Expect(err).NotTo(HaveOccurred())

			values := drv.MetricValues()
			Expect(values).To(HaveKey("mass_drift"))
			Expect(values["mass_drift"]).To(BeNumerically("<", 0.05))
			Expect(values["peak_flux"]).To(BeNumerically(">", 0))
			Expect(values["peak_flux"]).To(BeNumerically("<", 18.0))
		})
	})
})
