package metrics

import "github.com/san-kum/poolsim/internal/kinetics"

// PeakFlux tracks the largest flux rate observed across a run.
type PeakFlux struct {
	max float64
}

func NewPeakFlux() *PeakFlux {
	return &PeakFlux{}
}

func (p *PeakFlux) Name() string { return "peak_flux" }

func (p *PeakFlux) Observe(rec kinetics.Record) {
	for _, v := range rec.Aux.Fluxes {
		if v > p.max {
			p.max = v
		}
	}
}

func (p *PeakFlux) Value() float64 { return p.max }

func (p *PeakFlux) Reset() { p.max = 0 }
