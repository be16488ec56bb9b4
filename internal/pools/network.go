package pools

import (
	"fmt"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// External marks a flux destination outside the modeled pools.
const External = -1

// FluxTerm describes one saturating transfer. The rate depends only on the
// source pool's concentration; the destination is another pool or External.
type FluxTerm struct {
	Name string
	From int
	To   int
	Vmax float64
	K    float64
}

// Rate evaluates the Michaelis-Menten rate Vmax/(1+K/c) at the source
// concentration c. Defined only for c > 0.
func (f FluxTerm) Rate(c float64) float64 {
	return f.Vmax / (1 + f.K/c)
}

// Pool is one reservoir: a capacity (for concentration = amount/capacity)
// and an optional constant external inflow.
type Pool struct {
	Name     string
	Capacity float64
	Input    float64
}

// Network is a kinetic model over an arbitrary pool topology. Parameters
// are fixed at construction; a Network may be shared, without
// synchronization, across concurrent independent runs.
type Network struct {
	pools []Pool
	terms []FluxTerm
}

func NewNetwork(ps []Pool, terms []FluxTerm) (*Network, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: network needs at least one pool", kinetics.ErrConfig)
	}
	for _, p := range ps {
		if p.Capacity <= 0 {
			return nil, fmt.Errorf("%w: pool %s capacity must be positive, got %g", kinetics.ErrConfig, p.Name, p.Capacity)
		}
	}
	for _, f := range terms {
		if f.From < 0 || f.From >= len(ps) {
			return nil, fmt.Errorf("%w: flux %s source pool index %d out of range", kinetics.ErrConfig, f.Name, f.From)
		}
		if f.To != External && (f.To < 0 || f.To >= len(ps)) {
			return nil, fmt.Errorf("%w: flux %s destination pool index %d out of range", kinetics.ErrConfig, f.Name, f.To)
		}
		if f.Vmax < 0 {
			return nil, fmt.Errorf("%w: flux %s vmax must be non-negative, got %g", kinetics.ErrConfig, f.Name, f.Vmax)
		}
		if f.K <= 0 {
			return nil, fmt.Errorf("%w: flux %s affinity constant must be positive, got %g", kinetics.ErrConfig, f.Name, f.K)
		}
	}

	n := &Network{
		pools: make([]Pool, len(ps)),
		terms: make([]FluxTerm, len(terms)),
	}
	copy(n.pools, ps)
	copy(n.terms, terms)
	return n, nil
}

func (n *Network) StateDim() int {
	return len(n.pools)
}

func (n *Network) PoolNames() []string {
	names := make([]string, len(n.pools))
	for i, p := range n.pools {
		names[i] = p.Name
	}
	return names
}

func (n *Network) FluxNames() []string {
	names := make([]string, len(n.terms))
	for i, f := range n.terms {
		names[i] = f.Name
	}
	return names
}

// TotalInput is the summed constant external inflow across pools.
func (n *Network) TotalInput() float64 {
	sum := 0.0
	for _, p := range n.pools {
		sum += p.Input
	}
	return sum
}

// ExternalFluxes returns the indexes of flux terms draining to External.
func (n *Network) ExternalFluxes() []int {
	idx := make([]int, 0, len(n.terms))
	for i, f := range n.terms {
		if f.To == External {
			idx = append(idx, i)
		}
	}
	return idx
}

// Derive evaluates dX/dt and a fresh snapshot at (x, t). A source pool
// concentration at or below zero is outside the flux formula's domain and
// yields a DomainError; nothing is clamped.
func (n *Network) Derive(x kinetics.State, t float64) (kinetics.State, kinetics.Snapshot, error) {
	if len(x) != len(n.pools) {
		return nil, kinetics.Snapshot{}, fmt.Errorf("%w: state has %d pools, network has %d", kinetics.ErrDimensionMismatch, len(x), len(n.pools))
	}

	con := make([]float64, len(n.pools))
	for i, p := range n.pools {
		con[i] = x[i] / p.Capacity
	}

	dx := make(kinetics.State, len(n.pools))
	for i, p := range n.pools {
		dx[i] = p.Input
	}

	fluxes := make([]float64, len(n.terms))
	for i, f := range n.terms {
		c := con[f.From]
		if c <= 0 {
			return nil, kinetics.Snapshot{}, &kinetics.DomainError{Pool: n.pools[f.From].Name, Concentration: c}
		}
		rate := f.Rate(c)
		fluxes[i] = rate
		dx[f.From] -= rate
		if f.To != External {
			dx[f.To] += rate
		}
	}

	return dx, kinetics.Snapshot{Concentrations: con, Fluxes: fluxes}, nil
}
