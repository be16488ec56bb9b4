package pools

// TwoPoolParams configures the two-reservoir system: a constant external
// inflow into pool A, exchange fluxes Fab/Fba between A and B, and an
// outflow Fbo from B to the environment.
type TwoPoolParams struct {
	CapacityA float64
	CapacityB float64
	Input     float64
	VmaxAB    float64
	KAB       float64
	VmaxBA    float64
	KBA       float64
	VmaxBO    float64
	KBO       float64
}

func DefaultTwoPoolParams() TwoPoolParams {
	return TwoPoolParams{
		CapacityA: 20.0,
		CapacityB: 25.0,
		Input:     3.0,
		VmaxAB:    18.0,
		KAB:       0.32,
		VmaxBA:    13.0,
		KBA:       0.36,
		VmaxBO:    8.0,
		KBO:       0.31,
	}
}

func NewTwoPool(p TwoPoolParams) (*Network, error) {
	return NewNetwork(
		[]Pool{
			{Name: "A", Capacity: p.CapacityA, Input: p.Input},
			{Name: "B", Capacity: p.CapacityB},
		},
		[]FluxTerm{
			{Name: "Fab", From: 0, To: 1, Vmax: p.VmaxAB, K: p.KAB},
			{Name: "Fba", From: 1, To: 0, Vmax: p.VmaxBA, K: p.KBA},
			{Name: "Fbo", From: 1, To: External, Vmax: p.VmaxBO, K: p.KBO},
		},
	)
}
