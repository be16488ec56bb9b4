package viz

import (
	"fmt"

	"github.com/san-kum/poolsim/internal/kinetics"
)

// SystemLabels pulls pool and flux names from a system when it supports
// [kinetics.Labeled]; otherwise both are nil and positional names apply.
func SystemLabels(sys kinetics.System) (poolNames, fluxNames []string) {
	if l, ok := sys.(kinetics.Labeled); ok {
		return l.PoolNames(), l.FluxNames()
	}
	return nil, nil
}

func poolLabels(names []string, n int) []string {
	if len(names) == n {
		return names
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("P%d", i)
	}
	return out
}

func fluxLabels(names []string, n int) []string {
	if len(names) == n {
		return names
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("F%d", i)
	}
	return out
}
