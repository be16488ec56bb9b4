package integrators

import (
	"testing"

	"github.com/san-kum/poolsim/internal/kinetics"
	"github.com/san-kum/poolsim/internal/pools"
)

func benchNetwork(b *testing.B) *pools.Network {
	net, err := pools.NewTwoPool(pools.DefaultTwoPoolParams())
	if err != nil {
		b.Fatalf("NewTwoPool failed: %v", err)
	}
	return net
}

func BenchmarkEuler(b *testing.B) {
	net := benchNetwork(b)
	integ := NewEuler()
	x := kinetics.State{9.0, 6.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var err error
		x, _, err = integ.Step(net, x, 0, 0.001)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRK4(b *testing.B) {
	net := benchNetwork(b)
	integ := NewRK4()
	x := kinetics.State{9.0, 6.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var err error
		x, _, err = integ.Step(net, x, 0, 0.001)
		if err != nil {
			b.Fatal(err)
		}
	}
}
