package sim

import (
	"fmt"
	"sort"

	"github.com/san-kum/poolsim/internal/integrators"
	"github.com/san-kum/poolsim/internal/kinetics"
)

var integratorFactories = map[string]func() kinetics.Integrator{
	"rk4":   func() kinetics.Integrator { return integrators.NewRK4() },
	"euler": func() kinetics.Integrator { return integrators.NewEuler() },
}

func GetIntegrator(name string) (kinetics.Integrator, error) {
	fn, ok := integratorFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func ListIntegrators() []string {
	names := make([]string, 0, len(integratorFactories))
	for name := range integratorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
