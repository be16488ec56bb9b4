package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/poolsim/internal/pools"
)

const (
	DefaultDt    = 0.1
	DefaultSteps = 100
	DefaultPoolA = 9.0
	DefaultPoolB = 6.0
)

type Config struct {
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Steps      int             `yaml:"steps"`
	InitState  InitStateConfig `yaml:"init_state"`
	Params     ParamsConfig    `yaml:"params"`
}

type InitStateConfig struct {
	PoolA float64 `yaml:"pool_a"`
	PoolB float64 `yaml:"pool_b"`
}

type ParamsConfig struct {
	CapacityA float64 `yaml:"capacity_a"`
	CapacityB float64 `yaml:"capacity_b"`
	Input     float64 `yaml:"input"`
	VmaxAB    float64 `yaml:"vmax_ab"`
	KAB       float64 `yaml:"k_ab"`
	VmaxBA    float64 `yaml:"vmax_ba"`
	KBA       float64 `yaml:"k_ba"`
	VmaxBO    float64 `yaml:"vmax_bo"`
	KBO       float64 `yaml:"k_bo"`
}

func DefaultConfig() *Config {
	p := pools.DefaultTwoPoolParams()
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		InitState: InitStateConfig{
			PoolA: DefaultPoolA,
			PoolB: DefaultPoolB,
		},
		Params: ParamsConfig{
			CapacityA: p.CapacityA,
			CapacityB: p.CapacityB,
			Input:     p.Input,
			VmaxAB:    p.VmaxAB,
			KAB:       p.KAB,
			VmaxBA:    p.VmaxBA,
			KBA:       p.KBA,
			VmaxBO:    p.VmaxBO,
			KBO:       p.KBO,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) TwoPoolParams() pools.TwoPoolParams {
	return pools.TwoPoolParams{
		CapacityA: c.Params.CapacityA,
		CapacityB: c.Params.CapacityB,
		Input:     c.Params.Input,
		VmaxAB:    c.Params.VmaxAB,
		KAB:       c.Params.KAB,
		VmaxBA:    c.Params.VmaxBA,
		KBA:       c.Params.KBA,
		VmaxBO:    c.Params.VmaxBO,
		KBO:       c.Params.KBO,
	}
}

func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.PoolA, c.InitState.PoolB}
}
