package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	// The original two-pool scenario: inflow 3.0 into A, 100 steps of 0.1.
	"baseline": preset(func(c *Config) {}),

	// Pool B starts nearly empty; exchange refills it from A.
	"drained": preset(func(c *Config) {
		c.InitState.PoolB = 0.5
	}),

	// No external inflow, both pools relax toward the outflow.
	"decay": preset(func(c *Config) {
		c.Params.Input = 0.0
		c.Steps = 300
	}),

	// Finer stepping over the same horizon.
	"fine": preset(func(c *Config) {
		c.Dt = 0.01
		c.Steps = 1000
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
