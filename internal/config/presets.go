package config

import "sort"

var Presets = map[string]*Config{
	"single": preset(func(c *Config) {}),
	"original": preset(func(c *Config) {
		c.Current = 0
		c.Duration = 10
	}),
	"light": preset(func(c *Config) {
		c.Links = []LinkConfig{{Mass: 0.05, Length: 0.2, Ratio: 32}}
		c.Dt = 0.01
		c.Duration = 1
	}),
	"two_link": preset(func(c *Config) {
		c.Links = []LinkConfig{
			{Mass: 0.5, Length: 0.2, Ratio: 32},
			{Mass: 0.25, Length: 0.15, Ratio: 16},
		}
	}),
	"three_link_forward": preset(func(c *Config) {
		c.ChainMode = "forward"
		c.Links = []LinkConfig{
			{Mass: 0.5, Length: 0.2, Ratio: 64},
			{Mass: 0.3, Length: 0.15, Ratio: 48},
			{Mass: 0.1, Length: 0.1, Ratio: 32},
		}
		c.Profile = ProfileConfig{Kind: "step", StepTime: 2, StepCurrent: -5}
	}),
	"legacy": preset(func(c *Config) {
		c.TimestepMode = "legacy"
	}),
}

func preset(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
