package config

import "sort"

// Presets are named variations of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"moon": func(c *Config) {
		c.Physics.Gravity = Vec3{0, -1.62, 0}
		c.ClearColor = Color{0.02, 0.02, 0.05}
		c.Ground.Color = Color{0.5, 0.5, 0.5}
	},
	"bouncy": func(c *Config) {
		c.Box.Restitution = 0.9
		c.Box.Position = Vec3{0, 8, 0}
	},
	"heavy": func(c *Config) {
		c.Box.Mass = 100
		c.Box.Friction = 0.9
	},
	"drop": func(c *Config) {
		c.Box.Position = Vec3{0, 20, 0}
		c.Camera.Radius = 70
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
