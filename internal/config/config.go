package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSurfaceID  = "renderCanvas"
	DefaultGravity    = 9.81
	DefaultFPS        = 60
	DefaultSubsteps   = 4
	DefaultBackend    = "rigid"
	DefaultIntegrator = "rk4"
)

// Vec3 is written as a three element YAML sequence: [x, y, z].
type Vec3 [3]float64

// Color is written as [r, g, b] with components in [0, 1].
type Color [3]float64

type Config struct {
	SurfaceID  string        `yaml:"surface_id"`
	ClearColor Color         `yaml:"clear_color"`
	FPS        int           `yaml:"fps"`
	Light      LightConfig   `yaml:"light"`
	Camera     CameraConfig  `yaml:"camera"`
	Ground     GroundConfig  `yaml:"ground"`
	Physics    PhysicsConfig `yaml:"physics"`
	Box        BoxConfig     `yaml:"box"`
}

type LightConfig struct {
	Name      string  `yaml:"name"`
	Direction Vec3    `yaml:"direction"`
	Intensity float64 `yaml:"intensity"`
}

// CameraConfig places an orbit camera. Alpha and Beta are in radians.
type CameraConfig struct {
	Name          string  `yaml:"name"`
	Alpha         float64 `yaml:"alpha"`
	Beta          float64 `yaml:"beta"`
	Radius        float64 `yaml:"radius"`
	Target        Vec3    `yaml:"target"`
	AttachControl bool    `yaml:"attach_control"`
}

// GroundConfig describes the static floor. Its impostor always has zero mass.
type GroundConfig struct {
	Name        string  `yaml:"name"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Color       Color   `yaml:"color"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

type PhysicsConfig struct {
	Backend    string `yaml:"backend"`
	Integrator string `yaml:"integrator"`
	Gravity    Vec3   `yaml:"gravity"`
	Substeps   int    `yaml:"substeps"`
}

// BoxConfig describes the single dynamic body. Mass must be positive.
type BoxConfig struct {
	Name        string  `yaml:"name"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Depth       float64 `yaml:"depth"`
	Position    Vec3    `yaml:"position"`
	Color       Color   `yaml:"color"`
	Mass        float64 `yaml:"mass"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

func DefaultConfig() *Config {
	return &Config{
		SurfaceID:  DefaultSurfaceID,
		ClearColor: Color{0.1, 0.1, 0.2},
		FPS:        DefaultFPS,
		Light: LightConfig{
			Name:      "light",
			Direction: Vec3{0, 1, 0},
			Intensity: 0.7,
		},
		Camera: CameraConfig{
			Name:          "Camera",
			Alpha:         -math.Pi / 2,
			Beta:          math.Pi / 2.5,
			Radius:        50,
			AttachControl: true,
		},
		Ground: GroundConfig{
			Name:        "ground",
			Width:       100,
			Height:      100,
			Color:       Color{0.1, 0.5, 0.1},
			Friction:    0.2,
			Restitution: 0.9,
		},
		Physics: PhysicsConfig{
			Backend:    DefaultBackend,
			Integrator: DefaultIntegrator,
			Gravity:    Vec3{0, -DefaultGravity, 0},
			Substeps:   DefaultSubsteps,
		},
		Box: BoxConfig{
			Name:        "carBody",
			Width:       2,
			Height:      1,
			Depth:       4,
			Position:    Vec3{0, 1, 0},
			Color:       Color{0.8, 0.2, 0.2},
			Mass:        10,
			Friction:    0.5,
			Restitution: 0.2,
		},
	}
}

// LoadOver overlays the YAML file at path on a copy of base and validates
// the result.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Write(f, cfg); err != nil {
		return err
	}
	return f.Close()
}

// Clone returns a deep copy; Config holds no reference types.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

var ErrInvalidConfig = errors.New("config: invalid value")

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.SurfaceID != "", "surface_id is empty")
	check(c.FPS > 0, "fps must be positive, got %d", c.FPS)
	check(c.Light.Intensity >= 0, "light.intensity must not be negative, got %g", c.Light.Intensity)
	check(c.Camera.Radius > 0, "camera.radius must be positive, got %g", c.Camera.Radius)
	check(c.Ground.Width > 0 && c.Ground.Height > 0, "ground size must be positive, got %gx%g", c.Ground.Width, c.Ground.Height)
	check(c.Ground.Friction >= 0 && c.Ground.Restitution >= 0, "ground friction and restitution must not be negative")
	check(c.Physics.Substeps >= 1, "physics.substeps must be at least 1, got %d", c.Physics.Substeps)
	check(c.Box.Width > 0 && c.Box.Height > 0 && c.Box.Depth > 0, "box size must be positive, got %gx%gx%g", c.Box.Width, c.Box.Height, c.Box.Depth)
	check(c.Box.Mass > 0, "box.mass must be positive, got %g", c.Box.Mass)
	check(c.Box.Friction >= 0 && c.Box.Restitution >= 0, "box friction and restitution must not be negative")

	return errors.Join(errs...)
}
