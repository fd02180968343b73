// Package metrics reduces a recorded trajectory to summary numbers.
package metrics

import (
	"math"

	"github.com/san-kum/boxdrop/internal/headless"
)

// Metric observes the samples of one mesh.
type Metric interface {
	Name() string
	Observe(s headless.Sample)
	Value() float64
	Reset()
}

// Collect feeds every sample to every metric and returns their values by
// name. Metrics are reset first.
func Collect(samples []headless.Sample, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, s := range samples {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// ForBody is the standard set reported for a dynamic mesh.
func ForBody(mesh string, mass, gravity float64) []Metric {
	return []Metric{
		NewMaxSpeed(mesh),
		NewBounces(mesh),
		NewSettleTime(mesh, 1e-3),
		NewEnergyLoss(mesh, mass, gravity),
	}
}

type MaxSpeed struct {
	mesh string
	max  float64
}

func NewMaxSpeed(mesh string) *MaxSpeed { return &MaxSpeed{mesh: mesh} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s headless.Sample) {
	if s.Mesh != m.mesh {
		return
	}
	m.max = math.Max(m.max, s.Velocity.Length())
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Bounces counts reversals from falling to rising.
type Bounces struct {
	mesh    string
	falling bool
	count   int
}

func NewBounces(mesh string) *Bounces { return &Bounces{mesh: mesh} }

func (b *Bounces) Name() string { return "bounces" }

func (b *Bounces) Observe(s headless.Sample) {
	if s.Mesh != b.mesh {
		return
	}
	switch vy := s.Velocity.Y; {
	case vy < 0:
		b.falling = true
	case vy > 0 && b.falling:
		b.count++
		b.falling = false
	}
}

func (b *Bounces) Value() float64 { return float64(b.count) }

func (b *Bounces) Reset() {
	b.falling = false
	b.count = 0
}

// SettleTime is the time of the last sample moving faster than threshold.
type SettleTime struct {
	mesh      string
	threshold float64
	last      float64
}

func NewSettleTime(mesh string, threshold float64) *SettleTime {
	return &SettleTime{mesh: mesh, threshold: threshold}
}

func (s *SettleTime) Name() string { return "settle_time" }

func (s *SettleTime) Observe(smp headless.Sample) {
	if smp.Mesh != s.mesh {
		return
	}
	if smp.Velocity.Length() > s.threshold {
		s.last = smp.Time
	}
}

func (s *SettleTime) Value() float64 { return s.last }
func (s *SettleTime) Reset()         { s.last = 0 }

// EnergyLoss is the fraction of the first sample's mechanical energy gone by
// the last sample. Height is measured from y = 0.
type EnergyLoss struct {
	mesh     string
	mass     float64
	gravity  float64
	initial  float64
	current  float64
	observed bool
}

func NewEnergyLoss(mesh string, mass, gravity float64) *EnergyLoss {
	return &EnergyLoss{mesh: mesh, mass: mass, gravity: math.Abs(gravity)}
}

func (e *EnergyLoss) Name() string { return "energy_loss" }

func (e *EnergyLoss) Observe(s headless.Sample) {
	if s.Mesh != e.mesh {
		return
	}
	v := s.Velocity.Length()
	energy := e.mass*e.gravity*s.Position.Y + 0.5*e.mass*v*v
	if !e.observed {
		e.initial = energy
		e.observed = true
	}
	e.current = energy
}

func (e *EnergyLoss) Value() float64 {
	if e.initial == 0 {
		return 0
	}
	return (e.initial - e.current) / e.initial
}

func (e *EnergyLoss) Reset() {
	e.initial, e.current = 0, 0
	e.observed = false
}
