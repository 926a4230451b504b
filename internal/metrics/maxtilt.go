// Package metrics provides per-run scalar accumulators for plank
// simulations, implementing the sim.Metric interface.
package metrics

import (
	"math"

	"github.com/san-kum/balancelab/internal/sim"
)

// MaxTilt records the largest absolute tilt angle reached.
type MaxTilt struct {
	name string
	max  float64
}

func NewMaxTilt() *MaxTilt {
	return &MaxTilt{name: "max_tilt"}
}

func (m *MaxTilt) Name() string { return m.name }

func (m *MaxTilt) Observe(f sim.Frame) {
	m.max = math.Max(m.max, math.Abs(f.Tilt))
}

func (m *MaxTilt) Value() float64 { return m.max }

func (m *MaxTilt) Reset() { m.max = 0 }
