package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/balancelab/internal/sim"
)

func TestMaxTilt(t *testing.T) {
	m := NewMaxTilt()

	for _, tilt := range []float64{0.1, -0.3, 0.2} {
		m.Observe(sim.Frame{Tilt: tilt})
	}
	if m.Value() != 0.3 {
		t.Errorf("expected 0.3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestSettleTime(t *testing.T) {
	s := NewSettleTime(0.05)

	frames := []sim.Frame{
		{Time: 0.1, Tilt: 0.2},
		{Time: 0.2, Tilt: 0.08},
		{Time: 0.3, Tilt: 0.04},
		{Time: 0.4, Tilt: 0.01},
	}
	for _, f := range frames {
		s.Observe(f)
	}

	if s.Value() != 0.2 {
		t.Errorf("expected settle time 0.2, got %f", s.Value())
	}
}

func TestSettleTime_NeverUnsettled(t *testing.T) {
	s := NewSettleTime(0.05)
	s.Observe(sim.Frame{Time: 1.0, Tilt: 0.01})

	if s.Value() != 0 {
		t.Errorf("expected 0 for never-unsettled run, got %f", s.Value())
	}
}

func TestTorqueRMS(t *testing.T) {
	m := NewTorqueRMS()

	m.Observe(sim.Frame{Torque: 3})
	m.Observe(sim.Frame{Torque: -4})

	expected := math.Sqrt((9.0 + 16.0) / 2.0)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}
