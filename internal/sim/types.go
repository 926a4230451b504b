package sim

import (
	"fmt"
	"math"
)

// Frame is one sampled simulation step.
type Frame struct {
	Time     float64
	Tilt     float64
	Omega    float64
	Torque   float64
	Balanced bool
}

func (f Frame) IsValid() bool {
	for _, v := range []float64{f.Tilt, f.Omega, f.Torque} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer is notified after every step.
type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	Times      []float64
	Tilts      []float64
	Omegas     []float64
	Torques    []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
