package metrics

import (
	"math"

	"github.com/san-kum/balancelab/internal/sim"
)

// TorqueRMS is the root-mean-square of the net torque over the run.
type TorqueRMS struct {
	name    string
	sumSq   float64
	samples int
}

func NewTorqueRMS() *TorqueRMS {
	return &TorqueRMS{name: "torque_rms"}
}

func (t *TorqueRMS) Name() string { return t.name }

func (t *TorqueRMS) Observe(f sim.Frame) {
	t.sumSq += f.Torque * f.Torque
	t.samples++
}

func (t *TorqueRMS) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return math.Sqrt(t.sumSq / float64(t.samples))
}

func (t *TorqueRMS) Reset() {
	t.sumSq = 0
	t.samples = 0
}
