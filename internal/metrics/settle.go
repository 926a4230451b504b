package metrics

import (
	"math"

	"github.com/san-kum/balancelab/internal/sim"
)

// SettleTime reports the time of the last frame whose absolute tilt was
// at or above the threshold, i.e. the moment after which the plank
// stayed settled. Zero when the plank never left the threshold band.
type SettleTime struct {
	name      string
	threshold float64
	last      float64
}

func NewSettleTime(threshold float64) *SettleTime {
	return &SettleTime{name: "settle_time", threshold: threshold}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(f sim.Frame) {
	if math.Abs(f.Tilt) >= s.threshold {
		s.last = f.Time
	}
}

func (s *SettleTime) Value() float64 { return s.last }

func (s *SettleTime) Reset() { s.last = 0 }
