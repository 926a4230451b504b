// Package tangible feeds position data from an experimental external
// device (bluetooth, serial, camera tracking) into the balance model.
//
// Device data is untrusted and best-effort: frames are validated,
// clamped, and smoothed before they ever touch simulation state, and a
// bad frame simply leaves the last good value in place. No errors
// propagate out of a rejected frame.
package tangible

import (
	"math"

	"github.com/san-kum/balancelab/internal/model"
)

// DefaultSmoothing is the exponential smoothing weight for new frames.
const DefaultSmoothing = 0.35

// Controller owns one device-driven mass and maps normalized device
// x positions onto plank snap positions.
type Controller struct {
	model     *model.BalanceModel
	mass      *model.Mass
	smoothing float64

	lastX   float64
	hasLast bool
	applied int
	dropped int
}

// New attaches a device-controlled mass of the given value to the
// balance model. The mass starts off the plank.
func New(bm *model.BalanceModel, massValue float64) *Controller {
	m := model.NewMass(massValue, bm.Plank.Pivot())
	bm.AddMass(m)
	return &Controller{
		model:     bm,
		mass:      m,
		smoothing: DefaultSmoothing,
	}
}

// Mass returns the device-controlled mass.
func (c *Controller) Mass() *model.Mass { return c.mass }

// Applied and Dropped count accepted and rejected device frames.
func (c *Controller) Applied() int { return c.applied }
func (c *Controller) Dropped() int { return c.dropped }

// SetPositionFromDevice consumes one raw device frame with x and y in
// normalized [0,1] coordinates. Returns false when the frame was
// rejected; the previous placement stays untouched.
func (c *Controller) SetPositionFromDevice(x, y float64) bool {
	if !validCoordinate(x) || !validCoordinate(y) {
		c.dropped++
		return false
	}

	// Clamp to the device bounds before smoothing.
	x = math.Max(0, math.Min(1, x))

	if c.hasLast {
		x = c.lastX*(1-c.smoothing) + x*c.smoothing
	}
	c.lastX = x
	c.hasLast = true

	c.place(c.lastX)
	c.applied++
	return true
}

// place maps normalized x onto a snap position and moves the device
// mass there.
func (c *Controller) place(x float64) {
	distance := (x*2 - 1) * model.MaxValidMassDistance
	distance = snapRound(distance)

	current, onPlank := c.model.Plank.MassDistance(c.mass)
	if onPlank && current == distance {
		return
	}

	// Occupied target: keep the previous placement rather than fight
	// over the slot.
	open := false
	for _, d := range c.model.Plank.ActiveDropDistances() {
		if d == distance {
			open = true
			break
		}
	}
	if !open {
		return
	}

	if onPlank {
		c.model.Plank.RemoveMassFromSurface(c.mass)
	}
	c.model.Plank.AddMassToSurfaceAt(c.mass, distance)
}

func snapRound(distance float64) float64 {
	snapped := math.Round(distance/model.SnapSpacing) * model.SnapSpacing
	return math.Max(-model.MaxValidMassDistance, math.Min(model.MaxValidMassDistance, snapped))
}

// validCoordinate rejects NaN, infinite, and negative values, which
// real devices emit when tracking is lost.
func validCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
