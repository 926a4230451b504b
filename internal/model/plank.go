package model

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/balancelab/internal/property"
)

const (
	PlankLength    = 4.5  // meters
	PlankThickness = 0.05 // meters
	PlankMass      = 75.0 // kilograms
	PivotHeight    = 0.75 // meters above ground
	SnapSpacing    = 0.25 // meters between snap-to positions

	// MaxValidMassDistance is the farthest snap position from the
	// center a mass may occupy.
	MaxValidMassDistance = PlankLength/2 - SnapSpacing

	gravity = 9.8

	// Angular accelerations and velocities below this are zeroed so the
	// plank settles instead of micro-oscillating forever.
	motionThreshold = 1e-5

	// Velocity decay applied every step.
	frictionDecay = 0.91

	// IsBalanced compares the torque sum against this.
	balanceTolerance = 1e-6
)

type massDistancePair struct {
	mass     *Mass
	distance float64 // signed, meters from plank center
}

// Plank is the see-saw beam. It owns the set of masses resting on its
// surface as (mass, signed distance) pairs and integrates its tilt
// angle from net torque once per frame. It does not own mass lifetime;
// masses are added and removed by the caller.
//
// Sign convention: positive tilt means the right end is down, and a
// mass on the right side (positive distance) produces positive torque.
type Plank struct {
	// TiltAngle is observable so views can track the plank without
	// polling. Clamped to ±MaxTiltAngle.
	TiltAngle *property.Property[float64]

	// MassCount changes whenever a pair is added or removed.
	MassCount *property.Property[int]

	pivot           mgl64.Vec2
	maxTiltAngle    float64
	angularVelocity float64
	pairs           []massDistancePair
	columnState     *property.Property[ColumnState]
	columnSub       *property.Subscription

	activeDropDistances []float64
}

// NewPlank creates a plank pivoting at pivot, with its angle pinned or
// freed by columnState. The plank links to columnState for its own
// lifetime; transitions force the angle instantly, with no animation.
func NewPlank(pivot mgl64.Vec2, columnState *property.Property[ColumnState]) *Plank {
	p := &Plank{
		TiltAngle:    property.New(0.0),
		MassCount:    property.New(0),
		pivot:        pivot,
		maxTiltAngle: math.Asin(PivotHeight / (PlankLength / 2)),
		columnState:  columnState,
	}
	p.updateActiveDropDistances()
	p.columnSub = columnState.Link(func(cs ColumnState) { p.forceAngleFor(cs) })
	return p
}

// MaxTiltAngle is the angle at which a plank end touches the ground,
// asin(pivotHeight / halfLength).
func (p *Plank) MaxTiltAngle() float64 { return p.maxTiltAngle }

func (p *Plank) Pivot() mgl64.Vec2 { return p.pivot }

func (p *Plank) AngularVelocity() float64 { return p.angularVelocity }

// Step recomputes net torque and integrates the tilt angle. With
// columns present the angle stays pinned and nothing integrates.
// Step(0) leaves all state untouched.
func (p *Plank) Step(dt float64) {
	if dt <= 0 {
		return
	}

	if cs := p.columnState.Get(); cs != NoColumns {
		p.angularVelocity = 0
		p.forceAngleFor(cs)
		return
	}

	angularAcceleration := p.NetTorque() / p.momentOfInertia()
	if math.Abs(angularAcceleration) < motionThreshold {
		angularAcceleration = 0
	}

	p.angularVelocity += angularAcceleration * dt
	if math.Abs(p.angularVelocity) < motionThreshold {
		p.angularVelocity = 0
	}

	tilt := p.TiltAngle.Get() + p.angularVelocity*dt
	if tilt >= p.maxTiltAngle {
		// The end hit the ground.
		tilt = p.maxTiltAngle
		p.angularVelocity = 0
	} else if tilt <= -p.maxTiltAngle {
		tilt = -p.maxTiltAngle
		p.angularVelocity = 0
	}

	p.angularVelocity *= frictionDecay

	p.setTiltAngle(tilt)
}

// NetTorque is the torque from all resting masses plus the plank's own
// self-righting contribution, in N·m with the positive-tilt convention.
func (p *Plank) NetTorque() float64 {
	return p.torqueDueToPlank() + p.TorqueDueToMasses()
}

// TorqueDueToMasses sums value × signed distance over every resting
// mass, scaled by gravity. Each term carries its own mass value.
func (p *Plank) TorqueDueToMasses() float64 {
	torque := 0.0
	for _, pair := range p.pairs {
		torque += gravity * pair.mass.Value * pair.distance
	}
	return torque
}

// torqueDueToPlank models the plank's center of mass hanging slightly
// below the pivot, which rights the plank when nothing else acts on it.
// Zero at zero tilt since the pivot is centered.
func (p *Plank) torqueDueToPlank() float64 {
	comDepth := PlankThickness / 2
	return -PlankMass * gravity * comDepth * math.Sin(p.TiltAngle.Get())
}

func (p *Plank) momentOfInertia() float64 {
	inertia := PlankMass * PlankLength * PlankLength / 12
	for _, pair := range p.pairs {
		inertia += pair.mass.Value * pair.distance * pair.distance
	}
	return inertia
}

// IsBalanced is a pure torque check, |Σ value×distance| < tolerance,
// independent of the current angle and of gravity scaling.
func (p *Plank) IsBalanced() bool {
	sum := 0.0
	for _, pair := range p.pairs {
		sum += pair.mass.Value * pair.distance
	}
	return math.Abs(sum) < balanceTolerance
}

// SurfacePointAt converts a signed distance along the plank into a
// scene position on the current surface line.
func (p *Plank) SurfacePointAt(distance float64) mgl64.Vec2 {
	tilt := p.TiltAngle.Get()
	return mgl64.Vec2{
		p.pivot.X() + distance*math.Cos(tilt),
		p.pivot.Y() - distance*math.Sin(tilt),
	}
}

// surfaceYAt is the height of the surface line at scene coordinate x.
func (p *Plank) surfaceYAt(x float64) float64 {
	return p.pivot.Y() - (x-p.pivot.X())*math.Tan(p.TiltAngle.Get())
}

// AddMassToSurface places a dragged mass at the nearest open snap
// position. It returns false when the mass is not geometrically above
// the plank's current surface line, or when no open snap position is
// within tolerance of the drop point.
func (p *Plank) AddMassToSurface(m *Mass) bool {
	pos := m.Position()

	if pos.Y() < p.surfaceYAt(pos.X()) {
		return false
	}

	tilt := p.TiltAngle.Get()
	proposed := (pos.X() - p.pivot.X()) / math.Cos(tilt)

	snap, ok := p.nearestOpenSnap(proposed)
	if !ok || math.Abs(snap-proposed) > SnapSpacing {
		return false
	}

	p.attach(m, snap)
	return true
}

// AddMassToSurfaceAt places a mass at an exact signed distance. A
// distance beyond MaxValidMassDistance or an occupied position is a
// programmer error and panics.
func (p *Plank) AddMassToSurfaceAt(m *Mass, distance float64) {
	if math.Abs(distance) > MaxValidMassDistance {
		panic(fmt.Sprintf("mass distance %.3f beyond valid range ±%.3f", distance, MaxValidMassDistance))
	}
	for _, pair := range p.pairs {
		if pair.distance == distance {
			panic(fmt.Sprintf("position %.3f already occupied", distance))
		}
	}
	p.attach(m, distance)
}

func (p *Plank) attach(m *Mass, distance float64) {
	p.pairs = append(p.pairs, massDistancePair{mass: m, distance: distance})
	m.OnPlank = true
	m.SetPosition(p.SurfacePointAt(distance))
	m.RotationAngle = -p.TiltAngle.Get()
	p.updateActiveDropDistances()
	p.MassCount.Set(len(p.pairs))
}

// RemoveMassFromSurface detaches a mass and resets its rotation. It is
// a no-op for masses that are not on the plank.
func (p *Plank) RemoveMassFromSurface(m *Mass) {
	for i, pair := range p.pairs {
		if pair.mass == m {
			p.pairs = append(p.pairs[:i], p.pairs[i+1:]...)
			m.OnPlank = false
			m.RotationAngle = 0
			p.updateActiveDropDistances()
			p.MassCount.Set(len(p.pairs))
			return
		}
	}
}

// MassDistance reports the signed distance of a resting mass.
func (p *Plank) MassDistance(m *Mass) (float64, bool) {
	for _, pair := range p.pairs {
		if pair.mass == m {
			return pair.distance, true
		}
	}
	return 0, false
}

// Masses returns the resting masses in placement order.
func (p *Plank) Masses() []*Mass {
	out := make([]*Mass, len(p.pairs))
	for i, pair := range p.pairs {
		out[i] = pair.mass
	}
	return out
}

// ActiveDropDistances are the open snap positions currently eligible to
// receive a dragged, not-yet-placed mass.
func (p *Plank) ActiveDropDistances() []float64 {
	out := make([]float64, len(p.activeDropDistances))
	copy(out, p.activeDropDistances)
	return out
}

// ActiveDropPositions maps the open snap positions onto the current
// surface line.
func (p *Plank) ActiveDropPositions() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.activeDropDistances))
	for i, d := range p.activeDropDistances {
		out[i] = p.SurfacePointAt(d)
	}
	return out
}

// SetTiltAngle positions the plank directly, clamped to the valid
// range, for scenario setup. Resting masses follow the surface.
func (p *Plank) SetTiltAngle(angle float64) {
	angle = math.Max(-p.maxTiltAngle, math.Min(p.maxTiltAngle, angle))
	p.setTiltAngle(angle)
}

// Reset clears all pairs and levels the plank.
func (p *Plank) Reset() {
	for _, pair := range p.pairs {
		pair.mass.OnPlank = false
		pair.mass.RotationAngle = 0
	}
	p.pairs = nil
	p.angularVelocity = 0
	p.setTiltAngle(0)
	p.updateActiveDropDistances()
	p.MassCount.Set(0)
}

func (p *Plank) forceAngleFor(cs ColumnState) {
	switch cs {
	case DoubleColumns:
		p.angularVelocity = 0
		p.setTiltAngle(0)
	case SingleColumn:
		p.angularVelocity = 0
		p.setTiltAngle(p.maxTiltAngle)
	}
}

func (p *Plank) setTiltAngle(angle float64) {
	if angle == p.TiltAngle.Get() {
		return
	}
	p.TiltAngle.Set(angle)
	for _, pair := range p.pairs {
		pair.mass.SetPosition(p.SurfacePointAt(pair.distance))
		pair.mass.RotationAngle = -angle
	}
	p.updateActiveDropDistances()
}

func (p *Plank) nearestOpenSnap(distance float64) (float64, bool) {
	best, found := 0.0, false
	for _, d := range p.activeDropDistances {
		if !found || math.Abs(d-distance) < math.Abs(best-distance) {
			best = d
			found = true
		}
	}
	return best, found
}

func (p *Plank) updateActiveDropDistances() {
	maxSlots := int(math.Round(MaxValidMassDistance / SnapSpacing))
	open := make([]float64, 0, maxSlots*2+1)
	for k := -maxSlots; k <= maxSlots; k++ {
		d := float64(k) * SnapSpacing
		occupied := false
		for _, pair := range p.pairs {
			if pair.distance == d {
				occupied = true
				break
			}
		}
		if !occupied {
			open = append(open, d)
		}
	}
	p.activeDropDistances = open
}
