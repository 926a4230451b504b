package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/balancelab/internal/property"
)

const (
	// Longest a return animation is allowed to take; shorter distances
	// still move at least MinAnimationVelocity.
	MaxAnimationDuration = 0.7 // seconds
	MinAnimationVelocity = 1.0 // meters/second
)

// Mass is a passive value holder for a point mass in the scene. It
// carries no physics of its own; when resting on the plank its position
// is derived from the plank surface, and when released it animates back
// toward a destination with constant-velocity kinematics.
type Mass struct {
	// Value is the mass in kilograms, immutable after construction.
	Value float64

	// UserControlled is true while the mass is being dragged.
	UserControlled *property.Property[bool]

	RotationAngle float64
	OnPlank       bool

	position     mgl64.Vec2
	destination  mgl64.Vec2
	motionVector mgl64.Vec2 // meters/second
	animating    bool
}

func NewMass(value float64, position mgl64.Vec2) *Mass {
	return &Mass{
		Value:          value,
		UserControlled: property.New(false),
		position:       position,
	}
}

func (m *Mass) Position() mgl64.Vec2 { return m.position }

func (m *Mass) SetPosition(p mgl64.Vec2) { m.position = p }

func (m *Mass) Animating() bool { return m.animating }

// InitiateAnimation starts a constant-velocity move toward dest. The
// velocity is distance/MaxAnimationDuration but never below
// MinAnimationVelocity, so short hops don't crawl.
func (m *Mass) InitiateAnimation(dest mgl64.Vec2) {
	delta := dest.Sub(m.position)
	distance := delta.Len()
	if distance == 0 {
		m.animating = false
		m.motionVector = mgl64.Vec2{}
		return
	}

	velocity := math.Max(distance/MaxAnimationDuration, MinAnimationVelocity)
	m.motionVector = delta.Mul(velocity / distance)
	m.destination = dest
	m.animating = true
}

// Step advances an in-flight animation. While the remaining distance
// exceeds one frame's travel the mass moves by motionVector*dt;
// otherwise it snaps exactly onto the destination and stops. The mass
// never overshoots.
func (m *Mass) Step(dt float64) {
	if !m.animating || dt <= 0 {
		return
	}

	travel := m.motionVector.Len() * dt
	remaining := m.destination.Sub(m.position).Len()

	if remaining > travel {
		m.position = m.position.Add(m.motionVector.Mul(dt))
		return
	}

	m.position = m.destination
	m.motionVector = mgl64.Vec2{}
	m.animating = false
}
