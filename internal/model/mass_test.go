package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMass_AnimationVelocityFloor(t *testing.T) {
	m := NewMass(5.0, mgl64.Vec2{0, 0})
	m.InitiateAnimation(mgl64.Vec2{0.1, 0})

	// 0.1m / 0.7s would be ~0.14 m/s, below the floor.
	if v := m.motionVector.Len(); math.Abs(v-MinAnimationVelocity) > 1e-9 {
		t.Errorf("expected velocity floor %.2f, got %.4f", MinAnimationVelocity, v)
	}
}

func TestMass_AnimationLongDistanceVelocity(t *testing.T) {
	m := NewMass(5.0, mgl64.Vec2{0, 0})
	m.InitiateAnimation(mgl64.Vec2{7, 0})

	expected := 7.0 / MaxAnimationDuration
	if v := m.motionVector.Len(); math.Abs(v-expected) > 1e-9 {
		t.Errorf("expected velocity %.4f, got %.4f", expected, v)
	}
}

func TestMass_StepReachesDestinationExactly(t *testing.T) {
	m := NewMass(2.0, mgl64.Vec2{0, 0})
	dest := mgl64.Vec2{3, 4}
	m.InitiateAnimation(dest)

	dt := 0.016
	for i := 0; i < 1000 && m.Animating(); i++ {
		m.Step(dt)

		// Never overshoot: remaining vector must point toward dest.
		if m.Position().Sub(dest).Len() > 5.0 {
			t.Fatalf("overshot destination, position %v", m.Position())
		}
	}

	if m.Animating() {
		t.Fatal("animation never completed")
	}
	if m.Position() != dest {
		t.Errorf("expected exact destination %v, got %v", dest, m.Position())
	}
}

func TestMass_StepCompletesWithinDuration(t *testing.T) {
	m := NewMass(2.0, mgl64.Vec2{0, 0})
	m.InitiateAnimation(mgl64.Vec2{10, 0})

	dt := 0.01
	elapsed := 0.0
	for m.Animating() {
		m.Step(dt)
		elapsed += dt
		if elapsed > MaxAnimationDuration+0.1 {
			t.Fatalf("animation still running after %.2fs", elapsed)
		}
	}
}

func TestMass_ZeroDistanceAnimation(t *testing.T) {
	pos := mgl64.Vec2{1, 1}
	m := NewMass(1.0, pos)
	m.InitiateAnimation(pos)

	if m.Animating() {
		t.Error("zero-distance animation should not start")
	}
	if m.Position() != pos {
		t.Errorf("position changed: %v", m.Position())
	}
}

func TestMass_StepZeroDtIsNoop(t *testing.T) {
	m := NewMass(1.0, mgl64.Vec2{0, 0})
	m.InitiateAnimation(mgl64.Vec2{5, 0})

	before := m.Position()
	m.Step(0)
	if m.Position() != before {
		t.Error("Step(0) moved the mass")
	}
	if !m.Animating() {
		t.Error("Step(0) cleared the animating flag")
	}
}
