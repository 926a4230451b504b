package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBalanceModel_DefaultsToDoubleColumns(t *testing.T) {
	bm := New()
	if bm.ColumnState.Get() != DoubleColumns {
		t.Errorf("expected DoubleColumns initially, got %v", bm.ColumnState.Get())
	}
	if bm.Plank.TiltAngle.Get() != 0 {
		t.Errorf("expected level plank initially, got %f", bm.Plank.TiltAngle.Get())
	}
}

func TestBalanceModel_UserControlledTracking(t *testing.T) {
	bm := New()
	m1 := NewMass(5, mgl64.Vec2{})
	m2 := NewMass(10, mgl64.Vec2{})
	bm.AddMass(m1)
	bm.AddMass(m2)

	if len(bm.UserControlledMasses()) != 0 {
		t.Fatal("no mass should be user-controlled initially")
	}

	m1.UserControlled.Set(true)
	got := bm.UserControlledMasses()
	if len(got) != 1 || got[0] != m1 {
		t.Errorf("expected [m1], got %v", got)
	}

	m1.UserControlled.Set(false)
	if len(bm.UserControlledMasses()) != 0 {
		t.Error("release did not clear user-controlled tracking")
	}
}

func TestBalanceModel_RemoveMassUnsubscribes(t *testing.T) {
	bm := New()
	m := NewMass(5, mgl64.Vec2{})
	bm.AddMass(m)
	bm.Plank.AddMassToSurfaceAt(m, 1.0)

	bm.RemoveMass(m)

	if m.OnPlank {
		t.Error("removed mass still on plank")
	}
	// The subscription is gone, so toggling must not resurrect tracking.
	m.UserControlled.Set(true)
	if len(bm.UserControlledMasses()) != 0 {
		t.Error("stale subscription still tracking removed mass")
	}
	if m.UserControlled.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners on removed mass, got %d", m.UserControlled.ListenerCount())
	}
}

func TestBalanceModel_StepForwardsToParts(t *testing.T) {
	bm := New()
	bm.ColumnState.Set(NoColumns)

	onPlank := NewMass(25, mgl64.Vec2{})
	bm.AddMass(onPlank)
	bm.Plank.AddMassToSurfaceAt(onPlank, 1.5)

	returning := NewMass(5, mgl64.Vec2{3, 2})
	bm.AddMass(returning)
	returning.InitiateAnimation(mgl64.Vec2{5, 0})

	for i := 0; i < 120; i++ {
		bm.Step(1.0 / 60)
	}

	if bm.Plank.TiltAngle.Get() == 0 {
		t.Error("plank did not integrate under load")
	}
	if returning.Animating() {
		t.Error("mass animation did not complete")
	}
	if (returning.Position() != mgl64.Vec2{5, 0}) {
		t.Errorf("mass did not reach destination, at %v", returning.Position())
	}
}

func TestBalanceModel_Reset(t *testing.T) {
	bm := New()
	bm.ColumnState.Set(NoColumns)
	m := NewMass(40, mgl64.Vec2{})
	bm.AddMass(m)
	bm.Plank.AddMassToSurfaceAt(m, 2.0)
	for i := 0; i < 100; i++ {
		bm.Step(0.01)
	}

	bm.Reset()

	if len(bm.Masses()) != 0 {
		t.Error("masses survived reset")
	}
	if bm.Plank.TiltAngle.Get() != 0 {
		t.Errorf("tilt survived reset: %f", bm.Plank.TiltAngle.Get())
	}
	if bm.ColumnState.Get() != DoubleColumns {
		t.Error("column state not restored")
	}
	if bm.Plank.MassCount.Get() != 0 {
		t.Error("plank pairs survived reset")
	}
}
