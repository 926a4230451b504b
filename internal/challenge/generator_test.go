package challenge

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/balancelab/internal/model"
)

func TestGenerator_SolutionsBalance(t *testing.T) {
	g := NewGenerator(42)

	for i := 0; i < 20; i++ {
		c, err := g.Next()
		if err != nil {
			t.Fatalf("challenge %d failed: %v", i, err)
		}

		if !c.IsSolved(c.Solution) {
			t.Errorf("challenge %d: stated solution %f does not balance %+v", i, c.Solution, c)
		}
		if c.IsSolved(c.Solution + model.SnapSpacing) {
			t.Errorf("challenge %d: adjacent snap also solves, degenerate challenge", i)
		}
	}
}

func TestGenerator_SolutionsAreValidPlacements(t *testing.T) {
	g := NewGenerator(7)

	for i := 0; i < 20; i++ {
		c, err := g.Next()
		if err != nil {
			t.Fatalf("challenge %d failed: %v", i, err)
		}

		if math.Abs(c.Solution) > model.MaxValidMassDistance {
			t.Errorf("solution %f outside plank range", c.Solution)
		}

		ratio := c.Solution / model.SnapSpacing
		if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
			t.Errorf("solution %f not on a snap position", c.Solution)
		}
	}
}

func TestGenerator_SolutionLevelsThePlank(t *testing.T) {
	g := NewGenerator(3)
	c, err := g.Next()
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	bm := model.New()
	bm.ColumnState.Set(model.NoColumns)
	for _, p := range c.Fixed {
		bm.Plank.AddMassToSurfaceAt(model.NewMass(p.Value, mgl64.Vec2{}), p.Distance)
	}
	bm.Plank.AddMassToSurfaceAt(model.NewMass(c.Movable, mgl64.Vec2{}), c.Solution)

	if !bm.Plank.IsBalanced() {
		t.Error("placing the movable mass at the solution did not balance the plank")
	}

	for i := 0; i < 500; i++ {
		bm.Step(0.01)
	}
	if tilt := bm.Plank.TiltAngle.Get(); math.Abs(tilt) > 0.01 {
		t.Errorf("balanced plank drifted to %f", tilt)
	}
}

func TestGenerator_NoRepeats(t *testing.T) {
	g := NewGenerator(99)

	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		c, err := g.Next()
		if err != nil {
			// Exhaustion is acceptable, repeats are not.
			return
		}
		k := c.key()
		if seen[k] {
			t.Fatalf("challenge %d repeated: %+v", i, c)
		}
		seen[k] = true
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(123)
	b := NewGenerator(123)

	for i := 0; i < 10; i++ {
		ca, errA := a.Next()
		cb, errB := b.Next()
		if (errA == nil) != (errB == nil) {
			t.Fatal("generators with same seed diverged in errors")
		}
		if errA != nil {
			return
		}
		if ca.key() != cb.key() || ca.Solution != cb.Solution {
			t.Fatalf("same seed produced different challenge %d: %+v vs %+v", i, ca, cb)
		}
	}
}
