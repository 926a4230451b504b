// Package model implements the see-saw torque model: a plank pivoting
// on a fulcrum, point masses resting at discrete snap positions along
// its surface, and support columns that can pin the angle.
//
// Everything advances through a single cooperative Step(dt) call per
// frame:
//
//	bm := model.New()
//	bm.ColumnState.Set(model.NoColumns)
//	bm.Plank.AddMassToSurfaceAt(model.NewMass(5, mgl64.Vec2{}), 1.5)
//	bm.Step(1.0 / 60)
//
// There is no concurrency and no I/O in this package; observable state
// is exposed through [property.Property] values with explicit
// subscription lifetimes.
package model
