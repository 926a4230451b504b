package model

import "github.com/go-gl/mathgl/mgl64"

// Fulcrum is the fixed triangular support under the plank. Pure
// geometry, nothing steps it.
type Fulcrum struct {
	Position mgl64.Vec2 // apex, where the plank pivots
	Height   float64
	Width    float64
}

func NewFulcrum(ground mgl64.Vec2) Fulcrum {
	return Fulcrum{
		Position: mgl64.Vec2{ground.X(), ground.Y() + PivotHeight},
		Height:   PivotHeight,
		Width:    1.0,
	}
}
