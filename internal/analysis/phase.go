// Package analysis derives phase portraits and frequency content from
// recorded plank trajectories.
package analysis

import (
	"strings"

	"github.com/san-kum/balancelab/internal/sim"
)

// PhasePortrait is the tilt-vs-angular-velocity trajectory of a run.
type PhasePortrait struct {
	Points []struct{ X, Y float64 }
}

// PhasePortraitFromResult pairs each recorded tilt with its angular
// velocity.
func PhasePortraitFromResult(result *sim.Result) *PhasePortrait {
	if result == nil || len(result.Tilts) == 0 {
		return nil
	}

	portrait := &PhasePortrait{
		Points: make([]struct{ X, Y float64 }, len(result.Tilts)),
	}
	for i := range result.Tilts {
		portrait.Points[i] = struct{ X, Y float64 }{X: result.Tilts[i], Y: result.Omegas[i]}
	}
	return portrait
}

// ToASCII renders the portrait as a character grid with zero axes.
func (p *PhasePortrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
