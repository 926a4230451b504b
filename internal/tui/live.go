// Package tui renders the balance model in a terminal, either as a
// plain ANSI stream attached to a running simulation or as an
// interactive bubbletea app.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/balancelab/internal/model"
	"github.com/san-kum/balancelab/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Renderer draws the see-saw scene onto a rune canvas. It implements
// sim.Observer so it can be attached directly to a runner for a live
// view of a headless run.
type Renderer struct {
	model     *model.BalanceModel
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
}

func NewRenderer(bm *model.BalanceModel, frameRate int) *Renderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &Renderer{
		model:     bm,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

// OnFrame rate-limits to the renderer's frame rate and repaints the
// terminal in place.
func (r *Renderer) OnFrame(f sim.Frame) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	fmt.Print(clearScreen + r.Render(f.Time))
}

func (r *Renderer) Start() { fmt.Print(hideCursor) }
func (r *Renderer) Stop()  { fmt.Print(showCursor) }

// Render returns the full frame: scene, border, and a status line.
func (r *Renderer) Render(t float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  balance  t=%.2fs\n", t))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	b.WriteString(r.Scene())

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	plank := r.model.Plank
	b.WriteString(fmt.Sprintf("  tilt=%+.3f rad  omega=%+.3f  columns=%s  balanced=%v\n",
		plank.TiltAngle.Get(), plank.AngularVelocity(),
		r.model.ColumnState.Get(), plank.IsBalanced()))

	return b.String()
}

// Scene draws the current model state and returns the canvas rows.
func (r *Renderer) Scene() string {
	r.clear()
	r.drawGround()
	r.drawColumns()
	r.drawFulcrum()
	r.drawPlank()
	r.drawMasses()

	var b strings.Builder
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}

// Screen mapping: world x in [-2.6, 2.6] meters spans the canvas
// width, world y in [0, 1.6] spans the rows above the ground line.
const (
	worldHalfWidth = 2.6
	worldHeight    = 1.6
	groundRow      = height - 2
)

func colOf(x float64) int {
	return int((x + worldHalfWidth) / (2 * worldHalfWidth) * float64(width-1))
}

func rowOf(y float64) int {
	scale := float64(groundRow-1) / worldHeight
	return groundRow - int(y*scale+0.5)
}

func (r *Renderer) drawGround() {
	for x := 0; x < width; x++ {
		r.set(x, groundRow, '=')
	}
}

func (r *Renderer) drawFulcrum() {
	pivot := r.model.Plank.Pivot()
	cx := colOf(pivot.X())
	apex := rowOf(pivot.Y())

	r.line(cx-4, groundRow-1, cx, apex+1, '/')
	r.line(cx, apex+1, cx+4, groundRow-1, '\\')
	r.set(cx, apex, '^')
}

func (r *Renderer) drawPlank() {
	plank := r.model.Plank
	left := plank.SurfacePointAt(-model.PlankLength / 2)
	right := plank.SurfacePointAt(model.PlankLength / 2)

	r.line(colOf(left.X()), rowOf(left.Y()), colOf(right.X()), rowOf(right.Y()), '#')

	// Open snap positions, drawn under the plank chars so occupied
	// slots stay visible as plank.
	for _, p := range r.model.Plank.ActiveDropPositions() {
		x, y := colOf(p.X()), rowOf(p.Y())
		if r.at(x, y) == ' ' {
			r.set(x, y, '.')
		}
	}
}

func (r *Renderer) drawMasses() {
	plank := r.model.Plank
	for _, m := range plank.Masses() {
		d, ok := plank.MassDistance(m)
		if !ok {
			continue
		}
		p := plank.SurfacePointAt(d)
		x, y := colOf(p.X()), rowOf(p.Y())
		r.set(x, y-1, 'M')
		if m.Value >= 10 {
			r.set(x-1, y-1, 'M')
		}
	}
}

// drawColumns renders the support columns near the plank ends. The
// column top follows the plank underside so a pinned plank visibly
// rests on it.
func (r *Renderer) drawColumns() {
	cs := r.model.ColumnState.Get()
	if cs == model.NoColumns {
		return
	}

	if cs == model.DoubleColumns {
		r.drawColumnAt(-columnDistance)
	}
	r.drawColumnAt(columnDistance)
}

// columnDistance keeps the columns inboard of the plank ends so the
// single column stays visible when the plank rests on it fully tilted.
const columnDistance = 1.5

func (r *Renderer) drawColumnAt(distance float64) {
	pivot := r.model.Plank.Pivot()
	tilt := r.model.Plank.TiltAngle.Get()
	x := pivot.X() + distance*math.Cos(tilt)
	top := pivot.Y() - distance*math.Sin(tilt)

	cx := colOf(x)
	for y := rowOf(top) + 1; y < groundRow; y++ {
		r.set(cx, y, '|')
	}
}

func (r *Renderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *Renderer) at(x, y int) rune {
	if x >= 0 && x < width && y >= 0 && y < height {
		return r.canvas[y][x]
	}
	return ' '
}

func (r *Renderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *Renderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
