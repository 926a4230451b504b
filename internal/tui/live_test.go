package tui

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/balancelab/internal/model"
)

func sceneLines(t *testing.T, r *Renderer) []string {
	t.Helper()
	scene := r.Scene()
	lines := strings.Split(strings.TrimRight(scene, "\n"), "\n")
	if len(lines) != height {
		t.Fatalf("scene has %d rows, want %d", len(lines), height)
	}
	return lines
}

func TestRenderer_SceneHasGroundAndFulcrum(t *testing.T) {
	bm := model.New()
	r := NewRenderer(bm, 30)

	lines := sceneLines(t, r)

	if !strings.Contains(lines[groundRow], "=") {
		t.Error("ground line missing")
	}

	scene := strings.Join(lines, "\n")
	if !strings.Contains(scene, "^") {
		t.Error("fulcrum apex missing")
	}
	if !strings.Contains(scene, "#") {
		t.Error("plank missing")
	}
}

func TestRenderer_ColumnsFollowState(t *testing.T) {
	bm := model.New()
	r := NewRenderer(bm, 30)

	bm.ColumnState.Set(model.DoubleColumns)
	withColumns := strings.Count(r.Scene(), "|")
	if withColumns == 0 {
		t.Error("double columns not drawn")
	}

	bm.ColumnState.Set(model.SingleColumn)
	single := strings.Count(r.Scene(), "|")
	if single == 0 || single >= withColumns {
		t.Errorf("single column should draw fewer bars: double=%d single=%d", withColumns, single)
	}

	bm.ColumnState.Set(model.NoColumns)
	if strings.Count(r.Scene(), "|") != 0 {
		t.Error("columns drawn with no-columns state")
	}
}

func TestRenderer_MassMarkerAppears(t *testing.T) {
	bm := model.New()
	r := NewRenderer(bm, 30)

	before := strings.Count(r.Scene(), "M")
	m := model.NewMass(5, mgl64.Vec2{})
	bm.AddMass(m)
	bm.Plank.AddMassToSurfaceAt(m, 1.0)

	after := strings.Count(r.Scene(), "M")
	if after <= before {
		t.Errorf("mass marker not drawn: before=%d after=%d", before, after)
	}
}

func TestRenderer_TiltMovesPlankEnds(t *testing.T) {
	bm := model.New()
	bm.ColumnState.Set(model.NoColumns)
	r := NewRenderer(bm, 30)

	rowsWithPlank := func() (first, last int) {
		first, last = -1, -1
		for i, line := range sceneLines(t, r) {
			if strings.Contains(line, "#") {
				if first == -1 {
					first = i
				}
				last = i
			}
		}
		return
	}

	bm.Plank.SetTiltAngle(0)
	f0, l0 := rowsWithPlank()
	flat := l0 - f0

	bm.Plank.SetTiltAngle(0.3)
	f1, l1 := rowsWithPlank()
	tilted := l1 - f1

	if tilted <= flat {
		t.Errorf("tilted plank should span more rows: flat=%d tilted=%d", flat, tilted)
	}
}

func TestRenderer_RenderIncludesStatus(t *testing.T) {
	bm := model.New()
	r := NewRenderer(bm, 30)

	out := r.Render(1.5)
	if !strings.Contains(out, "t=1.50s") {
		t.Error("time missing from header")
	}
	if !strings.Contains(out, "columns=double") {
		t.Error("column state missing from status line")
	}
}

func TestApp_ViewRendersWithoutHistory(t *testing.T) {
	bm := model.New()
	a := NewApp(bm, 0.01, 30)

	view := a.View()
	if !strings.Contains(view, "BALANCELAB") {
		t.Error("header missing")
	}
	if !strings.Contains(view, "columns") {
		t.Error("column state missing")
	}
}

func TestApp_TickAdvancesModel(t *testing.T) {
	bm := model.New()
	bm.ColumnState.Set(model.NoColumns)
	m := model.NewMass(5, mgl64.Vec2{})
	bm.AddMass(m)
	bm.Plank.AddMassToSurfaceAt(m, 1.0)

	a := NewApp(bm, 0.01, 30)
	var app = a
	for i := 0; i < 10; i++ {
		next, _ := app.Update(tickMsg{})
		app = next.(App)
	}

	if app.elapsed == 0 {
		t.Error("elapsed time did not advance")
	}
	if bm.Plank.TiltAngle.Get() <= 0 {
		t.Error("one-sided mass should tilt plank under ticks")
	}
	if len(app.history) == 0 {
		t.Error("tilt history not recorded")
	}
}
