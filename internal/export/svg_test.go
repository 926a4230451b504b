package export

import (
	"strings"
	"testing"
)

func TestTrajectoryToSVG(t *testing.T) {
	points := []Point{{0, 0}, {1, 0.5}, {2, -0.5}, {3, 0}}
	svg := TrajectoryToSVG(points, 640, 240, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="640" height="240"`) {
		t.Error("missing svg element with dimensions")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color not applied")
	}
	if strings.Count(svg, " L") != len(points)-1 {
		t.Errorf("expected %d line segments, got %d", len(points)-1, strings.Count(svg, " L"))
	}
	if !strings.Contains(svg, "<line") {
		t.Error("expected zero line when y range spans 0")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated document")
	}
}

func TestTrajectoryToSVG_TooFewPoints(t *testing.T) {
	if TrajectoryToSVG([]Point{{1, 1}}, 100, 100, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	if TrajectoryToSVG(nil, 100, 100, "#fff") != "" {
		t.Error("expected empty output for nil points")
	}
}

func TestTiltSeriesToSVG(t *testing.T) {
	svg := TiltSeriesToSVG([]float64{0, 0.01, 0.02}, []float64{0, 0.1, 0.2}, 100, 100)
	if svg == "" {
		t.Fatal("expected SVG output")
	}

	if TiltSeriesToSVG([]float64{0, 1}, []float64{0}, 100, 100) != "" {
		t.Error("expected empty output for mismatched lengths")
	}
}
