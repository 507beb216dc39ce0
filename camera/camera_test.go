package camera

import (
	"math"
	"testing"
)

func TestNewFitsWorld(t *testing.T) {
	cam := New(1000, 700, 1000, 700)

	if cam.X != 500 || cam.Y != 350 {
		t.Errorf("expected camera at (500, 350), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 || cam.Scale() != 1.0 {
		t.Errorf("expected zoom and scale 1, got %f/%f", cam.Zoom, cam.Scale())
	}

	sx, sy := cam.WorldToScreen(0, 0)
	if sx != 0 || sy != 0 {
		t.Errorf("world origin maps to (%f, %f), want (0, 0)", sx, sy)
	}
}

func TestLetterboxScale(t *testing.T) {
	// A window twice as wide as the world is tall-limited.
	cam := New(2000, 700, 1000, 700)
	if cam.Scale() != 1.0 {
		t.Errorf("scale = %f, want 1 (height-limited)", cam.Scale())
	}
	sx, _ := cam.WorldToScreen(500, 350)
	if sx != 1000 {
		t.Errorf("world center at x=%f, want screen center 1000", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1000, 700)
	cam.SetZoom(2.5)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 1e-9 || math.Abs(sy-tc.sy) > 1e-9 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInsideWorld(t *testing.T) {
	cam := New(1000, 700, 1000, 700)

	// At zoom 1 the whole world is visible, so panning does nothing.
	cam.Pan(-300, 200)
	if cam.X != 500 || cam.Y != 350 {
		t.Errorf("pan at zoom 1 moved camera to (%f, %f)", cam.X, cam.Y)
	}

	cam.SetZoom(2)
	cam.Pan(-5000, -5000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if math.Abs(minX) > 1e-9 || math.Abs(minY) > 1e-9 {
		t.Errorf("view escaped top-left corner: min (%f, %f)", minX, minY)
	}

	cam.Pan(5000, 5000)
	_, _, maxX, maxY := cam.VisibleWorldBounds()
	if math.Abs(maxX-1000) > 1e-9 || math.Abs(maxY-700) > 1e-9 {
		t.Errorf("view escaped bottom-right corner: max (%f, %f)", maxX, maxY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1000, 700, 1000, 700)

	cam.SetZoom(0.1)
	if cam.Zoom != 1 {
		t.Errorf("expected zoom clamped to 1, got %f", cam.Zoom)
	}
	cam.SetZoom(50)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 700, 1000, 700)
	cam.SetZoom(4)
	cam.Pan(-5000, -5000) // view covers (0,0) to (250,175)

	if !cam.IsVisible(100, 100, 5) {
		t.Error("point inside view should be visible")
	}
	if cam.IsVisible(900, 600, 5) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(260, 100, 20) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1000, 700, 1000, 700)
	cam.SetZoom(3)
	cam.Pan(200, 100)

	cam.Reset()
	if cam.X != 500 || cam.Y != 350 || cam.Zoom != 1 {
		t.Errorf("after reset: (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}
