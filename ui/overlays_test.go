package ui

import (
	"testing"
)

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	if len(reg.All()) == 0 {
		t.Fatal("no default overlays registered")
	}
	if got := reg.EnabledOverlays(); len(got) != 0 {
		t.Errorf("enabled at start = %v, want none", got)
	}

	seen := make(map[int32]OverlayID)
	for _, desc := range reg.All() {
		if prev, dup := seen[desc.Key]; dup && desc.Key != 0 {
			t.Errorf("key %s bound to both %s and %s", desc.KeyLabel, prev, desc.ID)
		}
		seen[desc.Key] = desc.ID
	}

	cats := reg.Categories()
	want := []string{"visual", "perception", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.Toggle(OverlaySensorLines) || !reg.IsEnabled(OverlaySensorLines) {
		t.Fatal("first toggle should enable sensor lines")
	}
	if reg.Toggle(OverlaySensorLines) || reg.IsEnabled(OverlaySensorLines) {
		t.Error("second toggle should disable the overlay")
	}
	if reg.Toggle("missing") {
		t.Error("toggling an unregistered overlay reported enabled")
	}
}

func TestControlsPanelClick(t *testing.T) {
	reg := NewOverlayRegistry()
	panel := NewControlsPanel(10, 100, 220)
	theme := DefaultTheme()

	if panel.HandleClick(reg, 20, 120) {
		t.Fatal("hidden panel consumed a click")
	}
	panel.Toggle()

	rows, height := panel.layout(reg)
	if len(rows) != len(reg.All())+len(reg.Categories()) {
		t.Fatalf("layout has %d rows, want one per overlay and category", len(rows))
	}

	var target controlRow
	for _, row := range rows {
		if row.isToggle() && row.overlay.ID == OverlayViewRadius {
			target = row
		}
	}
	if !panel.HandleClick(reg, 30, float32(target.y+theme.LineHeight/2)) {
		t.Fatal("click on a toggle row was not consumed")
	}
	if !reg.IsEnabled(OverlayViewRadius) {
		t.Error("clicking the view radius row did not enable it")
	}

	// A header row is on the panel but toggles nothing.
	before := reg.EnabledOverlays()
	if !panel.HandleClick(reg, 30, float32(rows[0].y+1)) {
		t.Error("click on a header was not consumed")
	}
	if got := reg.EnabledOverlays(); len(got) != len(before) {
		t.Errorf("header click changed overlays: %v -> %v", before, got)
	}

	if panel.HandleClick(reg, 30, float32(100+height+5)) {
		t.Error("click below the panel was consumed")
	}
	if panel.HandleClick(reg, 500, 120) {
		t.Error("click right of the panel was consumed")
	}
}

func TestOverlaysAreIndependent(t *testing.T) {
	reg := NewOverlayRegistry()

	reg.SetEnabled(OverlayViewRadius, true)
	reg.Toggle(OverlaySensorLines)

	if !reg.IsEnabled(OverlaySensorLines) || !reg.IsEnabled(OverlayViewRadius) {
		t.Errorf("sensor lines=%v view radius=%v, want both enabled",
			reg.IsEnabled(OverlaySensorLines), reg.IsEnabled(OverlayViewRadius))
	}
	if got := reg.EnabledOverlays(); len(got) != 2 || got[0] != OverlaySensorLines || got[1] != OverlayViewRadius {
		t.Errorf("EnabledOverlays() = %v, want registration order", got)
	}

	reg.SetEnabled("missing", true)
	if reg.IsEnabled("missing") {
		t.Error("SetEnabled registered an unknown overlay")
	}

	reg.Register(OverlayDescriptor{ID: "extra", Category: "test"})
	if got := reg.ByCategory("test"); len(got) != 1 {
		t.Errorf("ByCategory(test) = %d overlays, want 1", len(got))
	}
}

func TestPanelHeightSkipsHiddenSections(t *testing.T) {
	theme := DefaultTheme()
	panel := inspectorPanel()

	withDecision := theme.PanelHeight(panel, &InspectorData{HasDecision: true})
	without := theme.PanelHeight(panel, &InspectorData{})
	if withDecision <= without {
		t.Errorf("height with sensors %d <= height without %d", withDecision, without)
	}

	// Sensors and brain sections: two headers plus their bar rows.
	rows := int32(len(SensorLabels) + 2)
	want := 2*theme.LineHeight + rows*(theme.LineHeight+2) + 2*4
	if withDecision-without != want {
		t.Errorf("sensor section height = %d, want %d", withDecision-without, want)
	}
}

func TestAnchorPosition(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 1000 - 200 - 10, 10},
		{AnchorBottomLeft, 10, 700 - 100 - 10},
		{AnchorBottomRight, 1000 - 200 - 10, 700 - 100 - 10},
	}
	for _, tt := range tests {
		x, y := AnchorPosition(tt.anchor, 200, 100, 1000, 700, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d = (%d, %d), want (%d, %d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}
