package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	toggleOff   = rl.Color{R: 80, G: 80, B: 80, A: 255}
	toggleOn    = rl.Color{R: 100, G: 200, B: 100, A: 255}
	keyHintGray = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// controlRow is one laid-out line of the controls panel: either a category
// header or a clickable overlay toggle.
type controlRow struct {
	y       int32
	header  string
	overlay OverlayDescriptor
}

func (r controlRow) isToggle() bool {
	return r.header == ""
}

// ControlsPanel lists overlay toggles by category. Rows can be clicked as
// well as toggled by their keys.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// layout positions every row and returns them with the total panel height.
func (c *ControlsPanel) layout(overlays *OverlayRegistry) ([]controlRow, int32) {
	t := c.renderer.Theme
	y := c.y + t.Padding + t.LineHeight + 4 // below the title

	var rows []controlRow
	for _, category := range overlays.Categories() {
		rows = append(rows, controlRow{y: y, header: categoryLabel(category)})
		y += t.LineHeight
		for _, desc := range overlays.ByCategory(category) {
			rows = append(rows, controlRow{y: y, overlay: desc})
			y += t.LineHeight
		}
		y += 4
	}
	return rows, y + t.Padding - c.y
}

// HandleClick toggles the overlay under (mx, my). It reports whether the
// click landed on the panel, so callers can skip world selection.
func (c *ControlsPanel) HandleClick(overlays *OverlayRegistry, mx, my float32) bool {
	if !c.visible {
		return false
	}
	rows, height := c.layout(overlays)
	x, y := int32(mx), int32(my)
	if x < c.x || x >= c.x+c.width || y < c.y || y >= c.y+height {
		return false
	}
	for _, row := range rows {
		if row.isToggle() && y >= row.y && y < row.y+c.renderer.Theme.LineHeight {
			overlays.Toggle(row.overlay.ID)
			break
		}
	}
	return true
}

// Draw renders the panel when visible.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) {
	if !c.visible {
		return
	}

	r := c.renderer
	rows, height := c.layout(overlays)
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + r.Theme.Padding
	rl.DrawText("Overlays", x, c.y+r.Theme.Padding, 16, rl.White)

	for _, row := range rows {
		if !row.isToggle() {
			rl.DrawText(row.header, x, row.y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
			continue
		}
		c.drawToggle(x, row.y, row.overlay, overlays.IsEnabled(row.overlay.ID), c.width-r.Theme.Padding*2)
	}
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	t := c.renderer.Theme

	status, nameColor := toggleOff, t.LabelColor
	if enabled {
		status, nameColor = toggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	rl.DrawText(desc.Name, x+14, y, t.FontSize, nameColor)

	if desc.KeyLabel != "" {
		key := "[" + desc.KeyLabel + "]"
		rl.DrawText(key, x+width-rl.MeasureText(key, t.FontSize), y, t.FontSize, keyHintGray)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "perception":
		return "Perception"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
