package layout

import "fmt"

const (
	MinScale = 0.1
	MaxScale = 3.0

	zoomOut = 0.9
	zoomIn  = 1.1
)

// Viewport is the pan/zoom state of an interactive view. The zero value is
// not ready for use; call [NewViewport].
type Viewport struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`

	dragging     bool
	lastX, lastY float64
}

// NewViewport returns an identity viewport.
func NewViewport() *Viewport {
	return &Viewport{Scale: 1}
}

// Zoom scales around the cursor (cx, cy) so the world point under the
// cursor stays put. A positive deltaY zooms out.
func (v *Viewport) Zoom(cx, cy, deltaY float64) {
	if v.Scale <= 0 {
		v.Scale = 1
	}
	factor := zoomIn
	if deltaY > 0 {
		factor = zoomOut
	}
	next := max(MinScale, min(MaxScale, v.Scale*factor))
	ratio := next / v.Scale
	v.TranslateX = cx - (cx-v.TranslateX)*ratio
	v.TranslateY = cy - (cy-v.TranslateY)*ratio
	v.Scale = next
}

// BeginDrag starts a pan at pointer position (x, y).
func (v *Viewport) BeginDrag(x, y float64) {
	v.dragging = true
	v.lastX, v.lastY = x, y
}

// DragTo moves the view by the pointer delta since the last event. It is a
// no-op when no drag is active.
func (v *Viewport) DragTo(x, y float64) {
	if !v.dragging {
		return
	}
	v.TranslateX += x - v.lastX
	v.TranslateY += y - v.lastY
	v.lastX, v.lastY = x, y
}

// EndDrag stops the current pan.
func (v *Viewport) EndDrag() { v.dragging = false }

// Dragging reports whether a pan is in progress.
func (v *Viewport) Dragging() bool { return v.dragging }

// Reset restores scale 1 and no translation.
func (v *Viewport) Reset() {
	*v = Viewport{Scale: 1}
}

// ToWorld converts a screen point to canvas coordinates.
func (v *Viewport) ToWorld(x, y float64) (float64, float64) {
	return (x - v.TranslateX) / v.Scale, (y - v.TranslateY) / v.Scale
}

// Transform renders the viewport as an SVG transform attribute.
func (v *Viewport) Transform() string {
	return fmt.Sprintf("translate(%s %s) scale(%s)", num(v.TranslateX), num(v.TranslateY), num(v.Scale))
}
