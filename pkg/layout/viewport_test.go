package layout

import "testing"

func TestViewportZoomClamp(t *testing.T) {
	v := NewViewport()
	for range 100 {
		v.Zoom(0, 0, -1)
	}
	if v.Scale != MaxScale {
		t.Errorf("Scale after zooming in = %v, want %v", v.Scale, MaxScale)
	}
	for range 100 {
		v.Zoom(0, 0, 1)
	}
	if v.Scale != MinScale {
		t.Errorf("Scale after zooming out = %v, want %v", v.Scale, MinScale)
	}
}

func TestViewportZoomToCursor(t *testing.T) {
	v := NewViewport()
	v.TranslateX, v.TranslateY = 30, -20

	wx, wy := v.ToWorld(200, 150)
	v.Zoom(200, 150, -120)

	if !near(v.Scale, 1.1) {
		t.Errorf("Scale = %v, want 1.1", v.Scale)
	}
	gx, gy := v.ToWorld(200, 150)
	if !near(gx, wx) || !near(gy, wy) {
		t.Errorf("world point under cursor moved: (%v,%v) → (%v,%v)", wx, wy, gx, gy)
	}

	v.Zoom(200, 150, 120)
	if !near(v.Scale, 0.99) {
		t.Errorf("Scale = %v, want 0.99", v.Scale)
	}
}

func TestViewportDrag(t *testing.T) {
	v := NewViewport()

	v.DragTo(50, 50)
	if v.TranslateX != 0 || v.TranslateY != 0 {
		t.Error("DragTo without BeginDrag must not pan")
	}

	v.BeginDrag(10, 10)
	v.DragTo(15, 30)
	v.DragTo(25, 20)
	v.EndDrag()
	v.DragTo(100, 100)

	if v.TranslateX != 15 || v.TranslateY != 10 {
		t.Errorf("translate = (%v,%v), want (15,10)", v.TranslateX, v.TranslateY)
	}
	if v.Dragging() {
		t.Error("Dragging() = true after EndDrag")
	}

	v.Zoom(0, 0, -1)
	v.Reset()
	if v.Scale != 1 || v.TranslateX != 0 || v.TranslateY != 0 {
		t.Errorf("after Reset = %+v", v)
	}
	if got := v.Transform(); got != "translate(0 0) scale(1)" {
		t.Errorf("Transform() = %q", got)
	}
}
