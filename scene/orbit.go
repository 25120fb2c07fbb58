package scene

import "math"

const (
	// Sensitivity is degrees of rotation per pixel dragged.
	Sensitivity = 0.5
	// ClickSlop is how far in pixels the pointer may travel between press and
	// release and still count as a click.
	ClickSlop = 4
)

// Orbit accumulates drag rotation as Euler angles in degrees.
type Orbit struct {
	AngleX float32
	AngleY float32

	dragging bool
	lastX    float64
	lastY    float64
	travel   float64
}

func (o *Orbit) Down(x, y float64) {
	o.dragging = true
	o.lastX, o.lastY = x, y
	o.travel = 0
}

func (o *Orbit) Move(x, y float64) {
	if !o.dragging {
		return
	}

	dx, dy := x-o.lastX, y-o.lastY
	o.AngleY += float32(dx * Sensitivity)
	o.AngleX += float32(dy * Sensitivity)
	o.travel += math.Hypot(dx, dy)
	o.lastX, o.lastY = x, y
}

// Up ends a drag and reports whether it was short enough to be a click.
func (o *Orbit) Up(x, y float64) bool {
	if !o.dragging {
		return false
	}
	o.Move(x, y)
	o.dragging = false
	return o.travel <= ClickSlop
}

func (o *Orbit) Dragging() bool {
	return o.dragging
}

func (o *Orbit) Reset() {
	*o = Orbit{}
}
