package host

import "fmt"

// Screen dimensions of the emulated device, in pixels.
const (
	ScreenWidth  = 144
	ScreenHeight = 168
)

// Point is a pixel position relative to the parent layer.
type Point struct {
	X, Y int
}

// Size is a pixel extent.
type Size struct {
	W, H int
}

// Rect is a positioned pixel rectangle. Origins may be negative; the
// renderer clips to the window.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect builds a Rect from its components.
func NewRect(x, y, w, h int) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.Origin.X + r.Size.W }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.H }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Size.W <= 0 || r.Size.H <= 0 }

// Intersect returns the overlap of r and o. The result is empty when they
// do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{Origin: Point{X: x0, Y: y0}}
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// String implements fmt.Stringer
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Origin.X, r.Origin.Y, r.Size.W, r.Size.H)
}
