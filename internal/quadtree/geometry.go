package quadtree

import "math"

// Range is a query shape. Rectangle and Circle are the two implementations.
type Range interface {
	Contains(x, y float64) bool
	Intersects(r Rectangle) bool
}

// Rectangle is an axis-aligned box given by its center and half-extents.
type Rectangle struct {
	X, Y float64 // Center
	W, H float64 // Half width, half height
}

// Contains reports whether (x, y) lies inside r. The box is half-open:
// the min edges belong to r, the max edges do not.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X-r.W &&
		x < r.X+r.W &&
		y >= r.Y-r.H &&
		y < r.Y+r.H
}

// Intersects reports whether r and other overlap, edges included.
func (r Rectangle) Intersects(other Rectangle) bool {
	return !(other.X-other.W > r.X+r.W ||
		other.X+other.W < r.X-r.W ||
		other.Y-other.H > r.Y+r.H ||
		other.Y+other.H < r.Y-r.H)
}

// Min returns the top-left corner.
func (r Rectangle) Min() (float64, float64) {
	return r.X - r.W, r.Y - r.H
}

// Size returns the full width and height.
func (r Rectangle) Size() (float64, float64) {
	return r.W * 2, r.H * 2
}

// RectFromSize builds the rectangle covering [0,width) x [0,height).
func RectFromSize(width, height float64) Rectangle {
	return Rectangle{X: width / 2, Y: height / 2, W: width / 2, H: height / 2}
}

// Circle is a disc query shape. Build it with NewCircle so the squared
// radius is filled in.
type Circle struct {
	X, Y float64
	R    float64
	rSq  float64
}

// NewCircle returns a circle centered on (x, y).
func NewCircle(x, y, r float64) Circle {
	return Circle{X: x, Y: y, R: r, rSq: r * r}
}

// Contains reports whether (x, y) is within the circle, boundary included.
func (c Circle) Contains(x, y float64) bool {
	dx := x - c.X
	dy := y - c.Y
	return dx*dx+dy*dy <= c.rSq
}

// Intersects reports whether the circle touches r.
func (c Circle) Intersects(r Rectangle) bool {
	xDist := math.Abs(r.X - c.X)
	yDist := math.Abs(r.Y - c.Y)

	if xDist > c.R+r.W || yDist > c.R+r.H {
		return false
	}
	if xDist <= r.W || yDist <= r.H {
		return true
	}

	// Only the corner region is left
	ex := xDist - r.W
	ey := yDist - r.H
	return ex*ex+ey*ey <= c.rSq
}
