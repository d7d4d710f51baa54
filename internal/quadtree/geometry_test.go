package quadtree

import (
	"math/rand"
	"testing"
)

func TestRectangleContains_HalfOpen(t *testing.T) {
	r := Rectangle{X: 50, Y: 50, W: 50, H: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"min corner", 0, 0, true},
		{"max x edge", 100, 50, false},
		{"max y edge", 50, 100, false},
		{"just below max", 99.999, 99.999, true},
		{"left of min", -0.001, 50, false},
		{"above min", 50, -0.001, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectangleContains_MatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		r := Rectangle{
			X: rng.Float64()*200 - 100,
			Y: rng.Float64()*200 - 100,
			W: rng.Float64() * 50,
			H: rng.Float64() * 50,
		}
		x := rng.Float64()*300 - 150
		y := rng.Float64()*300 - 150
		want := r.X-r.W <= x && x < r.X+r.W && r.Y-r.H <= y && y < r.Y+r.H
		if got := r.Contains(x, y); got != want {
			t.Fatalf("%+v.Contains(%v, %v) = %v, want %v", r, x, y, got, want)
		}
	}
}

func TestRectangleIntersects(t *testing.T) {
	a := Rectangle{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Rectangle
		want bool
	}{
		{"same", a, true},
		{"inside", Rectangle{X: 2, Y: 2, W: 1, H: 1}, true},
		{"overlap", Rectangle{X: 15, Y: 0, W: 10, H: 10}, true},
		{"touching edge", Rectangle{X: 20, Y: 0, W: 10, H: 10}, true},
		{"apart on x", Rectangle{X: 21, Y: 0, W: 10, H: 10}, false},
		{"apart on y", Rectangle{X: 0, Y: -30, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Fatalf("Intersects(%+v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.Intersects(a); got != tt.want {
				t.Fatalf("Intersects is not symmetric for %+v", tt.b)
			}
		})
	}
}

func TestCircleContains(t *testing.T) {
	c := NewCircle(10, 10, 5)
	if !c.Contains(10, 10) {
		t.Fatal("center should be inside")
	}
	if !c.Contains(15, 10) {
		t.Fatal("point on the rim should be inside")
	}
	if c.Contains(14, 14) {
		t.Fatal("(14,14) is sqrt(32) away, outside radius 5")
	}
}

func TestCircleIntersects(t *testing.T) {
	r := Rectangle{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		c    Circle
		want bool
	}{
		{"center inside", NewCircle(0, 0, 1), true},
		{"overlaps side", NewCircle(14, 0, 5), true},
		{"too far on x", NewCircle(16, 0, 5), false},
		{"near corner", NewCircle(13, 13, 5), true},
		{"corner gap", NewCircle(14, 14, 5), false},
		{"swallows rect", NewCircle(0, 0, 100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Intersects(r); got != tt.want {
				t.Fatalf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

// A circle that contains any point of a rectangle must report an intersection,
// otherwise Query would prune a node holding a match.
func TestCircleIntersects_NoFalseNegatives(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		r := Rectangle{X: rng.Float64() * 100, Y: rng.Float64() * 100, W: 1 + rng.Float64()*20, H: 1 + rng.Float64()*20}
		c := NewCircle(rng.Float64()*100, rng.Float64()*100, rng.Float64()*30)
		for j := 0; j < 20; j++ {
			x := r.X - r.W + rng.Float64()*2*r.W
			y := r.Y - r.H + rng.Float64()*2*r.H
			if c.Contains(x, y) && !c.Intersects(r) {
				t.Fatalf("circle %+v contains (%v,%v) of %+v but reports no intersection", c, x, y, r)
			}
		}
	}
}

func TestRectFromSize(t *testing.T) {
	r := RectFromSize(800, 600)
	if r.X != 400 || r.Y != 300 || r.W != 400 || r.H != 300 {
		t.Fatalf("RectFromSize = %+v", r)
	}
	if !r.Contains(0, 0) || r.Contains(800, 0) {
		t.Fatal("RectFromSize should cover [0,800) x [0,600)")
	}
	if w, h := r.Size(); w != 800 || h != 600 {
		t.Fatalf("Size = %v x %v", w, h)
	}
	if x, y := r.Min(); x != 0 || y != 0 {
		t.Fatalf("Min = %v, %v", x, y)
	}
}
