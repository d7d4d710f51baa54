/*
Package quadtree implements a region quadtree over 2D points.

A tree is meant to be built, queried and thrown away within a single
simulation tick. There is no deletion and no rebalancing.

Node is not safe for concurrent use.
*/
package quadtree

// MaxDepth is the deepest level a node may subdivide to. A node at this depth
// keeps accepting points past its capacity, so piles of coincident points stop
// recursing here.
const MaxDepth = 16

// Point is an indexed location plus a reference back to whatever owns it.
type Point[T any] struct {
	X, Y float64
	Data T
}

// Node is one quadrant of the tree. The root is a Node too.
type Node[T any] struct {
	Boundary Rectangle
	Capacity int
	Tag      string // Visual tag, inherited by children
	Points   []Point[T]
	Divided  bool
	NE, NW   *Node[T]
	SE, SW   *Node[T]
	depth    int
}

// New creates an empty leaf covering boundary. It panics if capacity < 1.
func New[T any](boundary Rectangle, capacity int, tag string) *Node[T] {
	if capacity < 1 {
		panic("quadtree: capacity must be at least 1")
	}
	return &Node[T]{
		Boundary: boundary,
		Capacity: capacity,
		Tag:      tag,
		Points:   make([]Point[T], 0, capacity),
	}
}

// Depth returns how many subdivisions separate n from the root.
func (n *Node[T]) Depth() int {
	return n.depth
}

// Insert adds p to the tree. It returns false, without error, when p lies
// outside the node's boundary.
func (n *Node[T]) Insert(p Point[T]) bool {
	if !n.Boundary.Contains(p.X, p.Y) {
		return false
	}

	if !n.Divided && (len(n.Points) < n.Capacity || n.depth >= MaxDepth) {
		n.Points = append(n.Points, p)
		return true
	}

	if !n.Divided {
		n.subdivide()
	}

	return n.NE.Insert(p) ||
		n.NW.Insert(p) ||
		n.SE.Insert(p) ||
		n.SW.Insert(p)
}

// subdivide splits n into four equal quadrants. Points already held stay in n.
func (n *Node[T]) subdivide() {
	if n.Divided {
		return
	}
	x := n.Boundary.X
	y := n.Boundary.Y
	w := n.Boundary.W / 2
	h := n.Boundary.H / 2

	n.NE = n.child(Rectangle{X: x + w, Y: y - h, W: w, H: h})
	n.NW = n.child(Rectangle{X: x - w, Y: y - h, W: w, H: h})
	n.SE = n.child(Rectangle{X: x + w, Y: y + h, W: w, H: h})
	n.SW = n.child(Rectangle{X: x - w, Y: y + h, W: w, H: h})

	n.Divided = true
}

func (n *Node[T]) child(boundary Rectangle) *Node[T] {
	c := New[T](boundary, n.Capacity, n.Tag)
	c.depth = n.depth + 1
	return c
}

// Query appends every point inside r to found and returns the extended slice.
func (n *Node[T]) Query(r Range, found []Point[T]) []Point[T] {
	if !r.Intersects(n.Boundary) {
		return found
	}

	for _, p := range n.Points {
		if r.Contains(p.X, p.Y) {
			found = append(found, p)
		}
	}

	if n.Divided {
		found = n.NW.Query(r, found)
		found = n.NE.Query(r, found)
		found = n.SW.Query(r, found)
		found = n.SE.Query(r, found)
	}

	return found
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips that node's children.
func (n *Node[T]) Walk(fn func(*Node[T]) bool) {
	if !fn(n) || !n.Divided {
		return
	}
	n.NW.Walk(fn)
	n.NE.Walk(fn)
	n.SW.Walk(fn)
	n.SE.Walk(fn)
}

// Boundaries appends the boundary of every node in the tree to dst.
func (n *Node[T]) Boundaries(dst []Rectangle) []Rectangle {
	n.Walk(func(c *Node[T]) bool {
		dst = append(dst, c.Boundary)
		return true
	})
	return dst
}

// Len returns the number of points stored in the tree.
func (n *Node[T]) Len() int {
	total := 0
	n.Walk(func(c *Node[T]) bool {
		total += len(c.Points)
		return true
	})
	return total
}

// Nodes returns the number of nodes in the tree, n included.
func (n *Node[T]) Nodes() int {
	count := 0
	n.Walk(func(*Node[T]) bool {
		count++
		return true
	})
	return count
}

// Height returns the depth of the deepest node below n, relative to n.
func (n *Node[T]) Height() int {
	deepest := n.depth
	n.Walk(func(c *Node[T]) bool {
		if c.depth > deepest {
			deepest = c.depth
		}
		return true
	})
	return deepest - n.depth
}
