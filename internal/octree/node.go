package octree

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

// Node is one octant of a Tree. A node with no particles has no children, a
// node with one particle is a leaf holding a copy of it, and a node with more
// has at least one child and no particle of its own.
type Node struct {
	min, max, center r3.Vec

	mass float64
	com  r3.Vec

	n        int
	particle body.Particle

	children [NumOctants]*Node
	parent   *Node
	depth    int
	tree     *Tree
}

func (n *Node) init(t *Tree, parent *Node, max, min r3.Vec, depth int) {
	n.tree = t
	n.parent = parent
	n.depth = depth
	n.min = min
	n.max = max
	n.center = midpoint(min, max)
}

// Mass is the total weight below n as of the last ComputeMass.
func (n *Node) Mass() float64 { return n.mass }

// CenterOfMass is the weighted mean position below n. It is the zero vector
// until ComputeMass runs, and the cell center for a weightless subtree.
func (n *Node) CenterOfMass() r3.Vec { return n.com }

func (n *Node) Center() r3.Vec  { return n.center }
func (n *Node) Min() r3.Vec     { return n.min }
func (n *Node) Max() r3.Vec     { return n.max }
func (n *Node) Parent() *Node   { return n.parent }
func (n *Node) NParticles() int { return n.n }

// Depth counts subdivisions from the root, which is at depth 0.
func (n *Node) Depth() int   { return n.depth }
func (n *Node) IsRoot() bool { return n.parent == nil }

// Child returns the child in octant o, or nil when it has not been created.
func (n *Node) Child(o Octant) *Node {
	if o >= NumOctants {
		return nil
	}
	return n.children[o]
}

// IsExternal reports whether n has no children. An empty leaf is external.
func (n *Node) IsExternal() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// Particle returns the snapshot stored in a leaf. ok is false for empty and
// inner nodes.
func (n *Node) Particle() (p body.Particle, ok bool) {
	if n.n != 1 {
		return body.Particle{}, false
	}
	return n.particle, true
}

// Reset empties a root node and gives it new bounds. The old subtree is
// released. On any other node Reset returns ErrNotRoot and changes nothing.
func (n *Node) Reset(max, min r3.Vec) error {
	if !n.IsRoot() {
		return ErrNotRoot
	}
	t := n.tree
	for i, c := range n.children {
		if c != nil {
			t.pool.release(c)
			n.children[i] = nil
		}
	}
	*n = Node{}
	n.init(t, nil, max, min, 0)
	return nil
}

func (n *Node) contains(p r3.Vec) bool {
	return n.min.X <= p.X && p.X <= n.max.X &&
		n.min.Y <= p.Y && p.Y <= n.max.Y &&
		n.min.Z <= p.Z && p.Z <= n.max.Z
}

// insert adds p to the subtree. The count is only incremented once the
// particle has reached a leaf, so a failed insertion leaves the tree as it
// was.
func (n *Node) insert(p body.Particle) error {
	if !n.contains(p.Pos) {
		return &BoundaryError{Position: p.Pos, Min: n.min, Max: n.max}
	}

	switch {
	case n.n == 0:
		n.particle = p
	case n.n == 1 && n.IsExternal():
		if err := n.checkSplit(n.particle.Pos, p.Pos); err != nil {
			return err
		}
		old := n.particle
		n.particle = body.Particle{}
		if err := n.passDown(old); err != nil {
			return err
		}
		if err := n.passDown(p); err != nil {
			return err
		}
	default:
		if err := n.passDown(p); err != nil {
			return err
		}
	}
	n.n++
	return nil
}

func (n *Node) passDown(p body.Particle) error {
	o := octantOf(n.center, p.Pos)
	child, err := n.childFor(o)
	if err != nil {
		return err
	}
	return child.insert(p)
}

// childFor returns the child in octant o, creating it if absent.
func (n *Node) childFor(o Octant) (*Node, error) {
	if o >= NumOctants {
		return nil, &StructuralError{Octant: o}
	}
	if c := n.children[o]; c != nil {
		return c, nil
	}
	lo, hi, err := octantBounds(n.min, n.max, n.center, o)
	if err != nil {
		return nil, err
	}
	c := n.tree.pool.get()
	c.init(n.tree, n, hi, lo, n.depth+1)
	n.children[o] = c
	return c, nil
}

// checkSplit follows a and b down from n until they land in different
// octants and fails if that needs more than MaxDepth levels.
func (n *Node) checkSplit(a, b r3.Vec) error {
	limit := n.tree.cfg.maxDepth()
	lo, hi, center := n.min, n.max, n.center
	for depth := n.depth; ; depth++ {
		if depth >= limit {
			return ErrMaxDepth
		}
		oa := octantOf(center, a)
		if oa != octantOf(center, b) {
			return nil
		}
		var err error
		if lo, hi, err = octantBounds(lo, hi, center, oa); err != nil {
			return err
		}
		center = midpoint(lo, hi)
	}
}

func (n *Node) computeMass() {
	if n.n == 1 && n.IsExternal() {
		n.mass = n.particle.Weight
		n.com = n.particle.Pos
		return
	}

	n.mass = 0
	n.com = r3.Vec{}
	for _, c := range n.children {
		if c == nil {
			continue
		}
		c.computeMass()
		n.mass += c.mass
		n.com = r3.Add(n.com, r3.Scale(c.mass, c.com))
	}
	switch {
	case n.mass != 0:
		n.com = r3.Scale(1/n.mass, n.com)
	default:
		// Empty or weightless subtree.
		n.com = n.center
	}
}

func (n *Node) accelerationAt(pos r3.Vec, cfg *Config) r3.Vec {
	switch {
	case n.n == 0:
		return r3.Vec{}
	case n.n == 1 && n.IsExternal():
		return body.GravityAcceleration(cfg.G, pos, n.particle.Pos, n.particle.Weight)
	}

	r := r3.Norm(r3.Sub(n.com, pos))
	d := n.max.X - n.min.X
	if d/r <= cfg.Theta {
		return body.GravityAcceleration(cfg.G, pos, n.com, n.mass)
	}

	var acc r3.Vec
	for _, c := range n.children {
		if c != nil {
			acc = r3.Add(acc, c.accelerationAt(pos, cfg))
		}
	}
	return acc
}
