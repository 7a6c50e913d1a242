package octree

import (
	"fmt"
	"io"
)

// Walk visits the tree in pre-order. The children of a node are skipped
// when fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	walk(t.root, fn)
}

func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		if c != nil {
			walk(c, fn)
		}
	}
}

// Octant reports which child slot of its parent n occupies.
func (n *Node) Octant() (Octant, bool) {
	if n.parent == nil {
		return 0, false
	}
	for o, c := range n.parent.children {
		if c == n {
			return Octant(o), true
		}
	}
	return 0, false
}

type Stats struct {
	Nodes     int
	Leaves    int
	Empty     int
	Particles int
	MaxDepth  int
}

func (t *Tree) Stats() Stats {
	var s Stats
	t.Walk(func(n *Node) bool {
		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, n.depth)
		if n.IsExternal() {
			if n.n == 0 {
				s.Empty++
			} else {
				s.Leaves++
				s.Particles += n.n
			}
		}
		return true
	})
	return s
}

// Dump writes one line for every leaf that holds a particle.
func (t *Tree) Dump(w io.Writer) error {
	var err error
	t.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		p, ok := n.Particle()
		if !ok {
			return true
		}
		label := "root"
		if o, ok := n.Octant(); ok {
			label = o.String()
		}
		_, err = fmt.Fprintf(w, "depth=%d octant=%s center=(%g, %g, %g) id=%d mass=%g pos=(%g, %g, %g)\n",
			n.depth, label, n.center.X, n.center.Y, n.center.Z,
			p.ID, p.Weight, p.Pos.X, p.Pos.Y, p.Pos.Z)
		return false
	})
	return err
}
