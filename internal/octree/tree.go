package octree

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

// Tree owns a root node and the configuration shared by all of its nodes.
type Tree struct {
	root *Node
	cfg  Config
	pool *nodePool
}

// New returns an empty tree covering the box [min, max].
func New(max, min r3.Vec, cfg Config) *Tree {
	t := &Tree{cfg: cfg, pool: newNodePool()}
	t.root = &Node{}
	t.root.init(t, nil, max, min, 0)
	return t
}

func (t *Tree) Root() *Node    { return t.root }
func (t *Tree) Config() Config { return t.cfg }
func (t *Tree) Len() int       { return t.root.n }

// SetConfig replaces theta, G and the depth limit. It must not be called
// while the tree is being queried.
func (t *Tree) SetConfig(cfg Config) { t.cfg = cfg }

// InsertParticle stores a copy of p. A position outside the root bounds
// yields a *BoundaryError and leaves the tree unchanged.
func (t *Tree) InsertParticle(p body.Particle) error {
	return t.root.insert(p)
}

// Insert adds every particle in ps. It stops at the first failure; the tree
// must then be reset before it is used again.
func (t *Tree) Insert(ps []body.Particle) error {
	for i := range ps {
		if err := t.root.insert(ps[i]); err != nil {
			return fmt.Errorf("insert particle %d: %w", ps[i].ID, err)
		}
	}
	return nil
}

// ComputeMass aggregates mass and center of mass bottom-up. It must run
// after the last insertion and before any force query.
func (t *Tree) ComputeMass() {
	t.root.computeMass()
}

// ComputeForce returns the acceleration on p, approximating every node whose
// width over distance to its center of mass is at most Theta. Despite the
// name the result is an acceleration: G·m/r³ · (com − p).
func (t *Tree) ComputeForce(p body.Particle) body.Acceleration {
	return t.root.accelerationAt(p.Pos, &t.cfg)
}

// ResetNode discards every particle and gives the root new bounds.
func (t *Tree) ResetNode(max, min r3.Vec) error {
	return t.root.Reset(max, min)
}

// Rebuild resets the root to a cube enclosing ps, inserts them all and
// aggregates the masses.
func (t *Tree) Rebuild(ps []body.Particle, pad float64) error {
	box := BoundsOf(ps, pad)
	if err := t.ResetNode(box.Max, box.Min); err != nil {
		return err
	}
	if err := t.Insert(ps); err != nil {
		return err
	}
	t.ComputeMass()
	return nil
}
