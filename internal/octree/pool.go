package octree

import "sync"

// nodePool recycles nodes released by Reset so that rebuilding a tree every
// step does not allocate a fresh set of nodes.
type nodePool struct {
	pool sync.Pool
}

func newNodePool() *nodePool {
	return &nodePool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(Node)
			},
		},
	}
}

func (p *nodePool) get() *Node {
	return p.pool.Get().(*Node)
}

// release returns n and its whole subtree to the pool.
func (p *nodePool) release(n *Node) {
	for i, c := range n.children {
		if c != nil {
			p.release(c)
			n.children[i] = nil
		}
	}
	*n = Node{}
	p.pool.Put(n)
}
