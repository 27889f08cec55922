package search

import (
	"container/heap"

	"github.com/gravitas-015/hexpath/pkg/hex"
)

// node tracks one discovered coordinate: cost so far, estimated total cost,
// and the predecessor link used for path reconstruction. Nodes belong to the
// engine that created them and are never shared.
type node struct {
	coord     hex.Axial
	g         int
	f         int
	parent    hex.Axial
	hasParent bool
	seq       int // insertion order, breaks f-score ties oldest-first
	index     int // heap bookkeeping
}

// frontier is the open set: a priority queue keyed by (f, seq) holding at
// most one live entry per coordinate. A cheaper route to a queued coordinate
// updates the entry in place instead of duplicating it.
type frontier struct {
	items   nodeHeap
	byCoord map[hex.Axial]*node
	nextSeq int
}

func newFrontier() *frontier {
	f := &frontier{byCoord: make(map[hex.Axial]*node)}
	heap.Init(&f.items)
	return f
}

func (f *frontier) Len() int { return len(f.items) }

// Push inserts a new coordinate. The caller guarantees it is not queued.
func (f *frontier) Push(n *node) {
	n.seq = f.nextSeq
	f.nextSeq++
	heap.Push(&f.items, n)
	f.byCoord[n.coord] = n
}

// Get returns the live entry for c, if any.
func (f *frontier) Get(c hex.Axial) (*node, bool) {
	n, ok := f.byCoord[c]
	return n, ok
}

// Update re-keys an existing entry after a cheaper route was found. The
// entry keeps its original insertion sequence.
func (f *frontier) Update(n *node, g, fScore int, parent hex.Axial) {
	n.g = g
	n.f = fScore
	n.parent = parent
	n.hasParent = true
	heap.Fix(&f.items, n.index)
}

// Pop removes and returns the entry with the lowest (f, seq).
func (f *frontier) Pop() *node {
	n := heap.Pop(&f.items).(*node)
	delete(f.byCoord, n.coord)
	return n
}

// MinF returns the smallest pending f-score, or false when empty.
func (f *frontier) MinF() (int, bool) {
	if len(f.items) == 0 {
		return 0, false
	}
	return f.items[0].f, true
}

// Coords returns the queued coordinates as a set.
func (f *frontier) Coords() map[hex.Axial]bool {
	out := make(map[hex.Axial]bool, len(f.byCoord))
	for c := range f.byCoord {
		out[c] = true
	}
	return out
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
