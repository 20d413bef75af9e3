package pathsearch

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/tfcache/core"
)

// Search finds a meeting frame between source and target in reg at time t
// and returns the two edge-sample legs needed to compose a target_T_source
// transform. It expands both frontiers along parent edges (a Frame's only
// neighbours) using the minimax edge cost TimeToNearest, so the returned
// path minimizes the worst single-edge interpolation error rather than a
// sum of costs.
//
// Preconditions:
//  1. source and target must resolve to known frames in reg.
//  2. source != target (callers short-circuit the identity case themselves;
//     see ErrSameFrame).
func Search(reg *core.FrameRegistry, source, target core.FrameHandle, t int64, opts ...Option) (*Result, error) {
	if source == target {
		return nil, ErrSameFrame
	}

	cfg := options{maxCost: math.MaxInt64}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &runner{
		reg:   reg,
		t:     t,
		cfg:   cfg,
		nodes: make(map[core.FrameHandle]*searchNode, 16),
	}
	r.init(source, target)

	meet, err := r.process()
	if err != nil {
		return nil, err
	}

	inverse, err := r.walkBack(meet, source)
	if err != nil {
		return nil, err
	}
	forward, err := r.walkForward(meet, target)
	if err != nil {
		return nil, err
	}

	return &Result{Meet: meet.frame, Cost: meet.cost, Inverse: inverse, Forward: forward}, nil
}

// searchNode is one frame's state across both frontiers. backStep, when set,
// names the child-side neighbour that reached this frame from the source
// frontier; fwdStep names the child-side neighbour that reached it from the
// target frontier. A node with both set is a meeting point.
type searchNode struct {
	frame    core.FrameHandle
	cost     int64
	backStep core.FrameHandle
	backSet  bool
	fwdStep  core.FrameHandle
	fwdSet   bool
}

// runner holds the mutable state for a single bidirectional search.
type runner struct {
	reg   *core.FrameRegistry
	t     int64
	cfg   options
	nodes map[core.FrameHandle]*searchNode
	pq    nodePQ
	seq   int
}

func (r *runner) init(source, target core.FrameHandle) {
	src := &searchNode{frame: source, backStep: source, backSet: true}
	dst := &searchNode{frame: target, fwdStep: target, fwdSet: true}
	r.nodes[source] = src
	r.nodes[target] = dst

	heap.Init(&r.pq)
	r.push(src)
	r.push(dst)
}

func (r *runner) push(n *searchNode) {
	r.seq++
	heap.Push(&r.pq, &pqItem{node: n, seq: r.seq})
}

// process pops nodes in increasing cost order, expanding each along its
// frame's parents, until a node carrying both frontier slots is popped. The
// returned node is the forked meet object itself, never the single-direction
// entry still held in r.nodes for that frame.
func (r *runner) process() (*searchNode, error) {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*pqItem)
		n := item.node

		if n.backSet && n.fwdSet {
			return n, nil
		}
		if n.cost > r.cfg.maxCost {
			break
		}

		frame, ok := r.reg.Get(n.frame)
		if !ok {
			continue
		}
		for _, parent := range frame.ParentFrames() {
			tc, ok := frame.Cache(parent)
			if !ok {
				continue
			}
			edgeCost := tc.TimeToNearest(r.t)
			newCost := maxInt64(n.cost, edgeCost)
			if newCost > r.cfg.maxCost {
				continue
			}
			r.expand(n, parent, newCost)
		}
	}

	return nil, ErrNotConnected
}

// expand relaxes the edge from n's frame to the neighbour parent, creating
// neighbour's node on first visit, skipping a same-direction revisit, and
// forking a meet node when the neighbour was previously reached from the
// opposite frontier.
func (r *runner) expand(n *searchNode, parent core.FrameHandle, newCost int64) {
	existing, ok := r.nodes[parent]
	if !ok {
		nn := &searchNode{frame: parent, cost: newCost}
		if n.backSet {
			nn.backStep, nn.backSet = n.frame, true
		}
		if n.fwdSet {
			nn.fwdStep, nn.fwdSet = n.frame, true
		}
		r.nodes[parent] = nn
		r.push(nn)

		return
	}

	sameDirection := (n.backSet && existing.backSet) || (n.fwdSet && existing.fwdSet)
	if sameDirection {
		return
	}

	meet := &searchNode{
		frame:    parent,
		cost:     maxInt64(existing.cost, newCost),
		backStep: existing.backStep,
		backSet:  existing.backSet,
		fwdStep:  existing.fwdStep,
		fwdSet:   existing.fwdSet,
	}
	if n.backSet {
		meet.backStep, meet.backSet = n.frame, true
	}
	if n.fwdSet {
		meet.fwdStep, meet.fwdSet = n.frame, true
	}
	r.push(meet)
}

// walkBack reconstructs the source-to-meet leg, ordered source-nearest
// first, by following backStep pointers from meet down to source. meet is
// the forked node returned by process, whose backStep/backSet may differ
// from what r.nodes[meet.frame] holds; every subsequent hop uses the map.
func (r *runner) walkBack(meet *searchNode, source core.FrameHandle) ([]core.TransformStorage, error) {
	var edges []core.TransformStorage
	n := meet
	cur := meet.frame
	for cur != source {
		if !n.backSet {
			return nil, ErrNotConnected
		}
		child := n.backStep
		sample, err := r.edgeSample(child, cur)
		if err != nil {
			return nil, err
		}
		edges = append(edges, sample)
		cur = child
		var ok bool
		n, ok = r.nodes[cur]
		if !ok {
			return nil, ErrNotConnected
		}
	}
	reverseEdges(edges)

	return edges, nil
}

// walkForward reconstructs the meet-to-target leg, ordered meet-nearest
// first, by following fwdStep pointers from meet down to target. meet is
// the forked node returned by process; see walkBack.
func (r *runner) walkForward(meet *searchNode, target core.FrameHandle) ([]core.TransformStorage, error) {
	var edges []core.TransformStorage
	n := meet
	cur := meet.frame
	for cur != target {
		if !n.fwdSet {
			return nil, ErrNotConnected
		}
		child := n.fwdStep
		sample, err := r.edgeSample(child, cur)
		if err != nil {
			return nil, err
		}
		edges = append(edges, sample)
		cur = child
		var ok bool
		n, ok = r.nodes[cur]
		if !ok {
			return nil, ErrNotConnected
		}
	}

	return edges, nil
}

// edgeSample fetches the interpolated parent_T_child sample at r.t for the
// edge stored under child's cache keyed by parent.
func (r *runner) edgeSample(child, parent core.FrameHandle) (core.TransformStorage, error) {
	childFrame, ok := r.reg.Get(child)
	if !ok {
		return core.TransformStorage{}, ErrNotConnected
	}
	tc, ok := childFrame.Cache(parent)
	if !ok {
		return core.TransformStorage{}, ErrNotConnected
	}

	return tc.GetData(r.t, parent)
}

func reverseEdges(edges []core.TransformStorage) {
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}

// pqItem is a heap entry pairing a searchNode with an insertion sequence
// number, used to FIFO-break ties between equal-cost nodes.
type pqItem struct {
	node *searchNode
	seq  int
}

// nodePQ is a min-heap of *pqItem ordered by node cost ascending, then
// insertion sequence ascending.
type nodePQ []*pqItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].node.cost != pq[j].node.cost {
		return pq[i].node.cost < pq[j].node.cost
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
