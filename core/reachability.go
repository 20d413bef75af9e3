package core

// ReachableFrames performs a breadth-first walk of the ancestor closure of
// start: start itself, its parents, their parents, and so on across every
// parent edge ever observed for each frame. It does not attempt to find a
// specific target — it is a diagnostic for tooling built on tfcache
// (inspecting what a frame can currently reach), not part of the
// LookupTransform/Backfill call path: PathSearch already reports
// NotConnected on its own when no such closure overlap exists.
//
// The walk order is breadth-first but callers should not depend on it;
// only set membership is guaranteed. Grounded on the teacher's bfs walker
// (queue + visited-set) structure, generalized from core.Graph neighbours
// to Frame.ParentFrames().
func ReachableFrames(reg *FrameRegistry, start FrameHandle) []FrameHandle {
	visited := map[FrameHandle]bool{start: true}
	queue := []FrameHandle{start}
	order := []FrameHandle{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		frame, ok := reg.Get(cur)
		if !ok {
			continue
		}
		for _, parent := range frame.ParentFrames() {
			if visited[parent] {
				continue
			}
			visited[parent] = true
			queue = append(queue, parent)
			order = append(order, parent)
		}
	}

	return order
}
