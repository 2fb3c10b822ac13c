package belts

import (
	"factoryplan/internal/belts/residual"
	"factoryplan/pkg/numeric"
)

// maxFlow runs Dinic's algorithm (blocking-flow variant) from source to sink
// on g, mutating g's residual capacities in place, and returns the total
// flow value pushed.
//
// Phase 1 builds a level graph with BFS over edges with residual capacity
// above numeric.Epsilon. Phase 2 repeatedly finds a blocking flow in that
// level graph using an iterative DFS with a per-vertex current-arc cursor,
// so a long augmenting chain never recurses and the cursor never rewinds
// within a phase (spec.md §4.2, §5).
func maxFlow(g *residual.Graph, source, sink int) float64 {
	total := 0.0

	for {
		level := bfsLevels(g, source)
		if level[sink] < 0 {
			return total
		}

		cursor := make([]int, g.NumVertices())
		for {
			pushed := blockingPath(g, source, sink, level, cursor)
			if pushed <= numeric.Epsilon {
				break
			}
			total += pushed
		}
	}
}

// bfsLevels returns each vertex's BFS distance from source, or -1 if
// unreached, considering only edges with residual capacity > Epsilon.
func bfsLevels(g *residual.Graph, source int) []int {
	level := make([]int, g.NumVertices())
	for i := range level {
		level[i] = -1
	}
	level[source] = 0

	queue := make([]int, 0, g.NumVertices())
	queue = append(queue, source)

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, e := range g.Neighbors(u) {
			if level[e.To] < 0 && e.Cap > numeric.Epsilon {
				level[e.To] = level[u] + 1
				queue = append(queue, e.To)
			}
		}
	}

	return level
}

// blockingPath finds one source-to-sink augmenting path constrained to
// strictly increasing levels, pushes the bottleneck flow along it, and
// returns the amount pushed (0 if no such path remains in this phase).
//
// The DFS is iterative: a stack of (vertex, bottleneck-so-far) frames
// replaces recursion, so the stack depth in this implementation is bounded
// by Go's heap-backed slice rather than the call stack, tolerating
// arbitrarily long augmenting chains (spec.md §5).
func blockingPath(g *residual.Graph, source, sink int, level, cursor []int) float64 {
	type frame struct {
		v       int // vertex reached by this frame
		viaFrom int // tail of the edge used to reach v (-1 for source)
		viaIdx  int // index of that edge in g.adj[viaFrom]
		cap     float64
	}

	stack := make([]frame, 0, 64)
	stack = append(stack, frame{v: source, viaFrom: -1, cap: numeric.Infinity})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		u := top.v

		if u == sink {
			bottleneck := top.cap
			for _, f := range stack {
				if f.viaFrom >= 0 {
					g.Push(f.viaFrom, f.viaIdx, bottleneck)
				}
			}
			return bottleneck
		}

		neighbors := g.Neighbors(u)
		advanced := false
		for i := cursor[u]; i < len(neighbors); i++ {
			e := neighbors[i]
			if level[e.To] != level[u]+1 || e.Cap <= numeric.Epsilon {
				continue
			}

			cursor[u] = i
			next := top.cap
			if e.Cap < next {
				next = e.Cap
			}
			stack = append(stack, frame{v: e.To, viaFrom: u, viaIdx: i, cap: next})
			advanced = true
			break
		}

		if !advanced {
			cursor[u] = len(neighbors)
			level[u] = -1 // dead end: remove from the level graph for this phase
			stack = stack[:len(stack)-1]
		}
	}

	return 0
}
