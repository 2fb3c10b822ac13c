// Package residual implements the parallel-array adjacency residual graph
// used by the belts max-flow engine.
//
// Each vertex owns a contiguous slice of edge records; each edge record
// carries its head vertex, remaining capacity, and the index of its twin
// reverse edge within the head's own slice. This gives O(1) reverse lookup
// without a map, the layout spec.md §9 calls the canonical efficient one for
// this problem.
//
// Allocation is one-shot: NewGraph sizes the vertex slice up front, and the
// engine never inserts or removes edges afterward — only capacity and flow
// fields mutate.
package residual

// Edge is one directed residual edge. Every forward edge added through
// AddEdge has a matching reverse edge (added automatically) whose Rev index
// points back at it, and vice versa.
type Edge struct {
	To        int     // head vertex
	Cap       float64 // remaining residual capacity
	Flow      float64 // total pushed through this edge by Push (reverse edges included); not reduced by later cancellation along the twin
	OrigCap   float64 // capacity at construction time
	Rev       int     // index of the twin edge in Graph.adj[To]
	IsReverse bool
}

// Handle identifies one edge record: the tail vertex and its position in
// that vertex's adjacency slice. Builders keep a Handle per original input
// edge so the reconstructor can later read back its remaining capacity.
type Handle struct {
	From int
	Idx  int
}

// Graph is a directed residual graph over a fixed, pre-sized vertex set.
type Graph struct {
	adj [][]Edge
}

// NewGraph allocates a graph with n vertices (ids 0..n-1) and no edges.
func NewGraph(n int) *Graph {
	return &Graph{adj: make([][]Edge, n)}
}

// NumVertices returns the number of vertices the graph was sized for.
func (g *Graph) NumVertices() int {
	return len(g.adj)
}

// Neighbors returns the outgoing edges of v in insertion order.
func (g *Graph) Neighbors(v int) []Edge {
	return g.adj[v]
}

// Edge returns a pointer to the i-th outgoing edge of v, for in-place
// mutation (Push, and reading remaining capacity during
// reconstruction/diagnostics).
func (g *Graph) Edge(v, i int) *Edge {
	return &g.adj[v][i]
}

// AddEdge adds a forward edge from -> to with the given capacity, plus its
// zero-capacity reverse twin, and returns a Handle to the forward edge.
//
// Parallel edges between the same pair are never collapsed: each call
// allocates a fresh pair of records, because lower bounds and reconstruction
// in the belts builder are tracked per original edge (spec.md §9).
func (g *Graph) AddEdge(from, to int, capacity float64) Handle {
	fwdIdx := len(g.adj[from])
	revIdx := len(g.adj[to])

	g.adj[from] = append(g.adj[from], Edge{
		To: to, Cap: capacity, OrigCap: capacity, Rev: revIdx,
	})
	g.adj[to] = append(g.adj[to], Edge{
		To: from, Cap: 0, OrigCap: 0, Rev: fwdIdx, IsReverse: true,
	})

	return Handle{From: from, Idx: fwdIdx}
}

// At dereferences a Handle to the edge record it names.
func (g *Graph) At(h Handle) *Edge {
	return &g.adj[h.From][h.Idx]
}

// Push moves flow units of residual capacity from edge (from,i) to its
// reverse twin: the forward edge's capacity decreases and its Flow
// accumulates, while the reverse edge's capacity increases by the same
// amount.
func (g *Graph) Push(from, i int, flow float64) {
	e := &g.adj[from][i]
	e.Cap -= flow
	e.Flow += flow

	rev := &g.adj[e.To][e.Rev]
	rev.Cap += flow
}
