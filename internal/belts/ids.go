package belts

import "sort"

// split records the two internal vertex ids a single named node maps to.
// Uncapped nodes (including every source and the sink, which are never
// split) have in == out.
type split struct {
	in, out int
}

// idSpace assigns every named node a dense, zero-based internal vertex id,
// splitting capacity-bearing nodes into an in/out pair, and reserves the
// remaining ids for the super-source and super-sink used by the lower-bound
// feasibility reduction (spec.md §4.1, §9: dense ids over negative-id
// virtual nodes, since allocation here is one-shot and pre-sized).
type idSpace struct {
	byName      map[string]split
	names       []string // internal vertex id -> owning node name (virtuals excluded)
	superSource int
	superSink   int
	n           int // total vertex count, including the two virtuals
}

// buildIDSpace computes the universe of node names (the declared Nodes list
// plus any name referenced by an edge, source, the sink, or a node cap, so a
// sparsely declared Nodes list never loses a vertex) and assigns ids in
// sorted order for deterministic output.
func buildIDSpace(p *Problem) *idSpace {
	universe := make(map[string]struct{}, len(p.Nodes))
	for _, n := range p.Nodes {
		universe[n] = struct{}{}
	}
	for src := range p.Sources {
		universe[src] = struct{}{}
	}
	universe[p.Sink] = struct{}{}
	for n := range p.NodeCaps {
		universe[n] = struct{}{}
	}
	for _, e := range p.Edges {
		universe[e.From] = struct{}{}
		universe[e.To] = struct{}{}
	}

	sorted := make([]string, 0, len(universe))
	for n := range universe {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	ids := &idSpace{
		byName: make(map[string]split, len(sorted)),
		names:  make([]string, 0, len(sorted)*2),
	}

	next := 0
	alloc := func() int {
		id := next
		next++
		return id
	}

	for _, name := range sorted {
		_, fromSource := p.Sources[name]
		isSink := name == p.Sink
		cap, hasCap := p.NodeCaps[name]

		if hasCap && cap >= 0 && !fromSource && !isSink {
			in := alloc()
			out := alloc()
			ids.byName[name] = split{in: in, out: out}
			ids.names = append(ids.names, name, name)
			continue
		}

		v := alloc()
		ids.byName[name] = split{in: v, out: v}
		ids.names = append(ids.names, name)
	}

	ids.superSource = alloc()
	ids.superSink = alloc()
	ids.n = next
	return ids
}

// in returns the internal vertex id a node's inbound edges should target.
func (s *idSpace) in(name string) int { return s.byName[name].in }

// out returns the internal vertex id a node's outbound edges should leave
// from.
func (s *idSpace) out(name string) int { return s.byName[name].out }

// isSplit reports whether name owns a distinct in/out pair.
func (s *idSpace) isSplit(name string) bool {
	sp := s.byName[name]
	return sp.in != sp.out
}

// nodeOf returns the original node name a real (non-virtual) vertex id
// belongs to.
func (s *idSpace) nodeOf(vertex int) (string, bool) {
	if vertex < 0 || vertex >= len(s.names) {
		return "", false
	}
	return s.names[vertex], true
}
