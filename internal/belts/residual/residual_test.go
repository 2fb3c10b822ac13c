package residual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEdge_CreatesReverseTwin(t *testing.T) {
	g := NewGraph(2)
	h := g.AddEdge(0, 1, 10)

	fwd := g.At(h)
	require.NotNil(t, fwd)
	assert.Equal(t, 10.0, fwd.Cap)
	assert.False(t, fwd.IsReverse)

	rev := g.Edge(1, fwd.Rev)
	assert.Equal(t, 0.0, rev.Cap)
	assert.True(t, rev.IsReverse)
	assert.Equal(t, 0, rev.To)
}

func TestPush_UpdatesForwardAndReverse(t *testing.T) {
	g := NewGraph(2)
	h := g.AddEdge(0, 1, 10)

	g.Push(h.From, h.Idx, 4)

	fwd := g.At(h)
	assert.Equal(t, 6.0, fwd.Cap)
	assert.Equal(t, 4.0, fwd.Flow)

	rev := g.Edge(1, fwd.Rev)
	assert.Equal(t, 4.0, rev.Cap)
}

func TestAddEdge_ParallelEdgesStayDistinct(t *testing.T) {
	g := NewGraph(2)
	h1 := g.AddEdge(0, 1, 5)
	h2 := g.AddEdge(0, 1, 7)

	require.NotEqual(t, h1.Idx, h2.Idx)
	assert.Equal(t, 5.0, g.At(h1).Cap)
	assert.Equal(t, 7.0, g.At(h2).Cap)
	assert.Len(t, g.Neighbors(0), 2)
}
