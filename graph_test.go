package daghealth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainNodes() []Node {
	return []Node{
		{ID: "a", Name: "A", HealthEndpoint: "http://a/health"},
		{ID: "b", Name: "B", HealthEndpoint: "http://b/health", Dependencies: []string{"a"}},
		{ID: "c", Name: "C", HealthEndpoint: "http://c/health", Dependencies: []string{"b"}},
	}
}

func TestGraphAdjacency(t *testing.T) {
	g := NewGraph(chainNodes(), nil)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"a", "b", "c"}, g.NodeIDs())

	assert.Empty(t, g.Dependencies("a"))
	assert.Equal(t, []string{"a"}, g.Dependencies("b"))
	assert.Equal(t, []string{"b"}, g.Dependents("a"))
	assert.Equal(t, []string{"c"}, g.Dependents("b"))
	assert.Empty(t, g.Dependents("c"))

	n, ok := g.Node("b")
	require.True(t, ok)
	assert.Equal(t, "B", n.Name)
}

func TestGraphUnionOfEdgesAndDependencies(t *testing.T) {
	// the same relation declared both ways collapses to one dependency
	nodes := []Node{
		{ID: "a"},
		{ID: "b", Dependencies: []string{"a"}},
	}
	edges := []Edge{{From: "a", To: "b"}}

	g := NewGraph(nodes, edges)
	assert.Equal(t, []string{"a"}, g.Dependencies("b"))
	assert.Equal(t, []string{"b"}, g.Dependents("a"))
}

func TestValidate(t *testing.T) {
	t.Run("accepts acyclic graph", func(t *testing.T) {
		g := NewGraph(chainNodes(), nil)
		assert.NoError(t, g.Validate())
	})

	t.Run("rejects empty graph", func(t *testing.T) {
		g := NewGraph(nil, nil)
		assert.ErrorIs(t, g.Validate(), ErrEmptyGraph)
	})

	t.Run("rejects unknown dependency", func(t *testing.T) {
		g := NewGraph([]Node{{ID: "a", Dependencies: []string{"ghost"}}}, nil)
		assert.ErrorIs(t, g.Validate(), ErrUnknownNode)
	})

	t.Run("rejects unknown edge endpoint", func(t *testing.T) {
		g := NewGraph([]Node{{ID: "a"}}, []Edge{{From: "a", To: "ghost"}})
		assert.ErrorIs(t, g.Validate(), ErrUnknownNode)
	})

	t.Run("rejects self loop", func(t *testing.T) {
		g := NewGraph([]Node{{ID: "a", Dependencies: []string{"a"}}}, nil)
		assert.ErrorIs(t, g.Validate(), ErrCycleDetected)
	})

	t.Run("rejects two node cycle", func(t *testing.T) {
		g := NewGraph(
			[]Node{{ID: "a"}, {ID: "b"}},
			[]Edge{{From: "a", To: "b"}, {From: "b", To: "a"}},
		)
		assert.ErrorIs(t, g.Validate(), ErrCycleDetected)
	})

	t.Run("rejects long cycle", func(t *testing.T) {
		g := NewGraph(
			[]Node{
				{ID: "a", Dependencies: []string{"d"}},
				{ID: "b", Dependencies: []string{"a"}},
				{ID: "c", Dependencies: []string{"b"}},
				{ID: "d", Dependencies: []string{"c"}},
			},
			nil,
		)
		assert.ErrorIs(t, g.Validate(), ErrCycleDetected)
	})

	t.Run("accepts large cycle free graph", func(t *testing.T) {
		nodes := []Node{{ID: "n0"}}
		for i := 1; i < 500; i++ {
			nodes = append(nodes, Node{
				ID:           nodeID(i),
				Dependencies: []string{nodeID(i - 1)},
			})
		}
		g := NewGraph(nodes, nil)
		assert.NoError(t, g.Validate())
	})
}

func TestValidateConsistency(t *testing.T) {
	t.Run("agreeing representations pass", func(t *testing.T) {
		nodes := []Node{
			{ID: "a"},
			{ID: "b", Dependencies: []string{"a"}},
		}
		edges := []Edge{{From: "a", To: "b"}}
		assert.NoError(t, NewGraph(nodes, edges).Validate())
	})

	t.Run("diverging representations rejected", func(t *testing.T) {
		nodes := []Node{
			{ID: "a"},
			{ID: "b", Dependencies: []string{"a"}},
			{ID: "c"},
		}
		// edges claim c depends on a, dependencies say nothing about c
		edges := []Edge{{From: "a", To: "b"}, {From: "a", To: "c"}}
		assert.ErrorIs(t, NewGraph(nodes, edges).Validate(), ErrInconsistentGraph)
	})

	t.Run("edges alone accepted", func(t *testing.T) {
		nodes := []Node{{ID: "a"}, {ID: "b"}}
		edges := []Edge{{From: "a", To: "b"}}
		assert.NoError(t, NewGraph(nodes, edges).Validate())
	})

	t.Run("dependencies alone accepted", func(t *testing.T) {
		nodes := []Node{{ID: "a"}, {ID: "b", Dependencies: []string{"a"}}}
		assert.NoError(t, NewGraph(nodes, nil).Validate())
	})
}

func nodeID(i int) string {
	return fmt.Sprintf("n%d", i)
}
