package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

func TestExtract_Deterministic(t *testing.T) {
	for name, model := range topology.FixtureModels() {
		first := Extract(model).Format()
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Extract(model).Format(),
				"fixture %s: repeated extraction must be byte-identical", name)
		}
	}
}

func TestExtract_IndirectionExpansion(t *testing.T) {
	m := topology.NewModel("dispatch")
	for _, name := range []string{"execute_operation", "add", "subtract", "multiply"} {
		_, err := m.AddFunction(name)
		require.NoError(t, err)
	}
	_, err := m.AddIndirectionTable("operations", []string{"add", "subtract", "multiply"})
	require.NoError(t, err)
	require.NoError(t, m.AddIndirectEdge("execute_operation", "operations", "depth % 3", nil))

	g := Extract(m)

	// One edge per table entry: static analysis cannot narrow the index.
	assert.Equal(t, 3, g.Len())
	for _, callee := range []string{"add", "subtract", "multiply"} {
		e, ok := g.Lookup("execute_operation", callee)
		require.True(t, ok, "expected edge to %s", callee)
		assert.Equal(t, topology.IndirectPointer, e.Kind)
	}
}

func TestExtract_GuardInsensitive(t *testing.T) {
	m := topology.NewModel("mutual")
	m.AddFunction("a")
	m.AddFunction("b")
	require.NoError(t, m.AddEdge("a", "b", topology.MutualRecursive,
		&topology.Guard{Expr: "depth % 2 == 0", Decrements: true}))
	require.NoError(t, m.AddEdge("b", "a", topology.MutualRecursive,
		&topology.Guard{Expr: "depth > 0", Decrements: true}))

	g := Extract(m)

	// Both legs appear even though only one of a's branches runs per call.
	assert.True(t, g.Has("a", "b"))
	assert.True(t, g.Has("b", "a"))
}

func TestExtract_CyclicPreservation(t *testing.T) {
	m := topology.FiveNodeCycle()
	g := Extract(m)

	require.Equal(t, 5, g.Len())
	assert.True(t, g.Has("chain_1", "chain_2"))
	assert.True(t, g.Has("chain_2", "chain_3"))
	assert.True(t, g.Has("chain_3", "chain_4"))
	assert.True(t, g.Has("chain_4", "chain_5"))
	assert.True(t, g.Has("chain_5", "chain_1"))
}

func TestExtract_NonDeterministicGuardIncluded(t *testing.T) {
	m := topology.NewModel("random")
	m.AddFunction("caller")
	m.AddFunction("callee")
	require.NoError(t, m.AddEdge("caller", "callee", topology.Conditional,
		&topology.Guard{Expr: "rand() % 3 == 0", NonDeterministic: true}))

	g := Extract(m)

	// Static analysis cannot prune on runtime randomness.
	e, ok := g.Lookup("caller", "callee")
	require.True(t, ok)
	assert.Equal(t, topology.Conditional, e.Kind)
}
