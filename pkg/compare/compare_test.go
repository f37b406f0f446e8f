package compare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-callgraph-oracle/pkg/graph"
	"github.com/l3aro/go-callgraph-oracle/pkg/oracle"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

func TestCompare_SelfConsistency(t *testing.T) {
	// compare(extractOracle(M), extractOracle(M)) is PASS for any model M.
	for name, model := range topology.FixtureModels() {
		report := Compare(oracle.Extract(model), oracle.Extract(model))
		assert.True(t, report.Pass(), "fixture %s should compare clean against itself", name)
		assert.Empty(t, report.Lines(), "fixture %s should report no discrepancies", name)
	}
}

func TestCompare_SingleMissingEdge(t *testing.T) {
	// Removing any single edge from the produced graph yields exactly one
	// MISSING entry equal to that edge.
	oracleGraph := oracle.Extract(topology.KitchenSink())

	for _, removed := range oracleGraph.Edges() {
		produced := graph.New()
		for _, e := range oracleGraph.Edges() {
			produced.Add(e.Caller, e.Callee, e.Kind)
		}
		produced.Remove(removed.Caller, removed.Callee)

		report := Compare(oracleGraph, produced)
		require.False(t, report.Pass())
		require.Len(t, report.Missing, 1)
		assert.Equal(t, removed, report.Missing[0])
		assert.Empty(t, report.Extra)
	}
}

func TestCompare_ExtraEdge(t *testing.T) {
	oracleGraph := graph.New()
	oracleGraph.Add("a", "b", topology.Direct)

	produced := graph.New()
	produced.Add("a", "b", topology.Direct)
	produced.Add("a", "phantom", topology.Direct)

	report := Compare(oracleGraph, produced)
	assert.False(t, report.Pass())
	require.Len(t, report.Extra, 1)
	assert.Equal(t, "phantom", report.Extra[0].Callee)
	assert.Empty(t, report.Missing)
}

func TestCompare_KindMismatchIsMetadata(t *testing.T) {
	oracleGraph := graph.New()
	oracleGraph.Add("a", "b", topology.MutualRecursive)

	produced := graph.New()
	produced.Add("a", "b", topology.Direct)

	report := Compare(oracleGraph, produced)

	// A kind disagreement is reported but never counted as missing/extra.
	assert.True(t, report.Pass())
	require.Len(t, report.KindMismatches, 1)
	m := report.KindMismatches[0]
	assert.Equal(t, topology.MutualRecursive, m.OracleKind)
	assert.Equal(t, topology.Direct, m.ProducedKind)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Extra)
}

func TestCompare_OrderIndependent(t *testing.T) {
	a := graph.New()
	a.Add("x", "y", topology.Direct)
	a.Add("y", "z", topology.Chained)

	b := graph.New()
	b.Add("y", "z", topology.Chained)
	b.Add("x", "y", topology.Direct)

	assert.True(t, Compare(a, b).Pass())
	assert.True(t, Compare(b, a).Pass())
}

func TestReport_Lines(t *testing.T) {
	oracleGraph := graph.New()
	oracleGraph.Add("a", "b", topology.Direct)
	oracleGraph.Add("a", "c", topology.Conditional)

	produced := graph.New()
	produced.Add("a", "b", topology.Chained)
	produced.Add("a", "d", topology.Direct)

	report := Compare(oracleGraph, produced)
	lines := report.Lines()
	require.Len(t, lines, 3)

	assert.Equal(t, "MISSING a -> c [conditional]", lines[0])
	assert.Equal(t, "EXTRA a -> d [direct]", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "KIND-MISMATCH a -> b"))
	assert.Contains(t, lines[2], "oracle=direct")
	assert.Contains(t, lines[2], "produced=chained")
}

func TestCompare_EnumeratesEverything(t *testing.T) {
	oracleGraph := graph.New()
	oracleGraph.Add("a", "b", topology.Direct)
	oracleGraph.Add("c", "d", topology.Direct)
	oracleGraph.Add("e", "f", topology.Direct)

	produced := graph.New()

	report := Compare(oracleGraph, produced)

	// No early exit: every discrepancy is listed.
	assert.Len(t, report.Missing, 3)
}
