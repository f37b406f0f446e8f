// Package oracle derives the ground-truth call graph from a topology model.
// The projection is purely structural: guards are ignored because a static
// call-graph oracle records reachability of the call site, not execution
// history, and indirect edges expand to the full table contents because
// static analysis without value-range narrowing cannot prune table entries.
package oracle

import (
	"github.com/l3aro/go-callgraph-oracle/pkg/graph"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

// Extract projects the model onto its oracle call graph. Repeated calls on
// the same model yield identical serialized output.
func Extract(m *topology.Model) *graph.CallGraph {
	g := graph.New()
	for _, e := range m.Edges() {
		if e.Kind == topology.IndirectPointer {
			table := m.Table(e.Table)
			if table == nil {
				continue
			}
			for _, entry := range table.Entries {
				g.Add(e.Caller, entry, topology.IndirectPointer)
			}
			continue
		}
		g.Add(e.Caller, e.Callee, e.Kind)
	}
	return g
}
