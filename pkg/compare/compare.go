// Package compare diffs an analyzer-produced call graph against an oracle
// graph. Matching is by (caller, callee) pair; kind is compared only as
// metadata, since different analyzers classify call kinds differently. The
// comparison is order-independent and always enumerates every discrepancy.
package compare

import (
	"strings"

	"github.com/l3aro/go-callgraph-oracle/pkg/graph"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

// KindMismatch records a matched pair whose kinds disagree.
type KindMismatch struct {
	Caller       string
	Callee       string
	OracleKind   topology.Kind
	ProducedKind topology.Kind
}

// Report is the immutable result of one comparison run.
type Report struct {
	// Missing are oracle edges absent from the produced graph.
	Missing []graph.Edge
	// Extra are produced edges absent from the oracle.
	Extra []graph.Edge
	// KindMismatches are matched pairs with disagreeing kinds.
	KindMismatches []KindMismatch
}

// Compare diffs produced against oracle. Both graphs are treated as sets;
// the result does not depend on insertion order.
func Compare(oracle, produced *graph.CallGraph) *Report {
	r := &Report{}
	for _, e := range oracle.Edges() {
		got, ok := produced.Lookup(e.Caller, e.Callee)
		if !ok {
			r.Missing = append(r.Missing, e)
			continue
		}
		if got.Kind != e.Kind {
			r.KindMismatches = append(r.KindMismatches, KindMismatch{
				Caller:       e.Caller,
				Callee:       e.Callee,
				OracleKind:   e.Kind,
				ProducedKind: got.Kind,
			})
		}
	}
	for _, e := range produced.Edges() {
		if !oracle.Has(e.Caller, e.Callee) {
			r.Extra = append(r.Extra, e)
		}
	}
	return r
}

// Pass reports whether the produced graph matches the oracle: PASS iff the
// missing and extra sets are both empty. Kind mismatches alone do not fail
// a comparison.
func (r *Report) Pass() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Lines renders every discrepancy on its own prefixed line, in the order
// missing, extra, kind-mismatch. Edges within each group are already sorted
// because Compare walks sorted edge lists.
func (r *Report) Lines() []string {
	var lines []string
	for _, e := range r.Missing {
		lines = append(lines, "MISSING "+e.String())
	}
	for _, e := range r.Extra {
		lines = append(lines, "EXTRA "+e.String())
	}
	for _, m := range r.KindMismatches {
		lines = append(lines, "KIND-MISMATCH "+m.Caller+" -> "+m.Callee+
			" oracle="+string(m.OracleKind)+" produced="+string(m.ProducedKind))
	}
	return lines
}

// String renders the full report, one discrepancy per line.
func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}
