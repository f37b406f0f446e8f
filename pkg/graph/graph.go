// Package graph defines the serialized call-graph representation shared by
// the oracle extractor, the comparator and external analyzers: a set of
// (caller, callee) edges with the call kind carried as metadata, rendered in
// a stable line-oriented text format.
package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

// Edge is a single caller -> callee relationship.
type Edge struct {
	Caller string
	Callee string
	Kind   topology.Kind
}

// String renders the edge in the serialized format.
func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s [%s]", e.Caller, e.Callee, e.Kind)
}

type pairKey struct {
	caller string
	callee string
}

// CallGraph is a set of edges keyed by (caller, callee). Adding a pair twice
// keeps the first kind; kind is metadata, not part of edge identity.
type CallGraph struct {
	edges map[pairKey]Edge
}

// New creates an empty call graph.
func New() *CallGraph {
	return &CallGraph{edges: make(map[pairKey]Edge)}
}

// Add inserts an edge. The first kind recorded for a (caller, callee) pair
// wins; later inserts of the same pair are ignored.
func (g *CallGraph) Add(caller, callee string, kind topology.Kind) {
	key := pairKey{caller: caller, callee: callee}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = Edge{Caller: caller, Callee: callee, Kind: kind}
}

// Has reports whether the (caller, callee) pair is present.
func (g *CallGraph) Has(caller, callee string) bool {
	_, ok := g.edges[pairKey{caller: caller, callee: callee}]
	return ok
}

// Lookup returns the edge for a (caller, callee) pair.
func (g *CallGraph) Lookup(caller, callee string) (Edge, bool) {
	e, ok := g.edges[pairKey{caller: caller, callee: callee}]
	return e, ok
}

// Remove deletes the (caller, callee) pair, if present.
func (g *CallGraph) Remove(caller, callee string) {
	delete(g.edges, pairKey{caller: caller, callee: callee})
}

// Len returns the number of edges.
func (g *CallGraph) Len() int {
	return len(g.edges)
}

// Edges returns all edges sorted lexically by caller then callee, which
// keeps every serialization deterministic.
func (g *CallGraph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Caller != out[j].Caller {
			return out[i].Caller < out[j].Caller
		}
		return out[i].Callee < out[j].Callee
	})
	return out
}

// Format renders the graph in the serialized format, one
// "caller -> callee [kind]" line per edge, lexically sorted.
func (g *CallGraph) Format() string {
	var sb strings.Builder
	for _, e := range g.Edges() {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteFile writes the serialized graph to a file.
func (g *CallGraph) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(g.Format()), 0644); err != nil {
		return fmt.Errorf("writing call graph %s: %w", path, err)
	}
	return nil
}

// MalformedGraphFileError reports an unparsable line in a serialized call
// graph, with file and line context for the diagnostic.
type MalformedGraphFileError struct {
	File string
	Line int
	Text string
}

func (e *MalformedGraphFileError) Error() string {
	return fmt.Sprintf("%s:%d: malformed call graph line %q", e.File, e.Line, e.Text)
}

// edgeLine matches "caller -> callee [kind]".
var edgeLine = regexp.MustCompile(`^(\S+)\s*->\s*(\S+)\s*\[([a-z-]+)\]$`)

// Parse reads a serialized call graph. Blank lines and lines starting with
// '#' are skipped; anything else must match the edge format. name is used in
// error context only.
func Parse(r io.Reader, name string) (*CallGraph, error) {
	g := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := edgeLine.FindStringSubmatch(line)
		if m == nil {
			return nil, &MalformedGraphFileError{File: name, Line: lineNo, Text: line}
		}
		kind := topology.Kind(m[3])
		if !kind.Valid() {
			return nil, &MalformedGraphFileError{File: name, Line: lineNo, Text: line}
		}
		g.Add(m[1], m[2], kind)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading call graph %s: %w", name, err)
	}
	return g, nil
}

// ParseFile reads a serialized call graph from a file.
func ParseFile(path string) (*CallGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening call graph %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, path)
}
