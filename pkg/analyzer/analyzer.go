// Package analyzer provides a naive source-level call extractor for
// synthesized C programs, used to exercise the full oracle pipeline without
// an external binary analyzer. It walks function bodies with tree-sitter,
// records identifier calls to locally defined functions, and expands
// function-pointer subscript calls through locally declared tables.
package analyzer

import (
	"fmt"
	"os"

	"github.com/l3aro/go-callgraph-oracle/pkg/graph"
	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// Analyzer extracts a call graph from C source text.
type Analyzer struct {
	parser *sitter.Parser
}

// New creates an analyzer with a C parser.
func New() *Analyzer {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	return &Analyzer{parser: parser}
}

// AnalyzeFile extracts the call graph of a C source file.
func (a *Analyzer) AnalyzeFile(path string) (*graph.CallGraph, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", path, err)
	}
	return a.AnalyzeSource(content)
}

// AnalyzeSource extracts the call graph of C source text. Calls to functions
// not defined in the same translation unit (printf, rand) are ignored; the
// synthesized programs are self-contained apart from the standard library.
// Plain calls are classified direct and table dispatches indirect-pointer;
// finer kinds are an oracle-side notion the comparator treats as metadata.
func (a *Analyzer) AnalyzeSource(content []byte) (*graph.CallGraph, error) {
	tree := a.parser.Parse(nil, content)
	if tree == nil {
		return nil, fmt.Errorf("parsing C source failed")
	}
	defer tree.Close()

	root := tree.RootNode()

	defined := make(map[string]bool)
	collectDefinitions(root, content, defined)

	g := graph.New()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil || child.Type() != "function_definition" {
			continue
		}
		caller := definitionName(child, content)
		if caller == "" || caller == "main" {
			// main is the synthesized entry harness, not part of the topology.
			continue
		}
		body := child.ChildByFieldName("body")
		if body == nil {
			continue
		}
		tables := make(map[string][]string)
		walkBody(body, content, caller, defined, tables, g)
	}

	return g, nil
}

// collectDefinitions records the names of all functions defined in the unit.
func collectDefinitions(root *sitter.Node, content []byte, defined map[string]bool) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil || child.Type() != "function_definition" {
			continue
		}
		if name := definitionName(child, content); name != "" {
			defined[name] = true
		}
	}
}

// definitionName digs through the declarator chain of a function definition
// to its identifier.
func definitionName(def *sitter.Node, content []byte) string {
	node := def.ChildByFieldName("declarator")
	for node != nil {
		switch node.Type() {
		case "identifier":
			return nodeText(node, content)
		case "function_declarator", "pointer_declarator", "parenthesized_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return ""
		}
	}
	return ""
}

// walkBody walks a function body collecting call edges. Declarations of
// function-pointer arrays are recorded so later subscript calls expand to the
// full table contents.
func walkBody(node *sitter.Node, content []byte, caller string, defined map[string]bool, tables map[string][]string, g *graph.CallGraph) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "declaration":
		recordTable(node, content, defined, tables)
	case "call_expression":
		extractCall(node, content, caller, defined, tables, g)
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkBody(node.Child(i), content, caller, defined, tables, g)
	}
}

// recordTable records a local declaration initialized with a list of defined
// function identifiers, e.g. void (*operations[])(int) = {a, b, c};
func recordTable(decl *sitter.Node, content []byte, defined map[string]bool, tables map[string][]string) {
	for i := 0; i < int(decl.ChildCount()); i++ {
		child := decl.Child(i)
		if child == nil || child.Type() != "init_declarator" {
			continue
		}
		value := child.ChildByFieldName("value")
		if value == nil || value.Type() != "initializer_list" {
			continue
		}
		name := firstIdentifier(child.ChildByFieldName("declarator"), content)
		if name == "" {
			continue
		}
		var entries []string
		for j := 0; j < int(value.ChildCount()); j++ {
			entry := value.Child(j)
			if entry == nil || entry.Type() != "identifier" {
				continue
			}
			text := nodeText(entry, content)
			if defined[text] {
				entries = append(entries, text)
			}
		}
		if len(entries) > 0 {
			tables[name] = entries
		}
	}
}

// extractCall turns one call expression into call-graph edges.
func extractCall(call *sitter.Node, content []byte, caller string, defined map[string]bool, tables map[string][]string, g *graph.CallGraph) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return
	}

	switch fn.Type() {
	case "identifier":
		name := nodeText(fn, content)
		if defined[name] {
			g.Add(caller, name, topology.Direct)
		}
	case "subscript_expression":
		base := fn.ChildByFieldName("argument")
		if base == nil || base.Type() != "identifier" {
			return
		}
		// The exact index is not resolved; the callee set is the full table.
		for _, entry := range tables[nodeText(base, content)] {
			g.Add(caller, entry, topology.IndirectPointer)
		}
	}
}

// firstIdentifier returns the first identifier in a declarator subtree.
func firstIdentifier(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	if node.Type() == "identifier" {
		return nodeText(node, content)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if name := firstIdentifier(node.Child(i), content); name != "" {
			return name
		}
	}
	return ""
}

func nodeText(node *sitter.Node, content []byte) string {
	start := node.StartByte()
	end := node.EndByte()
	if start >= uint32(len(content)) || end > uint32(len(content)) {
		return ""
	}
	return string(content[start:end])
}
