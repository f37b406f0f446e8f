// Package topology defines the call-topology model: a directed multigraph of
// functions and typed call edges, plus indirection tables for function-pointer
// dispatch. A model is assembled through the builder methods, validated, and
// then read by the synthesizer and the oracle extractor.
package topology

// Kind classifies a call edge.
type Kind string

const (
	// Direct is an unconditional call from one function to another.
	Direct Kind = "direct"
	// Conditional is a call gated by a runtime condition.
	Conditional Kind = "conditional"
	// RecursiveSelf is a function calling itself.
	RecursiveSelf Kind = "recursive-self"
	// MutualRecursive is one leg of a two-function recursion.
	MutualRecursive Kind = "mutual-recursive"
	// IndirectPointer is a dispatch through an indirection table.
	IndirectPointer Kind = "indirect-pointer"
	// Chained is a link in a multi-level call chain.
	Chained Kind = "chained"
	// Cyclic is a link that closes a cycle longer than two functions.
	Cyclic Kind = "cyclic"
)

// Kinds lists all valid edge kinds.
var Kinds = []Kind{Direct, Conditional, RecursiveSelf, MutualRecursive, IndirectPointer, Chained, Cyclic}

// Valid reports whether k is a known edge kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Guard is a runtime boolean condition gating whether a call edge fires.
// Guards never affect the oracle: the oracle records that the call site is
// reachable, not that it executes on a given input.
type Guard struct {
	// Expr is a C boolean expression over the depth parameter,
	// e.g. "depth > 0" or "n % 4 == 2".
	Expr string
	// Decrements marks that the call passes a strictly smaller depth value.
	// Every edge inside a cycle must decrement for the program to terminate.
	Decrements bool
	// NonDeterministic marks guards over runtime randomness (rand()-gated
	// calls). Static analysis cannot prune these, so the oracle always
	// includes the edge.
	NonDeterministic bool
}

// Function is a node in the topology. Functions are created through
// Model.AddFunction and are immutable once the model is synthesized.
type Function struct {
	// Name is the unique identifier, used verbatim in generated source.
	Name string
	// Param is the name of the depth parameter threaded through calls.
	Param string
}

// CallEdge is a directed call relationship. For indirect-pointer edges Callee
// is empty and Table/Index identify the dispatch site instead; the statically
// known callee set is the full table contents.
type CallEdge struct {
	Caller string
	Callee string
	Kind   Kind
	Guard  *Guard
	Table  string
	Index  string
}

// IndirectionTable is a named ordered sequence of functions dispatched
// through a computed index, modeling a function-pointer array.
type IndirectionTable struct {
	Name    string
	Entries []string
}

// Model is a valid directed multigraph of functions and call edges. It
// exclusively owns its functions, edges and tables; the synthesizer and the
// oracle extractor only read it.
type Model struct {
	Name  string
	entry string

	funcs      map[string]*Function
	funcOrder  []string
	edges      []CallEdge
	tables     map[string]*IndirectionTable
	tableOrder []string
}

// NewModel creates an empty topology model.
func NewModel(name string) *Model {
	return &Model{
		Name:   name,
		funcs:  make(map[string]*Function),
		tables: make(map[string]*IndirectionTable),
	}
}

// AddFunction registers a function and returns its handle.
// Returns DuplicateNameError if the name is already taken.
func (m *Model) AddFunction(name string) (*Function, error) {
	if _, ok := m.funcs[name]; ok {
		return nil, &DuplicateNameError{Entity: "function", Name: name}
	}
	fn := &Function{Name: name, Param: "depth"}
	m.funcs[name] = fn
	m.funcOrder = append(m.funcOrder, name)
	return fn, nil
}

// AddEdge registers a directed call edge. Self-loops and longer cycles are
// permitted and preserved. Returns UnknownFunctionError if either endpoint is
// not registered.
func (m *Model) AddEdge(caller, callee string, kind Kind, guard *Guard) error {
	if _, ok := m.funcs[caller]; !ok {
		return &UnknownFunctionError{Name: caller}
	}
	if _, ok := m.funcs[callee]; !ok {
		return &UnknownFunctionError{Name: callee}
	}
	m.edges = append(m.edges, CallEdge{Caller: caller, Callee: callee, Kind: kind, Guard: guard})
	return nil
}

// AddIndirectionTable registers a named function-pointer table. Every entry
// must reference a registered function.
func (m *Model) AddIndirectionTable(name string, entries []string) (*IndirectionTable, error) {
	if _, ok := m.tables[name]; ok {
		return nil, &DuplicateNameError{Entity: "table", Name: name}
	}
	for _, entry := range entries {
		if _, ok := m.funcs[entry]; !ok {
			return nil, &UnknownFunctionError{Name: entry}
		}
	}
	t := &IndirectionTable{Name: name, Entries: append([]string(nil), entries...)}
	m.tables[name] = t
	m.tableOrder = append(m.tableOrder, name)
	return t, nil
}

// AddIndirectEdge registers an indirect-pointer edge from caller through the
// named table. index is the C expression computing the table index.
func (m *Model) AddIndirectEdge(caller, table, index string, guard *Guard) error {
	if _, ok := m.funcs[caller]; !ok {
		return &UnknownFunctionError{Name: caller}
	}
	if _, ok := m.tables[table]; !ok {
		return &UnknownTableError{Name: table}
	}
	m.edges = append(m.edges, CallEdge{Caller: caller, Kind: IndirectPointer, Guard: guard, Table: table, Index: index})
	return nil
}

// SetEntry marks the function that the generated program's main calls first.
func (m *Model) SetEntry(name string) error {
	if _, ok := m.funcs[name]; !ok {
		return &UnknownFunctionError{Name: name}
	}
	m.entry = name
	return nil
}

// Entry returns the entry function name, or the first registered function if
// no entry was set.
func (m *Model) Entry() string {
	if m.entry != "" {
		return m.entry
	}
	if len(m.funcOrder) > 0 {
		return m.funcOrder[0]
	}
	return ""
}

// Function returns the handle for a registered function, or nil.
func (m *Model) Function(name string) *Function {
	return m.funcs[name]
}

// Table returns a registered indirection table, or nil.
func (m *Model) Table(name string) *IndirectionTable {
	return m.tables[name]
}

// Functions returns all functions in registration order.
func (m *Model) Functions() []*Function {
	fns := make([]*Function, 0, len(m.funcOrder))
	for _, name := range m.funcOrder {
		fns = append(fns, m.funcs[name])
	}
	return fns
}

// Tables returns all indirection tables in registration order.
func (m *Model) Tables() []*IndirectionTable {
	ts := make([]*IndirectionTable, 0, len(m.tableOrder))
	for _, name := range m.tableOrder {
		ts = append(ts, m.tables[name])
	}
	return ts
}

// Edges returns all call edges in registration order.
func (m *Model) Edges() []CallEdge {
	return append([]CallEdge(nil), m.edges...)
}

// Outgoing returns the edges leaving the named function, in registration order.
func (m *Model) Outgoing(caller string) []CallEdge {
	var out []CallEdge
	for _, e := range m.edges {
		if e.Caller == caller {
			out = append(out, e)
		}
	}
	return out
}

// callees returns the statically known callee set of an edge: the callee for
// ordinary edges, the full table contents for indirect ones.
func (m *Model) callees(e CallEdge) []string {
	if e.Kind == IndirectPointer {
		if t := m.tables[e.Table]; t != nil {
			return t.Entries
		}
		return nil
	}
	return []string{e.Callee}
}

// CheckTermination verifies that every edge participating in a cycle carries
// a monotonically-decreasing guard. Indirect edges are expanded through their
// tables first. Returns NonTerminatingTopologyError for the first offending
// edge found.
func (m *Model) CheckTermination() error {
	scc := m.stronglyConnected()
	comp := make(map[string]int, len(scc))
	size := make(map[int]int)
	for name, id := range scc {
		comp[name] = id
		size[id]++
	}

	for _, e := range m.edges {
		for _, callee := range m.callees(e) {
			sameComp := comp[e.Caller] == comp[callee]
			selfLoop := e.Caller == callee
			inCycle := selfLoop || (sameComp && size[comp[e.Caller]] > 1)
			if !inCycle {
				continue
			}
			if e.Guard == nil || !e.Guard.Decrements {
				return &NonTerminatingTopologyError{Caller: e.Caller, Callee: callee}
			}
		}
	}
	return nil
}

// stronglyConnected runs Tarjan's algorithm and returns a component id per
// function, with indirect edges expanded through their tables.
func (m *Model) stronglyConnected() map[string]int {
	adj := make(map[string][]string, len(m.funcs))
	for _, e := range m.edges {
		for _, callee := range m.callees(e) {
			adj[e.Caller] = append(adj[e.Caller], callee)
		}
	}

	index := make(map[string]int, len(m.funcs))
	lowlink := make(map[string]int, len(m.funcs))
	onStack := make(map[string]bool, len(m.funcs))
	comp := make(map[string]int, len(m.funcs))
	var stack []string
	next, ncomp := 0, 0

	var strongconnect func(v string)
	strongconnect = func(v string) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, seen := index[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && index[w] < lowlink[v] {
				lowlink[v] = index[w]
			}
		}

		if lowlink[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp[w] = ncomp
				if w == v {
					break
				}
			}
			ncomp++
		}
	}

	for _, name := range m.funcOrder {
		if _, seen := index[name]; !seen {
			strongconnect(name)
		}
	}
	return comp
}
