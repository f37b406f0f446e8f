package topology

import (
	"fmt"
	"sort"
)

// Fixtures are canonical, reusable topology models covering each call shape
// the oracle pipeline must handle. They replace a fixed demo program with a
// parameterized family assembled through the builder.
var fixtures = map[string]func() *Model{
	"mutual-recursion":  MutualRecursion,
	"five-node-cycle":   FiveNodeCycle,
	"indirect-dispatch": IndirectDispatch,
	"self-recursion":    SelfRecursion,
	"kitchen-sink":      KitchenSink,
}

// FixtureNames returns the names of all canonical fixtures, sorted.
func FixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fixture builds the named canonical fixture.
func Fixture(name string) (*Model, error) {
	build, ok := fixtures[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q (known: %v)", name, FixtureNames())
	}
	return build(), nil
}

// fixtureBuilder wraps a Model so fixture assembly reads declaratively.
// Fixtures are static and covered by tests, so construction errors panic.
type fixtureBuilder struct {
	m *Model
}

func newFixture(name string) *fixtureBuilder {
	return &fixtureBuilder{m: NewModel(name)}
}

func (b *fixtureBuilder) funcs(names ...string) *fixtureBuilder {
	for _, name := range names {
		if _, err := b.m.AddFunction(name); err != nil {
			panic(err)
		}
	}
	return b
}

func (b *fixtureBuilder) edge(caller, callee string, kind Kind, guard *Guard) *fixtureBuilder {
	if err := b.m.AddEdge(caller, callee, kind, guard); err != nil {
		panic(err)
	}
	return b
}

func (b *fixtureBuilder) table(name string, entries ...string) *fixtureBuilder {
	if _, err := b.m.AddIndirectionTable(name, entries); err != nil {
		panic(err)
	}
	return b
}

func (b *fixtureBuilder) indirect(caller, table, index string, guard *Guard) *fixtureBuilder {
	if err := b.m.AddIndirectEdge(caller, table, index, guard); err != nil {
		panic(err)
	}
	return b
}

func (b *fixtureBuilder) entry(name string) *Model {
	if err := b.m.SetEntry(name); err != nil {
		panic(err)
	}
	return b.m
}

// depthGuard is the standard terminating guard: fire while depth is positive,
// pass depth-1 on the call.
func depthGuard() *Guard {
	return &Guard{Expr: "depth > 0", Decrements: true}
}

// MutualRecursion is function_a <-> function_b with a parity-gated leg and an
// unconditional return leg, plus a utility escape hatch.
func MutualRecursion() *Model {
	return newFixture("mutual-recursion").
		funcs("function_a", "function_b", "utility_helper").
		edge("function_a", "function_b", MutualRecursive, &Guard{Expr: "depth > 0 && depth % 2 == 0", Decrements: true}).
		edge("function_a", "utility_helper", Conditional, &Guard{Expr: "depth % 2 == 1"}).
		edge("function_b", "function_a", MutualRecursive, depthGuard()).
		entry("function_a")
}

// FiveNodeCycle is chain_1 -> chain_2 -> ... -> chain_5 -> chain_1, each link
// guarded on a positive decreasing level.
func FiveNodeCycle() *Model {
	b := newFixture("five-node-cycle").
		funcs("chain_1", "chain_2", "chain_3", "chain_4", "chain_5")
	guard := &Guard{Expr: "level > 0", Decrements: true}
	b.edge("chain_1", "chain_2", Chained, guard)
	b.edge("chain_2", "chain_3", Chained, guard)
	b.edge("chain_3", "chain_4", Chained, guard)
	b.edge("chain_4", "chain_5", Chained, guard)
	b.edge("chain_5", "chain_1", Cyclic, guard)
	for _, fn := range b.m.Functions() {
		fn.Param = "level"
	}
	return b.entry("chain_1")
}

// IndirectDispatch is execute_operation dispatching through a three-entry
// operations table via a computed index.
func IndirectDispatch() *Model {
	return newFixture("indirect-dispatch").
		funcs("execute_operation", "operation_add", "operation_subtract", "operation_multiply").
		table("operations", "operation_add", "operation_subtract", "operation_multiply").
		indirect("execute_operation", "operations", "depth % 3", nil).
		entry("execute_operation")
}

// SelfRecursion is a single self-recursive function with the standard
// decreasing depth guard.
func SelfRecursion() *Model {
	return newFixture("self-recursion").
		funcs("countdown").
		edge("countdown", "countdown", RecursiveSelf, depthGuard()).
		entry("countdown")
}

// KitchenSink mirrors the full analyzer demo program: utility trio with
// rand-gated cross calls, self-recursive math functions, mutual recursion,
// a five-function cyclic chain, indirect dispatch, a switch-dispatched
// recursive driver, and a data-processing chain.
func KitchenSink() *Model {
	b := newFixture("kitchen-sink").
		funcs(
			"driver",
			"print_message", "debug_info", "error_handler",
			"utility_function_1", "utility_function_2", "utility_function_3",
			"fibonacci_recursive", "factorial_recursive",
			"function_a", "function_b",
			"deep_call_chain_1", "deep_call_chain_2", "deep_call_chain_3",
			"deep_call_chain_4", "deep_call_chain_5",
			"operation_add", "operation_subtract", "operation_multiply",
			"execute_operation",
			"complex_recursive_chain",
			"process_array", "data_analysis",
		)

	// Utility trio: rand-gated calls stay in the oracle because static
	// analysis cannot prune runtime randomness.
	b.edge("utility_function_1", "utility_function_2", Conditional, &Guard{Expr: "rand() % 3 == 0", NonDeterministic: true})
	b.edge("utility_function_2", "debug_info", Conditional, &Guard{Expr: "rand() % 4 == 0", NonDeterministic: true})
	b.edge("utility_function_3", "print_message", Direct, nil)

	// Self-recursive math functions.
	b.edge("fibonacci_recursive", "debug_info", Direct, nil)
	b.edge("fibonacci_recursive", "fibonacci_recursive", RecursiveSelf, depthGuard())
	b.edge("factorial_recursive", "print_message", Direct, nil)
	b.edge("factorial_recursive", "factorial_recursive", RecursiveSelf, depthGuard())

	// Mutual recursion with parity-dependent branches.
	b.edge("function_a", "debug_info", Direct, nil)
	b.edge("function_a", "function_b", MutualRecursive, &Guard{Expr: "depth > 0 && depth % 2 == 0", Decrements: true})
	b.edge("function_a", "utility_function_3", Conditional, &Guard{Expr: "depth % 2 == 1"})
	b.edge("function_b", "function_a", MutualRecursive, depthGuard())
	b.edge("function_b", "utility_function_1", Conditional, &Guard{Expr: "depth > 3"})
	b.edge("function_b", "utility_function_2", Conditional, &Guard{Expr: "depth > 3"})

	// Five-link cycle, each link decrementing, with side calls off the chain.
	b.edge("deep_call_chain_1", "print_message", Direct, nil)
	b.edge("deep_call_chain_1", "deep_call_chain_2", Chained, depthGuard())
	b.edge("deep_call_chain_2", "deep_call_chain_3", Chained, depthGuard())
	b.edge("deep_call_chain_2", "factorial_recursive", Direct, nil)
	b.edge("deep_call_chain_3", "utility_function_1", Direct, nil)
	b.edge("deep_call_chain_3", "deep_call_chain_4", Chained, depthGuard())
	b.edge("deep_call_chain_4", "deep_call_chain_5", Chained, depthGuard())
	b.edge("deep_call_chain_5", "deep_call_chain_1", Cyclic, depthGuard())
	b.edge("deep_call_chain_5", "fibonacci_recursive", Direct, nil)

	// Function-pointer dispatch.
	b.edge("operation_add", "utility_function_1", Direct, nil)
	b.edge("operation_subtract", "utility_function_2", Direct, nil)
	b.edge("operation_multiply", "utility_function_3", Direct, nil)
	b.edge("operation_multiply", "fibonacci_recursive", Direct, nil)
	b.edge("execute_operation", "debug_info", Direct, nil)
	b.edge("execute_operation", "error_handler", Conditional, &Guard{Expr: "depth < 0"})
	b.table("operations", "operation_add", "operation_subtract", "operation_multiply")
	b.indirect("execute_operation", "operations", "depth % 3", nil)

	// Switch-dispatched recursive driver.
	b.edge("complex_recursive_chain", "debug_info", Direct, nil)
	b.edge("complex_recursive_chain", "function_a", Conditional, &Guard{Expr: "depth > 0 && depth % 4 == 0", Decrements: true})
	b.edge("complex_recursive_chain", "function_b", Conditional, &Guard{Expr: "depth > 0 && depth % 4 == 1", Decrements: true})
	b.edge("complex_recursive_chain", "deep_call_chain_1", Conditional, &Guard{Expr: "depth > 0 && depth % 4 == 2", Decrements: true})
	b.edge("complex_recursive_chain", "complex_recursive_chain", RecursiveSelf, &Guard{Expr: "depth > 0 && depth % 4 == 3", Decrements: true})
	b.edge("complex_recursive_chain", "utility_function_1", Direct, nil)
	b.edge("complex_recursive_chain", "factorial_recursive", Conditional, &Guard{Expr: "depth > 5"})

	// Data-processing chain.
	b.edge("process_array", "debug_info", Direct, nil)
	b.edge("process_array", "factorial_recursive", Direct, nil)
	b.edge("process_array", "utility_function_3", Conditional, &Guard{Expr: "depth % 3 == 0"})
	b.edge("data_analysis", "print_message", Direct, nil)
	b.edge("data_analysis", "error_handler", Conditional, &Guard{Expr: "depth < 0"})
	b.edge("data_analysis", "process_array", Direct, nil)
	b.edge("data_analysis", "deep_call_chain_1", Direct, nil)

	// Driver exercising every group.
	b.edge("driver", "print_message", Direct, nil)
	b.edge("driver", "function_a", Direct, nil)
	b.edge("driver", "fibonacci_recursive", Direct, nil)
	b.edge("driver", "data_analysis", Direct, nil)
	b.edge("driver", "execute_operation", Direct, nil)
	b.edge("driver", "complex_recursive_chain", Direct, nil)

	return b.entry("driver")
}

// FixtureModels builds every canonical fixture, keyed by name.
func FixtureModels() map[string]*Model {
	out := make(map[string]*Model, len(fixtures))
	for name, build := range fixtures {
		out[name] = build()
	}
	return out
}
