package synth

import (
	"fmt"
	"strings"

	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

// synthesizeC emits a single translation unit: forward declarations for every
// function, one definition per function issuing calls per its outgoing edges,
// and a main that calls the entry function with a fixed depth.
func synthesizeC(m *topology.Model, opts Options) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "/* Generated call-topology program: %s */\n", m.Name)
	sb.WriteString("#include <stdio.h>\n")
	sb.WriteString("#include <stdlib.h>\n\n")

	for _, fn := range m.Functions() {
		fmt.Fprintf(&sb, "static void %s(int %s);\n", fn.Name, fn.Param)
	}
	sb.WriteString("\n")

	for _, fn := range m.Functions() {
		emitCFunction(&sb, m, fn)
		sb.WriteString("\n")
	}

	sb.WriteString("int main(void) {\n")
	fmt.Fprintf(&sb, "    %s(%d);\n", m.Entry(), opts.EntryDepth)
	sb.WriteString("    return 0;\n")
	sb.WriteString("}\n")

	return sb.String()
}

// emitCFunction writes one function definition. Each outgoing edge becomes a
// call statement, wrapped in an if when the edge carries a guard. Indirect
// edges build the table as a local function-pointer array and dispatch
// through a bounds-checked computed index.
func emitCFunction(sb *strings.Builder, m *topology.Model, fn *topology.Function) {
	fmt.Fprintf(sb, "static void %s(int %s) {\n", fn.Name, fn.Param)
	fmt.Fprintf(sb, "    printf(\"%s: %s=%%d\\n\", %s);\n", fn.Name, fn.Param, fn.Param)

	indirectCount := 0
	for _, e := range m.Outgoing(fn.Name) {
		if e.Kind == topology.IndirectPointer {
			emitCIndirectCall(sb, m, fn, e, indirectCount)
			indirectCount++
			continue
		}
		emitCCall(sb, fn, e)
	}

	sb.WriteString("}\n")
}

// callArg returns the depth argument for a call: decremented when the guard
// decrements, passed through otherwise.
func callArg(fn *topology.Function, guard *topology.Guard) string {
	if guard != nil && guard.Decrements {
		return fn.Param + " - 1"
	}
	return fn.Param
}

func emitCCall(sb *strings.Builder, fn *topology.Function, e topology.CallEdge) {
	call := fmt.Sprintf("%s(%s); /* %s */", e.Callee, callArg(fn, e.Guard), e.Kind)
	if e.Guard == nil {
		fmt.Fprintf(sb, "    %s\n", call)
		return
	}
	fmt.Fprintf(sb, "    if (%s) {\n", e.Guard.Expr)
	fmt.Fprintf(sb, "        %s\n", call)
	sb.WriteString("    }\n")
}

func emitCIndirectCall(sb *strings.Builder, m *topology.Model, fn *topology.Function, e topology.CallEdge, n int) {
	table := m.Table(e.Table)
	if table == nil || len(table.Entries) == 0 {
		return
	}

	// Distinct locals when one function dispatches through several tables.
	tableVar := e.Table
	idxVar := "idx"
	if n > 0 {
		tableVar = fmt.Sprintf("%s_%d", e.Table, n)
		idxVar = fmt.Sprintf("idx_%d", n)
	}

	indent := "    "
	if e.Guard != nil {
		fmt.Fprintf(sb, "    if (%s) {\n", e.Guard.Expr)
		indent = "        "
	}

	fmt.Fprintf(sb, "%svoid (*%s[])(int) = {\n", indent, tableVar)
	for i, entry := range table.Entries {
		sep := ","
		if i == len(table.Entries)-1 {
			sep = ""
		}
		fmt.Fprintf(sb, "%s    %s%s\n", indent, entry, sep)
	}
	fmt.Fprintf(sb, "%s};\n", indent)
	fmt.Fprintf(sb, "%sint %s = (%s);\n", indent, idxVar, e.Index)
	fmt.Fprintf(sb, "%sif (%s >= 0 && %s < %d) {\n", indent, idxVar, idxVar, len(table.Entries))
	fmt.Fprintf(sb, "%s    %s[%s](%s); /* %s via %s */\n",
		indent, tableVar, idxVar, callArg(fn, e.Guard), e.Kind, e.Table)
	fmt.Fprintf(sb, "%s}\n", indent)

	if e.Guard != nil {
		sb.WriteString("    }\n")
	}
}
