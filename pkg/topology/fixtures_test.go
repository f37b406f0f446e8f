package topology

import (
	"testing"
)

// TestFixturesAreValid tests that every canonical fixture terminates
func TestFixturesAreValid(t *testing.T) {
	for name, model := range FixtureModels() {
		if model.Name != name {
			t.Errorf("Fixture %q has mismatched model name %q", name, model.Name)
		}
		if len(model.Functions()) == 0 {
			t.Errorf("Fixture %q has no functions", name)
		}
		if model.Entry() == "" {
			t.Errorf("Fixture %q has no entry", name)
		}
		if err := model.CheckTermination(); err != nil {
			t.Errorf("Fixture %q fails termination check: %v", name, err)
		}
	}
}

// TestFixtureUnknown tests the error for unknown fixture names
func TestFixtureUnknown(t *testing.T) {
	if _, err := Fixture("no-such-fixture"); err == nil {
		t.Fatal("Expected error for unknown fixture name")
	}
}

// TestFiveNodeCycleShape tests the cycle fixture's structure
func TestFiveNodeCycleShape(t *testing.T) {
	m := FiveNodeCycle()

	if len(m.Functions()) != 5 {
		t.Fatalf("Expected 5 functions, got %d", len(m.Functions()))
	}
	if len(m.Edges()) != 5 {
		t.Fatalf("Expected 5 edges, got %d", len(m.Edges()))
	}
	for _, e := range m.Edges() {
		if e.Guard == nil || !e.Guard.Decrements {
			t.Errorf("Cycle edge %s -> %s must carry a decrementing guard", e.Caller, e.Callee)
		}
	}
	for _, fn := range m.Functions() {
		if fn.Param != "level" {
			t.Errorf("Chain function %s should use 'level' parameter, got %q", fn.Name, fn.Param)
		}
	}
}

// TestMutualRecursionShape tests the mutual recursion fixture's structure
func TestMutualRecursionShape(t *testing.T) {
	m := MutualRecursion()

	var aToB, bToA bool
	for _, e := range m.Edges() {
		if e.Caller == "function_a" && e.Callee == "function_b" && e.Kind == MutualRecursive {
			aToB = true
		}
		if e.Caller == "function_b" && e.Callee == "function_a" && e.Kind == MutualRecursive {
			bToA = true
		}
	}
	if !aToB || !bToA {
		t.Error("Expected mutual-recursive edges in both directions")
	}
}

// TestKitchenSinkCoversAllKinds tests that the full fixture exercises every
// edge kind
func TestKitchenSinkCoversAllKinds(t *testing.T) {
	m := KitchenSink()

	seen := make(map[Kind]bool)
	for _, e := range m.Edges() {
		seen[e.Kind] = true
	}
	for _, kind := range Kinds {
		if !seen[kind] {
			t.Errorf("Kitchen-sink fixture is missing edge kind %q", kind)
		}
	}

	if m.Table("operations") == nil {
		t.Error("Expected the operations indirection table")
	}
}
