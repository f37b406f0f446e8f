package topology

import "fmt"

// DuplicateNameError is returned when a function or table name is registered twice.
type DuplicateNameError struct {
	Entity string // "function" or "table"
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s name %q", e.Entity, e.Name)
}

// UnknownFunctionError is returned when an edge or table references a function
// that was never registered with the model.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// UnknownTableError is returned when an indirect edge references an
// indirection table that was never registered with the model.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown indirection table %q", e.Name)
}

// NonTerminatingTopologyError is returned when a recursive or cyclic edge
// group carries no monotonically-decreasing guard, so the synthesized program
// could not be proven to terminate.
type NonTerminatingTopologyError struct {
	Caller string
	Callee string
}

func (e *NonTerminatingTopologyError) Error() string {
	return fmt.Sprintf("non-terminating topology: cycle edge %s -> %s has no decreasing guard", e.Caller, e.Callee)
}
