// Package synth renders a topology model into compilable source text that
// exhibits exactly the call edges the model describes. Guarded edges are
// present unconditionally in the text but gated at runtime, matching the
// oracle's "can occur" semantics. Models whose cycles lack decreasing guards
// are rejected before any output is produced.
package synth

import (
	"fmt"

	"github.com/l3aro/go-callgraph-oracle/pkg/topology"
)

// Language selects the target generation language.
type Language string

// C is the only supported target language.
const C Language = "c"

// Options configures synthesis.
type Options struct {
	// Language is the target language. Defaults to C.
	Language Language
	// EntryDepth is the depth value main passes to the entry function.
	// Defaults to 6 when zero.
	EntryDepth int
}

// DefaultEntryDepth is used when Options.EntryDepth is unset.
const DefaultEntryDepth = 6

// Synthesize renders the model into source text for the target language.
// The model's cycle structure is checked first; a recursive or cyclic edge
// group without a monotonically-decreasing guard returns
// topology.NonTerminatingTopologyError and no partial output.
func Synthesize(m *topology.Model, opts Options) (string, error) {
	if len(m.Functions()) == 0 {
		return "", fmt.Errorf("model %q has no functions", m.Name)
	}
	if m.Function("main") != nil {
		return "", fmt.Errorf("model %q declares a function named main, which the synthesizer reserves", m.Name)
	}
	if err := m.CheckTermination(); err != nil {
		return "", err
	}

	if opts.EntryDepth <= 0 {
		opts.EntryDepth = DefaultEntryDepth
	}

	switch opts.Language {
	case C, "":
		return synthesizeC(m, opts), nil
	default:
		return "", fmt.Errorf("unsupported target language %q", opts.Language)
	}
}
