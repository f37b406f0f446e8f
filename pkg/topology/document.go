package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a topology model.
type Document struct {
	Name      string         `yaml:"name"`
	Entry     string         `yaml:"entry"`
	Functions []FunctionDoc  `yaml:"functions"`
	Edges     []EdgeDoc      `yaml:"edges"`
	Tables    []TableDoc     `yaml:"indirection_tables"`
}

// FunctionDoc describes one function entry in a topology document.
type FunctionDoc struct {
	Name  string `yaml:"name"`
	Param string `yaml:"param,omitempty"`
}

// EdgeDoc describes one call edge in a topology document. For
// indirect-pointer edges, Table and Index replace Callee.
type EdgeDoc struct {
	Caller string    `yaml:"caller"`
	Callee string    `yaml:"callee,omitempty"`
	Kind   string    `yaml:"kind"`
	Guard  *GuardDoc `yaml:"guard,omitempty"`
	Table  string    `yaml:"table,omitempty"`
	Index  string    `yaml:"index,omitempty"`
}

// GuardDoc describes an edge guard in a topology document.
type GuardDoc struct {
	Expr             string `yaml:"expr"`
	Decrements       bool   `yaml:"decrements,omitempty"`
	NonDeterministic bool   `yaml:"non_deterministic,omitempty"`
}

// LoadDocument reads a YAML topology document from a file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology document %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology document %s: %w", path, err)
	}
	return &doc, nil
}

// Build assembles a Model from the document through the builder API, so
// malformed documents surface the same typed errors as direct construction.
func (d *Document) Build() (*Model, error) {
	m := NewModel(d.Name)

	for _, fd := range d.Functions {
		fn, err := m.AddFunction(fd.Name)
		if err != nil {
			return nil, err
		}
		if fd.Param != "" {
			fn.Param = fd.Param
		}
	}

	for _, td := range d.Tables {
		if _, err := m.AddIndirectionTable(td.Name, td.Entries); err != nil {
			return nil, err
		}
	}

	for _, ed := range d.Edges {
		kind := Kind(ed.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("edge %s -> %s: invalid kind %q", ed.Caller, ed.Callee, ed.Kind)
		}
		guard := ed.Guard.toGuard()
		if kind == IndirectPointer {
			if err := m.AddIndirectEdge(ed.Caller, ed.Table, ed.Index, guard); err != nil {
				return nil, err
			}
			continue
		}
		if err := m.AddEdge(ed.Caller, ed.Callee, kind, guard); err != nil {
			return nil, err
		}
	}

	if d.Entry != "" {
		if err := m.SetEntry(d.Entry); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// LoadModel reads a topology document and builds the model in one step.
func LoadModel(path string) (*Model, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// TableDoc describes one indirection table in a topology document.
type TableDoc struct {
	Name    string   `yaml:"name"`
	Entries []string `yaml:"entries"`
}

func (g *GuardDoc) toGuard() *Guard {
	if g == nil {
		return nil
	}
	return &Guard{Expr: g.Expr, Decrements: g.Decrements, NonDeterministic: g.NonDeterministic}
}

// DocumentFromModel projects a model back into its document form, used when
// materializing canonical fixtures to disk.
func DocumentFromModel(m *Model) *Document {
	doc := &Document{Name: m.Name, Entry: m.Entry()}
	for _, fn := range m.Functions() {
		fd := FunctionDoc{Name: fn.Name}
		if fn.Param != "depth" {
			fd.Param = fn.Param
		}
		doc.Functions = append(doc.Functions, fd)
	}
	for _, t := range m.Tables() {
		doc.Tables = append(doc.Tables, TableDoc{Name: t.Name, Entries: append([]string(nil), t.Entries...)})
	}
	for _, e := range m.Edges() {
		ed := EdgeDoc{Caller: e.Caller, Callee: e.Callee, Kind: string(e.Kind), Table: e.Table, Index: e.Index}
		if e.Guard != nil {
			ed.Guard = &GuardDoc{Expr: e.Guard.Expr, Decrements: e.Guard.Decrements, NonDeterministic: e.Guard.NonDeterministic}
		}
		doc.Edges = append(doc.Edges, ed)
	}
	return doc
}

// Marshal serializes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshaling topology document: %w", err)
	}
	return data, nil
}
