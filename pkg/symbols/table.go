// Package symbols provides the symbol table shared between the assembler and
// the debugger. The assembler records every label with its raw offset; the
// debugger receives the table as an explicit handle and resolves labels
// against the program's load origin.
package symbols

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is a single recorded label.
//
// Offset is the raw value recorded by the assembler: the program counter
// *after* its pre-instruction increment, relative to the load origin. An
// entry with Offset 1 names the first word of the program. Consumers that
// want a plain address must subtract one and add the origin.
type Entry struct {
	Name   string `yaml:"name"`
	Offset uint16 `yaml:"offset"`
}

// Table maps label names to their raw offsets. Insertion order is preserved
// for listing and serialization.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable creates an empty symbol table.
func NewTable() *Table {
	return &Table{
		index: make(map[string]int),
	}
}

// Add records a label. Returns an error if the name is already taken.
func (t *Table) Add(name string, offset uint16) error {
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("duplicate label %q", name)
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Offset: offset})
	return nil
}

// Lookup returns the raw offset recorded for a label name.
// Lookup is case sensitive, matching the assembler's label rules.
func (t *Table) Lookup(name string) (uint16, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Offset, true
}

// Len returns the number of recorded labels.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the recorded labels in insertion order.
// The returned slice must not be modified.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Save serializes the table as YAML.
func (t *Table) Save(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(t.entries)
}

// ReadFrom deserializes a YAML table written by Save.
func ReadFrom(r io.Reader) (*Table, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("malformed symbol file: %w", err)
	}
	table := NewTable()
	for _, entry := range entries {
		if err := table.Add(entry.Name, entry.Offset); err != nil {
			return nil, fmt.Errorf("malformed symbol file: %w", err)
		}
	}
	return table, nil
}

// Load reads a .sym file from disk. A missing file is not an error: the
// debugger works without symbols, labels just never resolve.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTable(), nil
		}
		return nil, err
	}
	defer file.Close()
	return ReadFrom(file)
}
