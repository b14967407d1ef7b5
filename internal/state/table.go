// Package state holds the state-variable metadata produced by the upstream
// equation-compilation stage and the binder that fills the numeric state
// vector during model evaluation. The table fixes count, order, names and
// lengths before evaluation starts; this package only fills the buffer,
// never resizes or reorders it.
package state

import (
	"fmt"
)

// Descriptor binds one state variable's dotted path to its slot in the state
// vector. Start is a 1-based offset, per the compiler contract.
type Descriptor struct {
	Name   string `yaml:"name"`
	Start  int    `yaml:"start"`
	Length int    `yaml:"length"`
}

// Table is the ordered list of state descriptors plus a name index.
type Table struct {
	descriptors []Descriptor
	index       map[string]int
	total       int
}

// NewTable validates the descriptors and builds the lookup index. The
// descriptors must carry positive lengths, unique names, and contiguous
// 1-based offsets in declaration order; anything else is a broken compiler
// artifact and is rejected up front.
func NewTable(descriptors []Descriptor) (*Table, error) {
	t := &Table{
		descriptors: append([]Descriptor(nil), descriptors...),
		index:       make(map[string]int, len(descriptors)),
	}
	next := 1
	for i, d := range t.descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("state descriptor %d has no name", i)
		}
		if d.Length <= 0 {
			return nil, fmt.Errorf("state %q has non-positive length %d", d.Name, d.Length)
		}
		if d.Start != next {
			return nil, fmt.Errorf("state %q starts at offset %d, want contiguous offset %d", d.Name, d.Start, next)
		}
		if _, dup := t.index[d.Name]; dup {
			return nil, fmt.Errorf("duplicate state name %q", d.Name)
		}
		t.index[d.Name] = i
		next += d.Length
	}
	t.total = next - 1
	return t, nil
}

// Lookup returns the descriptor for a dotted path and its position in the
// table.
func (t *Table) Lookup(path string) (Descriptor, int, bool) {
	i, ok := t.index[path]
	if !ok {
		return Descriptor{}, 0, false
	}
	return t.descriptors[i], i, true
}

// Descriptors returns the descriptors in declaration order.
func (t *Table) Descriptors() []Descriptor {
	return t.descriptors
}

// Count returns the number of declared states.
func (t *Table) Count() int {
	return len(t.descriptors)
}

// TotalLength returns the summed length of all states, i.e. the required
// state-vector size.
func (t *Table) TotalLength() int {
	return t.total
}
