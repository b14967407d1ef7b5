package state

import (
	"fmt"

	"github.com/vk/physim/internal/measure"
	"github.com/zclconf/go-cty/cty"
)

// Binder owns the pre-allocated state vector and the found flags for one
// evaluation pass. The evaluator offers it every plain evaluated leaf; paths
// not declared as states are ignored. Each matching leaf is written at most
// once per pass (dotted paths are unique by construction), so there is a
// single writer per slot.
type Binder struct {
	table  *Table
	vector []float64
	found  []bool
}

// NewBinder allocates the vector and flags for the given table.
func NewBinder(table *Table) *Binder {
	return &Binder{
		table:  table,
		vector: make([]float64, table.TotalLength()),
		found:  make([]bool, table.Count()),
	}
}

// Bind matches a leaf's dotted path against the table and, on a hit, writes
// the value into the leaf's declared slot. The value's effective length must
// equal the declared length: a mismatch is fatal for the whole pass because
// the buffer layout is fixed. Unit and uncertainty wrappings are stripped;
// the written elements are deep copies, never aliases of the source value.
func (b *Binder) Bind(path string, v cty.Value) error {
	desc, i, ok := b.table.Lookup(path)
	if !ok {
		return nil
	}

	elems, err := numericElements(v)
	if err != nil {
		return fmt.Errorf("state %q: %w", desc.Name, err)
	}
	if len(elems) != desc.Length {
		return &LengthMismatchError{Name: desc.Name, Declared: desc.Length, Actual: len(elems)}
	}

	copy(b.vector[desc.Start-1:desc.Start-1+desc.Length], elems)
	b.found[i] = true
	return nil
}

// Vector returns the shared state buffer.
func (b *Binder) Vector() []float64 {
	return b.vector
}

// FoundFlags returns the per-descriptor found flags, parallel to the table's
// descriptor order.
func (b *Binder) FoundFlags() []bool {
	return b.found
}

// MissingStates returns the aggregated error for every state no leaf
// assigned, or nil when the pass covered the whole table.
func (b *Binder) MissingStates() error {
	var names []string
	for i, found := range b.found {
		if !found {
			names = append(names, b.table.descriptors[i].Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return &MissingStateError{Names: names}
}

// numericElements flattens a leaf value into bare float64 elements. A
// wrapped value counts as one element regardless of how many samples it
// carries; a collection contributes one element per member.
func numericElements(v cty.Value) ([]float64, error) {
	if measure.IsWrapped(v) {
		f, err := measure.Magnitude(v)
		if err != nil {
			return nil, err
		}
		return []float64{f}, nil
	}

	t := v.Type()
	if t.IsTupleType() || t.IsListType() || t.IsSetType() {
		if !v.IsKnown() || v.IsNull() {
			return nil, fmt.Errorf("collection value is unknown or null")
		}
		elems := make([]float64, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			f, err := measure.Magnitude(ev)
			if err != nil {
				return nil, err
			}
			elems = append(elems, f)
		}
		return elems, nil
	}

	f, err := measure.Magnitude(v)
	if err != nil {
		return nil, err
	}
	return []float64{f}, nil
}
