package state

import (
	"fmt"
	"strings"
)

// LengthMismatchError reports a leaf whose effective length disagrees with
// its declared state length. The vector's layout is fixed at allocation
// time, so this aborts the whole evaluation pass.
type LengthMismatchError struct {
	Name     string
	Declared int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("state %q: declared length %d, got value of length %d", e.Name, e.Declared, e.Actual)
}

// MissingStateError aggregates every declared state that no leaf assigned
// during one full traversal. It is reported once, after the pass, so all
// omissions show up together.
type MissingStateError struct {
	Names []string
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("no value assigned for states: %s", strings.Join(e.Names, ", "))
}
