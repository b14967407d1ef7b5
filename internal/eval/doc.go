// Package eval is the heart of the instantiation engine: a recursive descent
// over the model tree that interleaves three concerns without entangling
// them — symbolic substitution against the lexical scope chain, expression
// evaluation in the execution namespace, and position-exact writes into the
// pre-allocated state vector.
//
// Traversal is strictly sequential, left-to-right and outer-to-inner, and
// that order is semantically load-bearing: a node's later keys may reference
// its earlier keys, and inner nodes shadow outer bindings. There is no
// concurrency anywhere in a pass.
package eval
