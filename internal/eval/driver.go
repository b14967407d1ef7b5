package eval

import (
	"context"

	"github.com/vk/physim/internal/ctxlog"
	"github.com/vk/physim/internal/expr"
	"github.com/vk/physim/internal/model"
	"github.com/vk/physim/internal/state"
)

// Result is the outcome of one successful pass: the evaluated root and the
// fully populated state vector.
type Result struct {
	// Root is the evaluated tree: a *Mapping, a constructed component, or a
	// scalar when the root itself collapsed.
	Root any
	// Vector is the populated state buffer, laid out per the descriptor
	// table.
	Vector []float64
	// Found is the per-descriptor coverage, parallel to the table order. On
	// a successful run every flag is true; it is exposed for diagnostics.
	Found []bool
}

// Run performs one full evaluation pass: it allocates the state vector and
// found flags for the table, evaluates the tree from the root with an empty
// scope chain and empty path, and afterwards aggregates every state no leaf
// assigned into a single error. A fatal error aborts with no partial result.
func (e *Evaluator) Run(ctx context.Context, tree *model.Node, table *state.Table) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Evaluation pass started.", "states", table.Count(), "vector_length", table.TotalLength())

	binder := state.NewBinder(table)
	root, err := e.evaluateNode(ctx, tree, binder, expr.NewScope(), "")
	if err != nil {
		return nil, err
	}

	if err := binder.MissingStates(); err != nil {
		return nil, err
	}

	logger.Debug("Evaluation pass finished.")
	return &Result{
		Root:   root,
		Vector: binder.Vector(),
		Found:  binder.FoundFlags(),
	}, nil
}
