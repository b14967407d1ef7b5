package app

import (
	"context"
	"fmt"

	"github.com/vk/physim/internal/ctxlog"
	"github.com/vk/physim/internal/eval"
	"github.com/vk/physim/internal/hclmodel"
	"github.com/vk/physim/internal/state"
)

// Run executes one evaluation pass based on the provided configuration: it
// loads the model and the state table, evaluates the model, and prints the
// evaluated tree plus the populated state vector.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	tree, err := hclmodel.Load(appConfig.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	a.logger.Debug("Model tree loaded.", "top_level_keys", tree.Len())

	table := emptyTable()
	if appConfig.StatesPath != "" {
		table, err = state.LoadTable(appConfig.StatesPath)
		if err != nil {
			return fmt.Errorf("failed to load state table: %w", err)
		}
	}
	a.logger.Info("Model loaded.", "states", table.Count(), "vector_length", table.TotalLength())

	result, err := eval.New(a.ns, a.registry).Run(ctx, tree, table)
	if err != nil {
		return fmt.Errorf("model could not be evaluated: %w", err)
	}
	a.logger.Info("Model evaluated.", "states_bound", table.Count())

	a.printResult(result)
	return nil
}

// emptyTable is the zero-state fallback for models evaluated without a
// compiler artifact, e.g. pure parameter studies.
func emptyTable() *state.Table {
	table, err := state.NewTable(nil)
	if err != nil {
		panic(err)
	}
	return table
}
