// Package cascade implements the hierarchical cascade-mutation engine:
// subtree duplication with type-aware field transformation and collision-safe
// naming, cascade deletion, and read-only descendant counting, all chunked
// under the store's per-transaction operation ceiling.
package cascade

import (
	"fittrack/fitness-tracker/internal/repository"
)

// Engine bundles the three subtree operations behind one constructor so the
// API layer wires a single dependency.
type Engine struct {
	*Duplicator
	*Deleter
	*Aggregator
}

// NewEngine wires an Engine over the hierarchy repositories and batch store.
func NewEngine(
	weeks repository.WeekRepository,
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	sets repository.SetRepository,
	batch repository.BatchStore,
	maxOpsPerBatch int,
) *Engine {
	return &Engine{
		Duplicator: NewDuplicator(weeks, workouts, exercises, sets, batch, maxOpsPerBatch),
		Deleter:    NewDeleter(weeks, workouts, exercises, sets, batch, maxOpsPerBatch),
		Aggregator: NewAggregator(workouts, exercises, sets),
	}
}
