package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deleter removes a subtree using the same traversal as duplication, staging
// deletions leaf-first. The store enforces no referential integrity, so
// ordering is about predictability: a partial failure never leaves a parent
// whose children are already gone from the caller's perspective.
//
// Unlike duplication there is no explicit ownership check here; store-level
// access rules are relied on for deletes. The asymmetry is deliberate and
// kept visible rather than silently unified.
type Deleter struct {
	weeks     repository.WeekRepository
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	sets      repository.SetRepository
	traverser *Traverser
	batch     repository.BatchStore
	maxOps    int
}

// NewDeleter wires a Deleter. maxOps bounds operations per batch;
// non-positive values fall back to DefaultMaxOpsPerBatch.
func NewDeleter(
	weeks repository.WeekRepository,
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	sets repository.SetRepository,
	batch repository.BatchStore,
	maxOps int,
) *Deleter {
	return &Deleter{
		weeks:     weeks,
		workouts:  workouts,
		exercises: exercises,
		sets:      sets,
		traverser: NewTraverser(workouts, exercises, sets),
		batch:     batch,
		maxOps:    maxOps,
	}
}

// Delete removes the subtree anchored at scope. Batches already committed
// stay committed if a later batch fails; re-invoking after a partial failure
// deletes whatever remains.
func (d *Deleter) Delete(ctx context.Context, scope Scope) error {
	level, id, err := scope.target()
	if err != nil {
		return err
	}

	err = d.delete(ctx, level, id)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	deletesTotal.WithLabelValues(level.String(), outcome).Inc()
	return err
}

func (d *Deleter) delete(ctx context.Context, level scopeLevel, id primitive.ObjectID) error {
	ch := NewChunker(d.batch, d.maxOps)

	// Post-order visitor: every node stages its own deletion after its
	// descendants have staged theirs.
	visitor := Visitor{
		Week: func(w domain.Week) error {
			ch.Stage(ctx, repository.Op{Kind: repository.OpDelete, Level: repository.LevelWeek, ID: w.ID})
			return nil
		},
		Workout: func(w domain.Workout) error {
			ch.Stage(ctx, repository.Op{Kind: repository.OpDelete, Level: repository.LevelWorkout, ID: w.ID})
			return nil
		},
		Exercise: func(e domain.Exercise) error {
			ch.Stage(ctx, repository.Op{Kind: repository.OpDelete, Level: repository.LevelExercise, ID: e.ID})
			return nil
		},
		Set: func(s domain.Set, _ domain.ExerciseType) error {
			ch.Stage(ctx, repository.Op{Kind: repository.OpDelete, Level: repository.LevelSet, ID: s.ID})
			return nil
		},
	}

	var walkErr error
	switch level {
	case scopeWeek:
		src, err := d.weeks.GetByID(ctx, id)
		if err != nil {
			return sourceErr(err)
		}
		walkErr = d.traverser.WalkWeek(ctx, *src, PostOrder, visitor)
	case scopeWorkout:
		src, err := d.workouts.GetByID(ctx, id)
		if err != nil {
			return sourceErr(err)
		}
		walkErr = d.traverser.WalkWorkout(ctx, *src, PostOrder, visitor)
	case scopeExercise:
		src, err := d.exercises.GetByID(ctx, id)
		if err != nil {
			return sourceErr(err)
		}
		walkErr = d.traverser.WalkExercise(ctx, *src, PostOrder, visitor)
	}

	committed, finishErr := ch.Finish(ctx)
	if walkErr != nil {
		return walkErr
	}
	if finishErr != nil {
		return finishErr
	}

	log.WithFields(log.Fields{
		"scope":   level.String() + ":" + id.Hex(),
		"ops":     ch.Staged(),
		"batches": committed,
	}).Info("subtree deleted")
	return nil
}
