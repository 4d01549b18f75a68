package cascade

import (
	"fittrack/fitness-tracker/internal/repository"
	"context"

	log "github.com/sirupsen/logrus"
)

// Counts holds the number of descendants strictly below a scope. Levels at or
// above the scope are always zero.
type Counts struct {
	Workouts  int64 `json:"workouts"`
	Exercises int64 `json:"exercises"`
	Sets      int64 `json:"sets"`
}

// Aggregator computes descendant counts for delete-confirmation flows using
// server-side counts over the denormalized ancestor IDs; no documents are
// transferred or mutated.
type Aggregator struct {
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	sets      repository.SetRepository
}

// NewAggregator creates an Aggregator over the three countable levels.
func NewAggregator(workouts repository.WorkoutRepository, exercises repository.ExerciseRepository, sets repository.SetRepository) *Aggregator {
	return &Aggregator{workouts: workouts, exercises: exercises, sets: sets}
}

// Count returns descendant counts for the scope. It never fails: an invalid
// scope or any read error collapses to the all-zero result, because the
// callers are confirmation dialogs that must render regardless. Mutation
// errors are never swallowed this way; only counting degrades silently.
func (a *Aggregator) Count(ctx context.Context, scope Scope) Counts {
	level, id, err := scope.target()
	if err != nil {
		log.WithField("scope", scope.String()).Warn("descendant count requested with invalid scope")
		return Counts{}
	}

	var counts Counts
	switch level {
	case scopeWeek:
		if counts.Workouts, err = a.workouts.CountByWeekID(ctx, id); err != nil {
			break
		}
		if counts.Exercises, err = a.exercises.CountByWeekID(ctx, id); err != nil {
			break
		}
		counts.Sets, err = a.sets.CountByWeekID(ctx, id)
	case scopeWorkout:
		if counts.Exercises, err = a.exercises.CountByWorkoutID(ctx, id); err != nil {
			break
		}
		counts.Sets, err = a.sets.CountByWorkoutID(ctx, id)
	case scopeExercise:
		counts.Sets, err = a.sets.CountByExerciseID(ctx, id)
	}
	if err != nil {
		log.WithError(err).WithField("scope", scope.String()).Warn("descendant count failed, returning zeros")
		return Counts{}
	}
	return counts
}
