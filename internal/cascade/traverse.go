package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"
)

// Order controls where a parent is visited relative to its descendants.
type Order int

const (
	// PreOrder visits a parent before its children (duplication: parents must
	// exist before children reference them).
	PreOrder Order = iota
	// PostOrder visits children before their parent (deletion: leaf-first, so
	// a partial failure never leaves a parent pointing at deleted children).
	PostOrder
)

// Visitor receives each node of a subtree walk. Nil callbacks are skipped.
// Sets are delivered together with their exercise's type, which the copy
// transformer needs.
type Visitor struct {
	Week     func(domain.Week) error
	Workout  func(domain.Workout) error
	Exercise func(domain.Exercise) error
	Set      func(domain.Set, domain.ExerciseType) error
}

// Traverser walks a subtree in stable order: each level's children are read
// fully (one blocking, ordered query per parent) before descending. Shared by
// duplication and deletion; only the visitor differs.
type Traverser struct {
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	sets      repository.SetRepository
}

// NewTraverser creates a Traverser over the three child-level repositories.
func NewTraverser(workouts repository.WorkoutRepository, exercises repository.ExerciseRepository, sets repository.SetRepository) *Traverser {
	return &Traverser{workouts: workouts, exercises: exercises, sets: sets}
}

// WalkWeek visits the week and everything below it.
func (t *Traverser) WalkWeek(ctx context.Context, week domain.Week, order Order, v Visitor) error {
	if order == PreOrder && v.Week != nil {
		if err := v.Week(week); err != nil {
			return err
		}
	}
	workouts, err := t.workouts.GetByWeekID(ctx, week.ID)
	if err != nil {
		return err
	}
	for _, w := range workouts {
		if err := t.WalkWorkout(ctx, w, order, v); err != nil {
			return err
		}
	}
	if order == PostOrder && v.Week != nil {
		if err := v.Week(week); err != nil {
			return err
		}
	}
	return nil
}

// WalkWorkout visits the workout and everything below it.
func (t *Traverser) WalkWorkout(ctx context.Context, workout domain.Workout, order Order, v Visitor) error {
	if order == PreOrder && v.Workout != nil {
		if err := v.Workout(workout); err != nil {
			return err
		}
	}
	exercises, err := t.exercises.GetByWorkoutID(ctx, workout.ID)
	if err != nil {
		return err
	}
	for _, e := range exercises {
		if err := t.WalkExercise(ctx, e, order, v); err != nil {
			return err
		}
	}
	if order == PostOrder && v.Workout != nil {
		if err := v.Workout(workout); err != nil {
			return err
		}
	}
	return nil
}

// WalkExercise visits the exercise and its sets.
func (t *Traverser) WalkExercise(ctx context.Context, exercise domain.Exercise, order Order, v Visitor) error {
	if order == PreOrder && v.Exercise != nil {
		if err := v.Exercise(exercise); err != nil {
			return err
		}
	}
	sets, err := t.sets.GetByExerciseID(ctx, exercise.ID)
	if err != nil {
		return err
	}
	if v.Set != nil {
		for _, s := range sets {
			if err := v.Set(s, exercise.ExerciseType); err != nil {
				return err
			}
		}
	}
	if order == PostOrder && v.Exercise != nil {
		if err := v.Exercise(exercise); err != nil {
			return err
		}
	}
	return nil
}
