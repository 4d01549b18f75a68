package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The clone functions build the payloads written during duplication:
// structural fields carry over, timestamps regenerate at write time, and
// completion state never survives a copy. Each clone gets a freshly allocated
// ID so children staged later can reference it.

// CloneWeek copies a week into the same program under the given (already
// disambiguated) name. Order is carried verbatim; relative order among
// siblings is the caller's concern.
func CloneWeek(src *domain.Week, name string, now time.Time) *domain.Week {
	return &domain.Week{
		ID:        repository.NewID(),
		ProgramID: src.ProgramID,
		OwnerID:   src.OwnerID,
		Name:      name,
		Notes:     src.Notes,
		Order:     src.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CloneWorkout copies a workout under the given week.
func CloneWorkout(src *domain.Workout, name string, weekID primitive.ObjectID, now time.Time) *domain.Workout {
	return &domain.Workout{
		ID:         repository.NewID(),
		WeekID:     weekID,
		ProgramID:  src.ProgramID,
		OwnerID:    src.OwnerID,
		Name:       name,
		DayOfWeek:  cloneIntPtr(src.DayOfWeek),
		Notes:      src.Notes,
		OrderIndex: src.OrderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CloneExercise copies an exercise under the given workout.
func CloneExercise(src *domain.Exercise, name string, workoutID, weekID primitive.ObjectID, now time.Time) *domain.Exercise {
	return &domain.Exercise{
		ID:           repository.NewID(),
		WorkoutID:    workoutID,
		WeekID:       weekID,
		ProgramID:    src.ProgramID,
		OwnerID:      src.OwnerID,
		Name:         name,
		ExerciseType: src.ExerciseType,
		Notes:        src.Notes,
		OrderIndex:   src.OrderIndex,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CloneSet copies a set under the given exercise. Checked is always forced to
// false and CompletedAt is always dropped. Metric fields are copied per the
// exercise type; anything not meaningful for the type is left unset even when
// present on the source, so stale cross-type values (a weight surviving a
// switch to cardio) never travel with the copy.
func CloneSet(src *domain.Set, exerciseType domain.ExerciseType, exerciseID, workoutID, weekID primitive.ObjectID, now time.Time) *domain.Set {
	cp := &domain.Set{
		ID:         repository.NewID(),
		ExerciseID: exerciseID,
		WorkoutID:  workoutID,
		WeekID:     weekID,
		ProgramID:  src.ProgramID,
		OwnerID:    src.OwnerID,
		SetNumber:  src.SetNumber,
		Checked:    false,
		Notes:      src.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch exerciseType {
	case domain.ExerciseTypeStrength:
		cp.Reps = cloneIntPtr(src.Reps)
		cp.Weight = cloneFloatPtr(src.Weight)
		cp.RestTime = cloneIntPtr(src.RestTime)
	case domain.ExerciseTypeCardio, domain.ExerciseTypeTimeBased:
		cp.Duration = cloneIntPtr(src.Duration)
		cp.Distance = cloneFloatPtr(src.Distance)
	case domain.ExerciseTypeBodyweight:
		cp.Reps = cloneIntPtr(src.Reps)
		cp.RestTime = cloneIntPtr(src.RestTime)
	case domain.ExerciseTypeCustom:
		cp.Reps = cloneIntPtr(src.Reps)
		cp.Weight = cloneFloatPtr(src.Weight)
		cp.Duration = cloneIntPtr(src.Duration)
		cp.Distance = cloneFloatPtr(src.Distance)
		cp.RestTime = cloneIntPtr(src.RestTime)
	}
	return cp
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func cloneFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
