package cascade

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// scopeLevel identifies which hierarchy level anchors an operation.
type scopeLevel int

const (
	scopeWeek scopeLevel = iota
	scopeWorkout
	scopeExercise
)

func (l scopeLevel) String() string {
	switch l {
	case scopeWeek:
		return "week"
	case scopeWorkout:
		return "workout"
	default:
		return "exercise"
	}
}

// Scope anchors a duplicate, delete, or count operation at exactly one entity.
// Exactly one field must be non-zero.
type Scope struct {
	Week     primitive.ObjectID
	Workout  primitive.ObjectID
	Exercise primitive.ObjectID
}

// WeekScope anchors an operation at a week.
func WeekScope(id primitive.ObjectID) Scope { return Scope{Week: id} }

// WorkoutScope anchors an operation at a workout.
func WorkoutScope(id primitive.ObjectID) Scope { return Scope{Workout: id} }

// ExerciseScope anchors an operation at an exercise.
func ExerciseScope(id primitive.ObjectID) Scope { return Scope{Exercise: id} }

// target resolves the scope to its level and ID, rejecting scopes that name
// zero or several anchors.
func (s Scope) target() (scopeLevel, primitive.ObjectID, error) {
	var (
		level scopeLevel
		id    primitive.ObjectID
		n     int
	)
	if s.Week != primitive.NilObjectID {
		level, id, n = scopeWeek, s.Week, n+1
	}
	if s.Workout != primitive.NilObjectID {
		level, id, n = scopeWorkout, s.Workout, n+1
	}
	if s.Exercise != primitive.NilObjectID {
		level, id, n = scopeExercise, s.Exercise, n+1
	}
	if n != 1 {
		return 0, primitive.NilObjectID, ErrInvalidScope
	}
	return level, id, nil
}

// String names the scope level for logs and metrics.
func (s Scope) String() string {
	level, id, err := s.target()
	if err != nil {
		return "invalid"
	}
	switch level {
	case scopeWeek:
		return "week:" + id.Hex()
	case scopeWorkout:
		return "workout:" + id.Hex()
	default:
		return "exercise:" + id.Hex()
	}
}
