// internal/domain/set.go
package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Set is a single set performed (or planned) for an Exercise. Which metric
// fields are populated depends on the owning Exercise's ExerciseType.
type Set struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // Link back to the exercise
	WorkoutID  primitive.ObjectID `bson:"workoutId" json:"workoutId"`   // Denormalized for subtree queries
	WeekID     primitive.ObjectID `bson:"weekId" json:"weekId"`         // Denormalized
	ProgramID  primitive.ObjectID `bson:"programId" json:"programId"`   // Denormalized
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`       // Denormalized for query/auth
	SetNumber  int                `bson:"setNumber" json:"setNumber"`   // 1-based, dense per exercise
	Checked    bool               `bson:"checked" json:"checked"`       // Completion flag

	// Metric fields. Pointers so "not set" is distinguishable from zero.
	Reps     *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight   *float64 `bson:"weight,omitempty" json:"weight,omitempty"`     // kg
	Duration *int     `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Distance *float64 `bson:"distance,omitempty" json:"distance,omitempty"` // meters
	RestTime *int     `bson:"restTime,omitempty" json:"restTime,omitempty"` // seconds

	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ErrInconsistentMetrics indicates the populated metric fields do not match
// the owning exercise's type.
var ErrInconsistentMetrics = errors.New("set metrics inconsistent with exercise type")

// HasAnyMetric reports whether at least one metric field is populated.
func (s *Set) HasAnyMetric() bool {
	return s.Reps != nil || s.Weight != nil || s.Duration != nil || s.Distance != nil || s.RestTime != nil
}

// ValidateForType checks the populated metric fields against the owning
// exercise's type. Enforced on single-document create/update; the cascade
// engine copies already-validated data and does not re-check.
func (s *Set) ValidateForType(t ExerciseType) error {
	switch t {
	case ExerciseTypeStrength:
		if s.Reps == nil {
			return fmt.Errorf("%w: strength set requires reps", ErrInconsistentMetrics)
		}
		if s.Duration != nil || s.Distance != nil {
			return fmt.Errorf("%w: strength set cannot carry duration/distance", ErrInconsistentMetrics)
		}
	case ExerciseTypeCardio, ExerciseTypeTimeBased:
		if s.Duration == nil {
			return fmt.Errorf("%w: %s set requires duration", ErrInconsistentMetrics, t)
		}
		if s.Reps != nil || s.Weight != nil {
			return fmt.Errorf("%w: %s set cannot carry reps/weight", ErrInconsistentMetrics, t)
		}
	case ExerciseTypeBodyweight:
		if s.Reps == nil {
			return fmt.Errorf("%w: bodyweight set requires reps", ErrInconsistentMetrics)
		}
		if s.Weight != nil || s.Duration != nil || s.Distance != nil {
			return fmt.Errorf("%w: bodyweight set carries reps/restTime only", ErrInconsistentMetrics)
		}
	case ExerciseTypeCustom:
		if !s.HasAnyMetric() {
			return fmt.Errorf("%w: custom set requires at least one metric", ErrInconsistentMetrics)
		}
	default:
		return fmt.Errorf("unknown exercise type %q", t)
	}
	return nil
}
