// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseType determines which Set metric fields are meaningful.
type ExerciseType string

const (
	ExerciseTypeStrength   ExerciseType = "strength"
	ExerciseTypeCardio     ExerciseType = "cardio"
	ExerciseTypeTimeBased  ExerciseType = "timeBased"
	ExerciseTypeBodyweight ExerciseType = "bodyweight"
	ExerciseTypeCustom     ExerciseType = "custom"
)

// IsValid reports whether t is one of the known exercise types.
func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseTypeStrength, ExerciseTypeCardio, ExerciseTypeTimeBased,
		ExerciseTypeBodyweight, ExerciseTypeCustom:
		return true
	}
	return false
}

// Exercise is a single exercise slot inside a Workout.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workoutId"` // Link back to the workout
	WeekID       primitive.ObjectID `bson:"weekId" json:"weekId"`       // Denormalized for subtree queries
	ProgramID    primitive.ObjectID `bson:"programId" json:"programId"` // Denormalized
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`     // Denormalized for query/auth
	Name         string             `bson:"name" json:"name"`           // e.g., "Back Squat"
	ExerciseType ExerciseType       `bson:"exerciseType" json:"exerciseType"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	OrderIndex   int                `bson:"orderIndex"` // Position within the workout
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
