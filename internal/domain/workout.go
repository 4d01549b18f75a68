// internal/domain/workout.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout represents a single workout session within a Week.
type Workout struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WeekID     primitive.ObjectID `bson:"weekId" json:"weekId"`       // Link back to the week
	ProgramID  primitive.ObjectID `bson:"programId" json:"programId"` // Denormalized for subtree queries
	OwnerID    primitive.ObjectID `bson:"ownerId" json:"ownerId"`     // Denormalized for query/auth
	Name       string             `bson:"name" json:"name"`           // e.g., "Day 1: Upper Body", "Long Run"
	DayOfWeek  *int               `bson:"dayOfWeek,omitempty" json:"dayOfWeek,omitempty"` // Optional: 1 (Mon) - 7 (Sun)
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	OrderIndex int                `bson:"orderIndex"` // Position within the week (if not using DayOfWeek)
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
