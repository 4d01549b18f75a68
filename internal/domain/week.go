// internal/domain/week.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Week is one training week inside a Program.
type Week struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProgramID primitive.ObjectID `bson:"programId" json:"programId"` // Link back to the program
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`     // Denormalized for query/auth
	Name      string             `bson:"name" json:"name"`           // e.g., "Week 1", "Deload"
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Order     int                `bson:"order"` // Position within the program, maintained by the caller
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
