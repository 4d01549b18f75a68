// internal/domain/program.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program is the root of a user's training hierarchy:
// Program -> Week -> Workout -> Exercise -> Set.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"` // The user who owns this program
	Name        string             `bson:"name" json:"name"`       // e.g., "12-Week Strength Block"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Archived    bool               `bson:"archived" json:"archived"` // Hidden from the active list, not deleted
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
