package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Level names the collection a batched operation targets.
type Level string

const (
	LevelProgram  Level = "program"
	LevelWeek     Level = "week"
	LevelWorkout  Level = "workout"
	LevelExercise Level = "exercise"
	LevelSet      Level = "set"
)

// OpKind distinguishes staged writes from staged deletions.
type OpKind int

const (
	OpPut OpKind = iota
	OpDelete
)

// Op is a single staged document mutation. For OpPut, Doc holds the typed
// domain value to insert (with ID already allocated); for OpDelete only
// Level and ID are used.
type Op struct {
	Kind  OpKind
	Level Level
	ID    primitive.ObjectID
	Doc   any
}

// NewID allocates a document identifier before the document is written, so
// staged children can reference their parent.
func NewID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// BatchStore commits a group of staged operations as one atomic unit.
// Atomicity holds only within a single CommitBatch call; callers issuing
// several batches accept partial completion if a later batch fails.
type BatchStore interface {
	CommitBatch(ctx context.Context, ops []Op) error
}
