package repository

import (
	"fittrack/fitness-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProgramRepository defines the interface for interacting with program data.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error // Ensure the owner matches
}

// WeekRepository defines the interface for interacting with week data.
type WeekRepository interface {
	Create(ctx context.Context, week *domain.Week) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Week, error)
	GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Week, error) // Ordered by `order`
	Update(ctx context.Context, week *domain.Week) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByWeekID(ctx context.Context, weekID primitive.ObjectID) ([]domain.Workout, error) // Ordered by orderIndex
	CountByWeekID(ctx context.Context, weekID primitive.ObjectID) (int64, error)          // Server-side count
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) // Ordered by orderIndex
	CountByWeekID(ctx context.Context, weekID primitive.ObjectID) (int64, error)
	CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}

// SetRepository defines the interface for interacting with set data.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error)
	GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.Set, error) // Ordered by setNumber
	CountByWeekID(ctx context.Context, weekID primitive.ObjectID) (int64, error)
	CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error)
	CountByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, set *domain.Set) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}
