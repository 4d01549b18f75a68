// internal/repository/mongo/exercise_repo.go
package mongo

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.WorkoutID == primitive.NilObjectID || exercise.OwnerID == primitive.NilObjectID || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise requires workoutId, ownerId, and name")
	}
	if !exercise.ExerciseType.IsValid() {
		return primitive.NilObjectID, errors.New("exercise requires a valid exerciseType")
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted exercise ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByWorkoutID retrieves all exercises of a workout, in workout order.
func (r *mongoExerciseRepository) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	filter := bson.M{"workoutId": workoutID}
	findOptions := options.Find().SetSort(bson.D{{Key: "orderIndex", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// CountByWeekID counts exercises anywhere under a week (denormalized weekId).
func (r *mongoExerciseRepository) CountByWeekID(ctx context.Context, weekID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"weekId": weekID})
}

// CountByWorkoutID counts exercises in a workout without fetching them.
func (r *mongoExerciseRepository) CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"workoutId": workoutID})
}

func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == primitive.NilObjectID {
		return errors.New("exercise ID is required for update")
	}
	if !exercise.ExerciseType.IsValid() {
		return errors.New("exercise requires a valid exerciseType")
	}

	filter := bson.M{"_id": exercise.ID, "ownerId": exercise.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":         exercise.Name,
			"exerciseType": exercise.ExerciseType,
			"notes":        exercise.Notes,
			"orderIndex":   exercise.OrderIndex,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return errors.New("exercise ID and owner ID are required for deletion")
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Finding exercises within a workout, sorted by position
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "orderIndex", Value: 1}},
			Options: options.Index(),
		},
		{
			// Subtree counts anchored at the week level
			Keys:    bson.D{{Key: "weekId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
