// internal/repository/mongo/set_repo.go
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

const setCollectionName = "sets"

// mongoSetRepository implements repository.SetRepository
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new Set repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// Create inserts a new set.
func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.ExerciseID == primitive.NilObjectID || set.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set requires exerciseId and ownerId")
	}
	if set.SetNumber < 1 {
		return primitive.NilObjectID, errors.New("set requires a 1-based setNumber")
	}
	set.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted set ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single set by its ID.
func (r *mongoSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error) {
	var set domain.Set
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

// GetByExerciseID retrieves all sets of an exercise, ordered by set number.
func (r *mongoSetRepository) GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	var sets []domain.Set
	filter := bson.M{"exerciseId": exerciseID}
	findOptions := options.Find().SetSort(bson.D{{Key: "setNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// CountByWeekID counts sets anywhere under a week (denormalized weekId).
func (r *mongoSetRepository) CountByWeekID(ctx context.Context, weekID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"weekId": weekID})
}

// CountByWorkoutID counts sets anywhere under a workout.
func (r *mongoSetRepository) CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"workoutId": workoutID})
}

// CountByExerciseID counts sets of an exercise without fetching them.
func (r *mongoSetRepository) CountByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"exerciseId": exerciseID})
}

func (r *mongoSetRepository) Update(ctx context.Context, set *domain.Set) error {
	if set.ID == primitive.NilObjectID {
		return errors.New("set ID is required for update")
	}

	filter := bson.M{"_id": set.ID, "ownerId": set.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"setNumber":   set.SetNumber,
			"checked":     set.Checked,
			"reps":        set.Reps,
			"weight":      set.Weight,
			"duration":    set.Duration,
			"distance":    set.Distance,
			"restTime":    set.RestTime,
			"notes":       set.Notes,
			"completedAt": set.CompletedAt,
			"updatedAt":   time.Now().UTC(),
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

// Delete removes a single set. Remaining set numbers are not renumbered;
// the caller owns the density of setNumber.
func (r *mongoSetRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return errors.New("set ID and owner ID are required for deletion")
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

// EnsureSetIndexes creates necessary indexes. Call during startup.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Finding sets within an exercise, ordered
			Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}},
			Options: options.Index(),
		},
		{
			// Subtree counts anchored at week/workout levels
			Keys:    bson.D{{Key: "weekId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
