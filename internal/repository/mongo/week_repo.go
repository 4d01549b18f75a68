// internal/repository/mongo/week_repo.go
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

const weekCollectionName = "weeks"

// mongoWeekRepository implements repository.WeekRepository
type mongoWeekRepository struct {
	collection *mongo.Collection
}

// NewMongoWeekRepository creates a new Week repository.
func NewMongoWeekRepository(db *mongo.Database) repository.WeekRepository {
	return &mongoWeekRepository{
		collection: db.Collection(weekCollectionName),
	}
}

// Create inserts a new week.
func (r *mongoWeekRepository) Create(ctx context.Context, week *domain.Week) (primitive.ObjectID, error) {
	if week.ProgramID == primitive.NilObjectID || week.OwnerID == primitive.NilObjectID || week.Name == "" {
		return primitive.NilObjectID, errors.New("week requires programId, ownerId, and name")
	}
	week.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, week)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted week ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single week by its ID.
func (r *mongoWeekRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Week, error) {
	var week domain.Week
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// GetByProgramID retrieves all weeks of a program, in program order.
func (r *mongoWeekRepository) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.Week, error) {
	var weeks []domain.Week
	filter := bson.M{"programId": programID}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

func (r *mongoWeekRepository) Update(ctx context.Context, week *domain.Week) error {
	if week.ID == primitive.NilObjectID {
		return errors.New("week ID is required for update")
	}

	filter := bson.M{"_id": week.ID, "ownerId": week.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      week.Name,
			"notes":     week.Notes,
			"order":     week.Order,
			"updatedAt": time.Now().UTC(),
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

func (r *mongoWeekRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || ownerID == primitive.NilObjectID {
		return errors.New("week ID and owner ID are required for deletion")
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

// EnsureWeekIndexes creates necessary indexes. Call during startup.
func EnsureWeekIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Finding weeks within a program, sorted by position
			Keys:    bson.D{{Key: "programId", Value: 1}, {Key: "order", Value: 1}},
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
