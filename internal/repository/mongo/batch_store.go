// internal/repository/mongo/batch_store.go
package mongo

import (
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoBatchStore implements repository.BatchStore on top of a multi-document
// transaction: every CommitBatch call is one atomic unit spanning however many
// collections the staged ops touch. Requires a replica set (transactions are
// unavailable on standalone mongod).
type mongoBatchStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoBatchStore creates a BatchStore backed by the given database.
func NewMongoBatchStore(client *mongo.Client, db *mongo.Database) repository.BatchStore {
	return &mongoBatchStore{client: client, db: db}
}

// collectionForLevel maps a batch op level to its collection name.
func collectionForLevel(level repository.Level) (string, error) {
	switch level {
	case repository.LevelProgram:
		return programCollectionName, nil
	case repository.LevelWeek:
		return weekCollectionName, nil
	case repository.LevelWorkout:
		return workoutCollectionName, nil
	case repository.LevelExercise:
		return exerciseCollectionName, nil
	case repository.LevelSet:
		return setCollectionName, nil
	}
	return "", fmt.Errorf("unknown batch level %q", level)
}

// CommitBatch applies all staged ops inside a single transaction.
func (s *mongoBatchStore) CommitBatch(ctx context.Context, ops []repository.Op) error {
	if len(ops) == 0 {
		return nil
	}

	// Group ops per collection, preserving staging order within each group.
	models := make(map[string][]mongo.WriteModel)
	for _, op := range ops {
		collName, err := collectionForLevel(op.Level)
		if err != nil {
			return err
		}
		switch op.Kind {
		case repository.OpPut:
			models[collName] = append(models[collName], mongo.NewInsertOneModel().SetDocument(op.Doc))
		case repository.OpDelete:
			models[collName] = append(models[collName],
				mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": op.ID}))
		default:
			return fmt.Errorf("unknown batch op kind %d", op.Kind)
		}
	}

	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for collName, writes := range models {
			opts := options.BulkWrite().SetOrdered(true)
			if _, err := s.db.Collection(collName).BulkWrite(sc, writes, opts); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
