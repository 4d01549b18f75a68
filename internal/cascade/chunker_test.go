package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/repository/memory"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChunkerSplitsIntoBatches(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ch := NewChunker(store, DefaultMaxOpsPerBatch)

	weekID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	exerciseID := primitive.NewObjectID()
	for i := 0; i < 1000; i++ {
		set := &domain.Set{
			ID:         repository.NewID(),
			ExerciseID: exerciseID,
			WeekID:     weekID,
			OwnerID:    owner,
			SetNumber:  i + 1,
		}
		ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelSet, ID: set.ID, Doc: set})
	}

	committed, err := ch.Finish(ctx)
	require.NoError(t, err)

	// ceil(1000/450) = 3 transactions, none above the configured size.
	assert.Equal(t, 3, committed)
	batches := store.Committed()
	require.Len(t, batches, 3)
	total := 0
	for _, b := range batches {
		assert.LessOrEqual(t, len(b), DefaultMaxOpsPerBatch)
		total += len(b)
	}
	assert.Equal(t, 1000, total)

	// Every staged document landed.
	n, err := store.Sets().CountByWeekID(ctx, weekID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)
}

func TestChunkerFlushesPartialFinalBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	ch := NewChunker(store, 450)

	for i := 0; i < 10; i++ {
		ch.Stage(ctx, repository.Op{Kind: repository.OpDelete, Level: repository.LevelSet, ID: primitive.NewObjectID()})
	}
	committed, err := ch.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, committed)
	require.Len(t, store.Committed(), 1)
	assert.Len(t, store.Committed()[0], 10)
}

func TestChunkerFinishWithNothingStaged(t *testing.T) {
	store := memory.NewStore()
	ch := NewChunker(store, 450)

	committed, err := ch.Finish(context.Background())
	require.NoError(t, err)
	assert.Zero(t, committed)
	assert.Empty(t, store.Committed())
}

func TestChunkerSurfacesCommitFailureWithoutRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.FailCommitAt = 2
	store.CommitErr = errors.New("store unavailable")

	ch := NewChunker(store, 100)
	for i := 0; i < 250; i++ {
		ch.Stage(ctx, repository.Op{Kind: repository.OpDelete, Level: repository.LevelSet, ID: primitive.NewObjectID()})
	}

	committed, err := ch.Finish(ctx)
	require.Error(t, err)

	var batchErr *BatchCommitError
	require.ErrorAs(t, err, &batchErr)
	assert.ErrorIs(t, batchErr.Err, store.CommitErr)

	// The other two batches stay committed; nothing is compensated.
	assert.Equal(t, 2, committed)
	assert.Equal(t, 2, batchErr.Committed)
}

func TestChunkerClampsLimitToHardCeiling(t *testing.T) {
	store := memory.NewStore()

	ch := NewChunker(store, 10_000)
	assert.Equal(t, DefaultMaxOpsPerBatch, ch.limit)

	ch = NewChunker(store, 0)
	assert.Equal(t, DefaultMaxOpsPerBatch, ch.limit)

	ch = NewChunker(store, 25)
	assert.Equal(t, 25, ch.limit)
}
