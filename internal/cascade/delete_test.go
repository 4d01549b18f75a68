package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeleteWeekRemovesWholeSubtree(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)

	// A second week in the program must survive untouched.
	other := domain.Week{ProgramID: fx.program.ID, OwnerID: fx.owner, Name: "Push Day", Order: 2}
	_, err := fx.store.Weeks().Create(ctx, &other)
	require.NoError(t, err)
	otherWorkout := domain.Workout{WeekID: other.ID, ProgramID: fx.program.ID, OwnerID: fx.owner, Name: "Push A", OrderIndex: 1}
	_, err = fx.store.Workouts().Create(ctx, &otherWorkout)
	require.NoError(t, err)

	eng := fx.engine(0)
	require.NoError(t, eng.Delete(ctx, WeekScope(fx.week.ID)))

	_, err = fx.store.Weeks().GetByID(ctx, fx.week.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, Counts{}, eng.Count(ctx, WeekScope(fx.week.ID)))

	// Sibling week and its workout are still there.
	kept, err := fx.store.Weeks().GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push Day", kept.Name)
	assert.Equal(t, Counts{Workouts: 1}, eng.Count(ctx, WeekScope(other.ID)))
}

func TestDeleteStagesLeafFirst(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	require.NoError(t, eng.Delete(ctx, WeekScope(fx.week.ID)))

	batches := fx.store.Committed()
	require.Len(t, batches, 1, "17 deletions fit in a single batch")
	ops := batches[0]
	require.Len(t, ops, 17)

	for _, op := range ops {
		assert.Equal(t, repository.OpDelete, op.Kind)
	}

	// Post-order over [3 sets, exercise, 2 sets, exercise, workout] twice,
	// then the week itself.
	perWorkout := []repository.Level{
		repository.LevelSet, repository.LevelSet, repository.LevelSet, repository.LevelExercise,
		repository.LevelSet, repository.LevelSet, repository.LevelExercise,
		repository.LevelWorkout,
	}
	want := append(append(append([]repository.Level{}, perWorkout...), perWorkout...), repository.LevelWeek)
	got := make([]repository.Level, len(ops))
	for i, op := range ops {
		got[i] = op.Level
	}
	assert.Equal(t, want, got)
	assert.Equal(t, fx.week.ID, ops[len(ops)-1].ID)
}

func TestDeleteWorkoutLeavesSiblings(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	require.NoError(t, eng.Delete(ctx, WorkoutScope(fx.workouts[0].ID)))

	_, err := fx.store.Workouts().GetByID(ctx, fx.workouts[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The week keeps the other workout and its subtree.
	assert.Equal(t, Counts{Workouts: 1, Exercises: 2, Sets: 5}, eng.Count(ctx, WeekScope(fx.week.ID)))
}

func TestDeleteExerciseScope(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	cardio := fx.exercises[1][1]
	require.NoError(t, eng.Delete(ctx, ExerciseScope(cardio.ID)))

	sets, err := fx.store.Sets().GetByExerciseID(ctx, cardio.ID)
	require.NoError(t, err)
	assert.Empty(t, sets)
	assert.Equal(t, Counts{Workouts: 2, Exercises: 3, Sets: 8}, eng.Count(ctx, WeekScope(fx.week.ID)))
}

func TestDeleteSourceNotFound(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	err := eng.Delete(context.Background(), WeekScope(primitive.NewObjectID()))
	require.ErrorIs(t, err, ErrSourceNotFound)
	assert.Empty(t, fx.store.Committed(), "a missing source must not commit anything")
}

func TestDeleteInvalidScope(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	require.ErrorIs(t, eng.Delete(context.Background(), Scope{}), ErrInvalidScope)
}

func TestDeletePartialFailureKeepsCommittedBatches(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	fx.store.FailCommitAt = 2

	eng := fx.engine(5)
	err := eng.Delete(ctx, WeekScope(fx.week.ID))
	require.Error(t, err)

	var batchErr *BatchCommitError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 3, batchErr.Committed)

	// Committed batches stay applied. Exactly one batch's worth of documents
	// survives; which batch failed depends on commit order, so count instead
	// of naming survivors.
	applied := 0
	for _, b := range fx.store.Committed() {
		applied += len(b)
	}
	remaining := int64(17 - applied)

	var left int64
	if _, getErr := fx.store.Weeks().GetByID(ctx, fx.week.ID); getErr == nil {
		left++
	}
	n, _ := fx.store.Workouts().CountByWeekID(ctx, fx.week.ID)
	left += n
	n, _ = fx.store.Exercises().CountByWeekID(ctx, fx.week.ID)
	left += n
	n, _ = fx.store.Sets().CountByWeekID(ctx, fx.week.ID)
	left += n
	assert.Equal(t, remaining, left)
}
