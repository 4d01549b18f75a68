package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDuplicateWeek(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	res, err := eng.Duplicate(ctx, fx.owner, WeekScope(fx.week.ID))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.PartiallyCompleted)

	// 1 week + 2 workouts + 4 exercises + 10 sets.
	assert.Equal(t, 17, res.StagedOps)

	weeks, err := fx.store.Weeks().GetByProgramID(ctx, fx.program.ID)
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	var copyWeek *domain.Week
	for i := range weeks {
		if weeks[i].ID != fx.week.ID {
			copyWeek = &weeks[i]
		}
	}
	require.NotNil(t, copyWeek)
	assert.Equal(t, "Leg Day (Copy)", copyWeek.Name)
	assert.Equal(t, fx.week.Order, copyWeek.Order)
	assert.Equal(t, fx.owner, copyWeek.OwnerID)

	// Counts below the copy match the source subtree exactly.
	counts := eng.Count(ctx, WeekScope(copyWeek.ID))
	assert.Equal(t, Counts{Workouts: 2, Exercises: 4, Sets: 10}, counts)

	// Relative order survives the copy.
	newWorkouts, err := fx.store.Workouts().GetByWeekID(ctx, copyWeek.ID)
	require.NoError(t, err)
	require.Len(t, newWorkouts, 2)
	assert.Equal(t, "Session A", newWorkouts[0].Name)
	assert.Equal(t, "Session B", newWorkouts[1].Name)

	for _, w := range newWorkouts {
		exercises, err := fx.store.Exercises().GetByWorkoutID(ctx, w.ID)
		require.NoError(t, err)
		require.Len(t, exercises, 2)
		assert.Equal(t, domain.ExerciseTypeStrength, exercises[0].ExerciseType)
		assert.Equal(t, domain.ExerciseTypeCardio, exercises[1].ExerciseType)

		for _, e := range exercises {
			sets, err := fx.store.Sets().GetByExerciseID(ctx, e.ID)
			require.NoError(t, err)
			for _, s := range sets {
				assert.False(t, s.Checked, "completion flag must reset")
				assert.Nil(t, s.CompletedAt, "completion time never carries over")
				switch e.ExerciseType {
				case domain.ExerciseTypeStrength:
					require.NotNil(t, s.Reps)
					require.NotNil(t, s.Weight)
					assert.Equal(t, 5, *s.Reps)
					assert.Equal(t, 140.0, *s.Weight)
					assert.Nil(t, s.Duration, "stray duration must not survive on a strength set")
					assert.Nil(t, s.Distance)
				case domain.ExerciseTypeCardio:
					require.NotNil(t, s.Duration)
					require.NotNil(t, s.Distance)
					assert.Equal(t, 600, *s.Duration)
					assert.Equal(t, 5000.0, *s.Distance)
					assert.Nil(t, s.Weight, "stray weight must not survive on a cardio set")
					assert.Nil(t, s.Reps)
				}
			}
		}
	}
}

func TestDuplicateWeekMappingTree(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	res, err := eng.Duplicate(ctx, fx.owner, WeekScope(fx.week.ID))
	require.NoError(t, err)

	m := res.Mapping
	require.NotNil(t, m)
	assert.Equal(t, fx.week.ID, m.OldID)
	assert.NotEqual(t, m.OldID, m.NewID)

	require.Len(t, m.Children, 2, "one mapping child per workout")
	seen := map[primitive.ObjectID]bool{m.NewID: true}
	for i, workoutNode := range m.Children {
		assert.Equal(t, fx.workouts[i].ID, workoutNode.OldID)
		require.Len(t, workoutNode.Children, 2, "one mapping child per exercise")
		for j, exNode := range workoutNode.Children {
			assert.Equal(t, fx.exercises[i][j].ID, exNode.OldID)
			wantSets := 3
			if fx.exercises[i][j].ExerciseType == domain.ExerciseTypeCardio {
				wantSets = 2
			}
			assert.Len(t, exNode.Children, wantSets)
			for _, setNode := range exNode.Children {
				assert.NotEqual(t, setNode.OldID, setNode.NewID)
				assert.False(t, seen[setNode.NewID], "new IDs must be unique")
				seen[setNode.NewID] = true
			}
		}
	}
}

func TestDuplicateWorkoutIntoSameWeek(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	res, err := eng.Duplicate(ctx, fx.owner, WorkoutScope(fx.workouts[0].ID))
	require.NoError(t, err)

	newWorkout, err := fx.store.Workouts().GetByID(ctx, res.Mapping.NewID)
	require.NoError(t, err)
	assert.Equal(t, "Session A (Copy)", newWorkout.Name)
	assert.Equal(t, fx.week.ID, newWorkout.WeekID, "workout copy stays in the source week")

	counts := eng.Count(ctx, WorkoutScope(newWorkout.ID))
	assert.Equal(t, Counts{Exercises: 2, Sets: 5}, counts)

	// The week now has three workouts: two originals plus the copy.
	workouts, err := fx.store.Workouts().GetByWeekID(ctx, fx.week.ID)
	require.NoError(t, err)
	assert.Len(t, workouts, 3)
}

func TestDuplicateExercisePreservesSetNumbers(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	strength := fx.exercises[0][0]
	res, err := eng.Duplicate(ctx, fx.owner, ExerciseScope(strength.ID))
	require.NoError(t, err)

	sets, err := fx.store.Sets().GetByExerciseID(ctx, res.Mapping.NewID)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	for i, s := range sets {
		assert.Equal(t, i+1, s.SetNumber)
	}
}

func TestDuplicateDuplicateGetsFreshName(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	first, err := eng.Duplicate(ctx, fx.owner, WeekScope(fx.week.ID))
	require.NoError(t, err)

	second, err := eng.Duplicate(ctx, fx.owner, WeekScope(first.Mapping.NewID))
	require.NoError(t, err)

	copyOfCopy, err := fx.store.Weeks().GetByID(ctx, second.Mapping.NewID)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day (Copy) (Copy)", copyOfCopy.Name)
}

func TestDuplicateOwnershipMismatchFailsBeforeAnyWrite(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	eng := fx.engine(0)

	_, err := eng.Duplicate(ctx, primitive.NewObjectID(), WeekScope(fx.week.ID))
	require.ErrorIs(t, err, ErrOwnershipMismatch)

	weeks, err := fx.store.Weeks().GetByProgramID(ctx, fx.program.ID)
	require.NoError(t, err)
	assert.Len(t, weeks, 1, "nothing may be written on an ownership mismatch")
	assert.Empty(t, fx.store.Committed())
}

func TestDuplicateSourceNotFound(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	_, err := eng.Duplicate(context.Background(), fx.owner, WeekScope(primitive.NewObjectID()))
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestDuplicateInvalidScope(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	_, err := eng.Duplicate(context.Background(), fx.owner, Scope{})
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = eng.Duplicate(context.Background(), fx.owner, Scope{Week: fx.week.ID, Workout: fx.workouts[0].ID})
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestDuplicateReportsPartialCompletion(t *testing.T) {
	ctx := context.Background()
	fx := seedLegDay(t)
	fx.store.FailCommitAt = 2

	// 17 staged ops with a batch size of 5 gives 4 batches; one fails.
	eng := fx.engine(5)
	res, err := eng.Duplicate(ctx, fx.owner, WeekScope(fx.week.ID))
	require.Error(t, err)

	var batchErr *BatchCommitError
	require.ErrorAs(t, err, &batchErr)

	require.NotNil(t, res)
	assert.True(t, res.PartiallyCompleted)
	assert.Equal(t, 3, res.CommittedBatches, "the other batches stay committed")
}
