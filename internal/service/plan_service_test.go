package service

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

type planFixture struct {
	svc      PlanService
	owner    primitive.ObjectID
	program  *domain.Program
	week     *domain.Week
	workout  *domain.Workout
	strength *domain.Exercise
	cardio   *domain.Exercise
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewPlanService(store.Programs(), store.Weeks(), store.Workouts(), store.Exercises(), store.Sets())
	owner := primitive.NewObjectID()

	program, err := svc.CreateProgram(ctx, owner, "Strength Block", "")
	require.NoError(t, err)
	week, err := svc.CreateWeek(ctx, owner, program.ID, "Week 1", "", 1)
	require.NoError(t, err)
	workout, err := svc.CreateWorkout(ctx, owner, week.ID, "Day 1", "", nil, 1)
	require.NoError(t, err)
	strength, err := svc.CreateExercise(ctx, owner, workout.ID, "Back Squat", domain.ExerciseTypeStrength, "", 1)
	require.NoError(t, err)
	cardio, err := svc.CreateExercise(ctx, owner, workout.ID, "Row", domain.ExerciseTypeCardio, "", 2)
	require.NoError(t, err)

	return &planFixture{svc: svc, owner: owner, program: program, week: week, workout: workout, strength: strength, cardio: cardio}
}

func TestCreateHierarchyDenormalizesAncestors(t *testing.T) {
	fx := newPlanFixture(t)

	assert.Equal(t, fx.program.ID, fx.week.ProgramID)
	assert.Equal(t, fx.week.ID, fx.workout.WeekID)
	assert.Equal(t, fx.program.ID, fx.workout.ProgramID)
	assert.Equal(t, fx.workout.ID, fx.strength.WorkoutID)
	assert.Equal(t, fx.week.ID, fx.strength.WeekID)
	assert.Equal(t, fx.program.ID, fx.strength.ProgramID)
	assert.Equal(t, fx.owner, fx.strength.OwnerID)
}

func TestCreateWeekRequiresOwnedProgram(t *testing.T) {
	fx := newPlanFixture(t)
	stranger := primitive.NewObjectID()

	_, err := fx.svc.CreateWeek(context.Background(), stranger, fx.program.ID, "Week 2", "", 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = fx.svc.CreateWeek(context.Background(), fx.owner, primitive.NewObjectID(), "Week 2", "", 2)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestCreateExerciseRejectsUnknownType(t *testing.T) {
	fx := newPlanFixture(t)

	_, err := fx.svc.CreateExercise(context.Background(), fx.owner, fx.workout.ID, "Yoga", domain.ExerciseType("flexibility"), "", 3)
	assert.ErrorIs(t, err, ErrInvalidExerciseType)
}

func TestCreateSetValidatesMetricsAgainstExerciseType(t *testing.T) {
	fx := newPlanFixture(t)
	ctx := context.Background()

	// Strength set with reps and weight is fine.
	set, err := fx.svc.CreateSet(ctx, fx.owner, fx.strength.ID, &domain.Set{
		SetNumber: 1,
		Reps:      intPtr(5),
		Weight:    floatPtr(120),
		RestTime:  intPtr(180),
	})
	require.NoError(t, err)
	assert.Equal(t, fx.workout.ID, set.WorkoutID)
	assert.Equal(t, fx.week.ID, set.WeekID)

	// A duration on a strength set is inconsistent.
	_, err = fx.svc.CreateSet(ctx, fx.owner, fx.strength.ID, &domain.Set{
		SetNumber: 2,
		Reps:      intPtr(5),
		Duration:  intPtr(60),
	})
	assert.ErrorIs(t, err, domain.ErrInconsistentMetrics)

	// Cardio needs a duration.
	_, err = fx.svc.CreateSet(ctx, fx.owner, fx.cardio.ID, &domain.Set{SetNumber: 1, Distance: floatPtr(2000)})
	assert.ErrorIs(t, err, domain.ErrInconsistentMetrics)

	_, err = fx.svc.CreateSet(ctx, fx.owner, fx.cardio.ID, &domain.Set{
		SetNumber: 1,
		Duration:  intPtr(480),
		Distance:  floatPtr(2000),
	})
	assert.NoError(t, err)
}

func TestUpdateSetRevalidates(t *testing.T) {
	fx := newPlanFixture(t)
	ctx := context.Background()

	set, err := fx.svc.CreateSet(ctx, fx.owner, fx.strength.ID, &domain.Set{SetNumber: 1, Reps: intPtr(5)})
	require.NoError(t, err)

	set.Reps = nil
	set.Duration = intPtr(30)
	_, err = fx.svc.UpdateSet(ctx, fx.owner, set)
	assert.ErrorIs(t, err, domain.ErrInconsistentMetrics)
}

func TestUpdateExerciseTypeIsImmutable(t *testing.T) {
	fx := newPlanFixture(t)

	fx.strength.ExerciseType = domain.ExerciseTypeCardio
	_, err := fx.svc.UpdateExercise(context.Background(), fx.owner, fx.strength)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProgramsHidesArchived(t *testing.T) {
	fx := newPlanFixture(t)
	ctx := context.Background()

	fx.program.Archived = true
	_, err := fx.svc.UpdateProgram(ctx, fx.owner, fx.program)
	require.NoError(t, err)

	active, err := fx.svc.GetPrograms(ctx, fx.owner, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := fx.svc.GetPrograms(ctx, fx.owner, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteSetEnforcesOwnership(t *testing.T) {
	fx := newPlanFixture(t)
	ctx := context.Background()

	set, err := fx.svc.CreateSet(ctx, fx.owner, fx.strength.ID, &domain.Set{SetNumber: 1, Reps: intPtr(8)})
	require.NoError(t, err)

	err = fx.svc.DeleteSet(ctx, primitive.NewObjectID(), set.ID)
	assert.ErrorIs(t, err, ErrSetNotFound)

	require.NoError(t, fx.svc.DeleteSet(ctx, fx.owner, set.ID))
}
