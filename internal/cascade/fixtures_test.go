package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// legDayFixture is the canonical test tree: Week "Leg Day" with 2 workouts,
// each holding 1 strength exercise (3 sets) and 1 cardio exercise (2 sets).
// Strength sets deliberately carry a stray Duration and cardio sets a stray
// Weight, so cross-type leaks would be visible on a duplicate.
type legDayFixture struct {
	store    *memory.Store
	owner    primitive.ObjectID
	program  domain.Program
	week     domain.Week
	workouts []domain.Workout
	// exercises[i] are the exercises of workouts[i]: [0] strength, [1] cardio.
	exercises [][]domain.Exercise
}

func seedLegDay(t *testing.T) *legDayFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	owner := primitive.NewObjectID()

	program := domain.Program{OwnerID: owner, Name: "Hypertrophy Block"}
	_, err := store.Programs().Create(ctx, &program)
	require.NoError(t, err)

	week := domain.Week{ProgramID: program.ID, OwnerID: owner, Name: "Leg Day", Order: 1}
	_, err = store.Weeks().Create(ctx, &week)
	require.NoError(t, err)

	fx := &legDayFixture{store: store, owner: owner, program: program, week: week}

	for i := 0; i < 2; i++ {
		workout := domain.Workout{
			WeekID:     week.ID,
			ProgramID:  program.ID,
			OwnerID:    owner,
			Name:       []string{"Session A", "Session B"}[i],
			OrderIndex: i + 1,
		}
		_, err = store.Workouts().Create(ctx, &workout)
		require.NoError(t, err)

		strength := domain.Exercise{
			WorkoutID:    workout.ID,
			WeekID:       week.ID,
			ProgramID:    program.ID,
			OwnerID:      owner,
			Name:         "Back Squat",
			ExerciseType: domain.ExerciseTypeStrength,
			OrderIndex:   1,
		}
		_, err = store.Exercises().Create(ctx, &strength)
		require.NoError(t, err)

		cardio := domain.Exercise{
			WorkoutID:    workout.ID,
			WeekID:       week.ID,
			ProgramID:    program.ID,
			OwnerID:      owner,
			Name:         "Assault Bike",
			ExerciseType: domain.ExerciseTypeCardio,
			OrderIndex:   2,
		}
		_, err = store.Exercises().Create(ctx, &cardio)
		require.NoError(t, err)

		for n := 1; n <= 3; n++ {
			set := domain.Set{
				ExerciseID:  strength.ID,
				WorkoutID:   workout.ID,
				WeekID:      week.ID,
				ProgramID:   program.ID,
				OwnerID:     owner,
				SetNumber:   n,
				Checked:     true,
				Reps:        intPtr(5),
				Weight:      floatPtr(140),
				RestTime:    intPtr(180),
				Duration:    intPtr(45), // stray cross-type value
				CompletedAt: timePtr(time.Now().UTC()),
			}
			_, err = store.Sets().Create(ctx, &set)
			require.NoError(t, err)
		}
		for n := 1; n <= 2; n++ {
			set := domain.Set{
				ExerciseID: cardio.ID,
				WorkoutID:  workout.ID,
				WeekID:     week.ID,
				ProgramID:  program.ID,
				OwnerID:    owner,
				SetNumber:  n,
				Checked:    true,
				Duration:   intPtr(600),
				Distance:   floatPtr(5000),
				Weight:     floatPtr(20), // stray cross-type value
			}
			_, err = store.Sets().Create(ctx, &set)
			require.NoError(t, err)
		}

		fx.workouts = append(fx.workouts, workout)
		fx.exercises = append(fx.exercises, []domain.Exercise{strength, cardio})
	}
	return fx
}

func (fx *legDayFixture) engine(maxOps int) *Engine {
	return NewEngine(fx.store.Weeks(), fx.store.Workouts(), fx.store.Exercises(), fx.store.Sets(), fx.store, maxOps)
}
