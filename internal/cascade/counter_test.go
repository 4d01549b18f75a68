package cascade

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCountWeekScope(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	counts := eng.Count(context.Background(), WeekScope(fx.week.ID))
	assert.Equal(t, Counts{Workouts: 2, Exercises: 4, Sets: 10}, counts)
}

func TestCountWorkoutScope(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	counts := eng.Count(context.Background(), WorkoutScope(fx.workouts[1].ID))
	assert.Equal(t, Counts{Workouts: 0, Exercises: 2, Sets: 5}, counts)
}

func TestCountExerciseScope(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	strength := fx.exercises[0][0]
	counts := eng.Count(context.Background(), ExerciseScope(strength.ID))
	assert.Equal(t, Counts{Workouts: 0, Exercises: 0, Sets: 3}, counts)
}

func TestCountUnknownIDIsZero(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	counts := eng.Count(context.Background(), WeekScope(primitive.NewObjectID()))
	assert.Equal(t, Counts{}, counts)
}

func TestCountInvalidScopeReturnsZeros(t *testing.T) {
	fx := seedLegDay(t)
	eng := fx.engine(0)

	assert.Equal(t, Counts{}, eng.Count(context.Background(), Scope{}))
	assert.Equal(t, Counts{}, eng.Count(context.Background(), Scope{
		Week:    fx.week.ID,
		Workout: fx.workouts[0].ID,
	}))
}

func TestCountDegradesToZerosOnStoreError(t *testing.T) {
	fx := seedLegDay(t)
	fx.store.CountErr = errors.New("store unavailable")
	eng := fx.engine(0)

	counts := eng.Count(context.Background(), WeekScope(fx.week.ID))
	assert.Equal(t, Counts{}, counts)
}
