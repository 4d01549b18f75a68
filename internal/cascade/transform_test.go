package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

// fullyLoadedSet has every metric populated plus completion state, so the
// per-type tables can be checked for both what they carry and what they drop.
func fullyLoadedSet() *domain.Set {
	return &domain.Set{
		ID:          primitive.NewObjectID(),
		ExerciseID:  primitive.NewObjectID(),
		WorkoutID:   primitive.NewObjectID(),
		WeekID:      primitive.NewObjectID(),
		ProgramID:   primitive.NewObjectID(),
		OwnerID:     primitive.NewObjectID(),
		SetNumber:   3,
		Checked:     true,
		Reps:        intPtr(8),
		Weight:      floatPtr(92.5),
		Duration:    intPtr(300),
		Distance:    floatPtr(1200),
		RestTime:    intPtr(120),
		Notes:       "felt heavy",
		CompletedAt: timePtr(time.Now().UTC()),
	}
}

func TestCloneSetFieldTables(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		exerciseType domain.ExerciseType
		wantReps     bool
		wantWeight   bool
		wantDuration bool
		wantDistance bool
		wantRestTime bool
	}{
		{domain.ExerciseTypeStrength, true, true, false, false, true},
		{domain.ExerciseTypeCardio, false, false, true, true, false},
		{domain.ExerciseTypeTimeBased, false, false, true, true, false},
		{domain.ExerciseTypeBodyweight, true, false, false, false, true},
		{domain.ExerciseTypeCustom, true, true, true, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.exerciseType), func(t *testing.T) {
			src := fullyLoadedSet()
			exerciseID, workoutID, weekID := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

			cp := CloneSet(src, tc.exerciseType, exerciseID, workoutID, weekID, now)

			// Identity and parentage are fresh.
			require.NotEqual(t, src.ID, cp.ID)
			assert.Equal(t, exerciseID, cp.ExerciseID)
			assert.Equal(t, workoutID, cp.WorkoutID)
			assert.Equal(t, weekID, cp.WeekID)
			assert.Equal(t, src.ProgramID, cp.ProgramID)
			assert.Equal(t, src.OwnerID, cp.OwnerID)

			// Completion state never survives.
			assert.False(t, cp.Checked)
			assert.Nil(t, cp.CompletedAt)

			// Ordering and notes carry over.
			assert.Equal(t, src.SetNumber, cp.SetNumber)
			assert.Equal(t, src.Notes, cp.Notes)

			assert.Equal(t, tc.wantReps, cp.Reps != nil, "reps")
			assert.Equal(t, tc.wantWeight, cp.Weight != nil, "weight")
			assert.Equal(t, tc.wantDuration, cp.Duration != nil, "duration")
			assert.Equal(t, tc.wantDistance, cp.Distance != nil, "distance")
			assert.Equal(t, tc.wantRestTime, cp.RestTime != nil, "restTime")

			assert.Equal(t, now, cp.CreatedAt)
			assert.Equal(t, now, cp.UpdatedAt)
		})
	}
}

func TestCloneSetCopiesValuesNotPointers(t *testing.T) {
	src := fullyLoadedSet()
	cp := CloneSet(src, domain.ExerciseTypeStrength, src.ExerciseID, src.WorkoutID, src.WeekID, time.Now().UTC())

	require.NotNil(t, cp.Reps)
	require.Equal(t, *src.Reps, *cp.Reps)
	require.NotSame(t, src.Reps, cp.Reps)

	*cp.Reps = 99
	assert.Equal(t, 8, *src.Reps, "mutating the copy must not touch the source")
}

func TestCloneSetSparseSource(t *testing.T) {
	// A strength set with only reps populated: optional fields stay unset.
	src := &domain.Set{SetNumber: 1, Reps: intPtr(5)}
	cp := CloneSet(src, domain.ExerciseTypeStrength, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), time.Now().UTC())

	require.NotNil(t, cp.Reps)
	assert.Nil(t, cp.Weight)
	assert.Nil(t, cp.RestTime)
	assert.Nil(t, cp.Duration)
	assert.Nil(t, cp.Distance)
}

func TestCloneWeekRegeneratesIdentityAndTimestamps(t *testing.T) {
	now := time.Now().UTC()
	src := &domain.Week{
		ID:        primitive.NewObjectID(),
		ProgramID: primitive.NewObjectID(),
		OwnerID:   primitive.NewObjectID(),
		Name:      "Week 1",
		Notes:     "deload after this",
		Order:     4,
		CreatedAt: now.Add(-48 * time.Hour),
		UpdatedAt: now.Add(-24 * time.Hour),
	}

	cp := CloneWeek(src, "Week 1 (Copy)", now)

	require.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, src.ProgramID, cp.ProgramID)
	assert.Equal(t, src.OwnerID, cp.OwnerID)
	assert.Equal(t, "Week 1 (Copy)", cp.Name)
	assert.Equal(t, src.Notes, cp.Notes)
	assert.Equal(t, src.Order, cp.Order)
	assert.Equal(t, now, cp.CreatedAt)
	assert.Equal(t, now, cp.UpdatedAt)
}

func TestCloneWorkoutRemapsParent(t *testing.T) {
	now := time.Now().UTC()
	newWeekID := primitive.NewObjectID()
	src := &domain.Workout{
		ID:         primitive.NewObjectID(),
		WeekID:     primitive.NewObjectID(),
		ProgramID:  primitive.NewObjectID(),
		OwnerID:    primitive.NewObjectID(),
		Name:       "Day 1: Upper",
		DayOfWeek:  intPtr(2),
		OrderIndex: 1,
	}

	cp := CloneWorkout(src, src.Name, newWeekID, now)

	require.NotEqual(t, src.ID, cp.ID)
	assert.Equal(t, newWeekID, cp.WeekID)
	require.NotNil(t, cp.DayOfWeek)
	assert.Equal(t, 2, *cp.DayOfWeek)
	require.NotSame(t, src.DayOfWeek, cp.DayOfWeek)
	assert.Equal(t, src.OrderIndex, cp.OrderIndex)
}
