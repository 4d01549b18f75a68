package service

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrWeekNotFound        = errors.New("week not found")
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrSetNotFound         = errors.New("set not found")
	ErrAccessDenied        = errors.New("access denied to this resource")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidExerciseType = errors.New("invalid exercise type")
)

// PlanService covers single-document operations on the training hierarchy.
// Subtree operations (duplicate, cascade delete, descendant counts) live in
// the cascade engine; this service owns everything document-at-a-time.
type PlanService interface {
	CreateProgram(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*domain.Program, error)
	GetPrograms(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error)
	GetProgram(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.Program, error)
	UpdateProgram(ctx context.Context, ownerID primitive.ObjectID, program *domain.Program) (*domain.Program, error)

	CreateWeek(ctx context.Context, ownerID, programID primitive.ObjectID, name, notes string, order int) (*domain.Week, error)
	GetWeeks(ctx context.Context, ownerID, programID primitive.ObjectID) ([]domain.Week, error)
	GetWeek(ctx context.Context, ownerID, weekID primitive.ObjectID) (*domain.Week, error)
	UpdateWeek(ctx context.Context, ownerID primitive.ObjectID, week *domain.Week) (*domain.Week, error)

	CreateWorkout(ctx context.Context, ownerID, weekID primitive.ObjectID, name, notes string, dayOfWeek *int, orderIndex int) (*domain.Workout, error)
	GetWorkouts(ctx context.Context, ownerID, weekID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, ownerID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error)

	CreateExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, name string, exerciseType domain.ExerciseType, notes string, orderIndex int) (*domain.Exercise, error)
	GetExercises(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, ownerID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)

	CreateSet(ctx context.Context, ownerID, exerciseID primitive.ObjectID, set *domain.Set) (*domain.Set, error)
	GetSets(ctx context.Context, ownerID, exerciseID primitive.ObjectID) ([]domain.Set, error)
	UpdateSet(ctx context.Context, ownerID primitive.ObjectID, set *domain.Set) (*domain.Set, error)
	DeleteSet(ctx context.Context, ownerID, setID primitive.ObjectID) error
}

type planService struct {
	programs  repository.ProgramRepository
	weeks     repository.WeekRepository
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	sets      repository.SetRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	programs repository.ProgramRepository,
	weeks repository.WeekRepository,
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	sets repository.SetRepository,
) PlanService {
	return &planService{
		programs:  programs,
		weeks:     weeks,
		workouts:  workouts,
		exercises: exercises,
		sets:      sets,
	}
}

// --- Programs ---

func (s *planService) CreateProgram(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*domain.Program, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: program name cannot be empty", ErrInvalidInput)
	}
	program := &domain.Program{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	id, err := s.programs.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = id
	return program, nil
}

func (s *planService) GetPrograms(ctx context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error) {
	return s.programs.GetByOwnerID(ctx, ownerID, includeArchived)
}

func (s *planService) GetProgram(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.Program, error) {
	program, err := s.programs.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return program, nil
}

func (s *planService) UpdateProgram(ctx context.Context, ownerID primitive.ObjectID, program *domain.Program) (*domain.Program, error) {
	existing, err := s.GetProgram(ctx, ownerID, program.ID)
	if err != nil {
		return nil, err
	}
	if program.Name == "" {
		return nil, fmt.Errorf("%w: program name cannot be empty", ErrInvalidInput)
	}
	existing.Name = program.Name
	existing.Description = program.Description
	existing.Archived = program.Archived
	if err := s.programs.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// --- Weeks ---

func (s *planService) CreateWeek(ctx context.Context, ownerID, programID primitive.ObjectID, name, notes string, order int) (*domain.Week, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: week name cannot be empty", ErrInvalidInput)
	}
	// Verify the parent exists and belongs to the caller before attaching.
	if _, err := s.GetProgram(ctx, ownerID, programID); err != nil {
		return nil, err
	}
	week := &domain.Week{
		ProgramID: programID,
		OwnerID:   ownerID,
		Name:      name,
		Notes:     notes,
		Order:     order,
	}
	id, err := s.weeks.Create(ctx, week)
	if err != nil {
		return nil, err
	}
	week.ID = id
	return week, nil
}

func (s *planService) GetWeeks(ctx context.Context, ownerID, programID primitive.ObjectID) ([]domain.Week, error) {
	if _, err := s.GetProgram(ctx, ownerID, programID); err != nil {
		return nil, err
	}
	return s.weeks.GetByProgramID(ctx, programID)
}

func (s *planService) GetWeek(ctx context.Context, ownerID, weekID primitive.ObjectID) (*domain.Week, error) {
	week, err := s.weeks.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if week.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return week, nil
}

func (s *planService) UpdateWeek(ctx context.Context, ownerID primitive.ObjectID, week *domain.Week) (*domain.Week, error) {
	existing, err := s.GetWeek(ctx, ownerID, week.ID)
	if err != nil {
		return nil, err
	}
	if week.Name == "" {
		return nil, fmt.Errorf("%w: week name cannot be empty", ErrInvalidInput)
	}
	existing.Name = week.Name
	existing.Notes = week.Notes
	existing.Order = week.Order
	if err := s.weeks.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// --- Workouts ---

func (s *planService) CreateWorkout(ctx context.Context, ownerID, weekID primitive.ObjectID, name, notes string, dayOfWeek *int, orderIndex int) (*domain.Workout, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: workout name cannot be empty", ErrInvalidInput)
	}
	if dayOfWeek != nil && (*dayOfWeek < 1 || *dayOfWeek > 7) {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 1 and 7", ErrInvalidInput)
	}
	week, err := s.GetWeek(ctx, ownerID, weekID)
	if err != nil {
		return nil, err
	}
	workout := &domain.Workout{
		WeekID:     weekID,
		ProgramID:  week.ProgramID,
		OwnerID:    ownerID,
		Name:       name,
		Notes:      notes,
		DayOfWeek:  dayOfWeek,
		OrderIndex: orderIndex,
	}
	id, err := s.workouts.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *planService) GetWorkouts(ctx context.Context, ownerID, weekID primitive.ObjectID) ([]domain.Workout, error) {
	if _, err := s.GetWeek(ctx, ownerID, weekID); err != nil {
		return nil, err
	}
	return s.workouts.GetByWeekID(ctx, weekID)
}

func (s *planService) GetWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workouts.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return workout, nil
}

func (s *planService) UpdateWorkout(ctx context.Context, ownerID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error) {
	existing, err := s.GetWorkout(ctx, ownerID, workout.ID)
	if err != nil {
		return nil, err
	}
	if workout.Name == "" {
		return nil, fmt.Errorf("%w: workout name cannot be empty", ErrInvalidInput)
	}
	existing.Name = workout.Name
	existing.Notes = workout.Notes
	existing.DayOfWeek = workout.DayOfWeek
	existing.OrderIndex = workout.OrderIndex
	if err := s.workouts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// --- Exercises ---

func (s *planService) CreateExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, name string, exerciseType domain.ExerciseType, notes string, orderIndex int) (*domain.Exercise, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name cannot be empty", ErrInvalidInput)
	}
	if !exerciseType.IsValid() {
		return nil, ErrInvalidExerciseType
	}
	workout, err := s.GetWorkout(ctx, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	exercise := &domain.Exercise{
		WorkoutID:    workoutID,
		WeekID:       workout.WeekID,
		ProgramID:    workout.ProgramID,
		OwnerID:      ownerID,
		Name:         name,
		ExerciseType: exerciseType,
		Notes:        notes,
		OrderIndex:   orderIndex,
	}
	id, err := s.exercises.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

func (s *planService) GetExercises(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	if _, err := s.GetWorkout(ctx, ownerID, workoutID); err != nil {
		return nil, err
	}
	return s.exercises.GetByWorkoutID(ctx, workoutID)
}

func (s *planService) GetExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exercises.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return exercise, nil
}

func (s *planService) UpdateExercise(ctx context.Context, ownerID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	existing, err := s.GetExercise(ctx, ownerID, exercise.ID)
	if err != nil {
		return nil, err
	}
	if exercise.Name == "" {
		return nil, fmt.Errorf("%w: exercise name cannot be empty", ErrInvalidInput)
	}
	// Changing the type would silently orphan metrics on existing sets, so
	// the type is fixed after creation.
	if exercise.ExerciseType != "" && exercise.ExerciseType != existing.ExerciseType {
		return nil, fmt.Errorf("%w: exercise type cannot be changed", ErrInvalidInput)
	}
	existing.Name = exercise.Name
	existing.Notes = exercise.Notes
	existing.OrderIndex = exercise.OrderIndex
	if err := s.exercises.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// --- Sets ---

func (s *planService) CreateSet(ctx context.Context, ownerID, exerciseID primitive.ObjectID, set *domain.Set) (*domain.Set, error) {
	exercise, err := s.GetExercise(ctx, ownerID, exerciseID)
	if err != nil {
		return nil, err
	}
	if set.SetNumber < 1 {
		return nil, fmt.Errorf("%w: setNumber must be at least 1", ErrInvalidInput)
	}
	if err := set.ValidateForType(exercise.ExerciseType); err != nil {
		return nil, err
	}
	set.ExerciseID = exerciseID
	set.WorkoutID = exercise.WorkoutID
	set.WeekID = exercise.WeekID
	set.ProgramID = exercise.ProgramID
	set.OwnerID = ownerID
	id, err := s.sets.Create(ctx, set)
	if err != nil {
		return nil, err
	}
	set.ID = id
	return set, nil
}

func (s *planService) GetSets(ctx context.Context, ownerID, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	if _, err := s.GetExercise(ctx, ownerID, exerciseID); err != nil {
		return nil, err
	}
	return s.sets.GetByExerciseID(ctx, exerciseID)
}

func (s *planService) UpdateSet(ctx context.Context, ownerID primitive.ObjectID, set *domain.Set) (*domain.Set, error) {
	existing, err := s.sets.GetByID(ctx, set.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	exercise, err := s.GetExercise(ctx, ownerID, existing.ExerciseID)
	if err != nil {
		return nil, err
	}
	if set.SetNumber < 1 {
		return nil, fmt.Errorf("%w: setNumber must be at least 1", ErrInvalidInput)
	}
	if err := set.ValidateForType(exercise.ExerciseType); err != nil {
		return nil, err
	}
	existing.SetNumber = set.SetNumber
	existing.Checked = set.Checked
	existing.Reps = set.Reps
	existing.Weight = set.Weight
	existing.Duration = set.Duration
	existing.Distance = set.Distance
	existing.RestTime = set.RestTime
	existing.Notes = set.Notes
	existing.CompletedAt = set.CompletedAt
	if err := s.sets.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteSet removes a single set. Sets are leaves, so no cascade is needed.
func (s *planService) DeleteSet(ctx context.Context, ownerID, setID primitive.ObjectID) error {
	err := s.sets.Delete(ctx, setID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSetNotFound
	}
	return err
}
