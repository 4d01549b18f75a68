// Package memory provides an in-memory implementation of the repository
// interfaces and the batch store. It backs the engine tests and any
// environment where a real MongoDB is unavailable.
package memory

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one mutex. Zero value is not usable;
// call NewStore.
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]domain.User
	programs  map[primitive.ObjectID]domain.Program
	weeks     map[primitive.ObjectID]domain.Week
	workouts  map[primitive.ObjectID]domain.Workout
	exercises map[primitive.ObjectID]domain.Exercise
	sets      map[primitive.ObjectID]domain.Set

	// Committed batches in commit order, for assertions on chunking behavior.
	committed [][]repository.Op

	// Failure injection. FailCommitAt fails the Nth CommitBatch call
	// (1-based) with CommitErr, leaving that batch unapplied. CountErr makes
	// every Count method fail; ListErr every ordered list; GetErr every GetByID.
	FailCommitAt int
	CommitErr    error
	CountErr     error
	ListErr      error
	GetErr       error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:     make(map[primitive.ObjectID]domain.User),
		programs:  make(map[primitive.ObjectID]domain.Program),
		weeks:     make(map[primitive.ObjectID]domain.Week),
		workouts:  make(map[primitive.ObjectID]domain.Workout),
		exercises: make(map[primitive.ObjectID]domain.Exercise),
		sets:      make(map[primitive.ObjectID]domain.Set),
	}
}

// Committed returns the batches applied so far, in commit order.
func (s *Store) Committed() [][]repository.Op {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]repository.Op, len(s.committed))
	copy(out, s.committed)
	return out
}

// CommitBatch applies all ops atomically (all-or-nothing under the lock).
func (s *Store) CommitBatch(_ context.Context, ops []repository.Op) error {
	if len(ops) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCommitAt > 0 && len(s.committed)+1 == s.FailCommitAt {
		err := s.CommitErr
		if err == nil {
			err = errors.New("injected commit failure")
		}
		// Record the attempt so the failure position stays stable.
		s.committed = append(s.committed, nil)
		return err
	}

	for _, op := range ops {
		switch op.Kind {
		case repository.OpPut:
			switch doc := op.Doc.(type) {
			case *domain.Program:
				s.programs[doc.ID] = *doc
			case *domain.Week:
				s.weeks[doc.ID] = *doc
			case *domain.Workout:
				s.workouts[doc.ID] = *doc
			case *domain.Exercise:
				s.exercises[doc.ID] = *doc
			case *domain.Set:
				s.sets[doc.ID] = *doc
			default:
				return errors.New("unsupported document type in batch op")
			}
		case repository.OpDelete:
			switch op.Level {
			case repository.LevelProgram:
				delete(s.programs, op.ID)
			case repository.LevelWeek:
				delete(s.weeks, op.ID)
			case repository.LevelWorkout:
				delete(s.workouts, op.ID)
			case repository.LevelExercise:
				delete(s.exercises, op.ID)
			case repository.LevelSet:
				delete(s.sets, op.ID)
			}
		}
	}

	batch := make([]repository.Op, len(ops))
	copy(batch, ops)
	s.committed = append(s.committed, batch)
	return nil
}

// --- Users ---

type userRepo struct{ s *Store }

// Users returns the store's UserRepository view.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return user.ID, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

// --- Programs ---

type programRepo struct{ s *Store }

// Programs returns the store's ProgramRepository view.
func (s *Store) Programs() repository.ProgramRepository { return programRepo{s} }

func (r programRepo) Create(_ context.Context, program *domain.Program) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	r.s.programs[program.ID] = *program
	return program.ID, nil
}

func (r programRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Program, error) {
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r programRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID, includeArchived bool) ([]domain.Program, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Program
	for _, p := range r.s.programs {
		if p.OwnerID == ownerID && (includeArchived || !p.Archived) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r programRepo) Update(_ context.Context, program *domain.Program) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.programs[program.ID]
	if !ok || existing.OwnerID != program.OwnerID {
		return repository.ErrNotFound
	}
	program.UpdatedAt = time.Now().UTC()
	r.s.programs[program.ID] = *program
	return nil
}

func (r programRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.programs[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.programs, id)
	return nil
}

// --- Weeks ---

type weekRepo struct{ s *Store }

// Weeks returns the store's WeekRepository view.
func (s *Store) Weeks() repository.WeekRepository { return weekRepo{s} }

func (r weekRepo) Create(_ context.Context, week *domain.Week) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	week.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	week.CreatedAt = now
	week.UpdatedAt = now
	r.s.weeks[week.ID] = *week
	return week.ID, nil
}

func (r weekRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Week, error) {
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.weeks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r weekRepo) GetByProgramID(_ context.Context, programID primitive.ObjectID) ([]domain.Week, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Week
	for _, w := range r.s.weeks {
		if w.ProgramID == programID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r weekRepo) Update(_ context.Context, week *domain.Week) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.weeks[week.ID]
	if !ok || existing.OwnerID != week.OwnerID {
		return repository.ErrNotFound
	}
	week.UpdatedAt = time.Now().UTC()
	r.s.weeks[week.ID] = *week
	return nil
}

func (r weekRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.weeks[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.weeks, id)
	return nil
}

// --- Workouts ---

type workoutRepo struct{ s *Store }

// Workouts returns the store's WorkoutRepository view.
func (s *Store) Workouts() repository.WorkoutRepository { return workoutRepo{s} }

func (r workoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	r.s.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r workoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r workoutRepo) GetByWeekID(_ context.Context, weekID primitive.ObjectID) ([]domain.Workout, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Workout
	for _, w := range r.s.workouts {
		if w.WeekID == weekID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r workoutRepo) CountByWeekID(_ context.Context, weekID primitive.ObjectID) (int64, error) {
	if r.s.CountErr != nil {
		return 0, r.s.CountErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, w := range r.s.workouts {
		if w.WeekID == weekID {
			n++
		}
	}
	return n, nil
}

func (r workoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.workouts[workout.ID]
	if !ok || existing.OwnerID != workout.OwnerID {
		return repository.ErrNotFound
	}
	workout.UpdatedAt = time.Now().UTC()
	r.s.workouts[workout.ID] = *workout
	return nil
}

func (r workoutRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.workouts[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.workouts, id)
	return nil
}

// --- Exercises ---

type exerciseRepo struct{ s *Store }

// Exercises returns the store's ExerciseRepository view.
func (s *Store) Exercises() repository.ExerciseRepository { return exerciseRepo{s} }

func (r exerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.s.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r exerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r exerciseRepo) GetByWorkoutID(_ context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Exercise
	for _, e := range r.s.exercises {
		if e.WorkoutID == workoutID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r exerciseRepo) CountByWeekID(_ context.Context, weekID primitive.ObjectID) (int64, error) {
	if r.s.CountErr != nil {
		return 0, r.s.CountErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, e := range r.s.exercises {
		if e.WeekID == weekID {
			n++
		}
	}
	return n, nil
}

func (r exerciseRepo) CountByWorkoutID(_ context.Context, workoutID primitive.ObjectID) (int64, error) {
	if r.s.CountErr != nil {
		return 0, r.s.CountErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, e := range r.s.exercises {
		if e.WorkoutID == workoutID {
			n++
		}
	}
	return n, nil
}

func (r exerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.exercises[exercise.ID]
	if !ok || existing.OwnerID != exercise.OwnerID {
		return repository.ErrNotFound
	}
	exercise.UpdatedAt = time.Now().UTC()
	r.s.exercises[exercise.ID] = *exercise
	return nil
}

func (r exerciseRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.exercises[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.exercises, id)
	return nil
}

// --- Sets ---

type setRepo struct{ s *Store }

// Sets returns the store's SetRepository view.
func (s *Store) Sets() repository.SetRepository { return setRepo{s} }

func (r setRepo) Create(_ context.Context, set *domain.Set) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now
	r.s.sets[set.ID] = *set
	return set.ID, nil
}

func (r setRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Set, error) {
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.sets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &st, nil
}

func (r setRepo) GetByExerciseID(_ context.Context, exerciseID primitive.ObjectID) ([]domain.Set, error) {
	if r.s.ListErr != nil {
		return nil, r.s.ListErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Set
	for _, st := range r.s.sets {
		if st.ExerciseID == exerciseID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetNumber < out[j].SetNumber })
	return out, nil
}

func (r setRepo) CountByWeekID(_ context.Context, weekID primitive.ObjectID) (int64, error) {
	if r.s.CountErr != nil {
		return 0, r.s.CountErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, st := range r.s.sets {
		if st.WeekID == weekID {
			n++
		}
	}
	return n, nil
}

func (r setRepo) CountByWorkoutID(_ context.Context, workoutID primitive.ObjectID) (int64, error) {
	if r.s.CountErr != nil {
		return 0, r.s.CountErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, st := range r.s.sets {
		if st.WorkoutID == workoutID {
			n++
		}
	}
	return n, nil
}

func (r setRepo) CountByExerciseID(_ context.Context, exerciseID primitive.ObjectID) (int64, error) {
	if r.s.CountErr != nil {
		return 0, r.s.CountErr
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, st := range r.s.sets {
		if st.ExerciseID == exerciseID {
			n++
		}
	}
	return n, nil
}

func (r setRepo) Update(_ context.Context, set *domain.Set) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.sets[set.ID]
	if !ok || existing.OwnerID != set.OwnerID {
		return repository.ErrNotFound
	}
	set.UpdatedAt = time.Now().UTC()
	r.s.sets[set.ID] = *set
	return nil
}

func (r setRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.sets[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.sets, id)
	return nil
}
