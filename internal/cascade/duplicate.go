package cascade

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mapping is the old-ID→new-ID correspondence for one copied node, nested
// down to the Set level. Callers use it to refresh navigation and
// subscriptions; the engine itself never reads it back.
type Mapping struct {
	OldID    primitive.ObjectID `json:"oldId"`
	NewID    primitive.ObjectID `json:"newId"`
	Children []*Mapping         `json:"children,omitempty"`
}

// Result reports the outcome of a duplication. PartiallyCompleted is true
// when some batches committed before a later one failed: the copy exists in
// the store but is incomplete, and re-invoking Duplicate starts a second,
// distinct copy rather than finishing this one.
type Result struct {
	Mapping            *Mapping `json:"mapping"`
	StagedOps          int      `json:"stagedOps"`
	CommittedBatches   int      `json:"committedBatches"`
	PartiallyCompleted bool     `json:"partiallyCompleted"`
}

// Duplicator deep-copies a subtree: fresh identities, collision-safe root
// name, type-aware field transformation, and chunked batch writes.
type Duplicator struct {
	weeks     repository.WeekRepository
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	sets      repository.SetRepository
	traverser *Traverser
	batch     repository.BatchStore
	maxOps    int
}

// NewDuplicator wires a Duplicator. maxOps bounds operations per batch;
// non-positive values fall back to DefaultMaxOpsPerBatch.
func NewDuplicator(
	weeks repository.WeekRepository,
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	sets repository.SetRepository,
	batch repository.BatchStore,
	maxOps int,
) *Duplicator {
	return &Duplicator{
		weeks:     weeks,
		workouts:  workouts,
		exercises: exercises,
		sets:      sets,
		traverser: NewTraverser(workouts, exercises, sets),
		batch:     batch,
		maxOps:    maxOps,
	}
}

// Duplicate copies the subtree anchored at scope on behalf of caller. The
// source document's owner must match caller, verified before any write.
// Cross-batch atomicity does not hold: on a mid-operation failure the
// returned Result reports partial completion alongside the error.
func (d *Duplicator) Duplicate(ctx context.Context, caller primitive.ObjectID, scope Scope) (*Result, error) {
	level, id, err := scope.target()
	if err != nil {
		return nil, err
	}

	res, err := d.duplicate(ctx, caller, level, id)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	duplicationsTotal.WithLabelValues(level.String(), outcome).Inc()
	if err == nil {
		log.WithFields(log.Fields{
			"scope":   scope.String(),
			"ops":     res.StagedOps,
			"batches": res.CommittedBatches,
		}).Info("subtree duplicated")
	}
	return res, err
}

func (d *Duplicator) duplicate(ctx context.Context, caller primitive.ObjectID, level scopeLevel, id primitive.ObjectID) (*Result, error) {
	now := time.Now().UTC()
	ch := NewChunker(d.batch, d.maxOps)

	// copier carries the walk state: for every copied node the freshly
	// allocated ID, and the mapping node children attach to.
	newIDs := make(map[primitive.ObjectID]primitive.ObjectID)
	nodes := make(map[primitive.ObjectID]*Mapping)

	remap := func(parent primitive.ObjectID) primitive.ObjectID {
		if n, ok := newIDs[parent]; ok {
			return n
		}
		return parent // parent outside the copied subtree keeps its identity
	}
	record := func(oldID, newID, parentOld primitive.ObjectID) {
		node := &Mapping{OldID: oldID, NewID: newID}
		newIDs[oldID] = newID
		nodes[oldID] = node
		if parent, ok := nodes[parentOld]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	visitor := Visitor{
		Workout: func(w domain.Workout) error {
			cp := CloneWorkout(&w, w.Name, remap(w.WeekID), now)
			record(w.ID, cp.ID, w.WeekID)
			ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelWorkout, ID: cp.ID, Doc: cp})
			return nil
		},
		Exercise: func(e domain.Exercise) error {
			cp := CloneExercise(&e, e.Name, remap(e.WorkoutID), remap(e.WeekID), now)
			record(e.ID, cp.ID, e.WorkoutID)
			ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelExercise, ID: cp.ID, Doc: cp})
			return nil
		},
		Set: func(s domain.Set, t domain.ExerciseType) error {
			cp := CloneSet(&s, t, remap(s.ExerciseID), remap(s.WorkoutID), remap(s.WeekID), now)
			record(s.ID, cp.ID, s.ExerciseID)
			ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelSet, ID: cp.ID, Doc: cp})
			return nil
		},
	}

	var (
		root    *Mapping
		walkErr error
	)
	switch level {
	case scopeWeek:
		src, err := d.weeks.GetByID(ctx, id)
		if err != nil {
			return nil, sourceErr(err)
		}
		if src.OwnerID != caller {
			return nil, ErrOwnershipMismatch
		}
		siblings, err := d.weeks.GetByProgramID(ctx, src.ProgramID)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(siblings))
		for _, s := range siblings {
			names = append(names, s.Name)
		}
		cp := CloneWeek(src, Disambiguate(src.Name, names), now)
		root = &Mapping{OldID: src.ID, NewID: cp.ID}
		newIDs[src.ID] = cp.ID
		nodes[src.ID] = root
		ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelWeek, ID: cp.ID, Doc: cp})
		// Root hook stays nil: the root copy is already staged with its new name.
		walkErr = d.traverser.WalkWeek(ctx, *src, PreOrder, visitor)

	case scopeWorkout:
		src, err := d.workouts.GetByID(ctx, id)
		if err != nil {
			return nil, sourceErr(err)
		}
		if src.OwnerID != caller {
			return nil, ErrOwnershipMismatch
		}
		siblings, err := d.workouts.GetByWeekID(ctx, src.WeekID)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(siblings))
		for _, s := range siblings {
			names = append(names, s.Name)
		}
		cp := CloneWorkout(src, Disambiguate(src.Name, names), src.WeekID, now)
		root = &Mapping{OldID: src.ID, NewID: cp.ID}
		newIDs[src.ID] = cp.ID
		nodes[src.ID] = root
		ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelWorkout, ID: cp.ID, Doc: cp})
		visitor.Workout = nil
		walkErr = d.traverser.WalkWorkout(ctx, *src, PreOrder, visitor)

	case scopeExercise:
		src, err := d.exercises.GetByID(ctx, id)
		if err != nil {
			return nil, sourceErr(err)
		}
		if src.OwnerID != caller {
			return nil, ErrOwnershipMismatch
		}
		siblings, err := d.exercises.GetByWorkoutID(ctx, src.WorkoutID)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(siblings))
		for _, s := range siblings {
			names = append(names, s.Name)
		}
		cp := CloneExercise(src, Disambiguate(src.Name, names), src.WorkoutID, src.WeekID, now)
		root = &Mapping{OldID: src.ID, NewID: cp.ID}
		newIDs[src.ID] = cp.ID
		nodes[src.ID] = root
		ch.Stage(ctx, repository.Op{Kind: repository.OpPut, Level: repository.LevelExercise, ID: cp.ID, Doc: cp})
		visitor.Exercise = nil
		walkErr = d.traverser.WalkExercise(ctx, *src, PreOrder, visitor)
	}

	committed, finishErr := ch.Finish(ctx)
	res := &Result{
		Mapping:            root,
		StagedOps:          ch.Staged(),
		CommittedBatches:   committed,
		PartiallyCompleted: committed > 0 && (walkErr != nil || finishErr != nil),
	}
	if walkErr != nil {
		return res, walkErr
	}
	if finishErr != nil {
		return res, finishErr
	}
	return res, nil
}

// sourceErr maps a repository miss on the scope document to ErrSourceNotFound.
func sourceErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSourceNotFound
	}
	return err
}
