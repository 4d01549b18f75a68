package api

import (
	"fittrack/fitness-tracker/internal/cascade"
	"fittrack/fitness-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CascadeHandler exposes subtree operations: duplicate, cascade delete, and
// descendant counts for delete-confirmation dialogs. The plan service backs
// the delete pre-check, which stands in for store-level access rules.
type CascadeHandler struct {
	engine      *cascade.Engine
	planService service.PlanService
}

// NewCascadeHandler creates a new CascadeHandler.
func NewCascadeHandler(engine *cascade.Engine, planService service.PlanService) *CascadeHandler {
	return &CascadeHandler{engine: engine, planService: planService}
}

// --- Response Structs ---

// MappingResponse mirrors cascade.Mapping with hex-encoded IDs.
type MappingResponse struct {
	OldID    string            `json:"oldId"`
	NewID    string            `json:"newId"`
	Children []MappingResponse `json:"children,omitempty"`
}

type DuplicateResponse struct {
	Mapping            *MappingResponse `json:"mapping"`
	StagedOps          int              `json:"stagedOps"`
	CommittedBatches   int              `json:"committedBatches"`
	PartiallyCompleted bool             `json:"partiallyCompleted"`
}

type DescendantsResponse struct {
	Workouts  int64 `json:"workouts"`
	Exercises int64 `json:"exercises"`
	Sets      int64 `json:"sets"`
}

// scopeForLevel builds the engine scope for a path level and document ID.
func scopeForLevel(level string, id primitive.ObjectID) cascade.Scope {
	switch level {
	case "workout":
		return cascade.WorkoutScope(id)
	case "exercise":
		return cascade.ExerciseScope(id)
	default:
		return cascade.WeekScope(id)
	}
}

// --- Handler Methods ---

// DuplicateWeek copies a week and everything below it.
func (h *CascadeHandler) DuplicateWeek(c *gin.Context)     { h.duplicate(c, "week") }
func (h *CascadeHandler) DuplicateWorkout(c *gin.Context)  { h.duplicate(c, "workout") }
func (h *CascadeHandler) DuplicateExercise(c *gin.Context) { h.duplicate(c, "exercise") }

func (h *CascadeHandler) duplicate(c *gin.Context, level string) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res, err := h.engine.Duplicate(c.Request.Context(), ownerID, scopeForLevel(level, id))
	if err != nil {
		switch {
		case errors.Is(err, cascade.ErrSourceNotFound):
			abortWithError(c, http.StatusNotFound, "Source document not found")
		case errors.Is(err, cascade.ErrOwnershipMismatch):
			abortWithError(c, http.StatusForbidden, "Access denied to this resource")
		case errors.Is(err, cascade.ErrInvalidScope):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			// A mid-operation batch failure leaves a partial copy; report what
			// committed so the client can surface it.
			log.WithError(err).Error("duplicate failed")
			if res != nil && res.PartiallyCompleted {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":  "duplication failed after partial completion",
					"result": mapDuplicateResult(res),
				})
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Duplication failed")
		}
		return
	}

	c.JSON(http.StatusCreated, mapDuplicateResult(res))
}

// DeleteWeek removes a week and everything below it.
func (h *CascadeHandler) DeleteWeek(c *gin.Context)     { h.delete(c, "week") }
func (h *CascadeHandler) DeleteWorkout(c *gin.Context)  { h.delete(c, "workout") }
func (h *CascadeHandler) DeleteExercise(c *gin.Context) { h.delete(c, "exercise") }

func (h *CascadeHandler) delete(c *gin.Context, level string) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Access check before the engine runs; the engine itself trusts its
	// caller for deletes.
	if err := h.authorize(c, ownerID, level, id); err != nil {
		h.mapAccessError(c, err)
		return
	}

	if err := h.engine.Delete(c.Request.Context(), scopeForLevel(level, id)); err != nil {
		switch {
		case errors.Is(err, cascade.ErrSourceNotFound):
			abortWithError(c, http.StatusNotFound, "Source document not found")
		case errors.Is(err, cascade.ErrInvalidScope):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("cascade delete failed")
			abortWithError(c, http.StatusInternalServerError, "Delete failed; already-deleted documents stay deleted, retry to finish")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Descendants returns counts of documents below the scope. Counting always
// succeeds; failures degrade to zeros.
func (h *CascadeHandler) WeekDescendants(c *gin.Context)     { h.descendants(c, "week") }
func (h *CascadeHandler) WorkoutDescendants(c *gin.Context)  { h.descendants(c, "workout") }
func (h *CascadeHandler) ExerciseDescendants(c *gin.Context) { h.descendants(c, "exercise") }

func (h *CascadeHandler) descendants(c *gin.Context, level string) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.authorize(c, ownerID, level, id); err != nil {
		h.mapAccessError(c, err)
		return
	}

	counts := h.engine.Count(c.Request.Context(), scopeForLevel(level, id))
	c.JSON(http.StatusOK, DescendantsResponse{
		Workouts:  counts.Workouts,
		Exercises: counts.Exercises,
		Sets:      counts.Sets,
	})
}

// authorize verifies the document exists and belongs to the caller.
func (h *CascadeHandler) authorize(c *gin.Context, ownerID primitive.ObjectID, level string, id primitive.ObjectID) error {
	ctx := c.Request.Context()
	switch level {
	case "workout":
		_, err := h.planService.GetWorkout(ctx, ownerID, id)
		return err
	case "exercise":
		_, err := h.planService.GetExercise(ctx, ownerID, id)
		return err
	default:
		_, err := h.planService.GetWeek(ctx, ownerID, id)
		return err
	}
}

func (h *CascadeHandler) mapAccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Mappers ---

func mapDuplicateResult(res *cascade.Result) DuplicateResponse {
	return DuplicateResponse{
		Mapping:            mapMapping(res.Mapping),
		StagedOps:          res.StagedOps,
		CommittedBatches:   res.CommittedBatches,
		PartiallyCompleted: res.PartiallyCompleted,
	}
}

func mapMapping(m *cascade.Mapping) *MappingResponse {
	if m == nil {
		return nil
	}
	resp := &MappingResponse{
		OldID: m.OldID.Hex(),
		NewID: m.NewID.Hex(),
	}
	for _, child := range m.Children {
		if mapped := mapMapping(child); mapped != nil {
			resp.Children = append(resp.Children, *mapped)
		}
	}
	return resp
}
