package api

import (
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes single-document CRUD over the training hierarchy.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type CreateProgramRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProgramRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Archived    bool   `json:"archived"`
}

type ProgramResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateWeekRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
	Order int    `json:"order"`
}

type WeekResponse struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"programId"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateWorkoutRequest struct {
	Name       string `json:"name" binding:"required"`
	Notes      string `json:"notes"`
	DayOfWeek  *int   `json:"dayOfWeek" binding:"omitempty,min=1,max=7"`
	OrderIndex int    `json:"orderIndex"`
}

type WorkoutResponse struct {
	ID         string    `json:"id"`
	WeekID     string    `json:"weekId"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes,omitempty"`
	DayOfWeek  *int      `json:"dayOfWeek,omitempty"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateExerciseRequest struct {
	Name         string `json:"name" binding:"required"`
	ExerciseType string `json:"exerciseType" binding:"required,oneof=strength cardio timeBased bodyweight custom"`
	Notes        string `json:"notes"`
	OrderIndex   int    `json:"orderIndex"`
}

type ExerciseResponse struct {
	ID           string    `json:"id"`
	WorkoutID    string    `json:"workoutId"`
	Name         string    `json:"name"`
	ExerciseType string    `json:"exerciseType"`
	Notes        string    `json:"notes,omitempty"`
	OrderIndex   int       `json:"orderIndex"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SetRequest struct {
	SetNumber   int        `json:"setNumber" binding:"required,min=1"`
	Checked     bool       `json:"checked"`
	Reps        *int       `json:"reps"`
	Weight      *float64   `json:"weight"`
	Duration    *int       `json:"duration"`
	Distance    *float64   `json:"distance"`
	RestTime    *int       `json:"restTime"`
	Notes       string     `json:"notes"`
	CompletedAt *time.Time `json:"completedAt"`
}

type SetResponse struct {
	ID          string     `json:"id"`
	ExerciseID  string     `json:"exerciseId"`
	SetNumber   int        `json:"setNumber"`
	Checked     bool       `json:"checked"`
	Reps        *int       `json:"reps,omitempty"`
	Weight      *float64   `json:"weight,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	Distance    *float64   `json:"distance,omitempty"`
	RestTime    *int       `json:"restTime,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// --- Program Handlers ---

func (h *PlanHandler) CreateProgram(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	program, err := h.planService.CreateProgram(c.Request.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgramToResponse(program))
}

func (h *PlanHandler) GetPrograms(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	includeArchived := c.Query("includeArchived") == "true"
	programs, err := h.planService.GetPrograms(c.Request.Context(), ownerID, includeArchived)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]ProgramResponse, len(programs))
	for i := range programs {
		resp[i] = MapProgramToResponse(&programs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) GetProgram(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	program, err := h.planService.GetProgram(c.Request.Context(), ownerID, programID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

func (h *PlanHandler) UpdateProgram(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	program, err := h.planService.UpdateProgram(c.Request.Context(), ownerID, &domain.Program{
		ID:          programID,
		Name:        req.Name,
		Description: req.Description,
		Archived:    req.Archived,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// --- Week Handlers ---

func (h *PlanHandler) CreateWeek(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	week, err := h.planService.CreateWeek(c.Request.Context(), ownerID, programID, req.Name, req.Notes, req.Order)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWeekToResponse(week))
}

func (h *PlanHandler) GetWeeks(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	weeks, err := h.planService.GetWeeks(c.Request.Context(), ownerID, programID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]WeekResponse, len(weeks))
	for i := range weeks {
		resp[i] = MapWeekToResponse(&weeks[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) GetWeek(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	week, err := h.planService.GetWeek(c.Request.Context(), ownerID, weekID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWeekToResponse(week))
}

func (h *PlanHandler) UpdateWeek(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	week, err := h.planService.UpdateWeek(c.Request.Context(), ownerID, &domain.Week{
		ID:    weekID,
		Name:  req.Name,
		Notes: req.Notes,
		Order: req.Order,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWeekToResponse(week))
}

// --- Workout Handlers ---

func (h *PlanHandler) CreateWorkout(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.planService.CreateWorkout(c.Request.Context(), ownerID, weekID, req.Name, req.Notes, req.DayOfWeek, req.OrderIndex)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

func (h *PlanHandler) GetWorkouts(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	workouts, err := h.planService.GetWorkouts(c.Request.Context(), ownerID, weekID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		resp[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) GetWorkout(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	workout, err := h.planService.GetWorkout(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *PlanHandler) UpdateWorkout(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.planService.UpdateWorkout(c.Request.Context(), ownerID, &domain.Workout{
		ID:         workoutID,
		Name:       req.Name,
		Notes:      req.Notes,
		DayOfWeek:  req.DayOfWeek,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// --- Exercise Handlers ---

func (h *PlanHandler) CreateExercise(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise, err := h.planService.CreateExercise(c.Request.Context(), ownerID, workoutID, req.Name, domain.ExerciseType(req.ExerciseType), req.Notes, req.OrderIndex)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

func (h *PlanHandler) GetExercises(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exercises, err := h.planService.GetExercises(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		resp[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) GetExercise(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exercise, err := h.planService.GetExercise(c.Request.Context(), ownerID, exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *PlanHandler) UpdateExercise(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Notes      string `json:"notes"`
		OrderIndex int    `json:"orderIndex"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exercise, err := h.planService.UpdateExercise(c.Request.Context(), ownerID, &domain.Exercise{
		ID:         exerciseID,
		Name:       req.Name,
		Notes:      req.Notes,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// --- Set Handlers ---

func (h *PlanHandler) CreateSet(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	set, err := h.planService.CreateSet(c.Request.Context(), ownerID, exerciseID, setFromRequest(&req))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSetToResponse(set))
}

func (h *PlanHandler) GetSets(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sets, err := h.planService.GetSets(c.Request.Context(), ownerID, exerciseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	resp := make([]SetResponse, len(sets))
	for i := range sets {
		resp[i] = MapSetToResponse(&sets[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) UpdateSet(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	setID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	set := setFromRequest(&req)
	set.ID = setID
	updated, err := h.planService.UpdateSet(c.Request.Context(), ownerID, set)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSetToResponse(updated))
}

func (h *PlanHandler) DeleteSet(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	setID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.planService.DeleteSet(c.Request.Context(), ownerID, setID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Error Mapping ---

func (h *PlanHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound),
		errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrSetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidExerciseType),
		errors.Is(err, domain.ErrInconsistentMetrics):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Mappers ---

func setFromRequest(req *SetRequest) *domain.Set {
	return &domain.Set{
		SetNumber:   req.SetNumber,
		Checked:     req.Checked,
		Reps:        req.Reps,
		Weight:      req.Weight,
		Duration:    req.Duration,
		Distance:    req.Distance,
		RestTime:    req.RestTime,
		Notes:       req.Notes,
		CompletedAt: req.CompletedAt,
	}
}

func MapProgramToResponse(p *domain.Program) ProgramResponse {
	return ProgramResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Archived:    p.Archived,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func MapWeekToResponse(w *domain.Week) WeekResponse {
	return WeekResponse{
		ID:        w.ID.Hex(),
		ProgramID: w.ProgramID.Hex(),
		Name:      w.Name,
		Notes:     w.Notes,
		Order:     w.Order,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:         w.ID.Hex(),
		WeekID:     w.WeekID.Hex(),
		Name:       w.Name,
		Notes:      w.Notes,
		DayOfWeek:  w.DayOfWeek,
		OrderIndex: w.OrderIndex,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func MapExerciseToResponse(e *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:           e.ID.Hex(),
		WorkoutID:    e.WorkoutID.Hex(),
		Name:         e.Name,
		ExerciseType: string(e.ExerciseType),
		Notes:        e.Notes,
		OrderIndex:   e.OrderIndex,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func MapSetToResponse(s *domain.Set) SetResponse {
	return SetResponse{
		ID:          s.ID.Hex(),
		ExerciseID:  s.ExerciseID.Hex(),
		SetNumber:   s.SetNumber,
		Checked:     s.Checked,
		Reps:        s.Reps,
		Weight:      s.Weight,
		Duration:    s.Duration,
		Distance:    s.Distance,
		RestTime:    s.RestTime,
		Notes:       s.Notes,
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
