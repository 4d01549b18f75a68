package api

import (
	"fittrack/fitness-tracker/internal/cascade"
	"fittrack/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	engine *cascade.Engine,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	cascadeHandler := NewCascadeHandler(engine, planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware(), RequestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Program Routes ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", planHandler.CreateProgram)
			programGroup.GET("", planHandler.GetPrograms)
			programGroup.GET("/:id", planHandler.GetProgram)
			programGroup.PUT("/:id", planHandler.UpdateProgram)
			programGroup.POST("/:id/weeks", planHandler.CreateWeek)
			programGroup.GET("/:id/weeks", planHandler.GetWeeks)
		}

		// --- Week Routes ---
		weekGroup := protected.Group("/weeks")
		{
			weekGroup.GET("/:id", planHandler.GetWeek)
			weekGroup.PUT("/:id", planHandler.UpdateWeek)
			weekGroup.POST("/:id/workouts", planHandler.CreateWorkout)
			weekGroup.GET("/:id/workouts", planHandler.GetWorkouts)
			weekGroup.POST("/:id/duplicate", cascadeHandler.DuplicateWeek)
			weekGroup.DELETE("/:id", cascadeHandler.DeleteWeek)
			weekGroup.GET("/:id/descendants", cascadeHandler.WeekDescendants)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/:id", planHandler.GetWorkout)
			workoutGroup.PUT("/:id", planHandler.UpdateWorkout)
			workoutGroup.POST("/:id/exercises", planHandler.CreateExercise)
			workoutGroup.GET("/:id/exercises", planHandler.GetExercises)
			workoutGroup.POST("/:id/duplicate", cascadeHandler.DuplicateWorkout)
			workoutGroup.DELETE("/:id", cascadeHandler.DeleteWorkout)
			workoutGroup.GET("/:id/descendants", cascadeHandler.WorkoutDescendants)
		}

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/:id", planHandler.GetExercise)
			exerciseGroup.PUT("/:id", planHandler.UpdateExercise)
			exerciseGroup.POST("/:id/sets", planHandler.CreateSet)
			exerciseGroup.GET("/:id/sets", planHandler.GetSets)
			exerciseGroup.POST("/:id/duplicate", cascadeHandler.DuplicateExercise)
			exerciseGroup.DELETE("/:id", cascadeHandler.DeleteExercise)
			exerciseGroup.GET("/:id/descendants", cascadeHandler.ExerciseDescendants)
		}

		// --- Set Routes (leaves, no cascade) ---
		setGroup := protected.Group("/sets")
		{
			setGroup.PUT("/:id", planHandler.UpdateSet)
			setGroup.DELETE("/:id", planHandler.DeleteSet)
		}
	}
}
