// Package httpapi serves the tracker over JSON HTTP under /api/v1.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/saadjs/fittrack/internal/service"
)

// UserHeader selects the user a request acts for.
const UserHeader = "X-User-ID"

type Options struct {
	// DefaultUser is used when a request carries no UserHeader. Empty means
	// the header is required.
	DefaultUser string
	// Registry receives the HTTP metrics and is served at /metrics. Nil
	// disables both.
	Registry *prometheus.Registry
}

type api struct {
	svc *service.Service
	log *zap.Logger
}

// NewRouter builds the gin engine with logging, metrics and every route.
func NewRouter(svc *service.Service, log *zap.Logger, opts Options) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	a := &api{svc: svc, log: log}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	if opts.Registry != nil {
		router.Use(NewHTTPMetrics(opts.Registry).Middleware())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1", userMiddleware(opts.DefaultUser))
	{
		v1.POST("/profile", a.initProfile)
		v1.GET("/profile", a.getProfile)
		v1.PATCH("/profile", a.updateProfile)

		goals := v1.Group("/goals")
		{
			goals.GET("/nutrition", a.getNutritionalGoals)
			goals.PUT("/nutrition", a.setNutritionalGoals)
			goals.GET("/weight", a.getWeightGoal)
			goals.PUT("/weight", a.setWeightGoal)
			goals.GET("/water", a.getWaterGoal)
			goals.PUT("/water", a.setWaterGoal)
		}

		food := v1.Group("/food")
		{
			food.GET("/:date", a.foodDay)
			food.POST("/:date/:meal", a.addFood)
			food.DELETE("/:date/:meal/:id", a.deleteFood)
		}
		foods := v1.Group("/foods")
		{
			foods.GET("/search", a.searchFoods)
			foods.GET("/custom", a.customFoods)
			foods.POST("/custom", a.addCustomFood)
			foods.DELETE("/custom/:id", a.deleteCustomFood)
		}

		exercise := v1.Group("/exercise")
		{
			exercise.GET("/:date", a.exerciseDay)
			exercise.GET("/:date/summary", a.exerciseSummary)
			exercise.POST("/:date", a.addExercise)
			exercise.DELETE("/:date/:id", a.deleteExercise)
		}
		exercises := v1.Group("/exercises")
		{
			exercises.GET("/catalog", a.exerciseCatalog)
			exercises.POST("/custom", a.addCustomExercise)
		}

		water := v1.Group("/water")
		{
			water.GET("", a.waterHistory)
			water.GET("/:date", a.water)
			water.POST("/:date/glasses", a.addGlass)
			water.DELETE("/:date/glasses", a.removeGlass)
			water.POST("/:date/reset", a.resetWater)
			water.DELETE("/:date", a.deleteWater)
		}

		measurements := v1.Group("/measurements")
		{
			measurements.GET("", a.listMeasurements)
			measurements.POST("", a.addMeasurement)
			measurements.DELETE("/:date", a.deleteMeasurement)
		}

		v1.GET("/dashboard", a.dashboard)
		v1.GET("/weekly", a.weekly)
		v1.GET("/achievements", a.achievements)
		v1.GET("/progress", a.weightProgress)
		v1.GET("/activity", a.recentActivity)

		v1.GET("/export", a.export)
		v1.POST("/import", a.importSnapshot)
	}
	return router
}
