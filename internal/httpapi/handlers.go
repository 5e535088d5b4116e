package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saadjs/fittrack/internal/service"
)

// date reads the :date path parameter or the date query; "today" and an
// empty value mean the current local date.
func (a *api) date(c *gin.Context) string {
	d := c.Param("date")
	if d == "" {
		d = c.Query("date")
	}
	if d = strings.TrimSpace(d); d == "" || strings.EqualFold(d, "today") {
		return a.svc.Today()
	}
	return d
}

func (a *api) initProfile(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	created, err := a.svc.InitProfile(c.Request.Context(), userID(c), req.Username, req.Email)
	if err != nil {
		a.fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"created": created})
}

func (a *api) getProfile(c *gin.Context) {
	p, err := a.svc.Profile(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) updateProfile(c *gin.Context) {
	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	p, err := a.svc.UpdateProfile(c.Request.Context(), userID(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *api) getNutritionalGoals(c *gin.Context) {
	g, err := a.svc.NutritionalGoals(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (a *api) setNutritionalGoals(c *gin.Context) {
	var req service.NutritionalGoalsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	g, err := a.svc.SetNutritionalGoals(c.Request.Context(), userID(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (a *api) getWeightGoal(c *gin.Context) {
	g, err := a.svc.WeightGoal(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (a *api) setWeightGoal(c *gin.Context) {
	var req service.WeightGoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	g, err := a.svc.SetWeightGoal(c.Request.Context(), userID(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (a *api) getWaterGoal(c *gin.Context) {
	g, err := a.svc.WaterGoal(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": g})
}

func (a *api) setWaterGoal(c *gin.Context) {
	var req struct {
		Goal int `json:"goal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	if err := a.svc.SetWaterGoal(c.Request.Context(), userID(c), req.Goal); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": req.Goal})
}

func (a *api) foodDay(c *gin.Context) {
	meals, err := a.svc.FoodDay(c.Request.Context(), userID(c), a.date(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (a *api) addFood(c *gin.Context) {
	var req service.FoodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	id, err := a.svc.AddFood(c.Request.Context(), userID(c), a.date(c), c.Param("meal"), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (a *api) deleteFood(c *gin.Context) {
	if err := a.svc.DeleteFood(c.Request.Context(), userID(c), a.date(c), c.Param("meal"), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) searchFoods(c *gin.Context) {
	res, err := a.svc.SearchFoods(c.Request.Context(), userID(c), c.Query("q"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *api) customFoods(c *gin.Context) {
	foods, err := a.svc.CustomFoods(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (a *api) addCustomFood(c *gin.Context) {
	var req service.FoodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	id, err := a.svc.AddCustomFood(c.Request.Context(), userID(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (a *api) deleteCustomFood(c *gin.Context) {
	if err := a.svc.DeleteCustomFood(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) exerciseDay(c *gin.Context) {
	entries, err := a.svc.ExerciseDay(c.Request.Context(), userID(c), a.date(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (a *api) exerciseSummary(c *gin.Context) {
	sum, err := a.svc.ExerciseSummary(c.Request.Context(), userID(c), a.date(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (a *api) addExercise(c *gin.Context) {
	var req service.ExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	id, err := a.svc.AddExercise(c.Request.Context(), userID(c), a.date(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (a *api) deleteExercise(c *gin.Context) {
	if err := a.svc.DeleteExercise(c.Request.Context(), userID(c), a.date(c), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) exerciseCatalog(c *gin.Context) {
	list, err := a.svc.ExerciseCatalog(c.Request.Context(), userID(c), c.Query("q"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) addCustomExercise(c *gin.Context) {
	var req service.CustomExerciseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	id, err := a.svc.AddCustomExercise(c.Request.Context(), userID(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (a *api) water(c *gin.Context) {
	ws, err := a.svc.Water(c.Request.Context(), userID(c), a.date(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (a *api) addGlass(c *gin.Context) {
	ws, err := a.svc.AddGlass(c.Request.Context(), userID(c), a.date(c))
	a.waterResult(c, ws, err)
}

func (a *api) removeGlass(c *gin.Context) {
	ws, err := a.svc.RemoveGlass(c.Request.Context(), userID(c), a.date(c))
	a.waterResult(c, ws, err)
}

func (a *api) resetWater(c *gin.Context) {
	ws, err := a.svc.ResetWater(c.Request.Context(), userID(c), a.date(c))
	a.waterResult(c, ws, err)
}

func (a *api) deleteWater(c *gin.Context) {
	if err := a.svc.DeleteWater(c.Request.Context(), userID(c), a.date(c)); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) waterHistory(c *gin.Context) {
	hist, err := a.svc.WaterHistory(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

func (a *api) listMeasurements(c *gin.Context) {
	list, err := a.svc.ListMeasurements(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *api) addMeasurement(c *gin.Context) {
	var req service.MeasurementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	m, err := a.svc.AddMeasurement(c.Request.Context(), userID(c), req)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (a *api) deleteMeasurement(c *gin.Context) {
	if err := a.svc.DeleteMeasurement(c.Request.Context(), userID(c), c.Param("date")); err != nil {
		a.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *api) dashboard(c *gin.Context) {
	d, err := a.svc.Dashboard(c.Request.Context(), userID(c), a.date(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *api) weekly(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = n
	}
	points, err := a.svc.Weekly(c.Request.Context(), userID(c), days)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (a *api) achievements(c *gin.Context) {
	r, err := a.svc.Achievements(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (a *api) weightProgress(c *gin.Context) {
	wp, err := a.svc.WeightProgress(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wp)
}

func (a *api) recentActivity(c *gin.Context) {
	feed, err := a.svc.RecentActivity(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (a *api) export(c *gin.Context) {
	snap, err := a.svc.Export(c.Request.Context(), userID(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// importSnapshot takes the snapshot as the body; ?mode= and ?dry_run=true
// select the import options.
func (a *api) importSnapshot(c *gin.Context) {
	mode, err := service.ParseImportMode(c.Query("mode"))
	if err != nil {
		a.fail(c, err)
		return
	}
	var snap service.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		badBody(c, err)
		return
	}
	opts := service.ImportOptions{Mode: mode, DryRun: c.Query("dry_run") == "true"}
	report, err := a.svc.Import(c.Request.Context(), userID(c), snap, opts)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) && report.Conflicts > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": verr.Error(), "report": report})
			return
		}
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
