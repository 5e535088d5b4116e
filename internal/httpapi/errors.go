package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/service"
)

// fail writes err as a JSON error. Store failures are logged and hidden
// behind a generic message.
func (a *api) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		a.log.Error("request error",
			zap.String("route", route(c)),
			zap.String("user_id", userID(c)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// waterResult writes a water change. A blocked step is a conflict that
// still reports the unchanged summary.
func (a *api) waterResult(c *gin.Context, ws aggregate.WaterSummary, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ws)
	case errors.Is(err, aggregate.ErrGoalReached), errors.Is(err, aggregate.ErrNegativeIntake):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "water": ws})
	default:
		a.fail(c, err)
	}
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
