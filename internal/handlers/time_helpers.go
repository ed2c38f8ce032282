package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
)

// parseDayQuery reads a "YYYY-MM-DD" query parameter, falling back to def
// when the parameter is missing.
func parseDayQuery(c *gin.Context, name string, def time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return dateutil.DayStartUTC(def), nil
	}
	return dateutil.ParseDay(raw)
}
