package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wezet/config"
	"wezet/services/availability"
	"wezet/utils"
)

// GetResolvedSlots returns the merged availability for a practitioner over a
// date range. Query params: from, to ("2006-01-02"), optional serviceId.
func (hb *HandlerBundle) GetResolvedSlots(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	from := c.Query("from")
	to := c.Query("to")
	serviceID := c.Query("serviceId")

	if from == "" || to == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "from and to query params are required")
		return
	}

	slots, err := hb.Resolver.ResolveSlots(c.Request.Context(), practitionerID, serviceID, from, to)
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetMonthSlots returns the resolved slots for a whole calendar month, the
// shape the booking calendar paints from.
func (hb *HandlerBundle) GetMonthSlots(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	serviceID := c.Query("serviceId")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "year must be a number")
		return
	}
	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "month must be 1-12")
		return
	}

	slots, err := hb.Resolver.ResolveMonth(c.Request.Context(), practitionerID, serviceID, year, time.Month(monthNum))
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetBookableStarts cuts the resolved slots for one date into session starts
// of the service's duration, dropping starts already in the past.
func (hb *HandlerBundle) GetBookableStarts(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	serviceID := c.Query("serviceId")
	date := c.Query("date")

	if serviceID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "serviceId and date query params are required")
		return
	}

	svc, err := hb.Directory.GetService(c.Request.Context(), serviceID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not found", "unknown service")
		return
	}

	slots, err := hb.Resolver.ResolveSlots(c.Request.Context(), practitionerID, serviceID, date, date)
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}

	starts := availability.BookableStarts(slots, svc.DurationMinutes, time.Now(), config.Timezone())
	hb.Logger.Debug("Bookable starts computed",
		zap.String("practitionerID", practitionerID),
		zap.String("date", date),
		zap.Int("count", len(starts)))
	c.JSON(http.StatusOK, gin.H{"starts": starts})
}
