package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wezet/models"
	"wezet/services/availability"
	"wezet/utils"
)

// ReplaceWeeklySchedule swaps the full weekly rule set for one
// practitioner/service pair in a single transaction.
func (hb *HandlerBundle) ReplaceWeeklySchedule(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	var input struct {
		ServiceID string              `json:"serviceId"`
		Rules     []models.WeeklyRule `json:"rules"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := hb.Schedule.ReplaceWeeklySchedule(c.Request.Context(), practitionerID, input.ServiceID, input.Rules); err != nil {
		hb.respondServiceError(c, err)
		return
	}
	hb.Logger.Info("Weekly schedule replaced",
		zap.String("practitionerID", practitionerID),
		zap.String("serviceID", input.ServiceID),
		zap.Int("rules", len(input.Rules)))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AddException creates a one-off availability override for a single date.
func (hb *HandlerBundle) AddException(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	var ex models.AvailabilityException
	if err := c.ShouldBindJSON(&ex); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	ex.PractitionerID = practitionerID

	created, err := hb.Schedule.AddException(c.Request.Context(), ex)
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteException removes a one-off override by id.
func (hb *HandlerBundle) DeleteException(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	id := c.Param("id")

	if err := hb.Schedule.DeleteException(c.Request.Context(), practitionerID, id); err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddBlockedDate marks a whole date as unavailable regardless of rules or
// exceptions.
func (hb *HandlerBundle) AddBlockedDate(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	var block models.BlockedDate
	if err := c.ShouldBindJSON(&block); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	block.PractitionerID = practitionerID

	created, err := hb.Schedule.AddBlockedDate(c.Request.Context(), block)
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveBlockedDate lifts a block by id.
func (hb *HandlerBundle) RemoveBlockedDate(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	id := c.Param("id")

	if err := hb.Schedule.RemoveBlockedDate(c.Request.Context(), practitionerID, id); err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ConvertRuleSlot records an admin edit of a rule-derived slot as exceptions
// for that date, leaving the weekly rule itself untouched.
func (hb *HandlerBundle) ConvertRuleSlot(c *gin.Context) {
	practitionerID := c.Param("practitionerID")
	var input availability.ConvertSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.PractitionerID = practitionerID

	created, err := hb.Schedule.ConvertRuleSlotToException(c.Request.Context(), input)
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
