package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	directoryRepo "wezet/database/repository/directory"
	"wezet/services/availability"
	"wezet/services/booking"
	"wezet/utils"
)

// HandlerBundle holds the wired services backing the HTTP surface. It is
// assembled once in main and handed to the route registrar.
type HandlerBundle struct {
	Schedule  availability.ScheduleService
	Resolver  availability.SlotResolver
	Bookings  booking.Service
	Directory directoryRepo.DirectoryRepository
	Logger    *zap.Logger
}

// respondServiceError maps booking/availability service errors onto HTTP
// status codes so every handler reports failures the same way.
func (hb *HandlerBundle) respondServiceError(c *gin.Context, err error) {
	var bookingErr *booking.Error
	switch {
	case availability.IsValidationError(err):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	case errors.Is(err, availability.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.As(err, &bookingErr):
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, booking.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, booking.ErrSlotUnavailable),
			errors.Is(err, booking.ErrInvalidTransition):
			status = http.StatusConflict
		case errors.Is(err, booking.ErrCreditExhausted),
			errors.Is(err, booking.ErrCodeInvalid),
			errors.Is(err, booking.ErrCodeNotOwned):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, booking.ErrPaymentInitiationFailed):
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": bookingErr.Code, "message": bookingErr.Message})
	default:
		hb.Logger.Error("Unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
	}
}
