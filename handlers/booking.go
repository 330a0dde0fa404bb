package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wezet/services/booking"
	"wezet/utils"
)

// CreateBooking places one booking. Depending on the payment path the
// response carries either a confirmed booking (credit / code / free) or a
// pending booking plus a checkout URL (card).
func (hb *HandlerBundle) CreateBooking(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, intent, err := hb.Bookings.CreateBooking(c.Request.Context(), input)
	if err != nil {
		// A gateway failure still leaves a pending booking behind; the
		// client needs its id to resume checkout instead of booking the
		// slot twice.
		if created != nil && errors.Is(err, booking.ErrPaymentInitiationFailed) {
			hb.Logger.Warn("checkout initiation failed, returning pending booking",
				zap.String("bookingID", created.ID))
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   booking.ErrPaymentInitiationFailed.Code,
				"message": booking.ErrPaymentInitiationFailed.Message,
				"booking": created,
			})
			return
		}
		hb.respondServiceError(c, err)
		return
	}

	hb.Logger.Info("Booking created",
		zap.String("bookingID", created.ID),
		zap.String("status", created.Status),
		zap.String("paymentMethod", created.PaymentMethod))

	resp := gin.H{"booking": created}
	if intent != nil {
		resp["checkout"] = intent
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBooking returns a single booking by id.
func (hb *HandlerBundle) GetBooking(c *gin.Context) {
	b, err := hb.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetCheckoutIntent re-serves the cached checkout URL for a pending card
// booking, so a customer who closed the tab can resume payment.
func (hb *HandlerBundle) GetCheckoutIntent(c *gin.Context) {
	intent, err := hb.Bookings.GetCheckoutIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// CancelBooking moves a pending booking to cancelled.
func (hb *HandlerBundle) CancelBooking(c *gin.Context) {
	if err := hb.Bookings.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// CompleteBooking marks a confirmed booking as completed after the session
// took place.
func (hb *HandlerBundle) CompleteBooking(c *gin.Context) {
	if err := hb.Bookings.CompleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// ListPractitionerBookings lists bookings for a practitioner, optionally
// bounded by from/to dates.
func (hb *HandlerBundle) ListPractitionerBookings(c *gin.Context) {
	bookings, err := hb.Bookings.ListForPractitioner(
		c.Request.Context(), c.Param("practitionerID"), c.Query("from"), c.Query("to"))
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListCustomerBookings lists a customer's bookings, newest first.
func (hb *HandlerBundle) ListCustomerBookings(c *gin.Context) {
	bookings, err := hb.Bookings.ListForCustomer(c.Request.Context(), c.Param("customerID"))
	if err != nil {
		hb.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
