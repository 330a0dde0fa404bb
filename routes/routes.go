package routes

import (
	"net/http"
	"time"

	"wezet/handlers"
	"wezet/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the public read side: resolved slots
// and bookable session starts.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/:practitionerID/slots", hb.GetResolvedSlots)
		api.GET("/:practitionerID/month", hb.GetMonthSlots)
		api.GET("/:practitionerID/starts", hb.GetBookableStarts)
	}
}

// RegisterScheduleRoutes registers the admin write side: weekly rules,
// exceptions, blocked dates and the rule-slot conversion.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.PUT("/:practitionerID/rules", hb.ReplaceWeeklySchedule)
		api.POST("/:practitionerID/exceptions", hb.AddException)
		api.DELETE("/:practitionerID/exceptions/:id", hb.DeleteException)
		api.POST("/:practitionerID/blocked-dates", hb.AddBlockedDate)
		api.DELETE("/:practitionerID/blocked-dates/:id", hb.RemoveBlockedDate)
		api.POST("/:practitionerID/convert-slot", hb.ConvertRuleSlot)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.CreateBooking)
		api.GET("/:id", hb.GetBooking)
		api.GET("/:id/checkout", hb.GetCheckoutIntent)
		api.POST("/:id/cancel", hb.CancelBooking)
		api.GET("/customer/:customerID", hb.ListCustomerBookings)

		// Admin-side lifecycle operations.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("/:id/complete", hb.CompleteBooking)
		admin.GET("/practitioner/:practitionerID", hb.ListPractitionerBookings)
	}
}

// RegisterWebhookRoutes registers the payment gateway callback. No auth
// middleware: the payload is authenticated by its Stripe signature.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhook)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm WEZET"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
}
