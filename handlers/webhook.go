package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"wezet/config"
	"wezet/utils"
)

const webhookBodyLimit = 65536

// StripeWebhook receives checkout events from Stripe. Only
// checkout.session.completed is acted on; everything else is acknowledged
// and dropped. Stripe retries on non-2xx, so the confirmation path must be
// idempotent against duplicate deliveries.
func (hb *HandlerBundle) StripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	var event stripe.Event
	if secret := config.AppConfig.StripeWebhookSecret; secret != "" {
		event, err = webhook.ConstructEvent(body, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			hb.Logger.Warn("Webhook signature verification failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "invalid signature", err.Error())
			return
		}
	} else if err := json.Unmarshal(body, &event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	bookingRef := session.ClientReferenceID
	if bookingRef == "" {
		bookingRef = session.Metadata["bookingRef"]
	}
	if bookingRef == "" {
		hb.Logger.Warn("Checkout session without booking reference", zap.String("sessionID", session.ID))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := hb.Bookings.HandlePaymentSucceeded(c.Request.Context(), bookingRef); err != nil {
		hb.respondServiceError(c, err)
		return
	}

	hb.Logger.Info("Payment confirmed via webhook",
		zap.String("bookingRef", bookingRef),
		zap.String("sessionID", session.ID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
