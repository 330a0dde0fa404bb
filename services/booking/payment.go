package booking

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"wezet/models"
)

// PaymentGateway opens a hosted checkout for a pending booking. The gateway
// is opaque to the lifecycle manager: it returns a redirect URL and the
// out-of-band success signal arrives later through the webhook handler.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
}

// StripeGateway implements PaymentGateway on Stripe Checkout. The global
// stripe.Key is set once at startup.
type StripeGateway struct {
	SuccessURL string
	CancelURL  string
	Logger     *zap.Logger
}

// NewStripeGateway constructs a StripeGateway.
func NewStripeGateway(successURL, cancelURL string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Logger:     logger,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.SuccessURL),
		CancelURL:         stripe.String(g.CancelURL),
		ClientReferenceID: stripe.String(req.BookingRef),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata("bookingRef", req.BookingRef)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}

	if g.Logger != nil {
		g.Logger.Info("checkout session created",
			zap.String("bookingRef", req.BookingRef),
			zap.String("sessionID", sess.ID))
	}
	return &models.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
