package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"wezet/models"
)

// EmailConfirmationService sends booking confirmations over SMTP.
type EmailConfirmationService struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewEmailConfirmationService constructs the SMTP-backed sender.
func NewEmailConfirmationService(host string, port int, username, password, from string, logger *zap.Logger) *EmailConfirmationService {
	return &EmailConfirmationService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

func (s *EmailConfirmationService) SendBookingConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error {
	if payload.Recipient == "" {
		return fmt.Errorf("confirmation for booking %s has no recipient", payload.BookingID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", payload.Recipient)
	m.SetHeader("Subject", fmt.Sprintf("Booking confirmed: %s on %s", payload.ServiceName, payload.Date))
	m.SetBody("text/html", confirmationBody(payload))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation for booking %s: %w", payload.BookingID, err)
	}
	if s.logger != nil {
		s.logger.Info("confirmation email sent",
			zap.String("bookingID", payload.BookingID),
			zap.String("recipient", payload.Recipient))
	}
	return nil
}

func confirmationBody(p models.BookingConfirmationPayload) string {
	price := "included in your bundle"
	if p.Price > 0 {
		price = fmt.Sprintf("%.2f %s", p.Price, p.Currency)
	}
	return fmt.Sprintf(
		`<p>Your booking is confirmed.</p>
<p><strong>%s</strong> with %s<br>%s at %s<br>Price: %s</p>
<p>Booking reference: %s</p>`,
		p.ServiceName, p.PractitionerName, p.Date, p.StartTime, price, p.BookingID,
	)
}
