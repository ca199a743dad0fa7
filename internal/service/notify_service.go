package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/nathanndk/BitHealth-parking-app/internal/config"
	"github.com/nathanndk/BitHealth-parking-app/internal/db"
)

// NotifyService sends reservation status emails and SMS. Delivery is best
// effort: a user with no contact details, or a provider failure, only
// produces a log line.
type NotifyService struct {
	cfg *config.Config
}

func NewNotifyService(cfg *config.Config) *NotifyService {
	return &NotifyService{cfg: cfg}
}

func (s *NotifyService) ReservationStatusChanged(user *db.User, res *db.Reservation) {
	subject := fmt.Sprintf("Your parking reservation #%d is %s", res.ID, res.Status)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour reservation #%d is now %s.\n\n"+
			"Check-in: %s\nCheck-out: %s\nPayment: %s\n\n"+
			"Thank you for parking with us.",
		user.Username, res.ID, res.Status,
		res.StartTime.Format("02 Jan 2006 15:04 MST"),
		res.EndTime.Format("02 Jan 2006 15:04 MST"),
		res.PaymentMethod,
	)

	if user.Email != "" {
		if err := s.sendEmail(user.Email, user.Username, subject, body); err != nil {
			log.Warn().Err(err).Int("reservation_id", res.ID).Msg("reservation email not sent")
		}
	}
	if user.Phone != "" {
		sms := fmt.Sprintf("Parking reservation #%d is now %s.", res.ID, res.Status)
		if err := s.sendSMS(user.Phone, sms); err != nil {
			log.Warn().Err(err).Int("reservation_id", res.ID).Msg("reservation SMS not sent")
		}
	}
}

func (s *NotifyService) sendEmail(toEmail, toName, subject, plainText string) error {
	if s.cfg.SendgridAPIKey == "" || s.cfg.SendgridFromEmail == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail(s.cfg.SendgridFromName, s.cfg.SendgridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	client := sendgrid.NewSendClient(s.cfg.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *NotifyService) sendSMS(to, body string) error {
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioFromNumber == "" {
		return fmt.Errorf("twilio not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.cfg.TwilioAccountSID,
		Password: s.cfg.TwilioAuthToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}
