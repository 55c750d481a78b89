package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/kevinburke/twilio-go"
)

// messageCreator is the part of the Twilio messages API the sender uses.
type messageCreator interface {
	Create(ctx context.Context, data url.Values) (*twilio.Message, error)
}

// TwilioConfig configures the SMS sender.
type TwilioConfig struct {
	AccountSid string
	AuthToken  string
	From       string

	// Template is a fmt format receiving the OTP value.
	Template string
}

// TwilioSender delivers OTP values as SMS through Twilio.
type TwilioSender struct {
	messages  messageCreator
	directory Directory
	from      string
	template  string
	logger    *slog.Logger
}

func NewTwilioSender(cfg TwilioConfig, directory Directory, logger *slog.Logger) (*TwilioSender, error) {
	if cfg.AccountSid == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, errors.New("twilio: account sid, auth token and sender number are required")
	}
	client := twilio.NewClient(cfg.AccountSid, cfg.AuthToken, nil)
	return newTwilioSender(client.Messages, cfg, directory, logger), nil
}

func newTwilioSender(messages messageCreator, cfg TwilioConfig, directory Directory, logger *slog.Logger) *TwilioSender {
	tmpl := cfg.Template
	if tmpl == "" {
		tmpl = "Your verification code is %s"
	}
	return &TwilioSender{
		messages:  messages,
		directory: directory,
		from:      cfg.From,
		template:  tmpl,
		logger:    logger,
	}
}

func (s *TwilioSender) SendOtp(ctx context.Context, msg service.OtpMessage) (service.DeliveryResult, error) {
	to, err := s.directory.PhoneNumber(ctx, msg.UserID)
	if err != nil {
		if errors.Is(err, ErrNoRecipient) {
			return service.DeliveryResult{ErrorMessage: "no phone number registered"}, nil
		}
		return service.DeliveryResult{}, fmt.Errorf("resolve phone number: %w", err)
	}

	data := url.Values{}
	data.Set("From", s.from)
	data.Set("To", to)
	data.Set("Body", fmt.Sprintf(s.template, msg.Value))

	sms, err := s.messages.Create(ctx, data)
	if err != nil {
		s.logger.WarnContext(ctx, "twilio send failed", "otp_id", msg.OtpID, "err", err)
		return service.DeliveryResult{ErrorMessage: err.Error()}, nil
	}

	s.logger.InfoContext(ctx, "otp sms sent", "otp_id", msg.OtpID, "sid", sms.Sid)
	return service.DeliveryResult{Delivered: true, DeliveryID: sms.Sid}, nil
}
