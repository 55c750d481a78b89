// Package delivery implements the OTP senders: an SMS gateway, an event bus
// publisher and a log-only sender for development.
package delivery

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// ErrNoRecipient is reported when no phone number is known for a user.
var ErrNoRecipient = errors.New("delivery: no recipient for user")

// Directory resolves the phone number an OTP is sent to.
type Directory interface {
	PhoneNumber(ctx context.Context, userID string) (string, error)
}

// ContactDirectory reads phone numbers from stored user contacts. The primary
// PHONE contact wins, otherwise the first PHONE contact by name.
type ContactDirectory struct {
	Store store.Store
}

func (d *ContactDirectory) PhoneNumber(ctx context.Context, userID string) (string, error) {
	contacts, err := d.Store.UserContacts().ListUserContacts(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, c := range contacts {
		if c.Type == domain.ContactPhone && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrNoRecipient
}

// LogSender only logs the message. The OTP value is logged at debug level.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) SendOtp(ctx context.Context, msg service.OtpMessage) (service.DeliveryResult, error) {
	s.Logger.InfoContext(ctx, "otp message",
		"otp_id", msg.OtpID,
		"otp_name", msg.OtpName,
		"user_id", msg.UserID,
		"operation_id", msg.OperationID,
		"resend", msg.Resend,
	)
	s.Logger.DebugContext(ctx, "otp value", "otp_id", msg.OtpID, "value", msg.Value)
	return service.DeliveryResult{Delivered: true, DeliveryID: msg.OtpID}, nil
}
