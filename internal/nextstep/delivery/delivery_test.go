package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store/drivers/sqlite"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
	"github.com/kevinburke/twilio-go"
	"github.com/stretchr/testify/require"
)

var (
	_ service.OtpSender = (*LogSender)(nil)
	_ service.OtpSender = (*TwilioSender)(nil)
	_ service.OtpSender = (*KafkaSender)(nil)
)

func testMessage() service.OtpMessage {
	return service.OtpMessage{
		OtpID:       "otp-1",
		OtpName:     "sms",
		UserID:      "user-1",
		OperationID: "op-1",
		Value:       "12345678",
		Language:    "en",
		ExpiresAt:   time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
	}
}

type fakeMessages struct {
	sent []url.Values
	err  error
}

func (f *fakeMessages) Create(_ context.Context, data url.Values) (*twilio.Message, error) {
	f.sent = append(f.sent, data)
	if f.err != nil {
		return nil, f.err
	}
	return &twilio.Message{Sid: "SM123"}, nil
}

func newContactDirectory(t *testing.T, contacts ...domain.UserContact) *ContactDirectory {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"user-1", "user-2"} {
		require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: id, Status: domain.UserActive, CreatedAt: now, UpdatedAt: now}))
	}
	for _, c := range contacts {
		c.CreatedAt, c.UpdatedAt = now, now
		require.NoError(t, st.UserContacts().SaveUserContact(ctx, c))
	}
	return &ContactDirectory{Store: st}
}

func TestContactDirectory(t *testing.T) {
	dir := newContactDirectory(t,
		domain.UserContact{UserID: "user-1", Name: "a-work", Type: domain.ContactPhone, Value: "+61400000009"},
		domain.UserContact{UserID: "user-1", Name: "mobile", Type: domain.ContactPhone, Value: "+61400000001", Primary: true},
		domain.UserContact{UserID: "user-1", Name: "email", Type: domain.ContactEmail, Value: "a@example.com", Primary: true},
		domain.UserContact{UserID: "user-2", Name: "b-home", Type: domain.ContactPhone, Value: "+61400000003"},
		domain.UserContact{UserID: "user-2", Name: "a-email", Type: domain.ContactEmail, Value: "b@example.com"},
	)
	ctx := context.Background()

	phone, err := dir.PhoneNumber(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "+61400000001", phone, "primary phone wins")

	phone, err = dir.PhoneNumber(ctx, "user-2")
	require.NoError(t, err)
	require.Equal(t, "+61400000003", phone, "email contacts are skipped")

	_, err = dir.PhoneNumber(ctx, "user-3")
	require.ErrorIs(t, err, ErrNoRecipient)
}

func TestLogSender(t *testing.T) {
	s := &LogSender{Logger: slogx.Discard()}
	res, err := s.SendOtp(context.Background(), testMessage())
	require.NoError(t, err)
	require.True(t, res.Delivered)
	require.Equal(t, "otp-1", res.DeliveryID)
}

func TestTwilioSender(t *testing.T) {
	dir := newContactDirectory(t,
		domain.UserContact{UserID: "user-1", Name: "mobile", Type: domain.ContactPhone, Value: "+61400000001", Primary: true},
	)
	cfg := TwilioConfig{From: "+61400999999", Template: "code: %s"}

	t.Run("delivered", func(t *testing.T) {
		msgs := &fakeMessages{}
		s := newTwilioSender(msgs, cfg, dir, slogx.Discard())

		res, err := s.SendOtp(context.Background(), testMessage())
		require.NoError(t, err)
		require.True(t, res.Delivered)
		require.Equal(t, "SM123", res.DeliveryID)

		require.Len(t, msgs.sent, 1)
		require.Equal(t, "+61400999999", msgs.sent[0].Get("From"))
		require.Equal(t, "+61400000001", msgs.sent[0].Get("To"))
		require.Equal(t, "code: 12345678", msgs.sent[0].Get("Body"))
	})

	t.Run("gateway error is reported as data", func(t *testing.T) {
		msgs := &fakeMessages{err: errors.New("21211 invalid to number")}
		s := newTwilioSender(msgs, cfg, dir, slogx.Discard())

		res, err := s.SendOtp(context.Background(), testMessage())
		require.NoError(t, err)
		require.False(t, res.Delivered)
		require.Contains(t, res.ErrorMessage, "invalid to number")
	})

	t.Run("unknown recipient", func(t *testing.T) {
		msgs := &fakeMessages{}
		s := newTwilioSender(msgs, cfg, dir, slogx.Discard())

		msg := testMessage()
		msg.UserID = "user-9"
		res, err := s.SendOtp(context.Background(), msg)
		require.NoError(t, err)
		require.False(t, res.Delivered)
		require.Empty(t, msgs.sent)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewTwilioSender(TwilioConfig{}, dir, slogx.Discard())
		require.Error(t, err)
	})
}

func TestKafkaSender(t *testing.T) {
	t.Run("publishes event", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var ev OtpEvent
			if err := json.Unmarshal(val, &ev); err != nil {
				return err
			}
			if ev.OtpID != "otp-1" || ev.Value != "12345678" || ev.EventID == "" {
				return errors.New("unexpected event payload")
			}
			return nil
		})

		s := NewKafkaSender(producer, "nextstep.otp", slogx.Discard())
		res, err := s.SendOtp(context.Background(), testMessage())
		require.NoError(t, err)
		require.True(t, res.Delivered)
		require.Len(t, res.DeliveryID, 36)
		require.NoError(t, s.Close())
	})

	t.Run("broker failure is reported as data", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

		s := NewKafkaSender(producer, "nextstep.otp", slogx.Discard())
		res, err := s.SendOtp(context.Background(), testMessage())
		require.NoError(t, err)
		require.False(t, res.Delivered)
		require.NotEmpty(t, res.ErrorMessage)
		require.NoError(t, s.Close())
	})

	t.Run("no brokers", func(t *testing.T) {
		_, err := NewKafkaProducer(nil)
		require.Error(t, err)
	})
}
