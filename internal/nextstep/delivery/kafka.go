package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/google/uuid"
)

// OtpEvent is published for every OTP message. Downstream notification
// services render and deliver it.
type OtpEvent struct {
	EventID     string    `json:"eventId"`
	OtpID       string    `json:"otpId"`
	OtpName     string    `json:"otpName"`
	UserID      string    `json:"userId"`
	OperationID string    `json:"operationId,omitempty"`
	Value       string    `json:"value"`
	OtpData     string    `json:"otpData,omitempty"`
	Language    string    `json:"language,omitempty"`
	Resend      bool      `json:"resend"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// KafkaSender publishes OTP messages to a Kafka topic.
type KafkaSender struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaProducer builds a sync producer that waits for all in-sync replicas.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3
	return sarama.NewSyncProducer(brokers, cfg)
}

func NewKafkaSender(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaSender {
	return &KafkaSender{producer: producer, topic: topic, logger: logger}
}

func (s *KafkaSender) SendOtp(ctx context.Context, msg service.OtpMessage) (service.DeliveryResult, error) {
	event := OtpEvent{
		EventID:     uuid.NewString(),
		OtpID:       msg.OtpID,
		OtpName:     msg.OtpName,
		UserID:      msg.UserID,
		OperationID: msg.OperationID,
		Value:       msg.Value,
		OtpData:     msg.OtpData,
		Language:    msg.Language,
		Resend:      msg.Resend,
		ExpiresAt:   msg.ExpiresAt.UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return service.DeliveryResult{}, fmt.Errorf("marshal otp event: %w", err)
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(msg.UserID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-id"), Value: []byte(event.EventID)},
		},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "kafka publish failed", "otp_id", msg.OtpID, "err", err)
		return service.DeliveryResult{ErrorMessage: err.Error()}, nil
	}

	s.logger.InfoContext(ctx, "otp event published",
		"otp_id", msg.OtpID,
		"event_id", event.EventID,
		"partition", partition,
		"offset", offset,
	)
	return service.DeliveryResult{Delivered: true, DeliveryID: event.EventID}, nil
}

func (s *KafkaSender) Close() error {
	return s.producer.Close()
}
