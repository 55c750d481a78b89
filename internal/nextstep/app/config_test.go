package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "NEXTSTEP_OTP_RESEND_DELAY", "NEXTSTEP_OTP_SENDER", "NEXTSTEP_SHOW_REMAINING_ATTEMPTS", "KAFKA_OTP_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Minute, cfg.ResendDelay)
	require.Equal(t, "log", cfg.OtpSender)
	require.False(t, cfg.ShowRemainingAttempts)
	require.Equal(t, "nextstep.otp", cfg.KafkaTopic)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NEXTSTEP_OTP_RESEND_DELAY", "90")
	t.Setenv("HOUSEKEEPING_INTERVAL", "30s")
	t.Setenv("NEXTSTEP_SHOW_REMAINING_ATTEMPTS", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("NEXTSTEP_OTP_SENDER", "kafka")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 90*time.Second, cfg.ResendDelay)
	require.Equal(t, 30*time.Second, cfg.HousekeepingInterval)
	require.True(t, cfg.ShowRemainingAttempts)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "kafka", cfg.OtpSender)
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("NEXTSTEP_SHOW_REMAINING_ATTEMPTS", "maybe")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "soon")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.False(t, cfg.ShowRemainingAttempts)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}
