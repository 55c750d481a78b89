package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // OTP expiry and operation timeout sweep (default: 1m)

	DatabaseFile  string // SQLite database file (default: ./nextstep.db)
	PepperFile    string // Pepper mixed into credential hashes (default: ./pepper)
	MasterKeyPath string // Key sealing AES_GCM protected values (default: ./master.key)
	SeedFile      string // Optional: YAML file provisioning configuration on startup

	APISecretFile string // HS256 secret for caller tokens (default: ./api.secret)
	Issuer        string // Optional: expected issuer of caller tokens

	E2EKey string // Optional: base64 AES key shared with clients for end-to-end encryption

	ResendDelay           time.Duration // Minimum delay between OTP messages (default: 1m)
	ShowRemainingAttempts bool          // Report remaining attempts in authentication responses (default: false)
	UseOriginalUsername   bool          // Keep the previous username when a credential is recreated (default: false)

	OtpSender        string // log, twilio or kafka (default: log)
	TwilioAccountSid string
	TwilioAuthToken  string
	TwilioFrom       string
	KafkaBrokers     []string
	KafkaTopic       string // (default: nextstep.otp)

	RedisAddr     string // Optional: share resend timestamps through Redis instead of the database
	RedisPassword string

	AfsURL   string // Optional: anti-fraud system base URL, empty disables AFS
	AfsToken string
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Minute),

		DatabaseFile:  getEnvOrDefault("NEXTSTEP_DATABASE_FILE", "nextstep.db"),
		PepperFile:    getEnvOrDefault("NEXTSTEP_PEPPER_FILE", "pepper"),
		MasterKeyPath: getEnvOrDefault("NEXTSTEP_MASTER_KEY_PATH", "master.key"),
		SeedFile:      os.Getenv("NEXTSTEP_SEED_FILE"),

		APISecretFile: getEnvOrDefault("NEXTSTEP_API_SECRET_FILE", "api.secret"),
		Issuer:        os.Getenv("NEXTSTEP_ISSUER"),

		E2EKey: os.Getenv("NEXTSTEP_E2E_KEY"),

		ResendDelay:           getEnvDurationOrDefault("NEXTSTEP_OTP_RESEND_DELAY", time.Minute),
		ShowRemainingAttempts: getEnvBoolOrDefault("NEXTSTEP_SHOW_REMAINING_ATTEMPTS", false),
		UseOriginalUsername:   getEnvBoolOrDefault("NEXTSTEP_USE_ORIGINAL_USERNAME", false),

		OtpSender:        getEnvOrDefault("NEXTSTEP_OTP_SENDER", "log"),
		TwilioAccountSid: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_FROM"),
		KafkaBrokers:     getEnvListOrDefault("KAFKA_BROKERS", nil),
		KafkaTopic:       getEnvOrDefault("KAFKA_OTP_TOPIC", "nextstep.otp"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AfsURL:   os.Getenv("NEXTSTEP_AFS_URL"),
		AfsToken: os.Getenv("NEXTSTEP_AFS_TOKEN"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping empty entries.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
