package domain

import "time"

type OtpStatus string

const (
	OtpActive   OtpStatus = "ACTIVE"
	OtpVerified OtpStatus = "VERIFIED"
	OtpBlocked  OtpStatus = "BLOCKED"
	OtpExpired  OtpStatus = "EXPIRED"
	OtpFailed   OtpStatus = "FAILED"
)

// Otp is a single one-time password, optionally bound to a user and an operation.
type Otp struct {
	ID                     string
	DefinitionID           string
	UserID                 *string
	CredentialDefinitionID *string
	OperationID            *string
	Value                  string // protected
	Salt                   []byte // HOTP seed the value was derived from
	Status                 OtpStatus
	OtpData                string
	AttemptCounter         int
	FailedAttemptCounter   int
	EncryptionAlgorithm    EncryptionAlgorithm
	CreatedAt              time.Time
	VerifiedAt             *time.Time
	BlockedAt              *time.Time
	ExpiresAt              time.Time
}
