package domain

import "time"

// ConfigStatus applies to every configuration entity.
type ConfigStatus string

const (
	ConfigActive  ConfigStatus = "ACTIVE"
	ConfigRemoved ConfigStatus = "REMOVED"
)

type CredentialCategory string

const (
	CategoryPassword CredentialCategory = "PASSWORD"
	CategoryPIN      CredentialCategory = "PIN"
	CategoryOther    CredentialCategory = "OTHER"
)

type UsernameGenAlgorithm string

const (
	UsernameRandomDigits  UsernameGenAlgorithm = "RANDOM_DIGITS"
	UsernameRandomLetters UsernameGenAlgorithm = "RANDOM_LETTERS"
)

type CredentialGenAlgorithm string

const (
	GenerateRandomPassword CredentialGenAlgorithm = "RANDOM_PASSWORD"
	GenerateRandomPIN      CredentialGenAlgorithm = "RANDOM_PIN"
)

// CredentialPolicy holds the rules a credential definition enforces.
type CredentialPolicy struct {
	ID                      string
	Name                    string
	Description             string
	UsernameLengthMin       int
	UsernameLengthMax       int
	UsernameAllowedPattern  string // regexp, empty allows anything
	UsernameGenAlgorithm    UsernameGenAlgorithm
	UsernameGenLength       int
	CredentialLengthMin     int
	CredentialLengthMax     int
	RequireUppercase        bool
	RequireLowercase        bool
	RequireDigit            bool
	RequireSpecial          bool
	ProhibitedValues        []string
	LimitSoft               *int // failed attempts until BLOCKED_TEMPORARY
	LimitHard               *int // failed attempts until BLOCKED_PERMANENT
	CheckHistoryCount       int
	RotationEnabled         bool
	RotationDays            *int
	TemporaryExpirationTime *int // seconds
	CredentialGenAlgorithm  CredentialGenAlgorithm
	CredentialGenLength     int
	Status                  ConfigStatus
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type HashingAlgorithm string

const (
	HashingArgon2i  HashingAlgorithm = "ARGON_2I"
	HashingArgon2id HashingAlgorithm = "ARGON_2ID"
)

// HashingConfig parameterises argon2 for one-way credential protection.
type HashingConfig struct {
	ID          string
	Name        string
	Algorithm   HashingAlgorithm
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	Status      ConfigStatus
	CreatedAt   time.Time
}

// CredentialDefinition ties a credential to its policy and protection settings.
type CredentialDefinition struct {
	ID                                  string
	Name                                string
	Description                         string
	CredentialPolicyID                  string
	Category                            CredentialCategory
	EncryptionEnabled                   bool
	EncryptionAlgorithm                 EncryptionAlgorithm
	HashingConfigID                     *string
	E2EEncryptionEnabled                bool
	E2EEncryptionAlgorithm              string // e.g. AES
	E2EEncryptionCipherTransformation   string // e.g. AES/CBC/PKCS7Padding
	E2EEncryptionForTemporaryCredential bool
	Status                              ConfigStatus
	CreatedAt                           time.Time
	UpdatedAt                           time.Time
}

// OtpPolicy controls OTP length, lifetime and attempt budget.
type OtpPolicy struct {
	ID             string
	Name           string
	Length         int
	AttemptLimit   *int
	ExpirationTime int // seconds
	Status         ConfigStatus
	CreatedAt      time.Time
}

type OtpDefinition struct {
	ID                  string
	Name                string
	OtpPolicyID         string
	EncryptionEnabled   bool
	EncryptionAlgorithm EncryptionAlgorithm
	Status              ConfigStatus
	CreatedAt           time.Time
}
