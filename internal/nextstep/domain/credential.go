package domain

import "time"

type CredentialStatus string

const (
	CredentialActive           CredentialStatus = "ACTIVE"
	CredentialBlockedTemporary CredentialStatus = "BLOCKED_TEMPORARY"
	CredentialBlockedPermanent CredentialStatus = "BLOCKED_PERMANENT"
	CredentialRemoved          CredentialStatus = "REMOVED"
)

// Blocked reports whether the status is one of the two blocked states.
func (s CredentialStatus) Blocked() bool {
	return s == CredentialBlockedTemporary || s == CredentialBlockedPermanent
}

type CredentialType string

const (
	CredentialPermanent CredentialType = "PERMANENT"
	CredentialTemporary CredentialType = "TEMPORARY"
)

// EncryptionAlgorithm tags how a stored value can be reversed.
type EncryptionAlgorithm string

const (
	NoEncryption EncryptionAlgorithm = "NO_ENCRYPTION"
	AESGCM       EncryptionAlgorithm = "AES_GCM"
)

type ValidationMode string

const (
	NoValidation                  ValidationMode = "NO_VALIDATION"
	ValidateUsername              ValidationMode = "VALIDATE_USERNAME"
	ValidateCredential            ValidationMode = "VALIDATE_CREDENTIAL"
	ValidateUsernameAndCredential ValidationMode = "VALIDATE_USERNAME_AND_CREDENTIAL"
)

// ValidatesUsername reports whether username rules apply in this mode.
func (m ValidationMode) ValidatesUsername() bool {
	return m == ValidateUsername || m == ValidateUsernameAndCredential
}

// ValidatesCredential reports whether value rules apply in this mode.
func (m ValidationMode) ValidatesCredential() bool {
	return m == ValidateCredential || m == ValidateUsernameAndCredential
}

// Credential is a user's secret for one credential definition. Rows are never
// deleted; REMOVED is the terminal status.
type Credential struct {
	ID                       string
	DefinitionID             string
	UserID                   string
	Type                     CredentialType
	Username                 string
	Value                    string              // protected (hashed, sealed or plain)
	EncryptionAlgorithm      EncryptionAlgorithm // how Value is sealed
	HashingConfigID          *string             // set when Value is an argon2 hash
	Status                   CredentialStatus
	AttemptCounter           int
	FailedAttemptCounterSoft int
	FailedAttemptCounterHard int
	CreatedAt                time.Time
	ExpiresAt                *time.Time
	BlockedAt                *time.Time
	LastUpdatedAt            *time.Time
	LastCredentialChangeAt   *time.Time
	LastUsernameChangeAt     *time.Time
}

// CredentialHistory is an append-only record of a previous credential value.
type CredentialHistory struct {
	ID                  string
	UserID              string
	DefinitionID        string
	Username            string
	Value               string
	EncryptionAlgorithm EncryptionAlgorithm
	HashingConfigID     *string
	CreatedAt           time.Time
}

// ValidationFailure is a single reason a username or credential value was rejected.
type ValidationFailure string

const (
	UsernameEmpty                ValidationFailure = "USERNAME_EMPTY"
	UsernameTooShort             ValidationFailure = "USERNAME_TOO_SHORT"
	UsernameTooLong              ValidationFailure = "USERNAME_TOO_LONG"
	UsernameIllegalCharacters    ValidationFailure = "USERNAME_ILLEGAL_CHARACTERS"
	UsernameAlreadyExists        ValidationFailure = "USERNAME_ALREADY_EXISTS"
	CredentialEmpty              ValidationFailure = "CREDENTIAL_EMPTY"
	CredentialTooShort           ValidationFailure = "CREDENTIAL_TOO_SHORT"
	CredentialTooLong            ValidationFailure = "CREDENTIAL_TOO_LONG"
	CredentialMissingUppercase   ValidationFailure = "CREDENTIAL_MISSING_UPPERCASE"
	CredentialMissingLowercase   ValidationFailure = "CREDENTIAL_MISSING_LOWERCASE"
	CredentialMissingDigit       ValidationFailure = "CREDENTIAL_MISSING_DIGIT"
	CredentialMissingSpecial     ValidationFailure = "CREDENTIAL_MISSING_SPECIAL"
	CredentialUsernameIncluded   ValidationFailure = "CREDENTIAL_USERNAME_INCLUDED"
	CredentialHistoryCheckFailed ValidationFailure = "CREDENTIAL_HISTORY_CHECK_FAILED"
	CredentialProhibited         ValidationFailure = "CREDENTIAL_PROHIBITED"
)
