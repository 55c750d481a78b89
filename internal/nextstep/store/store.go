package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrReferenced    = errors.New("store: still referenced")
)

// Store is the root data access interface. It exposes sub-repositories so a
// transaction-scoped Store can be handed to the same code as the root one.
type Store interface {
	Users() Users
	CredentialPolicies() CredentialPolicies
	HashingConfigs() HashingConfigs
	CredentialDefinitions() CredentialDefinitions
	Credentials() Credentials
	CredentialHistory() CredentialHistory
	OtpPolicies() OtpPolicies
	OtpDefinitions() OtpDefinitions
	Otps() Otps
	Operations() Operations
	OperationSteps() OperationSteps
	OperationConfigs() OperationConfigs
	MessageLog() MessageLog
	AuthMethods() AuthMethods
	UserAuthMethods() UserAuthMethods
	UserContacts() UserContacts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A nil return commits, anything
	// else rolls back. Writers are serialized, so a read-modify-write inside fn
	// always observes the latest committed row.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUser returns a user by id.
	GetUser(ctx context.Context, id string) (domain.User, error)

	// UpdateUserStatus changes the status and bumps updated_at.
	UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus, now time.Time) error
}

type CredentialPolicies interface {
	CreateCredentialPolicy(ctx context.Context, p domain.CredentialPolicy) error
	GetCredentialPolicy(ctx context.Context, id string) (domain.CredentialPolicy, error)
	GetCredentialPolicyByName(ctx context.Context, name string) (domain.CredentialPolicy, error)
}

type HashingConfigs interface {
	CreateHashingConfig(ctx context.Context, h domain.HashingConfig) error
	GetHashingConfig(ctx context.Context, id string) (domain.HashingConfig, error)
	GetHashingConfigByName(ctx context.Context, name string) (domain.HashingConfig, error)
}

type CredentialDefinitions interface {
	CreateCredentialDefinition(ctx context.Context, d domain.CredentialDefinition) error
	GetCredentialDefinition(ctx context.Context, id string) (domain.CredentialDefinition, error)
	GetCredentialDefinitionByName(ctx context.Context, name string) (domain.CredentialDefinition, error)
}

type Credentials interface {
	// CreateCredential inserts a credential; (definition, user) is unique.
	CreateCredential(ctx context.Context, c domain.Credential) error

	// UpdateCredential overwrites every mutable column of the row.
	UpdateCredential(ctx context.Context, c domain.Credential) error

	// GetCredential returns a credential by id.
	GetCredential(ctx context.Context, id string) (domain.Credential, error)

	// GetCredentialForUser returns the user's credential for a definition, in any status.
	GetCredentialForUser(ctx context.Context, userID, definitionID string) (domain.Credential, error)

	// ListCredentialsForUser returns all of a user's credentials ordered by creation.
	ListCredentialsForUser(ctx context.Context, userID string) ([]domain.Credential, error)

	// UsernameTaken reports whether another user holds username for the definition.
	// An empty excludeUserID checks every user.
	UsernameTaken(ctx context.Context, definitionID, username, excludeUserID string) (bool, error)

	// ResetSoftCounters unblocks BLOCKED_TEMPORARY credentials and zeroes every
	// soft counter, returning the number of rows touched.
	ResetSoftCounters(ctx context.Context, now time.Time) (int64, error)
}

type CredentialHistory interface {
	// AppendCredentialHistory inserts a history record.
	AppendCredentialHistory(ctx context.Context, h domain.CredentialHistory) error

	// ListRecentCredentialHistory returns up to limit records, newest first.
	ListRecentCredentialHistory(ctx context.Context, userID, definitionID string, limit int) ([]domain.CredentialHistory, error)
}

type OtpPolicies interface {
	CreateOtpPolicy(ctx context.Context, p domain.OtpPolicy) error
	GetOtpPolicy(ctx context.Context, id string) (domain.OtpPolicy, error)
}

type OtpDefinitions interface {
	CreateOtpDefinition(ctx context.Context, d domain.OtpDefinition) error
	GetOtpDefinition(ctx context.Context, id string) (domain.OtpDefinition, error)
	GetOtpDefinitionByName(ctx context.Context, name string) (domain.OtpDefinition, error)
}

type Otps interface {
	CreateOtp(ctx context.Context, o domain.Otp) error
	UpdateOtp(ctx context.Context, o domain.Otp) error
	GetOtp(ctx context.Context, id string) (domain.Otp, error)

	// ListOtpsForOperation returns the operation's OTPs, newest first.
	ListOtpsForOperation(ctx context.Context, operationID string) ([]domain.Otp, error)

	// ExpireOverdueOtps moves ACTIVE OTPs past their expiry to EXPIRED.
	ExpireOverdueOtps(ctx context.Context, now time.Time) (int64, error)
}

type Operations interface {
	// CreateOperation returns ErrAlreadyExists for a duplicate id.
	CreateOperation(ctx context.Context, o domain.Operation) error
	UpdateOperation(ctx context.Context, o domain.Operation) error
	GetOperation(ctx context.Context, id string) (domain.Operation, error)

	// FailTimedOutOperations fails non-terminal operations past their expiry.
	FailTimedOutOperations(ctx context.Context, now time.Time) (int64, error)
}

type OperationSteps interface {
	// AppendOperationStep stores the step with the next sequence number and returns it.
	AppendOperationStep(ctx context.Context, s domain.OperationStep) (int, error)
	ListOperationSteps(ctx context.Context, operationID string) ([]domain.OperationStep, error)
}

type OperationConfigs interface {
	CreateOperationConfig(ctx context.Context, c domain.OperationConfig) error
	GetOperationConfig(ctx context.Context, name string) (domain.OperationConfig, error)
	ListOperationConfigs(ctx context.Context) ([]domain.OperationConfig, error)

	// DeleteOperationConfig returns ErrReferenced while operations use the config.
	DeleteOperationConfig(ctx context.Context, name string) error
}

// MessageLog remembers when an OTP message was last delivered for a key.
type MessageLog interface {
	GetLastMessage(ctx context.Context, key string) (time.Time, error)
	SetLastMessage(ctx context.Context, key string, at time.Time) error
}

type AuthMethods interface {
	CreateAuthMethod(ctx context.Context, m domain.AuthMethodDefinition) error
	GetAuthMethod(ctx context.Context, method domain.AuthMethod) (domain.AuthMethodDefinition, error)

	// ListAuthMethods returns the registry ordered by order number.
	ListAuthMethods(ctx context.Context) ([]domain.AuthMethodDefinition, error)

	// DeleteAuthMethod returns ErrReferenced while user preferences use the method.
	DeleteAuthMethod(ctx context.Context, method domain.AuthMethod) error
}

type UserAuthMethods interface {
	// SetUserAuthMethod inserts or replaces the user's preference for a method.
	SetUserAuthMethod(ctx context.Context, m domain.UserAuthMethod) error
	ListUserAuthMethods(ctx context.Context, userID string) ([]domain.UserAuthMethod, error)
}

type UserContacts interface {
	// SaveUserContact inserts or replaces the contact keyed by (user, name).
	SaveUserContact(ctx context.Context, c domain.UserContact) error

	// ListUserContacts returns primary contacts first, then by name.
	ListUserContacts(ctx context.Context, userID string) ([]domain.UserContact, error)
	DeleteUserContact(ctx context.Context, userID, name string) error

	// ClearPrimaryContacts unsets the primary flag on the user's contacts of type t.
	ClearPrimaryContacts(ctx context.Context, userID string, t domain.ContactType, now time.Time) error
}
