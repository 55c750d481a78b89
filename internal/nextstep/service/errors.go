package service

import (
	"errors"
	"strings"
)

// ErrorKind groups error codes by how callers should react to them.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindAlreadyExists ErrorKind = "ALREADY_EXISTS"
	KindConflict      ErrorKind = "CONFLICT"
	KindValidation    ErrorKind = "VALIDATION"
	KindConfiguration ErrorKind = "CONFIGURATION"
	KindEncryption    ErrorKind = "ENCRYPTION"
)

// Error is the typed error every service returns. Two errors match under
// errors.Is when their codes are equal, so callers compare against the
// package sentinels regardless of message or details.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Details, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy carrying msg.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

// WithDetails returns a copy carrying the given failure reasons.
func (e *Error) WithDetails(details ...string) *Error {
	c := *e
	c.Details = append([]string(nil), details...)
	return &c
}

// Wrap returns a copy with err as the cause. The cause is kept for logs only.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// KindOf returns the kind of a service error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrUserNotFound                 = newError(KindNotFound, "USER_IDENTITY_NOT_FOUND", "user not found")
	ErrCredentialDefinitionNotFound = newError(KindNotFound, "CREDENTIAL_DEFINITION_NOT_FOUND", "credential definition not found")
	ErrCredentialPolicyNotFound     = newError(KindNotFound, "CREDENTIAL_POLICY_NOT_FOUND", "credential policy not found")
	ErrHashingConfigNotFound        = newError(KindNotFound, "HASHING_CONFIG_NOT_FOUND", "hashing config not found")
	ErrCredentialNotFound           = newError(KindNotFound, "CREDENTIAL_NOT_FOUND", "credential not found")
	ErrOtpDefinitionNotFound        = newError(KindNotFound, "OTP_DEFINITION_NOT_FOUND", "otp definition not found")
	ErrOtpPolicyNotFound            = newError(KindNotFound, "OTP_POLICY_NOT_FOUND", "otp policy not found")
	ErrOtpNotFound                  = newError(KindNotFound, "OTP_NOT_FOUND", "otp not found")
	ErrOperationNotFound            = newError(KindNotFound, "OPERATION_NOT_FOUND", "operation not found")
	ErrOperationNotConfigured       = newError(KindNotFound, "OPERATION_NOT_CONFIGURED", "operation is not configured")
	ErrAuthMethodNotFound           = newError(KindNotFound, "AUTH_METHOD_NOT_FOUND", "auth method not found")
	ErrUserContactNotFound          = newError(KindNotFound, "USER_CONTACT_NOT_FOUND", "user contact not found")

	ErrUserAlreadyExists            = newError(KindAlreadyExists, "USER_IDENTITY_ALREADY_EXISTS", "user already exists")
	ErrOperationAlreadyExists       = newError(KindAlreadyExists, "OPERATION_ALREADY_EXISTS", "operation already exists")
	ErrOperationConfigAlreadyExists = newError(KindAlreadyExists, "OPERATION_CONFIG_ALREADY_EXISTS", "operation config already exists")
	ErrAuthMethodAlreadyExists      = newError(KindAlreadyExists, "AUTH_METHOD_ALREADY_EXISTS", "auth method already exists")

	ErrOperationAlreadyFinished = newError(KindConflict, "OPERATION_ALREADY_FINISHED", "operation is already finished")
	ErrOperationAlreadyFailed   = newError(KindConflict, "OPERATION_ALREADY_FAILED", "operation is already failed")
	ErrOperationAlreadyCanceled = newError(KindConflict, "OPERATION_ALREADY_CANCELED", "operation is already canceled")
	ErrCredentialNotActive      = newError(KindConflict, "CREDENTIAL_NOT_ACTIVE", "credential is not active")
	ErrCredentialNotBlocked     = newError(KindConflict, "CREDENTIAL_NOT_BLOCKED", "credential is not blocked")
	ErrOtpNotActive             = newError(KindConflict, "OTP_NOT_ACTIVE", "otp is not active")
	ErrAuthMethodNotEnabled     = newError(KindConflict, "AUTH_METHOD_NOT_ENABLED", "auth method is not enabled for the user")

	ErrCredentialValidationFailed = newError(KindValidation, "CREDENTIAL_VALIDATION_FAILED", "credential validation failed")
	ErrInvalidRequest             = newError(KindValidation, "INVALID_REQUEST", "invalid request")

	ErrInvalidConfiguration = newError(KindConfiguration, "INVALID_CONFIGURATION", "invalid configuration")
	ErrEncryption           = newError(KindEncryption, "ENCRYPTION_FAILED", "encryption failed")
)
