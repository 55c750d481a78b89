package domain

import "time"

type OperationState string

const (
	OperationInitiated  OperationState = "INITIATED"
	OperationInProgress OperationState = "IN_PROGRESS"
	OperationDone       OperationState = "DONE"
	OperationFailed     OperationState = "FAILED"
	OperationCanceled   OperationState = "CANCELED"
)

// Terminal reports whether no further step is accepted.
func (s OperationState) Terminal() bool {
	return s == OperationDone || s == OperationFailed || s == OperationCanceled
}

// AuthResult is the outcome of an authentication step for the whole operation.
type AuthResult string

const (
	AuthContinue AuthResult = "CONTINUE"
	AuthFailed   AuthResult = "FAILED"
	AuthDone     AuthResult = "DONE"
)

// AuthenticationResult is the outcome of verifying a single factor.
type AuthenticationResult string

const (
	AuthenticationSucceeded AuthenticationResult = "SUCCEEDED"
	AuthenticationFailed    AuthenticationResult = "FAILED"
)

type AuthMethod string

const (
	MethodUsernamePassword AuthMethod = "USERNAME_PASSWORD_AUTH"
	MethodSMSKey           AuthMethod = "SMS_KEY"
	MethodLoginSCA         AuthMethod = "LOGIN_SCA"
	MethodApprovalSCA      AuthMethod = "APPROVAL_SCA"
	MethodConsent          AuthMethod = "CONSENT"
)

// AuthStepResult is what a single step reported, recorded in the step history
// and forwarded to the anti-fraud system.
type AuthStepResult string

const (
	StepConfirmed        AuthStepResult = "CONFIRMED"
	StepCanceled         AuthStepResult = "CANCELED"
	StepAuthFailed       AuthStepResult = "AUTH_FAILED"
	StepAuthMethodFailed AuthStepResult = "AUTH_METHOD_FAILED"
)

type AuthInstrument string

const (
	InstrumentCredential AuthInstrument = "CREDENTIAL"
	InstrumentOtpKey     AuthInstrument = "OTP_KEY"
	InstrumentClientCert AuthInstrument = "CLIENT_CERTIFICATE"
)

// StepOptions says which factors the current step still requires.
type StepOptions struct {
	PasswordRequired bool `json:"password_required"`
	OtpRequired      bool `json:"otp_required"`
}

// Operation is a business transaction authenticated through a sequence of steps.
type Operation struct {
	ID                    string
	Name                  string
	Data                  string
	ExternalTransactionID string
	UserID                *string
	OrganizationID        string
	State                 OperationState
	Result                AuthResult
	ChosenAuthMethod      AuthMethod
	StepIndex             int
	FailedAuthCount       int
	StepOptions           *StepOptions // set by initStep when a factor was stepped down
	CertificateVerified   bool
	CancelReason          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ExpiresAt             time.Time
}

// OperationStep is an append-only record of one authentication step.
type OperationStep struct {
	OperationID string
	Seq         int
	AuthMethod  AuthMethod
	StepResult  AuthStepResult
	Result      AuthResult
	Instruments []AuthInstrument
	CreatedAt   time.Time
}

// Operation templates drive which anti-fraud actions apply.
const (
	TemplateLogin    = "login"
	TemplateApproval = "approval"
)

// OperationConfig describes how operations of one name are authenticated.
type OperationConfig struct {
	OperationName string
	TemplateID    string
	AuthMethods   []AuthMethod // ordered steps
	AfsEnabled    bool
	AfsConfigID   string
	Timeout       time.Duration
	MaxAuthFails  int
	CreatedAt     time.Time
}
