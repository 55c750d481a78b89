package nextstepsdk

import "time"

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description,omitempty"`
	Details          []string `json:"details,omitempty"`
}

type HealthChecks struct {
	Database string            `json:"database"`
	Extra    map[string]string `json:"extra,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Operations
// ============================================================================

type CreateOperationRequest struct {
	OperationName         string `json:"operationName"`
	OperationID           string `json:"operationId,omitempty"`
	OperationData         string `json:"operationData,omitempty"`
	ExternalTransactionID string `json:"externalTransactionId,omitempty"`
	UserID                string `json:"userId,omitempty"`
	OrganizationID        string `json:"organizationId,omitempty"`
}

type OperationStep struct {
	Seq         int       `json:"seq"`
	AuthMethod  string    `json:"authMethod"`
	StepResult  string    `json:"authStepResult"`
	Result      string    `json:"authResult"`
	Instruments []string  `json:"authInstruments,omitempty"`
	CreatedAt   time.Time `json:"timestampCreated"`
}

type StepOptions struct {
	PasswordRequired bool `json:"passwordRequired"`
	OtpRequired      bool `json:"otpRequired"`
}

type Operation struct {
	OperationID           string          `json:"operationId"`
	OperationName         string          `json:"operationName"`
	OperationData         string          `json:"operationData,omitempty"`
	ExternalTransactionID string          `json:"externalTransactionId,omitempty"`
	UserID                *string         `json:"userId,omitempty"`
	OrganizationID        string          `json:"organizationId,omitempty"`
	State                 string          `json:"state"`
	Result                string          `json:"result"`
	ChosenAuthMethod      string          `json:"chosenAuthMethod,omitempty"`
	AuthMethods           []string        `json:"authMethods"`
	StepIndex             int             `json:"stepIndex"`
	FailedAuthCount       int             `json:"failedAuthCount"`
	StepOptions           *StepOptions    `json:"stepOptions,omitempty"`
	CertificateVerified   bool            `json:"certificateVerified"`
	CancelReason          string          `json:"cancelReason,omitempty"`
	Steps                 []OperationStep `json:"steps"`
	CreatedAt             time.Time       `json:"timestampCreated"`
	UpdatedAt             time.Time       `json:"timestampUpdated"`
	ExpiresAt             time.Time       `json:"timestampExpires"`
}

type InitStepResponse struct {
	OperationID      string `json:"operationId"`
	PasswordRequired bool   `json:"passwordRequired"`
	OtpRequired      bool   `json:"otpRequired"`
	ResendDelay      int    `json:"smsResendDelay"`
}

type AuthenticateRequest struct {
	AuthMethod      string `json:"authMethod"`
	UserID          string `json:"userId,omitempty"`
	CredentialName  string `json:"credentialName,omitempty"`
	CredentialValue string `json:"credentialValue,omitempty"`
	OtpID           string `json:"otpId,omitempty"`
	OtpValue        string `json:"otpValue,omitempty"`
}

type AuthenticateResponse struct {
	OperationID              string `json:"operationId"`
	UserID                   string `json:"userId,omitempty"`
	AuthenticationResult     string `json:"authenticationResult"`
	AuthResult               string `json:"authResult"`
	StepResult               string `json:"authStepResult"`
	NextAuthMethod           string `json:"nextAuthMethod,omitempty"`
	CredentialStatus         string `json:"credentialStatus,omitempty"`
	OtpStatus                string `json:"otpStatus,omitempty"`
	RemainingAttempts        *int   `json:"remainingAttempts,omitempty"`
	OperationFailed          bool   `json:"operationFailed"`
	CredentialChangeRequired bool   `json:"credentialChangeRequired"`
	ErrorMessage             string `json:"errorMessage,omitempty"`
}

// ============================================================================
// OTPs
// ============================================================================

type CreateOtpRequest struct {
	UserID         string `json:"userId,omitempty"`
	OtpName        string `json:"otpName"`
	CredentialName string `json:"credentialName,omitempty"`
	OtpData        string `json:"otpData,omitempty"`
	OperationID    string `json:"operationId,omitempty"`
}

type CreateOtpResponse struct {
	OtpID     string    `json:"otpId"`
	OtpValue  string    `json:"otpValue"`
	ExpiresAt time.Time `json:"timestampExpires"`
}

type SendOtpRequest struct {
	CreateOtpRequest
	Language string `json:"language,omitempty"`
	Resend   bool   `json:"resend"`
}

type SendOtpResponse struct {
	OtpID        string `json:"otpId,omitempty"`
	Delivered    bool   `json:"delivered"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// ============================================================================
// Administration
// ============================================================================

type User struct {
	UserID    string    `json:"userId"`
	Status    string    `json:"userIdentityStatus"`
	CreatedAt time.Time `json:"timestampCreated"`
	UpdatedAt time.Time `json:"timestampLastUpdated"`
}

type CreateCredentialRequest struct {
	CredentialName string `json:"credentialName"`
	Type           string `json:"credentialType,omitempty"`
	Username       string `json:"username,omitempty"`
	Value          string `json:"credentialValue,omitempty"`
	ValidationMode string `json:"validationMode,omitempty"`
}

type Credential struct {
	CredentialName           string     `json:"credentialName"`
	Category                 string     `json:"credentialCategory"`
	UserID                   string     `json:"userId"`
	Type                     string     `json:"credentialType"`
	Username                 string     `json:"username"`
	Value                    string     `json:"credentialValue,omitempty"`
	Status                   string     `json:"credentialStatus"`
	AttemptCounter           int        `json:"attemptCounter"`
	FailedAttemptCounterSoft int        `json:"failedAttemptCounterSoft"`
	FailedAttemptCounterHard int        `json:"failedAttemptCounterHard"`
	CredentialChangeRequired bool       `json:"credentialChangeRequired"`
	CreatedAt                time.Time  `json:"timestampCreated"`
	ExpiresAt                *time.Time `json:"timestampExpires,omitempty"`
	BlockedAt                *time.Time `json:"timestampBlocked,omitempty"`
}

type OperationConfig struct {
	OperationName string    `json:"operationName"`
	TemplateID    string    `json:"templateId"`
	AuthMethods   []string  `json:"authMethods"`
	AfsEnabled    bool      `json:"afsEnabled"`
	AfsConfigID   string    `json:"afsConfigId,omitempty"`
	Timeout       int       `json:"expirationTime"` // seconds
	MaxAuthFails  int       `json:"maxAuthFails"`
	CreatedAt     time.Time `json:"timestampCreated,omitzero"`
}

type UserContact struct {
	UserID    string    `json:"userId,omitempty"`
	Name      string    `json:"contactName,omitempty"`
	Type      string    `json:"contactType"`
	Value     string    `json:"contactValue"`
	Primary   bool      `json:"primary"`
	CreatedAt time.Time `json:"timestampCreated,omitzero"`
	UpdatedAt time.Time `json:"timestampLastUpdated,omitzero"`
}

type UserAuthMethod struct {
	AuthMethod       string            `json:"authMethod"`
	OrderNumber      int               `json:"orderNumber"`
	CheckUserPrefs   bool              `json:"checkUserPrefs"`
	UserPrefsDefault bool              `json:"userPrefsDefault"`
	HasUserInterface bool              `json:"hasUserInterface"`
	DisplayNameKey   string            `json:"displayNameKey,omitempty"`
	Enabled          bool              `json:"enabled"`
	Config           map[string]string `json:"config,omitempty"`
}
