package http

import (
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
)

// ErrorResponse is the body of every error reply.
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

// Operations

type CreateOperationRequest struct {
	OperationName         string `json:"operationName" validate:"required,max=256"`
	OperationID           string `json:"operationId,omitempty" validate:"omitempty,max=256"`
	OperationData         string `json:"operationData,omitempty"`
	ExternalTransactionID string `json:"externalTransactionId,omitempty" validate:"omitempty,max=256"`
	UserID                string `json:"userId,omitempty" validate:"omitempty,max=256"`
	OrganizationID        string `json:"organizationId,omitempty" validate:"omitempty,max=256"`
}

type AssignUserRequest struct {
	UserID         string `json:"userId" validate:"required,max=256"`
	OrganizationID string `json:"organizationId,omitempty" validate:"omitempty,max=256"`
}

type CancelOperationRequest struct {
	Reason string `json:"reason" validate:"required,max=256"`
}

type OperationStepResponse struct {
	Seq         int                     `json:"seq"`
	AuthMethod  domain.AuthMethod       `json:"authMethod"`
	StepResult  domain.AuthStepResult   `json:"authStepResult"`
	Result      domain.AuthResult       `json:"authResult"`
	Instruments []domain.AuthInstrument `json:"authInstruments,omitempty"`
	CreatedAt   time.Time               `json:"timestampCreated"`
}

type OperationResponse struct {
	OperationID           string                  `json:"operationId"`
	OperationName         string                  `json:"operationName"`
	OperationData         string                  `json:"operationData,omitempty"`
	ExternalTransactionID string                  `json:"externalTransactionId,omitempty"`
	UserID                *string                 `json:"userId,omitempty"`
	OrganizationID        string                  `json:"organizationId,omitempty"`
	State                 domain.OperationState   `json:"state"`
	Result                domain.AuthResult       `json:"result"`
	ChosenAuthMethod      domain.AuthMethod       `json:"chosenAuthMethod,omitempty"`
	AuthMethods           []domain.AuthMethod     `json:"authMethods"`
	StepIndex             int                     `json:"stepIndex"`
	FailedAuthCount       int                     `json:"failedAuthCount"`
	StepOptions           *domain.StepOptions     `json:"stepOptions,omitempty"`
	CertificateVerified   bool                    `json:"certificateVerified"`
	CancelReason          string                  `json:"cancelReason,omitempty"`
	Steps                 []OperationStepResponse `json:"steps"`
	CreatedAt             time.Time               `json:"timestampCreated"`
	UpdatedAt             time.Time               `json:"timestampUpdated"`
	ExpiresAt             time.Time               `json:"timestampExpires"`
}

func toOperationResponse(d service.OperationDetail) OperationResponse {
	out := OperationResponse{
		OperationID:           d.ID,
		OperationName:         d.Name,
		OperationData:         d.Data,
		ExternalTransactionID: d.ExternalTransactionID,
		UserID:                d.UserID,
		OrganizationID:        d.OrganizationID,
		State:                 d.State,
		Result:                d.Result,
		ChosenAuthMethod:      d.ChosenAuthMethod,
		AuthMethods:           d.AuthMethods,
		StepIndex:             d.StepIndex,
		FailedAuthCount:       d.FailedAuthCount,
		StepOptions:           d.StepOptions,
		CertificateVerified:   d.CertificateVerified,
		CancelReason:          d.CancelReason,
		Steps:                 make([]OperationStepResponse, len(d.Steps)),
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
		ExpiresAt:             d.ExpiresAt,
	}
	for i, s := range d.Steps {
		out.Steps[i] = OperationStepResponse{
			Seq:         s.Seq,
			AuthMethod:  s.AuthMethod,
			StepResult:  s.StepResult,
			Result:      s.Result,
			Instruments: s.Instruments,
			CreatedAt:   s.CreatedAt,
		}
	}
	return out
}

type InitStepResponse struct {
	OperationID      string `json:"operationId"`
	PasswordRequired bool   `json:"passwordRequired"`
	OtpRequired      bool   `json:"otpRequired"`
	ResendDelay      int    `json:"smsResendDelay"` // seconds
}

// Authentication

type AuthenticateRequest struct {
	AuthMethod      domain.AuthMethod `json:"authMethod" validate:"required"`
	UserID          string            `json:"userId,omitempty" validate:"omitempty,max=256"`
	CredentialName  string            `json:"credentialName,omitempty" validate:"omitempty,max=256"`
	CredentialValue string            `json:"credentialValue,omitempty" validate:"omitempty,max=1024"`
	OtpID           string            `json:"otpId,omitempty" validate:"omitempty,max=256"`
	OtpValue        string            `json:"otpValue,omitempty" validate:"omitempty,max=64"`
}

type AuthenticateResponse struct {
	OperationID              string                      `json:"operationId"`
	UserID                   string                      `json:"userId,omitempty"`
	AuthenticationResult     domain.AuthenticationResult `json:"authenticationResult"`
	AuthResult               domain.AuthResult           `json:"authResult"`
	StepResult               domain.AuthStepResult       `json:"authStepResult"`
	NextAuthMethod           domain.AuthMethod           `json:"nextAuthMethod,omitempty"`
	CredentialStatus         domain.CredentialStatus     `json:"credentialStatus,omitempty"`
	OtpStatus                domain.OtpStatus            `json:"otpStatus,omitempty"`
	RemainingAttempts        *int                        `json:"remainingAttempts,omitempty"`
	OperationFailed          bool                        `json:"operationFailed"`
	CredentialChangeRequired bool                        `json:"credentialChangeRequired"`
	ErrorMessage             string                      `json:"errorMessage,omitempty"`
}

func toAuthenticateResponse(r service.AuthenticationResponse) AuthenticateResponse {
	out := AuthenticateResponse{
		OperationID:              r.OperationID,
		UserID:                   r.UserID,
		AuthenticationResult:     r.AuthenticationResult,
		AuthResult:               r.AuthResult,
		StepResult:               r.StepResult,
		NextAuthMethod:           r.NextAuthMethod,
		OtpStatus:                r.OtpStatus,
		OperationFailed:          r.OperationFailed,
		CredentialChangeRequired: r.CredentialChangeRequired,
		ErrorMessage:             r.ErrorMessage,
	}
	if r.ShowRemainingAttempts {
		out.RemainingAttempts = r.RemainingAttempts
		out.CredentialStatus = r.CredentialStatus
	}
	return out
}

// OTPs

type CreateOtpRequest struct {
	UserID         string `json:"userId,omitempty" validate:"omitempty,max=256"`
	OtpName        string `json:"otpName" validate:"required,max=256"`
	CredentialName string `json:"credentialName,omitempty" validate:"omitempty,max=256"`
	OtpData        string `json:"otpData,omitempty"`
	OperationID    string `json:"operationId,omitempty" validate:"omitempty,max=256"`
}

func (r CreateOtpRequest) toService() service.CreateOtpRequest {
	return service.CreateOtpRequest{
		UserID:         r.UserID,
		OtpName:        r.OtpName,
		CredentialName: r.CredentialName,
		OtpData:        r.OtpData,
		OperationID:    r.OperationID,
	}
}

type CreateOtpResponse struct {
	OtpID     string    `json:"otpId"`
	OtpValue  string    `json:"otpValue"`
	ExpiresAt time.Time `json:"timestampExpires"`
}

type SendOtpRequest struct {
	CreateOtpRequest
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
	Resend   bool   `json:"resend"`
}

type SendOtpResponse struct {
	OtpID        string `json:"otpId,omitempty"`
	Delivered    bool   `json:"delivered"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type VerifyOtpRequest struct {
	OtpID       string `json:"otpId,omitempty" validate:"required_without=OperationID,max=256"`
	OperationID string `json:"operationId,omitempty" validate:"required_without=OtpID,max=256"`
	OtpValue    string `json:"otpValue" validate:"required,max=64"`
}

type VerifyOtpResponse struct {
	OtpID             string                      `json:"otpId"`
	UserID            *string                     `json:"userId,omitempty"`
	Result            domain.AuthenticationResult `json:"otpVerificationResult"`
	Status            domain.OtpStatus            `json:"otpStatus"`
	RemainingAttempts *int                        `json:"remainingAttempts,omitempty"`
	OperationFailed   bool                        `json:"operationFailed"`
}

type OtpResponse struct {
	OtpID                string           `json:"otpId"`
	OtpName              string           `json:"otpName"`
	UserID               *string          `json:"userId,omitempty"`
	CredentialName       string           `json:"credentialName,omitempty"`
	OperationID          *string          `json:"operationId,omitempty"`
	OtpData              string           `json:"otpData,omitempty"`
	Status               domain.OtpStatus `json:"otpStatus"`
	AttemptCounter       int              `json:"attemptCounter"`
	FailedAttemptCounter int              `json:"failedAttemptCounter"`
	CreatedAt            time.Time        `json:"timestampCreated"`
	VerifiedAt           *time.Time       `json:"timestampVerified,omitempty"`
	BlockedAt            *time.Time       `json:"timestampBlocked,omitempty"`
	ExpiresAt            time.Time        `json:"timestampExpires"`
}

func toOtpResponse(d service.OtpDetail) OtpResponse {
	return OtpResponse{
		OtpID:                d.OtpID,
		OtpName:              d.OtpName,
		UserID:               d.UserID,
		CredentialName:       d.CredentialName,
		OperationID:          d.OperationID,
		OtpData:              d.OtpData,
		Status:               d.Status,
		AttemptCounter:       d.AttemptCounter,
		FailedAttemptCounter: d.FailedAttemptCounter,
		CreatedAt:            d.CreatedAt,
		VerifiedAt:           d.VerifiedAt,
		BlockedAt:            d.BlockedAt,
		ExpiresAt:            d.ExpiresAt,
	}
}

type OtpListResponse struct {
	Otps []OtpResponse `json:"otps"`
}

// Credentials

type CredentialHistoryEntry struct {
	Username string `json:"username" validate:"required,max=256"`
	Value    string `json:"credentialValue" validate:"required,max=1024"`
}

type CreateCredentialRequest struct {
	CredentialName string                   `json:"credentialName" validate:"required,max=256"`
	Type           domain.CredentialType    `json:"credentialType,omitempty" validate:"omitempty,oneof=PERMANENT TEMPORARY"`
	Username       string                   `json:"username,omitempty" validate:"omitempty,max=256"`
	Value          string                   `json:"credentialValue,omitempty" validate:"omitempty,max=1024"`
	ValidationMode domain.ValidationMode    `json:"validationMode,omitempty" validate:"omitempty,oneof=NO_VALIDATION VALIDATE_USERNAME VALIDATE_CREDENTIAL VALIDATE_USERNAME_AND_CREDENTIAL"`
	History        []CredentialHistoryEntry `json:"credentialHistory,omitempty" validate:"omitempty,dive"`
}

type UpdateCredentialRequest struct {
	Type     domain.CredentialType   `json:"credentialType,omitempty" validate:"omitempty,oneof=PERMANENT TEMPORARY"`
	Username string                  `json:"username,omitempty" validate:"omitempty,max=256"`
	Value    string                  `json:"credentialValue,omitempty" validate:"omitempty,max=1024"`
	Status   domain.CredentialStatus `json:"credentialStatus,omitempty" validate:"omitempty,oneof=ACTIVE BLOCKED_TEMPORARY BLOCKED_PERMANENT REMOVED"`
}

type ResetCredentialRequest struct {
	Type domain.CredentialType `json:"credentialType,omitempty" validate:"omitempty,oneof=PERMANENT TEMPORARY"`
}

type ValidateCredentialRequest struct {
	UserID         string                `json:"userId" validate:"required,max=256"`
	CredentialName string                `json:"credentialName" validate:"required,max=256"`
	Username       string                `json:"username,omitempty" validate:"omitempty,max=256"`
	Value          string                `json:"credentialValue,omitempty" validate:"omitempty,max=1024"`
	ValidationMode domain.ValidationMode `json:"validationMode,omitempty" validate:"omitempty,oneof=NO_VALIDATION VALIDATE_USERNAME VALIDATE_CREDENTIAL VALIDATE_USERNAME_AND_CREDENTIAL"`
}

type ValidateCredentialResponse struct {
	ValidationResult string                     `json:"validationResult"`
	ValidationErrors []domain.ValidationFailure `json:"validationErrors,omitempty"`
}

type ChangeRequiredRequest struct {
	UserID         string  `json:"userId" validate:"required,max=256"`
	CredentialName string  `json:"credentialName" validate:"required,max=256"`
	Value          *string `json:"credentialValue,omitempty" validate:"omitempty,max=1024"`
}

type ChangeRequiredResponse struct {
	CredentialChangeRequired bool `json:"credentialChangeRequired"`
}

type CredentialResponse struct {
	CredentialName           string                    `json:"credentialName"`
	Category                 domain.CredentialCategory `json:"credentialCategory"`
	UserID                   string                    `json:"userId"`
	Type                     domain.CredentialType     `json:"credentialType"`
	Username                 string                    `json:"username"`
	Value                    string                    `json:"credentialValue,omitempty"`
	Status                   domain.CredentialStatus   `json:"credentialStatus"`
	AttemptCounter           int                       `json:"attemptCounter"`
	FailedAttemptCounterSoft int                       `json:"failedAttemptCounterSoft"`
	FailedAttemptCounterHard int                       `json:"failedAttemptCounterHard"`
	CredentialChangeRequired bool                      `json:"credentialChangeRequired"`
	CreatedAt                time.Time                 `json:"timestampCreated"`
	ExpiresAt                *time.Time                `json:"timestampExpires,omitempty"`
	BlockedAt                *time.Time                `json:"timestampBlocked,omitempty"`
	LastUpdatedAt            *time.Time                `json:"timestampLastUpdated,omitempty"`
	LastCredentialChangeAt   *time.Time                `json:"timestampLastCredentialChange,omitempty"`
	LastUsernameChangeAt     *time.Time                `json:"timestampLastUsernameChange,omitempty"`
}

func toCredentialResponse(d service.CredentialDetail) CredentialResponse {
	return CredentialResponse{
		CredentialName:           d.CredentialName,
		Category:                 d.Category,
		UserID:                   d.UserID,
		Type:                     d.Type,
		Username:                 d.Username,
		Status:                   d.Status,
		AttemptCounter:           d.AttemptCounter,
		FailedAttemptCounterSoft: d.FailedAttemptCounterSoft,
		FailedAttemptCounterHard: d.FailedAttemptCounterHard,
		CredentialChangeRequired: d.CredentialChangeRequired,
		CreatedAt:                d.CreatedAt,
		ExpiresAt:                d.ExpiresAt,
		BlockedAt:                d.BlockedAt,
		LastUpdatedAt:            d.LastUpdatedAt,
		LastCredentialChangeAt:   d.LastCredentialChangeAt,
		LastUsernameChangeAt:     d.LastUsernameChangeAt,
	}
}

func toCredentialSecretResponse(s service.CredentialSecret) CredentialResponse {
	out := toCredentialResponse(s.CredentialDetail)
	out.Value = s.Value
	return out
}

type CredentialListResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}

// Counters

type UpdateCounterRequest struct {
	AuthenticationResult service.CounterChange `json:"authenticationResult" validate:"required,oneof=SUCCEEDED FAILED BLOCKED"`
}

type ResetCountersResponse struct {
	ResetCounterCount int64 `json:"resetCounterCount"`
}

// Users

type CreateUserRequest struct {
	UserID string `json:"userId" validate:"required,max=256"`
}

type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"userIdentityStatus" validate:"required,oneof=ACTIVE BLOCKED REMOVED"`
}

type UserResponse struct {
	UserID    string            `json:"userId"`
	Status    domain.UserStatus `json:"userIdentityStatus"`
	CreatedAt time.Time         `json:"timestampCreated"`
	UpdatedAt time.Time         `json:"timestampLastUpdated"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{UserID: u.ID, Status: u.Status, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

type UserContactRequest struct {
	Type    domain.ContactType `json:"contactType" validate:"required,oneof=PHONE EMAIL OTHER"`
	Value   string             `json:"contactValue" validate:"required,max=256"`
	Primary bool               `json:"primary"`
}

type UserContactResponse struct {
	UserID    string             `json:"userId"`
	Name      string             `json:"contactName"`
	Type      domain.ContactType `json:"contactType"`
	Value     string             `json:"contactValue"`
	Primary   bool               `json:"primary"`
	CreatedAt time.Time          `json:"timestampCreated"`
	UpdatedAt time.Time          `json:"timestampLastUpdated"`
}

func toUserContactResponse(c domain.UserContact) UserContactResponse {
	return UserContactResponse{
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      c.Type,
		Value:     c.Value,
		Primary:   c.Primary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type UserContactListResponse struct {
	Contacts []UserContactResponse `json:"contacts"`
}

// Auth methods

type AuthMethodRequest struct {
	Method           domain.AuthMethod `json:"authMethod" validate:"required,oneof=USERNAME_PASSWORD_AUTH SMS_KEY LOGIN_SCA APPROVAL_SCA CONSENT"`
	OrderNumber      int               `json:"orderNumber" validate:"gte=0"`
	CheckUserPrefs   bool              `json:"checkUserPrefs"`
	UserPrefsDefault bool              `json:"userPrefsDefault"`
	HasUserInterface bool              `json:"hasUserInterface"`
	DisplayNameKey   string            `json:"displayNameKey,omitempty" validate:"max=256"`
}

type AuthMethodResponse struct {
	Method           domain.AuthMethod `json:"authMethod"`
	OrderNumber      int               `json:"orderNumber"`
	CheckUserPrefs   bool              `json:"checkUserPrefs"`
	UserPrefsDefault bool              `json:"userPrefsDefault"`
	HasUserInterface bool              `json:"hasUserInterface"`
	DisplayNameKey   string            `json:"displayNameKey,omitempty"`
	CreatedAt        time.Time         `json:"timestampCreated"`
}

func toAuthMethodResponse(m domain.AuthMethodDefinition) AuthMethodResponse {
	return AuthMethodResponse{
		Method:           m.Method,
		OrderNumber:      m.OrderNumber,
		CheckUserPrefs:   m.CheckUserPrefs,
		UserPrefsDefault: m.UserPrefsDefault,
		HasUserInterface: m.HasUserInterface,
		DisplayNameKey:   m.DisplayNameKey,
		CreatedAt:        m.CreatedAt,
	}
}

type AuthMethodListResponse struct {
	AuthMethods []AuthMethodResponse `json:"authMethods"`
}

type EnableUserAuthMethodRequest struct {
	Config map[string]string `json:"config,omitempty"`
}

type UserAuthMethodResponse struct {
	AuthMethodResponse
	Enabled bool              `json:"enabled"`
	Config  map[string]string `json:"config,omitempty"`
}

type UserAuthMethodListResponse struct {
	AuthMethods []UserAuthMethodResponse `json:"authMethods"`
}

type EnabledAuthMethodsResponse struct {
	OperationName string              `json:"operationName"`
	AuthMethods   []domain.AuthMethod `json:"authMethods"`
}

// Operation configs

type OperationConfigRequest struct {
	OperationName string              `json:"operationName" validate:"required,max=256"`
	TemplateID    string              `json:"templateId" validate:"required,max=64"`
	AuthMethods   []domain.AuthMethod `json:"authMethods" validate:"required,min=1,dive,oneof=USERNAME_PASSWORD_AUTH SMS_KEY LOGIN_SCA APPROVAL_SCA CONSENT"`
	AfsEnabled    bool                `json:"afsEnabled"`
	AfsConfigID   string              `json:"afsConfigId,omitempty" validate:"required_if=AfsEnabled true,max=256"`
	Timeout       int                 `json:"expirationTime" validate:"required,gt=0"` // seconds
	MaxAuthFails  int                 `json:"maxAuthFails" validate:"gte=0"`
}

type OperationConfigResponse struct {
	OperationName string              `json:"operationName"`
	TemplateID    string              `json:"templateId"`
	AuthMethods   []domain.AuthMethod `json:"authMethods"`
	AfsEnabled    bool                `json:"afsEnabled"`
	AfsConfigID   string              `json:"afsConfigId,omitempty"`
	Timeout       int                 `json:"expirationTime"`
	MaxAuthFails  int                 `json:"maxAuthFails"`
	CreatedAt     time.Time           `json:"timestampCreated"`
}

func toOperationConfigResponse(c domain.OperationConfig) OperationConfigResponse {
	return OperationConfigResponse{
		OperationName: c.OperationName,
		TemplateID:    c.TemplateID,
		AuthMethods:   c.AuthMethods,
		AfsEnabled:    c.AfsEnabled,
		AfsConfigID:   c.AfsConfigID,
		Timeout:       int(c.Timeout / time.Second),
		MaxAuthFails:  c.MaxAuthFails,
		CreatedAt:     c.CreatedAt,
	}
}

type OperationConfigListResponse struct {
	OperationConfigs []OperationConfigResponse `json:"operationConfigs"`
}
