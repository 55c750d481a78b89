package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/idx"
)

// AfsAction names an anti-fraud system hook.
type AfsAction string

const (
	AfsLoginInit    AfsAction = "LOGIN_INIT"
	AfsLoginAuth    AfsAction = "LOGIN_AUTH"
	AfsApprovalInit AfsAction = "APPROVAL_INIT"
	AfsApprovalAuth AfsAction = "APPROVAL_AUTH"
)

type AfsRequest struct {
	OperationID   string
	OperationName string
	AfsConfigID   string
	UserID        string
	Action        AfsAction
	StepIndex     int
	Instruments   []domain.AuthInstrument
	StepResult    domain.AuthStepResult
}

// AfsResponse carries the step options the anti-fraud system decided on.
// They only take effect when Applied is set.
type AfsResponse struct {
	Applied     bool
	StepOptions domain.StepOptions
}

// AfsClient talks to the anti-fraud system.
type AfsClient interface {
	ExecuteInitAction(ctx context.Context, req AfsRequest) (AfsResponse, error)
	ExecuteAuthAction(ctx context.Context, req AfsRequest) error
}

// OperationService drives operations through their configured authentication steps.
type OperationService struct {
	Store       store.Store
	Logger      *slog.Logger
	Credentials *CredentialService
	Otps        *OtpService
	Afs         AfsClient // nil disables anti-fraud integration

	// AuthMethods rejects steps the user has disabled. Nil skips the check.
	AuthMethods *AuthMethodService

	// ResendDelay is reported by InitStep so clients can pace OTP resends.
	ResendDelay time.Duration

	// ShowRemainingAttempts is copied into authentication responses.
	ShowRemainingAttempts bool

	Now func() time.Time
}

type CreateOperationRequest struct {
	OperationName         string
	OperationID           string // generated when empty
	OperationData         string
	ExternalTransactionID string
	UserID                string
	OrganizationID        string
}

// OperationDetail is an operation with its configured methods and step history.
type OperationDetail struct {
	domain.Operation
	AuthMethods []domain.AuthMethod
	Steps       []domain.OperationStep
}

type InitStepResponse struct {
	OperationID string
	StepOptions domain.StepOptions
	ResendDelay time.Duration
}

// CreateOperation starts a new operation in INITIATED state.
func (s *OperationService) CreateOperation(ctx context.Context, req CreateOperationRequest) (OperationDetail, error) {
	var out OperationDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		cfg, err := tx.OperationConfigs().GetOperationConfig(ctx, req.OperationName)
		if errors.Is(err, store.ErrNotFound) {
			return ErrOperationNotConfigured
		}
		if err != nil {
			return fmt.Errorf("get operation config: %w", err)
		}
		if len(cfg.AuthMethods) == 0 {
			return ErrInvalidConfiguration.WithMessage("operation has no authentication methods")
		}

		op := domain.Operation{
			ID:                    req.OperationID,
			Name:                  cfg.OperationName,
			Data:                  req.OperationData,
			ExternalTransactionID: req.ExternalTransactionID,
			OrganizationID:        req.OrganizationID,
			State:                 domain.OperationInitiated,
			Result:                domain.AuthContinue,
			ChosenAuthMethod:      cfg.AuthMethods[0],
			CreatedAt:             ts,
			UpdatedAt:             ts,
			ExpiresAt:             ts.Add(cfg.Timeout),
		}
		if op.ID == "" {
			op.ID = idx.New().String()
		}
		if req.UserID != "" {
			userID := req.UserID
			op.UserID = &userID
			if s.AuthMethods != nil {
				if err := s.AuthMethods.requireEnabled(ctx, tx, userID, op.ChosenAuthMethod); err != nil {
					return err
				}
			}
		}

		err = tx.Operations().CreateOperation(ctx, op)
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrOperationAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("create operation: %w", err)
		}

		out = OperationDetail{Operation: op, AuthMethods: cfg.AuthMethods}
		return nil
	})
	if err != nil {
		return OperationDetail{}, err
	}

	s.Logger.Info("operation created", "operation_id", out.ID, "operation_name", out.Name)
	return out, nil
}

// GetOperation returns the operation, failing it first when it timed out.
func (s *OperationService) GetOperation(ctx context.Context, operationID string) (OperationDetail, error) {
	if err := s.failIfTimedOut(ctx, operationID); err != nil {
		return OperationDetail{}, err
	}

	op, cfg, err := loadOperation(ctx, s.Store, operationID)
	if err != nil {
		return OperationDetail{}, err
	}
	steps, err := s.Store.OperationSteps().ListOperationSteps(ctx, operationID)
	if err != nil {
		return OperationDetail{}, fmt.Errorf("list operation steps: %w", err)
	}
	return OperationDetail{Operation: op, AuthMethods: cfg.AuthMethods, Steps: steps}, nil
}

// AssignUser binds the operation to a user once the user is identified.
func (s *OperationService) AssignUser(ctx context.Context, operationID, userID, organizationID string) (OperationDetail, error) {
	if userID == "" {
		return OperationDetail{}, ErrInvalidRequest.WithMessage("user id is required")
	}
	return s.mutate(ctx, operationID, func(tx store.Store, op *domain.Operation, ts time.Time) error {
		op.UserID = &userID
		if organizationID != "" {
			op.OrganizationID = organizationID
		}
		return nil
	})
}

// RecordCertificateVerification notes that the client certificate was
// verified, which removes the password factor from the next step.
func (s *OperationService) RecordCertificateVerification(ctx context.Context, operationID string) (OperationDetail, error) {
	return s.mutate(ctx, operationID, func(tx store.Store, op *domain.Operation, ts time.Time) error {
		op.CertificateVerified = true
		return nil
	})
}

// InitStep decides which factors the current step requires.
func (s *OperationService) InitStep(ctx context.Context, operationID string) (InitStepResponse, error) {
	if err := s.failIfTimedOut(ctx, operationID); err != nil {
		return InitStepResponse{}, err
	}

	op, cfg, err := loadOperation(ctx, s.Store, operationID)
	if err != nil {
		return InitStepResponse{}, err
	}
	if err := guardOperation(op); err != nil {
		return InitStepResponse{}, err
	}
	if s.AuthMethods != nil && op.UserID != nil && op.StepIndex < len(cfg.AuthMethods) {
		if err := s.AuthMethods.requireEnabled(ctx, s.Store, *op.UserID, cfg.AuthMethods[op.StepIndex]); err != nil {
			return InitStepResponse{}, err
		}
	}

	opts := domain.StepOptions{PasswordRequired: true, OtpRequired: true}
	applied := false
	switch {
	case op.CertificateVerified:
		opts.PasswordRequired = false
		applied = true
	case cfg.AfsEnabled && s.Afs != nil && initAction(cfg) != "":
		resp, err := s.Afs.ExecuteInitAction(ctx, afsRequest(op, cfg, initAction(cfg)))
		if err != nil {
			s.Logger.Warn("afs init action failed", "operation_id", op.ID, "error", err)
			break
		}
		if resp.Applied {
			opts = resp.StepOptions
			applied = true
		}
	}

	_, err = s.mutate(ctx, operationID, func(tx store.Store, op *domain.Operation, ts time.Time) error {
		if applied {
			op.StepOptions = &opts
		} else {
			op.StepOptions = nil
		}
		return nil
	})
	if err != nil {
		return InitStepResponse{}, err
	}

	s.Logger.Info("operation step initialized",
		"operation_id", operationID,
		"password_required", opts.PasswordRequired,
		"otp_required", opts.OtpRequired,
		"step_options_applied", applied,
	)
	return InitStepResponse{OperationID: operationID, StepOptions: opts, ResendDelay: s.ResendDelay}, nil
}

// CancelOperation moves the operation to CANCELED.
func (s *OperationService) CancelOperation(ctx context.Context, operationID, reason string) (OperationDetail, error) {
	out, err := s.mutate(ctx, operationID, func(tx store.Store, op *domain.Operation, ts time.Time) error {
		op.State = domain.OperationCanceled
		op.Result = domain.AuthFailed
		op.CancelReason = reason
		_, err := tx.OperationSteps().AppendOperationStep(ctx, domain.OperationStep{
			OperationID: op.ID,
			AuthMethod:  op.ChosenAuthMethod,
			StepResult:  domain.StepCanceled,
			Result:      domain.AuthFailed,
			CreatedAt:   ts,
		})
		if err != nil {
			return fmt.Errorf("append operation step: %w", err)
		}
		return nil
	})
	if err != nil {
		return OperationDetail{}, err
	}

	s.Logger.Info("operation canceled", "operation_id", operationID, "reason", reason)
	return out, nil
}

// mutate applies fn to a non-terminal operation in one transaction.
func (s *OperationService) mutate(ctx context.Context, operationID string, fn func(tx store.Store, op *domain.Operation, ts time.Time) error) (OperationDetail, error) {
	if err := s.failIfTimedOut(ctx, operationID); err != nil {
		return OperationDetail{}, err
	}

	var out OperationDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		op, cfg, err := loadOperation(ctx, tx, operationID)
		if err != nil {
			return err
		}
		if err := guardOperation(op); err != nil {
			return err
		}
		if err := fn(tx, &op, ts); err != nil {
			return err
		}
		if op.State == domain.OperationInitiated {
			op.State = domain.OperationInProgress
		}
		op.UpdatedAt = ts
		if err := tx.Operations().UpdateOperation(ctx, op); err != nil {
			return fmt.Errorf("update operation: %w", err)
		}
		out = OperationDetail{Operation: op, AuthMethods: cfg.AuthMethods}
		return nil
	})
	if err != nil {
		return OperationDetail{}, err
	}
	return out, nil
}

// failIfTimedOut fails an expired operation in its own transaction so the
// change survives any error returned afterwards.
func (s *OperationService) failIfTimedOut(ctx context.Context, operationID string) error {
	var timedOut bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		op, err := tx.Operations().GetOperation(ctx, operationID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrOperationNotFound
		}
		if err != nil {
			return fmt.Errorf("get operation: %w", err)
		}
		if op.State.Terminal() || ts.Before(op.ExpiresAt) {
			return nil
		}

		op.State = domain.OperationFailed
		op.Result = domain.AuthFailed
		op.UpdatedAt = ts
		timedOut = true
		return tx.Operations().UpdateOperation(ctx, op)
	})
	if err != nil {
		return err
	}
	if timedOut {
		s.Logger.Info("operation timed out", "operation_id", operationID)
	}
	return nil
}

func guardOperation(op domain.Operation) error {
	switch op.State {
	case domain.OperationDone:
		return ErrOperationAlreadyFinished
	case domain.OperationFailed:
		return ErrOperationAlreadyFailed
	case domain.OperationCanceled:
		return ErrOperationAlreadyCanceled
	}
	return nil
}

func initAction(cfg domain.OperationConfig) AfsAction {
	switch cfg.TemplateID {
	case domain.TemplateLogin:
		return AfsLoginInit
	case domain.TemplateApproval:
		return AfsApprovalInit
	}
	return ""
}

func authAction(cfg domain.OperationConfig) AfsAction {
	switch cfg.TemplateID {
	case domain.TemplateLogin:
		return AfsLoginAuth
	case domain.TemplateApproval:
		return AfsApprovalAuth
	}
	return ""
}

func afsRequest(op domain.Operation, cfg domain.OperationConfig, action AfsAction) AfsRequest {
	req := AfsRequest{
		OperationID:   op.ID,
		OperationName: op.Name,
		AfsConfigID:   cfg.AfsConfigID,
		Action:        action,
		StepIndex:     op.StepIndex,
	}
	if op.UserID != nil {
		req.UserID = *op.UserID
	}
	return req
}

// Operation configuration

// CreateOperationConfig registers how operations of a name are authenticated.
func (s *OperationService) CreateOperationConfig(ctx context.Context, cfg domain.OperationConfig) (domain.OperationConfig, error) {
	if cfg.OperationName == "" || len(cfg.AuthMethods) == 0 || cfg.Timeout <= 0 || cfg.MaxAuthFails < 0 {
		return domain.OperationConfig{}, ErrInvalidRequest.WithMessage("operation name, auth methods and a positive timeout are required")
	}
	cfg.CreatedAt = now(s.Now)

	err := s.Store.OperationConfigs().CreateOperationConfig(ctx, cfg)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.OperationConfig{}, ErrOperationConfigAlreadyExists
	}
	if err != nil {
		return domain.OperationConfig{}, fmt.Errorf("create operation config: %w", err)
	}

	s.Logger.Info("operation config created", "operation_name", cfg.OperationName, "auth_methods", cfg.AuthMethods)
	return cfg, nil
}

func (s *OperationService) GetOperationConfig(ctx context.Context, name string) (domain.OperationConfig, error) {
	cfg, err := s.Store.OperationConfigs().GetOperationConfig(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return domain.OperationConfig{}, ErrOperationNotConfigured
	}
	if err != nil {
		return domain.OperationConfig{}, fmt.Errorf("get operation config: %w", err)
	}
	return cfg, nil
}

func (s *OperationService) ListOperationConfigs(ctx context.Context) ([]domain.OperationConfig, error) {
	cfgs, err := s.Store.OperationConfigs().ListOperationConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list operation configs: %w", err)
	}
	return cfgs, nil
}

// DeleteOperationConfig removes a config that no operation references.
func (s *OperationService) DeleteOperationConfig(ctx context.Context, name string) error {
	err := s.Store.OperationConfigs().DeleteOperationConfig(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrOperationNotConfigured
	case errors.Is(err, store.ErrReferenced):
		return ErrInvalidRequest.WithMessage("operation config is in use")
	case err != nil:
		return fmt.Errorf("delete operation config: %w", err)
	}

	s.Logger.Info("operation config deleted", "operation_name", name)
	return nil
}
