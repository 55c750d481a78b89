package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// Error messages reported with failed authentication steps.
const (
	MsgAuthenticationFailed = "login.authenticationFailed"
	MsgMaxAttemptsExceeded  = "login.maxAttemptsExceeded"
)

type AuthenticationRequest struct {
	OperationID     string
	AuthMethod      domain.AuthMethod
	UserID          string // falls back to the operation's user
	CredentialName  string
	CredentialValue string
	OtpID           string // newest OTP of the operation when empty
	OtpValue        string
}

type AuthenticationResponse struct {
	OperationID              string
	UserID                   string
	AuthenticationResult     domain.AuthenticationResult
	AuthResult               domain.AuthResult
	StepResult               domain.AuthStepResult
	NextAuthMethod           domain.AuthMethod
	CredentialStatus         domain.CredentialStatus
	OtpStatus                domain.OtpStatus
	RemainingAttempts        *int
	ShowRemainingAttempts    bool
	OperationFailed          bool
	CredentialChangeRequired bool
	ErrorMessage             string
}

type factors struct {
	password bool
	otp      bool
}

// AuthenticateCredential runs a password step.
func (s *OperationService) AuthenticateCredential(ctx context.Context, req AuthenticationRequest) (AuthenticationResponse, error) {
	return s.authenticate(ctx, req, factors{password: true})
}

// AuthenticateOtp runs an OTP step.
func (s *OperationService) AuthenticateOtp(ctx context.Context, req AuthenticationRequest) (AuthenticationResponse, error) {
	return s.authenticate(ctx, req, factors{otp: true})
}

// AuthenticateCombined runs a step that needs both the password and the OTP
// in the same call. The OTP is checked first.
func (s *OperationService) AuthenticateCombined(ctx context.Context, req AuthenticationRequest) (AuthenticationResponse, error) {
	return s.authenticate(ctx, req, factors{password: true, otp: true})
}

func (s *OperationService) authenticate(ctx context.Context, req AuthenticationRequest, want factors) (AuthenticationResponse, error) {
	if err := s.failIfTimedOut(ctx, req.OperationID); err != nil {
		return AuthenticationResponse{}, err
	}

	var (
		resp AuthenticationResponse
		afs  *AfsRequest
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		op, cfg, err := loadOperation(ctx, tx, req.OperationID)
		if err != nil {
			return err
		}
		resp = AuthenticationResponse{
			OperationID:           op.ID,
			AuthenticationResult:  domain.AuthenticationFailed,
			ShowRemainingAttempts: s.ShowRemainingAttempts,
		}

		if op.State == domain.OperationFailed {
			resp.AuthResult = domain.AuthFailed
			resp.OperationFailed = true
			resp.ErrorMessage = MsgMaxAttemptsExceeded
			return nil
		}
		if err := guardOperation(op); err != nil {
			return err
		}
		if op.StepIndex >= len(cfg.AuthMethods) || cfg.AuthMethods[op.StepIndex] != req.AuthMethod {
			return ErrInvalidRequest.WithMessage("authentication method is not expected in the current step")
		}

		userID := req.UserID
		if op.UserID != nil {
			if userID != "" && userID != *op.UserID {
				return ErrInvalidRequest.WithMessage("user does not match the operation")
			}
			userID = *op.UserID
		} else if userID != "" {
			op.UserID = &userID
		}
		resp.UserID = userID

		if op.StepOptions != nil {
			want.password = want.password && op.StepOptions.PasswordRequired
			want.otp = want.otp && op.StepOptions.OtpRequired
		}

		outcome, err := s.verifyFactors(ctx, tx, op, userID, req, want, ts)
		if err != nil {
			return err
		}

		stepResult := s.decide(&op, cfg, outcome, &resp, ts)
		if err := tx.Operations().UpdateOperation(ctx, op); err != nil {
			return fmt.Errorf("update operation: %w", err)
		}
		_, err = tx.OperationSteps().AppendOperationStep(ctx, domain.OperationStep{
			OperationID: op.ID,
			AuthMethod:  req.AuthMethod,
			StepResult:  stepResult,
			Result:      op.Result,
			Instruments: outcome.instruments,
			CreatedAt:   ts,
		})
		if err != nil {
			return fmt.Errorf("append operation step: %w", err)
		}

		if action := authAction(cfg); cfg.AfsEnabled && action != "" {
			r := afsRequest(op, cfg, action)
			r.Instruments = outcome.instruments
			r.StepResult = stepResult
			afs = &r
		}
		return nil
	})
	if err != nil {
		return AuthenticationResponse{}, err
	}

	s.Logger.Info("authentication step finished",
		"operation_id", resp.OperationID,
		"auth_method", req.AuthMethod,
		"result", resp.AuthResult,
		"step_result", resp.StepResult,
	)

	if afs != nil && s.Afs != nil {
		if err := s.Afs.ExecuteAuthAction(ctx, *afs); err != nil {
			s.Logger.Warn("afs auth action failed", "operation_id", resp.OperationID, "error", err)
		}
	}
	return resp, nil
}

// stepOutcome collects what the factor checks of one step reported.
type stepOutcome struct {
	succeeded    bool
	limitReached bool
	remaining    *int
	instruments  []domain.AuthInstrument

	credentialStatus domain.CredentialStatus
	otpStatus        domain.OtpStatus
	changeRequired   bool
}

func (s *OperationService) verifyFactors(ctx context.Context, tx store.Store, op domain.Operation, userID string, req AuthenticationRequest, want factors, ts time.Time) (stepOutcome, error) {
	var out stepOutcome
	if want.password {
		out.instruments = append(out.instruments, domain.InstrumentCredential)
	}
	if want.otp {
		out.instruments = append(out.instruments, domain.InstrumentOtpKey)
	}

	if !want.password && !want.otp {
		out.succeeded = true
		return out, nil
	}

	// Unknown and inactive users fail like a wrong password against a fresh
	// credential, so the response does not reveal which case applied.
	phantom := false
	if want.password || userID != "" {
		user, err := loadUser(ctx, tx, userID)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return stepOutcome{}, err
		}
		if err != nil || user.Status != domain.UserActive {
			s.Logger.Info("authentication failed for unknown or inactive user", "operation_id", op.ID)
			phantom = true
		}
	}

	var (
		o      domain.Otp
		otpOK  = true
		hasOtp bool
	)
	if want.otp {
		var policy domain.OtpPolicy
		var err error
		o, policy, err = s.Otps.findOtp(ctx, tx, req.OtpID, op.ID)
		if err != nil {
			return stepOutcome{}, err
		}
		hasOtp = true

		var check otpCheck
		if phantom {
			check, err = s.Otps.reject(ctx, tx, &o, policy, ts)
		} else {
			check, err = s.Otps.attempt(ctx, tx, &o, policy, req.OtpValue, ts)
		}
		if err != nil {
			return stepOutcome{}, err
		}
		otpOK = check.Matched
		out.limitReached = check.LimitReached
		out.remaining = otpRemainingAttempts(o, policy)
	}

	credOK := true
	if want.password && !out.limitReached {
		var check credentialCheck
		if phantom {
			_, policy, err := loadDefinition(ctx, tx, req.CredentialName)
			if err != nil {
				return stepOutcome{}, err
			}
			check = credentialCheck{Policy: policy}
		} else {
			var err error
			if check, err = s.Credentials.verify(ctx, tx, userID, req.CredentialName, req.CredentialValue, ts); err != nil {
				return stepOutcome{}, err
			}
		}
		if !check.Found {
			check.Credential = phantomCredential(op, check.Policy, ts)
			check.LimitReached = check.Credential.Status.Blocked()
		}

		out.credentialStatus = check.Credential.Status
		if r := credentialRemainingAttempts(check.Credential, check.Policy); r != nil {
			out.remaining = minAttempts(out.remaining, *r)
		}
		credOK = check.Succeeded
		out.limitReached = out.limitReached || check.LimitReached
		out.changeRequired = check.ChangeRequired
	}

	out.succeeded = otpOK && credOK && !out.limitReached
	// The OTP is consumed only when every factor of the step matched.
	if hasOtp && out.succeeded {
		if err := s.Otps.markVerified(ctx, tx, &o, ts); err != nil {
			return stepOutcome{}, err
		}
	}
	if hasOtp {
		out.otpStatus = o.Status
	}
	return out, nil
}

// phantomCredential stands in for a credential that does not exist. It takes
// the operation's failures as its counters and records one more.
func phantomCredential(op domain.Operation, policy domain.CredentialPolicy, ts time.Time) domain.Credential {
	cred := domain.Credential{
		Status:                   domain.CredentialActive,
		FailedAttemptCounterSoft: op.FailedAuthCount,
		FailedAttemptCounterHard: op.FailedAuthCount,
	}
	_ = applyCredentialCounter(&cred, policy, CounterFailed, ts)
	return cred
}

// decide applies the step outcome to the operation and fills resp.
func (s *OperationService) decide(op *domain.Operation, cfg domain.OperationConfig, outcome stepOutcome, resp *AuthenticationResponse, ts time.Time) domain.AuthStepResult {
	op.UpdatedAt = ts
	resp.CredentialStatus = outcome.credentialStatus
	resp.OtpStatus = outcome.otpStatus

	if outcome.succeeded {
		op.StepIndex++
		op.StepOptions = nil
		if op.StepIndex >= len(cfg.AuthMethods) {
			op.State = domain.OperationDone
			op.Result = domain.AuthDone
		} else {
			op.State = domain.OperationInProgress
			op.Result = domain.AuthContinue
			op.ChosenAuthMethod = cfg.AuthMethods[op.StepIndex]
			resp.NextAuthMethod = op.ChosenAuthMethod
		}
		resp.AuthenticationResult = domain.AuthenticationSucceeded
		resp.AuthResult = op.Result
		resp.StepResult = domain.StepConfirmed
		resp.CredentialChangeRequired = outcome.changeRequired
		return resp.StepResult
	}

	op.FailedAuthCount++
	remaining := outcome.remaining
	if cfg.MaxAuthFails > 0 {
		remaining = minAttempts(remaining, max(cfg.MaxAuthFails-op.FailedAuthCount, 0))
	}

	if outcome.limitReached || (cfg.MaxAuthFails > 0 && op.FailedAuthCount >= cfg.MaxAuthFails) {
		op.State = domain.OperationFailed
		op.Result = domain.AuthFailed
		zero := 0
		resp.RemainingAttempts = &zero
		resp.OperationFailed = true
		resp.ErrorMessage = MsgMaxAttemptsExceeded
		resp.StepResult = domain.StepAuthMethodFailed
	} else {
		op.State = domain.OperationInProgress
		op.Result = domain.AuthContinue
		resp.RemainingAttempts = remaining
		resp.ErrorMessage = MsgAuthenticationFailed
		resp.StepResult = domain.StepAuthFailed
	}
	resp.AuthResult = op.Result
	return resp.StepResult
}
