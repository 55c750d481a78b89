package service

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/cryptox"
	"github.com/aussiebroadwan/nextstep/pkg/idx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// DeliveryFailedMessage is reported when an OTP could not be delivered or a
// resend came too early.
const DeliveryFailedMessage = "smsAuthorization.deliveryFailed"

const (
	otpSaltSize  = 20
	otpMinLength = 4
	otpMaxLength = 9
)

// OtpMessage is handed to an OtpSender. Value is the plaintext OTP.
type OtpMessage struct {
	OtpID       string
	OtpName     string
	UserID      string
	OperationID string
	Value       string
	OtpData     string
	Language    string
	Resend      bool
	ExpiresAt   time.Time
}

// DeliveryResult is reported by an OtpSender. A failed delivery is data, not an error.
type DeliveryResult struct {
	Delivered    bool
	DeliveryID   string
	ErrorMessage string
}

// OtpSender delivers OTP values to users.
type OtpSender interface {
	SendOtp(ctx context.Context, msg OtpMessage) (DeliveryResult, error)
}

// ResendTracker remembers when an OTP was last delivered for a key.
type ResendTracker interface {
	LastMessage(ctx context.Context, key string) (time.Time, bool, error)
	MarkMessage(ctx context.Context, key string, at time.Time) error
}

// OtpService owns OTP issuance, delivery bookkeeping and verification.
type OtpService struct {
	Store      store.Store
	Logger     *slog.Logger
	Protection *ProtectionService
	Sender     OtpSender
	Tracker    ResendTracker

	// ResendDelay is the minimum time between two delivered messages for the
	// same operation or user.
	ResendDelay time.Duration

	Now func() time.Time
}

type CreateOtpRequest struct {
	UserID         string
	OtpName        string
	CredentialName string
	OtpData        string
	OperationID    string
}

type CreateOtpResponse struct {
	OtpID     string
	OtpValue  string
	ExpiresAt time.Time
}

type SendOtpRequest struct {
	CreateOtpRequest
	Language string
	Resend   bool
}

type SendOtpResponse struct {
	OtpID        string
	Delivered    bool
	ErrorMessage string
}

// OtpDetail is the caller-facing view of an OTP without its value.
type OtpDetail struct {
	OtpID                string
	OtpName              string
	UserID               *string
	CredentialName       string
	OperationID          *string
	OtpData              string
	Status               domain.OtpStatus
	AttemptCounter       int
	FailedAttemptCounter int
	CreatedAt            time.Time
	VerifiedAt           *time.Time
	BlockedAt            *time.Time
	ExpiresAt            time.Time
}

type VerifyOtpRequest struct {
	OtpID       string // takes precedence over OperationID
	OperationID string // newest OTP of the operation
	Value       string
}

type OtpVerification struct {
	OtpID             string
	UserID            *string
	Result            domain.AuthenticationResult
	Status            domain.OtpStatus
	RemainingAttempts *int
	OperationFailed   bool
}

// CreateOtp issues a new OTP. Previous ACTIVE OTPs of the same operation fail.
func (s *OtpService) CreateOtp(ctx context.Context, req CreateOtpRequest) (CreateOtpResponse, error) {
	var out CreateOtpResponse
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if req.UserID != "" {
			if _, err := loadUser(ctx, tx, req.UserID); err != nil {
				return err
			}
		}
		var err error
		out, err = s.createOtp(ctx, tx, req)
		return err
	})
	if err != nil {
		return CreateOtpResponse{}, err
	}

	s.Logger.Info("otp created", "otp_id", out.OtpID, "otp_name", req.OtpName, "operation_id", req.OperationID)
	return out, nil
}

func (s *OtpService) createOtp(ctx context.Context, tx store.Store, req CreateOtpRequest) (CreateOtpResponse, error) {
	ts := now(s.Now)

	def, policy, err := loadOtpDefinition(ctx, tx, req.OtpName)
	if err != nil {
		return CreateOtpResponse{}, err
	}

	otpRecord := domain.Otp{
		ID:           idx.New().String(),
		DefinitionID: def.ID,
		Status:       domain.OtpActive,
		OtpData:      req.OtpData,
		CreatedAt:    ts,
		ExpiresAt:    ts.Add(time.Duration(policy.ExpirationTime) * time.Second),
	}
	if req.UserID != "" {
		userID := req.UserID
		otpRecord.UserID = &userID
	}
	if req.CredentialName != "" {
		credDef, _, err := loadDefinition(ctx, tx, req.CredentialName)
		if err != nil {
			return CreateOtpResponse{}, err
		}
		otpRecord.CredentialDefinitionID = &credDef.ID
	}

	if req.OperationID != "" {
		op, _, err := loadOperation(ctx, tx, req.OperationID)
		if err != nil {
			return CreateOtpResponse{}, err
		}
		if err := guardOperation(op); err != nil {
			return CreateOtpResponse{}, err
		}
		if err := s.failActiveOtps(ctx, tx, op.ID); err != nil {
			return CreateOtpResponse{}, err
		}
		operationID := op.ID
		otpRecord.OperationID = &operationID
	}

	value, salt, err := generateOtpValue(policy, ts)
	if err != nil {
		return CreateOtpResponse{}, err
	}
	otpRecord.Salt = salt
	if otpRecord.Value, otpRecord.EncryptionAlgorithm, err = s.Protection.ProtectOtp(def, value); err != nil {
		return CreateOtpResponse{}, err
	}

	if err := tx.Otps().CreateOtp(ctx, otpRecord); err != nil {
		return CreateOtpResponse{}, fmt.Errorf("create otp: %w", err)
	}
	return CreateOtpResponse{OtpID: otpRecord.ID, OtpValue: value, ExpiresAt: otpRecord.ExpiresAt}, nil
}

func (s *OtpService) failActiveOtps(ctx context.Context, tx store.Store, operationID string) error {
	previous, err := tx.Otps().ListOtpsForOperation(ctx, operationID)
	if err != nil {
		return fmt.Errorf("list otps: %w", err)
	}
	for _, p := range previous {
		if p.Status != domain.OtpActive {
			continue
		}
		p.Status = domain.OtpFailed
		if err := tx.Otps().UpdateOtp(ctx, p); err != nil {
			return fmt.Errorf("update otp: %w", err)
		}
	}
	return nil
}

// generateOtpValue derives an HOTP code from a fresh random seed.
func generateOtpValue(policy domain.OtpPolicy, ts time.Time) (string, []byte, error) {
	if policy.Length < otpMinLength || policy.Length > otpMaxLength {
		return "", nil, ErrInvalidConfiguration.WithMessage("otp length is out of range")
	}
	salt, err := cryptox.RandomBytes(otpSaltSize)
	if err != nil {
		return "", nil, fmt.Errorf("generate otp seed: %w", err)
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(salt)
	value, err := hotp.GenerateCodeCustom(secret, uint64(ts.Unix()), hotp.ValidateOpts{
		Digits:    otp.Digits(policy.Length),
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate otp: %w", err)
	}
	return value, salt, nil
}

// CreateAndSendOtp issues an OTP and delivers it. Unknown or inactive users
// get a fake result that looks delivered; nothing is stored or sent for them.
func (s *OtpService) CreateAndSendOtp(ctx context.Context, req SendOtpRequest) (SendOtpResponse, error) {
	logger := s.Logger.With("otp_name", req.OtpName, "operation_id", req.OperationID)

	if _, _, err := loadOtpDefinition(ctx, s.Store, req.OtpName); err != nil {
		return SendOtpResponse{}, err
	}

	if req.UserID != "" {
		user, err := loadUser(ctx, s.Store, req.UserID)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return SendOtpResponse{}, err
		}
		if err != nil || user.Status != domain.UserActive {
			logger.Info("otp delivery faked for unknown or inactive user")
			return SendOtpResponse{OtpID: idx.New().String(), Delivered: true}, nil
		}
	}

	key := req.OperationID
	if key == "" {
		key = req.UserID
	}
	ts := now(s.Now)
	if req.Resend && key != "" && s.Tracker != nil && s.ResendDelay > 0 {
		last, ok, err := s.Tracker.LastMessage(ctx, key)
		if err != nil {
			return SendOtpResponse{}, fmt.Errorf("read last message: %w", err)
		}
		if ok && ts.Sub(last) < s.ResendDelay {
			logger.Info("otp resend rejected", "since_last", ts.Sub(last))
			return SendOtpResponse{Delivered: false, ErrorMessage: DeliveryFailedMessage}, nil
		}
	}

	var created CreateOtpResponse
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		created, err = s.createOtp(ctx, tx, req.CreateOtpRequest)
		return err
	})
	if err != nil {
		return SendOtpResponse{}, err
	}

	out := SendOtpResponse{OtpID: created.OtpID}
	result, err := s.Sender.SendOtp(ctx, OtpMessage{
		OtpID:       created.OtpID,
		OtpName:     req.OtpName,
		UserID:      req.UserID,
		OperationID: req.OperationID,
		Value:       created.OtpValue,
		OtpData:     req.OtpData,
		Language:    req.Language,
		Resend:      req.Resend,
		ExpiresAt:   created.ExpiresAt,
	})
	switch {
	case err != nil:
		logger.Warn("otp delivery failed", "otp_id", created.OtpID, "error", err)
		out.ErrorMessage = DeliveryFailedMessage
	case !result.Delivered:
		logger.Info("otp not delivered", "otp_id", created.OtpID, "reason", result.ErrorMessage)
		out.ErrorMessage = result.ErrorMessage
		if out.ErrorMessage == "" {
			out.ErrorMessage = DeliveryFailedMessage
		}
	default:
		out.Delivered = true
		if key != "" && s.Tracker != nil {
			if err := s.Tracker.MarkMessage(ctx, key, ts); err != nil {
				logger.Warn("failed to record otp delivery", "error", err)
			}
		}
		logger.Info("otp delivered", "otp_id", created.OtpID, "delivery_id", result.DeliveryID, "resend", req.Resend)
	}
	return out, nil
}

// VerifyOtp checks a value against an OTP, counting the attempt.
func (s *OtpService) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (OtpVerification, error) {
	var out OtpVerification
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		o, policy, err := s.findOtp(ctx, tx, req.OtpID, req.OperationID)
		if err != nil {
			return err
		}

		if o.OperationID != nil {
			op, err := tx.Operations().GetOperation(ctx, *o.OperationID)
			if err != nil {
				return fmt.Errorf("get operation: %w", err)
			}
			if op.State == domain.OperationFailed {
				out = otpVerification(o, policy, false)
				out.OperationFailed = true
				return nil
			}
		}

		check, err := s.attempt(ctx, tx, &o, policy, req.Value, ts)
		if err != nil {
			return err
		}
		if check.Matched {
			if err := s.markVerified(ctx, tx, &o, ts); err != nil {
				return err
			}
		}
		out = otpVerification(o, policy, check.Matched)
		return nil
	})
	if err != nil {
		return OtpVerification{}, err
	}

	s.Logger.Info("otp verified", "otp_id", out.OtpID, "result", out.Result, "status", out.Status)
	return out, nil
}

// otpCheck is the outcome of one verification attempt.
type otpCheck struct {
	Matched      bool
	LimitReached bool // expired, blocked or otherwise unusable
}

// attempt counts one verification attempt and persists the OTP. A match only
// counts the attempt; the caller decides whether the OTP becomes VERIFIED.
func (s *OtpService) attempt(ctx context.Context, tx store.Store, o *domain.Otp, policy domain.OtpPolicy, value string, ts time.Time) (otpCheck, error) {
	usable, err := s.usable(ctx, tx, o, ts)
	if err != nil {
		return otpCheck{}, err
	}
	if !usable {
		return otpCheck{LimitReached: true}, nil
	}

	match, err := s.Protection.Verify(value, o.Value, o.EncryptionAlgorithm, nil)
	if err != nil {
		return otpCheck{}, err
	}
	return s.count(ctx, tx, o, policy, match, ts)
}

// reject counts a failed attempt without comparing any value.
func (s *OtpService) reject(ctx context.Context, tx store.Store, o *domain.Otp, policy domain.OtpPolicy, ts time.Time) (otpCheck, error) {
	usable, err := s.usable(ctx, tx, o, ts)
	if err != nil {
		return otpCheck{}, err
	}
	if !usable {
		return otpCheck{LimitReached: true}, nil
	}
	return s.count(ctx, tx, o, policy, false, ts)
}

// usable reports whether o still accepts attempts, expiring it when overdue.
func (s *OtpService) usable(ctx context.Context, tx store.Store, o *domain.Otp, ts time.Time) (bool, error) {
	if o.Status != domain.OtpActive {
		return false, nil
	}
	if ts.After(o.ExpiresAt) {
		o.Status = domain.OtpExpired
		if err := tx.Otps().UpdateOtp(ctx, *o); err != nil {
			return false, fmt.Errorf("update otp: %w", err)
		}
		return false, nil
	}
	return true, nil
}

func (s *OtpService) count(ctx context.Context, tx store.Store, o *domain.Otp, policy domain.OtpPolicy, match bool, ts time.Time) (otpCheck, error) {
	o.AttemptCounter++
	var check otpCheck
	if match {
		check.Matched = true
	} else {
		o.FailedAttemptCounter++
		if policy.AttemptLimit != nil && o.FailedAttemptCounter >= *policy.AttemptLimit {
			o.Status = domain.OtpBlocked
			o.BlockedAt = &ts
			check.LimitReached = true
		}
	}

	if err := tx.Otps().UpdateOtp(ctx, *o); err != nil {
		return otpCheck{}, fmt.Errorf("update otp: %w", err)
	}
	return check, nil
}

func (s *OtpService) markVerified(ctx context.Context, tx store.Store, o *domain.Otp, ts time.Time) error {
	o.Status = domain.OtpVerified
	o.VerifiedAt = &ts
	if err := tx.Otps().UpdateOtp(ctx, *o); err != nil {
		return fmt.Errorf("update otp: %w", err)
	}
	return nil
}

// findOtp resolves an OTP by id, or the newest OTP of an operation.
func (s *OtpService) findOtp(ctx context.Context, st store.Store, otpID, operationID string) (domain.Otp, domain.OtpPolicy, error) {
	var o domain.Otp
	switch {
	case otpID != "":
		var err error
		o, err = st.Otps().GetOtp(ctx, otpID)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Otp{}, domain.OtpPolicy{}, ErrOtpNotFound
		}
		if err != nil {
			return domain.Otp{}, domain.OtpPolicy{}, fmt.Errorf("get otp: %w", err)
		}
		if operationID != "" && (o.OperationID == nil || *o.OperationID != operationID) {
			return domain.Otp{}, domain.OtpPolicy{}, ErrInvalidRequest.WithMessage("otp does not belong to the operation")
		}
	case operationID != "":
		otps, err := st.Otps().ListOtpsForOperation(ctx, operationID)
		if err != nil {
			return domain.Otp{}, domain.OtpPolicy{}, fmt.Errorf("list otps: %w", err)
		}
		if len(otps) == 0 {
			return domain.Otp{}, domain.OtpPolicy{}, ErrOtpNotFound
		}
		o = otps[0]
	default:
		return domain.Otp{}, domain.OtpPolicy{}, ErrInvalidRequest.WithMessage("otp id or operation id is required")
	}

	def, err := st.OtpDefinitions().GetOtpDefinition(ctx, o.DefinitionID)
	if err != nil {
		return domain.Otp{}, domain.OtpPolicy{}, fmt.Errorf("get otp definition: %w", err)
	}
	policy, err := st.OtpPolicies().GetOtpPolicy(ctx, def.OtpPolicyID)
	if err != nil {
		return domain.Otp{}, domain.OtpPolicy{}, fmt.Errorf("get otp policy: %w", err)
	}
	return o, policy, nil
}

// ResetOtpCounters clears the failed counter and reactivates a blocked OTP
// that has not expired yet.
func (s *OtpService) ResetOtpCounters(ctx context.Context, otpID string) (OtpDetail, error) {
	return s.mutate(ctx, otpID, func(o *domain.Otp, ts time.Time) error {
		o.FailedAttemptCounter = 0
		if o.Status == domain.OtpBlocked && ts.Before(o.ExpiresAt) {
			o.Status = domain.OtpActive
			o.BlockedAt = nil
		}
		return nil
	})
}

// ExpireOtp moves an ACTIVE OTP to EXPIRED.
func (s *OtpService) ExpireOtp(ctx context.Context, otpID string) (OtpDetail, error) {
	return s.mutate(ctx, otpID, func(o *domain.Otp, ts time.Time) error {
		if o.Status != domain.OtpActive {
			return ErrOtpNotActive
		}
		o.Status = domain.OtpExpired
		return nil
	})
}

func (s *OtpService) mutate(ctx context.Context, otpID string, fn func(o *domain.Otp, ts time.Time) error) (OtpDetail, error) {
	var out OtpDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, _, err := s.findOtp(ctx, tx, otpID, "")
		if err != nil {
			return err
		}
		if err := fn(&o, now(s.Now)); err != nil {
			return err
		}
		if err := tx.Otps().UpdateOtp(ctx, o); err != nil {
			return fmt.Errorf("update otp: %w", err)
		}
		out, err = s.detail(ctx, tx, o)
		return err
	})
	if err != nil {
		return OtpDetail{}, err
	}

	s.Logger.Info("otp updated", "otp_id", otpID, "status", out.Status)
	return out, nil
}

// GetOtpList returns the OTPs of an operation, newest first.
func (s *OtpService) GetOtpList(ctx context.Context, operationID string) ([]OtpDetail, error) {
	if _, err := s.Store.Operations().GetOperation(ctx, operationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	otps, err := s.Store.Otps().ListOtpsForOperation(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("list otps: %w", err)
	}

	out := make([]OtpDetail, 0, len(otps))
	for _, o := range otps {
		d, err := s.detail(ctx, s.Store, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// GetOtpDetail returns one OTP by id, or the newest of an operation.
func (s *OtpService) GetOtpDetail(ctx context.Context, otpID, operationID string) (OtpDetail, error) {
	o, _, err := s.findOtp(ctx, s.Store, otpID, operationID)
	if err != nil {
		return OtpDetail{}, err
	}
	return s.detail(ctx, s.Store, o)
}

func (s *OtpService) detail(ctx context.Context, st store.Store, o domain.Otp) (OtpDetail, error) {
	def, err := st.OtpDefinitions().GetOtpDefinition(ctx, o.DefinitionID)
	if err != nil {
		return OtpDetail{}, fmt.Errorf("get otp definition: %w", err)
	}
	d := OtpDetail{
		OtpID:                o.ID,
		OtpName:              def.Name,
		UserID:               o.UserID,
		OperationID:          o.OperationID,
		OtpData:              o.OtpData,
		Status:               o.Status,
		AttemptCounter:       o.AttemptCounter,
		FailedAttemptCounter: o.FailedAttemptCounter,
		CreatedAt:            o.CreatedAt,
		VerifiedAt:           o.VerifiedAt,
		BlockedAt:            o.BlockedAt,
		ExpiresAt:            o.ExpiresAt,
	}
	if o.CredentialDefinitionID != nil {
		credDef, err := st.CredentialDefinitions().GetCredentialDefinition(ctx, *o.CredentialDefinitionID)
		if err != nil {
			return OtpDetail{}, fmt.Errorf("get credential definition: %w", err)
		}
		d.CredentialName = credDef.Name
	}
	return d, nil
}

func otpVerification(o domain.Otp, policy domain.OtpPolicy, matched bool) OtpVerification {
	out := OtpVerification{
		OtpID:             o.ID,
		UserID:            o.UserID,
		Result:            domain.AuthenticationFailed,
		Status:            o.Status,
		RemainingAttempts: otpRemainingAttempts(o, policy),
	}
	if matched {
		out.Result = domain.AuthenticationSucceeded
	}
	return out
}

// otpRemainingAttempts is nil when the policy sets no attempt limit.
func otpRemainingAttempts(o domain.Otp, policy domain.OtpPolicy) *int {
	if policy.AttemptLimit == nil {
		return nil
	}
	if o.Status != domain.OtpActive {
		zero := 0
		return &zero
	}
	n := max(*policy.AttemptLimit-o.FailedAttemptCounter, 0)
	return &n
}
