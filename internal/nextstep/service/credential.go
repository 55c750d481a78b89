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

// CredentialService owns the lifecycle of user credentials. Every operation
// runs in a single transaction.
type CredentialService struct {
	Store      store.Store
	Logger     *slog.Logger
	Policy     *PolicyEngine
	Protection *ProtectionService
	E2E        *E2EService

	// UseOriginalUsername keeps a user's previous username when create omits one.
	UseOriginalUsername bool

	Now func() time.Time
}

// CredentialHistoryEntry is a previous credential imported on create.
type CredentialHistoryEntry struct {
	Username string
	Value    string
}

type CreateCredentialRequest struct {
	UserID         string
	CredentialName string
	Type           domain.CredentialType
	Username       string // generated when empty
	Value          string // generated when empty
	ValidationMode domain.ValidationMode
	History        []CredentialHistoryEntry
}

type UpdateCredentialRequest struct {
	UserID         string
	CredentialName string
	Type           domain.CredentialType   // unchanged when empty
	Username       string                  // unchanged when empty
	Value          string                  // unchanged when empty
	Status         domain.CredentialStatus // unchanged when empty
}

// CredentialDetail is the caller-facing view of a credential. It never carries
// the stored value.
type CredentialDetail struct {
	CredentialName           string
	Category                 domain.CredentialCategory
	UserID                   string
	Type                     domain.CredentialType
	Username                 string
	Status                   domain.CredentialStatus
	AttemptCounter           int
	FailedAttemptCounterSoft int
	FailedAttemptCounterHard int
	CredentialChangeRequired bool
	CreatedAt                time.Time
	ExpiresAt                *time.Time
	BlockedAt                *time.Time
	LastUpdatedAt            *time.Time
	LastCredentialChangeAt   *time.Time
	LastUsernameChangeAt     *time.Time
}

// CredentialSecret is returned by create and reset. Value is only set when
// the service generated it.
type CredentialSecret struct {
	CredentialDetail
	Value string
}

// Create stores a credential for the user, reusing the existing row for the
// (user, definition) pair.
func (s *CredentialService) Create(ctx context.Context, req CreateCredentialRequest) (CredentialSecret, error) {
	if req.Type == "" {
		req.Type = domain.CredentialPermanent
	}
	if req.ValidationMode == "" {
		req.ValidationMode = domain.ValidateUsernameAndCredential
	}

	var out CredentialSecret
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		if _, err := loadUser(ctx, tx, req.UserID); err != nil {
			return err
		}
		def, policy, err := loadDefinition(ctx, tx, req.CredentialName)
		if err != nil {
			return err
		}

		existing, err := tx.Credentials().GetCredentialForUser(ctx, req.UserID, def.ID)
		found := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("get credential: %w", err)
		}

		username := req.Username
		usernameGenerated := false
		if username == "" {
			if s.UseOriginalUsername && found && existing.Username != "" {
				username = existing.Username
			} else {
				if username, err = s.Policy.GenerateUsername(ctx, tx, def, policy); err != nil {
					return err
				}
				usernameGenerated = true
			}
		}

		value := req.Value
		valueGenerated := false
		if value == "" {
			if value, err = s.Policy.GenerateCredentialValue(policy); err != nil {
				return err
			}
			valueGenerated = true
		} else if value, err = s.E2E.DecryptFor(value, def, req.Type); err != nil {
			return err
		}

		candidate := CredentialCandidate{UserID: req.UserID, Username: username, Value: value}
		failures, err := s.Policy.ValidateCredential(ctx, tx, def, policy, candidate, req.ValidationMode, !usernameGenerated, !valueGenerated)
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return ErrCredentialValidationFailed.WithDetails(failureCodes(failures)...)
		}

		if err := s.importHistory(ctx, tx, req, def, ts); err != nil {
			return err
		}

		protected, err := s.Protection.Protect(ctx, tx, def, value)
		if err != nil {
			return err
		}

		cred := existing
		if !found {
			cred = domain.Credential{
				ID:           idx.New().String(),
				DefinitionID: def.ID,
				UserID:       req.UserID,
				CreatedAt:    ts,
			}
		}
		if !found || cred.Username != username {
			cred.LastUsernameChangeAt = &ts
		}
		cred.Type = req.Type
		cred.Username = username
		setValue(&cred, protected, ts)
		activate(&cred)
		cred.AttemptCounter = 0
		cred.LastUpdatedAt = &ts
		cred.ExpiresAt = expiration(policy, cred.Type, ts)
		changeRequired, err := s.changeRequiredFor(ctx, tx, &cred, def, policy, &value, ts)
		if err != nil {
			return err
		}

		if found {
			err = tx.Credentials().UpdateCredential(ctx, cred)
		} else {
			err = tx.Credentials().CreateCredential(ctx, cred)
		}
		if err != nil {
			return fmt.Errorf("save credential: %w", err)
		}
		if err := appendHistory(ctx, tx, cred, ts); err != nil {
			return err
		}

		out.CredentialDetail = credentialDetail(cred, def)
		out.CredentialChangeRequired = changeRequired
		if valueGenerated {
			if out.Value, err = s.E2E.EncryptFor(value, def, cred.Type); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return CredentialSecret{}, err
	}

	s.Logger.Info("credential created",
		"user_id", req.UserID,
		"credential", req.CredentialName,
		"type", out.Type,
	)
	return out, nil
}

// importHistory appends imported records one second apart, the newest one
// second before ts.
func (s *CredentialService) importHistory(ctx context.Context, tx store.Store, req CreateCredentialRequest, def domain.CredentialDefinition, ts time.Time) error {
	n := len(req.History)
	for i, h := range req.History {
		value, err := s.E2E.DecryptFor(h.Value, def, req.Type)
		if err != nil {
			return err
		}
		protected, err := s.Protection.Protect(ctx, tx, def, value)
		if err != nil {
			return err
		}
		err = tx.CredentialHistory().AppendCredentialHistory(ctx, domain.CredentialHistory{
			ID:                  idx.New().String(),
			UserID:              req.UserID,
			DefinitionID:        def.ID,
			Username:            h.Username,
			Value:               protected.Value,
			EncryptionAlgorithm: protected.Algorithm,
			HashingConfigID:     protected.HashingConfigID,
			CreatedAt:           ts.Add(-time.Duration(n-i) * time.Second),
		})
		if err != nil {
			return fmt.Errorf("import credential history: %w", err)
		}
	}
	return nil
}

// Update changes the supplied fields of a credential.
func (s *CredentialService) Update(ctx context.Context, req UpdateCredentialRequest) (CredentialDetail, error) {
	var out CredentialDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		cred, def, policy, err := s.loadCredential(ctx, tx, req.UserID, req.CredentialName)
		if err != nil {
			return err
		}
		if cred.Status == domain.CredentialRemoved {
			return ErrCredentialNotActive.WithMessage("credential is removed")
		}

		newType := cred.Type
		if req.Type != "" {
			newType = req.Type
		}

		value := req.Value
		if value != "" {
			if value, err = s.E2E.DecryptFor(value, def, newType); err != nil {
				return err
			}
		}

		usernameChanged := req.Username != "" && req.Username != cred.Username
		username := cred.Username
		if req.Username != "" {
			username = req.Username
		}

		var mode domain.ValidationMode
		switch {
		case req.Username != "" && value != "":
			mode = domain.ValidateUsernameAndCredential
		case value != "":
			mode = domain.ValidateCredential
		case req.Username != "":
			mode = domain.ValidateUsername
		default:
			mode = domain.NoValidation
		}
		candidate := CredentialCandidate{UserID: req.UserID, Username: username, Value: value}
		failures, err := s.Policy.ValidateCredential(ctx, tx, def, policy, candidate, mode, usernameChanged, value != "")
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			return ErrCredentialValidationFailed.WithDetails(failureCodes(failures)...)
		}

		typeChanged := newType != cred.Type
		cred.Type = newType
		if usernameChanged {
			cred.Username = username
			cred.LastUsernameChangeAt = &ts
		}
		if value != "" {
			protected, err := s.Protection.Protect(ctx, tx, def, value)
			if err != nil {
				return err
			}
			setValue(&cred, protected, ts)
		}

		if req.Status != "" && req.Status != cred.Status {
			switch {
			case req.Status.Blocked():
				cred.Status = req.Status
				cred.BlockedAt = &ts
			case req.Status == domain.CredentialActive:
				activate(&cred)
			default:
				cred.Status = req.Status
			}
		}

		if typeChanged || value != "" {
			cred.ExpiresAt = expiration(policy, cred.Type, ts)
		}
		cred.LastUpdatedAt = &ts

		var plain *string
		if value != "" {
			plain = &value
		}
		changeRequired, err := s.changeRequiredFor(ctx, tx, &cred, def, policy, plain, ts)
		if err != nil {
			return err
		}

		if err := tx.Credentials().UpdateCredential(ctx, cred); err != nil {
			return fmt.Errorf("update credential: %w", err)
		}
		if value != "" {
			if err := appendHistory(ctx, tx, cred, ts); err != nil {
				return err
			}
		}

		out = credentialDetail(cred, def)
		out.CredentialChangeRequired = changeRequired
		return nil
	})
	if err != nil {
		return CredentialDetail{}, err
	}

	s.Logger.Info("credential updated",
		"user_id", req.UserID,
		"credential", req.CredentialName,
		"status", out.Status,
	)
	return out, nil
}

// Reset replaces the value with a generated one and reactivates the credential.
func (s *CredentialService) Reset(ctx context.Context, userID, credentialName string, credType domain.CredentialType) (CredentialSecret, error) {
	var out CredentialSecret
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		cred, def, policy, err := s.loadCredential(ctx, tx, userID, credentialName)
		if err != nil {
			return err
		}
		if cred.Status == domain.CredentialRemoved {
			return ErrCredentialNotActive.WithMessage("credential is removed")
		}
		if credType != "" {
			cred.Type = credType
		}

		value, err := s.Policy.GenerateCredentialValue(policy)
		if err != nil {
			return err
		}
		protected, err := s.Protection.Protect(ctx, tx, def, value)
		if err != nil {
			return err
		}

		setValue(&cred, protected, ts)
		activate(&cred)
		cred.ExpiresAt = expiration(policy, cred.Type, ts)
		cred.LastUpdatedAt = &ts
		changeRequired, err := s.changeRequiredFor(ctx, tx, &cred, def, policy, &value, ts)
		if err != nil {
			return err
		}

		if err := tx.Credentials().UpdateCredential(ctx, cred); err != nil {
			return fmt.Errorf("update credential: %w", err)
		}
		if err := appendHistory(ctx, tx, cred, ts); err != nil {
			return err
		}

		out.CredentialDetail = credentialDetail(cred, def)
		out.CredentialChangeRequired = changeRequired
		out.Value, err = s.E2E.EncryptFor(value, def, cred.Type)
		return err
	})
	if err != nil {
		return CredentialSecret{}, err
	}

	s.Logger.Info("credential reset", "user_id", userID, "credential", credentialName)
	return out, nil
}

// Delete marks the credential REMOVED.
func (s *CredentialService) Delete(ctx context.Context, userID, credentialName string) (CredentialDetail, error) {
	return s.transition(ctx, userID, credentialName, "credential removed", func(cred *domain.Credential, ts time.Time) error {
		if cred.Status == domain.CredentialRemoved {
			return ErrCredentialNotActive.WithMessage("credential is already removed")
		}
		cred.Status = domain.CredentialRemoved
		return nil
	})
}

// Block permanently blocks an ACTIVE or temporarily blocked credential.
func (s *CredentialService) Block(ctx context.Context, userID, credentialName string) (CredentialDetail, error) {
	return s.transition(ctx, userID, credentialName, "credential blocked", func(cred *domain.Credential, ts time.Time) error {
		if cred.Status != domain.CredentialActive && cred.Status != domain.CredentialBlockedTemporary {
			return ErrCredentialNotActive
		}
		cred.Status = domain.CredentialBlockedPermanent
		cred.BlockedAt = &ts
		return nil
	})
}

// Unblock reactivates a blocked credential and clears its failure counters.
func (s *CredentialService) Unblock(ctx context.Context, userID, credentialName string) (CredentialDetail, error) {
	return s.transition(ctx, userID, credentialName, "credential unblocked", func(cred *domain.Credential, ts time.Time) error {
		if !cred.Status.Blocked() {
			return ErrCredentialNotBlocked
		}
		activate(cred)
		return nil
	})
}

func (s *CredentialService) transition(ctx context.Context, userID, credentialName, msg string, fn func(cred *domain.Credential, ts time.Time) error) (CredentialDetail, error) {
	var out CredentialDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		cred, def, _, err := s.loadCredential(ctx, tx, userID, credentialName)
		if err != nil {
			return err
		}
		if err := fn(&cred, ts); err != nil {
			return err
		}
		cred.LastUpdatedAt = &ts
		if err := tx.Credentials().UpdateCredential(ctx, cred); err != nil {
			return fmt.Errorf("update credential: %w", err)
		}
		out = credentialDetail(cred, def)
		return nil
	})
	if err != nil {
		return CredentialDetail{}, err
	}

	s.Logger.Info(msg, "user_id", userID, "credential", credentialName, "status", out.Status)
	return out, nil
}

// List returns the user's credentials, skipping REMOVED ones unless includeRemoved is set.
func (s *CredentialService) List(ctx context.Context, userID string, includeRemoved bool) ([]CredentialDetail, error) {
	var out []CredentialDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts := now(s.Now)

		if _, err := loadUser(ctx, tx, userID); err != nil {
			return err
		}
		creds, err := tx.Credentials().ListCredentialsForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list credentials: %w", err)
		}

		for _, cred := range creds {
			if cred.Status == domain.CredentialRemoved && !includeRemoved {
				continue
			}
			def, err := tx.CredentialDefinitions().GetCredentialDefinition(ctx, cred.DefinitionID)
			if err != nil {
				return fmt.Errorf("get credential definition: %w", err)
			}
			policy, err := tx.CredentialPolicies().GetCredentialPolicy(ctx, def.CredentialPolicyID)
			if err != nil {
				return fmt.Errorf("get credential policy: %w", err)
			}

			expiresBefore := cred.ExpiresAt
			required, err := s.changeRequiredFor(ctx, tx, &cred, def, policy, nil, ts)
			if err != nil {
				return err
			}
			if expiresBefore != cred.ExpiresAt {
				if err := tx.Credentials().UpdateCredential(ctx, cred); err != nil {
					return fmt.Errorf("update credential: %w", err)
				}
			}

			d := credentialDetail(cred, def)
			d.CredentialChangeRequired = required
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type ValidateCredentialRequest struct {
	UserID         string
	CredentialName string
	Username       string
	Value          string
	ValidationMode domain.ValidationMode
}

// Validate checks a candidate without storing anything. An empty result means valid.
func (s *CredentialService) Validate(ctx context.Context, req ValidateCredentialRequest) ([]domain.ValidationFailure, error) {
	if req.ValidationMode == "" {
		req.ValidationMode = domain.ValidateUsernameAndCredential
	}

	var out []domain.ValidationFailure
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadUser(ctx, tx, req.UserID); err != nil {
			return err
		}
		def, policy, err := loadDefinition(ctx, tx, req.CredentialName)
		if err != nil {
			return err
		}

		value := req.Value
		if value != "" {
			if value, err = s.E2E.Decrypt(value, def); err != nil {
				return err
			}
		}

		candidate := CredentialCandidate{UserID: req.UserID, Username: req.Username, Value: value}
		out, err = s.Policy.ValidateCredential(ctx, tx, def, policy, candidate, req.ValidationMode,
			req.Username != "" || req.ValidationMode.ValidatesUsername(),
			req.Value != "" || req.ValidationMode.ValidatesCredential())
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IsCredentialChangeRequired reports whether the user must change the credential.
// A nil value skips re-validation against the current policy.
func (s *CredentialService) IsCredentialChangeRequired(ctx context.Context, userID, credentialName string, value *string) (bool, error) {
	var required bool
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cred, def, policy, err := s.loadCredential(ctx, tx, userID, credentialName)
		if err != nil {
			return err
		}

		expiresBefore := cred.ExpiresAt
		required, err = s.changeRequired(ctx, tx, &cred, def, policy, value, now(s.Now))
		if err != nil {
			return err
		}
		if expiresBefore != cred.ExpiresAt {
			return tx.Credentials().UpdateCredential(ctx, cred)
		}
		return nil
	})
	return required, err
}

// changeRequired may set cred.ExpiresAt to ts when rotation is overdue; the
// caller persists the change.
func (s *CredentialService) changeRequired(ctx context.Context, st store.Store, cred *domain.Credential, def domain.CredentialDefinition, policy domain.CredentialPolicy, value *string, ts time.Time) (bool, error) {
	if cred.ExpiresAt != nil && !ts.Before(*cred.ExpiresAt) {
		return true, nil
	}

	if policy.RotationEnabled && policy.RotationDays != nil {
		changed := cred.CreatedAt
		if cred.LastCredentialChangeAt != nil {
			changed = *cred.LastCredentialChangeAt
		}
		if changed.Before(ts.AddDate(0, 0, -*policy.RotationDays)) {
			cred.ExpiresAt = &ts
			return true, nil
		}
	}

	if value != nil {
		candidate := CredentialCandidate{UserID: cred.UserID, Username: cred.Username, Value: *value}
		failures, err := s.Policy.ValidateCredentialValue(ctx, st, def, policy, candidate, false)
		if err != nil {
			return false, err
		}
		if len(failures) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// changeRequiredFor evaluates cred with its known plaintext. A nil plain falls
// back to the stored value when it is not hashed.
func (s *CredentialService) changeRequiredFor(ctx context.Context, st store.Store, cred *domain.Credential, def domain.CredentialDefinition, policy domain.CredentialPolicy, plain *string, ts time.Time) (bool, error) {
	if plain == nil && cred.HashingConfigID == nil {
		revealed, err := s.Protection.Reveal(cred.Value, cred.EncryptionAlgorithm)
		if err != nil {
			return false, err
		}
		plain = &revealed
	}
	return s.changeRequired(ctx, st, cred, def, policy, plain, ts)
}

// credentialCheck is the outcome of verifying a credential value during authentication.
type credentialCheck struct {
	Credential     domain.Credential
	Policy         domain.CredentialPolicy
	Found          bool
	Succeeded      bool
	LimitReached   bool // blocked, before or because of this attempt
	ChangeRequired bool
}

// verify checks value against the user's credential and records the outcome on
// its counters. A missing credential fails without counting.
func (s *CredentialService) verify(ctx context.Context, tx store.Store, userID, credentialName, value string, ts time.Time) (credentialCheck, error) {
	def, policy, err := loadDefinition(ctx, tx, credentialName)
	if err != nil {
		return credentialCheck{}, err
	}
	cred, err := tx.Credentials().GetCredentialForUser(ctx, userID, def.ID)
	if errors.Is(err, store.ErrNotFound) {
		return credentialCheck{Policy: policy}, nil
	}
	if err != nil {
		return credentialCheck{}, fmt.Errorf("get credential: %w", err)
	}

	check := credentialCheck{Credential: cred, Policy: policy, Found: true}
	switch {
	case cred.Status.Blocked():
		check.LimitReached = true
		return check, nil
	case cred.Status != domain.CredentialActive:
		return check, nil
	}

	plain, err := s.E2E.DecryptFor(value, def, cred.Type)
	if err != nil {
		return credentialCheck{}, err
	}
	match, err := s.Protection.Verify(plain, cred.Value, cred.EncryptionAlgorithm, cred.HashingConfigID)
	if err != nil {
		return credentialCheck{}, err
	}

	change := CounterFailed
	if match {
		change = CounterSucceeded
	}
	if err := applyCredentialCounter(&cred, policy, change, ts); err != nil {
		return credentialCheck{}, err
	}

	if match {
		if check.ChangeRequired, err = s.changeRequired(ctx, tx, &cred, def, policy, &plain, ts); err != nil {
			return credentialCheck{}, err
		}
	}
	if err := tx.Credentials().UpdateCredential(ctx, cred); err != nil {
		return credentialCheck{}, fmt.Errorf("update credential: %w", err)
	}

	check.Credential = cred
	check.Succeeded = match
	check.LimitReached = cred.Status.Blocked()
	return check, nil
}

func (s *CredentialService) loadCredential(ctx context.Context, st store.Store, userID, credentialName string) (domain.Credential, domain.CredentialDefinition, domain.CredentialPolicy, error) {
	if _, err := loadUser(ctx, st, userID); err != nil {
		return domain.Credential{}, domain.CredentialDefinition{}, domain.CredentialPolicy{}, err
	}
	def, policy, err := loadDefinition(ctx, st, credentialName)
	if err != nil {
		return domain.Credential{}, domain.CredentialDefinition{}, domain.CredentialPolicy{}, err
	}
	cred, err := st.Credentials().GetCredentialForUser(ctx, userID, def.ID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Credential{}, domain.CredentialDefinition{}, domain.CredentialPolicy{}, ErrCredentialNotFound
	}
	if err != nil {
		return domain.Credential{}, domain.CredentialDefinition{}, domain.CredentialPolicy{}, fmt.Errorf("get credential: %w", err)
	}
	return cred, def, policy, nil
}

func setValue(cred *domain.Credential, p ProtectedValue, ts time.Time) {
	cred.Value = p.Value
	cred.EncryptionAlgorithm = p.Algorithm
	cred.HashingConfigID = p.HashingConfigID
	cred.LastCredentialChangeAt = &ts
}

// activate moves the credential to ACTIVE, clearing failure counters and the block timestamp.
func activate(cred *domain.Credential) {
	cred.Status = domain.CredentialActive
	cred.FailedAttemptCounterSoft = 0
	cred.FailedAttemptCounterHard = 0
	cred.BlockedAt = nil
}

// expiration returns the expiry for a credential whose value or type changed at ts.
func expiration(policy domain.CredentialPolicy, t domain.CredentialType, ts time.Time) *time.Time {
	if t == domain.CredentialTemporary && policy.TemporaryExpirationTime != nil {
		exp := ts.Add(time.Duration(*policy.TemporaryExpirationTime) * time.Second)
		return &exp
	}
	if policy.RotationEnabled && policy.RotationDays != nil {
		exp := ts.AddDate(0, 0, *policy.RotationDays)
		return &exp
	}
	return nil
}

func appendHistory(ctx context.Context, st store.Store, cred domain.Credential, ts time.Time) error {
	err := st.CredentialHistory().AppendCredentialHistory(ctx, domain.CredentialHistory{
		ID:                  idx.New().String(),
		UserID:              cred.UserID,
		DefinitionID:        cred.DefinitionID,
		Username:            cred.Username,
		Value:               cred.Value,
		EncryptionAlgorithm: cred.EncryptionAlgorithm,
		HashingConfigID:     cred.HashingConfigID,
		CreatedAt:           ts,
	})
	if err != nil {
		return fmt.Errorf("append credential history: %w", err)
	}
	return nil
}

func credentialDetail(cred domain.Credential, def domain.CredentialDefinition) CredentialDetail {
	return CredentialDetail{
		CredentialName:           def.Name,
		Category:                 def.Category,
		UserID:                   cred.UserID,
		Type:                     cred.Type,
		Username:                 cred.Username,
		Status:                   cred.Status,
		AttemptCounter:           cred.AttemptCounter,
		FailedAttemptCounterSoft: cred.FailedAttemptCounterSoft,
		FailedAttemptCounterHard: cred.FailedAttemptCounterHard,
		CreatedAt:                cred.CreatedAt,
		ExpiresAt:                cred.ExpiresAt,
		BlockedAt:                cred.BlockedAt,
		LastUpdatedAt:            cred.LastUpdatedAt,
		LastCredentialChangeAt:   cred.LastCredentialChangeAt,
		LastUsernameChangeAt:     cred.LastUsernameChangeAt,
	}
}
