package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// CounterChange is the outcome recorded against a credential's counters.
type CounterChange string

const (
	CounterSucceeded CounterChange = "SUCCEEDED"
	CounterFailed    CounterChange = "FAILED"
	CounterBlocked   CounterChange = "BLOCKED"
)

// CounterService administers credential failure counters.
type CounterService struct {
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// ResetAllCounters unblocks temporarily blocked credentials and zeroes every
// soft failure counter. It returns the number of credentials touched.
func (s *CounterService) ResetAllCounters(ctx context.Context) (int64, error) {
	var n int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		n, err = tx.Credentials().ResetSoftCounters(ctx, now(s.Now))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("reset counters: %w", err)
	}

	s.Logger.Info("soft failure counters reset", "credentials", n)
	return n, nil
}

// UpdateCredentialCounter records an authentication outcome for an ACTIVE credential.
func (s *CounterService) UpdateCredentialCounter(ctx context.Context, userID, credentialName string, change CounterChange) (domain.Credential, error) {
	var cred domain.Credential
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadUser(ctx, tx, userID); err != nil {
			return err
		}
		def, policy, err := loadDefinition(ctx, tx, credentialName)
		if err != nil {
			return err
		}
		cred, err = tx.Credentials().GetCredentialForUser(ctx, userID, def.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrCredentialNotFound
		}
		if err != nil {
			return fmt.Errorf("get credential: %w", err)
		}
		if cred.Status != domain.CredentialActive {
			return ErrCredentialNotActive
		}

		if err := applyCredentialCounter(&cred, policy, change, now(s.Now)); err != nil {
			return err
		}
		return tx.Credentials().UpdateCredential(ctx, cred)
	})
	if err != nil {
		return domain.Credential{}, err
	}

	s.Logger.Info("credential counter updated",
		"user_id", userID,
		"credential", credentialName,
		"change", change,
		"status", cred.Status,
	)
	return cred, nil
}

// applyCredentialCounter mutates cred for one outcome. Soft and hard limits
// are independent thresholds; when both are reached the hard one wins.
func applyCredentialCounter(cred *domain.Credential, policy domain.CredentialPolicy, change CounterChange, at time.Time) error {
	switch change {
	case CounterSucceeded:
		cred.AttemptCounter++
		cred.FailedAttemptCounterSoft = 0
		cred.FailedAttemptCounterHard = 0
	case CounterFailed:
		cred.AttemptCounter++
		cred.FailedAttemptCounterSoft++
		cred.FailedAttemptCounterHard++
		switch {
		case policy.LimitHard != nil && cred.FailedAttemptCounterHard >= *policy.LimitHard:
			cred.Status = domain.CredentialBlockedPermanent
			cred.BlockedAt = &at
		case policy.LimitSoft != nil && cred.FailedAttemptCounterSoft >= *policy.LimitSoft:
			cred.Status = domain.CredentialBlockedTemporary
			cred.BlockedAt = &at
		}
	case CounterBlocked:
		cred.Status = domain.CredentialBlockedPermanent
		cred.BlockedAt = &at
	default:
		return ErrInvalidRequest.WithMessage("unknown counter change")
	}
	cred.LastUpdatedAt = &at
	return nil
}

// credentialRemainingAttempts is the stricter of the open soft and hard budgets.
// It is nil when the policy sets neither limit.
func credentialRemainingAttempts(cred domain.Credential, policy domain.CredentialPolicy) *int {
	var out *int
	if policy.LimitSoft != nil {
		out = minAttempts(out, max(*policy.LimitSoft-cred.FailedAttemptCounterSoft, 0))
	}
	if policy.LimitHard != nil {
		out = minAttempts(out, max(*policy.LimitHard-cred.FailedAttemptCounterHard, 0))
	}
	return out
}

func minAttempts(cur *int, v int) *int {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}
