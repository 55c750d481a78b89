package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

// loadUser returns the user unless it is missing or removed.
func loadUser(ctx context.Context, st store.Store, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, ErrUserNotFound
	}
	u, err := st.Users().GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if u.Status == domain.UserRemoved {
		return domain.User{}, ErrUserNotFound
	}
	return u, nil
}

// loadDefinition resolves an active credential definition by name with its policy.
func loadDefinition(ctx context.Context, st store.Store, name string) (domain.CredentialDefinition, domain.CredentialPolicy, error) {
	def, err := st.CredentialDefinitions().GetCredentialDefinitionByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CredentialDefinition{}, domain.CredentialPolicy{}, ErrCredentialDefinitionNotFound
	}
	if err != nil {
		return domain.CredentialDefinition{}, domain.CredentialPolicy{}, fmt.Errorf("get credential definition: %w", err)
	}
	if def.Status != domain.ConfigActive {
		return domain.CredentialDefinition{}, domain.CredentialPolicy{}, ErrCredentialDefinitionNotFound
	}

	policy, err := st.CredentialPolicies().GetCredentialPolicy(ctx, def.CredentialPolicyID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CredentialDefinition{}, domain.CredentialPolicy{}, ErrCredentialPolicyNotFound
	}
	if err != nil {
		return domain.CredentialDefinition{}, domain.CredentialPolicy{}, fmt.Errorf("get credential policy: %w", err)
	}
	if policy.Status != domain.ConfigActive {
		return domain.CredentialDefinition{}, domain.CredentialPolicy{}, ErrInvalidConfiguration.WithMessage("credential policy is not active")
	}
	return def, policy, nil
}

// loadOtpDefinition resolves an active OTP definition by name with its policy.
func loadOtpDefinition(ctx context.Context, st store.Store, name string) (domain.OtpDefinition, domain.OtpPolicy, error) {
	def, err := st.OtpDefinitions().GetOtpDefinitionByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return domain.OtpDefinition{}, domain.OtpPolicy{}, ErrOtpDefinitionNotFound
	}
	if err != nil {
		return domain.OtpDefinition{}, domain.OtpPolicy{}, fmt.Errorf("get otp definition: %w", err)
	}
	if def.Status != domain.ConfigActive {
		return domain.OtpDefinition{}, domain.OtpPolicy{}, ErrOtpDefinitionNotFound
	}

	policy, err := st.OtpPolicies().GetOtpPolicy(ctx, def.OtpPolicyID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.OtpDefinition{}, domain.OtpPolicy{}, ErrOtpPolicyNotFound
	}
	if err != nil {
		return domain.OtpDefinition{}, domain.OtpPolicy{}, fmt.Errorf("get otp policy: %w", err)
	}
	return def, policy, nil
}

// loadOperation returns the operation and its configuration.
func loadOperation(ctx context.Context, st store.Store, id string) (domain.Operation, domain.OperationConfig, error) {
	op, err := st.Operations().GetOperation(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Operation{}, domain.OperationConfig{}, ErrOperationNotFound
	}
	if err != nil {
		return domain.Operation{}, domain.OperationConfig{}, fmt.Errorf("get operation: %w", err)
	}
	cfg, err := st.OperationConfigs().GetOperationConfig(ctx, op.Name)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Operation{}, domain.OperationConfig{}, ErrOperationNotConfigured
	}
	if err != nil {
		return domain.Operation{}, domain.OperationConfig{}, fmt.Errorf("get operation config: %w", err)
	}
	return op, cfg, nil
}
