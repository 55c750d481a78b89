package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
)

// AuthMethodService keeps the auth method registry and per-user method preferences.
type AuthMethodService struct {
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time
}

// UserAuthMethodStatus is a registered method with its effective state for one user.
type UserAuthMethodStatus struct {
	domain.AuthMethodDefinition
	Enabled bool
	Config  map[string]string
}

var knownAuthMethods = []domain.AuthMethod{
	domain.MethodUsernamePassword,
	domain.MethodSMSKey,
	domain.MethodLoginSCA,
	domain.MethodApprovalSCA,
	domain.MethodConsent,
}

// CreateAuthMethod registers a method.
func (s *AuthMethodService) CreateAuthMethod(ctx context.Context, m domain.AuthMethodDefinition) (domain.AuthMethodDefinition, error) {
	if !slices.Contains(knownAuthMethods, m.Method) {
		return domain.AuthMethodDefinition{}, ErrInvalidRequest.WithMessage("unknown auth method")
	}
	if m.OrderNumber < 0 {
		return domain.AuthMethodDefinition{}, ErrInvalidRequest.WithMessage("order number must not be negative")
	}
	m.CreatedAt = now(s.Now)

	err := s.Store.AuthMethods().CreateAuthMethod(ctx, m)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.AuthMethodDefinition{}, ErrAuthMethodAlreadyExists
	}
	if err != nil {
		return domain.AuthMethodDefinition{}, fmt.Errorf("create auth method: %w", err)
	}

	s.Logger.Info("auth method created", "auth_method", m.Method, "check_user_prefs", m.CheckUserPrefs)
	return m, nil
}

// ListAuthMethods returns the registry in display order.
func (s *AuthMethodService) ListAuthMethods(ctx context.Context) ([]domain.AuthMethodDefinition, error) {
	methods, err := s.Store.AuthMethods().ListAuthMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auth methods: %w", err)
	}
	if len(methods) == 0 {
		return nil, ErrInvalidConfiguration.WithMessage("no auth methods are registered")
	}
	return methods, nil
}

// DeleteAuthMethod unregisters a method that no operation config or user preference uses.
func (s *AuthMethodService) DeleteAuthMethod(ctx context.Context, method domain.AuthMethod) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cfgs, err := tx.OperationConfigs().ListOperationConfigs(ctx)
		if err != nil {
			return fmt.Errorf("list operation configs: %w", err)
		}
		for _, cfg := range cfgs {
			if slices.Contains(cfg.AuthMethods, method) {
				return ErrInvalidRequest.WithMessage("auth method is used by operation config " + cfg.OperationName)
			}
		}

		err = tx.AuthMethods().DeleteAuthMethod(ctx, method)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ErrAuthMethodNotFound
		case errors.Is(err, store.ErrReferenced):
			return ErrInvalidRequest.WithMessage("auth method has user preferences")
		case err != nil:
			return fmt.Errorf("delete auth method: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Logger.Info("auth method deleted", "auth_method", method)
	return nil
}

// ListForUser returns every registered method with the user's effective state.
// Unknown users get the registry defaults.
func (s *AuthMethodService) ListForUser(ctx context.Context, userID string) ([]UserAuthMethodStatus, error) {
	methods, err := s.ListAuthMethods(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.Store.UserAuthMethods().ListUserAuthMethods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user auth methods: %w", err)
	}

	out := make([]UserAuthMethodStatus, 0, len(methods))
	for _, m := range methods {
		st := UserAuthMethodStatus{AuthMethodDefinition: m, Enabled: effectiveEnabled(m, prefs)}
		if i := slices.IndexFunc(prefs, func(p domain.UserAuthMethod) bool { return p.Method == m.Method }); i >= 0 {
			st.Config = prefs[i].Config
		}
		out = append(out, st)
	}
	return out, nil
}

// EnabledForOperation returns the operation config's methods the user may use, in step order.
func (s *AuthMethodService) EnabledForOperation(ctx context.Context, userID, operationName string) ([]domain.AuthMethod, error) {
	cfg, err := s.Store.OperationConfigs().GetOperationConfig(ctx, operationName)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOperationNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("get operation config: %w", err)
	}

	out := []domain.AuthMethod{}
	for _, m := range cfg.AuthMethods {
		ok, err := s.enabled(ctx, s.Store, userID, m)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// EnableForUser turns a method on for the user, replacing its config.
func (s *AuthMethodService) EnableForUser(ctx context.Context, userID string, method domain.AuthMethod, config map[string]string) error {
	return s.setForUser(ctx, userID, method, true, config)
}

// DisableForUser turns a method off for the user.
func (s *AuthMethodService) DisableForUser(ctx context.Context, userID string, method domain.AuthMethod) error {
	return s.setForUser(ctx, userID, method, false, nil)
}

func (s *AuthMethodService) setForUser(ctx context.Context, userID string, method domain.AuthMethod, enabled bool, config map[string]string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := loadUser(ctx, tx, userID); err != nil {
			return err
		}
		def, err := tx.AuthMethods().GetAuthMethod(ctx, method)
		if errors.Is(err, store.ErrNotFound) {
			return ErrAuthMethodNotFound
		}
		if err != nil {
			return fmt.Errorf("get auth method: %w", err)
		}
		if !def.CheckUserPrefs {
			return ErrInvalidRequest.WithMessage("auth method does not use user preferences")
		}
		return tx.UserAuthMethods().SetUserAuthMethod(ctx, domain.UserAuthMethod{
			UserID:    userID,
			Method:    method,
			Enabled:   enabled,
			Config:    config,
			UpdatedAt: now(s.Now),
		})
	})
	if err != nil {
		return err
	}

	s.Logger.Info("user auth method updated", "user_id", userID, "auth_method", method, "enabled", enabled)
	return nil
}

// enabled reports whether the user may use method. Methods outside the
// registry are always allowed.
func (s *AuthMethodService) enabled(ctx context.Context, st store.Store, userID string, method domain.AuthMethod) (bool, error) {
	def, err := st.AuthMethods().GetAuthMethod(ctx, method)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("get auth method: %w", err)
	}
	if !def.CheckUserPrefs {
		return true, nil
	}
	prefs, err := st.UserAuthMethods().ListUserAuthMethods(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("list user auth methods: %w", err)
	}
	return effectiveEnabled(def, prefs), nil
}

// requireEnabled fails with ErrAuthMethodNotEnabled when the user turned method off.
func (s *AuthMethodService) requireEnabled(ctx context.Context, st store.Store, userID string, method domain.AuthMethod) error {
	ok, err := s.enabled(ctx, st, userID, method)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthMethodNotEnabled.WithDetails(string(method))
	}
	return nil
}

func effectiveEnabled(def domain.AuthMethodDefinition, prefs []domain.UserAuthMethod) bool {
	if !def.CheckUserPrefs {
		return true
	}
	for _, p := range prefs {
		if p.Method == def.Method {
			return p.Enabled
		}
	}
	return def.UserPrefsDefault
}
