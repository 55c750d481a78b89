package sqlite

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

type authMethodsRepo struct {
	db dbtx
}

const authMethodColumns = `method, order_number, check_user_prefs, user_prefs_default,
	has_user_interface, display_name_key, created_at`

func (r *authMethodsRepo) CreateAuthMethod(ctx context.Context, m domain.AuthMethodDefinition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_methods (`+authMethodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(m.Method), m.OrderNumber, m.CheckUserPrefs, m.UserPrefsDefault,
		m.HasUserInterface, m.DisplayNameKey, toMicros(m.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *authMethodsRepo) GetAuthMethod(ctx context.Context, method domain.AuthMethod) (domain.AuthMethodDefinition, error) {
	m, err := scanAuthMethod(r.db.QueryRowContext(ctx,
		`SELECT `+authMethodColumns+` FROM auth_methods WHERE method = ?`, string(method)))
	if err != nil {
		return domain.AuthMethodDefinition{}, mapNotFound(err)
	}
	return m, nil
}

func (r *authMethodsRepo) ListAuthMethods(ctx context.Context) ([]domain.AuthMethodDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+authMethodColumns+` FROM auth_methods ORDER BY order_number, method`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuthMethodDefinition
	for rows.Next() {
		m, err := scanAuthMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *authMethodsRepo) DeleteAuthMethod(ctx context.Context, method domain.AuthMethod) error {
	return mapConstraint(requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM auth_methods WHERE method = ?`, string(method))))
}

func scanAuthMethod(row rowScanner) (domain.AuthMethodDefinition, error) {
	var (
		m         domain.AuthMethodDefinition
		method    string
		createdAt int64
	)
	if err := row.Scan(&method, &m.OrderNumber, &m.CheckUserPrefs, &m.UserPrefsDefault,
		&m.HasUserInterface, &m.DisplayNameKey, &createdAt); err != nil {
		return domain.AuthMethodDefinition{}, err
	}
	m.Method = domain.AuthMethod(method)
	m.CreatedAt = fromMicros(createdAt)
	return m, nil
}

// User preferences

type userAuthMethodsRepo struct {
	db dbtx
}

func (r *userAuthMethodsRepo) SetUserAuthMethod(ctx context.Context, m domain.UserAuthMethod) error {
	cfg := m.Config
	if cfg == nil {
		cfg = map[string]string{}
	}
	encoded, err := encodeJSON(cfg)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_auth_methods (user_id, method, enabled, config, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, method) DO UPDATE SET
			enabled = excluded.enabled, config = excluded.config, updated_at = excluded.updated_at`,
		m.UserID, string(m.Method), m.Enabled, encoded, toMicros(m.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *userAuthMethodsRepo) ListUserAuthMethods(ctx context.Context, userID string) ([]domain.UserAuthMethod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, method, enabled, config, updated_at
		FROM user_auth_methods WHERE user_id = ? ORDER BY method`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserAuthMethod
	for rows.Next() {
		var (
			m              domain.UserAuthMethod
			method, config string
			updatedAt      int64
		)
		if err := rows.Scan(&m.UserID, &method, &m.Enabled, &config, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(config), &m.Config); err != nil {
			return nil, err
		}
		m.Method = domain.AuthMethod(method)
		m.UpdatedAt = fromMicros(updatedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}
