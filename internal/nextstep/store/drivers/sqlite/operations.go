package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

type operationsRepo struct {
	db dbtx
}

const operationColumns = `id, name, data, external_transaction_id, user_id, organization_id, state,
	result, chosen_auth_method, step_index, failed_auth_count, step_options, certificate_verified,
	cancel_reason, created_at, updated_at, expires_at`

func (r *operationsRepo) CreateOperation(ctx context.Context, o domain.Operation) error {
	stepOptions, err := encodeStepOptions(o.StepOptions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO operations (`+operationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Data, o.ExternalTransactionID, mapOptionalString(o.UserID), o.OrganizationID,
		string(o.State), string(o.Result), string(o.ChosenAuthMethod), o.StepIndex, o.FailedAuthCount,
		stepOptions, o.CertificateVerified, o.CancelReason,
		toMicros(o.CreatedAt), toMicros(o.UpdatedAt), toMicros(o.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *operationsRepo) UpdateOperation(ctx context.Context, o domain.Operation) error {
	stepOptions, err := encodeStepOptions(o.StepOptions)
	if err != nil {
		return err
	}
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE operations SET
			data = ?, external_transaction_id = ?, user_id = ?, organization_id = ?, state = ?,
			result = ?, chosen_auth_method = ?, step_index = ?, failed_auth_count = ?,
			step_options = ?, certificate_verified = ?, cancel_reason = ?, updated_at = ?,
			expires_at = ?
		WHERE id = ?`,
		o.Data, o.ExternalTransactionID, mapOptionalString(o.UserID), o.OrganizationID, string(o.State),
		string(o.Result), string(o.ChosenAuthMethod), o.StepIndex, o.FailedAuthCount,
		stepOptions, o.CertificateVerified, o.CancelReason, toMicros(o.UpdatedAt),
		toMicros(o.ExpiresAt),
		o.ID,
	))
}

func (r *operationsRepo) GetOperation(ctx context.Context, id string) (domain.Operation, error) {
	var (
		o                               domain.Operation
		userID, stepOptions             sql.NullString
		state, result, method           string
		createdAt, updatedAt, expiresAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+operationColumns+` FROM operations WHERE id = ?`, id,
	).Scan(&o.ID, &o.Name, &o.Data, &o.ExternalTransactionID, &userID, &o.OrganizationID, &state,
		&result, &method, &o.StepIndex, &o.FailedAuthCount, &stepOptions, &o.CertificateVerified,
		&o.CancelReason, &createdAt, &updatedAt, &expiresAt)
	if err != nil {
		return domain.Operation{}, mapNotFound(err)
	}
	if stepOptions.Valid {
		var opts domain.StepOptions
		if err := json.Unmarshal([]byte(stepOptions.String), &opts); err != nil {
			return domain.Operation{}, err
		}
		o.StepOptions = &opts
	}
	o.UserID = mapNullStringPtr(userID)
	o.State = domain.OperationState(state)
	o.Result = domain.AuthResult(result)
	o.ChosenAuthMethod = domain.AuthMethod(method)
	o.CreatedAt = fromMicros(createdAt)
	o.UpdatedAt = fromMicros(updatedAt)
	o.ExpiresAt = fromMicros(expiresAt)
	return o, nil
}

func (r *operationsRepo) FailTimedOutOperations(ctx context.Context, now time.Time) (int64, error) {
	ts := toMicros(now)
	res, err := r.db.ExecContext(ctx,
		`UPDATE operations SET state = ?, result = ?, updated_at = ?
		WHERE state IN (?, ?) AND expires_at <= ?`,
		string(domain.OperationFailed), string(domain.AuthFailed), ts,
		string(domain.OperationInitiated), string(domain.OperationInProgress), ts,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func encodeStepOptions(opts *domain.StepOptions) (sql.NullString, error) {
	if opts == nil {
		return sql.NullString{}, nil
	}
	s, err := encodeJSON(opts)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}

// Steps

type operationStepsRepo struct {
	db dbtx
}

func (r *operationStepsRepo) AppendOperationStep(ctx context.Context, s domain.OperationStep) (int, error) {
	var seq int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO operation_steps (operation_id, seq, auth_method, step_result, result, instruments, created_at)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?
		FROM operation_steps WHERE operation_id = ?
		RETURNING seq`,
		s.OperationID, string(s.AuthMethod), string(s.StepResult), string(s.Result),
		joinInstruments(s.Instruments), toMicros(s.CreatedAt), s.OperationID,
	).Scan(&seq)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return seq, nil
}

func (r *operationStepsRepo) ListOperationSteps(ctx context.Context, operationID string) ([]domain.OperationStep, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT operation_id, seq, auth_method, step_result, result, instruments, created_at
		FROM operation_steps WHERE operation_id = ? ORDER BY seq`, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OperationStep
	for rows.Next() {
		var (
			s                                       domain.OperationStep
			method, stepResult, result, instruments string
			createdAt                               int64
		)
		if err := rows.Scan(&s.OperationID, &s.Seq, &method, &stepResult, &result, &instruments, &createdAt); err != nil {
			return nil, err
		}
		s.AuthMethod = domain.AuthMethod(method)
		s.StepResult = domain.AuthStepResult(stepResult)
		s.Result = domain.AuthResult(result)
		s.Instruments = splitInstruments(instruments)
		s.CreatedAt = fromMicros(createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func joinInstruments(in []domain.AuthInstrument) string {
	parts := make([]string, len(in))
	for i, v := range in {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}

func splitInstruments(s string) []domain.AuthInstrument {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]domain.AuthInstrument, len(parts))
	for i, p := range parts {
		out[i] = domain.AuthInstrument(p)
	}
	return out
}

// Configs

type operationConfigsRepo struct {
	db dbtx
}

const operationConfigColumns = `operation_name, template_id, auth_methods, afs_enabled, afs_config_id,
	timeout_ms, max_auth_fails, created_at`

func (r *operationConfigsRepo) CreateOperationConfig(ctx context.Context, c domain.OperationConfig) error {
	methods, err := encodeJSON(c.AuthMethods)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO operation_configs (`+operationConfigColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.OperationName, c.TemplateID, methods, c.AfsEnabled, c.AfsConfigID,
		c.Timeout.Milliseconds(), c.MaxAuthFails, toMicros(c.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *operationConfigsRepo) GetOperationConfig(ctx context.Context, name string) (domain.OperationConfig, error) {
	return scanOperationConfig(r.db.QueryRowContext(ctx,
		`SELECT `+operationConfigColumns+` FROM operation_configs WHERE operation_name = ?`, name))
}

func (r *operationConfigsRepo) ListOperationConfigs(ctx context.Context) ([]domain.OperationConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+operationConfigColumns+` FROM operation_configs ORDER BY operation_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OperationConfig
	for rows.Next() {
		c, err := scanOperationConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *operationConfigsRepo) DeleteOperationConfig(ctx context.Context, name string) error {
	return mapConstraint(requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM operation_configs WHERE operation_name = ?`, name)))
}

func scanOperationConfig(row rowScanner) (domain.OperationConfig, error) {
	var (
		c                    domain.OperationConfig
		methods              string
		timeoutMs, createdAt int64
	)
	err := row.Scan(&c.OperationName, &c.TemplateID, &methods, &c.AfsEnabled, &c.AfsConfigID,
		&timeoutMs, &c.MaxAuthFails, &createdAt)
	if err != nil {
		return domain.OperationConfig{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(methods), &c.AuthMethods); err != nil {
		return domain.OperationConfig{}, err
	}
	c.Timeout = time.Duration(timeoutMs) * time.Millisecond
	c.CreatedAt = fromMicros(createdAt)
	return c, nil
}
