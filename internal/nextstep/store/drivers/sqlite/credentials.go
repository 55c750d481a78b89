package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

type credentialsRepo struct {
	db dbtx
}

const credentialColumns = `id, definition_id, user_id, type, username, value, encryption_algorithm,
	hashing_config_id, status, attempt_counter, failed_attempt_counter_soft, failed_attempt_counter_hard,
	created_at, expires_at, blocked_at, last_updated_at, last_credential_change_at, last_username_change_at`

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (`+credentialColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.DefinitionID, c.UserID, string(c.Type), c.Username, c.Value, string(c.EncryptionAlgorithm),
		mapOptionalString(c.HashingConfigID), string(c.Status), c.AttemptCounter,
		c.FailedAttemptCounterSoft, c.FailedAttemptCounterHard, toMicros(c.CreatedAt),
		mapOptionalTime(c.ExpiresAt), mapOptionalTime(c.BlockedAt), mapOptionalTime(c.LastUpdatedAt),
		mapOptionalTime(c.LastCredentialChangeAt), mapOptionalTime(c.LastUsernameChangeAt),
	)
	return mapConstraint(err)
}

func (r *credentialsRepo) UpdateCredential(ctx context.Context, c domain.Credential) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE credentials SET
			type = ?, username = ?, value = ?, encryption_algorithm = ?, hashing_config_id = ?,
			status = ?, attempt_counter = ?, failed_attempt_counter_soft = ?, failed_attempt_counter_hard = ?,
			expires_at = ?, blocked_at = ?, last_updated_at = ?, last_credential_change_at = ?,
			last_username_change_at = ?
		WHERE id = ?`,
		string(c.Type), c.Username, c.Value, string(c.EncryptionAlgorithm), mapOptionalString(c.HashingConfigID),
		string(c.Status), c.AttemptCounter, c.FailedAttemptCounterSoft, c.FailedAttemptCounterHard,
		mapOptionalTime(c.ExpiresAt), mapOptionalTime(c.BlockedAt), mapOptionalTime(c.LastUpdatedAt),
		mapOptionalTime(c.LastCredentialChangeAt), mapOptionalTime(c.LastUsernameChangeAt),
		c.ID,
	))
}

func (r *credentialsRepo) GetCredential(ctx context.Context, id string) (domain.Credential, error) {
	return scanCredential(r.db.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM credentials WHERE id = ?`, id))
}

func (r *credentialsRepo) GetCredentialForUser(ctx context.Context, userID, definitionID string) (domain.Credential, error) {
	return scanCredential(r.db.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM credentials WHERE user_id = ? AND definition_id = ?`,
		userID, definitionID))
}

func (r *credentialsRepo) ListCredentialsForUser(ctx context.Context, userID string) ([]domain.Credential, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+credentialColumns+` FROM credentials WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *credentialsRepo) UsernameTaken(ctx context.Context, definitionID, username, excludeUserID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credentials
		WHERE definition_id = ? AND username = ? AND status != ? AND user_id != ?`,
		definitionID, username, string(domain.CredentialRemoved), excludeUserID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *credentialsRepo) ResetSoftCounters(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE credentials SET
			status = CASE WHEN status = ? THEN ? ELSE status END,
			blocked_at = CASE WHEN status = ? THEN NULL ELSE blocked_at END,
			failed_attempt_counter_soft = 0,
			last_updated_at = ?
		WHERE status = ? OR (failed_attempt_counter_soft > 0 AND status != ?)`,
		string(domain.CredentialBlockedTemporary), string(domain.CredentialActive),
		string(domain.CredentialBlockedTemporary),
		toMicros(now),
		string(domain.CredentialBlockedTemporary), string(domain.CredentialRemoved),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanCredential(row rowScanner) (domain.Credential, error) {
	var (
		c                                    domain.Credential
		credType, algorithm, status          string
		hashingConfigID                      sql.NullString
		createdAt                            int64
		expiresAt, blockedAt, lastUpdatedAt  sql.NullInt64
		lastCredentialChange, lastUserChange sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.DefinitionID, &c.UserID, &credType, &c.Username, &c.Value, &algorithm,
		&hashingConfigID, &status, &c.AttemptCounter, &c.FailedAttemptCounterSoft, &c.FailedAttemptCounterHard,
		&createdAt, &expiresAt, &blockedAt, &lastUpdatedAt, &lastCredentialChange, &lastUserChange)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	c.Type = domain.CredentialType(credType)
	c.EncryptionAlgorithm = domain.EncryptionAlgorithm(algorithm)
	c.HashingConfigID = mapNullStringPtr(hashingConfigID)
	c.Status = domain.CredentialStatus(status)
	c.CreatedAt = fromMicros(createdAt)
	c.ExpiresAt = mapNullTimePtr(expiresAt)
	c.BlockedAt = mapNullTimePtr(blockedAt)
	c.LastUpdatedAt = mapNullTimePtr(lastUpdatedAt)
	c.LastCredentialChangeAt = mapNullTimePtr(lastCredentialChange)
	c.LastUsernameChangeAt = mapNullTimePtr(lastUserChange)
	return c, nil
}

type credentialHistoryRepo struct {
	db dbtx
}

func (r *credentialHistoryRepo) AppendCredentialHistory(ctx context.Context, h domain.CredentialHistory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credential_history
			(id, user_id, definition_id, username, value, encryption_algorithm, hashing_config_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.DefinitionID, h.Username, h.Value, string(h.EncryptionAlgorithm),
		mapOptionalString(h.HashingConfigID), toMicros(h.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *credentialHistoryRepo) ListRecentCredentialHistory(ctx context.Context, userID, definitionID string, limit int) ([]domain.CredentialHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, definition_id, username, value, encryption_algorithm, hashing_config_id, created_at
		FROM credential_history
		WHERE user_id = ? AND definition_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		userID, definitionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CredentialHistory
	for rows.Next() {
		var (
			h               domain.CredentialHistory
			algorithm       string
			hashingConfigID sql.NullString
			createdAt       int64
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.DefinitionID, &h.Username, &h.Value, &algorithm,
			&hashingConfigID, &createdAt); err != nil {
			return nil, err
		}
		h.EncryptionAlgorithm = domain.EncryptionAlgorithm(algorithm)
		h.HashingConfigID = mapNullStringPtr(hashingConfigID)
		h.CreatedAt = fromMicros(createdAt)
		out = append(out, h)
	}
	return out, rows.Err()
}
