package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

type otpsRepo struct {
	db dbtx
}

const otpColumns = `id, definition_id, user_id, credential_definition_id, operation_id, value, salt,
	status, otp_data, attempt_counter, failed_attempt_counter, encryption_algorithm,
	created_at, verified_at, blocked_at, expires_at`

func (r *otpsRepo) CreateOtp(ctx context.Context, o domain.Otp) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otps (`+otpColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.DefinitionID, mapOptionalString(o.UserID), mapOptionalString(o.CredentialDefinitionID),
		mapOptionalString(o.OperationID), o.Value, o.Salt, string(o.Status), o.OtpData,
		o.AttemptCounter, o.FailedAttemptCounter, string(o.EncryptionAlgorithm), toMicros(o.CreatedAt),
		mapOptionalTime(o.VerifiedAt), mapOptionalTime(o.BlockedAt), toMicros(o.ExpiresAt),
	)
	return mapConstraint(err)
}

func (r *otpsRepo) UpdateOtp(ctx context.Context, o domain.Otp) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE otps SET
			value = ?, salt = ?, status = ?, otp_data = ?, attempt_counter = ?,
			failed_attempt_counter = ?, encryption_algorithm = ?, verified_at = ?,
			blocked_at = ?, expires_at = ?
		WHERE id = ?`,
		o.Value, o.Salt, string(o.Status), o.OtpData, o.AttemptCounter,
		o.FailedAttemptCounter, string(o.EncryptionAlgorithm), mapOptionalTime(o.VerifiedAt),
		mapOptionalTime(o.BlockedAt), toMicros(o.ExpiresAt),
		o.ID,
	))
}

func (r *otpsRepo) GetOtp(ctx context.Context, id string) (domain.Otp, error) {
	return scanOtp(r.db.QueryRowContext(ctx, `SELECT `+otpColumns+` FROM otps WHERE id = ?`, id))
}

func (r *otpsRepo) ListOtpsForOperation(ctx context.Context, operationID string) ([]domain.Otp, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+otpColumns+` FROM otps WHERE operation_id = ? ORDER BY created_at DESC, id DESC`,
		operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Otp
	for rows.Next() {
		o, err := scanOtp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *otpsRepo) ExpireOverdueOtps(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otps SET status = ? WHERE status = ? AND expires_at <= ?`,
		string(domain.OtpExpired), string(domain.OtpActive), toMicros(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanOtp(row rowScanner) (domain.Otp, error) {
	var (
		o                                           domain.Otp
		userID, credentialDefinitionID, operationID sql.NullString
		status, algorithm                           string
		createdAt, expiresAt                        int64
		verifiedAt, blockedAt                       sql.NullInt64
	)
	err := row.Scan(&o.ID, &o.DefinitionID, &userID, &credentialDefinitionID, &operationID, &o.Value, &o.Salt,
		&status, &o.OtpData, &o.AttemptCounter, &o.FailedAttemptCounter, &algorithm,
		&createdAt, &verifiedAt, &blockedAt, &expiresAt)
	if err != nil {
		return domain.Otp{}, mapNotFound(err)
	}
	o.UserID = mapNullStringPtr(userID)
	o.CredentialDefinitionID = mapNullStringPtr(credentialDefinitionID)
	o.OperationID = mapNullStringPtr(operationID)
	o.Status = domain.OtpStatus(status)
	o.EncryptionAlgorithm = domain.EncryptionAlgorithm(algorithm)
	o.CreatedAt = fromMicros(createdAt)
	o.VerifiedAt = mapNullTimePtr(verifiedAt)
	o.BlockedAt = mapNullTimePtr(blockedAt)
	o.ExpiresAt = fromMicros(expiresAt)
	return o, nil
}
