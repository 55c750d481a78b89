package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
)

// Credential policies

type credentialPoliciesRepo struct {
	db dbtx
}

const credentialPolicyColumns = `id, name, description, username_length_min, username_length_max,
	username_allowed_pattern, username_gen_algorithm, username_gen_length,
	credential_length_min, credential_length_max, require_uppercase, require_lowercase,
	require_digit, require_special, prohibited_values, limit_soft, limit_hard,
	check_history_count, rotation_enabled, rotation_days, temporary_expiration_time,
	credential_gen_algorithm, credential_gen_length, status, created_at, updated_at`

func (r *credentialPoliciesRepo) CreateCredentialPolicy(ctx context.Context, p domain.CredentialPolicy) error {
	prohibited := p.ProhibitedValues
	if prohibited == nil {
		prohibited = []string{}
	}
	prohibitedJSON, err := encodeJSON(prohibited)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO credential_policies (`+credentialPolicyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.UsernameLengthMin, p.UsernameLengthMax,
		p.UsernameAllowedPattern, string(p.UsernameGenAlgorithm), p.UsernameGenLength,
		p.CredentialLengthMin, p.CredentialLengthMax, p.RequireUppercase, p.RequireLowercase,
		p.RequireDigit, p.RequireSpecial, prohibitedJSON, mapOptionalInt(p.LimitSoft), mapOptionalInt(p.LimitHard),
		p.CheckHistoryCount, p.RotationEnabled, mapOptionalInt(p.RotationDays), mapOptionalInt(p.TemporaryExpirationTime),
		string(p.CredentialGenAlgorithm), p.CredentialGenLength, string(p.Status), toMicros(p.CreatedAt), toMicros(p.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *credentialPoliciesRepo) GetCredentialPolicy(ctx context.Context, id string) (domain.CredentialPolicy, error) {
	return scanCredentialPolicy(r.db.QueryRowContext(ctx,
		`SELECT `+credentialPolicyColumns+` FROM credential_policies WHERE id = ?`, id))
}

func (r *credentialPoliciesRepo) GetCredentialPolicyByName(ctx context.Context, name string) (domain.CredentialPolicy, error) {
	return scanCredentialPolicy(r.db.QueryRowContext(ctx,
		`SELECT `+credentialPolicyColumns+` FROM credential_policies WHERE name = ?`, name))
}

func scanCredentialPolicy(row rowScanner) (domain.CredentialPolicy, error) {
	var (
		p                                        domain.CredentialPolicy
		usernameGen, credentialGen, status       string
		prohibited                               string
		limitSoft, limitHard, rotationDays, temp sql.NullInt64
		createdAt, updatedAt                     int64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.UsernameLengthMin, &p.UsernameLengthMax,
		&p.UsernameAllowedPattern, &usernameGen, &p.UsernameGenLength,
		&p.CredentialLengthMin, &p.CredentialLengthMax, &p.RequireUppercase, &p.RequireLowercase,
		&p.RequireDigit, &p.RequireSpecial, &prohibited, &limitSoft, &limitHard,
		&p.CheckHistoryCount, &p.RotationEnabled, &rotationDays, &temp,
		&credentialGen, &p.CredentialGenLength, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.CredentialPolicy{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(prohibited), &p.ProhibitedValues); err != nil {
		return domain.CredentialPolicy{}, err
	}
	p.UsernameGenAlgorithm = domain.UsernameGenAlgorithm(usernameGen)
	p.CredentialGenAlgorithm = domain.CredentialGenAlgorithm(credentialGen)
	p.Status = domain.ConfigStatus(status)
	p.LimitSoft = mapNullIntPtr(limitSoft)
	p.LimitHard = mapNullIntPtr(limitHard)
	p.RotationDays = mapNullIntPtr(rotationDays)
	p.TemporaryExpirationTime = mapNullIntPtr(temp)
	p.CreatedAt = fromMicros(createdAt)
	p.UpdatedAt = fromMicros(updatedAt)
	return p, nil
}

// Hashing configs

type hashingConfigsRepo struct {
	db dbtx
}

const hashingConfigColumns = `id, name, algorithm, memory, iterations, parallelism, salt_length, key_length, status, created_at`

func (r *hashingConfigsRepo) CreateHashingConfig(ctx context.Context, h domain.HashingConfig) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hashing_configs (`+hashingConfigColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, string(h.Algorithm), int64(h.Memory), int64(h.Iterations), int64(h.Parallelism),
		int64(h.SaltLength), int64(h.KeyLength), string(h.Status), toMicros(h.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *hashingConfigsRepo) GetHashingConfig(ctx context.Context, id string) (domain.HashingConfig, error) {
	return scanHashingConfig(r.db.QueryRowContext(ctx,
		`SELECT `+hashingConfigColumns+` FROM hashing_configs WHERE id = ?`, id))
}

func (r *hashingConfigsRepo) GetHashingConfigByName(ctx context.Context, name string) (domain.HashingConfig, error) {
	return scanHashingConfig(r.db.QueryRowContext(ctx,
		`SELECT `+hashingConfigColumns+` FROM hashing_configs WHERE name = ?`, name))
}

func scanHashingConfig(row rowScanner) (domain.HashingConfig, error) {
	var (
		h                                                domain.HashingConfig
		algorithm, status                                string
		memory, iterations, parallelism, saltLen, keyLen int64
		createdAt                                        int64
	)
	err := row.Scan(&h.ID, &h.Name, &algorithm, &memory, &iterations, &parallelism,
		&saltLen, &keyLen, &status, &createdAt)
	if err != nil {
		return domain.HashingConfig{}, mapNotFound(err)
	}
	h.Algorithm = domain.HashingAlgorithm(algorithm)
	h.Memory = uint32(memory)
	h.Iterations = uint32(iterations)
	h.Parallelism = uint8(parallelism)
	h.SaltLength = uint32(saltLen)
	h.KeyLength = uint32(keyLen)
	h.Status = domain.ConfigStatus(status)
	h.CreatedAt = fromMicros(createdAt)
	return h, nil
}

// Credential definitions

type credentialDefinitionsRepo struct {
	db dbtx
}

const credentialDefinitionColumns = `id, name, description, credential_policy_id, category,
	encryption_enabled, encryption_algorithm, hashing_config_id, e2e_enabled, e2e_algorithm,
	e2e_cipher_transformation, e2e_for_temporary_credential, status, created_at, updated_at`

func (r *credentialDefinitionsRepo) CreateCredentialDefinition(ctx context.Context, d domain.CredentialDefinition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credential_definitions (`+credentialDefinitionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Description, d.CredentialPolicyID, string(d.Category),
		d.EncryptionEnabled, string(d.EncryptionAlgorithm), mapOptionalString(d.HashingConfigID),
		d.E2EEncryptionEnabled, d.E2EEncryptionAlgorithm, d.E2EEncryptionCipherTransformation,
		d.E2EEncryptionForTemporaryCredential, string(d.Status), toMicros(d.CreatedAt), toMicros(d.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *credentialDefinitionsRepo) GetCredentialDefinition(ctx context.Context, id string) (domain.CredentialDefinition, error) {
	return scanCredentialDefinition(r.db.QueryRowContext(ctx,
		`SELECT `+credentialDefinitionColumns+` FROM credential_definitions WHERE id = ?`, id))
}

func (r *credentialDefinitionsRepo) GetCredentialDefinitionByName(ctx context.Context, name string) (domain.CredentialDefinition, error) {
	return scanCredentialDefinition(r.db.QueryRowContext(ctx,
		`SELECT `+credentialDefinitionColumns+` FROM credential_definitions WHERE name = ?`, name))
}

func scanCredentialDefinition(row rowScanner) (domain.CredentialDefinition, error) {
	var (
		d                           domain.CredentialDefinition
		category, algorithm, status string
		hashingConfigID             sql.NullString
		createdAt, updatedAt        int64
	)
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CredentialPolicyID, &category,
		&d.EncryptionEnabled, &algorithm, &hashingConfigID, &d.E2EEncryptionEnabled, &d.E2EEncryptionAlgorithm,
		&d.E2EEncryptionCipherTransformation, &d.E2EEncryptionForTemporaryCredential, &status, &createdAt, &updatedAt)
	if err != nil {
		return domain.CredentialDefinition{}, mapNotFound(err)
	}
	d.Category = domain.CredentialCategory(category)
	d.EncryptionAlgorithm = domain.EncryptionAlgorithm(algorithm)
	d.HashingConfigID = mapNullStringPtr(hashingConfigID)
	d.Status = domain.ConfigStatus(status)
	d.CreatedAt = fromMicros(createdAt)
	d.UpdatedAt = fromMicros(updatedAt)
	return d, nil
}

// OTP policies

type otpPoliciesRepo struct {
	db dbtx
}

func (r *otpPoliciesRepo) CreateOtpPolicy(ctx context.Context, p domain.OtpPolicy) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_policies (id, name, length, attempt_limit, expiration_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Length, mapOptionalInt(p.AttemptLimit), p.ExpirationTime, string(p.Status), toMicros(p.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *otpPoliciesRepo) GetOtpPolicy(ctx context.Context, id string) (domain.OtpPolicy, error) {
	var (
		p            domain.OtpPolicy
		attemptLimit sql.NullInt64
		status       string
		createdAt    int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, length, attempt_limit, expiration_time, status, created_at
		FROM otp_policies WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Length, &attemptLimit, &p.ExpirationTime, &status, &createdAt)
	if err != nil {
		return domain.OtpPolicy{}, mapNotFound(err)
	}
	p.AttemptLimit = mapNullIntPtr(attemptLimit)
	p.Status = domain.ConfigStatus(status)
	p.CreatedAt = fromMicros(createdAt)
	return p, nil
}

// OTP definitions

type otpDefinitionsRepo struct {
	db dbtx
}

const otpDefinitionColumns = `id, name, otp_policy_id, encryption_enabled, encryption_algorithm, status, created_at`

func (r *otpDefinitionsRepo) CreateOtpDefinition(ctx context.Context, d domain.OtpDefinition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_definitions (`+otpDefinitionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.OtpPolicyID, d.EncryptionEnabled, string(d.EncryptionAlgorithm), string(d.Status), toMicros(d.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *otpDefinitionsRepo) GetOtpDefinition(ctx context.Context, id string) (domain.OtpDefinition, error) {
	return scanOtpDefinition(r.db.QueryRowContext(ctx,
		`SELECT `+otpDefinitionColumns+` FROM otp_definitions WHERE id = ?`, id))
}

func (r *otpDefinitionsRepo) GetOtpDefinitionByName(ctx context.Context, name string) (domain.OtpDefinition, error) {
	return scanOtpDefinition(r.db.QueryRowContext(ctx,
		`SELECT `+otpDefinitionColumns+` FROM otp_definitions WHERE name = ?`, name))
}

func scanOtpDefinition(row rowScanner) (domain.OtpDefinition, error) {
	var (
		d                 domain.OtpDefinition
		algorithm, status string
		createdAt         int64
	)
	err := row.Scan(&d.ID, &d.Name, &d.OtpPolicyID, &d.EncryptionEnabled, &algorithm, &status, &createdAt)
	if err != nil {
		return domain.OtpDefinition{}, mapNotFound(err)
	}
	d.EncryptionAlgorithm = domain.EncryptionAlgorithm(algorithm)
	d.Status = domain.ConfigStatus(status)
	d.CreatedAt = fromMicros(createdAt)
	return d, nil
}
