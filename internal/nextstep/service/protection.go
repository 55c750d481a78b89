package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/cryptox"
)

// ProtectionService turns plaintext credential and OTP values into their
// stored form and checks candidates against it.
type ProtectionService struct {
	// Pepper is mixed into every argon2 hash.
	Pepper string

	// Sealer encrypts reversible values. Nil disables AES_GCM protection.
	Sealer *cryptox.Sealer
}

// ProtectedValue is a value in its stored form plus what is needed to check it later.
type ProtectedValue struct {
	Value           string
	Algorithm       domain.EncryptionAlgorithm
	HashingConfigID *string
}

// Protect applies the definition's protection: hashing when a hashing config
// is set, reversible encryption when enabled, otherwise the value is kept as is.
func (s *ProtectionService) Protect(ctx context.Context, st store.Store, def domain.CredentialDefinition, plaintext string) (ProtectedValue, error) {
	if def.HashingConfigID != nil {
		cfg, err := st.HashingConfigs().GetHashingConfig(ctx, *def.HashingConfigID)
		if errors.Is(err, store.ErrNotFound) {
			return ProtectedValue{}, ErrHashingConfigNotFound
		}
		if err != nil {
			return ProtectedValue{}, fmt.Errorf("get hashing config: %w", err)
		}
		if cfg.Status != domain.ConfigActive {
			return ProtectedValue{}, ErrInvalidConfiguration.WithMessage("hashing config is not active")
		}

		hash, err := s.hash(plaintext, cfg)
		if err != nil {
			return ProtectedValue{}, err
		}
		id := cfg.ID
		return ProtectedValue{Value: hash, Algorithm: domain.NoEncryption, HashingConfigID: &id}, nil
	}

	value, alg, err := s.seal(plaintext, def.EncryptionEnabled, def.EncryptionAlgorithm)
	if err != nil {
		return ProtectedValue{}, err
	}
	return ProtectedValue{Value: value, Algorithm: alg}, nil
}

// ProtectOtp protects an OTP value. OTPs are never hashed.
func (s *ProtectionService) ProtectOtp(def domain.OtpDefinition, plaintext string) (string, domain.EncryptionAlgorithm, error) {
	return s.seal(plaintext, def.EncryptionEnabled, def.EncryptionAlgorithm)
}

// Verify reports whether candidate matches the stored value.
func (s *ProtectionService) Verify(candidate, stored string, alg domain.EncryptionAlgorithm, hashingConfigID *string) (bool, error) {
	if hashingConfigID != nil {
		err := cryptox.VerifyPassword(candidate, s.Pepper, stored)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, cryptox.ErrPasswordMismatch):
			return false, nil
		default:
			return false, ErrEncryption.Wrap(err)
		}
	}

	plain, err := s.Reveal(stored, alg)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(plain)) == 1, nil
}

// Reveal returns the plaintext of a reversibly protected value.
func (s *ProtectionService) Reveal(stored string, alg domain.EncryptionAlgorithm) (string, error) {
	switch alg {
	case domain.NoEncryption, "":
		return stored, nil
	case domain.AESGCM:
		if s.Sealer == nil {
			return "", ErrInvalidConfiguration.WithMessage("master key is not configured")
		}
		plain, err := s.Sealer.OpenString(stored)
		if err != nil {
			return "", ErrEncryption.Wrap(err)
		}
		return plain, nil
	default:
		return "", ErrInvalidConfiguration.WithMessage("unsupported encryption algorithm")
	}
}

func (s *ProtectionService) hash(plaintext string, cfg domain.HashingConfig) (string, error) {
	var variant string
	switch cfg.Algorithm {
	case domain.HashingArgon2i:
		variant = cryptox.Argon2i
	case domain.HashingArgon2id:
		variant = cryptox.Argon2id
	default:
		return "", ErrInvalidConfiguration.WithMessage("unsupported hashing algorithm")
	}

	params := cryptox.Argon2Params{
		Variant:     variant,
		Memory:      cfg.Memory,
		Iterations:  cfg.Iterations,
		Parallelism: cfg.Parallelism,
		SaltLength:  cfg.SaltLength,
		KeyLength:   cfg.KeyLength,
	}
	if err := params.Validate(); err != nil {
		return "", ErrInvalidConfiguration.WithMessage("invalid hashing parameters").Wrap(err)
	}

	hash, err := cryptox.HashPassword(plaintext, s.Pepper, params)
	if err != nil {
		return "", ErrEncryption.Wrap(err)
	}
	return hash, nil
}

func (s *ProtectionService) seal(plaintext string, enabled bool, alg domain.EncryptionAlgorithm) (string, domain.EncryptionAlgorithm, error) {
	if !enabled {
		return plaintext, domain.NoEncryption, nil
	}
	if alg != domain.AESGCM && alg != "" {
		return "", "", ErrInvalidConfiguration.WithMessage("unsupported encryption algorithm")
	}
	if s.Sealer == nil {
		return "", "", ErrInvalidConfiguration.WithMessage("master key is not configured")
	}

	sealed, err := s.Sealer.SealString(plaintext)
	if err != nil {
		return "", "", ErrEncryption.Wrap(err)
	}
	return sealed, domain.AESGCM, nil
}
