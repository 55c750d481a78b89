package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 variants understood by HashPassword.
const (
	Argon2i  = "argon2i"
	Argon2id = "argon2id"
)

// ErrPasswordMismatch is returned by VerifyPassword when the candidate does not match.
var ErrPasswordMismatch = errors.New("password does not match")

// Argon2Params describes one argon2 configuration. Hashes embed these values in
// PHC format so changing the configuration never invalidates stored hashes.
type Argon2Params struct {
	Variant     string // argon2i or argon2id
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns the OWASP minimum argon2id configuration.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Variant:     Argon2id,
		Memory:      19 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate checks that the parameters can produce a usable hash.
func (p Argon2Params) Validate() error {
	switch {
	case p.Variant != Argon2i && p.Variant != Argon2id:
		return fmt.Errorf("unsupported argon2 variant %q", p.Variant)
	case p.Memory < 8*uint32(max(p.Parallelism, 1)):
		return errors.New("argon2 memory must be at least 8 KiB per lane")
	case p.Iterations == 0:
		return errors.New("argon2 iterations must be positive")
	case p.Parallelism == 0:
		return errors.New("argon2 parallelism must be positive")
	case p.SaltLength < 8:
		return errors.New("argon2 salt length must be at least 8 bytes")
	case p.KeyLength < 16:
		return errors.New("argon2 key length must be at least 16 bytes")
	}
	return nil
}

func (p Argon2Params) derive(password, salt []byte) []byte {
	if p.Variant == Argon2i {
		return argon2.Key(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	}
	return argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

// HashPassword generates a PHC-format argon2 hash string including salt and parameters.
func HashPassword(password, pepper string, p Argon2Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := p.derive([]byte(password+pepper), salt)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		p.Variant,
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style argon2 hash.
func VerifyPassword(password, pepper, encodedHash string) error {
	// $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return errors.New("invalid hash format: expected 6 parts")
	}

	p := Argon2Params{Variant: parts[1]}
	if p.Variant != Argon2i && p.Variant != Argon2id {
		return errors.New("invalid hash format: not argon2")
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return errors.New("invalid hash format: wrong version")
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}
	p.KeyLength = uint32(len(expected)) // #nosec G115

	computed := p.derive([]byte(password+pepper), salt)
	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
