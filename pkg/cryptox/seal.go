package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sealer performs AES-256-GCM authenticated encryption with a fixed master key.
// The sealed format is: [12-byte nonce][encrypted data][16-byte auth tag]
type Sealer struct {
	key []byte
}

// NewSealer derives a 32-byte AES-256 key from arbitrary key material using SHA-256.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("master key material is empty")
	}
	sum := sha256.Sum256(keyMaterial)
	return &Sealer{key: sum[:]}, nil
}

func (s *Sealer) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts and authenticates data with a random nonce.
func (s *Sealer) Seal(data []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// SealString is Seal for text values, returning standard base64.
func (s *Sealer) SealString(value string) (string, error) {
	sealed, err := s.Seal([]byte(value))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenString reverses SealString.
func (s *Sealer) OpenString(value string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("invalid sealed value: %w", err)
	}
	plaintext, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// LoadOrGenerateSecret reads a secret from path, creating the file with
// size random bytes (base64url) when it does not exist yet. Used for both
// the password pepper and the master key.
func LoadOrGenerateSecret(path string, size int) (string, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	buf, err := RandomBytes(size)
	if err != nil {
		return "", err
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)
	if err := os.WriteFile(path, []byte(secret), 0600); err != nil {
		return "", err
	}
	return secret, nil
}
