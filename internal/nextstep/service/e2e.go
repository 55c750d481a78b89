package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"strings"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/pkg/cryptox"
)

const e2eAlgorithmAES = "AES"

var supportedTransformations = map[string]bool{
	"AES/CBC/PKCS7Padding": true,
	"AES/CBC/PKCS5Padding": true,
}

// E2EService encrypts credential values exchanged with clients using a key
// shared with them. It is independent of at-rest protection.
type E2EService struct {
	// Key is the base64 AES key shared with clients.
	Key string
}

// Encrypt returns "ivBase64:cipherBase64", or plaintext unchanged when the
// definition has end-to-end encryption disabled.
func (s *E2EService) Encrypt(plaintext string, def domain.CredentialDefinition) (string, error) {
	if !def.E2EEncryptionEnabled {
		return plaintext, nil
	}
	block, err := s.block(def)
	if err != nil {
		return "", err
	}

	iv, err := cryptox.RandomBytes(aes.BlockSize)
	if err != nil {
		return "", ErrEncryption.Wrap(err)
	}
	data := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)

	return base64.StdEncoding.EncodeToString(iv) + ":" + base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. A malformed envelope is an invalid request.
func (s *E2EService) Decrypt(envelope string, def domain.CredentialDefinition) (string, error) {
	if !def.E2EEncryptionEnabled {
		return envelope, nil
	}
	block, err := s.block(def)
	if err != nil {
		return "", err
	}

	parts := strings.Split(envelope, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrInvalidRequest.WithMessage("invalid encrypted value")
	}
	iv, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", ErrInvalidRequest.WithMessage("invalid encrypted value")
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", ErrInvalidRequest.WithMessage("invalid encrypted value")
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	plain, ok := pkcs7Unpad(out, aes.BlockSize)
	if !ok {
		return "", ErrEncryption
	}
	return string(plain), nil
}

// EncryptFor applies Encrypt only when the credential type is covered by end-to-end encryption.
func (s *E2EService) EncryptFor(plaintext string, def domain.CredentialDefinition, t domain.CredentialType) (string, error) {
	if !e2eApplies(def, t) {
		return plaintext, nil
	}
	return s.Encrypt(plaintext, def)
}

// DecryptFor is the inverse of EncryptFor.
func (s *E2EService) DecryptFor(value string, def domain.CredentialDefinition, t domain.CredentialType) (string, error) {
	if !e2eApplies(def, t) {
		return value, nil
	}
	return s.Decrypt(value, def)
}

func e2eApplies(def domain.CredentialDefinition, t domain.CredentialType) bool {
	if !def.E2EEncryptionEnabled {
		return false
	}
	return t != domain.CredentialTemporary || def.E2EEncryptionForTemporaryCredential
}

func (s *E2EService) block(def domain.CredentialDefinition) (cipher.Block, error) {
	if def.E2EEncryptionAlgorithm != e2eAlgorithmAES {
		return nil, ErrInvalidConfiguration.WithMessage("unsupported end-to-end encryption algorithm")
	}
	if !supportedTransformations[def.E2EEncryptionCipherTransformation] {
		return nil, ErrInvalidConfiguration.WithMessage("unsupported cipher transformation")
	}
	if s.Key == "" {
		return nil, ErrInvalidConfiguration.WithMessage("end-to-end encryption key is not configured")
	}
	key, err := base64.StdEncoding.DecodeString(s.Key)
	if err != nil {
		return nil, ErrInvalidConfiguration.WithMessage("end-to-end encryption key is not valid base64")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrInvalidConfiguration.WithMessage("end-to-end encryption key has an invalid length")
	}
	return block, nil
}

// PKCS5 and PKCS7 padding are identical for 16 byte blocks.
func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, bool) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
