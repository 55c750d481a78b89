package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Character classes used when generating credentials.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Special   = "!#$%&*+-.:=?@_~"
)

// RandomBytes returns size bytes from crypto/rand.
func RandomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", size)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// RandomInt returns a uniform value in [0, n).
func RandomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(v.Int64()), nil
}

// RandomString draws length characters uniformly from charset.
func RandomString(charset string, length int) (string, error) {
	if charset == "" || length <= 0 {
		return "", fmt.Errorf("invalid charset or length %d", length)
	}
	out := make([]byte, length)
	for i := range out {
		n, err := RandomInt(len(charset))
		if err != nil {
			return "", err
		}
		out[i] = charset[n]
	}
	return string(out), nil
}

// RandomStringWithClasses returns a random string of the given length that
// contains at least one character from every class in required. The remaining
// positions are drawn from the union of all classes and the result is shuffled.
func RandomStringWithClasses(length int, required ...string) (string, error) {
	if len(required) == 0 {
		return "", fmt.Errorf("at least one character class is required")
	}
	if length < len(required) {
		return "", fmt.Errorf("length %d cannot hold %d character classes", length, len(required))
	}

	var all string
	out := make([]byte, 0, length)
	for _, class := range required {
		all += class
		c, err := RandomString(class, 1)
		if err != nil {
			return "", err
		}
		out = append(out, c[0])
	}
	if length > len(out) {
		rest, err := RandomString(all, length-len(out))
		if err != nil {
			return "", err
		}
		out = append(out, rest...)
	}

	// Fisher-Yates
	for i := len(out) - 1; i > 0; i-- {
		j, err := RandomInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}
