package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/cryptox"
)

// usernameGenerationAttempts bounds the collision retries of GenerateUsername.
const usernameGenerationAttempts = 10

// PolicyEngine applies credential policies: generation of usernames and
// values and validation of candidates. Validation results are data, not errors.
type PolicyEngine struct {
	Protection *ProtectionService
}

// GenerateUsername returns a random username that no user holds for the definition.
func (e *PolicyEngine) GenerateUsername(ctx context.Context, st store.Store, def domain.CredentialDefinition, policy domain.CredentialPolicy) (string, error) {
	var charset string
	switch policy.UsernameGenAlgorithm {
	case domain.UsernameRandomDigits:
		charset = cryptox.Digits
	case domain.UsernameRandomLetters:
		charset = cryptox.Lowercase
	default:
		return "", ErrInvalidConfiguration.WithMessage("unsupported username generation algorithm")
	}
	if policy.UsernameGenLength <= 0 {
		return "", ErrInvalidConfiguration.WithMessage("username generation length must be positive")
	}

	for range usernameGenerationAttempts {
		username, err := cryptox.RandomString(charset, policy.UsernameGenLength)
		if err != nil {
			return "", fmt.Errorf("generate username: %w", err)
		}
		taken, err := st.Credentials().UsernameTaken(ctx, def.ID, username, "")
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if !taken {
			return username, nil
		}
	}
	return "", ErrInvalidConfiguration.WithMessage("username space exhausted")
}

// GenerateCredentialValue returns a random value conforming to the policy's
// character class requirements.
func (e *PolicyEngine) GenerateCredentialValue(policy domain.CredentialPolicy) (string, error) {
	if policy.CredentialGenLength <= 0 {
		return "", ErrInvalidConfiguration.WithMessage("credential generation length must be positive")
	}

	switch policy.CredentialGenAlgorithm {
	case domain.GenerateRandomPIN:
		value, err := cryptox.RandomString(cryptox.Digits, policy.CredentialGenLength)
		if err != nil {
			return "", fmt.Errorf("generate pin: %w", err)
		}
		return value, nil
	case domain.GenerateRandomPassword:
		var classes []string
		if policy.RequireLowercase {
			classes = append(classes, cryptox.Lowercase)
		}
		if policy.RequireUppercase {
			classes = append(classes, cryptox.Uppercase)
		}
		if policy.RequireDigit {
			classes = append(classes, cryptox.Digits)
		}
		if policy.RequireSpecial {
			classes = append(classes, cryptox.Special)
		}
		if len(classes) == 0 {
			classes = []string{cryptox.Lowercase, cryptox.Uppercase, cryptox.Digits}
		}
		value, err := cryptox.RandomStringWithClasses(policy.CredentialGenLength, classes...)
		if err != nil {
			return "", ErrInvalidConfiguration.WithMessage("credential generation length is too short").Wrap(err)
		}
		return value, nil
	default:
		return "", ErrInvalidConfiguration.WithMessage("unsupported credential generation algorithm")
	}
}

// CredentialCandidate is a username and value to validate for a user.
// Empty fields are not validated.
type CredentialCandidate struct {
	UserID   string
	Username string
	Value    string
}

// ValidateCredential returns the ordered failure codes for a candidate.
// Username uniqueness is checked for every non-empty username regardless of mode.
func (e *PolicyEngine) ValidateCredential(ctx context.Context, st store.Store, def domain.CredentialDefinition, policy domain.CredentialPolicy, c CredentialCandidate, mode domain.ValidationMode, checkUsername, checkValue bool) ([]domain.ValidationFailure, error) {
	var failures []domain.ValidationFailure

	if checkUsername {
		if mode.ValidatesUsername() {
			f, err := validateUsername(c.Username, policy)
			if err != nil {
				return nil, err
			}
			failures = append(failures, f...)
		}
		if c.Username != "" {
			taken, err := st.Credentials().UsernameTaken(ctx, def.ID, c.Username, c.UserID)
			if err != nil {
				return nil, fmt.Errorf("check username: %w", err)
			}
			if taken {
				failures = append(failures, domain.UsernameAlreadyExists)
			}
		}
	}

	if checkValue && mode.ValidatesCredential() {
		f, err := e.ValidateCredentialValue(ctx, st, def, policy, c, true)
		if err != nil {
			return nil, err
		}
		failures = append(failures, f...)
	}

	return failures, nil
}

// ValidateCredentialValue checks the value rules only.
func (e *PolicyEngine) ValidateCredentialValue(ctx context.Context, st store.Store, def domain.CredentialDefinition, policy domain.CredentialPolicy, c CredentialCandidate, checkHistory bool) ([]domain.ValidationFailure, error) {
	value := c.Value
	if value == "" {
		return []domain.ValidationFailure{domain.CredentialEmpty}, nil
	}

	var failures []domain.ValidationFailure
	n := utf8.RuneCountInString(value)
	if policy.CredentialLengthMin > 0 && n < policy.CredentialLengthMin {
		failures = append(failures, domain.CredentialTooShort)
	}
	if policy.CredentialLengthMax > 0 && n > policy.CredentialLengthMax {
		failures = append(failures, domain.CredentialTooLong)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			hasSpecial = true
		}
	}
	if policy.RequireUppercase && !hasUpper {
		failures = append(failures, domain.CredentialMissingUppercase)
	}
	if policy.RequireLowercase && !hasLower {
		failures = append(failures, domain.CredentialMissingLowercase)
	}
	if policy.RequireDigit && !hasDigit {
		failures = append(failures, domain.CredentialMissingDigit)
	}
	if policy.RequireSpecial && !hasSpecial {
		failures = append(failures, domain.CredentialMissingSpecial)
	}

	if c.Username != "" && strings.Contains(strings.ToLower(value), strings.ToLower(c.Username)) {
		failures = append(failures, domain.CredentialUsernameIncluded)
	}

	if checkHistory && policy.CheckHistoryCount > 0 && c.UserID != "" {
		reused, err := e.inHistory(ctx, st, def, policy, c.UserID, value)
		if err != nil {
			return nil, err
		}
		if reused {
			failures = append(failures, domain.CredentialHistoryCheckFailed)
		}
	}

	for _, prohibited := range policy.ProhibitedValues {
		if strings.EqualFold(value, prohibited) {
			failures = append(failures, domain.CredentialProhibited)
			break
		}
	}

	return failures, nil
}

func (e *PolicyEngine) inHistory(ctx context.Context, st store.Store, def domain.CredentialDefinition, policy domain.CredentialPolicy, userID, value string) (bool, error) {
	history, err := st.CredentialHistory().ListRecentCredentialHistory(ctx, userID, def.ID, policy.CheckHistoryCount)
	if err != nil {
		return false, fmt.Errorf("list credential history: %w", err)
	}
	for _, h := range history {
		match, err := e.Protection.Verify(value, h.Value, h.EncryptionAlgorithm, h.HashingConfigID)
		if err != nil {
			return false, err
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

func validateUsername(username string, policy domain.CredentialPolicy) ([]domain.ValidationFailure, error) {
	if username == "" {
		return []domain.ValidationFailure{domain.UsernameEmpty}, nil
	}

	var failures []domain.ValidationFailure
	n := utf8.RuneCountInString(username)
	if policy.UsernameLengthMin > 0 && n < policy.UsernameLengthMin {
		failures = append(failures, domain.UsernameTooShort)
	}
	if policy.UsernameLengthMax > 0 && n > policy.UsernameLengthMax {
		failures = append(failures, domain.UsernameTooLong)
	}
	if policy.UsernameAllowedPattern != "" {
		re, err := regexp.Compile(policy.UsernameAllowedPattern)
		if err != nil {
			return nil, ErrInvalidConfiguration.WithMessage("invalid username pattern").Wrap(err)
		}
		if !re.MatchString(username) {
			failures = append(failures, domain.UsernameIllegalCharacters)
		}
	}
	return failures, nil
}

func failureCodes(failures []domain.ValidationFailure) []string {
	out := make([]string, len(failures))
	for i, f := range failures {
		out[i] = string(f)
	}
	return out
}
