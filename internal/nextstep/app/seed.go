package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/idx"
	"gopkg.in/yaml.v3"
)

// SeedFile provisions configuration that has no API of its own. Entries that
// already exist by name are left untouched, so the file can be applied on
// every start.
type SeedFile struct {
	HashingConfigs        []SeedHashingConfig        `yaml:"hashingConfigs"`
	CredentialPolicies    []SeedCredentialPolicy     `yaml:"credentialPolicies"`
	CredentialDefinitions []SeedCredentialDefinition `yaml:"credentialDefinitions"`
	OtpDefinitions        []SeedOtpDefinition        `yaml:"otpDefinitions"`
	OperationConfigs      []SeedOperationConfig      `yaml:"operationConfigs"`
	AuthMethods           []SeedAuthMethod           `yaml:"authMethods"`
	Users                 []SeedUser                 `yaml:"users"`
}

type SeedHashingConfig struct {
	Name        string                  `yaml:"name"`
	Algorithm   domain.HashingAlgorithm `yaml:"algorithm"`
	Memory      uint32                  `yaml:"memory"`
	Iterations  uint32                  `yaml:"iterations"`
	Parallelism uint8                   `yaml:"parallelism"`
	SaltLength  uint32                  `yaml:"saltLength"`
	KeyLength   uint32                  `yaml:"keyLength"`
}

type SeedCredentialPolicy struct {
	Name                    string                        `yaml:"name"`
	Description             string                        `yaml:"description"`
	UsernameLengthMin       int                           `yaml:"usernameLengthMin"`
	UsernameLengthMax       int                           `yaml:"usernameLengthMax"`
	UsernameAllowedPattern  string                        `yaml:"usernameAllowedPattern"`
	UsernameGenAlgorithm    domain.UsernameGenAlgorithm   `yaml:"usernameGenAlgorithm"`
	UsernameGenLength       int                           `yaml:"usernameGenLength"`
	CredentialLengthMin     int                           `yaml:"credentialLengthMin"`
	CredentialLengthMax     int                           `yaml:"credentialLengthMax"`
	RequireUppercase        bool                          `yaml:"requireUppercase"`
	RequireLowercase        bool                          `yaml:"requireLowercase"`
	RequireDigit            bool                          `yaml:"requireDigit"`
	RequireSpecial          bool                          `yaml:"requireSpecial"`
	ProhibitedValues        []string                      `yaml:"prohibitedValues"`
	LimitSoft               *int                          `yaml:"limitSoft"`
	LimitHard               *int                          `yaml:"limitHard"`
	CheckHistoryCount       int                           `yaml:"checkHistoryCount"`
	RotationEnabled         bool                          `yaml:"rotationEnabled"`
	RotationDays            *int                          `yaml:"rotationDays"`
	TemporaryExpirationTime *int                          `yaml:"temporaryExpirationTime"`
	CredentialGenAlgorithm  domain.CredentialGenAlgorithm `yaml:"credentialGenAlgorithm"`
	CredentialGenLength     int                           `yaml:"credentialGenLength"`
}

type SeedCredentialDefinition struct {
	Name                                string                     `yaml:"name"`
	Description                         string                     `yaml:"description"`
	Policy                              string                     `yaml:"policy"`
	HashingConfig                       string                     `yaml:"hashingConfig"`
	Category                            domain.CredentialCategory  `yaml:"category"`
	EncryptionEnabled                   bool                       `yaml:"encryptionEnabled"`
	EncryptionAlgorithm                 domain.EncryptionAlgorithm `yaml:"encryptionAlgorithm"`
	E2EEncryptionEnabled                bool                       `yaml:"e2eEncryptionEnabled"`
	E2EEncryptionAlgorithm              string                     `yaml:"e2eEncryptionAlgorithm"`
	E2EEncryptionCipherTransformation   string                     `yaml:"e2eEncryptionCipherTransformation"`
	E2EEncryptionForTemporaryCredential bool                       `yaml:"e2eEncryptionForTemporaryCredential"`
}

type SeedOtpDefinition struct {
	Name                string                     `yaml:"name"`
	EncryptionEnabled   bool                       `yaml:"encryptionEnabled"`
	EncryptionAlgorithm domain.EncryptionAlgorithm `yaml:"encryptionAlgorithm"`
	Policy              SeedOtpPolicy              `yaml:"policy"`
}

type SeedOtpPolicy struct {
	Length         int  `yaml:"length"`
	AttemptLimit   *int `yaml:"attemptLimit"`
	ExpirationTime int  `yaml:"expirationTime"` // seconds
}

type SeedOperationConfig struct {
	Name         string              `yaml:"name"`
	Template     string              `yaml:"template"`
	AuthMethods  []domain.AuthMethod `yaml:"authMethods"`
	AfsEnabled   bool                `yaml:"afsEnabled"`
	AfsConfigID  string              `yaml:"afsConfigId"`
	Timeout      time.Duration       `yaml:"timeout"`
	MaxAuthFails int                 `yaml:"maxAuthFails"`
}

type SeedAuthMethod struct {
	Method           domain.AuthMethod `yaml:"method"`
	OrderNumber      int               `yaml:"orderNumber"`
	CheckUserPrefs   bool              `yaml:"checkUserPrefs"`
	UserPrefsDefault bool              `yaml:"userPrefsDefault"`
	HasUserInterface bool              `yaml:"hasUserInterface"`
	DisplayNameKey   string            `yaml:"displayNameKey"`
}

// SeedUser creates a user. Phone becomes the primary PHONE contact named "phone".
type SeedUser struct {
	ID    string `yaml:"id"`
	Phone string `yaml:"phone"`
}

// LoadSeedFile parses a YAML seed file.
func LoadSeedFile(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// Seeder applies a SeedFile.
type Seeder struct {
	Store       store.Store
	Operations  *service.OperationService
	Users       *service.UserService
	AuthMethods *service.AuthMethodService
	Logger      *slog.Logger
	Now         func() time.Time
}

// Apply provisions every entry of f that does not exist yet.
func (s *Seeder) Apply(ctx context.Context, f SeedFile) error {
	ts := time.Now().UTC()
	if s.Now != nil {
		ts = s.Now().UTC()
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, h := range f.HashingConfigs {
			if err := s.seedHashingConfig(ctx, tx, h, ts); err != nil {
				return err
			}
		}
		for _, p := range f.CredentialPolicies {
			if err := s.seedCredentialPolicy(ctx, tx, p, ts); err != nil {
				return err
			}
		}
		for _, d := range f.CredentialDefinitions {
			if err := s.seedCredentialDefinition(ctx, tx, d, ts); err != nil {
				return err
			}
		}
		for _, d := range f.OtpDefinitions {
			if err := s.seedOtpDefinition(ctx, tx, d, ts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, c := range f.OperationConfigs {
		_, err := s.Operations.CreateOperationConfig(ctx, domain.OperationConfig{
			OperationName: c.Name,
			TemplateID:    c.Template,
			AuthMethods:   c.AuthMethods,
			AfsEnabled:    c.AfsEnabled,
			AfsConfigID:   c.AfsConfigID,
			Timeout:       c.Timeout,
			MaxAuthFails:  c.MaxAuthFails,
		})
		if err != nil && !errors.Is(err, service.ErrOperationConfigAlreadyExists) {
			return fmt.Errorf("seed operation config %q: %w", c.Name, err)
		}
	}

	if len(f.AuthMethods) > 0 && s.AuthMethods == nil {
		return errors.New("seed auth methods: no auth method service")
	}
	for _, m := range f.AuthMethods {
		_, err := s.AuthMethods.CreateAuthMethod(ctx, domain.AuthMethodDefinition{
			Method:           m.Method,
			OrderNumber:      m.OrderNumber,
			CheckUserPrefs:   m.CheckUserPrefs,
			UserPrefsDefault: m.UserPrefsDefault,
			HasUserInterface: m.HasUserInterface,
			DisplayNameKey:   m.DisplayNameKey,
		})
		if err != nil && !errors.Is(err, service.ErrAuthMethodAlreadyExists) {
			return fmt.Errorf("seed auth method %q: %w", m.Method, err)
		}
	}

	for _, u := range f.Users {
		if err := s.seedUser(ctx, u); err != nil {
			return err
		}
	}

	s.Logger.Info("seed applied",
		"credential_definitions", len(f.CredentialDefinitions),
		"otp_definitions", len(f.OtpDefinitions),
		"operation_configs", len(f.OperationConfigs),
		"auth_methods", len(f.AuthMethods),
		"users", len(f.Users),
	)
	return nil
}

const seedPhoneContact = "phone"

func (s *Seeder) seedUser(ctx context.Context, u SeedUser) error {
	if _, err := s.Users.CreateUser(ctx, u.ID); err != nil && !errors.Is(err, service.ErrUserAlreadyExists) {
		return fmt.Errorf("seed user %q: %w", u.ID, err)
	}
	if u.Phone == "" {
		return nil
	}

	contacts, err := s.Users.ListContacts(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("seed user %q: %w", u.ID, err)
	}
	for _, c := range contacts {
		if c.Name == seedPhoneContact {
			return nil
		}
	}
	_, err = s.Users.SaveContact(ctx, domain.UserContact{
		UserID:  u.ID,
		Name:    seedPhoneContact,
		Type:    domain.ContactPhone,
		Value:   u.Phone,
		Primary: true,
	})
	if err != nil {
		return fmt.Errorf("seed user %q: contact: %w", u.ID, err)
	}
	return nil
}

func (s *Seeder) seedHashingConfig(ctx context.Context, tx store.Store, h SeedHashingConfig, ts time.Time) error {
	if _, err := tx.HashingConfigs().GetHashingConfigByName(ctx, h.Name); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed hashing config %q: %w", h.Name, err)
	}

	err := tx.HashingConfigs().CreateHashingConfig(ctx, domain.HashingConfig{
		ID:          idx.New().String(),
		Name:        h.Name,
		Algorithm:   h.Algorithm,
		Memory:      h.Memory,
		Iterations:  h.Iterations,
		Parallelism: h.Parallelism,
		SaltLength:  h.SaltLength,
		KeyLength:   h.KeyLength,
		Status:      domain.ConfigActive,
		CreatedAt:   ts,
	})
	if err != nil {
		return fmt.Errorf("seed hashing config %q: %w", h.Name, err)
	}
	return nil
}

func (s *Seeder) seedCredentialPolicy(ctx context.Context, tx store.Store, p SeedCredentialPolicy, ts time.Time) error {
	if _, err := tx.CredentialPolicies().GetCredentialPolicyByName(ctx, p.Name); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed credential policy %q: %w", p.Name, err)
	}

	err := tx.CredentialPolicies().CreateCredentialPolicy(ctx, domain.CredentialPolicy{
		ID:                      idx.New().String(),
		Name:                    p.Name,
		Description:             p.Description,
		UsernameLengthMin:       p.UsernameLengthMin,
		UsernameLengthMax:       p.UsernameLengthMax,
		UsernameAllowedPattern:  p.UsernameAllowedPattern,
		UsernameGenAlgorithm:    p.UsernameGenAlgorithm,
		UsernameGenLength:       p.UsernameGenLength,
		CredentialLengthMin:     p.CredentialLengthMin,
		CredentialLengthMax:     p.CredentialLengthMax,
		RequireUppercase:        p.RequireUppercase,
		RequireLowercase:        p.RequireLowercase,
		RequireDigit:            p.RequireDigit,
		RequireSpecial:          p.RequireSpecial,
		ProhibitedValues:        p.ProhibitedValues,
		LimitSoft:               p.LimitSoft,
		LimitHard:               p.LimitHard,
		CheckHistoryCount:       p.CheckHistoryCount,
		RotationEnabled:         p.RotationEnabled,
		RotationDays:            p.RotationDays,
		TemporaryExpirationTime: p.TemporaryExpirationTime,
		CredentialGenAlgorithm:  p.CredentialGenAlgorithm,
		CredentialGenLength:     p.CredentialGenLength,
		Status:                  domain.ConfigActive,
		CreatedAt:               ts,
		UpdatedAt:               ts,
	})
	if err != nil {
		return fmt.Errorf("seed credential policy %q: %w", p.Name, err)
	}
	return nil
}

func (s *Seeder) seedCredentialDefinition(ctx context.Context, tx store.Store, d SeedCredentialDefinition, ts time.Time) error {
	if _, err := tx.CredentialDefinitions().GetCredentialDefinitionByName(ctx, d.Name); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed credential definition %q: %w", d.Name, err)
	}

	policy, err := tx.CredentialPolicies().GetCredentialPolicyByName(ctx, d.Policy)
	if err != nil {
		return fmt.Errorf("seed credential definition %q: policy %q: %w", d.Name, d.Policy, err)
	}

	var hashingID *string
	if d.HashingConfig != "" {
		h, err := tx.HashingConfigs().GetHashingConfigByName(ctx, d.HashingConfig)
		if err != nil {
			return fmt.Errorf("seed credential definition %q: hashing config %q: %w", d.Name, d.HashingConfig, err)
		}
		hashingID = &h.ID
	}

	category := d.Category
	if category == "" {
		category = domain.CategoryPassword
	}
	alg := d.EncryptionAlgorithm
	if alg == "" {
		alg = domain.NoEncryption
	}

	err = tx.CredentialDefinitions().CreateCredentialDefinition(ctx, domain.CredentialDefinition{
		ID:                                  idx.New().String(),
		Name:                                d.Name,
		Description:                         d.Description,
		CredentialPolicyID:                  policy.ID,
		Category:                            category,
		EncryptionEnabled:                   d.EncryptionEnabled,
		EncryptionAlgorithm:                 alg,
		HashingConfigID:                     hashingID,
		E2EEncryptionEnabled:                d.E2EEncryptionEnabled,
		E2EEncryptionAlgorithm:              d.E2EEncryptionAlgorithm,
		E2EEncryptionCipherTransformation:   d.E2EEncryptionCipherTransformation,
		E2EEncryptionForTemporaryCredential: d.E2EEncryptionForTemporaryCredential,
		Status:                              domain.ConfigActive,
		CreatedAt:                           ts,
		UpdatedAt:                           ts,
	})
	if err != nil {
		return fmt.Errorf("seed credential definition %q: %w", d.Name, err)
	}
	return nil
}

func (s *Seeder) seedOtpDefinition(ctx context.Context, tx store.Store, d SeedOtpDefinition, ts time.Time) error {
	if _, err := tx.OtpDefinitions().GetOtpDefinitionByName(ctx, d.Name); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed otp definition %q: %w", d.Name, err)
	}

	policy := domain.OtpPolicy{
		ID:             idx.New().String(),
		Name:           d.Name + "-policy",
		Length:         d.Policy.Length,
		AttemptLimit:   d.Policy.AttemptLimit,
		ExpirationTime: d.Policy.ExpirationTime,
		Status:         domain.ConfigActive,
		CreatedAt:      ts,
	}
	if err := tx.OtpPolicies().CreateOtpPolicy(ctx, policy); err != nil {
		return fmt.Errorf("seed otp policy for %q: %w", d.Name, err)
	}

	alg := d.EncryptionAlgorithm
	if alg == "" {
		alg = domain.NoEncryption
	}
	err := tx.OtpDefinitions().CreateOtpDefinition(ctx, domain.OtpDefinition{
		ID:                  idx.New().String(),
		Name:                d.Name,
		OtpPolicyID:         policy.ID,
		EncryptionEnabled:   d.EncryptionEnabled,
		EncryptionAlgorithm: alg,
		Status:              domain.ConfigActive,
		CreatedAt:           ts,
	})
	if err != nil {
		return fmt.Errorf("seed otp definition %q: %w", d.Name, err)
	}
	return nil
}
