package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/pkg/cryptox"
	"github.com/aussiebroadwan/nextstep/pkg/jwtx"
)

const secretSize = 32

// Secrets are the process keys. Each one is read from its file or generated
// into it on first start.
type Secrets struct {
	Pepper    string
	MasterKey string
	APISecret string
}

func LoadSecrets(cfg Config, logger *slog.Logger) (Secrets, error) {
	var s Secrets
	var err error

	if s.Pepper, err = cryptox.LoadOrGenerateSecret(cfg.PepperFile, secretSize); err != nil {
		return Secrets{}, fmt.Errorf("failed to load pepper: %w", err)
	}
	if s.MasterKey, err = cryptox.LoadOrGenerateSecret(cfg.MasterKeyPath, secretSize); err != nil {
		return Secrets{}, fmt.Errorf("failed to load master key: %w", err)
	}
	if s.APISecret, err = cryptox.LoadOrGenerateSecret(cfg.APISecretFile, secretSize); err != nil {
		return Secrets{}, fmt.Errorf("failed to load api secret: %w", err)
	}

	logger.Info("secrets loaded",
		"pepper_file", cfg.PepperFile,
		"master_key_path", cfg.MasterKeyPath,
		"api_secret_file", cfg.APISecretFile,
	)
	return s, nil
}

// Protection builds the at-rest protection from the pepper and master key.
func (s Secrets) Protection() (*service.ProtectionService, error) {
	sealer, err := cryptox.NewSealer([]byte(s.MasterKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create sealer: %w", err)
	}
	return &service.ProtectionService{Pepper: s.Pepper, Sealer: sealer}, nil
}

// Verifier checks caller tokens signed with the shared API secret.
func (s Secrets) Verifier(issuer string) (*jwtx.HS256, error) {
	h, err := jwtx.NewHS256([]byte(s.APISecret), issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}
	return h, nil
}
