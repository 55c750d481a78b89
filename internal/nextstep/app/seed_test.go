package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store/drivers/sqlite"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testSeed = `
hashingConfigs:
  - name: argon2id-default
    algorithm: ARGON_2ID
    memory: 65536
    iterations: 3
    parallelism: 2
    saltLength: 16
    keyLength: 32
credentialPolicies:
  - name: retail-policy
    usernameLengthMin: 4
    usernameLengthMax: 32
    usernameGenAlgorithm: RANDOM_DIGITS
    usernameGenLength: 8
    credentialLengthMin: 8
    credentialLengthMax: 64
    requireDigit: true
    limitSoft: 3
    limitHard: 5
    checkHistoryCount: 3
    credentialGenAlgorithm: RANDOM_PASSWORD
    credentialGenLength: 12
credentialDefinitions:
  - name: retail
    policy: retail-policy
    hashingConfig: argon2id-default
otpDefinitions:
  - name: sms
    encryptionEnabled: true
    encryptionAlgorithm: AES_GCM
    policy:
      length: 8
      attemptLimit: 3
      expirationTime: 300
operationConfigs:
  - name: login
    template: login
    authMethods: [USERNAME_PASSWORD_AUTH, SMS_KEY]
    timeout: 5m
    maxAuthFails: 5
authMethods:
  - method: USERNAME_PASSWORD_AUTH
    orderNumber: 1
  - method: SMS_KEY
    orderNumber: 2
    checkUserPrefs: true
    userPrefsDefault: true
users:
  - id: user-1
    phone: "+61400000001"
  - id: user-2
`

func TestSeeder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSeed), 0600))

	f, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, f.Users, 2)
	require.Equal(t, 5*time.Minute, f.OperationConfigs[0].Timeout)
	require.Len(t, f.AuthMethods, 2)

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slogx.Discard()
	seeder := &Seeder{
		Store:       st,
		Operations:  &service.OperationService{Store: st, Logger: logger},
		Users:       &service.UserService{Store: st, Logger: logger},
		AuthMethods: &service.AuthMethodService{Store: st, Logger: logger},
		Logger:      logger,
	}
	ctx := context.Background()

	require.NoError(t, seeder.Apply(ctx, f))
	require.NoError(t, seeder.Apply(ctx, f), "applying twice is a no-op")

	def, err := st.CredentialDefinitions().GetCredentialDefinitionByName(ctx, "retail")
	require.NoError(t, err)
	require.NotNil(t, def.HashingConfigID)
	require.Equal(t, domain.CategoryPassword, def.Category)
	require.Equal(t, domain.NoEncryption, def.EncryptionAlgorithm)

	policy, err := st.CredentialPolicies().GetCredentialPolicy(ctx, def.CredentialPolicyID)
	require.NoError(t, err)
	require.Equal(t, 3, *policy.LimitSoft)

	otpDef, err := st.OtpDefinitions().GetOtpDefinitionByName(ctx, "sms")
	require.NoError(t, err)
	otpPolicy, err := st.OtpPolicies().GetOtpPolicy(ctx, otpDef.OtpPolicyID)
	require.NoError(t, err)
	require.Equal(t, 8, otpPolicy.Length)
	require.Equal(t, 300, otpPolicy.ExpirationTime)

	cfg, err := seeder.Operations.GetOperationConfig(ctx, "login")
	require.NoError(t, err)
	require.Equal(t, []domain.AuthMethod{domain.MethodUsernamePassword, domain.MethodSMSKey}, cfg.AuthMethods)

	u, err := seeder.Users.GetUser(ctx, "user-2")
	require.NoError(t, err)
	require.Equal(t, domain.UserActive, u.Status)

	contacts, err := seeder.Users.ListContacts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, contacts, 1, "reapplying keeps a single phone contact")
	require.Equal(t, "+61400000001", contacts[0].Value)
	require.Equal(t, domain.ContactPhone, contacts[0].Type)
	require.True(t, contacts[0].Primary)

	contacts, err = seeder.Users.ListContacts(ctx, "user-2")
	require.NoError(t, err)
	require.Empty(t, contacts)

	methods, err := seeder.AuthMethods.ListAuthMethods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	require.Equal(t, domain.MethodUsernamePassword, methods[0].Method)
	require.True(t, methods[1].CheckUserPrefs)
}

func TestSeederUnknownPolicy(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slogx.Discard()
	seeder := &Seeder{
		Store:      st,
		Operations: &service.OperationService{Store: st, Logger: logger},
		Users:      &service.UserService{Store: st, Logger: logger},
		Logger:     logger,
	}

	err = seeder.Apply(context.Background(), SeedFile{
		CredentialDefinitions: []SeedCredentialDefinition{{Name: "retail", Policy: "missing"}},
	})
	require.ErrorContains(t, err, `policy "missing"`)
}

func TestLoadSeedFileErrors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("users: [unterminated"), 0600))
	_, err = LoadSeedFile(path)
	require.Error(t, err)
}
