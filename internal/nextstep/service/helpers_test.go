package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store/drivers/sqlite"
	"github.com/aussiebroadwan/nextstep/pkg/cryptox"
	"github.com/aussiebroadwan/nextstep/pkg/idx"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testUserID     = "user-1"
	testCredential = "retail"
	testOtpName    = "sms"
	testE2EKey     = "MDEyMzQ1Njc4OWFiY2RlZg==" // "0123456789abcdef"
)

func intPtr(v int) *int { return &v }

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeSender struct {
	mu       sync.Mutex
	messages []OtpMessage
	fail     bool
}

func (f *fakeSender) SendOtp(_ context.Context, msg OtpMessage) (DeliveryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	if f.fail {
		return DeliveryResult{Delivered: false, ErrorMessage: "gateway unavailable"}, nil
	}
	return DeliveryResult{Delivered: true, DeliveryID: "msg-" + msg.OtpID}, nil
}

func (f *fakeSender) sent() []OtpMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]OtpMessage(nil), f.messages...)
}

type memTracker struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func (m *memTracker) LastMessage(_ context.Context, key string) (time.Time, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.last[key]
	return at, ok, nil
}

func (m *memTracker) MarkMessage(_ context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[key] = at
	return nil
}

type fakeAfs struct {
	mu       sync.Mutex
	response AfsResponse
	inits    []AfsRequest
	auths    []AfsRequest
}

func (f *fakeAfs) ExecuteInitAction(_ context.Context, req AfsRequest) (AfsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits = append(f.inits, req)
	return f.response, nil
}

func (f *fakeAfs) ExecuteAuthAction(_ context.Context, req AfsRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auths = append(f.auths, req)
	return nil
}

type testEnv struct {
	store    *sqlite.Store
	clock    *testClock
	sender   *fakeSender
	tracker  *memTracker
	afs      *fakeAfs
	policy   domain.CredentialPolicy
	def      domain.CredentialDefinition
	creds    *CredentialService
	otps     *OtpService
	ops      *OperationService
	counters *CounterService
	users    *UserService
	methods  *AuthMethodService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvDSN(t, ":memory:")
}

func newTestEnvDSN(t *testing.T, dsn string) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sealer, err := cryptox.NewSealer([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	env := &testEnv{
		store:   st,
		clock:   &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		sender:  &fakeSender{},
		tracker: &memTracker{last: map[string]time.Time{}},
		afs:     &fakeAfs{},
	}
	logger := slogx.Discard()
	protection := &ProtectionService{Pepper: "test-pepper", Sealer: sealer}

	env.creds = &CredentialService{
		Store:      st,
		Logger:     logger,
		Policy:     &PolicyEngine{Protection: protection},
		Protection: protection,
		E2E:        &E2EService{Key: testE2EKey},
		Now:        env.clock.Now,
	}
	env.otps = &OtpService{
		Store:       st,
		Logger:      logger,
		Protection:  protection,
		Sender:      env.sender,
		Tracker:     env.tracker,
		ResendDelay: time.Minute,
		Now:         env.clock.Now,
	}
	env.methods = &AuthMethodService{Store: st, Logger: logger, Now: env.clock.Now}
	env.ops = &OperationService{
		Store:                 st,
		Logger:                logger,
		Credentials:           env.creds,
		Otps:                  env.otps,
		Afs:                   env.afs,
		AuthMethods:           env.methods,
		ResendDelay:           time.Minute,
		ShowRemainingAttempts: true,
		Now:                   env.clock.Now,
	}
	env.counters = &CounterService{Store: st, Logger: logger, Now: env.clock.Now}
	env.users = &UserService{Store: st, Logger: logger, Now: env.clock.Now}

	env.seed(t)
	return env
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	ts := e.clock.Now()

	_, err := e.users.CreateUser(ctx, testUserID)
	require.NoError(t, err)

	e.def = e.addDefinition(t, testCredential, nil, nil)
	e.policy, err = e.store.CredentialPolicies().GetCredentialPolicy(ctx, e.def.CredentialPolicyID)
	require.NoError(t, err)

	otpPolicy := domain.OtpPolicy{
		ID:             idx.New().String(),
		Name:           "sms-default",
		Length:         8,
		AttemptLimit:   intPtr(3),
		ExpirationTime: 300,
		Status:         domain.ConfigActive,
		CreatedAt:      ts,
	}
	require.NoError(t, e.store.OtpPolicies().CreateOtpPolicy(ctx, otpPolicy))
	require.NoError(t, e.store.OtpDefinitions().CreateOtpDefinition(ctx, domain.OtpDefinition{
		ID:                  idx.New().String(),
		Name:                testOtpName,
		OtpPolicyID:         otpPolicy.ID,
		EncryptionEnabled:   true,
		EncryptionAlgorithm: domain.AESGCM,
		Status:              domain.ConfigActive,
		CreatedAt:           ts,
	}))

	configs := []domain.OperationConfig{
		{
			OperationName: "login",
			TemplateID:    domain.TemplateLogin,
			AuthMethods:   []domain.AuthMethod{domain.MethodUsernamePassword, domain.MethodSMSKey},
			Timeout:       5 * time.Minute,
			MaxAuthFails:  5,
		},
		{
			OperationName: "login_sca",
			TemplateID:    domain.TemplateLogin,
			AuthMethods:   []domain.AuthMethod{domain.MethodLoginSCA},
			AfsEnabled:    true,
			AfsConfigID:   "afs-login",
			Timeout:       5 * time.Minute,
			MaxAuthFails:  10,
		},
	}
	for _, cfg := range configs {
		_, err := e.ops.CreateOperationConfig(ctx, cfg)
		require.NoError(t, err)
	}
}

// addDefinition creates a credential definition named name with its own
// policy. The hooks adjust the defaults before they are stored.
func (e *testEnv) addDefinition(t *testing.T, name string, withPolicy func(*domain.CredentialPolicy), withDef func(*domain.CredentialDefinition)) domain.CredentialDefinition {
	t.Helper()
	ctx := context.Background()
	ts := e.clock.Now()

	policy := domain.CredentialPolicy{
		ID:                     idx.New().String(),
		Name:                   name + "-policy",
		UsernameLengthMin:      4,
		UsernameLengthMax:      32,
		UsernameAllowedPattern: `^[a-z0-9.]+$`,
		UsernameGenAlgorithm:   domain.UsernameRandomDigits,
		UsernameGenLength:      8,
		CredentialLengthMin:    8,
		CredentialLengthMax:    64,
		RequireDigit:           true,
		ProhibitedValues:       []string{"password1"},
		LimitSoft:              intPtr(3),
		LimitHard:              intPtr(5),
		CheckHistoryCount:      3,
		CredentialGenAlgorithm: domain.GenerateRandomPassword,
		CredentialGenLength:    12,
		Status:                 domain.ConfigActive,
		CreatedAt:              ts,
		UpdatedAt:              ts,
	}
	if withPolicy != nil {
		withPolicy(&policy)
	}
	require.NoError(t, e.store.CredentialPolicies().CreateCredentialPolicy(ctx, policy))

	def := domain.CredentialDefinition{
		ID:                  idx.New().String(),
		Name:                name,
		CredentialPolicyID:  policy.ID,
		Category:            domain.CategoryPassword,
		EncryptionAlgorithm: domain.NoEncryption,
		Status:              domain.ConfigActive,
		CreatedAt:           ts,
		UpdatedAt:           ts,
	}
	if withDef != nil {
		withDef(&def)
	}
	require.NoError(t, e.store.CredentialDefinitions().CreateCredentialDefinition(ctx, def))
	return def
}

// createCredential stores an explicit username and value for the test user.
func (e *testEnv) createCredential(t *testing.T, username, value string) CredentialSecret {
	t.Helper()
	out, err := e.creds.Create(context.Background(), CreateCredentialRequest{
		UserID:         testUserID,
		CredentialName: testCredential,
		Username:       username,
		Value:          value,
	})
	require.NoError(t, err)
	return out
}

func (e *testEnv) getCredential(t *testing.T) domain.Credential {
	t.Helper()
	cred, err := e.store.Credentials().GetCredentialForUser(context.Background(), testUserID, e.def.ID)
	require.NoError(t, err)
	return cred
}
