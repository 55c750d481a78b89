package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func intPtr(v int) *int { return &v }

// seedDefinition creates a user, a policy and a credential definition.
func seedDefinition(t *testing.T, s *Store, now time.Time) (domain.User, domain.CredentialDefinition) {
	t.Helper()
	ctx := context.Background()

	user := domain.User{ID: "user-1", Status: domain.UserActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	policy := domain.CredentialPolicy{
		ID:                     idx.New().String(),
		Name:                   "default",
		UsernameGenAlgorithm:   domain.UsernameRandomDigits,
		UsernameGenLength:      8,
		CredentialLengthMin:    8,
		CredentialLengthMax:    64,
		ProhibitedValues:       []string{"password"},
		LimitSoft:              intPtr(3),
		LimitHard:              intPtr(5),
		CredentialGenAlgorithm: domain.GenerateRandomPassword,
		CredentialGenLength:    12,
		Status:                 domain.ConfigActive,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	require.NoError(t, s.CredentialPolicies().CreateCredentialPolicy(ctx, policy))

	def := domain.CredentialDefinition{
		ID:                  idx.New().String(),
		Name:                "retail",
		CredentialPolicyID:  policy.ID,
		Category:            domain.CategoryPassword,
		EncryptionAlgorithm: domain.NoEncryption,
		Status:              domain.ConfigActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, s.CredentialDefinitions().CreateCredentialDefinition(ctx, def))
	return user, def
}

func TestCredentialPolicyRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	_, def := seedDefinition(t, s, now)

	p, err := s.CredentialPolicies().GetCredentialPolicy(ctx, def.CredentialPolicyID)
	require.NoError(t, err)
	require.Equal(t, []string{"password"}, p.ProhibitedValues)
	require.Equal(t, 3, *p.LimitSoft)
	require.Equal(t, 5, *p.LimitHard)
	require.Nil(t, p.RotationDays)
	require.True(t, p.CreatedAt.Equal(now))

	byName, err := s.CredentialDefinitions().GetCredentialDefinitionByName(ctx, "retail")
	require.NoError(t, err)
	require.Equal(t, def.ID, byName.ID)
	require.Nil(t, byName.HashingConfigID)

	_, err = s.CredentialPolicies().GetCredentialPolicyByName(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCredentials(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user, def := seedDefinition(t, s, now)

	cred := domain.Credential{
		ID:                  idx.New().String(),
		DefinitionID:        def.ID,
		UserID:              user.ID,
		Type:                domain.CredentialPermanent,
		Username:            "alice",
		Value:               "secret",
		EncryptionAlgorithm: domain.NoEncryption,
		Status:              domain.CredentialActive,
		CreatedAt:           now,
	}
	require.NoError(t, s.Credentials().CreateCredential(ctx, cred))

	t.Run("duplicate definition and user", func(t *testing.T) {
		dup := cred
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Credentials().CreateCredential(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("username taken", func(t *testing.T) {
		taken, err := s.Credentials().UsernameTaken(ctx, def.ID, "alice", "")
		require.NoError(t, err)
		require.True(t, taken)

		taken, err = s.Credentials().UsernameTaken(ctx, def.ID, "alice", user.ID)
		require.NoError(t, err)
		require.False(t, taken)
	})

	t.Run("update and lookup", func(t *testing.T) {
		blockedAt := now.Add(time.Minute)
		cred.Status = domain.CredentialBlockedTemporary
		cred.FailedAttemptCounterSoft = 3
		cred.BlockedAt = &blockedAt
		require.NoError(t, s.Credentials().UpdateCredential(ctx, cred))

		got, err := s.Credentials().GetCredentialForUser(ctx, user.ID, def.ID)
		require.NoError(t, err)
		require.Equal(t, domain.CredentialBlockedTemporary, got.Status)
		require.Equal(t, 3, got.FailedAttemptCounterSoft)
		require.NotNil(t, got.BlockedAt)
		require.True(t, got.BlockedAt.Equal(blockedAt))
	})

	t.Run("reset soft counters", func(t *testing.T) {
		n, err := s.Credentials().ResetSoftCounters(ctx, now.Add(time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		got, err := s.Credentials().GetCredential(ctx, cred.ID)
		require.NoError(t, err)
		require.Equal(t, domain.CredentialActive, got.Status)
		require.Zero(t, got.FailedAttemptCounterSoft)
		require.Nil(t, got.BlockedAt)
	})

	t.Run("update missing", func(t *testing.T) {
		missing := cred
		missing.ID = "nope"
		require.ErrorIs(t, s.Credentials().UpdateCredential(ctx, missing), store.ErrNotFound)
	})
}

func TestCredentialHistoryNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user, def := seedDefinition(t, s, now)

	for i, v := range []string{"one", "two", "three"} {
		require.NoError(t, s.CredentialHistory().AppendCredentialHistory(ctx, domain.CredentialHistory{
			ID:                  idx.New().String(),
			UserID:              user.ID,
			DefinitionID:        def.ID,
			Username:            "alice",
			Value:               v,
			EncryptionAlgorithm: domain.NoEncryption,
			CreatedAt:           now.Add(time.Duration(i) * time.Second),
		}))
	}

	got, err := s.CredentialHistory().ListRecentCredentialHistory(ctx, user.ID, def.ID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "three", got[0].Value)
	require.Equal(t, "two", got[1].Value)
}

func TestOperationsAndSteps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	cfg := domain.OperationConfig{
		OperationName: "login",
		TemplateID:    domain.TemplateLogin,
		AuthMethods:   []domain.AuthMethod{domain.MethodUsernamePassword, domain.MethodSMSKey},
		Timeout:       5 * time.Minute,
		MaxAuthFails:  3,
		CreatedAt:     now,
	}
	require.NoError(t, s.OperationConfigs().CreateOperationConfig(ctx, cfg))
	require.ErrorIs(t, s.OperationConfigs().CreateOperationConfig(ctx, cfg), store.ErrAlreadyExists)

	gotCfg, err := s.OperationConfigs().GetOperationConfig(ctx, "login")
	require.NoError(t, err)
	require.Equal(t, cfg.AuthMethods, gotCfg.AuthMethods)
	require.Equal(t, 5*time.Minute, gotCfg.Timeout)

	op := domain.Operation{
		ID:        "op-1",
		Name:      "login",
		State:     domain.OperationInitiated,
		Result:    domain.AuthContinue,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(cfg.Timeout),
	}
	require.NoError(t, s.Operations().CreateOperation(ctx, op))
	require.ErrorIs(t, s.Operations().CreateOperation(ctx, op), store.ErrAlreadyExists)

	op.StepOptions = &domain.StepOptions{PasswordRequired: false, OtpRequired: true}
	op.State = domain.OperationInProgress
	require.NoError(t, s.Operations().UpdateOperation(ctx, op))

	got, err := s.Operations().GetOperation(ctx, "op-1")
	require.NoError(t, err)
	require.Equal(t, domain.OperationInProgress, got.State)
	require.Equal(t, op.StepOptions, got.StepOptions)
	require.Nil(t, got.UserID)

	for range 2 {
		_, err := s.OperationSteps().AppendOperationStep(ctx, domain.OperationStep{
			OperationID: "op-1",
			AuthMethod:  domain.MethodUsernamePassword,
			StepResult:  domain.StepAuthFailed,
			Result:      domain.AuthContinue,
			Instruments: []domain.AuthInstrument{domain.InstrumentCredential, domain.InstrumentOtpKey},
			CreatedAt:   now,
		})
		require.NoError(t, err)
	}
	steps, err := s.OperationSteps().ListOperationSteps(ctx, "op-1")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	require.Equal(t, 1, steps[0].Seq)
	require.Equal(t, 2, steps[1].Seq)
	require.Equal(t, []domain.AuthInstrument{domain.InstrumentCredential, domain.InstrumentOtpKey}, steps[1].Instruments)

	n, err := s.Operations().FailTimedOutOperations(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err = s.Operations().GetOperation(ctx, "op-1")
	require.NoError(t, err)
	require.Equal(t, domain.OperationFailed, got.State)
}

func TestMessageLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := s.MessageLog().GetLastMessage(ctx, "op-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.MessageLog().SetLastMessage(ctx, "op-1", now))
	require.NoError(t, s.MessageLog().SetLastMessage(ctx, "op-1", now.Add(time.Second)))

	at, err := s.MessageLog().GetLastMessage(ctx, "op-1")
	require.NoError(t, err)
	require.True(t, at.Equal(now.Add(time.Second)))
}

func TestAuthMethodsAndPreferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, s.Users().CreateUser(ctx, domain.User{ID: "user-1", Status: domain.UserActive, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, s.AuthMethods().CreateAuthMethod(ctx, domain.AuthMethodDefinition{
		Method: domain.MethodSMSKey, OrderNumber: 2, CheckUserPrefs: true, DisplayNameKey: "method.sms", CreatedAt: now,
	}))
	require.NoError(t, s.AuthMethods().CreateAuthMethod(ctx, domain.AuthMethodDefinition{
		Method: domain.MethodUsernamePassword, OrderNumber: 1, CreatedAt: now,
	}))
	err := s.AuthMethods().CreateAuthMethod(ctx, domain.AuthMethodDefinition{Method: domain.MethodSMSKey, CreatedAt: now})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.AuthMethods().GetAuthMethod(ctx, domain.MethodSMSKey)
	require.NoError(t, err)
	require.True(t, got.CheckUserPrefs)
	require.Equal(t, "method.sms", got.DisplayNameKey)
	require.True(t, got.CreatedAt.Equal(now))

	list, err := s.AuthMethods().ListAuthMethods(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, domain.MethodUsernamePassword, list[0].Method)

	pref := domain.UserAuthMethod{UserID: "user-1", Method: domain.MethodSMSKey, Enabled: true, UpdatedAt: now}
	require.NoError(t, s.UserAuthMethods().SetUserAuthMethod(ctx, pref))
	pref.Enabled = false
	pref.Config = map[string]string{"k": "v"}
	require.NoError(t, s.UserAuthMethods().SetUserAuthMethod(ctx, pref))

	prefs, err := s.UserAuthMethods().ListUserAuthMethods(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	require.False(t, prefs[0].Enabled)
	require.Equal(t, map[string]string{"k": "v"}, prefs[0].Config)

	err = s.AuthMethods().DeleteAuthMethod(ctx, domain.MethodSMSKey)
	require.ErrorIs(t, err, store.ErrReferenced)
	require.NoError(t, s.AuthMethods().DeleteAuthMethod(ctx, domain.MethodUsernamePassword))
	err = s.AuthMethods().DeleteAuthMethod(ctx, domain.MethodUsernamePassword)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserContacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, s.Users().CreateUser(ctx, domain.User{ID: "user-1", Status: domain.UserActive, CreatedAt: now, UpdatedAt: now}))

	err := s.UserContacts().SaveUserContact(ctx, domain.UserContact{UserID: "ghost", Name: "mobile", Type: domain.ContactPhone, Value: "1", CreatedAt: now, UpdatedAt: now})
	require.ErrorIs(t, err, store.ErrReferenced)

	for _, c := range []domain.UserContact{
		{UserID: "user-1", Name: "mobile", Type: domain.ContactPhone, Value: "+61400000001", Primary: true},
		{UserID: "user-1", Name: "home", Type: domain.ContactPhone, Value: "+61400000002"},
	} {
		c.CreatedAt, c.UpdatedAt = now, now
		require.NoError(t, s.UserContacts().SaveUserContact(ctx, c))
	}

	contacts, err := s.UserContacts().ListUserContacts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	require.Equal(t, "mobile", contacts[0].Name)
	require.True(t, contacts[0].Primary)

	require.NoError(t, s.UserContacts().ClearPrimaryContacts(ctx, "user-1", domain.ContactPhone, now))
	contacts, err = s.UserContacts().ListUserContacts(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "home", contacts[0].Name, "without a primary contacts sort by name")
	require.False(t, contacts[1].Primary)

	require.NoError(t, s.UserContacts().DeleteUserContact(ctx, "user-1", "home"))
	err = s.UserContacts().DeleteUserContact(ctx, "user-1", "home")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, domain.User{ID: "u", Status: domain.UserActive, CreatedAt: now, UpdatedAt: now}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUser(ctx, "u")
	require.ErrorIs(t, err, store.ErrNotFound)
}
