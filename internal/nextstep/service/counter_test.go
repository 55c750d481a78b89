package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/stretchr/testify/require"
)

func TestApplyCredentialCounter(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("hard limit wins over soft", func(t *testing.T) {
		cred := domain.Credential{Status: domain.CredentialActive, FailedAttemptCounterSoft: 1, FailedAttemptCounterHard: 1}
		policy := domain.CredentialPolicy{LimitSoft: intPtr(2), LimitHard: intPtr(2)}
		require.NoError(t, applyCredentialCounter(&cred, policy, CounterFailed, at))
		require.Equal(t, domain.CredentialBlockedPermanent, cred.Status)
		require.Equal(t, at, *cred.BlockedAt)
	})

	t.Run("success clears failures", func(t *testing.T) {
		cred := domain.Credential{Status: domain.CredentialActive, AttemptCounter: 4, FailedAttemptCounterSoft: 2, FailedAttemptCounterHard: 3}
		require.NoError(t, applyCredentialCounter(&cred, domain.CredentialPolicy{}, CounterSucceeded, at))
		require.Equal(t, 5, cred.AttemptCounter)
		require.Zero(t, cred.FailedAttemptCounterSoft)
		require.Zero(t, cred.FailedAttemptCounterHard)
		require.Equal(t, domain.CredentialActive, cred.Status)
	})

	t.Run("no limits never block", func(t *testing.T) {
		cred := domain.Credential{Status: domain.CredentialActive, FailedAttemptCounterSoft: 99, FailedAttemptCounterHard: 99}
		require.NoError(t, applyCredentialCounter(&cred, domain.CredentialPolicy{}, CounterFailed, at))
		require.Equal(t, domain.CredentialActive, cred.Status)
		require.Nil(t, credentialRemainingAttempts(cred, domain.CredentialPolicy{}))
	})

	t.Run("unknown change", func(t *testing.T) {
		cred := domain.Credential{Status: domain.CredentialActive}
		err := applyCredentialCounter(&cred, domain.CredentialPolicy{}, "MAYBE", at)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestCredentialRemainingAttempts(t *testing.T) {
	t.Parallel()
	policy := domain.CredentialPolicy{LimitSoft: intPtr(3), LimitHard: intPtr(5)}

	remaining := credentialRemainingAttempts(domain.Credential{FailedAttemptCounterSoft: 1, FailedAttemptCounterHard: 4}, policy)
	require.NotNil(t, remaining)
	require.Equal(t, 1, *remaining)

	remaining = credentialRemainingAttempts(domain.Credential{FailedAttemptCounterSoft: 7, FailedAttemptCounterHard: 7}, policy)
	require.Equal(t, 0, *remaining)
}

func TestUpdateCredentialCounterAndReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	var cred domain.Credential
	var err error
	for range 3 {
		cred, err = env.counters.UpdateCredentialCounter(ctx, testUserID, testCredential, CounterFailed)
		require.NoError(t, err)
	}
	require.Equal(t, domain.CredentialBlockedTemporary, cred.Status)
	require.Equal(t, 3, cred.FailedAttemptCounterSoft)
	require.Equal(t, 3, cred.FailedAttemptCounterHard)

	_, err = env.counters.UpdateCredentialCounter(ctx, testUserID, testCredential, CounterFailed)
	require.ErrorIs(t, err, ErrCredentialNotActive)

	n, err := env.counters.ResetAllCounters(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	cred = env.getCredential(t)
	require.Equal(t, domain.CredentialActive, cred.Status)
	require.Zero(t, cred.FailedAttemptCounterSoft)
	require.Equal(t, 3, cred.FailedAttemptCounterHard, "hard counter survives the reset")
	require.Nil(t, cred.BlockedAt)

	for range 2 {
		cred, err = env.counters.UpdateCredentialCounter(ctx, testUserID, testCredential, CounterFailed)
		require.NoError(t, err)
	}
	require.Equal(t, domain.CredentialBlockedPermanent, cred.Status)

	n, err = env.counters.ResetAllCounters(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n, "soft counter of the permanently blocked credential is zeroed")
	require.Equal(t, domain.CredentialBlockedPermanent, env.getCredential(t).Status)
}

func TestUpdateCredentialCounterBlocked(t *testing.T) {
	env := newTestEnv(t)
	env.createCredential(t, "john", "first9value")

	cred, err := env.counters.UpdateCredentialCounter(context.Background(), testUserID, testCredential, CounterBlocked)
	require.NoError(t, err)
	require.Equal(t, domain.CredentialBlockedPermanent, cred.Status)
	require.NotNil(t, cred.BlockedAt)
}

func TestUpdateCredentialCounterConcurrentFailures(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "nextstep.db") +
		"?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)&_txlock=immediate"
	env := newTestEnvDSN(t, dsn)
	ctx := context.Background()

	env.addDefinition(t, "unlimited", func(p *domain.CredentialPolicy) {
		p.LimitSoft = nil
		p.LimitHard = nil
	}, nil)
	_, err := env.creds.Create(ctx, CreateCredentialRequest{
		UserID:         testUserID,
		CredentialName: "unlimited",
		Username:       "john",
		Value:          "first9value",
	})
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.counters.UpdateCredentialCounter(ctx, testUserID, "unlimited", CounterFailed)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	creds, err := env.creds.List(ctx, testUserID, false)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	require.Equal(t, n, creds[0].FailedAttemptCounterHard)
	require.Equal(t, n, creds[0].FailedAttemptCounterSoft)
	require.Equal(t, n, creds[0].AttemptCounter)
}
