package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateOperation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{
		OperationName:         "login",
		OperationID:           "op-1",
		OperationData:         "A1*R100",
		ExternalTransactionID: "ext-1",
	})
	require.NoError(t, err)
	require.Equal(t, "op-1", op.ID)
	require.Equal(t, domain.OperationInitiated, op.State)
	require.Equal(t, domain.AuthContinue, op.Result)
	require.Equal(t, domain.MethodUsernamePassword, op.ChosenAuthMethod)
	require.Nil(t, op.UserID)
	require.True(t, op.ExpiresAt.Equal(env.clock.Now().Add(5*time.Minute)))
	require.Equal(t, []domain.AuthMethod{domain.MethodUsernamePassword, domain.MethodSMSKey}, op.AuthMethods)

	_, err = env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", OperationID: "op-1"})
	require.ErrorIs(t, err, ErrOperationAlreadyExists)

	_, err = env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "transfer"})
	require.ErrorIs(t, err, ErrOperationNotConfigured)

	generated, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login"})
	require.NoError(t, err)
	require.NotEmpty(t, generated.ID)
}

func TestAssignUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login"})
	require.NoError(t, err)

	_, err = env.ops.AssignUser(ctx, op.ID, "", "")
	require.ErrorIs(t, err, ErrInvalidRequest)

	updated, err := env.ops.AssignUser(ctx, op.ID, testUserID, "RETAIL")
	require.NoError(t, err)
	require.NotNil(t, updated.UserID)
	require.Equal(t, testUserID, *updated.UserID)
	require.Equal(t, "RETAIL", updated.OrganizationID)
	require.Equal(t, domain.OperationInProgress, updated.State)
}

func TestOperationTimeout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)

	env.clock.Advance(5 * time.Minute)
	got, err := env.ops.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OperationFailed, got.State)
	require.Equal(t, domain.AuthFailed, got.Result)

	_, err = env.ops.AssignUser(ctx, op.ID, testUserID, "")
	require.ErrorIs(t, err, ErrOperationAlreadyFailed)

	_, err = env.ops.GetOperation(ctx, "missing")
	require.ErrorIs(t, err, ErrOperationNotFound)
}

func TestCancelOperation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)

	canceled, err := env.ops.CancelOperation(ctx, op.ID, "user canceled")
	require.NoError(t, err)
	require.Equal(t, domain.OperationCanceled, canceled.State)
	require.Equal(t, domain.AuthFailed, canceled.Result)
	require.Equal(t, "user canceled", canceled.CancelReason)

	got, err := env.ops.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps, 1)
	require.Equal(t, domain.StepCanceled, got.Steps[0].StepResult)
	require.Equal(t, 1, got.Steps[0].Seq)

	_, err = env.ops.CancelOperation(ctx, op.ID, "again")
	require.ErrorIs(t, err, ErrOperationAlreadyCanceled)
	require.Equal(t, KindConflict, KindOf(err))
}

func TestInitStep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("defaults without afs decision", func(t *testing.T) {
		op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
		require.NoError(t, err)

		out, err := env.ops.InitStep(ctx, op.ID)
		require.NoError(t, err)
		require.True(t, out.StepOptions.PasswordRequired)
		require.True(t, out.StepOptions.OtpRequired)
		require.Equal(t, time.Minute, out.ResendDelay)

		got, err := env.ops.GetOperation(ctx, op.ID)
		require.NoError(t, err)
		require.Nil(t, got.StepOptions)
	})

	t.Run("afs step-down is stored", func(t *testing.T) {
		env.afs.response = AfsResponse{Applied: true, StepOptions: domain.StepOptions{OtpRequired: true}}
		t.Cleanup(func() { env.afs.response = AfsResponse{} })

		op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
		require.NoError(t, err)

		out, err := env.ops.InitStep(ctx, op.ID)
		require.NoError(t, err)
		require.False(t, out.StepOptions.PasswordRequired)
		require.True(t, out.StepOptions.OtpRequired)

		got, err := env.ops.GetOperation(ctx, op.ID)
		require.NoError(t, err)
		require.NotNil(t, got.StepOptions)
		require.False(t, got.StepOptions.PasswordRequired)

		last := env.afs.inits[len(env.afs.inits)-1]
		require.Equal(t, AfsLoginInit, last.Action)
		require.Equal(t, "afs-login", last.AfsConfigID)
		require.Equal(t, testUserID, last.UserID)
	})

	t.Run("certificate removes the password factor", func(t *testing.T) {
		calls := len(env.afs.inits)
		op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
		require.NoError(t, err)

		_, err = env.ops.RecordCertificateVerification(ctx, op.ID)
		require.NoError(t, err)
		out, err := env.ops.InitStep(ctx, op.ID)
		require.NoError(t, err)
		require.False(t, out.StepOptions.PasswordRequired)
		require.True(t, out.StepOptions.OtpRequired)
		require.Len(t, env.afs.inits, calls, "afs is not consulted after certificate verification")
	})
}

func TestOperationConfigs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ops.CreateOperationConfig(ctx, domain.OperationConfig{OperationName: "login", AuthMethods: []domain.AuthMethod{domain.MethodSMSKey}, Timeout: time.Minute})
	require.ErrorIs(t, err, ErrOperationConfigAlreadyExists)

	_, err = env.ops.CreateOperationConfig(ctx, domain.OperationConfig{OperationName: "empty", Timeout: time.Minute})
	require.ErrorIs(t, err, ErrInvalidRequest)

	created, err := env.ops.CreateOperationConfig(ctx, domain.OperationConfig{
		OperationName: "approval",
		TemplateID:    domain.TemplateApproval,
		AuthMethods:   []domain.AuthMethod{domain.MethodApprovalSCA},
		Timeout:       2 * time.Minute,
	})
	require.NoError(t, err)
	require.False(t, created.CreatedAt.IsZero())

	cfgs, err := env.ops.ListOperationConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, cfgs, 3)
	require.Equal(t, "approval", cfgs[0].OperationName)

	got, err := env.ops.GetOperationConfig(ctx, "approval")
	require.NoError(t, err)
	require.Equal(t, 2*time.Minute, got.Timeout)

	_, err = env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login"})
	require.NoError(t, err)
	err = env.ops.DeleteOperationConfig(ctx, "login")
	require.ErrorIs(t, err, ErrInvalidRequest)

	require.NoError(t, env.ops.DeleteOperationConfig(ctx, "approval"))
	_, err = env.ops.GetOperationConfig(ctx, "approval")
	require.ErrorIs(t, err, ErrOperationNotConfigured)
	require.ErrorIs(t, env.ops.DeleteOperationConfig(ctx, "approval"), ErrOperationNotConfigured)
}

func TestHousekeepingSweep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)
	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: testUserID, OtpName: testOtpName, OperationID: op.ID})
	require.NoError(t, err)

	hk := NewHousekeepingService(env.store, env.ops.Logger, time.Hour)
	hk.Now = env.clock.Now

	hk.Sweep(ctx)
	stored, err := env.store.Operations().GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OperationInitiated, stored.State)

	env.clock.Advance(10 * time.Minute)
	hk.Sweep(ctx)

	stored, err = env.store.Operations().GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OperationFailed, stored.State)

	storedOtp, err := env.store.Otps().GetOtp(ctx, otp.OtpID)
	require.NoError(t, err)
	require.Equal(t, domain.OtpExpired, storedOtp.Status)
}
