package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatePasswordThenOtp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)

	res, err := env.ops.AuthenticateCredential(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodUsernamePassword,
		CredentialName:  testCredential,
		CredentialValue: "first9value",
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthenticationSucceeded, res.AuthenticationResult)
	require.Equal(t, domain.AuthContinue, res.AuthResult)
	require.Equal(t, domain.StepConfirmed, res.StepResult)
	require.Equal(t, domain.MethodSMSKey, res.NextAuthMethod)
	require.Equal(t, testUserID, res.UserID)

	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: testUserID, OtpName: testOtpName, OperationID: op.ID})
	require.NoError(t, err)

	res, err = env.ops.AuthenticateOtp(ctx, AuthenticationRequest{
		OperationID: op.ID,
		AuthMethod:  domain.MethodSMSKey,
		OtpValue:    otp.OtpValue,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthDone, res.AuthResult)
	require.Equal(t, domain.OtpVerified, res.OtpStatus)

	got, err := env.ops.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OperationDone, got.State)
	require.Len(t, got.Steps, 2)
	require.Equal(t, []domain.AuthInstrument{domain.InstrumentCredential}, got.Steps[0].Instruments)
	require.Equal(t, []domain.AuthInstrument{domain.InstrumentOtpKey}, got.Steps[1].Instruments)

	_, err = env.ops.AuthenticateOtp(ctx, AuthenticationRequest{OperationID: op.ID, AuthMethod: domain.MethodSMSKey, OtpValue: otp.OtpValue})
	require.ErrorIs(t, err, ErrOperationAlreadyFinished)
}

func TestAuthenticateWrongPasswordUntilBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)
	req := AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodUsernamePassword,
		CredentialName:  testCredential,
		CredentialValue: "wrong9value",
	}

	res, err := env.ops.AuthenticateCredential(ctx, req)
	require.NoError(t, err)
	require.Equal(t, domain.AuthenticationFailed, res.AuthenticationResult)
	require.Equal(t, domain.AuthContinue, res.AuthResult)
	require.Equal(t, domain.StepAuthFailed, res.StepResult)
	require.Equal(t, MsgAuthenticationFailed, res.ErrorMessage)
	require.Equal(t, domain.CredentialActive, res.CredentialStatus)
	require.True(t, res.ShowRemainingAttempts)
	require.NotNil(t, res.RemainingAttempts)
	require.Equal(t, 2, *res.RemainingAttempts)

	_, err = env.ops.AuthenticateCredential(ctx, req)
	require.NoError(t, err)
	res, err = env.ops.AuthenticateCredential(ctx, req)
	require.NoError(t, err)
	require.Equal(t, domain.AuthFailed, res.AuthResult)
	require.Equal(t, domain.StepAuthMethodFailed, res.StepResult)
	require.Equal(t, MsgMaxAttemptsExceeded, res.ErrorMessage)
	require.Equal(t, domain.CredentialBlockedTemporary, res.CredentialStatus)
	require.True(t, res.OperationFailed)
	require.Equal(t, 0, *res.RemainingAttempts)

	// Later calls report the failure without touching the credential again.
	res, err = env.ops.AuthenticateCredential(ctx, req)
	require.NoError(t, err)
	require.True(t, res.OperationFailed)
	require.Equal(t, domain.AuthFailed, res.AuthResult)
	require.Equal(t, 3, env.getCredential(t).FailedAttemptCounterSoft)

	got, err := env.ops.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OperationFailed, got.State)
	require.Equal(t, 3, got.FailedAuthCount)
}

func TestAuthenticateOperationFailLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")
	_, err := env.ops.CreateOperationConfig(ctx, domain.OperationConfig{
		OperationName: "strict",
		AuthMethods:   []domain.AuthMethod{domain.MethodUsernamePassword},
		Timeout:       time.Minute,
		MaxAuthFails:  2,
	})
	require.NoError(t, err)

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "strict", UserID: testUserID})
	require.NoError(t, err)
	req := AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodUsernamePassword,
		CredentialName:  testCredential,
		CredentialValue: "wrong9value",
	}

	res, err := env.ops.AuthenticateCredential(ctx, req)
	require.NoError(t, err)
	require.Equal(t, domain.AuthContinue, res.AuthResult)
	require.Equal(t, 1, *res.RemainingAttempts)

	res, err = env.ops.AuthenticateCredential(ctx, req)
	require.NoError(t, err)
	require.Equal(t, domain.AuthFailed, res.AuthResult)
	require.True(t, res.OperationFailed)
	require.Equal(t, domain.CredentialActive, res.CredentialStatus, "the credential itself is below its limits")
}

func TestAuthenticateCombinedOtpRightPasswordWrong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
	require.NoError(t, err)
	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: testUserID, OtpName: testOtpName, OperationID: op.ID})
	require.NoError(t, err)

	res, err := env.ops.AuthenticateCombined(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodLoginSCA,
		CredentialName:  testCredential,
		CredentialValue: "wrong9value",
		OtpID:           otp.OtpID,
		OtpValue:        otp.OtpValue,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthContinue, res.AuthResult)
	require.Equal(t, domain.StepAuthFailed, res.StepResult)
	require.Equal(t, domain.OtpActive, res.OtpStatus)

	stored, err := env.store.Otps().GetOtp(ctx, otp.OtpID)
	require.NoError(t, err)
	require.Equal(t, domain.OtpActive, stored.Status, "the otp stays usable")
	require.Equal(t, 1, stored.AttemptCounter)
	require.Zero(t, stored.FailedAttemptCounter)
	require.Equal(t, 1, env.getCredential(t).FailedAttemptCounterSoft)

	res, err = env.ops.AuthenticateCombined(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodLoginSCA,
		CredentialName:  testCredential,
		CredentialValue: "first9value",
		OtpID:           otp.OtpID,
		OtpValue:        otp.OtpValue,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthDone, res.AuthResult)
	require.Equal(t, domain.OtpVerified, res.OtpStatus)

	require.Len(t, env.afs.auths, 2)
	last := env.afs.auths[1]
	require.Equal(t, AfsLoginAuth, last.Action)
	require.Equal(t, domain.StepConfirmed, last.StepResult)
	require.Equal(t, []domain.AuthInstrument{domain.InstrumentCredential, domain.InstrumentOtpKey}, last.Instruments)
	require.Equal(t, domain.StepAuthFailed, env.afs.auths[0].StepResult)
}

func TestAuthenticateCombinedBothWrongAtHardLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	cred := env.getCredential(t)
	cred.FailedAttemptCounterHard = 4
	require.NoError(t, env.store.Credentials().UpdateCredential(ctx, cred))

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
	require.NoError(t, err)
	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: testUserID, OtpName: testOtpName, OperationID: op.ID})
	require.NoError(t, err)

	res, err := env.ops.AuthenticateCombined(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodLoginSCA,
		CredentialName:  testCredential,
		CredentialValue: "wrong9value",
		OtpValue:        wrongValue(otp.OtpValue),
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthFailed, res.AuthResult)
	require.Equal(t, domain.StepAuthMethodFailed, res.StepResult)
	require.Equal(t, domain.CredentialBlockedPermanent, res.CredentialStatus)
	require.True(t, res.OperationFailed)
	require.Equal(t, 0, *res.RemainingAttempts)
}

func TestAuthenticateCombinedWithAfsStepDown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.afs.response = AfsResponse{Applied: true, StepOptions: domain.StepOptions{OtpRequired: true}}

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
	require.NoError(t, err)
	_, err = env.ops.InitStep(ctx, op.ID)
	require.NoError(t, err)
	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: testUserID, OtpName: testOtpName, OperationID: op.ID})
	require.NoError(t, err)

	// No credential exists; the password factor was stepped down.
	res, err := env.ops.AuthenticateCombined(ctx, AuthenticationRequest{
		OperationID: op.ID,
		AuthMethod:  domain.MethodLoginSCA,
		OtpValue:    otp.OtpValue,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthDone, res.AuthResult)

	got, err := env.ops.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	require.Nil(t, got.StepOptions)
	require.Equal(t, []domain.AuthInstrument{domain.InstrumentOtpKey}, got.Steps[0].Instruments)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: "ghost"})
	require.NoError(t, err)

	res, err := env.ops.AuthenticateCredential(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodUsernamePassword,
		CredentialName:  testCredential,
		CredentialValue: "anything1",
	})
	require.NoError(t, err, "unknown users fail like a wrong password")
	require.Equal(t, domain.AuthenticationFailed, res.AuthenticationResult)
	require.Equal(t, domain.AuthContinue, res.AuthResult)
	require.Equal(t, MsgAuthenticationFailed, res.ErrorMessage)
	require.Equal(t, domain.CredentialActive, res.CredentialStatus)
}

func TestAuthenticateUnknownUserMatchesWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	known, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)
	ghost, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: "ghost"})
	require.NoError(t, err)

	attempt := func(operationID string) AuthenticationResponse {
		res, err := env.ops.AuthenticateCredential(ctx, AuthenticationRequest{
			OperationID:     operationID,
			AuthMethod:      domain.MethodUsernamePassword,
			CredentialName:  testCredential,
			CredentialValue: "wrong9value",
		})
		require.NoError(t, err)
		return res
	}

	// soft limit 3, hard limit 5, five failures allowed per operation
	for i := 1; i <= 3; i++ {
		want := attempt(known.ID)
		got := attempt(ghost.ID)

		want.OperationID, want.UserID = "", ""
		got.OperationID, got.UserID = "", ""
		require.Equal(t, want, got, "attempt %d", i)
	}

	res := attempt(ghost.ID)
	require.True(t, res.OperationFailed)
	require.Equal(t, domain.AuthFailed, res.AuthResult)
}

func TestAuthenticateUnknownUserCountsOtpAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: "ghost"})
	require.NoError(t, err)
	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: "ghost", OtpName: testOtpName, OperationID: op.ID})
	require.NoError(t, err)

	res, err := env.ops.AuthenticateCombined(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodLoginSCA,
		CredentialName:  testCredential,
		CredentialValue: "anything1",
		OtpValue:        otp.OtpValue,
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthenticationFailed, res.AuthenticationResult)
	require.Equal(t, domain.OtpActive, res.OtpStatus, "the otp is not consumed")
	require.NotNil(t, res.RemainingAttempts)
	require.Equal(t, 2, *res.RemainingAttempts)
}

func TestAuthenticateBlockedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	_, err := env.users.UpdateUserStatus(ctx, testUserID, domain.UserBlocked)
	require.NoError(t, err)

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)
	res, err := env.ops.AuthenticateCredential(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodUsernamePassword,
		CredentialName:  testCredential,
		CredentialValue: "first9value",
	})
	require.NoError(t, err)
	require.Equal(t, domain.AuthenticationFailed, res.AuthenticationResult)
	require.Zero(t, env.getCredential(t).AttemptCounter, "the credential is not touched")
}

func TestAuthenticateRejectsMismatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createCredential(t, "john", "first9value")

	op, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login", UserID: testUserID})
	require.NoError(t, err)

	_, err = env.ops.AuthenticateOtp(ctx, AuthenticationRequest{OperationID: op.ID, AuthMethod: domain.MethodSMSKey, OtpValue: "12345678"})
	require.ErrorIs(t, err, ErrInvalidRequest, "sms step is not current yet")

	_, err = env.ops.AuthenticateCredential(ctx, AuthenticationRequest{
		OperationID:     op.ID,
		AuthMethod:      domain.MethodUsernamePassword,
		UserID:          "someone-else",
		CredentialName:  testCredential,
		CredentialValue: "first9value",
	})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.ops.AuthenticateCredential(ctx, AuthenticationRequest{OperationID: "missing", AuthMethod: domain.MethodUsernamePassword})
	require.ErrorIs(t, err, ErrOperationNotFound)

	other, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
	require.NoError(t, err)
	otp, err := env.otps.CreateOtp(ctx, CreateOtpRequest{UserID: testUserID, OtpName: testOtpName, OperationID: other.ID})
	require.NoError(t, err)
	sca, err := env.ops.CreateOperation(ctx, CreateOperationRequest{OperationName: "login_sca", UserID: testUserID})
	require.NoError(t, err)
	_, err = env.ops.AuthenticateCombined(ctx, AuthenticationRequest{
		OperationID:     sca.ID,
		AuthMethod:      domain.MethodLoginSCA,
		CredentialName:  testCredential,
		CredentialValue: "first9value",
		OtpID:           otp.OtpID,
		OtpValue:        otp.OtpValue,
	})
	require.ErrorIs(t, err, ErrInvalidRequest, "otp of another operation")
}
