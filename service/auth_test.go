package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/config"
	"room_booking/helper"
	"room_booking/model"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type authFixture struct {
	store *memStore
	mail  *recordingMailer
	svc   *AuthService
	user  model.User
	clock time.Time
	codes []string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		store: newMemStore(),
		mail:  &recordingMailer{},
		clock: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	f.user = f.store.addUser("alice@example.com", false)
	tokens := helper.NewTokenManager(config.JWTSettings{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	f.svc = NewAuthService(f.store, plainHasher{}, tokens, f.mail, nil, AuthConfig{
		OTPDigits:     6,
		OTPTTL:        30 * time.Minute,
		ResetTokenTTL: time.Hour,
		ClientURL:     "https://rooms.example.com",
	}, testLog)
	f.svc.now = func() time.Time { return f.clock }
	next := 100000
	f.svc.newOTP = func(int) (string, error) {
		next++
		code := strconv.Itoa(next)
		f.codes = append(f.codes, code)
		return code, nil
	}
	return f
}

func (f *authFixture) lastCode() string { return f.codes[len(f.codes)-1] }

func (f *authFixture) login(t *testing.T) *model.OTPIssued {
	t.Helper()
	issued, err := f.svc.InitiateLogin(context.Background(), model.LoginInput{Email: "Alice@Example.com ", Password: "secret"})
	require.NoError(t, err)
	return issued
}

func TestInitiateLoginSendsCode(t *testing.T) {
	f := newAuthFixture(t)
	issued := f.login(t)

	require.Equal(t, "alice@example.com", issued.Email)
	require.Equal(t, f.clock.Add(30*time.Minute), issued.ExpiresAt)
	require.Equal(t, 1, f.mail.count())
	require.Contains(t, f.mail.sent[0].Text, f.lastCode())

	stored := f.store.users[f.user.ID]
	require.Equal(t, f.lastCode(), *stored.TempOTP)
}

func TestInitiateLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.InitiateLogin(ctx, model.LoginInput{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = f.svc.InitiateLogin(ctx, model.LoginInput{Email: "nobody@example.com", Password: "secret"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = f.svc.InitiateLogin(ctx, model.LoginInput{})
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	u := f.store.users[f.user.ID]
	u.IsBlocked = true
	f.store.users[f.user.ID] = u
	_, err = f.svc.InitiateLogin(ctx, model.LoginInput{Email: "alice@example.com", Password: "secret"})
	require.ErrorIs(t, err, apperror.ErrAccountBlocked)
	require.Zero(t, f.mail.count())
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.login(t)
	in := model.VerifyOTPInput{Email: "alice@example.com", Code: f.lastCode()}

	result, err := f.svc.VerifyOTP(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)
	require.Equal(t, f.user.ID, result.User.ID)

	stored := f.store.users[f.user.ID]
	require.Nil(t, stored.TempOTP)
	require.Nil(t, stored.OTPExpiresAt)
	require.Equal(t, result.Tokens.RefreshToken, *stored.RefreshToken)

	_, err = f.svc.VerifyOTP(ctx, in)
	require.ErrorIs(t, err, apperror.ErrOtpExpiredOrInvalid)
}

func TestVerifyOTPMismatchKeepsCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.login(t)

	_, err := f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: "000000"})
	require.ErrorIs(t, err, apperror.ErrOtpMismatch)

	_, err = f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: f.lastCode()})
	require.NoError(t, err)
}

func TestVerifyOTPExpiredClearsCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.login(t)
	code := f.lastCode()

	f.clock = f.clock.Add(30 * time.Minute)
	_, err := f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: code})
	require.ErrorIs(t, err, apperror.ErrOtpExpiredOrInvalid)
	require.Nil(t, f.store.users[f.user.ID].TempOTP)

	f.clock = f.clock.Add(-time.Hour)
	_, err = f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: code})
	require.ErrorIs(t, err, apperror.ErrOtpExpiredOrInvalid)
}

func TestVerifyOTPBlockedUser(t *testing.T) {
	f := newAuthFixture(t)
	f.login(t)
	u := f.store.users[f.user.ID]
	u.IsBlocked = true
	f.store.users[f.user.ID] = u

	_, err := f.svc.VerifyOTP(context.Background(), model.VerifyOTPInput{Email: "alice@example.com", Code: f.lastCode()})
	require.ErrorIs(t, err, apperror.ErrAccountBlocked)
}

func TestLoginDispatchFailureClearsCode(t *testing.T) {
	f := newAuthFixture(t)
	f.mail.err = errors.New("smtp down")

	_, err := f.svc.InitiateLogin(context.Background(), model.LoginInput{Email: "alice@example.com", Password: "secret"})
	require.ErrorIs(t, err, apperror.ErrOtpDelivery)
	require.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	require.Nil(t, f.store.users[f.user.ID].TempOTP)
}

func TestResendReplacesCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.login(t)
	old := f.lastCode()

	f.clock = f.clock.Add(10 * time.Minute)
	issued, err := f.svc.ResendOTP(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, f.clock.Add(30*time.Minute), issued.ExpiresAt)
	require.NotEqual(t, old, f.lastCode())

	_, err = f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: old})
	require.ErrorIs(t, err, apperror.ErrOtpMismatch)

	_, err = f.svc.ResendOTP(ctx, "nobody@example.com")
	require.ErrorIs(t, err, apperror.ErrUserNotFound)
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) error {
	return apperror.ErrOtpRateLimited
}

func (denyLimiter) RecordMiss(context.Context, string) (bool, error) { return false, nil }

// missLimiter lets every code through and revokes it after max wrong guesses.
type missLimiter struct {
	max    int
	misses map[string]int
}

func (l *missLimiter) Allow(_ context.Context, subject string) error {
	delete(l.misses, subject)
	return nil
}

func (l *missLimiter) RecordMiss(_ context.Context, subject string) (bool, error) {
	l.misses[subject]++
	if l.misses[subject] < l.max {
		return false, nil
	}
	delete(l.misses, subject)
	return true, nil
}

func TestVerifyOTPRevokesCodeAfterTooManyMisses(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.limiter = &missLimiter{max: 3, misses: map[string]int{}}
	ctx := context.Background()
	f.login(t)
	code := f.lastCode()
	wrong := model.VerifyOTPInput{Email: "alice@example.com", Code: "000000"}

	for i := 0; i < 2; i++ {
		_, err := f.svc.VerifyOTP(ctx, wrong)
		require.ErrorIs(t, err, apperror.ErrOtpMismatch)
	}
	_, err := f.svc.VerifyOTP(ctx, wrong)
	require.ErrorIs(t, err, apperror.ErrOtpExpiredOrInvalid)
	require.Nil(t, f.store.users[f.user.ID].TempOTP)

	// the right code no longer works once revoked
	_, err = f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: code})
	require.ErrorIs(t, err, apperror.ErrOtpExpiredOrInvalid)

	f.login(t)
	_, err = f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: f.lastCode()})
	require.NoError(t, err)
}

func TestResendRateLimited(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.limiter = denyLimiter{}

	_, err := f.svc.ResendOTP(context.Background(), "alice@example.com")
	require.ErrorIs(t, err, apperror.ErrOtpRateLimited)
	require.Zero(t, f.mail.count())
}

func TestRefreshAcceptsOnlyCurrentToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.login(t)
	result, err := f.svc.VerifyOTP(ctx, model.VerifyOTPInput{Email: "alice@example.com", Code: f.lastCode()})
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, result.Tokens.AccessToken)
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	tokens, err := f.svc.Refresh(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)

	require.NoError(t, f.svc.Logout(ctx, principalOf(f.user)))
	_, err = f.svc.Refresh(ctx, tokens.RefreshToken)
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.svc.resetToken = func() (string, error) { return "reset-token", nil }

	require.NoError(t, f.svc.ForgotPassword(ctx, "alice@example.com"))
	require.Contains(t, f.mail.sent[0].Text, "https://rooms.example.com/reset-password/reset-token")

	err := f.svc.ResetPassword(ctx, "other-token", model.ResetPasswordInput{Password: "new-secret"})
	require.ErrorIs(t, err, apperror.ErrInvalidResetToken)

	require.NoError(t, f.svc.ResetPassword(ctx, "reset-token", model.ResetPasswordInput{Password: "new-secret"}))
	stored := f.store.users[f.user.ID]
	require.Equal(t, "hashed:new-secret", stored.Password)
	require.Nil(t, stored.ResetPasswordToken)

	err = f.svc.ResetPassword(ctx, "reset-token", model.ResetPasswordInput{Password: "again"})
	require.ErrorIs(t, err, apperror.ErrInvalidResetToken)

	require.ErrorIs(t, f.svc.ForgotPassword(ctx, "nobody@example.com"), apperror.ErrUserNotFound)
}

func TestResetTokenExpires(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.svc.resetToken = func() (string, error) { return "reset-token", nil }
	require.NoError(t, f.svc.ForgotPassword(ctx, "alice@example.com"))

	f.clock = f.clock.Add(time.Hour)
	err := f.svc.ResetPassword(ctx, "reset-token", model.ResetPasswordInput{Password: "new-secret"})
	require.ErrorIs(t, err, apperror.ErrInvalidResetToken)
}
