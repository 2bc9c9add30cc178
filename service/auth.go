package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/helper"
	"room_booking/mailer"
	"room_booking/model"
	"room_booking/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthConfig struct {
	OTPDigits     int
	OTPTTL        time.Duration
	ResetTokenTTL time.Duration
	ClientURL     string
}

// AuthService owns the credential lifecycle: password check, one time code,
// session tokens and password reset.
type AuthService struct {
	store   repository.Store
	hasher  PasswordHasher
	tokens  TokenIssuer
	mail    mailer.Dispatcher
	limiter RateLimiter
	cfg     AuthConfig
	log     *zap.Logger

	now        func() time.Time
	newOTP     func(digits int) (string, error)
	resetToken func() (string, error)
}

func NewAuthService(store repository.Store, hasher PasswordHasher, tokens TokenIssuer, mail mailer.Dispatcher, limiter RateLimiter, cfg AuthConfig, log *zap.Logger) *AuthService {
	if limiter == nil {
		limiter = noLimit{}
	}
	return &AuthService{
		store:      store,
		hasher:     hasher,
		tokens:     tokens,
		mail:       mail,
		limiter:    limiter,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
		newOTP:     helper.GenerateOTP,
		resetToken: helper.GenerateResetToken,
	}
}

// InitiateLogin checks the password and sends a one time code. No session
// exists until VerifyOTP succeeds.
func (s *AuthService) InitiateLogin(ctx context.Context, in model.LoginInput) (*model.OTPIssued, error) {
	email := model.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperror.Validation(constants.MISSING_LOGIN_INPUT)
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || !s.hasher.Compare(in.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, apperror.ErrAccountBlocked
	}
	return s.issueOTP(ctx, user)
}

// ResendOTP replaces any outstanding code with a fresh one.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (*model.OTPIssued, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	if user.IsBlocked {
		return nil, apperror.ErrAccountBlocked
	}
	return s.issueOTP(ctx, user)
}

func (s *AuthService) issueOTP(ctx context.Context, user *model.User) (*model.OTPIssued, error) {
	if err := s.limiter.Allow(ctx, user.ID.String()); err != nil {
		return nil, err
	}

	code, err := s.newOTP(s.cfg.OTPDigits)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	expiresAt := s.now().Add(s.cfg.OTPTTL)
	if err := s.store.Users().SetOTP(ctx, user.ID, &code, &expiresAt); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := s.mail.Send(ctx, mailer.OTPMessage(user.Email, code, s.cfg.OTPTTL)); err != nil {
		s.log.Error("otp delivery failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		// an undelivered code must not stay redeemable
		if clearErr := s.store.Users().SetOTP(context.WithoutCancel(ctx), user.ID, nil, nil); clearErr != nil {
			s.log.Error("failed to clear undelivered otp", zap.String("user_id", user.ID.String()), zap.Error(clearErr))
		}
		return nil, apperror.ErrOtpDelivery.Wrap(err)
	}

	s.log.Info("otp issued", zap.String("user_id", user.ID.String()), zap.Time("expires_at", expiresAt))
	return &model.OTPIssued{Email: user.Email, ExpiresAt: expiresAt}, nil
}

// VerifyOTP redeems a code for a session. A code is accepted at most once.
func (s *AuthService) VerifyOTP(ctx context.Context, in model.VerifyOTPInput) (*model.LoginResult, error) {
	email := model.NormalizeEmail(in.Email)
	code := strings.TrimSpace(in.Code)
	if email == "" || code == "" {
		return nil, apperror.Validation(constants.MISSING_OTP_INPUT)
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.TempOTP == nil || user.OTPExpiresAt == nil {
		return nil, apperror.ErrOtpExpiredOrInvalid
	}

	now := s.now()
	if !now.Before(*user.OTPExpiresAt) {
		if err := s.store.Users().SetOTP(ctx, user.ID, nil, nil); err != nil {
			s.log.Warn("failed to clear expired otp", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
		return nil, apperror.ErrOtpExpiredOrInvalid
	}
	if user.IsBlocked {
		return nil, apperror.ErrAccountBlocked
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(*user.TempOTP)) != 1 {
		exhausted, err := s.limiter.RecordMiss(ctx, user.ID.String())
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if !exhausted {
			return nil, apperror.ErrOtpMismatch
		}
		if err := s.store.Users().SetOTP(ctx, user.ID, nil, nil); err != nil {
			return nil, apperror.Internal(err)
		}
		s.log.Warn("otp revoked after too many wrong codes", zap.String("user_id", user.ID.String()))
		return nil, apperror.ErrOtpExpiredOrInvalid.WithMessage("Too many incorrect codes, please request a new OTP")
	}

	consumed, err := s.store.Users().ConsumeOTP(ctx, user.ID, code, now)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !consumed {
		// a concurrent verification got there first
		return nil, apperror.ErrOtpExpiredOrInvalid
	}
	user.TempOTP = nil
	user.OTPExpiresAt = nil

	tokens, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.LastLoggedIn = &now
	user.RefreshToken = &tokens.RefreshToken
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	recordActivity(ctx, s.store, s.log, user.ID, "Logged in", now)
	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &model.LoginResult{User: *user, Tokens: tokens}, nil
}

// Refresh rotates the session tokens. Only the most recently issued refresh
// token is accepted.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenData, error) {
	if refreshToken == "" {
		return nil, apperror.ErrUnauthorized
	}
	claim, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized.Wrap(err)
	}

	user, err := s.store.Users().FindByID(ctx, claim.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil || user.RefreshToken == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(refreshToken)) != 1 {
		return nil, apperror.ErrUnauthorized
	}
	if user.IsBlocked {
		return nil, apperror.ErrAccountBlocked
	}

	tokens, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.RefreshToken = &tokens.RefreshToken
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return &tokens, nil
}

func (s *AuthService) Logout(ctx context.Context, p model.Principal) error {
	user, err := s.store.Users().FindByID(ctx, p.UserID)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}
	user.RefreshToken = nil
	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	recordActivity(ctx, s.store, s.log, user.ID, "Logged out", s.now())
	return nil
}

// ResolvePrincipal turns a token subject into the caller identity, refusing
// users that were deleted or blocked after the token was issued.
func (s *AuthService) ResolvePrincipal(ctx context.Context, userID uuid.UUID) (model.Principal, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return model.Principal{}, apperror.Internal(err)
	}
	if user == nil {
		return model.Principal{}, apperror.ErrUnauthorized
	}
	if user.IsBlocked {
		return model.Principal{}, apperror.ErrAccountBlocked
	}
	return model.Principal{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)
	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}

	token, err := s.resetToken()
	if err != nil {
		return apperror.Internal(err)
	}
	expiresAt := s.now().Add(s.cfg.ResetTokenTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordExpiresAt = &expiresAt
	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.cfg.ClientURL, token)
	if err := s.mail.Send(ctx, mailer.PasswordResetMessage(user.Email, link, s.cfg.ResetTokenTTL)); err != nil {
		s.log.Error("password reset delivery failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		user.ResetPasswordToken = nil
		user.ResetPasswordExpiresAt = nil
		if clearErr := s.store.Users().Update(context.WithoutCancel(ctx), user); clearErr != nil {
			s.log.Error("failed to clear undelivered reset token", zap.Error(clearErr))
		}
		return apperror.ErrResetDelivery.Wrap(err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token string, in model.ResetPasswordInput) error {
	if token == "" {
		return apperror.ErrInvalidResetToken
	}
	now := s.now()
	user, err := s.store.Users().FindByResetToken(ctx, token, now)
	if err != nil {
		return apperror.Internal(err)
	}
	if user == nil {
		return apperror.ErrInvalidResetToken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return apperror.Internal(err)
	}
	user.Password = hash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpiresAt = nil
	user.RefreshToken = nil
	if err := s.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperror.ErrDuplicateEmail
		}
		return apperror.Internal(err)
	}

	if err := s.mail.Send(ctx, mailer.PasswordChangedMessage(user.Email)); err != nil {
		s.log.Warn("password changed email not sent", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	recordActivity(ctx, s.store, s.log, user.ID, "Reset password", now)
	return nil
}
