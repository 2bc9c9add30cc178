package cache

import (
	"context"
	"fmt"
	"room_booking/apperror"
	"room_booking/config"
	"time"
)

// OTPLimiter throttles OTP issuance per subject: a cooldown between two
// requests, a cap per window, and a block once the cap is exceeded. It also
// caps wrong guesses against each issued code.
type OTPLimiter struct {
	kv          KVStore
	cooldown    time.Duration
	window      time.Duration
	maxInWindow int
	blockFor    time.Duration
	maxMisses   int
	codeTTL     time.Duration
}

func NewOTPLimiter(kv KVStore, cfg config.OTPSettings) *OTPLimiter {
	codeTTL := cfg.TTL
	if codeTTL <= 0 {
		codeTTL = cfg.Window
	}
	return &OTPLimiter{
		kv:          kv,
		cooldown:    cfg.Cooldown,
		window:      cfg.Window,
		maxInWindow: cfg.MaxPerWindow,
		blockFor:    cfg.BlockFor,
		maxMisses:   cfg.MaxAttempts,
		codeTTL:     codeTTL,
	}
}

func (l *OTPLimiter) Allow(ctx context.Context, subject string) error {
	blockKey := fmt.Sprintf("otp:block:%s", subject)
	lastKey := fmt.Sprintf("otp:last:%s", subject)
	countKey := fmt.Sprintf("otp:count:%s", subject)

	if ttl, err := l.kv.TTL(ctx, blockKey); err != nil {
		return apperror.Internal(err)
	} else if ttl > 0 {
		return apperror.ErrOtpRateLimited.WithMessage("Too many OTP requests, try again in %d seconds", seconds(ttl))
	}

	if ttl, err := l.kv.TTL(ctx, lastKey); err != nil {
		return apperror.Internal(err)
	} else if ttl > 0 {
		return apperror.ErrOtpRateLimited.WithMessage("Please wait %d seconds before requesting another OTP", seconds(ttl))
	}

	count, err := l.kv.IncrWithExpire(ctx, countKey, l.window)
	if err != nil {
		return apperror.Internal(err)
	}
	if int(count) > l.maxInWindow {
		if err := l.kv.Set(ctx, blockKey, "1", l.blockFor); err != nil {
			return apperror.Internal(err)
		}
		return apperror.ErrOtpRateLimited.WithMessage("Too many OTP requests, try again in %d seconds", seconds(l.blockFor))
	}

	if err := l.kv.Set(ctx, lastKey, "1", l.cooldown); err != nil {
		return apperror.Internal(err)
	}
	// a fresh code gets a fresh set of guesses
	if err := l.kv.Del(ctx, missKey(subject)); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// RecordMiss counts a wrong code for subject. Once the count reaches the
// configured maximum it resets the counter and reports true; the caller is
// expected to revoke the code.
func (l *OTPLimiter) RecordMiss(ctx context.Context, subject string) (bool, error) {
	if l.maxMisses <= 0 {
		return false, nil
	}
	key := missKey(subject)
	n, err := l.kv.IncrWithExpire(ctx, key, l.codeTTL)
	if err != nil {
		return false, err
	}
	if int(n) < l.maxMisses {
		return false, nil
	}
	if err := l.kv.Del(ctx, key); err != nil {
		return true, err
	}
	return true, nil
}

func missKey(subject string) string {
	return fmt.Sprintf("otp:miss:%s", subject)
}

func seconds(d time.Duration) int {
	s := int(d.Round(time.Second).Seconds())
	if s < 1 {
		return 1
	}
	return s
}
