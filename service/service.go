package service

import (
	"context"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/model"
	"room_booking/repository"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}

type TokenIssuer interface {
	Issue(u model.User) (model.TokenData, error)
	ParseRefreshToken(token string) (model.TokenClaim, error)
}

// RateLimiter decides whether subject may be sent another OTP and counts
// wrong guesses against the current one.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) error
	// RecordMiss counts a wrong code and reports whether subject has used
	// up its guesses for the outstanding code.
	RecordMiss(ctx context.Context, subject string) (bool, error)
}

// Publisher pushes a serialized notification to a user's live sessions.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, payload []byte) error
}

type noLimit struct{}

func (noLimit) Allow(context.Context, string) error { return nil }

func (noLimit) RecordMiss(context.Context, string) (bool, error) { return false, nil }

func requireAdmin(p model.Principal) error {
	if !p.IsAdmin {
		return apperror.ErrForbidden
	}
	return nil
}

// recordActivity appends to the user's activity log. Failures are logged
// only, the action itself already happened.
func recordActivity(ctx context.Context, store repository.Store, log *zap.Logger, userID uuid.UUID, description string, at time.Time) {
	if err := store.Users().AddActivity(context.WithoutCancel(ctx), userID, description, at, constants.RECENT_ACTIVITY_LIMIT); err != nil {
		log.Warn("failed to record user activity",
			zap.String("user_id", userID.String()),
			zap.String("activity", description),
			zap.Error(err),
		)
	}
}

func parseOptionalID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation("invalid %s", field)
	}
	return &id, nil
}

func missing(wanted, found []uuid.UUID) []uuid.UUID {
	have := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var out []uuid.UUID
	for _, id := range wanted {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
