package scheduler

import (
	"context"
	"errors"
	"room_booking/repository"
	"room_booking/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMeetings struct {
	repository.MeetingRepository
	day   utils.CustomDate
	clock utils.ClockTime
	err   error
}

func (f *fakeMeetings) AdvanceStatuses(_ context.Context, day utils.CustomDate, now utils.ClockTime) (int64, int64, error) {
	f.day, f.clock = day, now
	return 1, 2, f.err
}

type fakeNotifications struct {
	repository.NotificationRepository
	cutoff time.Time
}

func (f *fakeNotifications) PurgeRead(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 4, nil
}

func TestMeetingStatusJobUsesLocalWallClock(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	meetings := &fakeMeetings{}
	job := NewMeetingStatusJob(meetings, ict, zap.NewNop())
	// 2025-06-01 23:30 UTC is already 06:30 the next morning in ICT.
	job.now = func() time.Time { return time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC) }

	job.Run(context.Background())

	require.Equal(t, "2025-06-02", meetings.day.String())
	require.Equal(t, "06:30:00", meetings.clock.String())
}

func TestMeetingStatusJobSurvivesRepositoryError(t *testing.T) {
	meetings := &fakeMeetings{err: errors.New("db down")}
	job := NewMeetingStatusJob(meetings, time.UTC, zap.NewNop())

	require.NotPanics(t, func() { job.Run(context.Background()) })
}

func TestNotificationPurgeCutoffIsRetentionBeforeNow(t *testing.T) {
	notifications := &fakeNotifications{}
	purge := NewNotificationPurge(notifications, 30*24*time.Hour, zap.NewNop())
	purge.now = func() time.Time { return time.Date(2025, 6, 30, 3, 0, 0, 0, time.UTC) }

	purge.Run(context.Background())

	require.Equal(t, time.Date(2025, 5, 31, 3, 0, 0, 0, time.UTC), notifications.cutoff)
}

func TestNotificationPurgeRejectsBadSpec(t *testing.T) {
	purge := NewNotificationPurge(&fakeNotifications{}, time.Hour, zap.NewNop())
	require.Error(t, purge.Start("not a spec", time.UTC))
}
