package repository

import (
	"context"
	"fmt"
	"room_booking/model"
	"room_booking/utils"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	return newMockStoreMatching(t, sqlmock.QueryMatcherRegexp)
}

func newMockStoreMatching(t *testing.T, matcher sqlmock.QueryMatcher) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(db), mock
}

func TestCountOverlappingQuery(t *testing.T) {
	store, mock := newMockStore(t)
	roomID, exclude := uuid.New(), uuid.New()
	day, err := utils.ParseDate("2025-06-02")
	require.NoError(t, err)
	slot := model.Slot{Date: day, Start: 9*3600 + 30*60, End: 10*3600 + 30*60}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "meetings" WHERE .*room_id = \$1 AND meeting_date = \$2 AND status <> \$3.*start_time < \$4 AND end_time > \$5.*id <> \$6.*"deleted_at" IS NULL`).
		WithArgs(roomID.String(), "2025-06-02", "cancelled", "10:30:00", "09:30:00", exclude.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := store.Meetings().CountOverlapping(context.Background(), roomID, slot, &exclude)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeOTPIsConditional(t *testing.T) {
	store, mock := newMockStore(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectExec(`UPDATE "users" SET .*"temp_otp"=.* WHERE .*temp_otp = .*otp_expires_at > `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET .*"temp_otp"=.* WHERE .*temp_otp = .*otp_expires_at > `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := store.Users().ConsumeOTP(context.Background(), userID, "123456", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Users().ConsumeOTP(context.Background(), userID, "123456", now)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeReadIsHardDelete(t *testing.T) {
	store, mock := newMockStore(t)
	cutoff := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM "notifications" WHERE .*created_at < .*is_read = .*deleted_at IS NOT NULL`).
		WithArgs(cutoff, true).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := store.Notifications().PurgeRead(context.Background(), cutoff)
	require.NoError(t, err)
	require.EqualValues(t, 7, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLockByIDTakesRowLock(t *testing.T) {
	store, mock := newMockStore(t)
	roomID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE .*id = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "is_available"}).
			AddRow(roomID.String(), "Board Room", 12, true))

	room, err := store.Rooms().LockByID(context.Background(), roomID)
	require.NoError(t, err)
	require.NotNil(t, room)
	require.Equal(t, "Board Room", room.Name)
	require.True(t, room.IsAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingLockByIDTakesRowLock(t *testing.T) {
	store, mock := newMockStore(t)
	meetingID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "meetings" WHERE .*id = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status"}).
			AddRow(meetingID.String(), "Standup", "scheduled"))

	m, err := store.Meetings().LockByID(context.Background(), meetingID)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, model.MeetingScheduled, m.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingUpdateLeavesStatusAlone(t *testing.T) {
	store, mock := newMockStoreMatching(t, sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		if err := sqlmock.QueryMatcherRegexp.Match(expected, actual); err != nil {
			return err
		}
		if strings.Contains(actual, `"status"`) {
			return fmt.Errorf("meeting update writes status: %s", actual)
		}
		return nil
	}))
	day, err := utils.ParseDate("2025-06-02")
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE "meetings" SET .*"title"=.*"is_private"=.*WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := &model.Meeting{
		RoomID:      uuid.New(),
		Title:       "Renamed",
		Description: "moved",
		MeetingDate: day,
		StartTime:   9 * 3600,
		EndTime:     10 * 3600,
		// a stale read must not overwrite a concurrent cancel
		Status: model.MeetingScheduled,
	}
	m.ID = uuid.New()
	require.NoError(t, store.Meetings().Update(context.Background(), m))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailMissingReturnsNil(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	u, err := store.Users().FindByEmail(context.Background(), " Nobody@Example.com ")
	require.NoError(t, err)
	require.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}
