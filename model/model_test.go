package model

import (
	"room_booking/utils"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}.Normalize()
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, Limit: 500}.Normalize()
	require.Equal(t, 100, p.Limit)
	require.Equal(t, 200, p.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage[User](nil, 21, Pagination{Page: 2, Limit: 10})
	require.NotNil(t, page.Rows)
	require.Equal(t, 3, page.Pages)
	require.Equal(t, 2, page.CurrentPage)
}

func TestUpdateMeetingApplyLeavesUntouchedFields(t *testing.T) {
	room := uuid.New()
	m := Meeting{
		RoomID:      room,
		Title:       "Weekly sync",
		Description: "status",
		IsPrivate:   true,
		Status:      MeetingScheduled,
	}
	title := "  Planning  "
	slot := Slot{Date: mustDate(t, "2025-05-01"), Start: 9 * 3600, End: 10 * 3600}

	got := UpdateMeetingInput{Title: &title}.Apply(m, slot)

	require.Equal(t, "Planning", got.Title)
	require.Equal(t, "status", got.Description)
	require.Equal(t, room, got.RoomID)
	require.True(t, got.IsPrivate)
	require.Equal(t, slot, got.Slot())
	require.Equal(t, "Weekly sync", m.Title)
}

func TestTouchesSlot(t *testing.T) {
	title := "x"
	start := "09:00"
	require.False(t, UpdateMeetingInput{Title: &title}.TouchesSlot())
	require.True(t, UpdateMeetingInput{StartTime: &start}.TouchesSlot())
}

func TestParticipantsDeduplicates(t *testing.T) {
	organizer, a, b := uuid.New(), uuid.New(), uuid.New()
	m := Meeting{
		OrganizerID: organizer,
		Attendees:   []MeetingAttendee{{UserID: a}, {UserID: organizer}, {UserID: b}, {UserID: a}},
	}
	require.Equal(t, []uuid.UUID{organizer, a, b}, m.Participants())
}

func TestUpdateProfileApply(t *testing.T) {
	email := " New@Example.COM "
	u := UpdateProfileInput{Email: &email}.Apply(User{Email: "old@example.com", Fullname: "A"})
	require.Equal(t, "new@example.com", u.Email)
	require.Equal(t, "A", u.Fullname)
}

func TestUpdateCommitteeApply(t *testing.T) {
	status := CommitteeInactive
	c := UpdateCommitteeInput{Status: &status}.Apply(Committee{Name: "Budget", Status: CommitteeActive})
	require.Equal(t, "Budget", c.Name)
	require.Equal(t, CommitteeInactive, c.Status)
}

func mustDate(t *testing.T, s string) utils.CustomDate {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}
