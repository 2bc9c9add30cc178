package model

import (
	"room_booking/utils"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingOngoing   MeetingStatus = "ongoing"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

type Meeting struct {
	DTO
	RoomID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_meetings_room_date,priority:1" json:"roomId"`
	Room        *Room             `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
	OrganizerID uuid.UUID         `gorm:"type:uuid;not null;index" json:"organizerId"`
	Organizer   *User             `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
	Title       string            `gorm:"size:200;not null" json:"title"`
	Description string            `gorm:"type:text;not null" json:"description"`
	MeetingDate utils.CustomDate  `gorm:"type:date;not null;index:idx_meetings_room_date,priority:2" json:"meetingDate"`
	StartTime   utils.ClockTime   `gorm:"type:time;not null" json:"startTime"`
	EndTime     utils.ClockTime   `gorm:"type:time;not null" json:"endTime"`
	IsPrivate   bool              `gorm:"not null;default:false" json:"isPrivate"`
	Status      MeetingStatus     `gorm:"size:20;not null;default:scheduled;index" json:"status"`
	Attendees   []MeetingAttendee `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"attendees"`
}

type MeetingAttendee struct {
	MeetingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"meetingId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m Meeting) AttendeeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		ids = append(ids, a.UserID)
	}
	return ids
}

// Participants is the organizer followed by every attendee, without repeats.
func (m Meeting) Participants() []uuid.UUID {
	return UniqueIDs(append([]uuid.UUID{m.OrganizerID}, m.AttendeeIDs()...))
}

func (m Meeting) Slot() Slot {
	return Slot{Date: m.MeetingDate, Start: m.StartTime, End: m.EndTime}
}

// Slot is a normalized booking interval on a single date.
type Slot struct {
	Date  utils.CustomDate
	Start utils.ClockTime
	End   utils.ClockTime
}

type CreateMeetingInput struct {
	RoomID      uuid.UUID   `json:"roomId" validate:"required"`
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"required"`
	MeetingDate string      `json:"meetingDate"`
	StartTime   string      `json:"startTime" validate:"required"`
	EndTime     string      `json:"endTime" validate:"required"`
	IsPrivate   bool        `json:"isPrivate"`
	Attendees   []uuid.UUID `json:"attendees"`
}

type UpdateMeetingInput struct {
	RoomID      *uuid.UUID   `json:"roomId"`
	Title       *string      `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string      `json:"description" validate:"omitempty,min=1"`
	MeetingDate *string      `json:"meetingDate"`
	StartTime   *string      `json:"startTime"`
	EndTime     *string      `json:"endTime"`
	IsPrivate   *bool        `json:"isPrivate"`
	Attendees   *[]uuid.UUID `json:"attendees"`
}

// TouchesSlot reports whether the patch moves the meeting to another room
// or time.
func (in UpdateMeetingInput) TouchesSlot() bool {
	return in.RoomID != nil || in.MeetingDate != nil || in.StartTime != nil || in.EndTime != nil
}

// Apply returns m with the patch and the already resolved slot applied.
// Attendees are replaced separately.
func (in UpdateMeetingInput) Apply(m Meeting, slot Slot) Meeting {
	if in.RoomID != nil {
		m.RoomID = *in.RoomID
		m.Room = nil
	}
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.IsPrivate != nil {
		m.IsPrivate = *in.IsPrivate
	}
	m.MeetingDate = slot.Date
	m.StartTime = slot.Start
	m.EndTime = slot.End
	return m
}

type FilterMeeting struct {
	Pagination
	RoomID      string `query:"roomId"`
	OrganizerID string `query:"organizerId"`
	Date        string `query:"date"`
	Status      string `query:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	Mine        bool   `query:"mine"`
}

func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
