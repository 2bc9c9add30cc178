package repository

import (
	"context"
	"room_booking/model"
	"room_booking/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MeetingFilter struct {
	RoomID      *uuid.UUID
	OrganizerID *uuid.UUID
	// ParticipantID keeps meetings the user organizes or attends.
	ParticipantID *uuid.UUID
	// VisibleTo hides private meetings the user takes no part in.
	VisibleTo *uuid.UUID
	Date      *utils.CustomDate
	Status    *model.MeetingStatus
}

type MeetingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	// LockByID loads the meeting row, without associations, under a row
	// lock held until the surrounding transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	// CountOverlapping counts live meetings in the room whose interval
	// shares an instant with slot, ignoring excludeID when set.
	CountOverlapping(ctx context.Context, roomID uuid.UUID, slot model.Slot, excludeID *uuid.UUID) (int64, error)
	Create(ctx context.Context, m *model.Meeting) error
	Update(ctx context.Context, m *model.Meeting) error
	ReplaceAttendees(ctx context.Context, meetingID uuid.UUID, userIDs []uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status model.MeetingStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter MeetingFilter, p model.Pagination) ([]model.Meeting, int64, error)
	// AdvanceStatuses moves meetings on or before day to ongoing or
	// completed according to the clock.
	AdvanceStatuses(ctx context.Context, day utils.CustomDate, now utils.ClockTime) (started, completed int64, err error)
}

// meetingColumns are the fields Update writes. Status only moves through
// SetStatus and AdvanceStatuses.
var meetingColumns = []string{
	"room_id", "title", "description", "meeting_date", "start_time", "end_time", "is_private",
}

type meetingRepo struct {
	db *gorm.DB
}

func (r *meetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	return first[model.Meeting](r.db.WithContext(ctx).
		Preload("Room").
		Preload("Organizer").
		Preload("Attendees").
		Preload("Attendees.User").
		Where("id = ?", id))
}

func (r *meetingRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	return first[model.Meeting](r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (r *meetingRepo) CountOverlapping(ctx context.Context, roomID uuid.UUID, slot model.Slot, excludeID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("room_id = ? AND meeting_date = ? AND status <> ?", roomID, slot.Date, model.MeetingCancelled).
		Where("start_time < ? AND end_time > ?", slot.End, slot.Start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *meetingRepo) Create(ctx context.Context, m *model.Meeting) error {
	attendees := m.AttendeeIDs()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate(err)
	}
	return r.ReplaceAttendees(ctx, m.ID, attendees)
}

func (r *meetingRepo) Update(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Model(m).
		Select(meetingColumns).
		Omit(clause.Associations).
		Updates(m).Error
}

func (r *meetingRepo) ReplaceAttendees(ctx context.Context, meetingID uuid.UUID, userIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("meeting_id = ?", meetingID).Delete(&model.MeetingAttendee{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.MeetingAttendee, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.MeetingAttendee{MeetingID: meetingID, UserID: id})
	}
	return db.Omit(clause.Associations).Create(&rows).Error
}

func (r *meetingRepo) SetStatus(ctx context.Context, id uuid.UUID, status model.MeetingStatus) error {
	return r.db.WithContext(ctx).Model(&model.Meeting{}).Where("id = ?", id).Update("status", status).Error
}

func (r *meetingRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Meeting{}, "id = ?", id).Error
}

func (r *meetingRepo) List(ctx context.Context, filter MeetingFilter, p model.Pagination) ([]model.Meeting, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Meeting{})
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filter.OrganizerID)
	}
	if filter.ParticipantID != nil {
		query = query.Where("organizer_id = ? OR EXISTS (SELECT 1 FROM meeting_attendees ma WHERE ma.meeting_id = meetings.id AND ma.user_id = ?)",
			*filter.ParticipantID, *filter.ParticipantID)
	}
	if filter.VisibleTo != nil {
		query = query.Where("is_private = ? OR organizer_id = ? OR EXISTS (SELECT 1 FROM meeting_attendees ma WHERE ma.meeting_id = meetings.id AND ma.user_id = ?)",
			false, *filter.VisibleTo, *filter.VisibleTo)
	}
	if filter.Date != nil {
		query = query.Where("meeting_date = ?", *filter.Date)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meetings []model.Meeting
	err := utils.ApplyPagination(query.
		Preload("Room").
		Preload("Organizer").
		Preload("Attendees").
		Order("meeting_date DESC, start_time ASC"), p.Limit, p.Page).
		Find(&meetings).Error
	return meetings, total, err
}

func (r *meetingRepo) AdvanceStatuses(ctx context.Context, day utils.CustomDate, now utils.ClockTime) (int64, int64, error) {
	db := r.db.WithContext(ctx)
	completed := db.Model(&model.Meeting{}).
		Where("status IN ?", []model.MeetingStatus{model.MeetingScheduled, model.MeetingOngoing}).
		Where("meeting_date < ? OR (meeting_date = ? AND end_time <= ?)", day, day, now).
		Update("status", model.MeetingCompleted)
	if completed.Error != nil {
		return 0, 0, completed.Error
	}

	started := db.Model(&model.Meeting{}).
		Where("status = ? AND meeting_date = ? AND start_time <= ? AND end_time > ?", model.MeetingScheduled, day, now, now).
		Update("status", model.MeetingOngoing)
	if started.Error != nil {
		return 0, completed.RowsAffected, started.Error
	}
	return started.RowsAffected, completed.RowsAffected, nil
}
