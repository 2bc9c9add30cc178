package service

import (
	"context"
	"fmt"
	"room_booking/apperror"
	"room_booking/helper"
	"room_booking/model"
	"room_booking/repository"
	"room_booking/utils"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const qrCodeSize = 256

// MeetingNotifier is told about meeting changes after they are committed.
// Implementations must not fail the caller.
type MeetingNotifier interface {
	MeetingBooked(ctx context.Context, actor uuid.UUID, m *model.Meeting)
	MeetingUpdated(ctx context.Context, actor uuid.UUID, m *model.Meeting)
	MeetingCancelled(ctx context.Context, actor uuid.UUID, m *model.Meeting)
}

type noNotify struct{}

func (noNotify) MeetingBooked(context.Context, uuid.UUID, *model.Meeting)    {}
func (noNotify) MeetingUpdated(context.Context, uuid.UUID, *model.Meeting)   {}
func (noNotify) MeetingCancelled(context.Context, uuid.UUID, *model.Meeting) {}

type MeetingConfig struct {
	Location  *time.Location
	ClientURL string
}

// MeetingService books rooms. Every write that picks a slot runs in one
// transaction holding the room row lock, so two bookings for the same room
// are checked one after the other.
type MeetingService struct {
	store    repository.Store
	notifier MeetingNotifier
	cfg      MeetingConfig
	log      *zap.Logger
	now      func() time.Time
}

func NewMeetingService(store repository.Store, notifier MeetingNotifier, cfg MeetingConfig, log *zap.Logger) *MeetingService {
	if notifier == nil {
		notifier = noNotify{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &MeetingService{store: store, notifier: notifier, cfg: cfg, log: log, now: time.Now}
}

// Reserve validates the request and books the slot if no live meeting in
// the room overlaps it.
func (s *MeetingService) Reserve(ctx context.Context, p model.Principal, in model.CreateMeetingInput) (*model.Meeting, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Description) == "" {
		return nil, apperror.Validation("title and description are required")
	}
	if in.RoomID == uuid.Nil {
		return nil, apperror.Validation("roomId is required")
	}
	slot, err := helper.NormalizeSlot(helper.SlotRequest{
		Date:  in.MeetingDate,
		Start: in.StartTime,
		End:   in.EndTime,
	}, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	meeting := &model.Meeting{
		RoomID:      in.RoomID,
		OrganizerID: p.UserID,
		Title:       title,
		Description: in.Description,
		MeetingDate: slot.Date,
		StartTime:   slot.Start,
		EndTime:     slot.End,
		IsPrivate:   in.IsPrivate,
		Status:      model.MeetingScheduled,
		Attendees:   attendeeRows(withoutID(model.UniqueIDs(in.Attendees), p.UserID)),
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := claimSlot(ctx, tx, in.RoomID, slot, nil); err != nil {
			return err
		}
		if err := ensureUsers(ctx, tx, meeting.AttendeeIDs()); err != nil {
			return err
		}
		if err := tx.Meetings().Create(ctx, meeting); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("meeting booked",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("room_id", meeting.RoomID.String()),
		zap.String("date", slot.Date.String()),
		zap.String("start", slot.Start.String()),
		zap.String("end", slot.End.String()),
	)
	booked := s.reload(ctx, meeting)
	s.notifier.MeetingBooked(ctx, p.UserID, booked)
	return booked, nil
}

// claimSlot locks the room row and checks the slot against the room's live
// meetings. It must run inside a transaction.
func claimSlot(ctx context.Context, tx repository.Store, roomID uuid.UUID, slot model.Slot, excludeID *uuid.UUID) error {
	room, err := tx.Rooms().LockByID(ctx, roomID)
	if err != nil {
		return apperror.Internal(err)
	}
	if room == nil {
		return apperror.ErrRoomNotFound
	}
	if !room.IsAvailable {
		return apperror.ErrRoomUnavailable
	}
	count, err := tx.Meetings().CountOverlapping(ctx, roomID, slot, excludeID)
	if err != nil {
		return apperror.Internal(err)
	}
	if count > 0 {
		return apperror.ErrRoomAlreadyBooked
	}
	return nil
}

func ensureUsers(ctx context.Context, store repository.Store, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	users, err := store.Users().FindByIDs(ctx, ids)
	if err != nil {
		return apperror.Internal(err)
	}
	found := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		found = append(found, u.ID)
	}
	if absent := missing(ids, found); len(absent) > 0 {
		return apperror.ErrAttendeeNotFound.WithMessage("Attendee %s not found", absent[0])
	}
	return nil
}

func attendeeRows(ids []uuid.UUID) []model.MeetingAttendee {
	rows := make([]model.MeetingAttendee, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, model.MeetingAttendee{UserID: id})
	}
	return rows
}

func withoutID(ids []uuid.UUID, drop uuid.UUID) []uuid.UUID {
	out := ids[:0:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// reload fetches the committed meeting with its associations, falling back
// to the in-memory copy.
func (s *MeetingService) reload(ctx context.Context, m *model.Meeting) *model.Meeting {
	fresh, err := s.store.Meetings().FindByID(ctx, m.ID)
	if err != nil || fresh == nil {
		if err != nil {
			s.log.Warn("failed to reload meeting", zap.String("meeting_id", m.ID.String()), zap.Error(err))
		}
		return m
	}
	return fresh
}

func (s *MeetingService) find(ctx context.Context, store repository.Store, id uuid.UUID) (*model.Meeting, error) {
	m, err := store.Meetings().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if m == nil {
		return nil, apperror.ErrMeetingNotFound
	}
	return m, nil
}

func (s *MeetingService) findOwned(ctx context.Context, store repository.Store, p model.Principal, id uuid.UUID) (*model.Meeting, error) {
	m, err := s.find(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if !p.CanActOn(m.OrganizerID) {
		return nil, apperror.ErrNotMeetingOrganizer
	}
	return m, nil
}

// lockOwned is findOwned under a row lock; tx must be a transaction. The
// returned meeting carries no associations.
func (s *MeetingService) lockOwned(ctx context.Context, tx repository.Store, p model.Principal, id uuid.UUID) (*model.Meeting, error) {
	m, err := tx.Meetings().LockByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if m == nil {
		return nil, apperror.ErrMeetingNotFound
	}
	if !p.CanActOn(m.OrganizerID) {
		return nil, apperror.ErrNotMeetingOrganizer
	}
	return m, nil
}

// Update applies a partial change. Moving the meeting to another room or
// time is checked for overlaps the same way a new booking is, ignoring the
// meeting itself.
func (s *MeetingService) Update(ctx context.Context, p model.Principal, id uuid.UUID, in model.UpdateMeetingInput) (*model.Meeting, error) {
	var updated model.Meeting
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		current, err := s.lockOwned(ctx, tx, p, id)
		if err != nil {
			return err
		}
		switch current.Status {
		case model.MeetingCancelled:
			return apperror.ErrMeetingCancelled
		case model.MeetingCompleted:
			return apperror.ErrMeetingCompleted
		}

		slot := current.Slot()
		if in.TouchesSlot() {
			req := helper.SlotRequest{
				Start:        current.StartTime.String(),
				End:          current.EndTime.String(),
				FallbackDate: current.MeetingDate.String(),
			}
			if in.MeetingDate != nil {
				req.Date = *in.MeetingDate
			}
			if in.StartTime != nil {
				req.Start = *in.StartTime
			}
			if in.EndTime != nil {
				req.End = *in.EndTime
			}
			if slot, err = helper.NormalizeSlot(req, s.cfg.Location); err != nil {
				return err
			}
			roomID := current.RoomID
			if in.RoomID != nil {
				roomID = *in.RoomID
			}
			if err := claimSlot(ctx, tx, roomID, slot, &current.ID); err != nil {
				return err
			}
		}

		updated = in.Apply(*current, slot)
		if strings.TrimSpace(updated.Title) == "" || strings.TrimSpace(updated.Description) == "" {
			return apperror.Validation("title and description are required")
		}
		if err := tx.Meetings().Update(ctx, &updated); err != nil {
			return apperror.Internal(err)
		}

		if in.Attendees != nil {
			attendees := withoutID(model.UniqueIDs(*in.Attendees), updated.OrganizerID)
			if err := ensureUsers(ctx, tx, attendees); err != nil {
				return err
			}
			if err := tx.Meetings().ReplaceAttendees(ctx, updated.ID, attendees); err != nil {
				return apperror.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := s.reload(ctx, &updated)
	s.notifier.MeetingUpdated(ctx, p.UserID, result)
	return result, nil
}

// Cancel marks the meeting cancelled and keeps the row. The slot becomes
// free for new bookings. Cancelling twice is a no-op.
func (s *MeetingService) Cancel(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Meeting, error) {
	var (
		m       *model.Meeting
		changed bool
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		if m, err = s.lockOwned(ctx, tx, p, id); err != nil {
			return err
		}
		if m.Status == model.MeetingCancelled {
			return nil
		}
		if err := tx.Meetings().SetStatus(ctx, id, model.MeetingCancelled); err != nil {
			return apperror.Internal(err)
		}
		m.Status = model.MeetingCancelled
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := s.reload(ctx, m)
	if changed {
		s.log.Info("meeting cancelled", zap.String("meeting_id", id.String()), zap.String("by", p.UserID.String()))
		s.notifier.MeetingCancelled(ctx, p.UserID, result)
	}
	return result, nil
}

func (s *MeetingService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, s.store, p, id); err != nil {
		return err
	}
	if err := s.store.Meetings().SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Get returns the meeting if p may see it. Private meetings are reported as
// missing to anyone outside them.
func (s *MeetingService) Get(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Meeting, error) {
	m, err := s.find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if m.IsPrivate && !p.IsAdmin && !containsID(m.Participants(), p.UserID) {
		return nil, apperror.ErrMeetingNotFound
	}
	return m, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func (s *MeetingService) List(ctx context.Context, p model.Principal, filter model.FilterMeeting) (*model.ResponseCustom[model.Meeting], error) {
	var (
		f   repository.MeetingFilter
		err error
	)
	if f.RoomID, err = parseOptionalID(filter.RoomID, "roomId"); err != nil {
		return nil, err
	}
	if f.OrganizerID, err = parseOptionalID(filter.OrganizerID, "organizerId"); err != nil {
		return nil, err
	}
	if filter.Date != "" {
		day, err := utils.ParseDate(filter.Date)
		if err != nil {
			return nil, apperror.Validation("invalid date %q", filter.Date)
		}
		f.Date = &day
	}
	if filter.Status != "" {
		status := model.MeetingStatus(filter.Status)
		f.Status = &status
	}
	if filter.Mine {
		f.ParticipantID = &p.UserID
	}
	if !p.IsAdmin {
		f.VisibleTo = &p.UserID
	}

	page := filter.Pagination.Normalize()
	meetings, total, err := s.store.Meetings().List(ctx, f, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	result := model.NewPage(meetings, total, page)
	return &result, nil
}

// Today lists the meetings on the current date in the configured zone.
func (s *MeetingService) Today(ctx context.Context, p model.Principal, page model.Pagination) (*model.ResponseCustom[model.Meeting], error) {
	today := utils.DateOf(s.now().In(s.cfg.Location))
	return s.List(ctx, p, model.FilterMeeting{Pagination: page, Date: today.String()})
}

// QRCode renders a PNG pointing at the meeting's check-in page.
func (s *MeetingService) QRCode(ctx context.Context, p model.Principal, id uuid.UUID) ([]byte, error) {
	m, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	png, err := utils.QRCodePNG(fmt.Sprintf("%s/meetings/%s", strings.TrimRight(s.cfg.ClientURL, "/"), m.ID), qrCodeSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return png, nil
}
