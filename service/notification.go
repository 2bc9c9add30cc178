package service

import (
	"context"
	"encoding/json"
	"fmt"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/mailer"
	"room_booking/model"
	"room_booking/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService stores in-app notifications, pushes them to live
// sessions and mails the affected users. Delivery problems are logged and
// never reported to the caller of the action that caused them.
type NotificationService struct {
	store repository.Store
	mail  mailer.Dispatcher
	bus   Publisher
	log   *zap.Logger
}

func NewNotificationService(store repository.Store, mail mailer.Dispatcher, bus Publisher, log *zap.Logger) *NotificationService {
	return &NotificationService{store: store, mail: mail, bus: bus, log: log}
}

// Notify creates one notification per user and publishes each of them.
func (s *NotificationService) Notify(ctx context.Context, userIDs []uuid.UUID, kind, message string, meetingID *uuid.UUID) error {
	userIDs = model.UniqueIDs(userIDs)
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.Notification{
			Type:      kind,
			Message:   message,
			UserID:    id,
			MeetingID: meetingID,
		})
	}
	if err := s.store.Notifications().CreateMany(ctx, rows); err != nil {
		return err
	}
	if s.bus == nil {
		return nil
	}
	for _, n := range rows {
		payload, err := json.Marshal(n)
		if err != nil {
			s.log.Warn("failed to encode notification", zap.Error(err))
			continue
		}
		if err := s.bus.Publish(ctx, n.UserID, payload); err != nil {
			s.log.Warn("failed to publish notification", zap.String("user_id", n.UserID.String()), zap.Error(err))
		}
	}
	return nil
}

func (s *NotificationService) MeetingBooked(ctx context.Context, actor uuid.UUID, m *model.Meeting) {
	ctx = context.WithoutCancel(ctx)
	recipients := withoutID(m.AttendeeIDs(), actor)
	message := fmt.Sprintf("A new meeting %q has been scheduled.", m.Title)
	s.notifyMeeting(ctx, recipients, constants.NOTIFICATION_MEETING_BOOKED, message, m)

	room := ""
	if m.Room != nil {
		room = m.Room.Name
	}
	s.mailUsers(ctx, recipients, func(u model.User) mailer.Message {
		return mailer.MeetingBookedMessage(u.Email, m.Title, room, m.MeetingDate.String(), m.StartTime.String(), m.EndTime.String())
	})
}

func (s *NotificationService) MeetingUpdated(ctx context.Context, actor uuid.UUID, m *model.Meeting) {
	ctx = context.WithoutCancel(ctx)
	message := fmt.Sprintf("The meeting %q has been updated.", m.Title)
	s.notifyMeeting(ctx, withoutID(m.Participants(), actor), constants.NOTIFICATION_MEETING_UPDATED, message, m)
}

func (s *NotificationService) MeetingCancelled(ctx context.Context, actor uuid.UUID, m *model.Meeting) {
	ctx = context.WithoutCancel(ctx)
	recipients := withoutID(m.Participants(), actor)
	message := fmt.Sprintf("The meeting %q has been canceled.", m.Title)
	s.notifyMeeting(ctx, recipients, constants.NOTIFICATION_MEETING_CANCELLED, message, m)

	s.mailUsers(ctx, recipients, func(u model.User) mailer.Message {
		return mailer.MeetingCancelledMessage(u.Email, m.Title, m.MeetingDate.String(), m.StartTime.String())
	})
}

func (s *NotificationService) notifyMeeting(ctx context.Context, recipients []uuid.UUID, kind, message string, m *model.Meeting) {
	if err := s.Notify(ctx, recipients, kind, message, &m.ID); err != nil {
		s.log.Error("failed to store meeting notifications",
			zap.String("meeting_id", m.ID.String()),
			zap.String("type", kind),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) mailUsers(ctx context.Context, ids []uuid.UUID, build func(model.User) mailer.Message) {
	if s.mail == nil || len(ids) == 0 {
		return
	}
	users, err := s.store.Users().FindByIDs(ctx, ids)
	if err != nil {
		s.log.Error("failed to load notification recipients", zap.Error(err))
		return
	}
	for _, u := range users {
		if err := s.mail.Send(ctx, build(u)); err != nil {
			s.log.Warn("notification email not sent", zap.String("user_id", u.ID.String()), zap.Error(err))
		}
	}
}

func (s *NotificationService) ListMine(ctx context.Context, p model.Principal, page model.Pagination) (*model.ResponseCustom[model.Notification], error) {
	page = page.Normalize()
	rows, total, err := s.store.Notifications().ListForUser(ctx, p.UserID, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	result := model.NewPage(rows, total, page)
	return &result, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, p model.Principal) (*model.UnreadCount, error) {
	count, err := s.store.Notifications().CountUnread(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &model.UnreadCount{Unread: count}, nil
}

func (s *NotificationService) findOwned(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Notification, error) {
	n, err := s.store.Notifications().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if n == nil || n.UserID != p.UserID {
		return nil, apperror.ErrNotificationNotFound
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Notification, error) {
	n, err := s.findOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err := s.store.Notifications().MarkRead(ctx, id); err != nil {
		return nil, apperror.Internal(err)
	}
	n.IsRead = true
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, p model.Principal) (int64, error) {
	n, err := s.store.Notifications().MarkAllRead(ctx, p.UserID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, p, id); err != nil {
		return err
	}
	if err := s.store.Notifications().Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
