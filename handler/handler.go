package handler

import (
	"context"
	"room_booking/apperror"
	"room_booking/middleware"
	"room_booking/model"
	"room_booking/service"
	"room_booking/storage"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NotificationSubscriber streams a user's notifications until ctx ends.
type NotificationSubscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) <-chan []byte
}

type Handler struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Rooms         *service.RoomService
	Meetings      *service.MeetingService
	Committees    *service.CommitteeService
	Amenities     *service.AmenityService
	Locations     *service.LocationService
	Notifications *service.NotificationService

	// Subscriber is nil when live notifications are unavailable.
	Subscriber NotificationSubscriber

	CookieSecure bool
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

func principal(c *fiber.Ctx) model.Principal {
	p, _ := middleware.GetPrincipal(c)
	return p
}

func inputId(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("inputId").(uuid.UUID)
	return id
}

func paramId(c *fiber.Ctx, key string) uuid.UUID {
	id, _ := c.Locals(key).(uuid.UUID)
	return id
}

func pagination(c *fiber.Ctx) model.Pagination {
	p, _ := c.Locals("inputPagination").(model.Pagination)
	return p
}

func activeOnly(c *fiber.Ctx) bool {
	f, _ := c.Locals("inputActiveFilter").(model.ActiveFilter)
	return f.ActiveOnly
}

// openUpload returns the multipart file named field, or nil when the
// request carries none. The caller must run the returned close func.
func openUpload(c *fiber.Ctx, field string) (*storage.File, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, apperror.Validation("cannot read uploaded file %s", field)
	}
	return &storage.File{
		Reader:      f,
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
	}, func() { _ = f.Close() }, nil
}
