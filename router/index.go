package router

import (
	"room_booking/handler"
	"room_booking/middleware"
	"room_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, tokens middleware.AccessTokenParser, principals middleware.PrincipalResolver) {
	protected := middleware.Protected(tokens, principals)
	admin := middleware.AdminOnly()

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/verify-otp", validate.VerifyOTP(), h.VerifyOTP)
	auth.Post("/resend-otp", validate.Email(), h.ResendOTP)
	auth.Post("/refresh-token", h.RefreshToken)
	auth.Post("/logout", protected, h.Logout)
	auth.Get("/check-auth", protected, h.CheckAuth)
	auth.Post("/forgot-password", validate.Email(), h.ForgotPassword)
	auth.Post("/reset-password/:token", validate.ResetPassword(), h.ResetPassword)

	users := v1.Group("/users")
	users.Post("/register", validate.Register(), h.Register)
	users.Get("/", protected, admin, validate.FilterUser(), h.GetUsers)
	users.Get("/me", protected, h.Me)
	users.Put("/me", protected, validate.UpdateProfile(), h.UpdateMe)
	users.Post("/change-password", protected, validate.ChangePassword(), h.ChangePassword)
	users.Patch("/block", protected, admin, validate.BlockStatus(), h.BlockUser)
	users.Get("/:userId", protected, validate.GetById("userId"), h.GetUserById)
	users.Put("/:userId", protected, validate.GetById("userId"), validate.UpdateProfile(), h.UpdateUser)
	users.Patch("/:userId/avatar", protected, validate.GetById("userId"), h.ChangeAvatar)
	users.Put("/:userId/committees", protected, admin, validate.GetById("userId"), validate.SetMemberships(), h.SetUserCommittees)
	users.Delete("/:userId", protected, validate.GetById("userId"), h.DeleteUser)
	users.Delete("/:userId/permanent", protected, admin, validate.GetById("userId"), h.PermanentDeleteUser)

	rooms := v1.Group("/rooms")
	rooms.Post("/login", validate.RoomLogin(), h.RoomLogin)
	rooms.Get("/", protected, validate.FilterRoom(), h.GetRooms)
	rooms.Post("/", protected, admin, validate.CreateRoom(), h.CreateRoom)
	rooms.Patch("/sanitation", protected, admin, validate.Sanitation(), h.ChangeSanitation)
	rooms.Patch("/availability", protected, admin, validate.Availability(), h.ChangeAvailability)
	rooms.Delete("/gallery/:imageId", protected, admin, validate.GetById("imageId"), h.DeleteGalleryImage)
	rooms.Get("/:roomId", protected, validate.GetById("roomId"), h.GetRoomById)
	rooms.Put("/:roomId", protected, admin, validate.GetById("roomId"), validate.EditRoom(), h.EditRoom)
	rooms.Patch("/:roomId/image", protected, admin, validate.GetById("roomId"), h.ChangeRoomImage)
	rooms.Post("/:roomId/gallery", protected, admin, validate.GetById("roomId"), h.AddGalleryImage)
	rooms.Get("/:roomId/meetings", protected, validate.GetById("roomId"), validate.FilterMeeting(), h.GetRoomMeetings)
	rooms.Get("/:roomId/amenities", protected, validate.GetById("roomId"), validate.ActiveFilter(), h.GetRoomAmenities)
	rooms.Delete("/:roomId", protected, admin, validate.GetById("roomId"), h.DeleteRoom)

	amenities := v1.Group("/amenities", protected)
	amenities.Get("/", validate.ActiveFilter(), h.GetAmenities)
	amenities.Post("/", admin, validate.CreateAmenity(), h.CreateAmenity)
	amenities.Put("/:amenityId", admin, validate.GetById("amenityId"), validate.EditAmenity(), h.EditAmenity)
	amenities.Patch("/:amenityId/quantity", admin, validate.GetById("amenityId"), validate.AmenityQuantity(), h.SetAmenityQuantity)
	amenities.Delete("/:amenityId", admin, validate.GetById("amenityId"), h.DeleteAmenity)

	roomAmenities := v1.Group("/room-amenities", protected)
	roomAmenities.Get("/", validate.ActiveFilter(), h.GetRoomAmenityQuantities)
	roomAmenities.Post("/", admin, validate.CreateRoomAmenity(), h.AssignRoomAmenity)
	roomAmenities.Put("/:quantityId", admin, validate.GetById("quantityId"), validate.EditRoomAmenity(), h.EditRoomAmenity)
	roomAmenities.Delete("/:quantityId", admin, validate.GetById("quantityId"), h.RemoveRoomAmenity)

	locations := v1.Group("/locations", protected)
	locations.Get("/", validate.ActiveFilter(), h.GetLocations)
	locations.Get("/active", h.GetActiveLocations)
	locations.Post("/", admin, validate.Location(), h.CreateLocation)
	locations.Put("/:locationId", admin, validate.GetById("locationId"), validate.Location(), h.EditLocation)
	locations.Patch("/:locationId/status", admin, validate.GetById("locationId"), validate.LocationStatus(), h.ChangeLocationStatus)
	locations.Delete("/:locationId", admin, validate.GetById("locationId"), h.DeleteLocation)

	meetings := v1.Group("/meetings", protected)
	meetings.Get("/", validate.FilterMeeting(), h.GetMeetings)
	meetings.Post("/", validate.CreateMeeting(), h.CreateMeeting)
	meetings.Get("/mine", validate.FilterMeeting(), h.GetMyMeetings)
	meetings.Get("/today", validate.Pagination(), h.GetTodayMeetings)
	meetings.Get("/organizer/:userId", validate.GetById("userId"), validate.FilterMeeting(), h.GetOrganizerMeetings)
	meetings.Get("/:meetingId", validate.GetById("meetingId"), h.GetMeetingById)
	meetings.Get("/:meetingId/qr", validate.GetById("meetingId"), h.GetMeetingQR)
	meetings.Put("/:meetingId", validate.GetById("meetingId"), validate.UpdateMeeting(), h.UpdateMeeting)
	meetings.Patch("/:meetingId/cancel", validate.GetById("meetingId"), h.CancelMeeting)
	meetings.Delete("/:meetingId", validate.GetById("meetingId"), h.DeleteMeeting)

	committees := v1.Group("/committees", protected)
	committees.Get("/", h.GetCommittees)
	committees.Get("/mine", h.GetMyCommittees)
	committees.Post("/", admin, validate.CreateCommittee(), h.CreateCommittee)
	committees.Get("/:committeeId", validate.GetById("committeeId"), h.GetCommitteeById)
	committees.Put("/:committeeId", admin, validate.GetById("committeeId"), validate.UpdateCommittee(), h.UpdateCommittee)
	committees.Delete("/:committeeId", admin, validate.GetById("committeeId"), h.DeleteCommittee)
	committees.Get("/:committeeId/members", validate.GetById("committeeId"), h.GetCommitteeMembers)
	committees.Post("/:committeeId/members", admin, validate.GetById("committeeId"), validate.AddMember(), h.AddCommitteeMember)
	committees.Patch("/:committeeId/members/:userId", admin, validate.GetById("committeeId"), validate.ParamID("userId"), validate.UpdateMemberRole(), h.UpdateCommitteeMemberRole)
	committees.Delete("/:committeeId/members/:userId", admin, validate.GetById("committeeId"), validate.ParamID("userId"), h.RemoveCommitteeMember)

	notifications := v1.Group("/notifications", protected)
	notifications.Get("/", validate.Pagination(), h.GetNotifications)
	notifications.Get("/unread-count", h.GetUnreadCount)
	notifications.Patch("/read-all", h.MarkAllNotificationsRead)
	notifications.Patch("/:notificationId/read", validate.GetById("notificationId"), h.MarkNotificationRead)
	notifications.Delete("/:notificationId", validate.GetById("notificationId"), h.DeleteNotification)

	ws := app.Group("/ws")
	ws.Get("/notifications", upgradeRequired, protected, websocket.New(h.NotificationSocket))
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
