package handler

import (
	"room_booking/constants"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	page, err := h.Notifications.ListMine(c.UserContext(), principal(c), pagination(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.Notifications.UnreadCount(c.UserContext(), principal(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, count)
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	n, err := h.Notifications.MarkRead(c.UserContext(), principal(c), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, n)
}

func (h *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	updated, err := h.Notifications.MarkAllRead(c.UserContext(), principal(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.NOTIFICATIONS_MARKED_READ, fiber.Map{"updated": updated})
}

func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	if err := h.Notifications.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}
