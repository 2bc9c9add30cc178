package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateMeeting(c *fiber.Ctx) error {
	input := c.Locals("inputCreateMeeting").(model.CreateMeetingInput)
	meeting, err := h.Meetings.Reserve(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.MEETING_BOOKED, meeting)
}

func (h *Handler) UpdateMeeting(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateMeeting").(model.UpdateMeetingInput)
	meeting, err := h.Meetings.Update(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, meeting)
}

func (h *Handler) CancelMeeting(c *fiber.Ctx) error {
	meeting, err := h.Meetings.Cancel(c.UserContext(), principal(c), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.MEETING_CANCELLED, meeting)
}

func (h *Handler) DeleteMeeting(c *fiber.Ctx) error {
	if err := h.Meetings.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

func (h *Handler) GetMeetingById(c *fiber.Ctx) error {
	meeting, err := h.Meetings.Get(c.UserContext(), principal(c), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, meeting)
}

func (h *Handler) GetMeetings(c *fiber.Ctx) error {
	filter := c.Locals("inputFilterMeeting").(model.FilterMeeting)
	page, err := h.Meetings.List(c.UserContext(), principal(c), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetMyMeetings(c *fiber.Ctx) error {
	filter := c.Locals("inputFilterMeeting").(model.FilterMeeting)
	filter.Mine = true
	page, err := h.Meetings.List(c.UserContext(), principal(c), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetOrganizerMeetings(c *fiber.Ctx) error {
	filter := c.Locals("inputFilterMeeting").(model.FilterMeeting)
	filter.OrganizerID = inputId(c).String()
	page, err := h.Meetings.List(c.UserContext(), principal(c), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetTodayMeetings(c *fiber.Ctx) error {
	page, err := h.Meetings.Today(c.UserContext(), principal(c), pagination(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

// GetMeetingQR renders a PNG QR code linking to the meeting page.
func (h *Handler) GetMeetingQR(c *fiber.Ctx) error {
	png, err := h.Meetings.QRCode(c.UserContext(), principal(c), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	c.Type("png")
	return c.Send(png)
}
