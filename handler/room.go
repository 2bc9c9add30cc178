package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetRooms(c *fiber.Ctx) error {
	filter := c.Locals("inputFilterRoom").(model.FilterRoom)
	page, err := h.Rooms.List(c.UserContext(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetRoomById(c *fiber.Ctx) error {
	room, err := h.Rooms.Get(c.UserContext(), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, room)
}

func (h *Handler) CreateRoom(c *fiber.Ctx) error {
	input := c.Locals("inputCreateRoom").(model.CreateRoomInput)
	image, closeFile, err := openUpload(c, "roomImage")
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	defer closeFile()

	room, err := h.Rooms.Create(c.UserContext(), principal(c), input, image)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, room)
}

func (h *Handler) EditRoom(c *fiber.Ctx) error {
	input := c.Locals("inputEditRoom").(model.EditRoomInput)
	room, err := h.Rooms.Update(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, room)
}

func (h *Handler) ChangeRoomImage(c *fiber.Ctx) error {
	image, closeFile, err := openUpload(c, "roomImage")
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	defer closeFile()

	room, err := h.Rooms.ChangeImage(c.UserContext(), principal(c), inputId(c), image)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, room)
}

func (h *Handler) DeleteRoom(c *fiber.Ctx) error {
	if err := h.Rooms.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

func (h *Handler) ChangeSanitation(c *fiber.Ctx) error {
	input := c.Locals("inputSanitation").(model.SanitationInput)
	room, err := h.Rooms.SetSanitation(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, room)
}

func (h *Handler) ChangeAvailability(c *fiber.Ctx) error {
	input := c.Locals("inputAvailability").(model.AvailabilityInput)
	room, err := h.Rooms.SetAvailability(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, room)
}

// RoomLogin authenticates the kiosk mounted at a room's door.
func (h *Handler) RoomLogin(c *fiber.Ctx) error {
	input := c.Locals("inputRoomLogin").(model.RoomLoginInput)
	room, err := h.Rooms.Login(c.UserContext(), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.ROOM_LOGIN_SUCCESS, room)
}

func (h *Handler) AddGalleryImage(c *fiber.Ctx) error {
	image, closeFile, err := openUpload(c, "image")
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	defer closeFile()

	entry, err := h.Rooms.AddGalleryImage(c.UserContext(), principal(c), inputId(c), image)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, entry)
}

func (h *Handler) DeleteGalleryImage(c *fiber.Ctx) error {
	if err := h.Rooms.DeleteGalleryImage(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

func (h *Handler) GetRoomMeetings(c *fiber.Ctx) error {
	filter := c.Locals("inputFilterMeeting").(model.FilterMeeting)
	filter.RoomID = inputId(c).String()
	page, err := h.Meetings.List(c.UserContext(), principal(c), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetRoomAmenities(c *fiber.Ctx) error {
	id := inputId(c)
	rows, err := h.Amenities.ListRoomQuantities(c.UserContext(), &id, activeOnly(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, rows)
}
