package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetAmenities(c *fiber.Ctx) error {
	list, err := h.Amenities.List(c.UserContext(), activeOnly(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, list)
}

func (h *Handler) CreateAmenity(c *fiber.Ctx) error {
	input := c.Locals("inputCreateAmenity").(model.CreateAmenityInput)
	amenity, err := h.Amenities.Create(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, amenity)
}

func (h *Handler) EditAmenity(c *fiber.Ctx) error {
	input := c.Locals("inputEditAmenity").(model.EditAmenityInput)
	amenity, err := h.Amenities.Update(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, amenity)
}

func (h *Handler) SetAmenityQuantity(c *fiber.Ctx) error {
	input := c.Locals("inputAmenityQuantity").(model.AmenityQuantityInput)
	amenity, err := h.Amenities.SetQuantity(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, amenity)
}

func (h *Handler) DeleteAmenity(c *fiber.Ctx) error {
	if err := h.Amenities.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

func (h *Handler) GetRoomAmenityQuantities(c *fiber.Ctx) error {
	rows, err := h.Amenities.ListRoomQuantities(c.UserContext(), nil, activeOnly(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, rows)
}

func (h *Handler) AssignRoomAmenity(c *fiber.Ctx) error {
	input := c.Locals("inputCreateRoomAmenity").(model.CreateAmenityQuantityInput)
	row, err := h.Amenities.AssignToRoom(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, row)
}

func (h *Handler) EditRoomAmenity(c *fiber.Ctx) error {
	input := c.Locals("inputEditRoomAmenity").(model.EditAmenityQuantityInput)
	row, err := h.Amenities.UpdateRoomQuantity(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, row)
}

func (h *Handler) RemoveRoomAmenity(c *fiber.Ctx) error {
	if err := h.Amenities.RemoveFromRoom(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}
