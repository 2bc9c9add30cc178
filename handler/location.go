package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetLocations(c *fiber.Ctx) error {
	list, err := h.Locations.List(c.UserContext(), activeOnly(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, list)
}

func (h *Handler) GetActiveLocations(c *fiber.Ctx) error {
	list, err := h.Locations.List(c.UserContext(), true)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, list)
}

func (h *Handler) CreateLocation(c *fiber.Ctx) error {
	input := c.Locals("inputLocation").(model.LocationInput)
	location, err := h.Locations.Create(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, location)
}

func (h *Handler) EditLocation(c *fiber.Ctx) error {
	input := c.Locals("inputLocation").(model.LocationInput)
	location, err := h.Locations.Update(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, location)
}

func (h *Handler) ChangeLocationStatus(c *fiber.Ctx) error {
	input := c.Locals("inputLocationStatus").(model.LocationStatusInput)
	location, err := h.Locations.SetStatus(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, location)
}

func (h *Handler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.Locations.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}
