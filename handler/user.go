package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	input := c.Locals("inputRegister").(model.RegisterUserInput)
	avatar, closeFile, err := openUpload(c, "avatar")
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	defer closeFile()

	user, err := h.Users.Register(c.UserContext(), input, avatar)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.USER_REGISTERED, user)
}

func (h *Handler) GetUsers(c *fiber.Ctx) error {
	filter := c.Locals("inputFilterUser").(model.FilterUser)
	page, err := h.Users.List(c.UserContext(), principal(c), filter)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, page)
}

func (h *Handler) GetUserById(c *fiber.Ctx) error {
	details, err := h.Users.Get(c.UserContext(), principal(c), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, details)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	details, err := h.Users.Profile(c.UserContext(), principal(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, details)
}

func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	p := principal(c)
	input := c.Locals("inputUpdateProfile").(model.UpdateProfileInput)
	user, err := h.Users.UpdateProfile(c.UserContext(), p, p.UserID, input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, user)
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateProfile").(model.UpdateProfileInput)
	user, err := h.Users.UpdateProfile(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, user)
}

func (h *Handler) ChangePassword(c *fiber.Ctx) error {
	input := c.Locals("inputChangePassword").(model.ChangePasswordInput)
	if err := h.Users.ChangePassword(c.UserContext(), principal(c), input); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.PASSWORD_CHANGED, nil)
}

func (h *Handler) ChangeAvatar(c *fiber.Ctx) error {
	avatar, closeFile, err := openUpload(c, "avatar")
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	defer closeFile()

	user, err := h.Users.ChangeAvatar(c.UserContext(), principal(c), inputId(c), avatar)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, user)
}

func (h *Handler) BlockUser(c *fiber.Ctx) error {
	input := c.Locals("inputBlockStatus").(model.BlockStatusInput)
	user, err := h.Users.SetBlocked(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, user)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	if err := h.Users.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

func (h *Handler) PermanentDeleteUser(c *fiber.Ctx) error {
	if err := h.Users.PermanentDelete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

// SetUserCommittees replaces the user's committee memberships with the
// submitted list.
func (h *Handler) SetUserCommittees(c *fiber.Ctx) error {
	input := c.Locals("inputSetMemberships").(model.SetMembershipsInput)
	diff, err := h.Committees.SetMemberships(c.UserContext(), principal(c), inputId(c), input.CommitteeIDs)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.MEMBERSHIPS_UPDATED, diff)
}
