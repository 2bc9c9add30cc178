package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetCommittees(c *fiber.Ctx) error {
	list, err := h.Committees.List(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, list)
}

func (h *Handler) GetMyCommittees(c *fiber.Ctx) error {
	list, err := h.Committees.MyCommittees(c.UserContext(), principal(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, list)
}

func (h *Handler) GetCommitteeById(c *fiber.Ctx) error {
	details, err := h.Committees.Details(c.UserContext(), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, details)
}

func (h *Handler) CreateCommittee(c *fiber.Ctx) error {
	input := c.Locals("inputCreateCommittee").(model.CreateCommitteeInput)
	committee, err := h.Committees.Create(c.UserContext(), principal(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, committee)
}

func (h *Handler) UpdateCommittee(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateCommittee").(model.UpdateCommitteeInput)
	committee, err := h.Committees.Update(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, committee)
}

func (h *Handler) DeleteCommittee(c *fiber.Ctx) error {
	if err := h.Committees.Delete(c.UserContext(), principal(c), inputId(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}

func (h *Handler) GetCommitteeMembers(c *fiber.Ctx) error {
	members, err := h.Committees.Members(c.UserContext(), inputId(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, members)
}

func (h *Handler) AddCommitteeMember(c *fiber.Ctx) error {
	input := c.Locals("inputAddMember").(model.AddMemberInput)
	member, err := h.Committees.AddMember(c.UserContext(), principal(c), inputId(c), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, constants.CREATE_SUCCESS, member)
}

func (h *Handler) UpdateCommitteeMemberRole(c *fiber.Ctx) error {
	input := c.Locals("inputUpdateMemberRole").(model.UpdateMemberRoleInput)
	member, err := h.Committees.UpdateMemberRole(c.UserContext(), principal(c), inputId(c), paramId(c, "userId"), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.UPDATE_SUCCESS, member)
}

func (h *Handler) RemoveCommitteeMember(c *fiber.Ctx) error {
	if err := h.Committees.RemoveMember(c.UserContext(), principal(c), inputId(c), paramId(c, "userId")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.DELETE_SUCCESS, nil)
}
