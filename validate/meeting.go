package validate

import (
	"room_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreateMeeting() fiber.Handler { return body[model.CreateMeetingInput]("inputCreateMeeting") }
func UpdateMeeting() fiber.Handler { return body[model.UpdateMeetingInput]("inputUpdateMeeting") }
func FilterMeeting() fiber.Handler { return query[model.FilterMeeting]("inputFilterMeeting") }

func CreateCommittee() fiber.Handler  { return body[model.CreateCommitteeInput]("inputCreateCommittee") }
func UpdateCommittee() fiber.Handler  { return body[model.UpdateCommitteeInput]("inputUpdateCommittee") }
func AddMember() fiber.Handler        { return body[model.AddMemberInput]("inputAddMember") }
func UpdateMemberRole() fiber.Handler { return body[model.UpdateMemberRoleInput]("inputUpdateMemberRole") }
func SetMemberships() fiber.Handler   { return body[model.SetMembershipsInput]("inputSetMemberships") }
