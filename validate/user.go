package validate

import (
	"room_booking/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler       { return body[model.RegisterUserInput]("inputRegister") }
func Login() fiber.Handler          { return body[model.LoginInput]("inputLogin") }
func VerifyOTP() fiber.Handler      { return body[model.VerifyOTPInput]("inputVerifyOTP") }
func Email() fiber.Handler          { return body[model.EmailInput]("inputEmail") }
func ResetPassword() fiber.Handler  { return body[model.ResetPasswordInput]("inputResetPassword") }
func ChangePassword() fiber.Handler { return body[model.ChangePasswordInput]("inputChangePassword") }
func UpdateProfile() fiber.Handler  { return body[model.UpdateProfileInput]("inputUpdateProfile") }
func BlockStatus() fiber.Handler    { return body[model.BlockStatusInput]("inputBlockStatus") }
func FilterUser() fiber.Handler     { return query[model.FilterUser]("inputFilterUser") }
