package handler

import (
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) setSessionCookies(c *fiber.Ctx, tokens model.TokenData) {
	c.Cookie(&fiber.Cookie{
		Name:     constants.ACCESS_TOKEN_COOKIE,
		Value:    tokens.AccessToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   h.CookieSecure,
		Path:     "/",
		Expires:  time.Now().Add(h.AccessTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     constants.REFRESH_TOKEN_COOKIE,
		Value:    tokens.RefreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   h.CookieSecure,
		Path:     "/",
		Expires:  time.Now().Add(h.RefreshTTL),
	})
}

func (h *Handler) clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{constants.ACCESS_TOKEN_COOKIE, constants.REFRESH_TOKEN_COOKIE} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			SameSite: "None",
			Secure:   h.CookieSecure,
			Path:     "/",
			Expires:  time.Unix(0, 0),
		})
	}
}

// Login checks the password and mails a one time code. The session is only
// created by VerifyOTP.
func (h *Handler) Login(c *fiber.Ctx) error {
	input := c.Locals("inputLogin").(model.LoginInput)
	issued, err := h.Auth.InitiateLogin(c.UserContext(), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.OTP_SENT, issued)
}

func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	input := c.Locals("inputVerifyOTP").(model.VerifyOTPInput)
	result, err := h.Auth.VerifyOTP(c.UserContext(), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	h.setSessionCookies(c, result.Tokens)
	return utils.SuccessResponse(c, fiber.StatusOK, constants.LOGIN_SUCCESS, result)
}

func (h *Handler) ResendOTP(c *fiber.Ctx) error {
	input := c.Locals("inputEmail").(model.EmailInput)
	issued, err := h.Auth.ResendOTP(c.UserContext(), input.Email)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.OTP_SENT, issued)
}

// RefreshToken reads the refresh token from its cookie, falling back to the
// request body.
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	token := c.Cookies(constants.REFRESH_TOKEN_COOKIE)
	if token == "" {
		var input model.RefreshTokenInput
		_ = c.BodyParser(&input)
		token = input.RefreshToken
	}
	tokens, err := h.Auth.Refresh(c.UserContext(), token)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	h.setSessionCookies(c, *tokens)
	return utils.SuccessResponse(c, fiber.StatusOK, constants.TOKEN_REFRESHED, tokens)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c.UserContext(), principal(c)); err != nil {
		return utils.ErrorResponse(c, err)
	}
	h.clearSessionCookies(c)
	return utils.SuccessResponse(c, fiber.StatusOK, constants.LOGOUT_SUCCESS, nil)
}

func (h *Handler) CheckAuth(c *fiber.Ctx) error {
	details, err := h.Users.Profile(c.UserContext(), principal(c))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.FETCH_SUCCESS, details)
}

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	input := c.Locals("inputEmail").(model.EmailInput)
	if err := h.Auth.ForgotPassword(c.UserContext(), input.Email); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.RESET_LINK_SENT, nil)
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	input := c.Locals("inputResetPassword").(model.ResetPasswordInput)
	if err := h.Auth.ResetPassword(c.UserContext(), c.Params("token"), input); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, constants.PASSWORD_RESET, nil)
}
