package middleware

import (
	"context"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const PrincipalKey = "principal"

type AccessTokenParser interface {
	ParseAccessToken(token string) (model.TokenClaim, error)
}

// PrincipalResolver loads the current state of the token's user.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID uuid.UUID) (model.Principal, error)
}

// Protected accepts the access token from the access_token cookie or an
// Authorization bearer header and stores the caller in locals.
func Protected(tokens AccessTokenParser, users PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(constants.ACCESS_TOKEN_COOKIE)

		if token == "" {
			auth := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, apperror.ErrUnauthorized.WithMessage(constants.MISSING_TOKEN))
		}

		claim, err := tokens.ParseAccessToken(token)
		if err != nil {
			return utils.ErrorResponse(c, apperror.ErrUnauthorized.WithMessage(constants.INVALID_TOKEN).Wrap(err))
		}

		principal, err := users.ResolvePrincipal(c.UserContext(), claim.UserID)
		if err != nil {
			return utils.ErrorResponse(c, err)
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// AdminOnly must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return utils.ErrorResponse(c, apperror.ErrUnauthorized)
		}
		if !p.IsAdmin {
			return utils.ErrorResponse(c, apperror.ErrForbidden.WithMessage(constants.NOT_ADMIN))
		}
		return c.Next()
	}
}

func GetPrincipal(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(PrincipalKey).(model.Principal)
	return p, ok
}
