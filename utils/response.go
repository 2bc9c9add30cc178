package utils

import (
	"errors"
	"room_booking/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type successBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

type failureBody struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func SuccessResponse(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(successBody{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// ErrorResponse writes err as a failure envelope. Causes of internal errors
// are logged and never sent to the client.
func ErrorResponse(c *fiber.Ctx, err error) error {
	ae := apperror.From(err)
	status := ae.Kind.StatusCode()
	if ae.Kind == apperror.KindInternal {
		zap.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("code", ae.Code),
			zap.Error(ae.Err),
		)
	}
	return c.Status(status).JSON(failureBody{
		Success:    false,
		StatusCode: status,
		Message:    ae.Message,
		Code:       ae.Code,
	})
}

// ErrorHandler is installed as the fiber app error handler so errors
// returned from handlers and fiber itself share the envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ErrorResponse(c, fiberError(fe))
	}
	return ErrorResponse(c, err)
}

func fiberError(fe *fiber.Error) *apperror.Error {
	switch fe.Code {
	case fiber.StatusNotFound:
		return apperror.New(apperror.KindNotFound, "RouteNotFound", fe.Message)
	case fiber.StatusUnauthorized:
		return apperror.New(apperror.KindUnauthorized, "Unauthorized", fe.Message)
	case fiber.StatusForbidden:
		return apperror.New(apperror.KindForbidden, "Forbidden", fe.Message)
	case fiber.StatusConflict:
		return apperror.New(apperror.KindConflict, "Conflict", fe.Message)
	case fiber.StatusTooManyRequests:
		return apperror.New(apperror.KindTooManyRequests, "TooManyRequests", fe.Message)
	}
	if fe.Code >= 400 && fe.Code < 500 {
		return apperror.Validation("%s", fe.Message)
	}
	return apperror.Internal(fe)
}
