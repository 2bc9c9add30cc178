package validate

import (
	"errors"
	"reflect"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/model"
	"room_booking/utils"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct validates v and reports the first failing field as a validation
// error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return apperror.Validation("%s", err.Error())
	}
	return apperror.Validation("%s", fieldMessage(fields[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "numeric":
		return field + " must contain only digits"
	case "uuid":
		return field + " must be a valid id"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return field + " must be at least " + fe.Param() + " characters"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return field + " must be at most " + fe.Param() + " characters"
		}
		return field + " must be at most " + fe.Param()
	}
	return field + " is invalid"
}

// body parses the request body (JSON or form) into T, validates it and
// stores it in locals under key.
func body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, apperror.Validation("Invalid request body"))
		}
		if err := Struct(&input); err != nil {
			return utils.ErrorResponse(c, err)
		}
		c.Locals(key, input)
		return c.Next()
	}
}

func query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, apperror.Validation("Invalid query parameters"))
		}
		if err := Struct(&input); err != nil {
			return utils.ErrorResponse(c, err)
		}
		c.Locals(key, input)
		return c.Next()
	}
}

// GetById parses the route parameter key as a UUID into locals "inputId".
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, apperror.Validation(constants.INVALID_ID))
		}
		c.Locals("inputId", id)
		return c.Next()
	}
}

// ParamID parses the route parameter key as a UUID into locals under the
// same name, for routes with more than one id.
func ParamID(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, apperror.Validation(constants.INVALID_ID))
		}
		c.Locals(key, id)
		return c.Next()
	}
}

func Pagination() fiber.Handler   { return query[model.Pagination]("inputPagination") }
func ActiveFilter() fiber.Handler { return query[model.ActiveFilter]("inputActiveFilter") }
