package validate

import (
	"room_booking/model"

	"github.com/gofiber/fiber/v2"
)

// CreateRoom accepts JSON or multipart form, the image file itself is read
// by the handler.
func CreateRoom() fiber.Handler   { return body[model.CreateRoomInput]("inputCreateRoom") }
func EditRoom() fiber.Handler     { return body[model.EditRoomInput]("inputEditRoom") }
func Sanitation() fiber.Handler   { return body[model.SanitationInput]("inputSanitation") }
func Availability() fiber.Handler { return body[model.AvailabilityInput]("inputAvailability") }
func RoomLogin() fiber.Handler    { return body[model.RoomLoginInput]("inputRoomLogin") }
func FilterRoom() fiber.Handler   { return query[model.FilterRoom]("inputFilterRoom") }

func CreateAmenity() fiber.Handler   { return body[model.CreateAmenityInput]("inputCreateAmenity") }
func EditAmenity() fiber.Handler     { return body[model.EditAmenityInput]("inputEditAmenity") }
func AmenityQuantity() fiber.Handler { return body[model.AmenityQuantityInput]("inputAmenityQuantity") }

func CreateRoomAmenity() fiber.Handler {
	return body[model.CreateAmenityQuantityInput]("inputCreateRoomAmenity")
}

func EditRoomAmenity() fiber.Handler {
	return body[model.EditAmenityQuantityInput]("inputEditRoomAmenity")
}

func Location() fiber.Handler       { return body[model.LocationInput]("inputLocation") }
func LocationStatus() fiber.Handler { return body[model.LocationStatusInput]("inputLocationStatus") }
