package model

import (
	"strings"

	"github.com/google/uuid"
)

type SanitationStatus string

const (
	SanitationClean SanitationStatus = "clean"
	SanitationDirty SanitationStatus = "dirty"
)

type Room struct {
	DTO
	Name              string                `gorm:"size:100;not null;uniqueIndex:idx_rooms_name,where:deleted_at IS NULL" json:"name"`
	Slug              string                `gorm:"size:120;not null;uniqueIndex:idx_rooms_slug,where:deleted_at IS NULL" json:"slug"`
	Description       *string               `gorm:"type:text" json:"description"`
	Capacity          int                   `gorm:"not null" json:"capacity"`
	IsAvailable       bool                  `gorm:"not null;default:true" json:"isAvailable"`
	SanitationStatus  SanitationStatus      `gorm:"size:20;not null;default:clean" json:"sanitationStatus"`
	LocationID        *uuid.UUID            `gorm:"type:uuid;index" json:"locationId"`
	Location          *Location             `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"location,omitempty"`
	RoomImagePath     *string               `json:"roomImagePath"`
	RoomImagePublicID *string               `json:"-"`
	Password          *string               `json:"-"`
	Amenities         []RoomAmenityQuantity `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	Gallery           []RoomGallery         `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"gallery,omitempty"`
}

type RoomGallery struct {
	DTO
	RoomID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"roomId"`
	ImagePath string     `gorm:"not null" json:"imagePath"`
	PublicID  string     `json:"-"`
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"createdBy"`
}

type CreateRoomInput struct {
	Name             string           `json:"name" form:"name" validate:"required,max=100"`
	Description      *string          `json:"description" form:"description"`
	Capacity         int              `json:"capacity" form:"capacity" validate:"required,min=1"`
	LocationID       string           `json:"locationId" form:"locationId" validate:"omitempty,uuid"`
	SanitationStatus SanitationStatus `json:"sanitationStatus" form:"sanitationStatus" validate:"omitempty,oneof=clean dirty"`
	Password         *string          `json:"password" form:"password" validate:"omitempty,min=4,max=72"`
}

type EditRoomInput struct {
	Name             *string           `json:"name" validate:"omitempty,min=1,max=100"`
	Description      *string           `json:"description"`
	Capacity         *int              `json:"capacity" validate:"omitempty,min=1"`
	LocationID       *uuid.UUID        `json:"locationId"`
	IsAvailable      *bool             `json:"isAvailable"`
	SanitationStatus *SanitationStatus `json:"sanitationStatus" validate:"omitempty,oneof=clean dirty"`
}

// Apply returns r with the provided fields replaced. Slug is left to the
// caller since it depends on what else exists.
func (in EditRoomInput) Apply(r Room) Room {
	if in.Name != nil {
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		r.Description = in.Description
	}
	if in.Capacity != nil {
		r.Capacity = *in.Capacity
	}
	if in.LocationID != nil {
		id := *in.LocationID
		r.LocationID = &id
		r.Location = nil
	}
	if in.IsAvailable != nil {
		r.IsAvailable = *in.IsAvailable
	}
	if in.SanitationStatus != nil {
		r.SanitationStatus = *in.SanitationStatus
	}
	return r
}

type SanitationInput struct {
	RoomID           uuid.UUID        `json:"roomId" validate:"required"`
	SanitationStatus SanitationStatus `json:"sanitationStatus" validate:"required,oneof=clean dirty"`
}

type AvailabilityInput struct {
	RoomID      uuid.UUID `json:"roomId" validate:"required"`
	IsAvailable *bool     `json:"isAvailable" validate:"required"`
}

type RoomLoginInput struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	Password string    `json:"password" validate:"required"`
}

type FilterRoom struct {
	Pagination
	SearchKey   string `query:"searchKey"`
	LocationID  string `query:"locationId"`
	IsAvailable *bool  `query:"isAvailable"`
}
