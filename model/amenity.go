package model

import (
	"github.com/google/uuid"
)

// RoomAmenity is a catalog entry, e.g. projector or whiteboard.
type RoomAmenity struct {
	DTO
	Name        string     `gorm:"size:100;not null;uniqueIndex:idx_amenities_name,where:deleted_at IS NULL" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Quantity    int        `gorm:"not null;default:1" json:"quantity"`
	Status      bool       `gorm:"not null;default:true" json:"status"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"createdBy"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid" json:"updatedBy"`
	DeletedBy   *uuid.UUID `gorm:"type:uuid" json:"deletedBy,omitempty"`
}

// RoomAmenityQuantity records how many of an amenity a room holds.
type RoomAmenityQuantity struct {
	DTO
	RoomID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"roomId"`
	AmenityID uuid.UUID    `gorm:"type:uuid;not null;index" json:"amenityId"`
	Quantity  int          `gorm:"not null;default:1" json:"quantity"`
	Status    bool         `gorm:"not null;default:true" json:"status"`
	CreatedBy *uuid.UUID   `gorm:"type:uuid" json:"createdBy"`
	UpdatedBy *uuid.UUID   `gorm:"type:uuid" json:"updatedBy"`
	DeletedBy *uuid.UUID   `gorm:"type:uuid" json:"deletedBy,omitempty"`
	Room      *Room        `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Amenity   *RoomAmenity `gorm:"foreignKey:AmenityID;constraint:OnDelete:CASCADE" json:"amenity,omitempty"`
}

type CreateAmenityInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" validate:"omitempty,min=0"`
}

type EditAmenityInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" validate:"omitempty,min=0"`
	Status      *bool   `json:"status"`
}

func (in EditAmenityInput) Apply(a RoomAmenity) RoomAmenity {
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Description != nil {
		a.Description = in.Description
	}
	if in.Quantity != nil {
		a.Quantity = *in.Quantity
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	return a
}

type CreateAmenityQuantityInput struct {
	RoomID    uuid.UUID `json:"roomId" validate:"required"`
	AmenityID uuid.UUID `json:"amenityId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=0"`
}

type EditAmenityQuantityInput struct {
	Quantity *int  `json:"quantity" validate:"omitempty,min=0"`
	Status   *bool `json:"status"`
}

type AmenityQuantityInput struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}
