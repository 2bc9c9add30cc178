package model

type Location struct {
	DTO
	LocationName string `gorm:"size:255;not null;uniqueIndex:idx_locations_name,where:deleted_at IS NULL" json:"locationName"`
	Status       bool   `gorm:"not null;default:true" json:"status"`
}

type LocationInput struct {
	LocationName string `json:"locationName" validate:"required,max=255"`
}

type LocationStatusInput struct {
	Status *bool `json:"status" validate:"required"`
}
