package database

import (
	"room_booking/config"
	"room_booking/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB, cfg config.Settings, log *zap.Logger) {
	seedAdmin(db, cfg, log)

	amenities := []model.RoomAmenity{
		{Name: "Projector", Quantity: 1, Status: true},
		{Name: "Whiteboard", Quantity: 1, Status: true},
		{Name: "Video conference", Quantity: 1, Status: true},
		{Name: "Speakerphone", Quantity: 1, Status: true},
	}
	for _, amenity := range amenities {
		if err := db.Where(model.RoomAmenity{Name: amenity.Name}).FirstOrCreate(&amenity).Error; err != nil {
			log.Warn("failed to seed amenity", zap.String("name", amenity.Name), zap.Error(err))
		}
	}

	location := model.Location{LocationName: "Head Office", Status: true}
	if err := db.Where(model.Location{LocationName: location.LocationName}).FirstOrCreate(&location).Error; err != nil {
		log.Warn("failed to seed location", zap.String("name", location.LocationName), zap.Error(err))
	}
}

func seedAdmin(db *gorm.DB, cfg config.Settings, log *zap.Logger) {
	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash admin password", zap.Error(err))
		return
	}

	admin := model.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Fullname: "Administrator",
		IsAdmin:  true,
	}
	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Warn("failed to seed admin", zap.String("email", admin.Email), zap.Error(err))
	}
}
