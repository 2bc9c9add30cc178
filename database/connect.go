package database

import (
	"fmt"
	"room_booking/config"
	"room_booking/model"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres pool and migrates the schema.
func ConnectDB(cfg config.DatabaseSettings, log *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("connection opened to database", zap.String("host", cfg.Host), zap.String("name", cfg.Name))

	if err := db.AutoMigrate(
		&model.User{},
		&model.UserActivity{},
		&model.Location{},
		&model.Room{},
		&model.RoomGallery{},
		&model.RoomAmenity{},
		&model.RoomAmenityQuantity{},
		&model.Meeting{},
		&model.MeetingAttendee{},
		&model.Committee{},
		&model.CommitteeMember{},
		&model.Notification{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database migrated")
	return db, nil
}
