package main

import (
	"context"
	"os"
	"os/signal"
	"room_booking/cache"
	"room_booking/config"
	"room_booking/database"
	"room_booking/handler"
	"room_booking/helper"
	"room_booking/logger"
	"room_booking/mailer"
	"room_booking/repository"
	"room_booking/router"
	"room_booking/scheduler"
	"room_booking/service"
	"room_booking/storage"
	"room_booking/utils"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	db, err := database.ConnectDB(cfg.DB, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	database.SeedData(db, cfg, log)
	store := repository.NewGormStore(db)

	var (
		limiter    service.RateLimiter
		publisher  service.Publisher
		subscriber handler.NotificationSubscriber
	)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, OTP rate and guess limits and live notifications disabled", zap.Error(err))
	} else {
		bus := cache.NewNotificationBus(rdb)
		limiter = cache.NewOTPLimiter(cache.NewRedisKVStore(rdb), cfg.OTP)
		publisher = bus
		subscriber = bus
	}
	cancelPing()
	defer func() { _ = rdb.Close() }()

	var images storage.ImageStore = storage.Disabled{}
	if cfg.Cloudinary.CloudName != "" {
		cld, err := storage.NewCloudinaryStore(cfg.Cloudinary)
		if err != nil {
			log.Fatal("cloudinary unavailable", zap.Error(err))
		}
		images = cld
	} else {
		log.Warn("CLOUDINARY_CLOUD_NAME not set, image uploads disabled")
	}

	mail := mailer.New(cfg.SMTP, log)
	tokens := helper.NewTokenManager(cfg.JWT)
	hasher := helper.BcryptHasher{}

	notifications := service.NewNotificationService(store, mail, publisher, log)
	auth := service.NewAuthService(store, hasher, tokens, mail, limiter, service.AuthConfig{
		OTPDigits:     cfg.OTP.Digits,
		OTPTTL:        cfg.OTP.TTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		ClientURL:     cfg.ClientURL,
	}, log)

	h := &handler.Handler{
		Auth:          auth,
		Users:         service.NewUserService(store, hasher, images, log),
		Rooms:         service.NewRoomService(store, hasher, images, log),
		Meetings:      service.NewMeetingService(store, notifications, service.MeetingConfig{Location: cfg.Location, ClientURL: cfg.ClientURL}, log),
		Committees:    service.NewCommitteeService(store, log),
		Amenities:     service.NewAmenityService(store, log),
		Locations:     service.NewLocationService(store, log),
		Notifications: notifications,
		Subscriber:    subscriber,
		CookieSecure:  cfg.CookieSecure,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}

	statusJob := scheduler.NewMeetingStatusJob(store.Meetings(), cfg.Location, log)
	if err := statusJob.Start(); err != nil {
		log.Fatal("failed to start meeting status scheduler", zap.Error(err))
	}
	defer statusJob.Stop()

	purge := scheduler.NewNotificationPurge(store.Notifications(), cfg.PurgeAfter, log)
	if err := purge.Start(cfg.PurgeSpec, cfg.Location); err != nil {
		log.Fatal("failed to start notification purge", zap.Error(err))
	}
	defer purge.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: utils.ErrorHandler,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	router.SetupRoutes(app, h, tokens, auth)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
