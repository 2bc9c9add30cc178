package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config returns the value of an environment variable. The .env file in the
// working directory, when present, is loaded on first call.
func Config(key string) string {
	loadEnv.Do(func() {
		_ = godotenv.Load()
	})
	return os.Getenv(key)
}

type DatabaseSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTSettings struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type SMTPSettings struct {
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type CloudinarySettings struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type RedisSettings struct {
	Addr     string
	Password string
	DB       int
}

type OTPSettings struct {
	Digits       int
	TTL          time.Duration
	Cooldown     time.Duration
	Window       time.Duration
	MaxPerWindow int
	BlockFor     time.Duration
	// MaxAttempts wrong codes revoke an issued OTP.
	MaxAttempts  int
}

type Settings struct {
	Port          string
	ServiceName   string
	LogLevel      string
	LogFormat     string
	AllowOrigins  string
	ClientURL     string
	TimeZone      string
	Location      *time.Location
	ResetTokenTTL time.Duration
	AdminEmail    string
	AdminPassword string
	CookieSecure  bool
	PurgeSpec     string
	PurgeAfter    time.Duration

	DB         DatabaseSettings
	JWT        JWTSettings
	SMTP       SMTPSettings
	Cloudinary CloudinarySettings
	Redis      RedisSettings
	OTP        OTPSettings
}

// Load reads every setting the server needs, applying defaults for the
// optional ones.
func Load() (Settings, error) {
	s := Settings{
		Port:          get("PORT", "8002"),
		ServiceName:   get("SERVICE_NAME", "room-booking"),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogFormat:     get("LOG_FORMAT", "json"),
		AllowOrigins:  get("ALLOW_ORIGINS", "http://localhost:5173"),
		ClientURL:     strings.TrimRight(get("CLIENT_URL", "http://localhost:5173"), "/"),
		TimeZone:      get("TZ_NAME", "Asia/Ho_Chi_Minh"),
		ResetTokenTTL: getDuration("RESET_TOKEN_TTL", time.Hour),
		AdminEmail:    get("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: Config("ADMIN_PASSWORD"),
		CookieSecure:  getBool("COOKIE_SECURE", false),
		PurgeSpec:     get("NOTIFICATION_PURGE_CRON", "0 3 * * *"),
		PurgeAfter:    getDuration("NOTIFICATION_RETENTION", 30*24*time.Hour),
		DB: DatabaseSettings{
			Host:     get("DB_HOST", "localhost"),
			Port:     getInt("DB_PORT", 5432),
			User:     get("DB_USER", "postgres"),
			Password: Config("DB_PASSWORD"),
			Name:     get("DB_NAME", "room_booking"),
			SSLMode:  get("DB_SSLMODE", "disable"),
		},
		JWT: JWTSettings{
			AccessSecret:  Config("ACCESS_TOKEN_SECRET"),
			RefreshSecret: Config("REFRESH_TOKEN_SECRET"),
			AccessTTL:     getDuration("ACCESS_TOKEN_TTL", time.Hour),
			RefreshTTL:    getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		SMTP: SMTPSettings{
			Driver:   get("MAIL_DRIVER", "gomail"),
			Host:     Config("SMTP_HOST"),
			Port:     getInt("SMTP_PORT", 587),
			Username: Config("SMTP_USERNAME"),
			Password: Config("SMTP_PASSWORD"),
			From:     get("SMTP_FROM", "no-reply@example.com"),
		},
		Cloudinary: CloudinarySettings{
			CloudName: Config("CLOUDINARY_CLOUD_NAME"),
			APIKey:    Config("CLOUDINARY_API_KEY"),
			APISecret: Config("CLOUDINARY_API_SECRET"),
			Folder:    get("CLOUDINARY_FOLDER", "room-booking"),
		},
		Redis: RedisSettings{
			Addr:     get("REDIS_ADDR", "localhost:6379"),
			Password: Config("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		OTP: OTPSettings{
			Digits:       getInt("OTP_DIGITS", 6),
			TTL:          getDuration("OTP_TTL", 30*time.Minute),
			Cooldown:     getDuration("OTP_COOLDOWN", 30*time.Second),
			Window:       getDuration("OTP_WINDOW", 15*time.Minute),
			MaxPerWindow: getInt("OTP_MAX_PER_WINDOW", 5),
			BlockFor:     getDuration("OTP_BLOCK_FOR", 15*time.Minute),
			MaxAttempts:  getInt("OTP_MAX_ATTEMPTS", 5),
		},
	}

	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return s, err
	}
	s.Location = loc
	return s, nil
}

func get(key, fallback string) string {
	if v := strings.TrimSpace(Config(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(Config(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(Config(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(Config(key)))
	if err != nil {
		return fallback
	}
	return v
}
