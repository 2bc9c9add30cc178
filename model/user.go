package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	DTO
	Email                  string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password               string         `gorm:"not null" json:"-"`
	Fullname               string         `gorm:"size:255;not null" json:"fullname"`
	PhoneNumber            *string        `gorm:"size:20;uniqueIndex" json:"phoneNumber"`
	IsAdmin                bool           `gorm:"not null;default:false" json:"isAdmin"`
	IsBlocked              bool           `gorm:"not null;default:false" json:"isBlocked"`
	AvatarPath             *string        `json:"avatarPath"`
	AvatarPublicID         *string        `json:"-"`
	LastLoggedIn           *time.Time     `json:"lastLoggedIn"`
	RefreshToken           *string        `json:"-"`
	TempOTP                *string        `gorm:"column:temp_otp;size:12" json:"-"`
	OTPExpiresAt           *time.Time     `gorm:"column:otp_expires_at" json:"-"`
	ResetPasswordToken     *string        `gorm:"size:64;index" json:"-"`
	ResetPasswordExpiresAt *time.Time     `json:"-"`
	Activities             []UserActivity `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
}

type UserActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Time        time.Time `gorm:"not null;index" json:"time"`
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OTPIssued is returned when a login code has been sent.
type OTPIssued struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginResult struct {
	User   User      `json:"user"`
	Tokens TokenData `json:"tokens"`
}

type RegisterUserInput struct {
	Email       string `json:"email" form:"email" validate:"required,email"`
	Password    string `json:"password" form:"password" validate:"required,min=6,max=72"`
	Fullname    string `json:"fullname" form:"fullname" validate:"required,max=255"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type UpdateProfileInput struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	Fullname    *string `json:"fullname" validate:"omitempty,min=1,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=20"`
}

// Apply returns u with the provided fields replaced.
func (in UpdateProfileInput) Apply(u User) User {
	if in.Email != nil {
		u.Email = NormalizeEmail(*in.Email)
	}
	if in.Fullname != nil {
		u.Fullname = strings.TrimSpace(*in.Fullname)
	}
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		u.PhoneNumber = &phone
	}
	return u
}

type BlockStatusInput struct {
	UserID    uuid.UUID `json:"userId" validate:"required"`
	IsBlocked *bool     `json:"isBlocked" validate:"required"`
}

type FilterUser struct {
	Pagination
	SearchKey string `query:"searchKey"`
}
