package model

import (
	"github.com/google/uuid"
)

type Notification struct {
	DTO
	Type      string     `gorm:"size:50;not null" json:"type"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	MeetingID *uuid.UUID `gorm:"type:uuid;index" json:"meetingId"`
	IsRead    bool       `gorm:"not null;default:false" json:"isRead"`
}

type UnreadCount struct {
	Unread int64 `json:"unread"`
}
