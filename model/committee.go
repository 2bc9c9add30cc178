package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommitteeStatus string

const (
	CommitteeActive   CommitteeStatus = "active"
	CommitteeInactive CommitteeStatus = "inactive"
)

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
)

type Committee struct {
	DTO
	Name        string            `gorm:"size:255;not null;uniqueIndex:idx_committees_name,where:deleted_at IS NULL" json:"name"`
	Slug        string            `gorm:"size:280;not null;uniqueIndex:idx_committees_slug,where:deleted_at IS NULL" json:"slug"`
	Description *string           `gorm:"type:text" json:"description"`
	Status      CommitteeStatus   `gorm:"size:20;not null;default:active" json:"status"`
	CreatedBy   *uuid.UUID        `gorm:"type:uuid" json:"createdBy"`
	UpdatedBy   *uuid.UUID        `gorm:"type:uuid" json:"updatedBy"`
	Members     []CommitteeMember `gorm:"foreignKey:CommitteeID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// CommitteeMember links a user to a committee. At most one active row may
// exist per (committee, user); inactive rows are kept as history.
type CommitteeMember struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CommitteeID uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_committee_members_active,where:status = 'active'" json:"committeeId"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_committee_members_active,where:status = 'active'" json:"userId"`
	Role        string           `gorm:"size:50;not null" json:"role"`
	Status      MembershipStatus `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Committee   *Committee       `gorm:"foreignKey:CommitteeID" json:"committee,omitempty"`
	User        *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (m *CommitteeMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CommitteeSummary is the list projection with the count of active members.
type CommitteeSummary struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description"`
	Status      CommitteeStatus `json:"status"`
	MemberCount int64           `json:"memberCount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CommitteeMemberView is an active member joined with the user's profile.
type CommitteeMemberView struct {
	MemberID    uuid.UUID        `json:"memberId"`
	UserID      uuid.UUID        `json:"userId"`
	Fullname    string           `json:"fullname"`
	Email       string           `json:"email"`
	PhoneNumber *string          `json:"phoneNumber"`
	AvatarPath  *string          `json:"avatarPath"`
	Role        string           `json:"role"`
	Status      MembershipStatus `json:"status"`
	JoinedAt    time.Time        `json:"joinedAt"`
}

type CommitteeDetails struct {
	Committee
	ActiveMembers []CommitteeMemberView `json:"activeMembers"`
}

// MembershipDiff is what a synchronization changed.
type MembershipDiff struct {
	Added   []uuid.UUID `json:"added"`
	Removed []uuid.UUID `json:"removed"`
}

type CreateCommitteeInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type UpdateCommitteeInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Status      *CommitteeStatus `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (in UpdateCommitteeInput) Apply(c Committee) Committee {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	return c
}

type AddMemberInput struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Role   string    `json:"role" validate:"required,max=50"`
}

type UpdateMemberRoleInput struct {
	Role string `json:"role" validate:"required,max=50"`
}

type SetMembershipsInput struct {
	CommitteeIDs []uuid.UUID `json:"committeeIds" validate:"dive,required"`
}
