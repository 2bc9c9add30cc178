package model

import (
	"room_booking/constants"
	"room_booking/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenClaim struct {
	UserID  uuid.UUID `json:"userId"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// Principal is the authenticated caller, resolved from the access token and
// passed explicitly into every service call that needs it.
type Principal struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

func (p Principal) CanActOn(userID uuid.UUID) bool {
	return p.IsAdmin || p.UserID == userID
}

type DTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (d *DTO) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type Pagination struct {
	Limit int `query:"limit" json:"limit"`
	Page  int `query:"page" json:"page"`
}

// Normalize clamps page and limit to usable values.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = constants.DEFAULT_PAGE_LIMIT
	}
	if p.Limit > constants.MAX_PAGE_LIMIT {
		p.Limit = constants.MAX_PAGE_LIMIT
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type ResponseCustom[T any] struct {
	Rows        []T   `json:"rows"`
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
}

func NewPage[T any](rows []T, total int64, p Pagination) ResponseCustom[T] {
	if rows == nil {
		rows = []T{}
	}
	return ResponseCustom[T]{
		Rows:        rows,
		Total:       total,
		Pages:       utils.TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}
}

type ActiveFilter struct {
	ActiveOnly bool `query:"activeOnly"`
}
