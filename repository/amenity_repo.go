package repository

import (
	"context"
	"room_booking/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AmenityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.RoomAmenity, error)
	FindByName(ctx context.Context, name string) (*model.RoomAmenity, error)
	List(ctx context.Context, activeOnly bool) ([]model.RoomAmenity, error)
	Create(ctx context.Context, a *model.RoomAmenity) error
	Update(ctx context.Context, a *model.RoomAmenity) error
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error

	FindQuantity(ctx context.Context, id uuid.UUID) (*model.RoomAmenityQuantity, error)
	FindQuantityFor(ctx context.Context, roomID, amenityID uuid.UUID) (*model.RoomAmenityQuantity, error)
	ListQuantities(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]model.RoomAmenityQuantity, error)
	CreateQuantity(ctx context.Context, q *model.RoomAmenityQuantity) error
	UpdateQuantity(ctx context.Context, q *model.RoomAmenityQuantity) error
	DeleteQuantity(ctx context.Context, id, deletedBy uuid.UUID) error
}

type amenityRepo struct {
	db *gorm.DB
}

func (r *amenityRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RoomAmenity, error) {
	return first[model.RoomAmenity](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *amenityRepo) FindByName(ctx context.Context, name string) (*model.RoomAmenity, error) {
	return first[model.RoomAmenity](r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name))
}

func (r *amenityRepo) List(ctx context.Context, activeOnly bool) ([]model.RoomAmenity, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("status = ?", true)
	}
	var amenities []model.RoomAmenity
	err := query.Find(&amenities).Error
	return amenities, err
}

func (r *amenityRepo) Create(ctx context.Context, a *model.RoomAmenity) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *amenityRepo) Update(ctx context.Context, a *model.RoomAmenity) error {
	return translate(r.db.WithContext(ctx).Model(a).
		Select("name", "description", "quantity", "status", "updated_by").
		Updates(a).Error)
}

func (r *amenityRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RoomAmenity{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.RoomAmenity{}, "id = ?", id).Error
	})
}

func (r *amenityRepo) FindQuantity(ctx context.Context, id uuid.UUID) (*model.RoomAmenityQuantity, error) {
	return first[model.RoomAmenityQuantity](r.db.WithContext(ctx).
		Preload("Amenity").
		Preload("Room").
		Where("id = ?", id))
}

func (r *amenityRepo) FindQuantityFor(ctx context.Context, roomID, amenityID uuid.UUID) (*model.RoomAmenityQuantity, error) {
	return first[model.RoomAmenityQuantity](r.db.WithContext(ctx).
		Where("room_id = ? AND amenity_id = ?", roomID, amenityID))
}

func (r *amenityRepo) ListQuantities(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]model.RoomAmenityQuantity, error) {
	query := r.db.WithContext(ctx).Preload("Amenity").Preload("Room").Order("created_at DESC")
	if roomID != nil {
		query = query.Where("room_id = ?", *roomID)
	}
	if activeOnly {
		query = query.Where("status = ?", true)
	}
	var quantities []model.RoomAmenityQuantity
	err := query.Find(&quantities).Error
	return quantities, err
}

func (r *amenityRepo) CreateQuantity(ctx context.Context, q *model.RoomAmenityQuantity) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(q).Error)
}

func (r *amenityRepo) UpdateQuantity(ctx context.Context, q *model.RoomAmenityQuantity) error {
	return r.db.WithContext(ctx).Model(q).
		Select("quantity", "status", "updated_by").
		Omit(clause.Associations).
		Updates(q).Error
}

func (r *amenityRepo) DeleteQuantity(ctx context.Context, id, deletedBy uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RoomAmenityQuantity{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.RoomAmenityQuantity{}, "id = ?", id).Error
	})
}
