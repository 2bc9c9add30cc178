package repository

import (
	"context"
	"room_booking/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	FindByName(ctx context.Context, name string) (*model.Location, error)
	List(ctx context.Context, activeOnly bool) ([]model.Location, error)
	Create(ctx context.Context, l *model.Location) error
	Update(ctx context.Context, l *model.Location) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type locationRepo struct {
	db *gorm.DB
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	return first[model.Location](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *locationRepo) FindByName(ctx context.Context, name string) (*model.Location, error) {
	return first[model.Location](r.db.WithContext(ctx).Where("LOWER(location_name) = LOWER(?)", name))
}

func (r *locationRepo) List(ctx context.Context, activeOnly bool) ([]model.Location, error) {
	query := r.db.WithContext(ctx).Order("location_name ASC")
	if activeOnly {
		query = query.Where("status = ?", true)
	}
	var locations []model.Location
	err := query.Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return translate(r.db.WithContext(ctx).Create(l).Error)
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return translate(r.db.WithContext(ctx).Model(l).Select("location_name", "status").Updates(l).Error)
}

func (r *locationRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Location{}, "id = ?", id).Error
}
