package repository

import (
	"context"
	"room_booking/model"
	"room_booking/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomFilter struct {
	Search      string
	LocationID  *uuid.UUID
	IsAvailable *bool
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	// LockByID loads the room with a row lock held until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByName(ctx context.Context, name string) (*model.Room, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter RoomFilter, p model.Pagination) ([]model.Room, int64, error)
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	AddGallery(ctx context.Context, image *model.RoomGallery) error
	FindGallery(ctx context.Context, id uuid.UUID) (*model.RoomGallery, error)
	DeleteGallery(ctx context.Context, id uuid.UUID) error
}

var roomColumns = []string{
	"name", "slug", "description", "capacity", "is_available", "sanitation_status",
	"location_id", "room_image_path", "room_image_public_id", "password",
}

type roomRepo struct {
	db *gorm.DB
}

func (r *roomRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return first[model.Room](r.db.WithContext(ctx).
		Preload("Location").
		Preload("Amenities", "status = ?", true).
		Preload("Amenities.Amenity").
		Preload("Gallery").
		Where("id = ?", id))
}

func (r *roomRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return first[model.Room](r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (r *roomRepo) FindByName(ctx context.Context, name string) (*model.Room, error) {
	return first[model.Room](r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name))
}

func (r *roomRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&model.Room{}).Where("slug = ?", slug))
}

func (r *roomRepo) List(ctx context.Context, filter RoomFilter, p model.Pagination) ([]model.Room, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Room{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []model.Room
	err := utils.ApplyPagination(query.Preload("Location").Order("name ASC"), p.Limit, p.Page).
		Find(&rooms).Error
	return rooms, total, err
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error)
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return translate(r.db.WithContext(ctx).Model(room).
		Select(roomColumns).
		Omit(clause.Associations).
		Updates(room).Error)
}

func (r *roomRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id).Error
}

func (r *roomRepo) AddGallery(ctx context.Context, image *model.RoomGallery) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *roomRepo) FindGallery(ctx context.Context, id uuid.UUID) (*model.RoomGallery, error) {
	return first[model.RoomGallery](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *roomRepo) DeleteGallery(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RoomGallery{}, "id = ?", id).Error
}
