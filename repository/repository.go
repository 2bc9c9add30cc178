package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// Store groups the repositories so several of them can share one
// transaction.
type Store interface {
	Users() UserRepository
	Rooms() RoomRepository
	Meetings() MeetingRepository
	Committees() CommitteeRepository
	Amenities() AmenityRepository
	Locations() LocationRepository
	Notifications() NotificationRepository

	// Transaction runs fn with a Store bound to a single database
	// transaction. The transaction commits only if fn returns nil.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository                 { return &userRepo{db: s.db} }
func (s *GormStore) Rooms() RoomRepository                 { return &roomRepo{db: s.db} }
func (s *GormStore) Meetings() MeetingRepository           { return &meetingRepo{db: s.db} }
func (s *GormStore) Committees() CommitteeRepository       { return &committeeRepo{db: s.db} }
func (s *GormStore) Amenities() AmenityRepository          { return &amenityRepo{db: s.db} }
func (s *GormStore) Locations() LocationRepository         { return &locationRepo{db: s.db} }
func (s *GormStore) Notifications() NotificationRepository { return &notificationRepo{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// first runs q and returns nil, nil when no row matches.
func first[T any](q *gorm.DB) (*T, error) {
	var v T
	if err := q.First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func exists(q *gorm.DB) (bool, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
