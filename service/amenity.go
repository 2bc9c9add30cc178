package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/model"
	"room_booking/repository"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// AmenityService manages the amenity catalog and how many of each amenity a
// room holds.
type AmenityService struct {
	store repository.Store
	log   *zap.Logger
}

func NewAmenityService(store repository.Store, log *zap.Logger) *AmenityService {
	return &AmenityService{store: store, log: log}
}

func (s *AmenityService) find(ctx context.Context, id uuid.UUID) (*model.RoomAmenity, error) {
	a, err := s.store.Amenities().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if a == nil {
		return nil, apperror.ErrAmenityNotFound
	}
	return a, nil
}

func (s *AmenityService) ensureNameFree(ctx context.Context, self uuid.UUID, name string) error {
	other, err := s.store.Amenities().FindByName(ctx, name)
	if err != nil {
		return apperror.Internal(err)
	}
	if other != nil && other.ID != self {
		return apperror.ErrDuplicateAmenityName
	}
	return nil
}

func writeAmenity(err error, duplicate *apperror.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return duplicate
	}
	return apperror.Internal(err)
}

func (s *AmenityService) Create(ctx context.Context, p model.Principal, in model.CreateAmenityInput) (*model.RoomAmenity, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := s.ensureNameFree(ctx, uuid.Nil, in.Name); err != nil {
		return nil, err
	}

	amenity := model.RoomAmenity{Quantity: 1}
	if err := copier.CopyWithOption(&amenity, &in, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperror.Internal(err)
	}
	amenity.Status = true
	amenity.CreatedBy = &p.UserID
	if err := writeAmenity(s.store.Amenities().Create(ctx, &amenity), apperror.ErrDuplicateAmenityName); err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (s *AmenityService) List(ctx context.Context, activeOnly bool) ([]model.RoomAmenity, error) {
	rows, err := s.store.Amenities().List(ctx, activeOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if rows == nil {
		rows = []model.RoomAmenity{}
	}
	return rows, nil
}

func (s *AmenityService) Update(ctx context.Context, p model.Principal, id uuid.UUID, in model.EditAmenityInput) (*model.RoomAmenity, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	updated := in.Apply(*current)
	if updated.Name != current.Name {
		if err := s.ensureNameFree(ctx, id, updated.Name); err != nil {
			return nil, err
		}
	}
	updated.UpdatedBy = &p.UserID
	if err := writeAmenity(s.store.Amenities().Update(ctx, &updated), apperror.ErrDuplicateAmenityName); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetQuantity changes only the catalog quantity of an amenity.
func (s *AmenityService) SetQuantity(ctx context.Context, p model.Principal, id uuid.UUID, in model.AmenityQuantityInput) (*model.RoomAmenity, error) {
	return s.Update(ctx, p, id, model.EditAmenityInput{Quantity: in.Quantity})
}

func (s *AmenityService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.store.Amenities().SoftDelete(ctx, id, p.UserID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *AmenityService) ListRoomQuantities(ctx context.Context, roomID *uuid.UUID, activeOnly bool) ([]model.RoomAmenityQuantity, error) {
	rows, err := s.store.Amenities().ListQuantities(ctx, roomID, activeOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if rows == nil {
		rows = []model.RoomAmenityQuantity{}
	}
	return rows, nil
}

// AssignToRoom records how many of an amenity a room holds. A room lists
// each amenity once.
func (s *AmenityService) AssignToRoom(ctx context.Context, p model.Principal, in model.CreateAmenityQuantityInput) (*model.RoomAmenityQuantity, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	room, err := s.store.Rooms().FindByID(ctx, in.RoomID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if room == nil {
		return nil, apperror.ErrRoomNotFound
	}
	if _, err := s.find(ctx, in.AmenityID); err != nil {
		return nil, err
	}
	existing, err := s.store.Amenities().FindQuantityFor(ctx, in.RoomID, in.AmenityID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateAmenityQuantity
	}

	q := model.RoomAmenityQuantity{
		RoomID:    in.RoomID,
		AmenityID: in.AmenityID,
		Quantity:  in.Quantity,
		Status:    true,
		CreatedBy: &p.UserID,
	}
	if err := writeAmenity(s.store.Amenities().CreateQuantity(ctx, &q), apperror.ErrDuplicateAmenityQuantity); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *AmenityService) findQuantity(ctx context.Context, id uuid.UUID) (*model.RoomAmenityQuantity, error) {
	q, err := s.store.Amenities().FindQuantity(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if q == nil {
		return nil, apperror.ErrAmenityQuantityNotFound
	}
	return q, nil
}

func (s *AmenityService) UpdateRoomQuantity(ctx context.Context, p model.Principal, id uuid.UUID, in model.EditAmenityQuantityInput) (*model.RoomAmenityQuantity, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	q, err := s.findQuantity(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Quantity != nil {
		q.Quantity = *in.Quantity
	}
	if in.Status != nil {
		q.Status = *in.Status
	}
	q.UpdatedBy = &p.UserID
	if err := s.store.Amenities().UpdateQuantity(ctx, q); err != nil {
		return nil, apperror.Internal(err)
	}
	return q, nil
}

func (s *AmenityService) RemoveFromRoom(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if _, err := s.findQuantity(ctx, id); err != nil {
		return err
	}
	if err := s.store.Amenities().DeleteQuantity(ctx, id, p.UserID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
