package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/model"
	"room_booking/repository"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LocationService struct {
	store repository.Store
	log   *zap.Logger
}

func NewLocationService(store repository.Store, log *zap.Logger) *LocationService {
	return &LocationService{store: store, log: log}
}

func (s *LocationService) find(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	l, err := s.store.Locations().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if l == nil {
		return nil, apperror.ErrLocationNotFound
	}
	return l, nil
}

func (s *LocationService) ensureNameFree(ctx context.Context, self uuid.UUID, name string) error {
	other, err := s.store.Locations().FindByName(ctx, name)
	if err != nil {
		return apperror.Internal(err)
	}
	if other != nil && other.ID != self {
		return apperror.ErrDuplicateLocationName
	}
	return nil
}

func writeLocation(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.ErrDuplicateLocationName
	}
	return apperror.Internal(err)
}

func (s *LocationService) Create(ctx context.Context, p model.Principal, in model.LocationInput) (*model.Location, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.LocationName)
	if err := s.ensureNameFree(ctx, uuid.Nil, name); err != nil {
		return nil, err
	}
	location := &model.Location{LocationName: name, Status: true}
	if err := writeLocation(s.store.Locations().Create(ctx, location)); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) List(ctx context.Context, activeOnly bool) ([]model.Location, error) {
	rows, err := s.store.Locations().List(ctx, activeOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if rows == nil {
		rows = []model.Location{}
	}
	return rows, nil
}

func (s *LocationService) Update(ctx context.Context, p model.Principal, id uuid.UUID, in model.LocationInput) (*model.Location, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.LocationName)
	if name != location.LocationName {
		if err := s.ensureNameFree(ctx, id, name); err != nil {
			return nil, err
		}
	}
	location.LocationName = name
	if err := writeLocation(s.store.Locations().Update(ctx, location)); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) SetStatus(ctx context.Context, p model.Principal, id uuid.UUID, in model.LocationStatusInput) (*model.Location, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Status = *in.Status
	if err := writeLocation(s.store.Locations().Update(ctx, location)); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.store.Locations().SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
