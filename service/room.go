package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/helper"
	"room_booking/model"
	"room_booking/repository"
	"room_booking/storage"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService struct {
	store  repository.Store
	hasher PasswordHasher
	images storage.ImageStore
	log    *zap.Logger
}

func NewRoomService(store repository.Store, hasher PasswordHasher, images storage.ImageStore, log *zap.Logger) *RoomService {
	return &RoomService{store: store, hasher: hasher, images: images, log: log}
}

func (s *RoomService) find(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room, err := s.store.Rooms().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if room == nil {
		return nil, apperror.ErrRoomNotFound
	}
	return room, nil
}

func (s *RoomService) ensureNameFree(ctx context.Context, self uuid.UUID, name string) error {
	other, err := s.store.Rooms().FindByName(ctx, name)
	if err != nil {
		return apperror.Internal(err)
	}
	if other != nil && other.ID != self {
		return apperror.ErrDuplicateRoomName
	}
	return nil
}

func (s *RoomService) ensureLocation(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	loc, err := s.store.Locations().FindByID(ctx, *id)
	if err != nil {
		return apperror.Internal(err)
	}
	if loc == nil {
		return apperror.ErrLocationNotFound
	}
	return nil
}

func (s *RoomService) slugFor(ctx context.Context, name string) (string, error) {
	slug, err := helper.UniqueSlug(name, func(candidate string) (bool, error) {
		return s.store.Rooms().SlugExists(ctx, candidate)
	})
	if err != nil {
		return "", apperror.Internal(err)
	}
	return slug, nil
}

func writeRoom(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.ErrDuplicateRoomName
	}
	return apperror.Internal(err)
}

func (s *RoomService) Create(ctx context.Context, p model.Principal, in model.CreateRoomInput, image *storage.File) (*model.Room, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if err := s.ensureNameFree(ctx, uuid.Nil, name); err != nil {
		return nil, err
	}
	locationID, err := parseOptionalID(in.LocationID, "locationId")
	if err != nil {
		return nil, err
	}
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}
	slug, err := s.slugFor(ctx, name)
	if err != nil {
		return nil, err
	}

	room := &model.Room{
		Name:             name,
		Slug:             slug,
		Description:      in.Description,
		Capacity:         in.Capacity,
		IsAvailable:      true,
		SanitationStatus: model.SanitationClean,
		LocationID:       locationID,
	}
	if in.SanitationStatus != "" {
		room.SanitationStatus = in.SanitationStatus
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		room.Password = &hash
	}

	err = withUploadedImage(ctx, s.images, s.log, image, constants.FOLDER_ROOM, func(img *storage.Image) error {
		if img != nil {
			room.RoomImagePath = &img.URL
			room.RoomImagePublicID = &img.PublicID
		}
		return writeRoom(s.store.Rooms().Create(ctx, room))
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("room created", zap.String("room_id", room.ID.String()), zap.String("name", room.Name))
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return s.find(ctx, id)
}

func (s *RoomService) List(ctx context.Context, filter model.FilterRoom) (*model.ResponseCustom[model.Room], error) {
	locationID, err := parseOptionalID(filter.LocationID, "locationId")
	if err != nil {
		return nil, err
	}
	page := filter.Pagination.Normalize()
	rooms, total, err := s.store.Rooms().List(ctx, repository.RoomFilter{
		Search:      strings.TrimSpace(filter.SearchKey),
		LocationID:  locationID,
		IsAvailable: filter.IsAvailable,
	}, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	result := model.NewPage(rooms, total, page)
	return &result, nil
}

func (s *RoomService) Update(ctx context.Context, p model.Principal, id uuid.UUID, in model.EditRoomInput) (*model.Room, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	room, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := in.Apply(*room)

	if updated.Name != room.Name {
		if err := s.ensureNameFree(ctx, id, updated.Name); err != nil {
			return nil, err
		}
		if updated.Slug, err = s.slugFor(ctx, updated.Name); err != nil {
			return nil, err
		}
	}
	if in.LocationID != nil {
		if err := s.ensureLocation(ctx, in.LocationID); err != nil {
			return nil, err
		}
	}
	if err := writeRoom(s.store.Rooms().Update(ctx, &updated)); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RoomService) ChangeImage(ctx context.Context, p model.Principal, id uuid.UUID, image *storage.File) (*model.Room, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, apperror.Validation("image is required")
	}
	room, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := room.RoomImagePublicID

	err = withUploadedImage(ctx, s.images, s.log, image, constants.FOLDER_ROOM, func(img *storage.Image) error {
		room.RoomImagePath = &img.URL
		room.RoomImagePublicID = &img.PublicID
		return writeRoom(s.store.Rooms().Update(ctx, room))
	})
	if err != nil {
		return nil, err
	}
	discardImage(ctx, s.images, s.log, previous)
	return room, nil
}

// Delete soft deletes the room. Its meetings stay in place as history.
func (s *RoomService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.store.Rooms().SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *RoomService) SetSanitation(ctx context.Context, p model.Principal, in model.SanitationInput) (*model.Room, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	room, err := s.find(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	room.SanitationStatus = in.SanitationStatus
	if err := writeRoom(s.store.Rooms().Update(ctx, room)); err != nil {
		return nil, err
	}
	return room, nil
}

// SetAvailability toggles whether new meetings may be booked in the room.
// Existing meetings are not touched.
func (s *RoomService) SetAvailability(ctx context.Context, p model.Principal, in model.AvailabilityInput) (*model.Room, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	room, err := s.find(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	room.IsAvailable = *in.IsAvailable
	if err := writeRoom(s.store.Rooms().Update(ctx, room)); err != nil {
		return nil, err
	}
	return room, nil
}

// Login authenticates a room kiosk with the room's own password.
func (s *RoomService) Login(ctx context.Context, in model.RoomLoginInput) (*model.Room, error) {
	room, err := s.store.Rooms().FindByID(ctx, in.RoomID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if room == nil || room.Password == nil || !s.hasher.Compare(in.Password, *room.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	return room, nil
}

func (s *RoomService) AddGalleryImage(ctx context.Context, p model.Principal, roomID uuid.UUID, image *storage.File) (*model.RoomGallery, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, apperror.Validation("image is required")
	}
	if _, err := s.find(ctx, roomID); err != nil {
		return nil, err
	}

	var entry *model.RoomGallery
	err := withUploadedImage(ctx, s.images, s.log, image, constants.FOLDER_GALLERY, func(img *storage.Image) error {
		entry = &model.RoomGallery{
			RoomID:    roomID,
			ImagePath: img.URL,
			PublicID:  img.PublicID,
			CreatedBy: &p.UserID,
		}
		if err := s.store.Rooms().AddGallery(ctx, entry); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *RoomService) DeleteGalleryImage(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	entry, err := s.store.Rooms().FindGallery(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if entry == nil {
		return apperror.ErrGalleryNotFound
	}
	if err := s.store.Rooms().DeleteGallery(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	discardImage(ctx, s.images, s.log, &entry.PublicID)
	return nil
}
