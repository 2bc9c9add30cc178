package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/model"
	"room_booking/repository"
	"room_booking/storage"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	store  repository.Store
	hasher PasswordHasher
	images storage.ImageStore
	log    *zap.Logger
	now    func() time.Time
}

func NewUserService(store repository.Store, hasher PasswordHasher, images storage.ImageStore, log *zap.Logger) *UserService {
	return &UserService{store: store, hasher: hasher, images: images, log: log, now: time.Now}
}

// UserDetails is a user with the most recent activity entries.
type UserDetails struct {
	model.User
	RecentActivities []model.UserActivity `json:"recentActivities"`
}

func (s *UserService) Register(ctx context.Context, in model.RegisterUserInput, avatar *storage.File) (*model.User, error) {
	email := model.NormalizeEmail(in.Email)
	phone := strings.TrimSpace(in.PhoneNumber)
	if err := s.ensureUnique(ctx, uuid.Nil, email, phone); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user := &model.User{
		Email:       email,
		Password:    hash,
		Fullname:    strings.TrimSpace(in.Fullname),
		PhoneNumber: &phone,
	}

	err = withUploadedImage(ctx, s.images, s.log, avatar, constants.FOLDER_AVATAR, func(img *storage.Image) error {
		if img != nil {
			user.AvatarPath = &img.URL
			user.AvatarPublicID = &img.PublicID
		}
		return s.translateWrite(s.store.Users().Create(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	recordActivity(ctx, s.store, s.log, user.ID, "Registered", s.now())
	return user, nil
}

// ensureUnique rejects an email or phone number held by a user other than
// self.
func (s *UserService) ensureUnique(ctx context.Context, self uuid.UUID, email, phone string) error {
	if email != "" {
		other, err := s.store.Users().FindByEmail(ctx, email)
		if err != nil {
			return apperror.Internal(err)
		}
		if other != nil && other.ID != self {
			return apperror.ErrDuplicateEmail
		}
	}
	if phone != "" {
		other, err := s.store.Users().FindByPhone(ctx, phone)
		if err != nil {
			return apperror.Internal(err)
		}
		if other != nil && other.ID != self {
			return apperror.ErrDuplicatePhone
		}
	}
	return nil
}

func (s *UserService) translateWrite(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.ErrDuplicateEmail.WithMessage("Email or phone number already in use")
	}
	return apperror.Internal(err)
}

func (s *UserService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, p model.Principal, id uuid.UUID) (*UserDetails, error) {
	if !p.CanActOn(id) {
		return nil, apperror.ErrForbidden
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	activities, err := s.store.Users().RecentActivities(ctx, id, constants.RECENT_ACTIVITY_LIMIT)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if activities == nil {
		activities = []model.UserActivity{}
	}
	return &UserDetails{User: *user, RecentActivities: activities}, nil
}

func (s *UserService) Profile(ctx context.Context, p model.Principal) (*UserDetails, error) {
	return s.Get(ctx, p, p.UserID)
}

func (s *UserService) List(ctx context.Context, p model.Principal, filter model.FilterUser) (*model.ResponseCustom[model.User], error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	page := filter.Pagination.Normalize()
	users, total, err := s.store.Users().List(ctx, strings.TrimSpace(filter.SearchKey), page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	result := model.NewPage(users, total, page)
	return &result, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, p model.Principal, id uuid.UUID, in model.UpdateProfileInput) (*model.User, error) {
	if !p.CanActOn(id) {
		return nil, apperror.ErrForbidden
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := in.Apply(*user)

	email := ""
	if updated.Email != user.Email {
		email = updated.Email
	}
	phone := ""
	if updated.PhoneNumber != nil && (user.PhoneNumber == nil || *updated.PhoneNumber != *user.PhoneNumber) {
		phone = *updated.PhoneNumber
	}
	if err := s.ensureUnique(ctx, id, email, phone); err != nil {
		return nil, err
	}

	if err := s.translateWrite(s.store.Users().Update(ctx, &updated)); err != nil {
		return nil, err
	}
	recordActivity(ctx, s.store, s.log, id, "Updated profile", s.now())
	return &updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, p model.Principal, in model.ChangePasswordInput) error {
	user, err := s.find(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(in.OldPassword, user.Password) {
		return apperror.ErrIncorrectPassword
	}
	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	user.Password = hash
	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperror.Internal(err)
	}
	recordActivity(ctx, s.store, s.log, user.ID, "Changed password", s.now())
	return nil
}

func (s *UserService) ChangeAvatar(ctx context.Context, p model.Principal, id uuid.UUID, avatar *storage.File) (*model.User, error) {
	if !p.CanActOn(id) {
		return nil, apperror.ErrForbidden
	}
	if avatar == nil {
		return nil, apperror.Validation("avatar is required")
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := user.AvatarPublicID

	err = withUploadedImage(ctx, s.images, s.log, avatar, constants.FOLDER_AVATAR, func(img *storage.Image) error {
		user.AvatarPath = &img.URL
		user.AvatarPublicID = &img.PublicID
		if err := s.store.Users().Update(ctx, user); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	discardImage(ctx, s.images, s.log, previous)
	return user, nil
}

// SetBlocked blocks or unblocks a user. Blocking ends every session the
// user holds.
func (s *UserService) SetBlocked(ctx context.Context, p model.Principal, in model.BlockStatusInput) (*model.User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if in.UserID == p.UserID {
		return nil, apperror.Validation("You cannot block yourself")
	}
	user, err := s.find(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	user.IsBlocked = *in.IsBlocked
	if user.IsBlocked {
		user.RefreshToken = nil
		user.ResetPasswordToken = nil
		user.ResetPasswordExpiresAt = nil
	}
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	s.log.Info("user block status changed",
		zap.String("user_id", user.ID.String()),
		zap.Bool("blocked", user.IsBlocked),
		zap.String("by", p.UserID.String()),
	)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if !p.CanActOn(id) {
		return apperror.ErrForbidden
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.store.Users().SoftDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// PermanentDelete removes the user row and everything hanging off it.
func (s *UserService) PermanentDelete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	if id == p.UserID {
		return apperror.Validation("You cannot delete your own account")
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Users().HardDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	discardImage(ctx, s.images, s.log, user.AvatarPublicID)
	return nil
}
