package repository

import (
	"context"
	"room_booking/model"
	"room_booking/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	List(ctx context.Context, search string, p model.Pagination) ([]model.User, int64, error)
	Create(ctx context.Context, u *model.User) error
	// Update writes profile, credential and session columns. The OTP
	// columns are never touched here.
	Update(ctx context.Context, u *model.User) error
	SetOTP(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error
	// ConsumeOTP clears the code only if it still equals code and has not
	// expired, reporting whether this call cleared it.
	ConsumeOTP(ctx context.Context, id uuid.UUID, code string, now time.Time) (bool, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	AddActivity(ctx context.Context, userID uuid.UUID, description string, at time.Time, keep int) error
	RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]model.UserActivity, error)
}

var userColumns = []string{
	"email", "password", "fullname", "phone_number", "is_admin", "is_blocked",
	"avatar_path", "avatar_public_id", "last_logged_in", "refresh_token",
	"reset_password_token", "reset_password_expires_at",
}

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return first[model.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return first[model.User](r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)))
}

func (r *userRepo) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return first[model.User](r.db.WithContext(ctx).Where("phone_number = ?", phone))
}

func (r *userRepo) FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	return first[model.User](r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires_at > ?", token, now))
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepo) List(ctx context.Context, search string, p model.Pagination) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("fullname ILIKE ? OR email ILIKE ? OR phone_number ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := utils.ApplyPagination(query.Order("created_at DESC"), p.Limit, p.Page).Find(&users).Error
	return users, total, err
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return translate(r.db.WithContext(ctx).Model(u).
		Select(userColumns).
		Omit(clause.Associations).
		Updates(u).Error)
}

func (r *userRepo) SetOTP(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"temp_otp": code, "otp_expires_at": expiresAt}).Error
}

func (r *userRepo) ConsumeOTP(ctx context.Context, id uuid.UUID, code string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND temp_otp = ? AND otp_expires_at > ?", id, code, now).
		Updates(map[string]interface{}{"temp_otp": nil, "otp_expires_at": nil})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) AddActivity(ctx context.Context, userID uuid.UUID, description string, at time.Time, keep int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activity := model.UserActivity{ID: uuid.New(), UserID: userID, Description: description, Time: at}
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		if keep <= 0 {
			return nil
		}
		recent := tx.Model(&model.UserActivity{}).
			Select("id").
			Where("user_id = ?", userID).
			Order("time DESC").
			Limit(keep)
		return tx.Where("user_id = ? AND id NOT IN (?)", userID, recent).
			Delete(&model.UserActivity{}).Error
	})
}

func (r *userRepo) RecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]model.UserActivity, error) {
	var activities []model.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
