package repository

import (
	"context"
	"room_booking/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommitteeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Committee, error)
	FindByName(ctx context.Context, name string) (*model.Committee, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// ExistingIDs returns the subset of ids that name live committees.
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	Create(ctx context.Context, c *model.Committee) error
	Update(ctx context.Context, c *model.Committee) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// ListSummaries lists committees with their active member count. When
	// memberID is set only committees that user actively belongs to are
	// returned.
	ListSummaries(ctx context.Context, memberID *uuid.UUID) ([]model.CommitteeSummary, error)
	ActiveMembers(ctx context.Context, committeeID uuid.UUID) ([]model.CommitteeMemberView, error)
	FindMember(ctx context.Context, memberID uuid.UUID) (*model.CommitteeMember, error)
	FindActiveMembership(ctx context.Context, committeeID, userID uuid.UUID) (*model.CommitteeMember, error)
	ActiveCommitteeIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CreateMembers(ctx context.Context, members []model.CommitteeMember) error
	UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role string) error
	DeactivateMember(ctx context.Context, memberID uuid.UUID) error
	DeactivateUserMemberships(ctx context.Context, userID uuid.UUID, committeeIDs []uuid.UUID) (int64, error)
	DeactivateCommitteeMembers(ctx context.Context, committeeID uuid.UUID) error
}

var committeeColumns = []string{"name", "slug", "description", "status", "updated_by"}

type committeeRepo struct {
	db *gorm.DB
}

func (r *committeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Committee, error) {
	return first[model.Committee](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *committeeRepo) FindByName(ctx context.Context, name string) (*model.Committee, error) {
	return first[model.Committee](r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name))
}

func (r *committeeRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(r.db.WithContext(ctx).Model(&model.Committee{}).Where("slug = ?", slug))
}

func (r *committeeRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Committee{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}

func (r *committeeRepo) Create(ctx context.Context, c *model.Committee) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *committeeRepo) Update(ctx context.Context, c *model.Committee) error {
	return translate(r.db.WithContext(ctx).Model(c).
		Select(committeeColumns).
		Omit(clause.Associations).
		Updates(c).Error)
}

func (r *committeeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Committee{}, "id = ?", id).Error
}

func (r *committeeRepo) ListSummaries(ctx context.Context, memberID *uuid.UUID) ([]model.CommitteeSummary, error) {
	query := r.db.WithContext(ctx).Model(&model.Committee{}).
		Select(`committees.id, committees.name, committees.slug, committees.description, committees.status,
			committees.created_at, committees.updated_at, COUNT(cm.id) AS member_count`).
		Joins("LEFT JOIN committee_members cm ON cm.committee_id = committees.id AND cm.status = ?", model.MembershipActive).
		Group("committees.id").
		Order("committees.created_at DESC")
	if memberID != nil {
		query = query.Where(`EXISTS (SELECT 1 FROM committee_members m
			WHERE m.committee_id = committees.id AND m.user_id = ? AND m.status = ?)`, *memberID, model.MembershipActive)
	}

	summaries := []model.CommitteeSummary{}
	err := query.Scan(&summaries).Error
	return summaries, err
}

func (r *committeeRepo) ActiveMembers(ctx context.Context, committeeID uuid.UUID) ([]model.CommitteeMemberView, error) {
	members := []model.CommitteeMemberView{}
	err := r.db.WithContext(ctx).Table("committee_members AS cm").
		Select(`cm.id AS member_id, cm.user_id, u.fullname, u.email, u.phone_number, u.avatar_path,
			cm.role, cm.status, cm.created_at AS joined_at`).
		Joins("JOIN users u ON u.id = cm.user_id AND u.deleted_at IS NULL").
		Where("cm.committee_id = ? AND cm.status = ?", committeeID, model.MembershipActive).
		Order("cm.created_at ASC").
		Scan(&members).Error
	return members, err
}

func (r *committeeRepo) FindMember(ctx context.Context, memberID uuid.UUID) (*model.CommitteeMember, error) {
	return first[model.CommitteeMember](r.db.WithContext(ctx).Where("id = ?", memberID))
}

func (r *committeeRepo) FindActiveMembership(ctx context.Context, committeeID, userID uuid.UUID) (*model.CommitteeMember, error) {
	return first[model.CommitteeMember](r.db.WithContext(ctx).
		Where("committee_id = ? AND user_id = ? AND status = ?", committeeID, userID, model.MembershipActive))
}

func (r *committeeRepo) ActiveCommitteeIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.CommitteeMember{}).
		Where("user_id = ? AND status = ?", userID, model.MembershipActive).
		Pluck("committee_id", &ids).Error
	return ids, err
}

func (r *committeeRepo) CreateMembers(ctx context.Context, members []model.CommitteeMember) error {
	if len(members) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(&members).Error)
}

func (r *committeeRepo) UpdateMemberRole(ctx context.Context, memberID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Model(&model.CommitteeMember{}).
		Where("id = ?", memberID).
		Update("role", role).Error
}

func (r *committeeRepo) DeactivateMember(ctx context.Context, memberID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CommitteeMember{}).
		Where("id = ?", memberID).
		Update("status", model.MembershipInactive).Error
}

func (r *committeeRepo) DeactivateUserMemberships(ctx context.Context, userID uuid.UUID, committeeIDs []uuid.UUID) (int64, error) {
	if len(committeeIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.CommitteeMember{}).
		Where("user_id = ? AND committee_id IN ? AND status = ?", userID, committeeIDs, model.MembershipActive).
		Update("status", model.MembershipInactive)
	return res.RowsAffected, res.Error
}

func (r *committeeRepo) DeactivateCommitteeMembers(ctx context.Context, committeeID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.CommitteeMember{}).
		Where("committee_id = ? AND status = ?", committeeID, model.MembershipActive).
		Update("status", model.MembershipInactive).Error
}
