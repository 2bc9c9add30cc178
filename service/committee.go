package service

import (
	"context"
	"errors"
	"room_booking/apperror"
	"room_booking/constants"
	"room_booking/helper"
	"room_booking/model"
	"room_booking/repository"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

type CommitteeService struct {
	store repository.Store
	log   *zap.Logger
}

func NewCommitteeService(store repository.Store, log *zap.Logger) *CommitteeService {
	return &CommitteeService{store: store, log: log}
}

func (s *CommitteeService) find(ctx context.Context, store repository.Store, id uuid.UUID) (*model.Committee, error) {
	c, err := store.Committees().FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if c == nil {
		return nil, apperror.ErrCommitteeNotFound
	}
	return c, nil
}

func (s *CommitteeService) ensureNameFree(ctx context.Context, self uuid.UUID, name string) error {
	other, err := s.store.Committees().FindByName(ctx, name)
	if err != nil {
		return apperror.Internal(err)
	}
	if other != nil && other.ID != self {
		return apperror.ErrDuplicateCommitteeName
	}
	return nil
}

func writeCommittee(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return apperror.ErrDuplicateCommitteeName
	}
	return apperror.Internal(err)
}

func (s *CommitteeService) Create(ctx context.Context, p model.Principal, in model.CreateCommitteeInput) (*model.Committee, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := s.ensureNameFree(ctx, uuid.Nil, in.Name); err != nil {
		return nil, err
	}

	var committee model.Committee
	if err := copier.Copy(&committee, &in); err != nil {
		return nil, apperror.Internal(err)
	}
	slug, err := helper.UniqueSlug(committee.Name, func(candidate string) (bool, error) {
		return s.store.Committees().SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	committee.Slug = slug
	committee.Status = model.CommitteeActive
	committee.CreatedBy = &p.UserID

	if err := writeCommittee(s.store.Committees().Create(ctx, &committee)); err != nil {
		return nil, err
	}
	s.log.Info("committee created", zap.String("committee_id", committee.ID.String()), zap.String("name", committee.Name))
	return &committee, nil
}

func (s *CommitteeService) Update(ctx context.Context, p model.Principal, id uuid.UUID, in model.UpdateCommitteeInput) (*model.Committee, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	current, err := s.find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	updated := in.Apply(*current)
	if updated.Name != current.Name {
		if err := s.ensureNameFree(ctx, id, updated.Name); err != nil {
			return nil, err
		}
	}
	updated.UpdatedBy = &p.UserID
	if err := writeCommittee(s.store.Committees().Update(ctx, &updated)); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete soft deletes the committee and deactivates its memberships.
func (s *CommitteeService) Delete(ctx context.Context, p model.Principal, id uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := s.find(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Committees().DeactivateCommitteeMembers(ctx, id); err != nil {
			return apperror.Internal(err)
		}
		if err := tx.Committees().SoftDelete(ctx, id); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
}

func (s *CommitteeService) List(ctx context.Context) ([]model.CommitteeSummary, error) {
	return s.summaries(ctx, nil)
}

// MyCommittees lists the committees p is an active member of.
func (s *CommitteeService) MyCommittees(ctx context.Context, p model.Principal) ([]model.CommitteeSummary, error) {
	return s.summaries(ctx, &p.UserID)
}

func (s *CommitteeService) summaries(ctx context.Context, memberID *uuid.UUID) ([]model.CommitteeSummary, error) {
	rows, err := s.store.Committees().ListSummaries(ctx, memberID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if rows == nil {
		rows = []model.CommitteeSummary{}
	}
	return rows, nil
}

func (s *CommitteeService) Details(ctx context.Context, id uuid.UUID) (*model.CommitteeDetails, error) {
	committee, err := s.find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	members, err := s.Members(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CommitteeDetails{Committee: *committee, ActiveMembers: members}, nil
}

func (s *CommitteeService) Members(ctx context.Context, id uuid.UUID) ([]model.CommitteeMemberView, error) {
	members, err := s.store.Committees().ActiveMembers(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if members == nil {
		members = []model.CommitteeMemberView{}
	}
	return members, nil
}

// AddMember adds userID to the committee. A user holds at most one active
// membership per committee.
func (s *CommitteeService) AddMember(ctx context.Context, p model.Principal, committeeID uuid.UUID, in model.AddMemberInput) (*model.CommitteeMember, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	var member model.CommitteeMember
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := s.find(ctx, tx, committeeID); err != nil {
			return err
		}
		user, err := tx.Users().FindByID(ctx, in.UserID)
		if err != nil {
			return apperror.Internal(err)
		}
		if user == nil {
			return apperror.ErrUserNotFound
		}
		existing, err := tx.Committees().FindActiveMembership(ctx, committeeID, in.UserID)
		if err != nil {
			return apperror.Internal(err)
		}
		if existing != nil {
			return apperror.ErrDuplicateActiveMembership
		}

		member = model.CommitteeMember{
			ID:          uuid.New(),
			CommitteeID: committeeID,
			UserID:      in.UserID,
			Role:        strings.TrimSpace(in.Role),
			Status:      model.MembershipActive,
		}
		if err := tx.Committees().CreateMembers(ctx, []model.CommitteeMember{member}); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.ErrDuplicateActiveMembership
			}
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *CommitteeService) activeMembership(ctx context.Context, store repository.Store, committeeID, userID uuid.UUID) (*model.CommitteeMember, error) {
	member, err := store.Committees().FindActiveMembership(ctx, committeeID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if member == nil {
		return nil, apperror.ErrMembershipNotFound
	}
	return member, nil
}

// RemoveMember deactivates the user's membership. The row is kept.
func (s *CommitteeService) RemoveMember(ctx context.Context, p model.Principal, committeeID, userID uuid.UUID) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	member, err := s.activeMembership(ctx, s.store, committeeID, userID)
	if err != nil {
		return err
	}
	if err := s.store.Committees().DeactivateMember(ctx, member.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *CommitteeService) UpdateMemberRole(ctx context.Context, p model.Principal, committeeID, userID uuid.UUID, in model.UpdateMemberRoleInput) (*model.CommitteeMember, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	member, err := s.activeMembership(ctx, s.store, committeeID, userID)
	if err != nil {
		return nil, err
	}
	member.Role = strings.TrimSpace(in.Role)
	if err := s.store.Committees().UpdateMemberRole(ctx, member.ID, member.Role); err != nil {
		return nil, apperror.Internal(err)
	}
	return member, nil
}

// SetMemberships makes userID an active member of exactly committeeIDs.
// New memberships get the default role; dropped ones are deactivated.
// Nothing is written if any committee is unknown.
func (s *CommitteeService) SetMemberships(ctx context.Context, p model.Principal, userID uuid.UUID, committeeIDs []uuid.UUID) (*model.MembershipDiff, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	desired := model.UniqueIDs(committeeIDs)
	diff := &model.MembershipDiff{Added: []uuid.UUID{}, Removed: []uuid.UUID{}}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return apperror.Internal(err)
		}
		if user == nil {
			return apperror.ErrUserNotFound
		}

		known, err := tx.Committees().ExistingIDs(ctx, desired)
		if err != nil {
			return apperror.Internal(err)
		}
		if absent := missing(desired, known); len(absent) > 0 {
			return apperror.ErrCommitteeNotFound.WithMessage("Committee %s not found", absent[0])
		}

		current, err := tx.Committees().ActiveCommitteeIDsForUser(ctx, userID)
		if err != nil {
			return apperror.Internal(err)
		}
		toAdd := missing(desired, current)
		toRemove := missing(current, desired)

		if len(toAdd) > 0 {
			rows := make([]model.CommitteeMember, 0, len(toAdd))
			for _, id := range toAdd {
				rows = append(rows, model.CommitteeMember{
					CommitteeID: id,
					UserID:      userID,
					Role:        constants.DEFAULT_COMMITTEE_ROLE,
					Status:      model.MembershipActive,
				})
			}
			if err := tx.Committees().CreateMembers(ctx, rows); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return apperror.ErrDuplicateActiveMembership
				}
				return apperror.Internal(err)
			}
		}
		if len(toRemove) > 0 {
			if _, err := tx.Committees().DeactivateUserMemberships(ctx, userID, toRemove); err != nil {
				return apperror.Internal(err)
			}
		}

		diff.Added = append(diff.Added, toAdd...)
		diff.Removed = append(diff.Removed, toRemove...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("committee memberships synchronized",
		zap.String("user_id", userID.String()),
		zap.Int("added", len(diff.Added)),
		zap.Int("removed", len(diff.Removed)),
	)
	return diff, nil
}
