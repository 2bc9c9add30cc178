package service

import (
	"context"
	"errors"
	"maps"
	"room_booking/helper"
	"room_booking/mailer"
	"room_booking/model"
	"room_booking/repository"
	"room_booking/utils"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory repository.Store. Transactions are serialized
// and roll back by restoring a snapshot.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users         map[uuid.UUID]model.User
	activities    []model.UserActivity
	rooms         map[uuid.UUID]model.Room
	locations     map[uuid.UUID]model.Location
	meetings      map[uuid.UUID]model.Meeting
	committees    map[uuid.UUID]model.Committee
	members       map[uuid.UUID]model.CommitteeMember
	notifications map[uuid.UUID]model.Notification
	amenities     map[uuid.UUID]model.RoomAmenity
	quantities    map[uuid.UUID]model.RoomAmenityQuantity

	writes int
}

func newMemStore() *memStore {
	return &memStore{
		users:         map[uuid.UUID]model.User{},
		rooms:         map[uuid.UUID]model.Room{},
		locations:     map[uuid.UUID]model.Location{},
		meetings:      map[uuid.UUID]model.Meeting{},
		committees:    map[uuid.UUID]model.Committee{},
		members:       map[uuid.UUID]model.CommitteeMember{},
		notifications: map[uuid.UUID]model.Notification{},
		amenities:     map[uuid.UUID]model.RoomAmenity{},
		quantities:    map[uuid.UUID]model.RoomAmenityQuantity{},
	}
}

type snapshot struct {
	users         map[uuid.UUID]model.User
	activities    []model.UserActivity
	rooms         map[uuid.UUID]model.Room
	locations     map[uuid.UUID]model.Location
	meetings      map[uuid.UUID]model.Meeting
	committees    map[uuid.UUID]model.Committee
	members       map[uuid.UUID]model.CommitteeMember
	notifications map[uuid.UUID]model.Notification
	amenities     map[uuid.UUID]model.RoomAmenity
	quantities    map[uuid.UUID]model.RoomAmenityQuantity
	writes        int
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:         maps.Clone(s.users),
		activities:    append([]model.UserActivity(nil), s.activities...),
		rooms:         maps.Clone(s.rooms),
		locations:     maps.Clone(s.locations),
		meetings:      maps.Clone(s.meetings),
		committees:    maps.Clone(s.committees),
		members:       maps.Clone(s.members),
		notifications: maps.Clone(s.notifications),
		amenities:     maps.Clone(s.amenities),
		quantities:    maps.Clone(s.quantities),
		writes:        s.writes,
	}
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.activities = snap.activities
	s.rooms = snap.rooms
	s.locations = snap.locations
	s.meetings = snap.meetings
	s.committees = snap.committees
	s.members = snap.members
	s.notifications = snap.notifications
	s.amenities = snap.amenities
	s.quantities = snap.quantities
	s.writes = snap.writes
}

func (s *memStore) Users() repository.UserRepository                 { return memUsers{s: s} }
func (s *memStore) Rooms() repository.RoomRepository                 { return memRooms{s: s} }
func (s *memStore) Meetings() repository.MeetingRepository           { return memMeetings{s: s} }
func (s *memStore) Committees() repository.CommitteeRepository       { return memCommittees{s: s} }
func (s *memStore) Amenities() repository.AmenityRepository          { return memAmenities{s: s} }
func (s *memStore) Locations() repository.LocationRepository         { return memLocations{s: s} }
func (s *memStore) Notifications() repository.NotificationRepository { return memNotifications{s: s} }

func (s *memStore) Transaction(_ context.Context, fn func(tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

type memUsers struct {
	repository.UserRepository
	s *memStore
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.DeletedAt.Valid {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) findBy(match func(model.User) bool) *model.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if !u.DeletedAt.Valid && match(u) {
			return &u
		}
	}
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	return r.findBy(func(u model.User) bool { return u.Email == email }), nil
}

func (r memUsers) FindByPhone(_ context.Context, phone string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.PhoneNumber != nil && *u.PhoneNumber == phone }), nil
}

func (r memUsers) FindByResetToken(_ context.Context, token string, now time.Time) (*model.User, error) {
	return r.findBy(func(u model.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpiresAt != nil && u.ResetPasswordExpiresAt.After(now)
	}), nil
}

func (r memUsers) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok && !u.DeletedAt.Valid {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	newID(&u.ID)
	r.s.users[u.ID] = *u
	r.s.writes++
	return nil
}

func (r memUsers) Update(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.users[u.ID]
	if !ok {
		return errors.New("user not stored")
	}
	next := *u
	next.TempOTP = stored.TempOTP
	next.OTPExpiresAt = stored.OTPExpiresAt
	r.s.users[u.ID] = next
	r.s.writes++
	return nil
}

func (r memUsers) SetOTP(_ context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users[id]
	u.TempOTP = code
	u.OTPExpiresAt = expiresAt
	r.s.users[id] = u
	r.s.writes++
	return nil
}

func (r memUsers) ConsumeOTP(_ context.Context, id uuid.UUID, code string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users[id]
	if u.TempOTP == nil || *u.TempOTP != code || u.OTPExpiresAt == nil || !u.OTPExpiresAt.After(now) {
		return false, nil
	}
	u.TempOTP = nil
	u.OTPExpiresAt = nil
	r.s.users[id] = u
	r.s.writes++
	return true, nil
}

func (r memUsers) AddActivity(_ context.Context, userID uuid.UUID, description string, at time.Time, _ int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activities = append(r.s.activities, model.UserActivity{ID: uuid.New(), UserID: userID, Description: description, Time: at})
	return nil
}

func (r memUsers) RecentActivities(_ context.Context, userID uuid.UUID, limit int) ([]model.UserActivity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.UserActivity
	for i := len(r.s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.activities[i].UserID == userID {
			out = append(out, r.s.activities[i])
		}
	}
	return out, nil
}

type memRooms struct {
	repository.RoomRepository
	s *memStore
}

func (r memRooms) FindByID(_ context.Context, id uuid.UUID) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok || room.DeletedAt.Valid {
		return nil, nil
	}
	return &room, nil
}

func (r memRooms) LockByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	return r.FindByID(ctx, id)
}

func (r memRooms) FindByName(_ context.Context, name string) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if !room.DeletedAt.Valid && strings.EqualFold(room.Name, name) {
			return &room, nil
		}
	}
	return nil, nil
}

func (r memRooms) SlugExists(_ context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if room.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r memRooms) Create(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&room.ID)
	r.s.rooms[room.ID] = *room
	r.s.writes++
	return nil
}

func (r memRooms) Update(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rooms[room.ID] = *room
	r.s.writes++
	return nil
}

type memMeetings struct {
	repository.MeetingRepository
	s *memStore
}

func (r memMeetings) FindByID(_ context.Context, id uuid.UUID) (*model.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok || m.DeletedAt.Valid {
		return nil, nil
	}
	if room, ok := r.s.rooms[m.RoomID]; ok {
		m.Room = &room
	}
	m.Attendees = append([]model.MeetingAttendee(nil), m.Attendees...)
	return &m, nil
}

func (r memMeetings) CountOverlapping(_ context.Context, roomID uuid.UUID, slot model.Slot, excludeID *uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, m := range r.s.meetings {
		if m.DeletedAt.Valid || m.RoomID != roomID || m.Status == model.MeetingCancelled {
			continue
		}
		if excludeID != nil && m.ID == *excludeID {
			continue
		}
		if helper.Overlaps(m.Slot(), slot) {
			n++
		}
	}
	return n, nil
}

func (r memMeetings) Create(_ context.Context, m *model.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&m.ID)
	for i := range m.Attendees {
		m.Attendees[i].MeetingID = m.ID
	}
	stored := *m
	stored.Room = nil
	stored.Attendees = append([]model.MeetingAttendee(nil), m.Attendees...)
	r.s.meetings[m.ID] = stored
	r.s.writes++
	return nil
}

// LockByID has no lock of its own here; Transaction already serializes.
func (r memMeetings) LockByID(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	return r.FindByID(ctx, id)
}

// Update writes the same columns the gorm repository does: status and
// attendees are left to SetStatus and ReplaceAttendees.
func (r memMeetings) Update(_ context.Context, m *model.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := r.s.meetings[m.ID]
	stored.RoomID = m.RoomID
	stored.Title = m.Title
	stored.Description = m.Description
	stored.MeetingDate = m.MeetingDate
	stored.StartTime = m.StartTime
	stored.EndTime = m.EndTime
	stored.IsPrivate = m.IsPrivate
	r.s.meetings[m.ID] = stored
	r.s.writes++
	return nil
}

func (r memMeetings) ReplaceAttendees(_ context.Context, meetingID uuid.UUID, userIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.s.meetings[meetingID]
	m.Attendees = nil
	for _, id := range userIDs {
		m.Attendees = append(m.Attendees, model.MeetingAttendee{MeetingID: meetingID, UserID: id})
	}
	r.s.meetings[meetingID] = m
	r.s.writes++
	return nil
}

func (r memMeetings) SetStatus(_ context.Context, id uuid.UUID, status model.MeetingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.s.meetings[id]
	m.Status = status
	r.s.meetings[id] = m
	r.s.writes++
	return nil
}

type memCommittees struct {
	repository.CommitteeRepository
	s *memStore
}

func (r memCommittees) FindByID(_ context.Context, id uuid.UUID) (*model.Committee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.committees[id]
	if !ok || c.DeletedAt.Valid {
		return nil, nil
	}
	return &c, nil
}

func (r memCommittees) FindByName(_ context.Context, name string) (*model.Committee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.committees {
		if !c.DeletedAt.Valid && strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCommittees) SlugExists(_ context.Context, slug string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.committees {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r memCommittees) ExistingIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []uuid.UUID
	for _, id := range ids {
		if c, ok := r.s.committees[id]; ok && !c.DeletedAt.Valid {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r memCommittees) Create(_ context.Context, c *model.Committee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	newID(&c.ID)
	r.s.committees[c.ID] = *c
	r.s.writes++
	return nil
}

func (r memCommittees) FindActiveMembership(_ context.Context, committeeID, userID uuid.UUID) (*model.CommitteeMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.members {
		if m.CommitteeID == committeeID && m.UserID == userID && m.Status == model.MembershipActive {
			return &m, nil
		}
	}
	return nil, nil
}

func (r memCommittees) ActiveCommitteeIDsForUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []uuid.UUID
	for _, m := range r.s.members {
		if m.UserID == userID && m.Status == model.MembershipActive {
			out = append(out, m.CommitteeID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func (r memCommittees) CreateMembers(_ context.Context, members []model.CommitteeMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range members {
		for _, other := range r.s.members {
			if other.CommitteeID == m.CommitteeID && other.UserID == m.UserID && other.Status == model.MembershipActive {
				return repository.ErrDuplicate
			}
		}
		newID(&m.ID)
		r.s.members[m.ID] = m
		r.s.writes++
	}
	return nil
}

func (r memCommittees) DeactivateMember(_ context.Context, memberID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := r.s.members[memberID]
	m.Status = model.MembershipInactive
	r.s.members[memberID] = m
	r.s.writes++
	return nil
}

func (r memCommittees) DeactivateUserMemberships(_ context.Context, userID uuid.UUID, committeeIDs []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.members {
		if m.UserID != userID || m.Status != model.MembershipActive {
			continue
		}
		for _, cid := range committeeIDs {
			if m.CommitteeID == cid {
				m.Status = model.MembershipInactive
				r.s.members[id] = m
				n++
				r.s.writes++
			}
		}
	}
	return n, nil
}

type memAmenities struct {
	repository.AmenityRepository
	s *memStore
}

type memLocations struct {
	repository.LocationRepository
	s *memStore
}

func (r memLocations) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok || l.DeletedAt.Valid {
		return nil, nil
	}
	return &l, nil
}

type memNotifications struct {
	repository.NotificationRepository
	s *memStore
}

func (r memNotifications) CreateMany(_ context.Context, rows []model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range rows {
		newID(&rows[i].ID)
		r.s.notifications[rows[i].ID] = rows[i]
		r.s.writes++
	}
	return nil
}

func (r memNotifications) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r memNotifications) MarkRead(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := r.s.notifications[id]
	n.IsRead = true
	r.s.notifications[id] = n
	return nil
}

func (s *memStore) notificationsFor(userID uuid.UUID) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// plainHasher keeps tests fast; bcrypt is covered in helper.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Compare(plain, digest string) bool { return digest == "hashed:"+plain }

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (s *memStore) addUser(email string, admin bool) model.User {
	phone := uuid.NewString()[:10]
	u := model.User{
		DTO:         model.DTO{ID: uuid.New()},
		Email:       email,
		Password:    "hashed:secret",
		Fullname:    email,
		PhoneNumber: &phone,
		IsAdmin:     admin,
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addRoom(name string) model.Room {
	room := model.Room{
		DTO:              model.DTO{ID: uuid.New()},
		Name:             name,
		Slug:             strings.ToLower(name),
		Capacity:         10,
		IsAvailable:      true,
		SanitationStatus: model.SanitationClean,
	}
	s.rooms[room.ID] = room
	return room
}

func (s *memStore) addCommittee(name string) model.Committee {
	c := model.Committee{
		DTO:    model.DTO{ID: uuid.New()},
		Name:   name,
		Slug:   strings.ToLower(name),
		Status: model.CommitteeActive,
	}
	s.committees[c.ID] = c
	return c
}

func principalOf(u model.User) model.Principal {
	return model.Principal{UserID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

func mustDay(s string) utils.CustomDate {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testLog = zap.NewNop()
