package service

import (
	"context"
	"room_booking/apperror"
	"room_booking/model"
	"room_booking/storage"
	"testing"

	"github.com/stretchr/testify/require"
)

func newUserService(store *memStore) *UserService {
	return NewUserService(store, plainHasher{}, storage.Disabled{}, testLog)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()
	in := model.RegisterUserInput{
		Email:       "Bob@Example.com",
		Password:    "secret1",
		Fullname:    "Bob",
		PhoneNumber: "0900000001",
	}

	user, err := svc.Register(ctx, in, nil)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", user.Email)
	require.Equal(t, "hashed:secret1", user.Password)

	in.PhoneNumber = "0900000002"
	_, err = svc.Register(ctx, in, nil)
	require.ErrorIs(t, err, apperror.ErrDuplicateEmail)
	require.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	in.Email = "carol@example.com"
	in.PhoneNumber = "0900000001"
	_, err = svc.Register(ctx, in, nil)
	require.ErrorIs(t, err, apperror.ErrDuplicatePhone)
}

func TestRegisterWithAvatarWithoutStorage(t *testing.T) {
	svc := newUserService(newMemStore())
	_, err := svc.Register(context.Background(), model.RegisterUserInput{
		Email:       "dan@example.com",
		Password:    "secret1",
		Fullname:    "Dan",
		PhoneNumber: "0900000003",
	}, &storage.File{Filename: "me.png", ContentType: "image/png"})
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateProfilePermissions(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()
	alice := store.addUser("alice@example.com", false)
	bob := store.addUser("bob@example.com", false)
	admin := store.addUser("admin@example.com", true)

	name := "Alice A."
	updated, err := svc.UpdateProfile(ctx, principalOf(alice), alice.ID, model.UpdateProfileInput{Fullname: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Fullname)

	_, err = svc.UpdateProfile(ctx, principalOf(bob), alice.ID, model.UpdateProfileInput{Fullname: &name})
	require.ErrorIs(t, err, apperror.ErrForbidden)

	taken := "bob@example.com"
	_, err = svc.UpdateProfile(ctx, principalOf(admin), alice.ID, model.UpdateProfileInput{Email: &taken})
	require.ErrorIs(t, err, apperror.ErrDuplicateEmail)
}

func TestChangePassword(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()
	alice := store.addUser("alice@example.com", false)

	err := svc.ChangePassword(ctx, principalOf(alice), model.ChangePasswordInput{OldPassword: "nope", NewPassword: "secret2"})
	require.ErrorIs(t, err, apperror.ErrIncorrectPassword)

	require.NoError(t, svc.ChangePassword(ctx, principalOf(alice), model.ChangePasswordInput{OldPassword: "secret", NewPassword: "secret2"}))
	require.Equal(t, "hashed:secret2", store.users[alice.ID].Password)
}

func TestBlockClearsSessions(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)
	ctx := context.Background()
	admin := store.addUser("admin@example.com", true)
	alice := store.addUser("alice@example.com", false)
	token := "refresh"
	alice.RefreshToken = &token
	alice.ResetPasswordToken = &token
	store.users[alice.ID] = alice

	blocked := true
	user, err := svc.SetBlocked(ctx, principalOf(admin), model.BlockStatusInput{UserID: alice.ID, IsBlocked: &blocked})
	require.NoError(t, err)
	require.True(t, user.IsBlocked)
	require.Nil(t, store.users[alice.ID].RefreshToken)
	require.Nil(t, store.users[alice.ID].ResetPasswordToken)

	_, err = svc.SetBlocked(ctx, principalOf(admin), model.BlockStatusInput{UserID: admin.ID, IsBlocked: &blocked})
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.SetBlocked(ctx, principalOf(alice), model.BlockStatusInput{UserID: admin.ID, IsBlocked: &blocked})
	require.ErrorIs(t, err, apperror.ErrForbidden)
}
