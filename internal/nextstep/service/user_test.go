package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/domain"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateUser(ctx, testUserID)
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = env.users.CreateUser(ctx, "")
	require.ErrorIs(t, err, ErrInvalidRequest)

	u, err := env.users.UpdateUserStatus(ctx, testUserID, domain.UserBlocked)
	require.NoError(t, err)
	require.Equal(t, domain.UserBlocked, u.Status)

	_, err = env.users.UpdateUserStatus(ctx, testUserID, "FROZEN")
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.users.UpdateUserStatus(ctx, testUserID, domain.UserRemoved)
	require.NoError(t, err)

	_, err = env.users.UpdateUserStatus(ctx, testUserID, domain.UserActive)
	require.ErrorIs(t, err, ErrUserNotFound, "removed users cannot be revived")

	got, err := env.users.GetUser(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, domain.UserRemoved, got.Status)

	_, err = env.users.GetUser(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserContacts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.SaveContact(ctx, domain.UserContact{UserID: testUserID, Name: "mobile", Type: "FAX", Value: "1"})
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = env.users.SaveContact(ctx, domain.UserContact{UserID: "ghost", Name: "mobile", Type: domain.ContactPhone, Value: "+61400000001"})
	require.ErrorIs(t, err, ErrUserNotFound)

	first, err := env.users.SaveContact(ctx, domain.UserContact{UserID: testUserID, Name: "mobile", Type: domain.ContactPhone, Value: "+61400000001", Primary: true})
	require.NoError(t, err)

	env.clock.Advance(time.Minute)
	_, err = env.users.SaveContact(ctx, domain.UserContact{UserID: testUserID, Name: "work", Type: domain.ContactPhone, Value: "+61400000002", Primary: true})
	require.NoError(t, err)
	_, err = env.users.SaveContact(ctx, domain.UserContact{UserID: testUserID, Name: "email", Type: domain.ContactEmail, Value: "user@example.com", Primary: true})
	require.NoError(t, err)

	contacts, err := env.users.ListContacts(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	require.Equal(t, "email", contacts[0].Name)
	require.Equal(t, "work", contacts[1].Name)
	require.Equal(t, "mobile", contacts[2].Name)
	require.False(t, contacts[2].Primary, "a new primary phone demotes the old one")
	require.True(t, contacts[0].Primary, "primaries are tracked per type")

	env.clock.Advance(time.Minute)
	updated, err := env.users.SaveContact(ctx, domain.UserContact{UserID: testUserID, Name: "mobile", Type: domain.ContactPhone, Value: "+61400000003"})
	require.NoError(t, err)
	require.True(t, updated.CreatedAt.Equal(first.CreatedAt))
	require.True(t, updated.UpdatedAt.After(first.UpdatedAt))

	require.NoError(t, env.users.DeleteContact(ctx, testUserID, "mobile"))
	err = env.users.DeleteContact(ctx, testUserID, "mobile")
	require.ErrorIs(t, err, ErrUserContactNotFound)

	_, err = env.users.ListContacts(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
}
