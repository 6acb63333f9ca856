package session_test

import (
	"context"
	"testing"

	"github.com/raushankrgupta/skinbox/models"
	"github.com/raushankrgupta/skinbox/session"
	"github.com/raushankrgupta/skinbox/storage"
	"github.com/stretchr/testify/require"
)

func TestEmailConvention(t *testing.T) {
	auth := session.EmailConvention{}

	user, err := auth.Authenticate(context.Background(), "anna@example.com")
	require.NoError(t, err)
	require.Equal(t, models.SessionIdentity{ID: "anna@example.com", Email: "anna@example.com", Name: "anna", Role: models.RoleUser}, user)
	require.False(t, user.IsAdmin())

	admin, err := auth.Authenticate(context.Background(), "admin@skinglow.ru")
	require.NoError(t, err)
	require.Equal(t, "admin-id", admin.ID)
	require.Equal(t, "admin", admin.Name)
	require.True(t, admin.IsAdmin())

	staff, err := session.EmailConvention{Marker: "+staff"}.Authenticate(context.Background(), "olga+staff@skinglow.ru")
	require.NoError(t, err)
	require.True(t, staff.IsAdmin())

	_, err = auth.Authenticate(context.Background(), "  ")
	require.Error(t, err)
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := session.NewManager(session.EmailConvention{}, storage.NewKVGateway(storage.NewMemoryKV()))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, current)

	identity, err := m.Login(ctx, "anna@example.com")
	require.NoError(t, err)

	current, err = m.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, &identity, current)

	require.NoError(t, m.Logout(ctx))
	current, err = m.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, current)
}
