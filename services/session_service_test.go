package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhbw-mensa/backend/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRoles struct {
	role entity.Role
	err  error
}

func (s stubRoles) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserRole, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.UserRole{UserID: userID, Role: s.role}, nil
}

func openSession(t *testing.T, roles roleReader) (*SessionService, string) {
	t.Helper()
	svc := NewSessionService(NewMemorySessionStore(), roles, "test-secret", time.Hour, nopLog())
	token, _, err := svc.Open(context.Background(), &entity.User{ID: uuid.New(), Email: "a@b.de"}, entity.RoleGast)
	require.NoError(t, err)
	return svc, token
}

func TestResolveWithoutSession(t *testing.T) {
	svc := NewSessionService(NewMemorySessionStore(), stubRoles{role: entity.RoleKoch}, "test-secret", time.Hour, nopLog())
	assert.Equal(t, AreaLogin, svc.Resolve(context.Background(), ""))
	assert.Equal(t, AreaLogin, svc.Resolve(context.Background(), "garbage"))
}

func TestResolveByStoredRole(t *testing.T) {
	cases := []struct {
		name  string
		roles stubRoles
		want  Area
	}{
		{"koch", stubRoles{role: entity.RoleKoch}, AreaChef},
		{"student", stubRoles{role: entity.RoleStudent}, AreaHome},
		{"dozent", stubRoles{role: entity.RoleDozent}, AreaHome},
		{"gast", stubRoles{role: entity.RoleGast}, AreaHome},
		{"absent", stubRoles{err: gorm.ErrRecordNotFound}, AreaHome},
		{"lookup error", stubRoles{err: errors.New("connection refused")}, AreaHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, token := openSession(t, tc.roles)
			assert.Equal(t, tc.want, svc.Resolve(context.Background(), token))
		})
	}
}

func TestCloseInvalidatesSession(t *testing.T) {
	svc, token := openSession(t, stubRoles{role: entity.RoleKoch})
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, AreaLogin, svc.Resolve(ctx, token))
}

func TestMemorySessionStoreExpires(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Session{ID: "s1", ExpiresAt: now.Add(time.Minute)}))
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
