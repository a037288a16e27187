package services

import (
	"context"
	"testing"
	"time"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthService, *testEnv, *recordingMailer) {
	t.Helper()
	env := newTestEnv(t)
	mailer := &recordingMailer{}
	sessions := NewSessionService(NewMemorySessionStore(), env.roles, "test-secret", time.Hour, nopLog())
	return NewAuthService(env.users, env.roles, sessions, mailer, 15*time.Minute, nopLog()), env, mailer
}

func TestRegisterInfersRole(t *testing.T) {
	auth, env, _ := newAuth(t)
	ctx := context.Background()

	user, role, err := auth.Register(ctx, RegisterInput{
		Email:          "Anna@Student.DHBW-Mannheim.de",
		Password:       "geheim123",
		PasswordRepeat: "geheim123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, role)
	assert.Equal(t, "anna@student.dhbw-mannheim.de", user.Email)

	row, err := env.roles.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, row.Role)
}

func TestRegisterValidation(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, RegisterInput{Email: "a@b.de", Password: "geheim123", PasswordRepeat: "anders123"})
	assert.True(t, forms.IsValidation(err))

	_, _, err = auth.Register(ctx, RegisterInput{Email: "a@b.de", Password: "kurz", PasswordRepeat: "kurz"})
	assert.True(t, forms.IsValidation(err))

	_, _, err = auth.Register(ctx, RegisterInput{Email: "kein-at", Password: "geheim123", PasswordRepeat: "geheim123"})
	assert.True(t, forms.IsValidation(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	in := RegisterInput{Email: "koch@mensa.de", Password: "geheim123", PasswordRepeat: "geheim123"}

	_, _, err := auth.Register(ctx, in)
	require.NoError(t, err)
	_, _, err = auth.Register(ctx, in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginOpensSession(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	_, _, err := auth.Register(ctx, RegisterInput{Email: "koch@mensa.de", Password: "geheim123", PasswordRepeat: "geheim123"})
	require.NoError(t, err)

	res, err := auth.Login(ctx, "KOCH@mensa.de", "geheim123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, entity.RoleKoch, res.Role)
	assert.Equal(t, AreaChef, res.Area)

	sess, err := auth.sessions.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, sess.UserID)

	require.NoError(t, auth.Logout(ctx, res.Token))
	_, err = auth.sessions.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	_, _, err := auth.Register(ctx, RegisterInput{Email: "a@b.de", Password: "geheim123", PasswordRepeat: "geheim123"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@b.de", "falsch")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "nobody@b.de", "geheim123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBackfillsMissingRole(t *testing.T) {
	auth, env, _ := newAuth(t)
	ctx := context.Background()
	_, _, err := auth.Register(ctx, RegisterInput{Email: "prof@dhbw-mannheim.de", Password: "geheim123", PasswordRepeat: "geheim123"})
	require.NoError(t, err)
	require.NoError(t, env.db.Where("1 = 1").Delete(&entity.UserRole{}).Error)

	res, err := auth.Login(ctx, "prof@dhbw-mannheim.de", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDozent, res.Role)

	var count int64
	require.NoError(t, env.db.Model(&entity.UserRole{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureRoleNeverOverwrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.user(t, "x@mensa.de", entity.RoleKoch)

	inserted, err := env.roles.EnsureRole(ctx, u.ID, entity.RoleGast)
	require.NoError(t, err)
	assert.False(t, inserted)

	row, err := env.roles.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleKoch, row.Role)
}

func TestPasswordReset(t *testing.T) {
	auth, _, mailer := newAuth(t)
	ctx := context.Background()
	_, _, err := auth.Register(ctx, RegisterInput{Email: "a@b.de", Password: "geheim123", PasswordRepeat: "geheim123"})
	require.NoError(t, err)

	require.NoError(t, auth.ForgotPassword(ctx, "a@b.de"))
	code := mailer.codes["a@b.de"]
	require.Len(t, code, resetCodeLength)

	err = auth.ResetPassword(ctx, ResetPasswordInput{Code: "WRONG123", Password: "neuesPw1", PasswordRepeat: "neuesPw1"})
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	require.NoError(t, auth.ResetPassword(ctx, ResetPasswordInput{Code: code, Password: "neuesPw1", PasswordRepeat: "neuesPw1"}))

	_, err = auth.Login(ctx, "a@b.de", "neuesPw1")
	require.NoError(t, err)

	err = auth.ResetPassword(ctx, ResetPasswordInput{Code: code, Password: "nochmal1", PasswordRepeat: "nochmal1"})
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	auth, _, mailer := newAuth(t)
	require.NoError(t, auth.ForgotPassword(context.Background(), "nobody@b.de"))
	assert.Empty(t, mailer.codes)
}

func TestResetCodeExpires(t *testing.T) {
	auth, _, mailer := newAuth(t)
	ctx := context.Background()
	auth.resetTTL = -time.Minute
	_, _, err := auth.Register(ctx, RegisterInput{Email: "a@b.de", Password: "geheim123", PasswordRepeat: "geheim123"})
	require.NoError(t, err)
	require.NoError(t, auth.ForgotPassword(ctx, "a@b.de"))

	err = auth.ResetPassword(ctx, ResetPasswordInput{Code: mailer.codes["a@b.de"], Password: "neuesPw1", PasswordRepeat: "neuesPw1"})
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}
