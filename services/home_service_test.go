package services

import (
	"context"
	"testing"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHome(env *testEnv) *HomeService {
	return NewHomeService(env.daily, env.ratings, env.roles, env.locations, env.menus, nopLog())
}

func TestAverageStars(t *testing.T) {
	assert.Equal(t, 0.0, AverageStars(nil))
	assert.Equal(t, 4.0, AverageStars([]entity.Rating{{Stars: 5}, {Stars: 4}, {Stars: 3}}))
	assert.Equal(t, 2.5, AverageStars([]entity.Rating{{Stars: 2}, {Stars: 3}}))
}

func TestDailyMenusEmpty(t *testing.T) {
	env := newTestEnv(t)
	loc := env.location(t, "Mensa am Schloss")

	got, err := newHome(env).DailyMenus(context.Background(), uuid.New(), loc.ID, testDay)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDailyMenusJoinsRatings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	loc := env.location(t, "Mensa am Schloss")
	other := env.location(t, "Hochschule Mannheim")
	menu := env.menu(t, env.dish(t, "Käsespätzle"))
	env.plan(t, loc, menu, testDay)
	env.plan(t, other, menu, testDay)
	env.plan(t, loc, env.menu(t, env.dish(t, "Linsen")), testDay.AddDate(0, 0, 1))

	env.rate(t, menu, 5)
	env.rate(t, menu, 4)
	me := env.user(t, "me@student.dhbw-mannheim.de", entity.RoleStudent)
	require.NoError(t, env.ratings.Create(ctx, &entity.Rating{UserID: me.ID, MenuID: menu.ID, Stars: 3}))

	got, err := newHome(env).DailyMenus(ctx, me.ID, loc.ID, testDay)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Käsespätzle", got[0].Title)
	assert.Equal(t, 4.0, got[0].AverageRating)
	assert.Equal(t, 3, got[0].RatingCount)
	assert.True(t, got[0].AlreadyRated)
	assert.True(t, got[0].IsVegan)

	stranger, err := newHome(env).DailyMenus(ctx, uuid.New(), loc.ID, testDay)
	require.NoError(t, err)
	require.Len(t, stranger, 1)
	assert.False(t, stranger[0].AlreadyRated)
}

func TestSubmitRatingOncePerMenu(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	home := newHome(env)
	menu := env.menu(t, env.dish(t, "Currywurst"))
	u := env.user(t, "a@b.de", entity.RoleGast)

	_, err := home.SubmitRating(ctx, u.ID, menu.ID, RatingInput{Stars: 4, Comment: " lecker "})
	require.NoError(t, err)

	_, err = home.SubmitRating(ctx, u.ID, menu.ID, RatingInput{Stars: 1})
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.Contains(t, err.Error(), "already rated")

	n, err := env.ratings.CountByUserAndMenu(ctx, u.ID, menu.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestConcurrentRatingCaughtByConstraint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	home := newHome(env)
	menu := env.menu(t, env.dish(t, "Currywurst"))
	u := env.user(t, "a@b.de", entity.RoleGast)

	// both requests pass the pre-check before either inserts
	first, err := env.ratings.Exists(ctx, u.ID, menu.ID)
	require.NoError(t, err)
	second, err := env.ratings.Exists(ctx, u.ID, menu.ID)
	require.NoError(t, err)
	require.False(t, first)
	require.False(t, second)

	_, err = home.insertRating(ctx, u.ID, menu.ID, RatingInput{Stars: 5})
	require.NoError(t, err)
	_, err = home.insertRating(ctx, u.ID, menu.ID, RatingInput{Stars: 2})
	assert.ErrorIs(t, err, ErrAlreadyRated)

	n, err := env.ratings.CountByUserAndMenu(ctx, u.ID, menu.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSubmitRatingValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	home := newHome(env)
	menu := env.menu(t, env.dish(t, "Currywurst"))

	_, err := home.SubmitRating(ctx, uuid.Nil, menu.ID, RatingInput{Stars: 3})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	for _, stars := range []int{0, 6, -1} {
		_, err = home.SubmitRating(ctx, uuid.New(), menu.ID, RatingInput{Stars: stars})
		assert.True(t, forms.IsValidation(err), "stars=%d", stars)
	}

	_, err = home.SubmitRating(ctx, uuid.New(), menu.ID+100, RatingInput{Stars: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRatingPublishesPerSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	home := newHome(env)
	pub := &recordingPublisher{}
	home.SetPublisher(pub)

	loc := env.location(t, "Mensa am Schloss")
	menu := env.menu(t, env.dish(t, "Currywurst"))
	env.plan(t, loc, menu, testDay)
	env.rate(t, menu, 2)
	u := env.user(t, "a@b.de", entity.RoleGast)

	_, err := home.SubmitRating(ctx, u.ID, menu.ID, RatingInput{Stars: 4})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, "rating.created", ev.Type)
	assert.Equal(t, FeedChannel(loc.ID, "2025-03-14"), ev.Channel())
	assert.Equal(t, 3.0, ev.AverageRating)
	assert.Equal(t, 2, ev.RatingCount)
}

func TestSelectAndDefaultLocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	home := newHome(env)
	first := env.location(t, "A-Mensa")
	second := env.location(t, "B-Mensa")
	u := env.user(t, "a@b.de", entity.RoleGast)

	id, err := home.DefaultLocation(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)

	_, err = home.SelectLocation(ctx, u.ID, second.ID)
	require.NoError(t, err)
	id, err = home.DefaultLocation(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, id)

	_, err = home.SelectLocation(ctx, u.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
