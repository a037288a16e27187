//go:build integration
// +build integration

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dhbw-mensa/backend/configs"
	"github.com/dhbw-mensa/backend/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newPostgresEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("mensa"),
		postgres.WithUsername("mensa"),
		postgres.WithPassword("mensa"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := configs.ConnectDB(&configs.Config{DBDriver: "postgres", DBSource: connStr})
	require.NoError(t, err)
	require.NoError(t, configs.Migrate(db))
	return envFromDB(db)
}

func TestPostgresConcurrentRatings(t *testing.T) {
	env := newPostgresEnv(t)
	ctx := context.Background()
	home := newHome(env)
	menu := env.menu(t, env.dish(t, "Flammkuchen"))
	u := env.user(t, "a@student.dhbw-mannheim.de", entity.RoleStudent)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = home.insertRating(ctx, u.ID, menu.ID, RatingInput{Stars: 1 + i%5})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyRated)
	}
	assert.Equal(t, 1, ok)

	n, err := env.ratings.CountByUserAndMenu(ctx, u.ID, menu.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPostgresDishRoundTripAndPlan(t *testing.T) {
	env := newPostgresEnv(t)
	ctx := context.Background()
	dishes := NewDishService(env.dishes, nopLog())

	dish, err := dishes.Save(ctx, nil, DishInput{Name: "Testgericht"})
	require.NoError(t, err)
	got, err := dishes.List(ctx, "Testgericht")
	require.NoError(t, err)
	require.Len(t, got, 1)

	loc := env.location(t, "Mensa am Schloss")
	menu := env.menu(t, dish)
	daily := NewDailyMenuService(env.daily, env.menus, env.locations, nopLog())
	in := DailyMenuInput{LocationID: loc.ID, MenuID: menu.ID, Date: "2025-03-14"}
	_, err = daily.Save(ctx, nil, in)
	require.NoError(t, err)
	_, err = daily.Save(ctx, nil, in)
	assert.ErrorIs(t, err, ErrConflict)

	summaries, err := newHome(env).DailyMenus(ctx, uuid.New(), loc.ID, testDay)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Testgericht", summaries[0].Title)

	assert.ErrorIs(t, dishes.Delete(ctx, dish.ID), ErrInUse)
	menus := NewMenuService(env.menus, env.dishes, NewLocalImageStore(t.TempDir(), "/uploads"), nopLog())
	require.NoError(t, menus.Delete(ctx, menu.ID))
	require.NoError(t, dishes.Delete(ctx, dish.ID))
	got, err = dishes.List(ctx, "Testgericht")
	require.NoError(t, err)
	assert.Empty(t, got)
}
