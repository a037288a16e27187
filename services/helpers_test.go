package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dhbw-mensa/backend/configs"
	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB

	users       *repository.UserRepository
	roles       *repository.RoleRepository
	locations   *repository.LocationRepository
	dishes      *repository.DishRepository
	ingredients *repository.IngredientRepository
	links       *repository.DishIngredientRepository
	menus       *repository.MenuRepository
	daily       *repository.DailyMenuRepository
	ratings     *repository.RatingRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &configs.Config{DBDriver: "sqlite", DBSource: filepath.Join(t.TempDir(), "mensa_test.db")}
	db, err := configs.ConnectDB(cfg)
	require.NoError(t, err)
	require.NoError(t, configs.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return envFromDB(db)
}

func envFromDB(db *gorm.DB) *testEnv {
	return &testEnv{
		db:          db,
		users:       repository.NewUserRepository(db),
		roles:       repository.NewRoleRepository(db),
		locations:   repository.NewLocationRepository(db),
		dishes:      repository.NewDishRepository(db),
		ingredients: repository.NewIngredientRepository(db),
		links:       repository.NewDishIngredientRepository(db),
		menus:       repository.NewMenuRepository(db),
		daily:       repository.NewDailyMenuRepository(db),
		ratings:     repository.NewRatingRepository(db),
	}
}

func (e *testEnv) location(t *testing.T, name string) *entity.Location {
	t.Helper()
	loc := &entity.Location{Name: name}
	require.NoError(t, e.locations.Create(context.Background(), loc))
	return loc
}

func (e *testEnv) dish(t *testing.T, name string) *entity.Dish {
	t.Helper()
	d := &entity.Dish{Name: name, Description: name + " mit Beilage"}
	require.NoError(t, e.dishes.Create(context.Background(), d))
	return d
}

func (e *testEnv) menu(t *testing.T, dish *entity.Dish) *entity.Menu {
	t.Helper()
	m := &entity.Menu{DishID: dish.ID, Price: 4.5, IsVegan: true}
	require.NoError(t, e.menus.Create(context.Background(), m))
	return m
}

func (e *testEnv) plan(t *testing.T, loc *entity.Location, menu *entity.Menu, day time.Time) *entity.DailyMenu {
	t.Helper()
	row := &entity.DailyMenu{LocationID: loc.ID, MenuID: menu.ID, Date: repository.Day(day)}
	require.NoError(t, e.daily.Create(context.Background(), row))
	return row
}

func (e *testEnv) user(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x"}
	require.NoError(t, e.users.Create(context.Background(), u))
	if role != "" {
		_, err := e.roles.EnsureRole(context.Background(), u.ID, role)
		require.NoError(t, err)
	}
	return u
}

func (e *testEnv) rate(t *testing.T, menu *entity.Menu, stars int) {
	t.Helper()
	u := e.user(t, uuid.NewString()+"@example.com", entity.RoleGast)
	require.NoError(t, e.ratings.Create(context.Background(), &entity.Rating{UserID: u.ID, MenuID: menu.ID, Stars: stars}))
}

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *recordingMailer) SendResetCode(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[to] = code
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []RatingEvent
}

func (p *recordingPublisher) PublishRating(_ context.Context, ev RatingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func nopLog() *logger.Logger { return logger.Nop() }

var testDay = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func jsonUnmarshal(s string, v any) error { return json.Unmarshal([]byte(s), v) }

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
