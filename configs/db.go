package configs

import (
	"fmt"

	"github.com/dhbw-mensa/backend/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the configured database. Constraint errors are translated
// to gorm.ErrDuplicatedKey so repositories can detect conflicts.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Migrate the schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Location{},
		&entity.UserRole{},
		&entity.Dish{},
		&entity.Ingredient{},
		&entity.DishIngredient{},
		&entity.Menu{},
		&entity.DailyMenu{},
		&entity.Rating{},
	)
}
