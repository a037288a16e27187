package configs

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedFile struct {
	Locations []string `yaml:"locations"`
}

func ParseSeed(raw []byte) (*SeedFile, error) {
	var sf SeedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &sf, nil
}

// SeedLocations inserts every location not yet present. raw may be nil for the built-in list.
func SeedLocations(db *gorm.DB, log *logger.Logger, raw []byte) error {
	if raw == nil {
		raw = defaultSeed
	}
	sf, err := ParseSeed(raw)
	if err != nil {
		return err
	}
	for _, name := range sf.Locations {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := db.FirstOrCreate(&entity.Location{}, entity.Location{Name: name}).Error; err != nil {
			return fmt.Errorf("seed location %q: %w", name, err)
		}
	}
	log.Info("Locations seeded", "count", len(sf.Locations))
	return nil
}

// SeedChef creates the first Koch account from CHEF_EMAIL/CHEF_PASSWORD.
func SeedChef(db *gorm.DB, log *logger.Logger, cfg *Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.ChefEmail))
	if email == "" || cfg.ChefPassword == "" {
		log.Warn("skip seeding chef: missing CHEF_EMAIL/CHEF_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("chef already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.ChefPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		chef := entity.User{Email: email, Password: string(hash)}
		if err := tx.Create(&chef).Error; err != nil {
			return err
		}
		return tx.Create(&entity.UserRole{UserID: chef.ID, Role: entity.RoleKoch}).Error
	})
}
