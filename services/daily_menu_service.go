package services

import (
	"context"
	"errors"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"

	"gorm.io/gorm"
)

type DailyMenuService struct {
	Repo      *repository.DailyMenuRepository
	Menus     *repository.MenuRepository
	Locations *repository.LocationRepository
	log       *logger.Logger
}

func NewDailyMenuService(repo *repository.DailyMenuRepository, menus *repository.MenuRepository, locations *repository.LocationRepository, log *logger.Logger) *DailyMenuService {
	return &DailyMenuService{
		Repo:      repo,
		Menus:     menus,
		Locations: locations,
		log:       log.With("service", "DailyMenuService"),
	}
}

type DailyMenuInput struct {
	LocationID uint   `json:"locationId"`
	MenuID     uint   `json:"menuId"`
	Date       string `json:"date"`
}

func (in DailyMenuInput) build() (*entity.DailyMenu, error) {
	if err := forms.First(
		forms.RequiredID("locationId", in.LocationID),
		forms.RequiredID("menuId", in.MenuID),
	); err != nil {
		return nil, err
	}
	day, err := forms.Date("date", in.Date)
	if err != nil {
		return nil, err
	}
	return &entity.DailyMenu{LocationID: in.LocationID, MenuID: in.MenuID, Date: repository.Day(day)}, nil
}

func (s *DailyMenuService) List(ctx context.Context, q string) ([]entity.DailyMenu, error) {
	rows, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(rows, q), nil
}

func (s *DailyMenuService) checkRefs(ctx context.Context, row *entity.DailyMenu) error {
	if _, err := s.Locations.FindByID(ctx, row.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return forms.Invalid("locationId", "does not exist")
		}
		return err
	}
	if _, err := s.Menus.FindByID(ctx, row.MenuID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return forms.Invalid("menuId", "does not exist")
		}
		return err
	}
	return nil
}

// Save puts a menu on a location's plan. The same (location, date, menu)
// twice is a conflict.
func (s *DailyMenuService) Save(ctx context.Context, id *uint, in DailyMenuInput) (*entity.DailyMenu, error) {
	row, err := in.build()
	if err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, row); err != nil {
		return nil, err
	}

	if id == nil {
		err = s.Repo.Create(ctx, row)
	} else {
		row.ID = *id
		var n int64
		n, err = s.Repo.Update(ctx, row)
		if err == nil && n == 0 {
			return nil, notFound("daily menu")
		}
	}
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	s.log.Info("daily menu saved", "daily_menu_id", row.ID, "location_id", row.LocationID, "date", row.Day())
	return s.Repo.FindByID(ctx, row.ID)
}

func (s *DailyMenuService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("daily menu")
	}
	return nil
}
