package services

import (
	"context"
	"time"

	"github.com/dhbw-mensa/backend/repository"

	"golang.org/x/sync/errgroup"
)

// Overview holds the counts shown on the chef landing screen.
type Overview struct {
	Dishes      int64 `json:"dishes"`
	Ingredients int64 `json:"ingredients"`
	Menus       int64 `json:"menus"`
	DailyToday  int64 `json:"dailyMenusToday"`
}

type OverviewService struct {
	Dishes      *repository.DishRepository
	Ingredients *repository.IngredientRepository
	Menus       *repository.MenuRepository
	DailyMenus  *repository.DailyMenuRepository
	now         func() time.Time
}

func NewOverviewService(dishes *repository.DishRepository, ingredients *repository.IngredientRepository, menus *repository.MenuRepository, daily *repository.DailyMenuRepository) *OverviewService {
	return &OverviewService{Dishes: dishes, Ingredients: ingredients, Menus: menus, DailyMenus: daily, now: time.Now}
}

// Get runs the four counts concurrently.
func (s *OverviewService) Get(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ov.Dishes, err = s.Dishes.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		ov.Ingredients, err = s.Ingredients.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		ov.Menus, err = s.Menus.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		ov.DailyToday, err = s.DailyMenus.CountOn(ctx, s.now())
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
