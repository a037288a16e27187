package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"
	"github.com/dhbw-mensa/backend/utils"

	"gorm.io/gorm"
)

const maxImageBytes = 10 * 1024 * 1024

type MenuService struct {
	Repo   *repository.MenuRepository
	Dishes *repository.DishRepository
	Images ImageStore
	log    *logger.Logger
}

func NewMenuService(repo *repository.MenuRepository, dishes *repository.DishRepository, images ImageStore, log *logger.Logger) *MenuService {
	return &MenuService{Repo: repo, Dishes: dishes, Images: images, log: log.With("service", "MenuService")}
}

type MenuInput struct {
	DishID   uint         `json:"dishId"`
	Price    forms.Number `json:"price"`
	ImageURL string       `json:"imageUrl"`
	IsVegan  bool         `json:"isVegan"`
	HasSalad bool         `json:"hasSalad"`
}

// BatchMenuInput creates one menu per dish, all sharing price and flags.
type BatchMenuInput struct {
	DishIDs  []uint       `json:"dishIds"`
	Price    forms.Number `json:"price"`
	IsVegan  bool         `json:"isVegan"`
	HasSalad bool         `json:"hasSalad"`
}

func optionalPrice(n forms.Number) (float64, error) {
	if !n.IsSet() {
		return 0, nil
	}
	return n.NonNegative("price")
}

func (s *MenuService) List(ctx context.Context, q string) ([]entity.Menu, error) {
	menus, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(menus, q), nil
}

func (s *MenuService) requireDish(ctx context.Context, id uint) error {
	if _, err := s.Dishes.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return forms.Invalid("dishId", "does not exist")
		}
		return err
	}
	return nil
}

func (s *MenuService) Save(ctx context.Context, id *uint, in MenuInput) (*entity.Menu, error) {
	if err := forms.RequiredID("dishId", in.DishID); err != nil {
		return nil, err
	}
	price, err := optionalPrice(in.Price)
	if err != nil {
		return nil, err
	}
	if err := s.requireDish(ctx, in.DishID); err != nil {
		return nil, err
	}

	menu := &entity.Menu{
		DishID:   in.DishID,
		Price:    price,
		ImageURL: strings.TrimSpace(in.ImageURL),
		IsVegan:  in.IsVegan,
		HasSalad: in.HasSalad,
	}
	if id == nil {
		if err := s.Repo.Create(ctx, menu); err != nil {
			return nil, err
		}
		s.log.Info("menu created", "menu_id", menu.ID)
		return s.Repo.FindByID(ctx, menu.ID)
	}

	if _, err := s.Repo.FindByID(ctx, *id); err != nil {
		return nil, lookupErr("menu", err)
	}
	menu.ID = *id
	if err := s.Repo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, menu.ID)
}

// BatchCreate inserts every menu or none of them.
func (s *MenuService) BatchCreate(ctx context.Context, in BatchMenuInput) ([]entity.Menu, error) {
	if len(in.DishIDs) == 0 {
		return nil, forms.Invalid("dishIds", "select at least one dish")
	}
	price, err := optionalPrice(in.Price)
	if err != nil {
		return nil, err
	}

	menus := make([]entity.Menu, 0, len(in.DishIDs))
	seen := make(map[uint]bool, len(in.DishIDs))
	for _, dishID := range in.DishIDs {
		if err := forms.RequiredID("dishIds", dishID); err != nil {
			return nil, err
		}
		if seen[dishID] {
			continue
		}
		seen[dishID] = true
		if err := s.requireDish(ctx, dishID); err != nil {
			return nil, err
		}
		menus = append(menus, entity.Menu{DishID: dishID, Price: price, IsVegan: in.IsVegan, HasSalad: in.HasSalad})
	}

	if err := s.Repo.CreateBatch(ctx, menus); err != nil {
		return nil, err
	}
	s.log.Info("menus created", "count", len(menus))
	return menus, nil
}

// UploadImage stores a base64 data URL and points the menu at it.
func (s *MenuService) UploadImage(ctx context.Context, id uint, dataURL string) (*entity.Menu, error) {
	if err := forms.Required("image", dataURL); err != nil {
		return nil, err
	}
	if len(dataURL) > maxImageBytes {
		return nil, forms.Invalid("image", "file too large")
	}
	contentType, data, err := utils.DecodeDataURL(dataURL)
	if err != nil {
		return nil, forms.Invalid("image", err.Error())
	}
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, lookupErr("menu", err)
	}

	url, err := s.Images.Save(ctx, imageKey("menus", id, utils.ExtensionFor(contentType)), contentType, data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	if err := s.Repo.UpdateImage(ctx, id, url); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("menu")
	}
	s.log.Info("menu deleted", "menu_id", id)
	return nil
}
