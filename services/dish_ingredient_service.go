package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"

	"gorm.io/gorm"
)

type DishIngredientService struct {
	Repo        *repository.DishIngredientRepository
	Dishes      *repository.DishRepository
	Ingredients *repository.IngredientRepository
	log         *logger.Logger
}

func NewDishIngredientService(repo *repository.DishIngredientRepository, dishes *repository.DishRepository, ingredients *repository.IngredientRepository, log *logger.Logger) *DishIngredientService {
	return &DishIngredientService{
		Repo:        repo,
		Dishes:      dishes,
		Ingredients: ingredients,
		log:         log.With("service", "DishIngredientService"),
	}
}

type DishIngredientInput struct {
	IngredientID uint         `json:"ingredientId"`
	Quantity     forms.Number `json:"quantity"`
	Unit         string       `json:"unit"`
}

func (in DishIngredientInput) validate(ingredientID uint) (float64, string, error) {
	if err := forms.RequiredID("ingredientId", ingredientID); err != nil {
		return 0, "", err
	}
	qty, err := in.Quantity.NonNegative("quantity")
	if err != nil {
		return 0, "", err
	}
	if err := forms.Required("unit", in.Unit); err != nil {
		return 0, "", err
	}
	return qty, strings.TrimSpace(in.Unit), nil
}

// List returns the ingredients assigned to a dish.
func (s *DishIngredientService) List(ctx context.Context, dishID uint, q string) ([]entity.DishIngredient, error) {
	links, err := s.Repo.FindByDish(ctx, dishID)
	if err != nil {
		return nil, err
	}
	return filterByName(links, q), nil
}

// Save assigns an ingredient when ingredientID is nil (taken from the input)
// and changes quantity and unit of an existing assignment otherwise.
func (s *DishIngredientService) Save(ctx context.Context, dishID uint, ingredientID *uint, in DishIngredientInput) (*entity.DishIngredient, error) {
	target := in.IngredientID
	if ingredientID != nil {
		target = *ingredientID
	}
	qty, unit, err := in.validate(target)
	if err != nil {
		return nil, err
	}

	if ingredientID != nil {
		n, err := s.Repo.Update(ctx, dishID, target, qty, unit)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, notFound("dish ingredient")
		}
		return s.Repo.Find(ctx, dishID, target)
	}

	if _, err := s.Dishes.FindByID(ctx, dishID); err != nil {
		return nil, lookupErr("dish", err)
	}
	if _, err := s.Ingredients.FindByID(ctx, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, forms.Invalid("ingredientId", "does not exist")
		}
		return nil, err
	}

	link := &entity.DishIngredient{DishID: dishID, IngredientID: target, Quantity: qty, Unit: unit}
	if err := s.Repo.Create(ctx, link); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	s.log.Info("ingredient assigned", "dish_id", dishID, "ingredient_id", target)
	return s.Repo.Find(ctx, dishID, target)
}

func (s *DishIngredientService) Delete(ctx context.Context, dishID, ingredientID uint) error {
	n, err := s.Repo.Delete(ctx, dishID, ingredientID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("dish ingredient")
	}
	return nil
}
