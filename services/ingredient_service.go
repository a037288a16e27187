package services

import (
	"context"
	"strings"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"
)

type IngredientService struct {
	Repo *repository.IngredientRepository
	log  *logger.Logger
}

func NewIngredientService(repo *repository.IngredientRepository, log *logger.Logger) *IngredientService {
	return &IngredientService{Repo: repo, log: log.With("service", "IngredientService")}
}

// IngredientInput takes nutrition values as numbers or numeric strings; blanks stay empty.
type IngredientInput struct {
	Name          string       `json:"name"`
	Calories      forms.Number `json:"calories"`
	Carbohydrates forms.Number `json:"carbohydrates"`
	Protein       forms.Number `json:"protein"`
	Fat           forms.Number `json:"fat"`
}

func (in IngredientInput) build() (*entity.Ingredient, error) {
	if err := forms.Required("name", in.Name); err != nil {
		return nil, err
	}
	ing := &entity.Ingredient{Name: strings.TrimSpace(in.Name)}
	var err error
	if ing.Calories, err = in.Calories.Optional("calories"); err != nil {
		return nil, err
	}
	if ing.Carbohydrates, err = in.Carbohydrates.Optional("carbohydrates"); err != nil {
		return nil, err
	}
	if ing.Protein, err = in.Protein.Optional("protein"); err != nil {
		return nil, err
	}
	if ing.Fat, err = in.Fat.Optional("fat"); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *IngredientService) List(ctx context.Context, q string) ([]entity.Ingredient, error) {
	items, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(items, q), nil
}

func (s *IngredientService) Save(ctx context.Context, id *uint, in IngredientInput) (*entity.Ingredient, error) {
	ing, err := in.build()
	if err != nil {
		return nil, err
	}

	if id == nil {
		if err := s.Repo.Create(ctx, ing); err != nil {
			return nil, err
		}
		s.log.Info("ingredient created", "ingredient_id", ing.ID)
		return ing, nil
	}

	existing, err := s.Repo.FindByID(ctx, *id)
	if err != nil {
		return nil, lookupErr("ingredient", err)
	}
	ing.Model = existing.Model
	if err := s.Repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *IngredientService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("ingredient")
	}
	s.log.Info("ingredient deleted", "ingredient_id", id)
	return nil
}
