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
)

type DishService struct {
	Repo *repository.DishRepository
	log  *logger.Logger
}

func NewDishService(repo *repository.DishRepository, log *logger.Logger) *DishService {
	return &DishService{Repo: repo, log: log.With("service", "DishService")}
}

type DishInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in DishInput) validate() error {
	return forms.Required("name", in.Name)
}

func (s *DishService) List(ctx context.Context, q string) ([]entity.Dish, error) {
	dishes, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByName(dishes, q), nil
}

// Save creates a dish when id is nil and updates it otherwise.
func (s *DishService) Save(ctx context.Context, id *uint, in DishInput) (*entity.Dish, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	desc := strings.TrimSpace(in.Description)

	if id == nil {
		dish := &entity.Dish{Name: name, Description: desc}
		if err := s.Repo.Create(ctx, dish); err != nil {
			return nil, err
		}
		s.log.Info("dish created", "dish_id", dish.ID)
		return dish, nil
	}

	dish, err := s.Repo.FindByID(ctx, *id)
	if err != nil {
		return nil, lookupErr("dish", err)
	}
	dish.Name, dish.Description = name, desc
	if err := s.Repo.Update(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *DishService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrInUse) {
		return fmt.Errorf("%w: dish is still on a menu, delete those menus first", ErrInUse)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("dish")
	}
	s.log.Info("dish deleted", "dish_id", id)
	return nil
}
