package services

import (
	"context"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/repository"
)

type LocationService struct {
	Repo *repository.LocationRepository
}

func NewLocationService(repo *repository.LocationRepository) *LocationService {
	return &LocationService{Repo: repo}
}

func (s *LocationService) List(ctx context.Context) ([]entity.Location, error) {
	return s.Repo.FindAll(ctx)
}

func (s *LocationService) Get(ctx context.Context, id uint) (*entity.Location, error) {
	loc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr("location", err)
	}
	return loc, nil
}
