package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const unknownDish = "Unbekannt"

// MenuSummary is one row of the home listing.
type MenuSummary struct {
	DailyMenuID   uint    `json:"dailyMenuId"`
	MenuID        uint    `json:"menuId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"imageUrl"`
	Price         float64 `json:"price"`
	IsVegan       bool    `json:"isVegan"`
	HasSalad      bool    `json:"hasSalad"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	AlreadyRated  bool    `json:"alreadyRated"`
}

// RatingEvent is published after a rating was stored.
type RatingEvent struct {
	Type          string    `json:"type"`
	LocationID    uint      `json:"locationId"`
	Date          string    `json:"date"`
	MenuID        uint      `json:"menuId"`
	Stars         int       `json:"stars"`
	AverageRating float64   `json:"averageRating"`
	RatingCount   int       `json:"ratingCount"`
	At            time.Time `json:"at"`
}

// Channel is the realtime topic for one location and day.
func (e RatingEvent) Channel() string {
	return FeedChannel(e.LocationID, e.Date)
}

func FeedChannel(locationID uint, date string) string {
	return fmt.Sprintf("location:%d:%s", locationID, date)
}

type RatingPublisher interface {
	PublishRating(ctx context.Context, ev RatingEvent)
}

type HomeService struct {
	Daily     *repository.DailyMenuRepository
	Ratings   *repository.RatingRepository
	Roles     *repository.RoleRepository
	Locations *repository.LocationRepository
	Menus     *repository.MenuRepository
	publisher RatingPublisher
	log       *logger.Logger
	now       func() time.Time
}

func NewHomeService(daily *repository.DailyMenuRepository, ratings *repository.RatingRepository, roles *repository.RoleRepository, locations *repository.LocationRepository, menus *repository.MenuRepository, log *logger.Logger) *HomeService {
	return &HomeService{
		Daily:     daily,
		Ratings:   ratings,
		Roles:     roles,
		Locations: locations,
		Menus:     menus,
		log:       log.With("service", "HomeService"),
		now:       time.Now,
	}
}

// SetPublisher wires the realtime feed. Without one ratings are only stored.
func (s *HomeService) SetPublisher(p RatingPublisher) { s.publisher = p }

// AverageStars is the arithmetic mean, 0 for no ratings.
func AverageStars(ratings []entity.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	return float64(sum) / float64(len(ratings))
}

func summarize(row entity.DailyMenu, userID uuid.UUID) MenuSummary {
	m := row.Menu
	title := strings.TrimSpace(m.Dish.Name)
	if title == "" {
		title = unknownDish
	}
	rated := false
	for _, r := range m.Ratings {
		if r.UserID == userID {
			rated = true
			break
		}
	}
	return MenuSummary{
		DailyMenuID:   row.ID,
		MenuID:        m.ID,
		Title:         title,
		Description:   m.Dish.Description,
		ImageURL:      m.ImageURL,
		Price:         m.Price,
		IsVegan:       m.IsVegan,
		HasSalad:      m.HasSalad,
		AverageRating: AverageStars(m.Ratings),
		RatingCount:   len(m.Ratings),
		AlreadyRated:  rated,
	}
}

// DailyMenus lists what a location serves on a day. No rows is an empty list.
func (s *HomeService) DailyMenus(ctx context.Context, userID uuid.UUID, locationID uint, day time.Time) ([]MenuSummary, error) {
	rows, err := s.Daily.FindForHome(ctx, locationID, day)
	if err != nil {
		return nil, err
	}
	out := make([]MenuSummary, 0, len(rows))
	for _, row := range rows {
		if row.Menu.ID == 0 {
			continue
		}
		out = append(out, summarize(row, userID))
	}
	return out, nil
}

// DefaultLocation is the user's preferred location, else the first one.
// It returns 0 when no location exists at all.
func (s *HomeService) DefaultLocation(ctx context.Context, userID uuid.UUID) (uint, error) {
	row, err := s.Roles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if row != nil && row.PreferredLocationID != nil {
		return *row.PreferredLocationID, nil
	}
	locs, err := s.Locations.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(locs) == 0 {
		return 0, nil
	}
	return locs[0].ID, nil
}

// SelectLocation stores the user's preferred location.
func (s *HomeService) SelectLocation(ctx context.Context, userID uuid.UUID, locationID uint) (*entity.Location, error) {
	if err := forms.RequiredID("locationId", locationID); err != nil {
		return nil, err
	}
	loc, err := s.Locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, lookupErr("location", err)
	}
	n, err := s.Roles.SetPreferredLocation(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("role")
	}
	return loc, nil
}

type RatingInput struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// SubmitRating stores one rating per user and menu. The pre-check rejects
// the common case early; a concurrent duplicate is caught by the unique index.
func (s *HomeService) SubmitRating(ctx context.Context, userID uuid.UUID, menuID uint, in RatingInput) (*entity.Rating, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if in.Stars < 1 || in.Stars > 5 {
		return nil, forms.Invalid("stars", "must be between 1 and 5")
	}
	if _, err := s.Menus.FindByID(ctx, menuID); err != nil {
		return nil, lookupErr("menu", err)
	}

	rated, err := s.Ratings.Exists(ctx, userID, menuID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, ErrAlreadyRated
	}
	return s.insertRating(ctx, userID, menuID, in)
}

func (s *HomeService) insertRating(ctx context.Context, userID uuid.UUID, menuID uint, in RatingInput) (*entity.Rating, error) {
	rating := &entity.Rating{
		UserID:  userID,
		MenuID:  menuID,
		Stars:   in.Stars,
		Comment: strings.TrimSpace(in.Comment),
	}
	if err := s.Ratings.Create(ctx, rating); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	s.log.Info("rating stored", "menu_id", menuID, "user_id", userID, "stars", in.Stars)
	s.publish(ctx, rating)
	return rating, nil
}

// publish tells every plan slot of the menu about the new average.
func (s *HomeService) publish(ctx context.Context, rating *entity.Rating) {
	if s.publisher == nil {
		return
	}
	all, err := s.Ratings.FindByMenu(ctx, rating.MenuID)
	if err != nil {
		s.log.Warn("rating event skipped", "menu_id", rating.MenuID, "error", err)
		return
	}
	slots, err := s.Daily.FindByMenu(ctx, rating.MenuID)
	if err != nil {
		s.log.Warn("rating event skipped", "menu_id", rating.MenuID, "error", err)
		return
	}
	avg := AverageStars(all)
	for _, slot := range slots {
		s.publisher.PublishRating(ctx, RatingEvent{
			Type:          "rating.created",
			LocationID:    slot.LocationID,
			Date:          slot.Day(),
			MenuID:        rating.MenuID,
			Stars:         rating.Stars,
			AverageRating: avg,
			RatingCount:   len(all),
			At:            rating.CreatedAt,
		})
	}
}

// Today is the home screen's default date.
func (s *HomeService) Today() time.Time { return s.now() }
