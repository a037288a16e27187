package routes

import (
	"github.com/dhbw-mensa/backend/configs"
	"github.com/dhbw-mensa/backend/controllers"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/repository"
	"github.com/dhbw-mensa/backend/services"
	"github.com/dhbw-mensa/backend/ws"

	"gorm.io/gorm"
)

// Externals are the optional outside services. Nil fields get local stand-ins.
type Externals struct {
	SessionStore services.SessionStore
	Mailer       services.Mailer
	Images       services.ImageStore
	Bus          ws.Bus
}

type Deps struct {
	Config *configs.Config
	Log    *logger.Logger

	Sessions  *services.SessionService
	Hub       *ws.FeedHub
	Publisher *ws.Publisher

	Auth            *controllers.AuthController
	Home            *controllers.HomeController
	Dishes          *controllers.DishController
	Ingredients     *controllers.IngredientController
	DishIngredients *controllers.DishIngredientController
	Menus           *controllers.MenuController
	DailyMenus      *controllers.DailyMenuController
	Overview        *controllers.OverviewController
}

func NewDeps(db *gorm.DB, cfg *configs.Config, log *logger.Logger, ext Externals) *Deps {
	if ext.SessionStore == nil {
		ext.SessionStore = services.NewMemorySessionStore()
	}
	if ext.Mailer == nil {
		ext.Mailer = services.NewLogMailer(log)
	}
	if ext.Images == nil {
		ext.Images = services.NewLocalImageStore(cfg.UploadDir, uploadsPath)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	dishRepo := repository.NewDishRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	linkRepo := repository.NewDishIngredientRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	dailyRepo := repository.NewDailyMenuRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Services
	sessions := services.NewSessionService(ext.SessionStore, roleRepo, cfg.JWTSecret, cfg.JWTTTL, log)
	authSvc := services.NewAuthService(userRepo, roleRepo, sessions, ext.Mailer, cfg.ResetTokenTTL, log)
	homeSvc := services.NewHomeService(dailyRepo, ratingRepo, roleRepo, locationRepo, menuRepo, log)
	hub := ws.NewFeedHub(log)
	publisher := ws.NewPublisher(hub, ext.Bus, log)
	homeSvc.SetPublisher(publisher)

	return &Deps{
		Config:    cfg,
		Log:       log,
		Sessions:  sessions,
		Hub:       hub,
		Publisher: publisher,

		Auth:            controllers.NewAuthController(authSvc, sessions),
		Home:            controllers.NewHomeController(homeSvc, services.NewLocationService(locationRepo)),
		Dishes:          controllers.NewDishController(services.NewDishService(dishRepo, log)),
		Ingredients:     controllers.NewIngredientController(services.NewIngredientService(ingredientRepo, log)),
		DishIngredients: controllers.NewDishIngredientController(services.NewDishIngredientService(linkRepo, dishRepo, ingredientRepo, log)),
		Menus:           controllers.NewMenuController(services.NewMenuService(menuRepo, dishRepo, ext.Images, log)),
		DailyMenus:      controllers.NewDailyMenuController(services.NewDailyMenuService(dailyRepo, menuRepo, locationRepo, log)),
		Overview:        controllers.NewOverviewController(services.NewOverviewService(dishRepo, ingredientRepo, menuRepo, dailyRepo)),
	}
}
