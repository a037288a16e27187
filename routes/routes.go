package routes

import (
	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/middlewares"

	"github.com/gin-gonic/gin"
)

const uploadsPath = "/uploads"

// NewRouter builds the engine with middleware and all routes.
func NewRouter(d *Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(d.Config.CORSOrigins))
	r.Static(uploadsPath, d.Config.UploadDir)

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d *Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	signedIn := middlewares.AuthMiddleware(d.Sessions)
	chefOnly := middlewares.AuthMiddleware(d.Sessions, entity.RoleKoch)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", d.Auth.Register)
		a.POST("/login", d.Auth.Login)
		a.POST("/forgot-password", d.Auth.ForgotPassword)
		a.POST("/reset-password", d.Auth.ResetPassword)
	}

	// Auth (protected)
	aAuth := a.Group("", signedIn)
	{
		aAuth.POST("/logout", d.Auth.Logout)
		aAuth.GET("/session", d.Auth.Session)
	}

	r.GET("/session/resolve", d.Auth.Resolve)
	r.GET("/locations", d.Home.ListLocations)

	// Home (any signed-in role)
	home := r.Group("/home", signedIn)
	{
		home.GET("/menus", d.Home.Menus)
		home.POST("/menus/:menuId/ratings", d.Home.Rate)
		home.PUT("/location", d.Home.SelectLocation)
	}
	r.GET("/home/feed", middlewares.WSAuthMiddleware(d.Sessions), d.Hub.HandleFeed)

	// Chef (Koch only)
	chef := r.Group("/chef", chefOnly)
	{
		chef.GET("/overview", d.Overview.Get)

		chef.GET("/dishes", d.Dishes.List)
		chef.POST("/dishes", d.Dishes.Create)
		chef.PUT("/dishes/:id", d.Dishes.Update)
		chef.DELETE("/dishes/:id", d.Dishes.Delete)

		chef.GET("/dishes/:id/ingredients", d.DishIngredients.List)
		chef.POST("/dishes/:id/ingredients", d.DishIngredients.Create)
		chef.PUT("/dishes/:id/ingredients/:ingredientId", d.DishIngredients.Update)
		chef.DELETE("/dishes/:id/ingredients/:ingredientId", d.DishIngredients.Delete)

		chef.GET("/ingredients", d.Ingredients.List)
		chef.POST("/ingredients", d.Ingredients.Create)
		chef.PUT("/ingredients/:id", d.Ingredients.Update)
		chef.DELETE("/ingredients/:id", d.Ingredients.Delete)

		chef.GET("/menus", d.Menus.List)
		chef.POST("/menus", d.Menus.Create)
		chef.POST("/menus/batch", d.Menus.Batch)
		chef.PUT("/menus/:id", d.Menus.Update)
		chef.POST("/menus/:id/image", d.Menus.UploadImage)
		chef.DELETE("/menus/:id", d.Menus.Delete)

		chef.GET("/daily-menus", d.DailyMenus.List)
		chef.POST("/daily-menus", d.DailyMenus.Create)
		chef.PUT("/daily-menus/:id", d.DailyMenus.Update)
		chef.DELETE("/daily-menus/:id", d.DailyMenus.Delete)
	}
}
