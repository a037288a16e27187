package controllers

import (
	"net/http"

	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
)

type DishIngredientController struct {
	Links *services.DishIngredientService
}

func NewDishIngredientController(links *services.DishIngredientService) *DishIngredientController {
	return &DishIngredientController{Links: links}
}

// GET /chef/dishes/:id/ingredients?q=
func (ctl *DishIngredientController) List(c *gin.Context) {
	dishID, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Links.List(c.Request.Context(), dishID, c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /chef/dishes/:id/ingredients
func (ctl *DishIngredientController) Create(c *gin.Context) {
	dishID, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.save(c, dishID, nil)
}

// PUT /chef/dishes/:id/ingredients/:ingredientId
func (ctl *DishIngredientController) Update(c *gin.Context) {
	dishID, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ingID, err := idParam(c, "ingredientId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.save(c, dishID, &ingID)
}

func (ctl *DishIngredientController) save(c *gin.Context, dishID uint, ingredientID *uint) {
	var req services.DishIngredientInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	link, err := ctl.Links.Save(c.Request.Context(), dishID, ingredientID, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Links.List(c.Request.Context(), dishID, "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	status := http.StatusOK
	if ingredientID == nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "data": gin.H{"item": link, "items": items}})
}

// DELETE /chef/dishes/:id/ingredients/:ingredientId?confirm=true
func (ctl *DishIngredientController) Delete(c *gin.Context) {
	dishID, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ingID, err := idParam(c, "ingredientId")
	if err == nil {
		err = confirmed(c)
	}
	if err == nil {
		err = ctl.Links.Delete(c.Request.Context(), dishID, ingID)
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Links.List(c.Request.Context(), dishID, "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
