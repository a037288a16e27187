package controllers

import (
	"net/http"

	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	Ingredients *services.IngredientService
}

func NewIngredientController(ingredients *services.IngredientService) *IngredientController {
	return &IngredientController{Ingredients: ingredients}
}

// GET /chef/ingredients?q=
func (ctl *IngredientController) List(c *gin.Context) {
	items, err := ctl.Ingredients.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /chef/ingredients
func (ctl *IngredientController) Create(c *gin.Context) { ctl.save(c, nil) }

// PUT /chef/ingredients/:id
func (ctl *IngredientController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.save(c, &id)
}

func (ctl *IngredientController) save(c *gin.Context, id *uint) {
	var req services.IngredientInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	ing, err := ctl.Ingredients.Save(c.Request.Context(), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Ingredients.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "data": gin.H{"item": ing, "items": items}})
}

// DELETE /chef/ingredients/:id?confirm=true
func (ctl *IngredientController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err == nil {
		err = confirmed(c)
	}
	if err == nil {
		err = ctl.Ingredients.Delete(c.Request.Context(), id)
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Ingredients.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
