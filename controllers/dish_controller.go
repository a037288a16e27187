package controllers

import (
	"net/http"

	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
)

type DishController struct {
	Dishes *services.DishService
}

func NewDishController(dishes *services.DishService) *DishController {
	return &DishController{Dishes: dishes}
}

// GET /chef/dishes?q=
func (ctl *DishController) List(c *gin.Context) {
	items, err := ctl.Dishes.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /chef/dishes
func (ctl *DishController) Create(c *gin.Context) { ctl.save(c, nil) }

// PUT /chef/dishes/:id
func (ctl *DishController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.save(c, &id)
}

func (ctl *DishController) save(c *gin.Context, id *uint) {
	var req services.DishInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	dish, err := ctl.Dishes.Save(c.Request.Context(), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Dishes.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "data": gin.H{"item": dish, "items": items}})
}

// DELETE /chef/dishes/:id?confirm=true
func (ctl *DishController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err == nil {
		err = confirmed(c)
	}
	if err == nil {
		err = ctl.Dishes.Delete(c.Request.Context(), id)
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Dishes.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
