package controllers

import (
	"net/http"

	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
)

type DailyMenuController struct {
	Daily *services.DailyMenuService
}

func NewDailyMenuController(daily *services.DailyMenuService) *DailyMenuController {
	return &DailyMenuController{Daily: daily}
}

// GET /chef/daily-menus?q=
func (ctl *DailyMenuController) List(c *gin.Context) {
	items, err := ctl.Daily.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /chef/daily-menus
func (ctl *DailyMenuController) Create(c *gin.Context) { ctl.save(c, nil) }

// PUT /chef/daily-menus/:id
func (ctl *DailyMenuController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.save(c, &id)
}

func (ctl *DailyMenuController) save(c *gin.Context, id *uint) {
	var req services.DailyMenuInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	row, err := ctl.Daily.Save(c.Request.Context(), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Daily.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"ok": true, "data": gin.H{"item": row, "items": items}})
}

// DELETE /chef/daily-menus/:id?confirm=true
func (ctl *DailyMenuController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err == nil {
		err = confirmed(c)
	}
	if err == nil {
		err = ctl.Daily.Delete(c.Request.Context(), id)
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := ctl.Daily.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
