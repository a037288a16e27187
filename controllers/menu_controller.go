package controllers

import (
	"net/http"

	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
)

type UploadImageRequest struct {
	Image string `json:"image"`
}

type MenuController struct {
	Menus *services.MenuService
}

func NewMenuController(menus *services.MenuService) *MenuController {
	return &MenuController{Menus: menus}
}

// GET /chef/menus?q=
func (ctl *MenuController) List(c *gin.Context) {
	items, err := ctl.Menus.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /chef/menus
func (ctl *MenuController) Create(c *gin.Context) { ctl.save(c, nil) }

// PUT /chef/menus/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.save(c, &id)
}

func (ctl *MenuController) save(c *gin.Context, id *uint) {
	var req services.MenuInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	menu, err := ctl.Menus.Save(c.Request.Context(), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	status := http.StatusOK
	if id == nil {
		status = http.StatusCreated
	}
	ctl.respondWithAll(c, status, gin.H{"item": menu})
}

// POST /chef/menus/batch
func (ctl *MenuController) Batch(c *gin.Context) {
	var req services.BatchMenuInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	created, err := ctl.Menus.BatchCreate(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.respondWithAll(c, http.StatusCreated, gin.H{"created": created})
}

// POST /chef/menus/:id/image
func (ctl *MenuController) UploadImage(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req UploadImageRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	menu, err := ctl.Menus.UploadImage(c.Request.Context(), id, req.Image)
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.respondWithAll(c, http.StatusOK, gin.H{"item": menu})
}

// DELETE /chef/menus/:id?confirm=true
func (ctl *MenuController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err == nil {
		err = confirmed(c)
	}
	if err == nil {
		err = ctl.Menus.Delete(c.Request.Context(), id)
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	ctl.respondWithAll(c, http.StatusOK, gin.H{})
}

func (ctl *MenuController) respondWithAll(c *gin.Context, status int, data gin.H) {
	items, err := ctl.Menus.List(c.Request.Context(), "")
	if err != nil {
		resp.Error(c, err)
		return
	}
	data["items"] = items
	c.JSON(status, gin.H{"ok": true, "data": data})
}
