package controllers

import (
	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
)

type OverviewController struct {
	Overview *services.OverviewService
}

func NewOverviewController(overview *services.OverviewService) *OverviewController {
	return &OverviewController{Overview: overview}
}

// GET /chef/overview
func (ctl *OverviewController) Get(c *gin.Context) {
	ov, err := ctl.Overview.Get(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ov)
}
