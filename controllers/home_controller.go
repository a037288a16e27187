package controllers

import (
	"strconv"
	"time"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"
	"github.com/dhbw-mensa/backend/utils"

	"github.com/gin-gonic/gin"
)

type SelectLocationRequest struct {
	LocationID uint `json:"locationId"`
}

type HomeController struct {
	Home      *services.HomeService
	Locations *services.LocationService
}

func NewHomeController(home *services.HomeService, locations *services.LocationService) *HomeController {
	return &HomeController{Home: home, Locations: locations}
}

// GET /locations
func (h *HomeController) ListLocations(c *gin.Context) {
	locs, err := h.Locations.List(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": locs})
}

// planQuery reads locationId and date, falling back to the preferred location and today.
func (h *HomeController) planQuery(c *gin.Context) (uint, time.Time, error) {
	var locID uint
	if raw := c.Query("locationId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, time.Time{}, forms.Invalid("locationId", "must be a number")
		}
		locID = uint(id)
	} else {
		id, err := h.Home.DefaultLocation(c.Request.Context(), utils.CurrentUserID(c))
		if err != nil {
			return 0, time.Time{}, err
		}
		locID = id
	}

	day := h.Home.Today()
	if raw := c.Query("date"); raw != "" {
		d, err := forms.Date("date", raw)
		if err != nil {
			return 0, time.Time{}, err
		}
		day = d
	}
	return locID, day, nil
}

// GET /home/menus?locationId=&date=
func (h *HomeController) Menus(c *gin.Context) {
	locID, day, err := h.planQuery(c)
	if err != nil {
		resp.Error(c, err)
		return
	}
	items, err := h.Home.DailyMenus(c.Request.Context(), utils.CurrentUserID(c), locID, day)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"locationId": locID, "date": day.Format(entity.DateLayout), "items": items})
}

// POST /home/menus/:menuId/ratings
func (h *HomeController) Rate(c *gin.Context) {
	menuID, err := idParam(c, "menuId")
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req services.RatingInput
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}

	userID := utils.CurrentUserID(c)
	rating, err := h.Home.SubmitRating(c.Request.Context(), userID, menuID, req)
	if err != nil {
		resp.Error(c, err)
		return
	}

	out := gin.H{"rating": rating}
	if c.Query("locationId") != "" {
		locID, day, err := h.planQuery(c)
		if err != nil {
			resp.Error(c, err)
			return
		}
		items, err := h.Home.DailyMenus(c.Request.Context(), userID, locID, day)
		if err != nil {
			resp.Error(c, err)
			return
		}
		out["items"] = items
	}
	resp.Created(c, out)
}

// PUT /home/location
func (h *HomeController) SelectLocation(c *gin.Context) {
	var req SelectLocationRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Error(c, err)
		return
	}
	loc, err := h.Home.SelectLocation(c.Request.Context(), utils.CurrentUserID(c), req.LocationID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, loc)
}
