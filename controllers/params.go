package controllers

import (
	"strconv"

	"github.com/dhbw-mensa/backend/pkg/forms"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, forms.Invalid(name, "must be a positive number")
	}
	return uint(id), nil
}

// confirmed guards deletes: the client must send ?confirm=true.
func confirmed(c *gin.Context) error {
	if ok, _ := strconv.ParseBool(c.Query("confirm")); !ok {
		return forms.Invalid("confirm", "delete must be confirmed with confirm=true")
	}
	return nil
}

func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return forms.Invalid("body", err.Error())
	}
	return nil
}
