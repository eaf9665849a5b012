package controller

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) ExportCSV(ctx echo.Context) error {
	id := ctx.Param("id")
	csv, err := c.indicators.ExportCSV(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.csv"`, id))
	return ctx.Blob(http.StatusOK, "text/csv", []byte(csv))
}
