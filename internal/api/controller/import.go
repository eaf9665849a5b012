package controller

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
)

func (c *Controller) ImportCSV(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return constants.NewCodedError(http.StatusBadRequest, "missing file upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return constants.NewCodedError(http.StatusBadRequest, "failed to open upload")
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return constants.NewCodedError(http.StatusBadRequest, "failed to read upload")
	}

	report, err := c.indicators.ImportCSV(ctx.Request().Context(), string(data))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}
