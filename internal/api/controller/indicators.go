package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
)

func (c *Controller) ListIndicators(ctx echo.Context) error {
	indicators, err := c.indicators.List(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}

func (c *Controller) GetIndicator(ctx echo.Context) error {
	ind, err := c.indicators.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ind)
}

func (c *Controller) UpdateIndicator(ctx echo.Context) error {
	var ind domain.Indicator
	if err := ctx.Bind(&ind); err != nil {
		return err
	}

	if ind.ID != "" && ind.ID != ctx.Param("id") {
		return constants.NewCodedError(http.StatusBadRequest, "id in body does not match path")
	}
	ind.ID = ctx.Param("id")

	updated, err := c.indicators.Update(ctx.Request().Context(), &ind)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, updated)
}

func (c *Controller) ListDomains(ctx echo.Context) error {
	domains, err := c.indicators.ListDomains(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, domains)
}
