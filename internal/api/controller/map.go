package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/geomap"
)

func (c *Controller) GetMapData(ctx echo.Context) error {
	year := ctx.QueryParams().Get("year")
	if year == "" {
		return constants.NewCodedError(http.StatusBadRequest, "empty year")
	}

	scale := geomap.ScaleContinuous
	if ctx.QueryParams().Get("scale") == string(geomap.ScaleBuckets) {
		scale = geomap.ScaleBuckets
	}

	ind, err := c.indicators.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	values := geomap.DistrictValues(ind.TimeSeries, year)
	min, max, ok := geomap.MinMax(values)

	type response struct {
		IndicatorID string                `json:"indicator_id"`
		Year        string                `json:"year"`
		Scale       geomap.Scale          `json:"scale"`
		Min         float64               `json:"min,omitempty"`
		Max         float64               `json:"max,omitempty"`
		Districts   []geomap.DistrictFill `json:"districts"`
	}

	resp := response{
		IndicatorID: ind.ID,
		Year:        year,
		Scale:       scale,
		Districts:   geomap.Render(c.geometry, values, scale),
	}
	if ok {
		resp.Min, resp.Max = min, max
	}

	return ctx.JSON(http.StatusOK, resp)
}
