package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"github.com/spf13/viper"
)

func (c *Controller) BackfillPolicies(ctx echo.Context) error {
	url := ctx.QueryParams().Get("url")
	if url == "" {
		url = viper.GetString(constants.ViperPolicySource)
	}
	if url == "" {
		return constants.NewCodedError(http.StatusBadRequest, "no policy catalog url configured")
	}

	updated, err := c.policies.BackfillPolicies(ctx.Request().Context(), url)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{"updated": updated})
}
