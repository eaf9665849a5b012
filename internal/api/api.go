package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/maxtwis/sdh-dashboard/internal/api/controller"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/logger"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/store"
	"github.com/maxtwis/sdh-dashboard/internal/service/indicator"
	"github.com/maxtwis/sdh-dashboard/internal/service/policy"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/viper"
)

type APIService struct {
	router            *echo.Echo
	indicatorsService *indicator.Service
	policyService     *policy.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store, geometry *geojson.FeatureCollection) (*APIService, error) {
	svc := &APIService{router: echo.New()}
	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.INFO)

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.Use(RequestIDMiddleware)
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{viper.GetString(constants.ViperCORSOrigin)},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.indicatorsService = indicator.NewIndicatorService(store)
	svc.policyService = policy.NewPolicyService(store)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.indicatorsService, svc.policyService, geometry)

	indicators := api.Group("/indicators")
	indicators.GET("/list", cntrl.ListIndicators)
	indicators.GET("/:id", cntrl.GetIndicator)
	indicators.PUT("/:id", cntrl.UpdateIndicator, svc.AdminMiddleware)
	indicators.POST("/import", cntrl.ImportCSV, svc.AdminMiddleware)
	indicators.GET("/:id/export", cntrl.ExportCSV)
	indicators.GET("/:id/map", cntrl.GetMapData)

	domains := api.Group("/domains")
	domains.GET("/list", cntrl.ListDomains)

	policies := api.Group("/policies")
	policies.POST("/backfill", cntrl.BackfillPolicies, svc.AdminMiddleware)

	return svc, nil
}
