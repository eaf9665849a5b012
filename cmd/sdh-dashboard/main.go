package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maxtwis/sdh-dashboard/internal/api"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/constants"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/geomap"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/logger"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/store"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/store/xpgx"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/viper"
)

func main() {
	ctx := context.Background()

	initConfig()
	logger.SetLevel(viper.GetString(constants.ViperLogLevel))

	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperDatabaseURL))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	geometry := loadGeometry(ctx)

	svc, err := api.NewAPIService(store.NewStore(pool), geometry)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(viper.GetString(constants.ViperServerAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %s", err.Error())
	}
}

func initConfig() {
	viper.SetDefault(constants.ViperServerAddr, ":8080")
	viper.SetDefault(constants.ViperCORSOrigin, "http://localhost:3000")
	viper.SetDefault(constants.ViperLogLevel, "info")
	viper.AutomaticEnv()

	cfgPath := viper.GetString(constants.ViperConfigPath)
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		// env-only configuration is fine
		logger.Warnf(context.Background(), "no config file loaded: %s", err.Error())
	}
}

func loadGeometry(ctx context.Context) *geojson.FeatureCollection {
	path := viper.GetString(constants.ViperGeometryPath)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf(ctx, "failed to read geometry file: %s", err.Error())
		return nil
	}

	fc, err := geomap.LoadGeometry(data)
	if err != nil {
		logger.Warnf(ctx, "failed to parse geometry file: %s", err.Error())
		return nil
	}

	logger.Infof(ctx, "loaded %d district features", len(fc.Features))
	return fc
}
