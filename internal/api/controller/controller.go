package controller

import (
	"github.com/maxtwis/sdh-dashboard/internal/service/indicator"
	"github.com/maxtwis/sdh-dashboard/internal/service/policy"
	"github.com/paulmach/orb/geojson"
)

type Controller struct {
	indicators *indicator.Service
	policies   *policy.Service
	geometry   *geojson.FeatureCollection
}

func NewController(indicators *indicator.Service, policies *policy.Service, geometry *geojson.FeatureCollection) *Controller {
	return &Controller{indicators: indicators, policies: policies, geometry: geometry}
}
