// Package geomap computes per-district values and fill colors for the
// choropleth map. It is the seam between the core data and the renderer:
// everything here is a pure function over a time series and a geometry
// collection.
package geomap

import (
	"fmt"
	"math"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
)

type Scale string

const (
	ScaleContinuous Scale = "continuous"
	ScaleBuckets    Scale = "buckets"
)

// Fill colors are white → blue; a district with no value stays white.
const (
	colorEmpty = "#ffffff"
	blueR      = 8
	blueG      = 81
	blueB      = 156
)

// Five-class equal-interval ramp, light to dark.
var bucketPalette = [5]string{"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"}

// DistrictValues returns the district_code → value lookup for the point
// matching the selected year, or an empty map when the year has no point
// or no district data.
func DistrictValues(series []domain.TimeSeriesPoint, year string) map[string]float64 {
	values := make(map[string]float64)
	for i := range series {
		if series[i].Year != year {
			continue
		}
		for _, d := range series[i].Districts {
			values[d.DistrictCode] = d.Value
		}
		break
	}
	return values
}

// MinMax returns the value range of the lookup. ok is false for an empty
// lookup, in which case every district renders unfilled.
func MinMax(values map[string]float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, len(values) > 0
}

// Interpolate maps a value to a color on the continuous white→blue ramp.
// A degenerate range renders the single shared value as full blue.
func Interpolate(v, min, max float64) string {
	t := 1.0
	if max > min {
		t = (v - min) / (max - min)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	r := int(math.Round(255 + t*(blueR-255)))
	g := int(math.Round(255 + t*(blueG-255)))
	b := int(math.Round(255 + t*(blueB-255)))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Bucket maps a value to one of five equal-interval classes.
func Bucket(v, min, max float64) string {
	if max <= min {
		return bucketPalette[4]
	}
	idx := int((v - min) / (max - min) * 5)
	if idx < 0 {
		idx = 0
	}
	if idx > 4 {
		idx = 4
	}
	return bucketPalette[idx]
}

// Color picks the configured strategy; continuous is the default.
func Color(v, min, max float64, scale Scale) string {
	if scale == ScaleBuckets {
		return Bucket(v, min, max)
	}
	return Interpolate(v, min, max)
}
