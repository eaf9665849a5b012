package geomap

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// Property key carrying the district code on each geometry feature.
const codeProperty = "dcode"

// LoadGeometry parses the externally supplied district polygon
// collection.
func LoadGeometry(data []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("geojson.UnmarshalFeatureCollection: %w", err)
	}
	return fc, nil
}

// DistrictFill is one region's render instruction. HasValue is false when
// the geometry code did not join the indicator data; such regions stay
// white rather than erroring.
type DistrictFill struct {
	Code     string  `json:"code"`
	Name     string  `json:"name,omitempty"`
	Value    float64 `json:"value,omitempty"`
	HasValue bool    `json:"has_value"`
	Color    string  `json:"color"`
}

// Render joins the geometry collection against the per-district values
// and assigns each feature a fill color. The join is exact-match on the
// zero-padded code; unmatched features render unfilled.
func Render(fc *geojson.FeatureCollection, values map[string]float64, scale Scale) []DistrictFill {
	min, max, ok := MinMax(values)

	if fc == nil {
		fills := make([]DistrictFill, 0, len(values))
		for code, v := range values {
			fills = append(fills, DistrictFill{Code: code, Value: v, HasValue: true, Color: Color(v, min, max, scale)})
		}
		return fills
	}

	fills := make([]DistrictFill, 0, len(fc.Features))
	for _, f := range fc.Features {
		code, _ := f.Properties[codeProperty].(string)
		name, _ := f.Properties["name"].(string)
		fill := DistrictFill{Code: code, Name: name, Color: colorEmpty}
		if v, found := values[code]; ok && found {
			fill.Value = v
			fill.HasValue = true
			fill.Color = Color(v, min, max, scale)
		}
		fills = append(fills, fill)
	}
	return fills
}
