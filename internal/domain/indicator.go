package domain

import (
	"math"
	"time"
)

// NoData is the sentinel for intentionally missing values. Upstream CSV
// parsing and the store both use it, so absence checks must accept both
// NaN and -999.
const NoData = -999

func IsNoData(v float64) bool {
	return math.IsNaN(v) || v == NoData
}

type Direction string

const (
	DirectionDirect  Direction = "direct"  // higher is better
	DirectionReverse Direction = "reverse" // lower is better
)

func ParseDirection(s string) Direction {
	if s == string(DirectionReverse) {
		return DirectionReverse
	}
	return DirectionDirect
}

// Status is the closed set of classification labels. It is never set
// outside the progress package, except for the post-processing override
// to StatusBaselineOnly when only one year of data survives.
type Status string

const (
	StatusTargetAchieved Status = "Target Achieved"
	StatusImproving      Status = "Improving"
	StatusGettingWorse   Status = "Getting Worse"
	StatusLittleChange   Status = "Little or No Change"
	StatusNoData         Status = "No Data"
	StatusBaselineOnly   Status = "Baseline Only"
)

func (s Status) String() string {
	return string(s)
}

type DisaggregationData struct {
	Category   string  `json:"category"`
	Value      string  `json:"value"`
	Percentage float64 `json:"percentage"`
}

type DistrictDataPoint struct {
	DistrictCode string  `json:"district_code"`
	DistrictName string  `json:"district_name"`
	Value        float64 `json:"value"`
}

type TimeSeriesPoint struct {
	Year           string               `json:"year"`
	Total          float64              `json:"total"`
	Disaggregation []DisaggregationData `json:"disaggregation,omitempty"`
	Districts      []DistrictDataPoint  `json:"districts,omitempty"`
}

type PolicyReference struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type IndicatorDetails struct {
	Methodology      string            `json:"methodology"`
	DataSources      []string          `json:"data_sources"`
	TargetMethod     string            `json:"target_method"`
	RelevantPolicies []PolicyReference `json:"relevant_policies"`
}

type Indicator struct {
	ID                       string            `db:"id" json:"id"`
	Domain                   string            `db:"domain" json:"domain"`
	Subdomain                string            `db:"subdomain" json:"subdomain"`
	Title                    string            `db:"title" json:"title"`
	Description              string            `db:"description" json:"description"`
	Unit                     string            `db:"unit" json:"unit"`
	Direction                Direction         `db:"direction" json:"direction"`
	Target                   float64           `db:"target" json:"target"`
	Baseline                 float64           `db:"baseline" json:"baseline"`
	Current                  float64           `db:"current" json:"current"`
	CurrentYear              string            `db:"current_year" json:"current_year"`
	Warning                  string            `db:"warning" json:"warning,omitempty"`
	Status                   Status            `db:"status" json:"status"`
	TimeSeries               []TimeSeriesPoint `db:"time_series" json:"time_series"`
	DisaggregationCategories []string          `db:"disaggregation_categories" json:"disaggregation_categories"`
	Details                  IndicatorDetails  `db:"details" json:"details"`
	CreatedAt                time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time         `db:"updated_at" json:"updated_at"`
}

// LatestPoint returns the last time-series point, which is the most
// recent one once the series is sorted ascending by year.
func (i *Indicator) LatestPoint() *TimeSeriesPoint {
	if len(i.TimeSeries) == 0 {
		return nil
	}
	return &i.TimeSeries[len(i.TimeSeries)-1]
}

// PointForYear returns the time-series point for the given year, or nil.
func (i *Indicator) PointForYear(year string) *TimeSeriesPoint {
	for idx := range i.TimeSeries {
		if i.TimeSeries[idx].Year == year {
			return &i.TimeSeries[idx]
		}
	}
	return nil
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
