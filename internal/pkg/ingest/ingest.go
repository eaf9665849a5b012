// Package ingest turns uploaded CSV rows into Indicator aggregates. The
// pipeline is best-effort and total: malformed numerics degrade to the
// no-data sentinel and rows without an indicator id are dropped.
package ingest

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/progress"
)

// Recognized column headers.
const (
	ColIndicatorID    = "Indicator ID"
	ColDomain         = "Domain"
	ColSubdomain      = "Subdomain"
	ColTitle          = "Indicator Title"
	ColDescription    = "Description"
	ColUnit           = "Unit"
	ColIndicatorType  = "IndicatorType"
	ColTarget         = "Target"
	ColBaseline       = "Baseline"
	ColCurrent        = "Current"
	ColYear           = "Year"
	ColTotal          = "Total"
	ColMethodology    = "Methodology"
	ColDataSources    = "DataSources"
	ColTargetMethod   = "TargetMethod"
	ColDisaggCategory = "Disaggregation Category"
	ColDisaggValue    = "Disaggregation Value"
	ColPercentage     = "Percentage"
	ColDistrictCode   = "district_code"
	ColDistrictName   = "district_name"
	ColDistrictValue  = "value"
)

const (
	WarningNoCurrent    = "No current data available"
	WarningNoBaseline   = "No baseline data available"
	WarningNoTarget     = "No target value set"
	WarningBaselineOnly = "Only baseline data available"
	WarningNoTimeSeries = "No time series data available"
)

// Row is one CSV line keyed by header.
type Row map[string]string

// ParseRows splits raw CSV text into rows. The format is deliberately
// naive: comma-separated, first line is the header, no quoting or
// escaping. Values are mapped positionally and trimmed.
func ParseRows(text string) []Row {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = strings.TrimSpace(fields[i])
			}
		}
		rows = append(rows, row)
	}

	return rows
}

// BuildIndicators groups rows by indicator id and assembles one finalized
// Indicator per id, in first-seen order.
func BuildIndicators(rows []Row) []*domain.Indicator {
	byID := make(map[string]*domain.Indicator)
	order := make([]string, 0)

	for _, row := range rows {
		id := row[ColIndicatorID]
		if id == "" {
			continue
		}

		ind, ok := byID[id]
		if !ok {
			ind = newIndicator(id, row, rows)
			byID[id] = ind
			order = append(order, id)
		}

		accumulate(ind, row)
	}

	out := make([]*domain.Indicator, 0, len(order))
	for _, id := range order {
		out = append(out, finalize(byID[id]))
	}

	return out
}

// newIndicator builds the initial record for an id. Disaggregation
// categories and the valid-year count are precomputed over the entire row
// set, not just rows seen so far, so the first status computation already
// knows the full history length.
func newIndicator(id string, first Row, all []Row) *domain.Indicator {
	categories := make([]string, 0)
	seenCat := make(map[string]bool)
	seenYear := make(map[string]bool)
	years := make([]string, 0)

	for _, row := range all {
		if row[ColIndicatorID] != id {
			continue
		}
		if cat := row[ColDisaggCategory]; cat != "" && !seenCat[cat] {
			seenCat[cat] = true
			categories = append(categories, cat)
		}
		year := row[ColYear]
		if year == "" || seenYear[year] {
			continue
		}
		if total := parseNum(row[ColTotal]); !math.IsNaN(total) {
			seenYear[year] = true
			years = append(years, year)
		}
	}
	sort.Slice(years, func(i, j int) bool { return yearOf(years[i]) < yearOf(years[j]) })
	sort.Strings(categories)

	current := parseNum(first[ColCurrent])
	baseline := parseNum(first[ColBaseline])
	target := parseNum(first[ColTarget])
	dir := domain.ParseDirection(first[ColIndicatorType])

	ind := &domain.Indicator{
		ID:                       id,
		Domain:                   first[ColDomain],
		Subdomain:                first[ColSubdomain],
		Title:                    first[ColTitle],
		Description:              first[ColDescription],
		Unit:                     first[ColUnit],
		Direction:                dir,
		Target:                   target,
		Baseline:                 baseline,
		Current:                  current,
		CurrentYear:              first[ColYear],
		Warning:                  initialWarning(current, baseline, target, len(years)),
		Status:                   progress.Classify(current, baseline, target, dir, len(years)),
		TimeSeries:               make([]domain.TimeSeriesPoint, 0, len(years)),
		DisaggregationCategories: categories,
		Details: domain.IndicatorDetails{
			Methodology:      first[ColMethodology],
			DataSources:      splitSources(first[ColDataSources]),
			TargetMethod:     first[ColTargetMethod],
			RelevantPolicies: []domain.PolicyReference{},
		},
	}

	return ind
}

// initialWarning picks the first applicable condition; later ones are not
// appended.
func initialWarning(current, baseline, target float64, numberOfYears int) string {
	switch {
	case progress.IsNoData(current):
		return WarningNoCurrent
	case progress.IsNoData(baseline):
		return WarningNoBaseline
	case progress.IsNoData(target):
		return WarningNoTarget
	case numberOfYears <= 1:
		return WarningBaselineOnly
	}
	return ""
}

// accumulate folds one row's time-series contribution into the indicator.
// The first total seen for a year wins; later rows for the same year only
// add disaggregation and district data.
func accumulate(ind *domain.Indicator, row Row) {
	total := parseNum(row[ColTotal])
	year := row[ColYear]
	if math.IsNaN(total) || year == "" {
		return
	}

	var pt *domain.TimeSeriesPoint
	for i := range ind.TimeSeries {
		if ind.TimeSeries[i].Year == year {
			pt = &ind.TimeSeries[i]
			break
		}
	}
	if pt == nil {
		ind.TimeSeries = append(ind.TimeSeries, domain.TimeSeriesPoint{Year: year, Total: total})
		pt = &ind.TimeSeries[len(ind.TimeSeries)-1]
	}

	cat, val := row[ColDisaggCategory], row[ColDisaggValue]
	if cat != "" && val != "" {
		if pct := parseNum(row[ColPercentage]); !math.IsNaN(pct) && !hasDisagg(pt, cat, val) {
			pt.Disaggregation = append(pt.Disaggregation, domain.DisaggregationData{
				Category:   cat,
				Value:      val,
				Percentage: pct,
			})
		}
	}

	code, name := row[ColDistrictCode], row[ColDistrictName]
	if code != "" && name != "" && row[ColDistrictValue] != "" {
		code = PadDistrictCode(code)
		if dv := parseNum(row[ColDistrictValue]); !math.IsNaN(dv) && !hasDistrict(pt, code) {
			pt.Districts = append(pt.Districts, domain.DistrictDataPoint{
				DistrictCode: code,
				DistrictName: name,
				Value:        dv,
			})
		}
	}
}

// finalize runs the post-processing pass: drop invalid points, sort, fix
// the year count, backfill current from the latest point and settle the
// final status.
func finalize(ind *domain.Indicator) *domain.Indicator {
	points := ind.TimeSeries[:0]
	for _, pt := range ind.TimeSeries {
		if math.IsNaN(pt.Total) {
			continue
		}
		sort.Slice(pt.Disaggregation, func(i, j int) bool {
			a, b := pt.Disaggregation[i], pt.Disaggregation[j]
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return a.Value < b.Value
		})
		points = append(points, pt)
	}
	sort.Slice(points, func(i, j int) bool { return yearOf(points[i].Year) < yearOf(points[j].Year) })
	ind.TimeSeries = points

	numberOfYears := len(points)
	switch numberOfYears {
	case 0:
		ind.Status = domain.StatusNoData
		ind.Warning = WarningNoTimeSeries
	case 1:
		backfillCurrent(ind)
		// Single-year override holds regardless of value relationships.
		ind.Status = domain.StatusBaselineOnly
		ind.Warning = WarningBaselineOnly
	default:
		backfillCurrent(ind)
		ind.Status = progress.Classify(ind.Current, ind.Baseline, ind.Target, ind.Direction, numberOfYears)
	}

	// NaN does not survive serialization; persist the sentinel instead.
	ind.Current = sanitize(ind.Current)
	ind.Baseline = sanitize(ind.Baseline)
	ind.Target = sanitize(ind.Target)

	return ind
}

func backfillCurrent(ind *domain.Indicator) {
	if !progress.IsNoData(ind.Current) {
		return
	}
	if latest := ind.LatestPoint(); latest != nil {
		ind.Current = latest.Total
		ind.CurrentYear = latest.Year
	}
}

// PadDistrictCode left-pads a district code with zeros to four
// characters. Geometry joins are exact-match on the padded form.
func PadDistrictCode(code string) string {
	code = strings.TrimSpace(code)
	for len(code) < 4 {
		code = "0" + code
	}
	return code
}

func hasDisagg(pt *domain.TimeSeriesPoint, cat, val string) bool {
	for _, d := range pt.Disaggregation {
		if d.Category == cat && d.Value == val {
			return true
		}
	}
	return false
}

func hasDistrict(pt *domain.TimeSeriesPoint, code string) bool {
	for _, d := range pt.Districts {
		if d.DistrictCode == code {
			return true
		}
	}
	return false
}

func splitSources(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func yearOf(s string) int {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return y
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return domain.NoData
	}
	return v
}
