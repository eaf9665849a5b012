package ingest

import (
	"testing"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	rows := ParseRows("Indicator ID,Year,Total\nECON-01,2020,50\n\nECON-01,2021,65\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "ECON-01", rows[0][ColIndicatorID])
	assert.Equal(t, "2020", rows[0][ColYear])
	assert.Equal(t, "65", rows[1][ColTotal])
}

func TestParseRowsShortLine(t *testing.T) {
	rows := ParseRows("Indicator ID,Year,Total\nECON-01,2020")
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][ColTotal])
}

func TestBuildIndicatorsImproving(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "50", ColBaseline: "40", ColTarget: "80", ColIndicatorType: "direct"},
		{ColIndicatorID: "ECON-01", ColYear: "2021", ColTotal: "65", ColCurrent: "65"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)

	ind := indicators[0]
	assert.Equal(t, "ECON-01", ind.ID)
	require.Len(t, ind.TimeSeries, 2)
	assert.Equal(t, "2020", ind.TimeSeries[0].Year)
	assert.InDelta(t, 50, ind.TimeSeries[0].Total, 1e-9)
	assert.Equal(t, "2021", ind.TimeSeries[1].Year)
	assert.InDelta(t, 65, ind.TimeSeries[1].Total, 1e-9)
	assert.InDelta(t, 65, ind.Current, 1e-9)
	assert.Equal(t, domain.StatusImproving, ind.Status)
}

func TestBuildIndicatorsTargetAchieved(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "50", ColBaseline: "40", ColTarget: "80", ColIndicatorType: "direct"},
		{ColIndicatorID: "ECON-01", ColYear: "2021", ColTotal: "90", ColCurrent: "90"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)
	assert.Equal(t, domain.StatusTargetAchieved, indicators[0].Status)
}

func TestBuildIndicatorsSingleYearForcesBaselineOnly(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "90", ColCurrent: "90", ColBaseline: "40", ColTarget: "80", ColIndicatorType: "direct"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)
	assert.Equal(t, domain.StatusBaselineOnly, indicators[0].Status)
	assert.Equal(t, WarningBaselineOnly, indicators[0].Warning)
}

func TestBuildIndicatorsNoTimeSeries(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColCurrent: "50", ColBaseline: "40", ColTarget: "80"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)
	assert.Equal(t, domain.StatusNoData, indicators[0].Status)
	assert.Equal(t, WarningNoTimeSeries, indicators[0].Warning)
	assert.Empty(t, indicators[0].TimeSeries)
}

func TestBuildIndicatorsCurrentBackfill(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "HLTH-02", ColYear: "2021", ColTotal: "30", ColBaseline: "40", ColTarget: "10", ColIndicatorType: "reverse"},
		{ColIndicatorID: "HLTH-02", ColYear: "2019", ColTotal: "40"},
		{ColIndicatorID: "HLTH-02", ColYear: "2020", ColTotal: "35"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)

	ind := indicators[0]
	// sorted ascending, current backfilled from the latest point
	require.Len(t, ind.TimeSeries, 3)
	assert.Equal(t, []string{"2019", "2020", "2021"}, []string{ind.TimeSeries[0].Year, ind.TimeSeries[1].Year, ind.TimeSeries[2].Year})
	assert.InDelta(t, 30, ind.Current, 1e-9)
	assert.Equal(t, "2021", ind.CurrentYear)
	assert.Equal(t, domain.StatusImproving, ind.Status)
}

func TestBuildIndicatorsFirstTotalWins(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "50", ColBaseline: "40", ColTarget: "80"},
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "999", ColDisaggCategory: "sex", ColDisaggValue: "female", ColPercentage: "51"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)
	require.Len(t, indicators[0].TimeSeries, 1)

	pt := indicators[0].TimeSeries[0]
	assert.InDelta(t, 50, pt.Total, 1e-9)
	require.Len(t, pt.Disaggregation, 1)
	assert.Equal(t, "female", pt.Disaggregation[0].Value)
}

func TestBuildIndicatorsDisaggregationDeduplicatedAndSorted(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "EDU-01", ColYear: "2020", ColTotal: "50", ColDisaggCategory: "sex", ColDisaggValue: "male", ColPercentage: "49"},
		{ColIndicatorID: "EDU-01", ColYear: "2020", ColTotal: "50", ColDisaggCategory: "age_group", ColDisaggValue: "15-24", ColPercentage: "20"},
		{ColIndicatorID: "EDU-01", ColYear: "2020", ColTotal: "50", ColDisaggCategory: "sex", ColDisaggValue: "male", ColPercentage: "48"},
		{ColIndicatorID: "EDU-01", ColYear: "2020", ColTotal: "50", ColDisaggCategory: "sex", ColDisaggValue: "female", ColPercentage: "51"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)

	pt := indicators[0].TimeSeries[0]
	require.Len(t, pt.Disaggregation, 3)
	assert.Equal(t, "age_group", pt.Disaggregation[0].Category)
	assert.Equal(t, "female", pt.Disaggregation[1].Value)
	assert.Equal(t, "male", pt.Disaggregation[2].Value)
	// first percentage wins on duplicate (category, value)
	assert.InDelta(t, 49, pt.Disaggregation[2].Percentage, 1e-9)

	assert.Equal(t, []string{"age_group", "sex"}, indicators[0].DisaggregationCategories)
}

func TestBuildIndicatorsDistrictCodePadding(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ENV-01", ColYear: "2020", ColTotal: "50", ColDistrictCode: "12", ColDistrictName: "North", ColDistrictValue: "7.5"},
		{ColIndicatorID: "ENV-01", ColYear: "2020", ColTotal: "50", ColDistrictCode: "0012", ColDistrictName: "North", ColDistrictValue: "9"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 1)

	pt := indicators[0].TimeSeries[0]
	require.Len(t, pt.Districts, 1)
	assert.Equal(t, "0012", pt.Districts[0].DistrictCode)
	assert.InDelta(t, 7.5, pt.Districts[0].Value, 1e-9)
}

func TestBuildIndicatorsRowsWithoutIDDropped(t *testing.T) {
	rows := []Row{
		{ColYear: "2020", ColTotal: "50"},
		{ColIndicatorID: "", ColYear: "2021", ColTotal: "60"},
	}

	assert.Empty(t, BuildIndicators(rows))
}

func TestBuildIndicatorsOrderIndependentSeries(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "50", ColBaseline: "40", ColTarget: "80", ColIndicatorType: "direct"},
		{ColIndicatorID: "ECON-01", ColYear: "2021", ColTotal: "65"},
		{ColIndicatorID: "ECON-01", ColYear: "2019", ColTotal: "42"},
	}
	reversed := []Row{rows[2], rows[1], rows[0]}

	a := BuildIndicators(rows)
	b := BuildIndicators(reversed)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].TimeSeries, b[0].TimeSeries)
}

func TestBuildIndicatorsIdempotent(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "ECON-01", ColYear: "2020", ColTotal: "50", ColBaseline: "40", ColTarget: "80", ColIndicatorType: "direct"},
		{ColIndicatorID: "ECON-01", ColYear: "2021", ColTotal: "65", ColCurrent: "65"},
		{ColIndicatorID: "HLTH-02", ColYear: "2020", ColTotal: "30", ColBaseline: "40", ColTarget: "10", ColIndicatorType: "reverse"},
	}

	first := BuildIndicators(rows)
	second := BuildIndicators(rows)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].TimeSeries, second[i].TimeSeries)
		assert.Equal(t, first[i].Status, second[i].Status)
	}
}

func TestBuildIndicatorsWarningPrecedence(t *testing.T) {
	rows := []Row{
		{ColIndicatorID: "A-1", ColYear: "2020", ColTotal: "50", ColTarget: "80"},
		{ColIndicatorID: "A-1", ColYear: "2021", ColTotal: "60"},
		{ColIndicatorID: "B-1", ColYear: "2020", ColTotal: "50", ColCurrent: "50", ColTarget: "80"},
		{ColIndicatorID: "B-1", ColYear: "2021", ColTotal: "60"},
		{ColIndicatorID: "C-1", ColYear: "2020", ColTotal: "50", ColCurrent: "50", ColBaseline: "40"},
		{ColIndicatorID: "C-1", ColYear: "2021", ColTotal: "60"},
	}

	indicators := BuildIndicators(rows)
	require.Len(t, indicators, 3)
	// missing baseline loses to missing current; missing target comes last
	assert.Equal(t, WarningNoCurrent, indicators[0].Warning)
	assert.Equal(t, WarningNoBaseline, indicators[1].Warning)
	assert.Equal(t, WarningNoTarget, indicators[2].Warning)
}

func TestPadDistrictCode(t *testing.T) {
	assert.Equal(t, "0012", PadDistrictCode("12"))
	assert.Equal(t, "0001", PadDistrictCode("1"))
	assert.Equal(t, "1234", PadDistrictCode("1234"))
	assert.Equal(t, "12345", PadDistrictCode("12345"))
}
