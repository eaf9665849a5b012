package indicator

import (
	"context"
	"testing"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	ind := &domain.Indicator{
		ID: "EDU-01",
		TimeSeries: []domain.TimeSeriesPoint{
			{Year: "2020", Total: 50, Disaggregation: []domain.DisaggregationData{
				{Category: "sex", Value: "female", Percentage: 51.25},
				{Category: "sex", Value: "male", Percentage: 48.75},
			}},
			{Year: "2021", Total: 65, Disaggregation: []domain.DisaggregationData{
				{Category: "sex", Value: "female", Percentage: 52},
			}},
		},
	}

	got := RenderCSV(ind)
	want := "Year,Total,sex - female,sex - male\n" +
		"2020,50.0,51.3,48.8\n" +
		"2021,65.0,52.0,\n"
	assert.Equal(t, want, got)
}

func TestRenderCSVNoDisaggregation(t *testing.T) {
	ind := &domain.Indicator{
		ID:         "ENV-01",
		TimeSeries: []domain.TimeSeriesPoint{{Year: "2020", Total: 7.25}},
	}

	assert.Equal(t, "Year,Total\n2020,7.3\n", RenderCSV(ind))
}

func TestExportCSVReadsFromStore(t *testing.T) {
	store := newFakeStore(&domain.Indicator{
		ID:         "ECON-01",
		TimeSeries: []domain.TimeSeriesPoint{{Year: "2020", Total: 40}},
	})
	svc := NewIndicatorService(store)

	csv, err := svc.ExportCSV(context.Background(), "ECON-01")
	require.NoError(t, err)
	assert.Equal(t, "Year,Total\n2020,40.0\n", csv)

	_, err = svc.ExportCSV(context.Background(), "MISSING-1")
	assert.Error(t, err)
}
