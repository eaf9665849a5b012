package indicator

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// ExportCSV renders one indicator's time series for download. Columns
// are Year, Total, then one "<category> - <value>" column per
// disaggregation pair seen anywhere in the series; absent values render
// as empty cells.
func (s *Service) ExportCSV(ctx context.Context, id string) (string, error) {
	ind, err := s.store.GetIndicatorByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("store.GetIndicatorByID, id-%s: %w", id, err)
	}

	return RenderCSV(ind), nil
}

func RenderCSV(ind *domain.Indicator) string {
	columns := make([]string, 0)
	seen := make(map[string]bool)
	for _, pt := range ind.TimeSeries {
		for _, d := range pt.Disaggregation {
			key := fmt.Sprintf("%s - %s", d.Category, d.Value)
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	var b strings.Builder
	b.WriteString("Year,Total")
	for _, col := range columns {
		b.WriteString(",")
		b.WriteString(col)
	}
	b.WriteString("\n")

	for _, pt := range ind.TimeSeries {
		b.WriteString(pt.Year)
		b.WriteString(",")
		b.WriteString(formatCell(pt.Total))

		for _, col := range columns {
			b.WriteString(",")
			for _, d := range pt.Disaggregation {
				if fmt.Sprintf("%s - %s", d.Category, d.Value) == col {
					b.WriteString(formatCell(d.Percentage))
					break
				}
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatCell(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
