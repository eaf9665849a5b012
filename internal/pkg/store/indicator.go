package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/logger"
)

var indicatorColumns = []string{
	"id", "domain", "subdomain", "title", "description", "unit", "direction",
	"target", "baseline", "current", "current_year", "warning", "status",
	"time_series", "disaggregation_categories", "details", "created_at", "updated_at",
}

// indicatorRow is the flat scan target; nested structures live in JSONB
// columns and go through sonic.
type indicatorRow struct {
	ID                       string    `db:"id"`
	Domain                   string    `db:"domain"`
	Subdomain                string    `db:"subdomain"`
	Title                    string    `db:"title"`
	Description              string    `db:"description"`
	Unit                     string    `db:"unit"`
	Direction                string    `db:"direction"`
	Target                   float64   `db:"target"`
	Baseline                 float64   `db:"baseline"`
	Current                  float64   `db:"current"`
	CurrentYear              string    `db:"current_year"`
	Warning                  string    `db:"warning"`
	Status                   string    `db:"status"`
	TimeSeries               []byte    `db:"time_series"`
	DisaggregationCategories []byte    `db:"disaggregation_categories"`
	Details                  []byte    `db:"details"`
	CreatedAt                time.Time `db:"created_at"`
	UpdatedAt                time.Time `db:"updated_at"`
}

func (r *indicatorRow) toDomain() (*domain.Indicator, error) {
	ind := &domain.Indicator{
		ID:          r.ID,
		Domain:      r.Domain,
		Subdomain:   r.Subdomain,
		Title:       r.Title,
		Description: r.Description,
		Unit:        r.Unit,
		Direction:   domain.Direction(r.Direction),
		Target:      r.Target,
		Baseline:    r.Baseline,
		Current:     r.Current,
		CurrentYear: r.CurrentYear,
		Warning:     r.Warning,
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if err := sonic.Unmarshal(r.TimeSeries, &ind.TimeSeries); err != nil {
		return nil, fmt.Errorf("unmarshal time_series: %w", err)
	}
	if err := sonic.Unmarshal(r.DisaggregationCategories, &ind.DisaggregationCategories); err != nil {
		return nil, fmt.Errorf("unmarshal disaggregation_categories: %w", err)
	}
	if err := sonic.Unmarshal(r.Details, &ind.Details); err != nil {
		return nil, fmt.Errorf("unmarshal details: %w", err)
	}

	return ind, nil
}

func (s *store) ListIndicators(ctx context.Context) ([]*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		OrderBy("id")

	var rows []*indicatorRow
	if err := s.pool.Selectx(ctx, &rows, query); err != nil {
		logger.Errorf(ctx, "ListIndicators: %s", err.Error())
		return nil, wrapErr(err)
	}

	indicators := make([]*domain.Indicator, 0, len(rows))
	for _, row := range rows {
		ind, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("row.toDomain, id-%s: %w", row.ID, err)
		}
		indicators = append(indicators, ind)
	}

	return indicators, nil
}

func (s *store) GetIndicatorByID(ctx context.Context, id string) (*domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		Where(sq.Eq{"id": id})

	var row indicatorRow
	if err := s.pool.Getx(ctx, &row, query); err != nil {
		return nil, wrapErr(err)
	}

	return row.toDomain()
}

// UpsertIndicators writes every record in one multi-values insert with a
// full-record on-conflict update. Batching is the caller's concern.
func (s *store) UpsertIndicators(ctx context.Context, indicators []*domain.Indicator) error {
	if len(indicators) == 0 {
		return nil
	}

	query := builder().Insert(tableIndicators).
		Columns(indicatorColumns[:len(indicatorColumns)-2]...)

	for _, ind := range indicators {
		timeSeriesJSON, err := sonic.Marshal(ind.TimeSeries)
		if err != nil {
			return fmt.Errorf("marshal time_series, id-%s: %w", ind.ID, err)
		}
		categoriesJSON, err := sonic.Marshal(ind.DisaggregationCategories)
		if err != nil {
			return fmt.Errorf("marshal disaggregation_categories, id-%s: %w", ind.ID, err)
		}
		detailsJSON, err := sonic.Marshal(ind.Details)
		if err != nil {
			return fmt.Errorf("marshal details, id-%s: %w", ind.ID, err)
		}

		query = query.Values(
			ind.ID, ind.Domain, ind.Subdomain, ind.Title, ind.Description,
			ind.Unit, string(ind.Direction), ind.Target, ind.Baseline, ind.Current,
			ind.CurrentYear, ind.Warning, string(ind.Status),
			timeSeriesJSON, categoriesJSON, detailsJSON,
		)
	}

	query = query.Suffix(`
on conflict (id)
do update
set
	domain = excluded.domain,
	subdomain = excluded.subdomain,
	title = excluded.title,
	description = excluded.description,
	unit = excluded.unit,
	direction = excluded.direction,
	target = excluded.target,
	baseline = excluded.baseline,
	current = excluded.current,
	current_year = excluded.current_year,
	warning = excluded.warning,
	status = excluded.status,
	time_series = excluded.time_series,
	disaggregation_categories = excluded.disaggregation_categories,
	details = excluded.details,
	updated_at = now()`)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		logger.Error(ctx, err.Error())
		return wrapErr(err)
	}

	return nil
}
