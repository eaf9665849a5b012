package indicator

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/progress"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewIndicatorService(store store.Store) *Service {
	return &Service{store: store}
}

// List returns all indicators ordered by the numeric part of their id,
// so ECON-2 sorts before ECON-10.
func (s *Service) List(ctx context.Context) ([]*domain.Indicator, error) {
	indicators, err := s.store.ListIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListIndicators: %w", err)
	}

	sort.SliceStable(indicators, func(i, j int) bool {
		return lessByID(indicators[i].ID, indicators[j].ID)
	})

	return indicators, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Indicator, error) {
	ind, err := s.store.GetIndicatorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetIndicatorByID, id-%s: %w", id, err)
	}

	return ind, nil
}

// Update is the single-record edit path. Status is never taken from the
// caller: it is recomputed from the record's own values before saving.
func (s *Service) Update(ctx context.Context, ind *domain.Indicator) (*domain.Indicator, error) {
	numberOfYears := len(ind.TimeSeries)
	ind.Status = progress.Classify(ind.Current, ind.Baseline, ind.Target, ind.Direction, numberOfYears)
	if numberOfYears == 1 {
		ind.Status = domain.StatusBaselineOnly
	}

	if err := s.store.UpsertIndicators(ctx, []*domain.Indicator{ind}); err != nil {
		return nil, fmt.Errorf("store.UpsertIndicators, id-%s: %w", ind.ID, err)
	}

	return ind, nil
}

// ListDomains returns the distinct domain → subdomains grouping for the
// dashboard filters.
func (s *Service) ListDomains(ctx context.Context) (map[string][]string, error) {
	indicators, err := s.store.ListIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListIndicators: %w", err)
	}

	domains := make(map[string][]string)
	for _, ind := range indicators {
		if ind.Domain == "" {
			continue
		}
		subs := domains[ind.Domain]
		found := false
		for _, sub := range subs {
			if sub == ind.Subdomain {
				found = true
				break
			}
		}
		if !found && ind.Subdomain != "" {
			domains[ind.Domain] = append(subs, ind.Subdomain)
		} else if _, ok := domains[ind.Domain]; !ok {
			domains[ind.Domain] = []string{}
		}
	}
	for _, subs := range domains {
		sort.Strings(subs)
	}

	return domains, nil
}

// lessByID orders "<PREFIX>-<number>" ids by prefix, then numerically.
func lessByID(a, b string) bool {
	ap, an := splitID(a)
	bp, bn := splitID(b)
	if ap != bp {
		return ap < bp
	}
	return an < bn
}

func splitID(id string) (string, int) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return id, 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return id, 0
	}
	return id[:idx], n
}
