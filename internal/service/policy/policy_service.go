package policy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/domain/dto"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/logger"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	store store.Store
}

func NewPolicyService(store store.Store) *Service {
	return &Service{store: store}
}

// BackfillPolicies scrapes the published policy catalog and writes the
// extracted references onto the matching indicators through the
// single-record path. Returns the ids that were updated.
func (s *Service) BackfillPolicies(ctx context.Context, catalogURL string) ([]string, error) {
	doc, err := fetchDocument(ctx, catalogURL)
	if err != nil {
		return nil, fmt.Errorf("fetchDocument: %w", err)
	}

	catalog := dto.NewPolicyCatalog()
	doc.Find("table.policy-catalog tbody tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		tds := tr.Find("td")
		if tds.Length() < 3 {
			// skip
			return true
		}

		indicatorID := strings.TrimSpace(tds.Eq(0).Text())
		title := strings.TrimSpace(tds.Eq(1).Text())
		description := strings.TrimSpace(tds.Eq(2).Text())
		if indicatorID == "" || title == "" {
			return true
		}

		catalog.Put(indicatorID, domain.PolicyReference{Title: title, Description: description})
		return true
	})

	updated := make([]string, 0)
	updatedMx := sync.Mutex{}
	eg, egCtx := errgroup.WithContext(ctx)
	for _, id := range catalog.IndicatorIDs() {
		id := id
		eg.Go(func() error {
			ind, err := s.store.GetIndicatorByID(egCtx, id)
			if err != nil {
				logger.Warnf(egCtx, "no stored indicator for policy entry, id-%s", id)
				return nil
			}

			ind.Details.RelevantPolicies = catalog.Get(id)
			if err := s.store.UpsertIndicators(egCtx, []*domain.Indicator{ind}); err != nil {
				return fmt.Errorf("store.UpsertIndicators, id-%s: %w", id, err)
			}

			logger.Infof(egCtx, "backfilled %d policies for %s", len(ind.Details.RelevantPolicies), id)

			updatedMx.Lock()
			defer updatedMx.Unlock()
			updated = append(updated, id)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	return updated, nil
}

func fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	var resp *http.Response
	err := backoff.Retry(
		func() error {
			var httpErr error

			resp, httpErr = http.Get(url)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(100*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Errorf(ctx, "failed to close reader: %s", closeErr.Error())
		}
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	return doc, nil
}
