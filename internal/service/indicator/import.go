package indicator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/maxtwis/sdh-dashboard/internal/domain"
	"github.com/maxtwis/sdh-dashboard/internal/domain/dto"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/ingest"
	"github.com/maxtwis/sdh-dashboard/internal/pkg/logger"
)

// Upserts during import are chunked and sent sequentially; a failed
// batch aborts the remaining ones.
const upsertBatchSize = 50

// ImportCSV runs the full import: parse rows, build indicators, merge
// with stored metadata, write back in batches.
func (s *Service) ImportCSV(ctx context.Context, csvText string) (*dto.ImportReport, error) {
	report := &dto.ImportReport{RunID: uuid.NewString()}
	logger.Infof(ctx, "import started, run_id-%s", report.RunID)

	rows := ingest.ParseRows(csvText)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows in uploaded file")
	}

	fresh := ingest.BuildIndicators(rows)
	if len(fresh) == 0 {
		return nil, fmt.Errorf("no indicators found in uploaded file")
	}

	stored, err := s.store.ListIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListIndicators: %w", err)
	}
	storedByID := make(map[string]*domain.Indicator, len(stored))
	for _, ind := range stored {
		storedByID[ind.ID] = ind
	}

	for _, ind := range fresh {
		prev := storedByID[ind.ID]
		mergeStoredMetadata(ind, prev)
		if prev == nil {
			report.Created++
		} else {
			report.Updated++
		}
		if ind.Warning != "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", ind.ID, ind.Warning))
		}
	}
	report.Indicators = len(fresh)

	for start := 0; start < len(fresh); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(fresh) {
			end = len(fresh)
		}
		if err := s.store.UpsertIndicators(ctx, fresh[start:end]); err != nil {
			logger.Errorf(ctx, "UpsertIndicators, run_id-%s, batch-%d: %s", report.RunID, report.Batches, err.Error())
			return nil, fmt.Errorf("store.UpsertIndicators, batch-%d: %w", report.Batches, err)
		}
		report.Batches++
	}

	logger.Infof(ctx, "import finished, run_id-%s, indicators-%d", report.RunID, report.Indicators)
	return report, nil
}

// mergeStoredMetadata reconciles a freshly ingested indicator with its
// stored counterpart. Newly ingested text wins when non-empty; relevant
// policies always come from the store — they are edited only through the
// single-record path, never bulk re-import.
func mergeStoredMetadata(fresh, stored *domain.Indicator) {
	if fresh.Details.DataSources == nil {
		fresh.Details.DataSources = []string{}
	}
	if fresh.Details.RelevantPolicies == nil {
		fresh.Details.RelevantPolicies = []domain.PolicyReference{}
	}
	if stored == nil {
		return
	}

	if fresh.Description == "" {
		fresh.Description = stored.Description
	}
	if fresh.Details.Methodology == "" {
		fresh.Details.Methodology = stored.Details.Methodology
	}
	if len(fresh.Details.DataSources) == 0 && len(stored.Details.DataSources) > 0 {
		fresh.Details.DataSources = stored.Details.DataSources
	}
	if fresh.Details.TargetMethod == "" {
		fresh.Details.TargetMethod = stored.Details.TargetMethod
	}

	fresh.Details.RelevantPolicies = stored.Details.RelevantPolicies
	if fresh.Details.RelevantPolicies == nil {
		fresh.Details.RelevantPolicies = []domain.PolicyReference{}
	}
}
