package history

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/platform/logger"
	"github.com/mcreview/mcreview-backend/internal/types"
)

const bulkParseConcurrency = 8

// ParseFailure records one entity that could not be reconstructed during a
// bulk parse. The siblings still succeed; the failed entity is simply absent
// from the listing.
type ParseFailure struct {
	ID  uuid.UUID
	Err error
}

// ParseContractsForDashboard reconstructs many contracts in the stripped CMS
// dashboard shape, partitioning results into parsed and failed. One corrupt
// contract degrades only its own visibility; failures are logged at warn and
// returned for the caller to count.
func ParseContractsForDashboard(ctx context.Context, raws []*types.ContractTable, log *logger.Logger) ([]*domain.ContractWithoutDraftRates, []ParseFailure) {
	parsed := make([]*domain.ContractWithoutDraftRates, len(raws))
	failures := make([]ParseFailure, len(raws))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(bulkParseConcurrency)
	for i, raw := range raws {
		g.Go(func() error {
			contract, err := ParseContractWithoutDraftRates(raw)
			if err != nil {
				failures[i] = ParseFailure{ID: raw.ID, Err: err}
				return nil
			}
			parsed[i] = contract
			return nil
		})
	}
	_ = g.Wait()

	return partitionParsed(parsed, failures, log, "contract")
}

// ParseRatesForDashboard reconstructs many rates in the stripped shape.
func ParseRatesForDashboard(ctx context.Context, raws []*types.RateTable, log *logger.Logger) ([]*domain.Rate, []ParseFailure) {
	parsed := make([]*domain.Rate, len(raws))
	failures := make([]ParseFailure, len(raws))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(bulkParseConcurrency)
	for i, raw := range raws {
		g.Go(func() error {
			rate, err := ParseRateStripped(raw)
			if err != nil {
				failures[i] = ParseFailure{ID: raw.ID, Err: err}
				return nil
			}
			parsed[i] = rate
			return nil
		})
	}
	_ = g.Wait()

	return partitionParsed(parsed, failures, log, "rate")
}

func partitionParsed[T any](parsed []*T, failures []ParseFailure, log *logger.Logger, kind string) ([]*T, []ParseFailure) {
	ok := make([]*T, 0, len(parsed))
	failed := make([]ParseFailure, 0)
	for i := range parsed {
		if parsed[i] != nil {
			ok = append(ok, parsed[i])
			continue
		}
		failed = append(failed, failures[i])
		if log != nil {
			log.Warn("excluding entity from listing, reconstruction failed",
				"kind", kind,
				"id", failures[i].ID,
				"error", failures[i].Err,
			)
		}
	}
	return ok, failed
}
