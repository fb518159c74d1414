package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcreview/mcreview-backend/internal/types"
)

func SeedContract(tb testing.TB, ctx context.Context, tx *gorm.DB, stateCode string, stateNumber int) *types.ContractTable {
	tb.Helper()
	c := &types.ContractTable{
		ID:          uuid.New(),
		StateCode:   stateCode,
		StateNumber: stateNumber,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}
	return c
}

func SeedUpdateInfo(tb testing.TB, ctx context.Context, tx *gorm.DB, at time.Time, by string) *types.UpdateInfoTable {
	tb.Helper()
	info := &types.UpdateInfoTable{
		ID:            uuid.New(),
		UpdatedAt:     at,
		UpdatedBy:     by,
		UpdatedReason: "seeded",
	}
	if err := tx.WithContext(ctx).Create(info).Error; err != nil {
		tb.Fatalf("seed update info: %v", err)
	}
	return info
}

func SeedContractRevision(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID uuid.UUID, submitInfoID *uuid.UUID) *types.ContractRevisionTable {
	tb.Helper()
	rev := &types.ContractRevisionTable{
		ID:             uuid.New(),
		ContractID:     contractID,
		SubmitInfoID:   submitInfoID,
		SubmissionType: "CONTRACT_ONLY",
		ContractType:   "BASE",
	}
	if err := tx.WithContext(ctx).Create(rev).Error; err != nil {
		tb.Fatalf("seed contract revision: %v", err)
	}
	return rev
}

func SeedRate(tb testing.TB, ctx context.Context, tx *gorm.DB, stateCode string, stateNumber int) *types.RateTable {
	tb.Helper()
	r := &types.RateTable{
		ID:          uuid.New(),
		StateCode:   stateCode,
		StateNumber: stateNumber,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rate: %v", err)
	}
	return r
}

func SeedRateRevision(tb testing.TB, ctx context.Context, tx *gorm.DB, rateID uuid.UUID, submitInfoID *uuid.UUID) *types.RateRevisionTable {
	tb.Helper()
	rev := &types.RateRevisionTable{
		ID:           uuid.New(),
		RateID:       rateID,
		SubmitInfoID: submitInfoID,
	}
	if err := tx.WithContext(ctx).Create(rev).Error; err != nil {
		tb.Fatalf("seed rate revision: %v", err)
	}
	return rev
}

func SeedDraftRateJoin(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID, rateID uuid.UUID, position int) *types.DraftRateJoinTable {
	tb.Helper()
	join := &types.DraftRateJoinTable{
		ContractID:   contractID,
		RateID:       rateID,
		RatePosition: position,
	}
	if err := tx.WithContext(ctx).Create(join).Error; err != nil {
		tb.Fatalf("seed draft rate join: %v", err)
	}
	return join
}

func SeedRateLink(tb testing.TB, ctx context.Context, tx *gorm.DB, contractRevID, rateRevID uuid.UUID, validAfter time.Time, removal bool) *types.RateRevisionsOnContractRevisionTable {
	tb.Helper()
	link := &types.RateRevisionsOnContractRevisionTable{
		ContractRevisionID: contractRevID,
		RateRevisionID:     rateRevID,
		ValidAfter:         validAfter,
		IsRemoval:          removal,
	}
	if err := tx.WithContext(ctx).Create(link).Error; err != nil {
		tb.Fatalf("seed rate link: %v", err)
	}
	return link
}

func SeedSubmissionPackage(tb testing.TB, ctx context.Context, tx *gorm.DB, submissionID, contractRevID, rateRevID uuid.UUID, position int) *types.SubmissionPackageTable {
	tb.Helper()
	pkg := &types.SubmissionPackageTable{
		SubmissionID:       submissionID,
		ContractRevisionID: contractRevID,
		RateRevisionID:     rateRevID,
		RatePosition:       position,
	}
	if err := tx.WithContext(ctx).Create(pkg).Error; err != nil {
		tb.Fatalf("seed submission package: %v", err)
	}
	return pkg
}
