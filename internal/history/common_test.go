package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcreview/mcreview-backend/internal/types"
)

var testBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testSubmitInfo(at time.Time, by string) *types.UpdateInfoTable {
	return &types.UpdateInfoTable{
		ID:            uuid.New(),
		UpdatedAt:     at,
		UpdatedBy:     by,
		UpdatedReason: "test submission",
	}
}

// testContractRevision builds a submitted revision when info is non-nil, a
// draft otherwise.
func testContractRevision(contractID uuid.UUID, createdAt time.Time, info *types.UpdateInfoTable) types.ContractRevisionTable {
	rev := types.ContractRevisionTable{
		ID:         uuid.New(),
		ContractID: contractID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if info != nil {
		rev.SubmitInfoID = &info.ID
		rev.SubmitInfo = info
	}
	return rev
}

func testRateRevision(rateID uuid.UUID, createdAt time.Time, info *types.UpdateInfoTable) types.RateRevisionTable {
	rev := types.RateRevisionTable{
		ID:        uuid.New(),
		RateID:    rateID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if info != nil {
		rev.SubmitInfoID = &info.ID
		rev.SubmitInfo = info
	}
	return rev
}

func testLink(rr *types.RateRevisionTable, validAfter time.Time, removal bool) types.RateRevisionsOnContractRevisionTable {
	return types.RateRevisionsOnContractRevisionTable{
		RateRevisionID: rr.ID,
		ValidAfter:     validAfter,
		IsRemoval:      removal,
		RateRevision:   rr,
	}
}
