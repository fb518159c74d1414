package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
)

func TestParseContractsForDashboardPartitionsFailures(t *testing.T) {
	healthyID := uuid.New()
	healthyInfo := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	healthy := &types.ContractTable{
		ID:          healthyID,
		StateCode:   "MN",
		StateNumber: 1,
		Revisions:   []types.ContractRevisionTable{testContractRevision(healthyID, testBase, healthyInfo)},
	}

	corruptID := uuid.New()
	corrupt := &types.ContractTable{
		ID:          corruptID,
		StateCode:   "MN",
		StateNumber: 2,
		Revisions: []types.ContractRevisionTable{
			testContractRevision(corruptID, testBase, nil),
			testContractRevision(corruptID, testBase.Add(time.Minute), nil),
		},
	}

	parsed, failed := ParseContractsForDashboard(context.Background(), []*types.ContractTable{healthy, corrupt}, nil)
	if len(parsed) != 1 || parsed[0].ID != healthyID {
		t.Fatalf("parsed: %+v", parsed)
	}
	if len(failed) != 1 || failed[0].ID != corruptID {
		t.Fatalf("failed: %+v", failed)
	}
	if !domain.IsCode(failed[0].Err, domain.CodeInvariantViolation) {
		t.Fatalf("failure error: %v", failed[0].Err)
	}
}

func TestParseRatesForDashboardKeepsOrder(t *testing.T) {
	mkRate := func(stateNumber int) *types.RateTable {
		rateID := uuid.New()
		contractID := uuid.New()
		info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
		contractRev := testContractRevision(contractID, testBase, info)
		rev := testRateRevision(rateID, testBase, info)
		info.SubmittedContracts = []types.ContractRevisionTable{contractRev}
		rev.SubmissionPackages = []types.SubmissionPackageTable{{
			SubmissionID: info.ID, ContractRevisionID: contractRev.ID, RateRevisionID: rev.ID,
			Submission: info, ContractRevision: &contractRev,
		}}
		return &types.RateTable{ID: rateID, StateCode: "MN", StateNumber: stateNumber, Revisions: []types.RateRevisionTable{rev}}
	}

	raws := []*types.RateTable{mkRate(1), mkRate(2), mkRate(3)}
	parsed, failed := ParseRatesForDashboard(context.Background(), raws, nil)
	if len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	for i, r := range parsed {
		if r.StateNumber != i+1 {
			t.Fatalf("order not preserved: %+v", parsed)
		}
	}
}
