package history

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
)

func TestParseRateParentFromFirstSubmission(t *testing.T) {
	rateID := uuid.New()
	contractID := uuid.New()

	info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	contractRev := testContractRevision(contractID, testBase, info)
	rateRev := testRateRevision(rateID, testBase, info)
	info.SubmittedContracts = []types.ContractRevisionTable{contractRev}
	info.SubmittedRates = []types.RateRevisionTable{rateRev}

	rateRev.SubmissionPackages = []types.SubmissionPackageTable{{
		SubmissionID:       info.ID,
		ContractRevisionID: contractRev.ID,
		RateRevisionID:     rateRev.ID,
		Submission:         info,
		ContractRevision:   &contractRev,
	}}

	raw := &types.RateTable{
		ID:          rateID,
		StateCode:   "MN",
		StateNumber: 9,
		Revisions:   []types.RateRevisionTable{rateRev},
	}

	got, err := ParseRateStripped(raw)
	if err != nil {
		t.Fatalf("ParseRateStripped: %v", err)
	}
	if got.ParentContractID != contractID {
		t.Fatalf("parent: got %s, want %s", got.ParentContractID, contractID)
	}
	if got.Status != domain.StatusSubmitted {
		t.Fatalf("status: got %s", got.Status)
	}
	if len(got.PackageSubmissions) != 1 {
		t.Fatalf("expected 1 package submission, got %d", len(got.PackageSubmissions))
	}
	sub := got.PackageSubmissions[0]
	if sub.Cause != domain.CauseContractSubmission {
		t.Fatalf("cause: got %s, want CONTRACT_SUBMISSION", sub.Cause)
	}
	if len(sub.ContractRevisions) != 1 || sub.ContractRevisions[0].ID != contractRev.ID {
		t.Fatalf("bundled contracts: %+v", sub.ContractRevisions)
	}
	if len(sub.SubmittedRevisions) != 2 {
		t.Fatalf("submitted revisions: %+v", sub.SubmittedRevisions)
	}
}

func TestParseRateStandaloneSubmissionCause(t *testing.T) {
	rateID := uuid.New()
	contractID := uuid.New()

	firstInfo := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	contractRev := testContractRevision(contractID, testBase, firstInfo)
	first := testRateRevision(rateID, testBase, firstInfo)
	firstInfo.SubmittedContracts = []types.ContractRevisionTable{contractRev}
	firstInfo.SubmittedRates = []types.RateRevisionTable{first}
	first.SubmissionPackages = []types.SubmissionPackageTable{{
		SubmissionID: firstInfo.ID, ContractRevisionID: contractRev.ID, RateRevisionID: first.ID,
		Submission: firstInfo, ContractRevision: &contractRev,
	}}

	// The rate resubmits on its own; no contract in the event.
	secondInfo := testSubmitInfo(testBase.Add(2*time.Hour), "actuary@example.com")
	second := testRateRevision(rateID, testBase.Add(time.Minute), secondInfo)
	secondInfo.SubmittedRates = []types.RateRevisionTable{second}
	second.SubmissionPackages = []types.SubmissionPackageTable{{
		SubmissionID: secondInfo.ID, ContractRevisionID: contractRev.ID, RateRevisionID: second.ID,
		Submission: secondInfo, ContractRevision: &contractRev,
	}}

	raw := &types.RateTable{
		ID:          rateID,
		StateCode:   "MN",
		StateNumber: 9,
		Revisions:   []types.RateRevisionTable{first, second},
	}

	got, err := ParseRateStripped(raw)
	if err != nil {
		t.Fatalf("ParseRateStripped: %v", err)
	}
	if got.Status != domain.StatusResubmitted {
		t.Fatalf("status: got %s, want RESUBMITTED", got.Status)
	}
	if len(got.PackageSubmissions) != 2 {
		t.Fatalf("expected 2 package submissions, got %d", len(got.PackageSubmissions))
	}
	if got.PackageSubmissions[0].Cause != domain.CauseRateSubmission {
		t.Fatalf("latest cause: got %s, want RATE_SUBMISSION", got.PackageSubmissions[0].Cause)
	}
	if got.PackageSubmissions[1].Cause != domain.CauseContractSubmission {
		t.Fatalf("earliest cause: got %s", got.PackageSubmissions[1].Cause)
	}
	// Parent still comes from the first submission.
	if got.ParentContractID != contractID {
		t.Fatalf("parent: got %s", got.ParentContractID)
	}
	// Revisions are most recent first.
	if len(got.Revisions) != 2 || got.Revisions[0].ID != second.ID {
		t.Fatalf("revisions: %+v", got.Revisions)
	}
}

func TestParseRateDraftParentPatchedFromJoin(t *testing.T) {
	rateID := uuid.New()
	contractID := uuid.New()

	draft := testRateRevision(rateID, testBase, nil)
	raw := &types.RateTable{
		ID:                 rateID,
		StateCode:          "MN",
		Revisions:          []types.RateRevisionTable{draft},
		DraftContractJoins: []types.DraftRateJoinTable{{ContractID: contractID, RateID: rateID}},
	}

	got, err := ParseRateStripped(raw)
	if err != nil {
		t.Fatalf("ParseRateStripped: %v", err)
	}
	if got.ParentContractID != contractID {
		t.Fatalf("parent: got %s, want %s", got.ParentContractID, contractID)
	}
	if got.Status != domain.StatusDraft {
		t.Fatalf("status: got %s", got.Status)
	}
	if got.DraftRevision == nil {
		t.Fatalf("draft revision not surfaced")
	}
}

func TestParseRateUnmigratedNeedsBackfill(t *testing.T) {
	rateID := uuid.New()

	info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	rev := testRateRevision(rateID, testBase, info)
	// No SubmittedContracts on the event: legacy row.
	info.SubmittedRates = []types.RateRevisionTable{rev}

	raw := &types.RateTable{ID: rateID, StateCode: "MN", Revisions: []types.RateRevisionTable{rev}}

	_, err := ParseRateStripped(raw)
	if !domain.IsCode(err, domain.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "backfill") {
		t.Fatalf("error should point at backfill: %v", err)
	}
}

func TestParseRateRejectsAmbiguousDraftOwner(t *testing.T) {
	rateID := uuid.New()
	draft := testRateRevision(rateID, testBase, nil)
	raw := &types.RateTable{
		ID:        rateID,
		StateCode: "MN",
		Revisions: []types.RateRevisionTable{draft},
		DraftContractJoins: []types.DraftRateJoinTable{
			{ContractID: uuid.New(), RateID: rateID},
			{ContractID: uuid.New(), RateID: rateID},
		},
	}
	_, err := ParseRateStripped(raw)
	if !domain.IsCode(err, domain.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestParseRateWithDraftContracts(t *testing.T) {
	rateID := uuid.New()
	contractID := uuid.New()

	contractInfo := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	contractRev := testContractRevision(contractID, testBase, contractInfo)
	contract := &types.ContractTable{
		ID:          contractID,
		StateCode:   "MN",
		StateNumber: 4,
		Revisions:   []types.ContractRevisionTable{contractRev},
	}

	draft := testRateRevision(rateID, testBase, nil)
	raw := &types.RateTable{
		ID:        rateID,
		StateCode: "MN",
		Revisions: []types.RateRevisionTable{draft},
		DraftContractJoins: []types.DraftRateJoinTable{
			{ContractID: contractID, RateID: rateID, Contract: contract},
		},
	}

	got, err := ParseRateWithHistory(raw)
	if err != nil {
		t.Fatalf("ParseRateWithHistory: %v", err)
	}
	if len(got.DraftContracts) != 1 || got.DraftContracts[0].ID != contractID {
		t.Fatalf("draft contracts: %+v", got.DraftContracts)
	}
}
