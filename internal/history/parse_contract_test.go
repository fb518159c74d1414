package history

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
)

func TestParseContractSingleSubmission(t *testing.T) {
	contractID := uuid.New()
	info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	rev := testContractRevision(contractID, testBase, info)

	raw := &types.ContractTable{
		ID:          contractID,
		StateCode:   "MN",
		StateNumber: 4,
		Revisions:   []types.ContractRevisionTable{rev},
	}

	got, err := ParseContractWithHistory(raw)
	if err != nil {
		t.Fatalf("ParseContractWithHistory: %v", err)
	}

	if got.Status != domain.StatusSubmitted {
		t.Fatalf("status: got %s, want SUBMITTED", got.Status)
	}
	if got.DraftRevision != nil {
		t.Fatalf("expected no draft revision")
	}
	if len(got.Revisions) != 1 || got.Revisions[0].ID != rev.ID {
		t.Fatalf("revisions: %+v", got.Revisions)
	}
	if len(got.PackageSubmissions) != 1 {
		t.Fatalf("expected 1 package submission, got %d", len(got.PackageSubmissions))
	}
	sub := got.PackageSubmissions[0]
	if sub.Cause != domain.CauseContractSubmission {
		t.Fatalf("cause: got %s", sub.Cause)
	}
	if len(sub.SubmittedRevisions) != 1 || sub.SubmittedRevisions[0].Kind != domain.RevisionKindContract {
		t.Fatalf("submitted revisions: %+v", sub.SubmittedRevisions)
	}
	if got.InitiallySubmittedAt == nil || !got.InitiallySubmittedAt.Equal(info.UpdatedAt) {
		t.Fatalf("initially submitted at: %v", got.InitiallySubmittedAt)
	}
}

// One contract submission with a rate, then a standalone rate submission,
// then an unlink. Three addressable history points, most recent first.
func TestParseContractLinkageHistory(t *testing.T) {
	contractID := uuid.New()
	rate1, rate2 := uuid.New(), uuid.New()

	tSub := testBase.Add(time.Hour)
	tRate := testBase.Add(2 * time.Hour)
	tUnlink := testBase.Add(3 * time.Hour)

	shared := testSubmitInfo(tSub, "state@example.com")
	r1 := testRateRevision(rate1, testBase, shared)
	r2 := testRateRevision(rate2, testBase, testSubmitInfo(tRate, "actuary@example.com"))

	rev := testContractRevision(contractID, testBase, shared)
	rev.RateRevisionJoins = []types.RateRevisionsOnContractRevisionTable{
		testLink(&r1, tSub, false),
		testLink(&r2, tRate, false),
		testLink(&r1, tUnlink, true),
	}

	raw := &types.ContractTable{
		ID:          contractID,
		StateCode:   "MN",
		StateNumber: 4,
		Revisions:   []types.ContractRevisionTable{rev},
	}

	got, err := ParseContractWithHistory(raw)
	if err != nil {
		t.Fatalf("ParseContractWithHistory: %v", err)
	}
	if len(got.PackageSubmissions) != 3 {
		t.Fatalf("expected 3 package submissions, got %d", len(got.PackageSubmissions))
	}

	unlink := got.PackageSubmissions[0]
	if unlink.Cause != domain.CauseRateUnlink {
		t.Fatalf("latest cause: got %s, want RATE_UNLINK", unlink.Cause)
	}
	if len(unlink.RateRevisions) != 1 || unlink.RateRevisions[0].RateID != rate2 {
		t.Fatalf("after unlink only rate2 should remain: %+v", unlink.RateRevisions)
	}
	if len(unlink.SubmittedRevisions) != 1 || unlink.SubmittedRevisions[0].Kind != domain.RevisionKindRate {
		t.Fatalf("unlink submitted revisions: %+v", unlink.SubmittedRevisions)
	}

	rateSub := got.PackageSubmissions[1]
	if rateSub.Cause != domain.CauseRateSubmission {
		t.Fatalf("middle cause: got %s, want RATE_SUBMISSION", rateSub.Cause)
	}
	if len(rateSub.RateRevisions) != 2 {
		t.Fatalf("rate submission set should hold both rates: %+v", rateSub.RateRevisions)
	}
	if !rateSub.SubmitInfo.UpdatedAt.Equal(tRate) {
		t.Fatalf("synthesized submit time: %v", rateSub.SubmitInfo.UpdatedAt)
	}

	seed := got.PackageSubmissions[2]
	if seed.Cause != domain.CauseContractSubmission {
		t.Fatalf("earliest cause: got %s, want CONTRACT_SUBMISSION", seed.Cause)
	}
	if len(seed.RateRevisions) != 1 || seed.RateRevisions[0].RateID != rate1 {
		t.Fatalf("seed set: %+v", seed.RateRevisions)
	}
	// The rate sharing the contract's submit event is part of the bundle.
	if len(seed.SubmittedRevisions) != 2 {
		t.Fatalf("seed submitted revisions: %+v", seed.SubmittedRevisions)
	}

	// Only the seed contributes to the submitted revision list.
	if len(got.Revisions) != 1 {
		t.Fatalf("revisions: %+v", got.Revisions)
	}
}

// A resubmission supersedes an earlier revision of the same rate rather than
// adding a second entry for it.
func TestParseContractSupersedesSameRate(t *testing.T) {
	contractID := uuid.New()
	rateID := uuid.New()

	tSub := testBase.Add(time.Hour)
	tResub := testBase.Add(2 * time.Hour)

	shared := testSubmitInfo(tSub, "state@example.com")
	rOld := testRateRevision(rateID, testBase, shared)
	rNew := testRateRevision(rateID, testBase.Add(time.Minute), testSubmitInfo(tResub, "state@example.com"))

	rev := testContractRevision(contractID, testBase, shared)
	rev.RateRevisionJoins = []types.RateRevisionsOnContractRevisionTable{
		testLink(&rOld, tSub, false),
		testLink(&rNew, tResub, false),
	}

	raw := &types.ContractTable{ID: contractID, StateCode: "MN", StateNumber: 4, Revisions: []types.ContractRevisionTable{rev}}

	got, err := ParseContractWithHistory(raw)
	if err != nil {
		t.Fatalf("ParseContractWithHistory: %v", err)
	}
	latest := got.PackageSubmissions[0]
	if len(latest.RateRevisions) != 1 {
		t.Fatalf("superseded rate should appear once: %+v", latest.RateRevisions)
	}
	if latest.RateRevisions[0].ID != rNew.ID {
		t.Fatalf("latest set should carry the new revision")
	}
}

func TestParseContractRejectsMultipleDrafts(t *testing.T) {
	contractID := uuid.New()
	raw := &types.ContractTable{
		ID:        contractID,
		StateCode: "MN",
		Revisions: []types.ContractRevisionTable{
			testContractRevision(contractID, testBase, nil),
			testContractRevision(contractID, testBase.Add(time.Minute), nil),
		},
	}
	_, err := ParseContractWithHistory(raw)
	if !domain.IsCode(err, domain.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

func TestParseContractRejectsUnsubmittedLinkedRate(t *testing.T) {
	contractID := uuid.New()
	info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	draft := testRateRevision(uuid.New(), testBase, nil)

	rev := testContractRevision(contractID, testBase, info)
	rev.RateRevisionJoins = []types.RateRevisionsOnContractRevisionTable{
		testLink(&draft, info.UpdatedAt, false),
	}
	raw := &types.ContractTable{ID: contractID, StateCode: "MN", Revisions: []types.ContractRevisionTable{rev}}

	_, err := ParseContractWithHistory(raw)
	if !domain.IsCode(err, domain.CodeInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
}

// Reconstruction is a pure read: parsing the same payload twice yields the
// same history.
func TestParseContractIdempotent(t *testing.T) {
	contractID := uuid.New()
	info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	r1 := testRateRevision(uuid.New(), testBase, info)
	rev := testContractRevision(contractID, testBase, info)
	rev.RateRevisionJoins = []types.RateRevisionsOnContractRevisionTable{testLink(&r1, info.UpdatedAt, false)}
	raw := &types.ContractTable{ID: contractID, StateCode: "MN", StateNumber: 7, Revisions: []types.ContractRevisionTable{rev}}

	first, err := ParseContractWithHistory(raw)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseContractWithHistory(raw)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if len(first.PackageSubmissions) != len(second.PackageSubmissions) {
		t.Fatalf("parses disagree: %d vs %d", len(first.PackageSubmissions), len(second.PackageSubmissions))
	}
	if first.Status != second.Status || first.ConsolidatedStatus != second.ConsolidatedStatus {
		t.Fatalf("statuses disagree: %s/%s vs %s/%s", first.Status, first.ConsolidatedStatus, second.Status, second.ConsolidatedStatus)
	}
}

func TestParseContractUnlockedStatus(t *testing.T) {
	contractID := uuid.New()
	info := testSubmitInfo(testBase.Add(time.Hour), "state@example.com")
	submitted := testContractRevision(contractID, testBase, info)
	draft := testContractRevision(contractID, testBase.Add(2*time.Hour), nil)

	raw := &types.ContractTable{ID: contractID, StateCode: "MN", Revisions: []types.ContractRevisionTable{submitted, draft}}

	got, err := ParseContractWithHistory(raw)
	if err != nil {
		t.Fatalf("ParseContractWithHistory: %v", err)
	}
	if got.Status != domain.StatusUnlocked {
		t.Fatalf("status: got %s, want UNLOCKED", got.Status)
	}
	if got.DraftRevision == nil || got.DraftRevision.ID != draft.ID {
		t.Fatalf("draft revision not surfaced")
	}
}
