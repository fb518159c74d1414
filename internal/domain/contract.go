package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContractPackageSubmission is one discrete submission event from the
// contract's perspective: the contract revision live at that moment plus the
// full set of rate revisions that were active alongside it.
type ContractPackageSubmission struct {
	SubmitInfo         UpdateInfo
	Cause              SubmissionCause
	SubmittedRevisions []SubmittedRevision
	ContractRevision   ContractRevision
	RateRevisions      []RateRevision
}

// SubmissionCause explains why a package submission entry exists. Mid-life
// rate link changes produce entries without a contract resubmission.
type SubmissionCause string

const (
	CauseContractSubmission SubmissionCause = "CONTRACT_SUBMISSION"
	CauseRateSubmission     SubmissionCause = "RATE_SUBMISSION"
	CauseRateLink           SubmissionCause = "RATE_LINK"
	CauseRateUnlink         SubmissionCause = "RATE_UNLINK"
)

// ContractWithoutDraftRates is the relation-stripped contract aggregate. It
// is what rate reconstruction descends into, so the contract -> rates ->
// parent contract cycle never recurses.
type ContractWithoutDraftRates struct {
	ID          uuid.UUID
	StateCode   string
	StateNumber int

	Status             Status
	ReviewStatus       ReviewStatus
	ConsolidatedStatus ConsolidatedStatus

	InitiallySubmittedAt *time.Time

	DraftRevision *ContractRevision

	// Submitted revisions only, most recent first.
	Revisions []ContractRevision

	// One entry per distinct submission event, most recent first.
	PackageSubmissions []ContractPackageSubmission

	ReviewStatusActions []ReviewStatusAction
}

// Contract is the full aggregate, including the in-progress rates attached to
// the current draft.
type Contract struct {
	ContractWithoutDraftRates

	DraftRates []Rate
}

// LatestSubmission returns the most recent package submission, or nil for a
// never-submitted contract.
func (c *ContractWithoutDraftRates) LatestSubmission() *ContractPackageSubmission {
	if len(c.PackageSubmissions) == 0 {
		return nil
	}
	return &c.PackageSubmissions[0]
}
