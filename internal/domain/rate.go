package domain

import (
	"time"

	"github.com/google/uuid"
)

// RatePackageSubmission is one discrete submission event from the rate's
// perspective: the rate revision live at that moment plus the contract
// revisions it was bundled with.
type RatePackageSubmission struct {
	SubmitInfo         UpdateInfo
	Cause              SubmissionCause
	SubmittedRevisions []SubmittedRevision
	RateRevision       RateRevision
	ContractRevisions  []ContractRevision
}

// Rate is a rate certification, possibly linked to several contracts over its
// lifetime. ParentContractID is the contract that first introduced it.
type Rate struct {
	ID          uuid.UUID
	StateCode   string
	StateNumber int

	ParentContractID uuid.UUID

	Status             Status
	ReviewStatus       ReviewStatus
	ConsolidatedStatus ConsolidatedStatus

	InitiallySubmittedAt *time.Time

	DraftRevision *RateRevision

	// Submitted revisions only, most recent first.
	Revisions []RateRevision

	// One entry per distinct submission event, most recent first.
	PackageSubmissions []RatePackageSubmission

	// Draft contracts currently linked to this rate's draft, stripped of
	// their own draft rates.
	DraftContracts []ContractWithoutDraftRates

	ReviewStatusActions []ReviewStatusAction
}

// LatestSubmission returns the most recent package submission, or nil for a
// never-submitted rate.
func (r *Rate) LatestSubmission() *RatePackageSubmission {
	if len(r.PackageSubmissions) == 0 {
		return nil
	}
	return &r.PackageSubmissions[0]
}
