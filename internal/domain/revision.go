package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContractRevision is one versioned snapshot of a contract's form data.
// SubmitInfo present means the snapshot is immutable; absent means it is the
// contract's single current draft.
type ContractRevision struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	SubmitInfo *UpdateInfo
	UnlockInfo *UpdateInfo
	FormData   ContractFormData
}

// RateRevision is one versioned snapshot of a rate certification.
type RateRevision struct {
	ID         uuid.UUID
	RateID     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	SubmitInfo *UpdateInfo
	UnlockInfo *UpdateInfo
	FormData   RateFormData
}

// RevisionKind discriminates the members of a heterogeneous submission
// bundle.
type RevisionKind string

const (
	RevisionKindContract RevisionKind = "CONTRACT"
	RevisionKindRate     RevisionKind = "RATE"
)

// SubmittedRevision is a tagged variant: exactly one of Contract or Rate is
// set, matching Kind. Construct via NewSubmittedContractRevision /
// NewSubmittedRateRevision.
type SubmittedRevision struct {
	Kind     RevisionKind
	Contract *ContractRevision
	Rate     *RateRevision
}

func NewSubmittedContractRevision(rev ContractRevision) SubmittedRevision {
	return SubmittedRevision{Kind: RevisionKindContract, Contract: &rev}
}

func NewSubmittedRateRevision(rev RateRevision) SubmittedRevision {
	return SubmittedRevision{Kind: RevisionKindRate, Rate: &rev}
}

// RevisionID returns the id of whichever revision the variant carries.
func (s SubmittedRevision) RevisionID() uuid.UUID {
	switch s.Kind {
	case RevisionKindContract:
		if s.Contract != nil {
			return s.Contract.ID
		}
	case RevisionKindRate:
		if s.Rate != nil {
			return s.Rate.ID
		}
	}
	return uuid.Nil
}
