package domain

import (
	"sort"
	"time"
)

// Status is the base lifecycle status shared by contracts and rates.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnlocked    Status = "UNLOCKED"
	StatusResubmitted Status = "RESUBMITTED"
)

// ConsolidatedStatus overlays the review outcome on the base status.
type ConsolidatedStatus string

const (
	ConsolidatedDraft       ConsolidatedStatus = "DRAFT"
	ConsolidatedSubmitted   ConsolidatedStatus = "SUBMITTED"
	ConsolidatedUnlocked    ConsolidatedStatus = "UNLOCKED"
	ConsolidatedResubmitted ConsolidatedStatus = "RESUBMITTED"
	ConsolidatedApproved    ConsolidatedStatus = "APPROVED"
	ConsolidatedWithdrawn   ConsolidatedStatus = "WITHDRAWN"
)

// ReviewStatus is derived from the latest review action, if any.
type ReviewStatus string

const (
	ReviewUnderReview ReviewStatus = "UNDER_REVIEW"
	ReviewApproved    ReviewStatus = "APPROVED"
	ReviewWithdrawn   ReviewStatus = "WITHDRAWN"
)

// ReviewActionType is a CMS reviewer action recorded against a contract or
// rate, independent of the revision lifecycle.
type ReviewActionType string

const (
	ReviewActionMarkApproved ReviewActionType = "MARK_APPROVED"
	ReviewActionWithdraw     ReviewActionType = "WITHDRAW"
	ReviewActionUnderReview  ReviewActionType = "UNDER_REVIEW"
)

// ReviewStatusAction is one reviewer action with its audit info.
type ReviewStatusAction struct {
	UpdatedAt     time.Time
	UpdatedBy     string
	UpdatedReason string
	ActionType    ReviewActionType
}

// RevisionStamp is the minimal view of a revision the status classifier
// needs. Adapters below build stamps from either revision kind.
type RevisionStamp struct {
	CreatedAt  time.Time
	SubmitInfo *UpdateInfo
}

func ContractRevisionStamps(revs []ContractRevision) []RevisionStamp {
	out := make([]RevisionStamp, 0, len(revs))
	for _, r := range revs {
		out = append(out, RevisionStamp{CreatedAt: r.CreatedAt, SubmitInfo: r.SubmitInfo})
	}
	return out
}

func RateRevisionStamps(revs []RateRevision) []RevisionStamp {
	out := make([]RevisionStamp, 0, len(revs))
	for _, r := range revs {
		out = append(out, RevisionStamp{CreatedAt: r.CreatedAt, SubmitInfo: r.SubmitInfo})
	}
	return out
}

// StatusFromStamps derives the lifecycle status from a revision list. An
// empty list is a hard error, never defaulted: every persisted submission has
// at least its initial draft revision.
func StatusFromStamps(stamps []RevisionStamp) (Status, error) {
	if len(stamps) == 0 {
		return "", Invariantf("domain.StatusFromStamps", "no revisions on this submission")
	}
	ordered := make([]RevisionStamp, len(stamps))
	copy(ordered, stamps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	latest := ordered[0]
	if len(ordered) == 1 {
		if latest.SubmitInfo != nil {
			return StatusSubmitted, nil
		}
		return StatusDraft, nil
	}
	if latest.SubmitInfo == nil {
		return StatusUnlocked, nil
	}
	return StatusResubmitted, nil
}

// ReviewStatusFromActions derives the review status from reviewer actions,
// most recent action wins. No actions means the package is simply under
// review.
func ReviewStatusFromActions(actions []ReviewStatusAction) ReviewStatus {
	if len(actions) == 0 {
		return ReviewUnderReview
	}
	latest := actions[0]
	for _, a := range actions[1:] {
		if a.UpdatedAt.After(latest.UpdatedAt) {
			latest = a
		}
	}
	switch latest.ActionType {
	case ReviewActionMarkApproved:
		return ReviewApproved
	case ReviewActionWithdraw:
		return ReviewWithdrawn
	default:
		return ReviewUnderReview
	}
}

// Consolidate overlays the review status on the base lifecycle status.
// Approval and withdrawal only apply to packages that have been submitted at
// least once, so a draft never reports APPROVED.
func Consolidate(status Status, review ReviewStatus) ConsolidatedStatus {
	if status != StatusDraft {
		switch review {
		case ReviewApproved:
			return ConsolidatedApproved
		case ReviewWithdrawn:
			return ConsolidatedWithdrawn
		}
	}
	return ConsolidatedStatus(status)
}

// InitiallySubmittedAt returns the earliest submission time across stamps, or
// nil when nothing has been submitted. The initial submission date never
// changes across unlock/resubmit cycles.
func InitiallySubmittedAt(stamps []RevisionStamp) *time.Time {
	var earliest *time.Time
	for _, s := range stamps {
		if s.SubmitInfo == nil {
			continue
		}
		t := s.SubmitInfo.UpdatedAt
		if earliest == nil || t.Before(*earliest) {
			earliest = &t
		}
	}
	return earliest
}
