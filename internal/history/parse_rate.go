package history

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
	"github.com/mcreview/mcreview-backend/internal/validation"
)

// placeholderParentContractID stands in for a draft rate's parent while the
// contract side of the graph is still being reconstructed. It must be patched
// with the real owner before a Rate leaves this package; callers never see it.
var placeholderParentContractID = uuid.MustParse("00000000-1111-2222-3333-444444444444")

type rateParseOpts struct {
	// includeDraftContracts descends into the stripped projection of each
	// draft contract linked to this rate. Off for dashboard listings and for
	// rates reached from a contract parse, where descending back would
	// recurse.
	includeDraftContracts bool
}

// ParseRateWithHistory turns one raw nested rate payload into the full domain
// aggregate.
func ParseRateWithHistory(raw *types.RateTable) (*domain.Rate, error) {
	return parseRate(raw, rateParseOpts{includeDraftContracts: true})
}

// ParseRateStripped is the reduced dashboard projection: same reconstruction,
// no draft-contract descent.
func ParseRateStripped(raw *types.RateTable) (*domain.Rate, error) {
	return parseRate(raw, rateParseOpts{})
}

func parseRate(raw *types.RateTable, opts rateParseOpts) (*domain.Rate, error) {
	const op = "history.parseRate"

	draft, submitted, err := partitionRateRevisions(raw)
	if err != nil {
		return nil, err
	}

	stamps := make([]domain.RevisionStamp, 0, len(raw.Revisions))
	for i := range raw.Revisions {
		stamps = append(stamps, domain.RevisionStamp{
			CreatedAt:  raw.Revisions[i].CreatedAt,
			SubmitInfo: updateInfoToDomain(raw.Revisions[i].SubmitInfo),
		})
	}
	status, err := domain.StatusFromStamps(stamps)
	if err != nil {
		return nil, domain.Invariantf(op, "rate %s: %v", raw.ID, err)
	}

	reviewActions := rateReviewActionsToDomain(raw.ReviewStatusActions)
	reviewStatus := domain.ReviewStatusFromActions(reviewActions)

	rate := &domain.Rate{
		ID:                   raw.ID,
		StateCode:            raw.StateCode,
		StateNumber:          raw.StateNumber,
		ParentContractID:     placeholderParentContractID,
		Status:               status,
		ReviewStatus:         reviewStatus,
		ConsolidatedStatus:   domain.Consolidate(status, reviewStatus),
		InitiallySubmittedAt: domain.InitiallySubmittedAt(stamps),
		ReviewStatusActions:  reviewActions,
	}

	if draft != nil {
		rev := rateRevisionToDomain(draft)
		if err := validation.RateFormData(rev.FormData, validation.TierDraft, validation.Flags{}); err != nil {
			return nil, err
		}
		rate.DraftRevision = &rev
	}

	for _, rev := range submitted {
		dom := rateRevisionToDomain(rev)
		if err := validation.RateFormData(dom.FormData, validation.TierDraft, validation.Flags{}); err != nil {
			return nil, err
		}
		rate.Revisions = append(rate.Revisions, dom)

		subs, err := ratePackageSubmissions(raw, rev)
		if err != nil {
			return nil, err
		}
		rate.PackageSubmissions = append(rate.PackageSubmissions, subs...)
	}

	// Most recent first, across all revisions' events.
	sort.SliceStable(rate.PackageSubmissions, func(i, j int) bool {
		return rate.PackageSubmissions[i].SubmitInfo.UpdatedAt.After(rate.PackageSubmissions[j].SubmitInfo.UpdatedAt)
	})
	reverseRateRevisions(rate.Revisions)

	if err := resolveParentContract(raw, rate, submitted); err != nil {
		return nil, err
	}

	if opts.includeDraftContracts {
		joins := make([]types.DraftRateJoinTable, len(raw.DraftContractJoins))
		copy(joins, raw.DraftContractJoins)
		sort.SliceStable(joins, func(i, j int) bool { return joins[i].RatePosition < joins[j].RatePosition })
		for _, join := range joins {
			if join.Contract == nil {
				return nil, domain.Invariantf(op, "rate %s draft links contract %s without a loaded payload", raw.ID, join.ContractID)
			}
			stripped, err := ParseContractWithoutDraftRates(join.Contract)
			if err != nil {
				return nil, err
			}
			rate.DraftContracts = append(rate.DraftContracts, *stripped)
		}
	}

	return rate, nil
}

func partitionRateRevisions(rate *types.RateTable) (*types.RateRevisionTable, []*types.RateRevisionTable, error) {
	const op = "history.partitionRateRevisions"

	var draft *types.RateRevisionTable
	var submitted []*types.RateRevisionTable
	for i := range rate.Revisions {
		rev := &rate.Revisions[i]
		if rev.SubmitInfo == nil {
			if rev.SubmitInfoID != nil {
				return nil, nil, domain.Invariantf(op, "rate revision %s has submit info id but no submit info loaded", rev.ID)
			}
			if draft != nil {
				return nil, nil, domain.Invariantf(op, "rate %s has multiple draft revisions", rate.ID)
			}
			draft = rev
			continue
		}
		submitted = append(submitted, rev)
	}

	sort.SliceStable(submitted, func(i, j int) bool {
		ti, tj := submitted[i].SubmitInfo.UpdatedAt, submitted[j].SubmitInfo.UpdatedAt
		if ti.Equal(tj) {
			return submitted[i].CreatedAt.Before(submitted[j].CreatedAt)
		}
		return ti.Before(tj)
	})
	return draft, submitted, nil
}

// ratePackageSubmissions reconstructs one submitted rate revision's
// participation in history, grouped by submission event.
func ratePackageSubmissions(raw *types.RateTable, rev *types.RateRevisionTable) ([]domain.RatePackageSubmission, error) {
	const op = "history.ratePackageSubmissions"

	byEvent := make(map[uuid.UUID][]types.SubmissionPackageTable)
	var order []uuid.UUID
	for _, pkg := range rev.SubmissionPackages {
		if _, seen := byEvent[pkg.SubmissionID]; !seen {
			order = append(order, pkg.SubmissionID)
		}
		byEvent[pkg.SubmissionID] = append(byEvent[pkg.SubmissionID], pkg)
	}

	var subs []domain.RatePackageSubmission
	for _, eventID := range order {
		pkgs := byEvent[eventID]

		var event *types.UpdateInfoTable
		for i := range pkgs {
			if pkgs[i].Submission != nil {
				event = pkgs[i].Submission
				break
			}
		}
		if event == nil {
			return nil, domain.Invariantf(op, "rate revision %s references submission %s without a loaded payload", rev.ID, eventID)
		}

		sub := domain.RatePackageSubmission{
			SubmitInfo:   *updateInfoToDomain(event),
			Cause:        rateSubmissionCause(rev, event),
			RateRevision: rateRevisionToDomain(rev),
		}

		ordered := make([]types.SubmissionPackageTable, len(pkgs))
		copy(ordered, pkgs)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].RatePosition < ordered[j].RatePosition })
		for _, pkg := range ordered {
			if pkg.ContractRevision == nil {
				return nil, domain.Invariantf(op, "submission %s pairs rate revision %s with contract revision %s but the payload is missing",
					eventID, rev.ID, pkg.ContractRevisionID)
			}
			sub.ContractRevisions = append(sub.ContractRevisions, contractRevisionToDomain(pkg.ContractRevision))
		}

		for i := range event.SubmittedContracts {
			sub.SubmittedRevisions = append(sub.SubmittedRevisions,
				domain.NewSubmittedContractRevision(contractRevisionToDomain(&event.SubmittedContracts[i])))
		}
		for i := range event.SubmittedRates {
			sub.SubmittedRevisions = append(sub.SubmittedRevisions,
				domain.NewSubmittedRateRevision(rateRevisionToDomain(&event.SubmittedRates[i])))
		}

		subs = append(subs, sub)
	}

	return subs, nil
}

// rateSubmissionCause mirrors the contract-side tagging: an event that
// submitted any contract is a contract submission; the rate's own submit
// event without one is a rate submission; anything else is a link change
// carrying this revision forward.
func rateSubmissionCause(rev *types.RateRevisionTable, event *types.UpdateInfoTable) domain.SubmissionCause {
	if len(event.SubmittedContracts) > 0 {
		return domain.CauseContractSubmission
	}
	if rev.SubmitInfoID != nil && *rev.SubmitInfoID == event.ID {
		return domain.CauseRateSubmission
	}
	return domain.CauseRateLink
}

// resolveParentContract fixes ParentContractID. A submitted rate's parent is
// the single contract bundled in its first submission. A never-submitted
// draft's parent cannot be read from history, so the placeholder is patched
// from the single draft contract that owns the rate.
func resolveParentContract(raw *types.RateTable, rate *domain.Rate, submitted []*types.RateRevisionTable) error {
	const op = "history.resolveParentContract"

	if len(submitted) > 0 {
		first := submitted[0]
		event := first.SubmitInfo
		if len(event.SubmittedContracts) == 0 {
			return domain.Invariantf(op, "rate %s first submission %s bundled no contract; the rate predates submission packages and needs backfill",
				raw.ID, event.ID)
		}
		if len(event.SubmittedContracts) > 1 {
			return domain.Invariantf(op, "rate %s first submission %s bundled %d contracts, expected exactly one",
				raw.ID, event.ID, len(event.SubmittedContracts))
		}
		rate.ParentContractID = event.SubmittedContracts[0].ContractID
		return nil
	}

	// Patch step: only the draft-contract join knows the owner.
	if len(raw.DraftContractJoins) == 0 {
		return domain.Invariantf(op, "draft rate %s has no owning draft contract", raw.ID)
	}
	if len(raw.DraftContractJoins) > 1 {
		return domain.Invariantf(op, "draft rate %s is owned by %d draft contracts, expected exactly one",
			raw.ID, len(raw.DraftContractJoins))
	}
	rate.ParentContractID = raw.DraftContractJoins[0].ContractID
	return nil
}

func reverseRateRevisions(revs []domain.RateRevision) {
	for i, j := 0, len(revs)-1; i < j; i, j = i+1, j-1 {
		revs[i], revs[j] = revs[j], revs[i]
	}
}
