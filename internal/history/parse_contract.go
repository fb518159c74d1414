package history

import (
	"sort"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
	"github.com/mcreview/mcreview-backend/internal/validation"
)

// ParseContractWithHistory turns one raw nested contract payload into the
// full domain aggregate, draft rates included. Reconstruction either succeeds
// completely or fails; a single malformed revision fails the whole contract
// rather than returning a partial history.
func ParseContractWithHistory(raw *types.ContractTable) (*domain.Contract, error) {
	base, err := ParseContractWithoutDraftRates(raw)
	if err != nil {
		return nil, err
	}

	contract := &domain.Contract{ContractWithoutDraftRates: *base}

	joins := make([]types.DraftRateJoinTable, len(raw.DraftRateJoins))
	copy(joins, raw.DraftRateJoins)
	sort.SliceStable(joins, func(i, j int) bool { return joins[i].RatePosition < joins[j].RatePosition })

	for _, join := range joins {
		if join.Rate == nil {
			return nil, domain.Invariantf("history.ParseContractWithHistory",
				"contract %s draft links rate %s without a loaded payload", raw.ID, join.RateID)
		}
		// Draft rates are parsed without their own draft contracts; the
		// parent side of that relation is the contract being parsed right
		// here, and descending back into it would recurse forever.
		rate, err := parseRate(join.Rate, rateParseOpts{})
		if err != nil {
			return nil, err
		}
		contract.DraftRates = append(contract.DraftRates, *rate)
	}

	return contract, nil
}

// ParseContractWithoutDraftRates is the relation-stripped reconstruction used
// from the rate side of the graph and for CMS dashboard listings.
func ParseContractWithoutDraftRates(raw *types.ContractTable) (*domain.ContractWithoutDraftRates, error) {
	draft, sets, err := contractRevisionSets(raw)
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
		return nil, domain.Invariantf("history.ParseContractWithoutDraftRates",
			"contract %s: %v", raw.ID, err)
	}

	reviewActions := contractReviewActionsToDomain(raw.ReviewStatusActions)
	reviewStatus := domain.ReviewStatusFromActions(reviewActions)

	contract := &domain.ContractWithoutDraftRates{
		ID:                   raw.ID,
		StateCode:            raw.StateCode,
		StateNumber:          raw.StateNumber,
		Status:               status,
		ReviewStatus:         reviewStatus,
		ConsolidatedStatus:   domain.Consolidate(status, reviewStatus),
		InitiallySubmittedAt: domain.InitiallySubmittedAt(stamps),
		ReviewStatusActions:  reviewActions,
	}

	if draft != nil {
		rev := contractRevisionToDomain(draft)
		if err := validation.ContractFormData(rev.FormData, validation.TierDraft, validation.Flags{}); err != nil {
			return nil, err
		}
		contract.DraftRevision = &rev
	}

	for _, set := range sets {
		sub := packageSubmissionFromSet(set)
		contract.PackageSubmissions = append(contract.PackageSubmissions, *sub)

		// Each contract revision seeds exactly one CONTRACT_SUBMISSION set,
		// so the seeds in most-recent-first set order are the submitted
		// revision list.
		if set.cause == domain.CauseContractSubmission {
			rev := sub.ContractRevision
			if err := validation.ContractFormData(rev.FormData, validation.TierDraft, validation.Flags{}); err != nil {
				return nil, err
			}
			contract.Revisions = append(contract.Revisions, rev)
		}
	}

	return contract, nil
}

func packageSubmissionFromSet(set revisionSet) *domain.ContractPackageSubmission {
	sub := &domain.ContractPackageSubmission{
		SubmitInfo:       set.submitInfo,
		Cause:            set.cause,
		ContractRevision: contractRevisionToDomain(set.contractRev),
	}

	for _, rr := range set.rateRevs {
		sub.RateRevisions = append(sub.RateRevisions, rateRevisionToDomain(rr))
	}

	switch {
	case set.changedRate != nil:
		sub.SubmittedRevisions = []domain.SubmittedRevision{
			domain.NewSubmittedRateRevision(rateRevisionToDomain(set.changedRate)),
		}
	default:
		sub.SubmittedRevisions = append(sub.SubmittedRevisions,
			domain.NewSubmittedContractRevision(sub.ContractRevision))
		for _, rr := range set.rateRevs {
			if rr.SubmitInfoID == nil || set.contractRev.SubmitInfoID == nil {
				continue
			}
			if *rr.SubmitInfoID == *set.contractRev.SubmitInfoID {
				sub.SubmittedRevisions = append(sub.SubmittedRevisions,
					domain.NewSubmittedRateRevision(rateRevisionToDomain(rr)))
			}
		}
	}

	return sub
}
