package history

import (
	"sort"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
)

// revisionSet is one addressable point in a contract's history: a contract
// revision paired with the set of rate revisions active at that moment.
// Mid-life rate link changes produce additional sets for the same contract
// revision, each carrying its own synthesized submit info.
type revisionSet struct {
	contractRev *types.ContractRevisionTable
	submitInfo  domain.UpdateInfo
	unlockInfo  *domain.UpdateInfo
	cause       domain.SubmissionCause

	// Active rate revisions in linkage order; at most one per rate id.
	rateRevs []*types.RateRevisionTable

	// The rate revision whose link change produced this set; nil for the
	// set seeded by the contract's own submission.
	changedRate *types.RateRevisionTable
}

// partitionContractRevisions splits raw revisions into the single current
// draft (if any) and the submitted revisions ordered earliest-first by submit
// time. Two unsubmitted revisions is corrupt history, not user error.
func partitionContractRevisions(contract *types.ContractTable) (*types.ContractRevisionTable, []*types.ContractRevisionTable, error) {
	const op = "history.partitionContractRevisions"

	var draft *types.ContractRevisionTable
	var submitted []*types.ContractRevisionTable
	for i := range contract.Revisions {
		rev := &contract.Revisions[i]
		if rev.SubmitInfo == nil {
			if rev.SubmitInfoID != nil {
				return nil, nil, domain.Invariantf(op, "contract revision %s has submit info id but no submit info loaded", rev.ID)
			}
			if draft != nil {
				return nil, nil, domain.Invariantf(op, "contract %s has multiple draft revisions", contract.ID)
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

// contractRevisionSets reconstructs every addressable historical moment for a
// contract: one set per contract submission, plus one per rate link change
// that happened while that contract revision was live. The result is most
// recent first.
func contractRevisionSets(contract *types.ContractTable) (*types.ContractRevisionTable, []revisionSet, error) {
	const op = "history.contractRevisionSets"

	draft, submitted, err := partitionContractRevisions(contract)
	if err != nil {
		return nil, nil, err
	}

	var sets []revisionSet
	for _, rev := range submitted {
		submitInfo := updateInfoToDomain(rev.SubmitInfo)
		seed := revisionSet{
			contractRev: rev,
			submitInfo:  *submitInfo,
			unlockInfo:  updateInfoToDomain(rev.UnlockInfo),
			cause:       domain.CauseContractSubmission,
		}
		sets = append(sets, seed)
		seedIdx := len(sets) - 1

		joins := make([]types.RateRevisionsOnContractRevisionTable, len(rev.RateRevisionJoins))
		copy(joins, rev.RateRevisionJoins)
		sort.SliceStable(joins, func(i, j int) bool {
			return joins[i].ValidAfter.Before(joins[j].ValidAfter)
		})

		for _, join := range joins {
			rr := join.RateRevision
			if rr == nil {
				return nil, nil, domain.Invariantf(op, "contract revision %s links rate revision %s without a loaded payload", rev.ID, join.RateRevisionID)
			}
			if rr.SubmitInfo == nil {
				return nil, nil, domain.Invariantf(op, "contract revision %s links unsubmitted rate revision %s", rev.ID, rr.ID)
			}

			if !join.ValidAfter.After(rev.SubmitInfo.UpdatedAt) {
				// Present at (or before) the contract's own submission:
				// fold into the seed set, no new history point.
				sets[seedIdx].rateRevs = supersede(sets[seedIdx].rateRevs, rr, join.IsRemoval)
				continue
			}

			// A later link change is its own history point, cloned from the
			// most recent set with the change applied.
			last := sets[len(sets)-1]
			next := revisionSet{
				contractRev: rev,
				submitInfo: domain.UpdateInfo{
					UpdatedAt:     join.ValidAfter,
					UpdatedBy:     rr.SubmitInfo.UpdatedBy,
					UpdatedReason: rr.SubmitInfo.UpdatedReason,
				},
				cause:       linkChangeCause(join, rr),
				rateRevs:    supersede(last.rateRevs, rr, join.IsRemoval),
				changedRate: rr,
			}
			sets = append(sets, next)
		}
	}

	reverseSets(sets)
	return draft, sets, nil
}

// supersede returns a copy of active with any revision of rr's rate removed,
// then rr appended unless the join was a removal. A rate contributes at most
// one revision to any set.
func supersede(active []*types.RateRevisionTable, rr *types.RateRevisionTable, isRemoval bool) []*types.RateRevisionTable {
	out := make([]*types.RateRevisionTable, 0, len(active)+1)
	for _, existing := range active {
		if existing.RateID == rr.RateID {
			continue
		}
		out = append(out, existing)
	}
	if !isRemoval {
		out = append(out, rr)
	}
	return out
}

// linkChangeCause classifies a mid-life link change. A join stamped with the
// rate revision's own submit time is the rate being submitted; otherwise the
// rate was attached or detached by an edit elsewhere.
func linkChangeCause(join types.RateRevisionsOnContractRevisionTable, rr *types.RateRevisionTable) domain.SubmissionCause {
	if join.IsRemoval {
		return domain.CauseRateUnlink
	}
	if rr.SubmitInfo != nil && rr.SubmitInfo.UpdatedAt.Equal(join.ValidAfter) {
		return domain.CauseRateSubmission
	}
	return domain.CauseRateLink
}

func reverseSets(sets []revisionSet) {
	for i, j := 0, len(sets)-1; i < j; i, j = i+1, j-1 {
		sets[i], sets[j] = sets[j], sets[i]
	}
}
