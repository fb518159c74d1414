package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/history"
	"github.com/mcreview/mcreview-backend/internal/types"
	"github.com/mcreview/mcreview-backend/internal/validation"
)

// contractHistoryPreloads loads the full nested payload the history package
// reconstructs from, in one query tree.
func contractHistoryPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Revisions.SubmitInfo").
		Preload("Revisions.UnlockInfo").
		Preload("Revisions.ContractDocuments").
		Preload("Revisions.SupportingDocuments").
		Preload("Revisions.StateContacts").
		Preload("Revisions.RateRevisionJoins.RateRevision.SubmitInfo").
		Preload("Revisions.RateRevisionJoins.RateRevision.UnlockInfo").
		Preload("Revisions.RateRevisionJoins.RateRevision.RateDocuments").
		Preload("Revisions.RateRevisionJoins.RateRevision.SupportingDocuments").
		Preload("Revisions.RateRevisionJoins.RateRevision.ActuaryContacts").
		Preload("ReviewStatusActions").
		Preload("DraftRateJoins.Rate.Revisions.SubmitInfo.SubmittedContracts").
		Preload("DraftRateJoins.Rate.Revisions.UnlockInfo").
		Preload("DraftRateJoins.Rate.Revisions.RateDocuments").
		Preload("DraftRateJoins.Rate.Revisions.SupportingDocuments").
		Preload("DraftRateJoins.Rate.Revisions.ActuaryContacts").
		Preload("DraftRateJoins.Rate.Revisions.SubmissionPackages.Submission.SubmittedContracts").
		Preload("DraftRateJoins.Rate.Revisions.SubmissionPackages.Submission.SubmittedRates").
		Preload("DraftRateJoins.Rate.Revisions.SubmissionPackages.ContractRevision.SubmitInfo").
		Preload("DraftRateJoins.Rate.DraftContractJoins").
		Preload("DraftRateJoins.Rate.ReviewStatusActions")
}

func contractDashboardPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Revisions.SubmitInfo").
		Preload("Revisions.UnlockInfo").
		Preload("Revisions.ContractDocuments").
		Preload("Revisions.SupportingDocuments").
		Preload("Revisions.StateContacts").
		Preload("Revisions.RateRevisionJoins.RateRevision.SubmitInfo").
		Preload("Revisions.RateRevisionJoins.RateRevision.RateDocuments").
		Preload("Revisions.RateRevisionJoins.RateRevision.SupportingDocuments").
		Preload("Revisions.RateRevisionJoins.RateRevision.ActuaryContacts").
		Preload("ReviewStatusActions")
}

// FindContractWithHistory fetches one contract's nested payload and
// reconstructs the full domain aggregate.
func (s *Store) FindContractWithHistory(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	const op = "store.FindContractWithHistory"

	var raw types.ContractTable
	if err := contractHistoryPreloads(s.db.WithContext(ctx)).First(&raw, "id = ?", id).Error; err != nil {
		return nil, mapDBError(op, err)
	}
	return history.ParseContractWithHistory(&raw)
}

// FindAllContractsByState lists a state's submitted contracts in the CMS
// dashboard shape. A contract whose history cannot be reconstructed is
// excluded and reported, never fatal for the listing.
func (s *Store) FindAllContractsByState(ctx context.Context, stateCode string) ([]*domain.ContractWithoutDraftRates, []history.ParseFailure, error) {
	const op = "store.FindAllContractsByState"

	var raws []*types.ContractTable
	q := contractDashboardPreloads(s.db.WithContext(ctx)).
		Where("state_code = ?", stateCode).
		Where("EXISTS (SELECT 1 FROM contract_revision cr WHERE cr.contract_id = contract.id AND cr.submit_info_id IS NOT NULL)").
		Order("state_number ASC")
	if err := q.Find(&raws).Error; err != nil {
		return nil, nil, mapDBError(op, err)
	}

	parsed, failed := history.ParseContractsForDashboard(ctx, raws, s.log)
	return parsed, failed, nil
}

// InsertContractArgs creates a contract with its initial draft revision.
type InsertContractArgs struct {
	StateCode string
	FormData  domain.ContractFormData
}

func (s *Store) InsertContract(ctx context.Context, args InsertContractArgs) (*domain.Contract, error) {
	const op = "store.InsertContract"

	if err := validation.ContractFormData(args.FormData, validation.TierDraft, validation.Flags{}); err != nil {
		return nil, err
	}

	var contractID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stateNumber, err := nextStateSubmissionNumber(tx, args.StateCode)
		if err != nil {
			return err
		}

		contract := types.ContractTable{
			ID:          uuid.New(),
			StateCode:   args.StateCode,
			StateNumber: stateNumber,
		}
		if err := tx.Create(&contract).Error; err != nil {
			return mapDBError(op, err)
		}
		contractID = contract.ID

		draft := types.ContractRevisionTable{
			ID:         uuid.New(),
			ContractID: contract.ID,
		}
		applyContractFormData(&draft, args.FormData)
		if err := tx.Create(&draft).Error; err != nil {
			return mapDBError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contract created", "contract_id", contractID, "state_code", args.StateCode)
	return s.FindContractWithHistory(ctx, contractID)
}

// SubmitContractArgs converts the current draft into a submitted revision,
// submitting any linked draft rates in the same event.
type SubmitContractArgs struct {
	ContractID      uuid.UUID
	SubmittedBy     string
	SubmittedReason string
	EQRO            bool
	Flags           validation.Flags
}

func (s *Store) SubmitContract(ctx context.Context, args SubmitContractArgs) (*domain.Contract, error) {
	const op = "store.SubmitContract"

	var contractID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var raw types.ContractTable
		if err := contractHistoryPreloads(tx).First(&raw, "id = ?", args.ContractID).Error; err != nil {
			return mapDBError(op, err)
		}
		contractID = raw.ID

		draft := findDraftContractRevision(&raw)
		if draft == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"contract "+raw.ID.String()+" has no draft revision to submit", nil)
		}

		// Final gate before anything is written: the draft plus every
		// linked draft rate must pass the submit tier together.
		parsed, err := history.ParseContractWithHistory(&raw)
		if err != nil {
			return err
		}
		tier := validation.TierSubmit
		if args.EQRO {
			tier = validation.TierSubmitEQRO
		}
		draftRateForms := make([]domain.RateFormData, 0, len(parsed.DraftRates))
		for _, r := range parsed.DraftRates {
			if r.DraftRevision != nil {
				draftRateForms = append(draftRateForms, r.DraftRevision.FormData)
			}
		}
		if parsed.DraftRevision == nil {
			return domain.Invariantf(op, "contract %s draft disappeared during submit", raw.ID)
		}
		if err := validation.ContractSubmission(parsed.DraftRevision.FormData, draftRateForms, tier, args.Flags); err != nil {
			return err
		}

		now := time.Now().UTC()
		submitInfo := types.UpdateInfoTable{
			ID:            uuid.New(),
			UpdatedAt:     now,
			UpdatedBy:     args.SubmittedBy,
			UpdatedReason: args.SubmittedReason,
		}
		if err := tx.Create(&submitInfo).Error; err != nil {
			return mapDBError(op, err)
		}

		if err := tx.Model(&types.ContractRevisionTable{}).
			Where("id = ?", draft.ID).
			Update("submit_info_id", submitInfo.ID).Error; err != nil {
			return mapDBError(op, err)
		}

		// Submit linked draft rates and wire the linkage history for this
		// submission.
		for position, join := range raw.DraftRateJoins {
			rate := join.Rate
			if rate == nil {
				return domain.Invariantf(op, "contract %s draft links rate %s without a loaded payload", raw.ID, join.RateID)
			}
			effective, err := submitLinkedRate(tx, op, rate, submitInfo)
			if err != nil {
				return err
			}

			link := types.RateRevisionsOnContractRevisionTable{
				ContractRevisionID: draft.ID,
				RateRevisionID:     effective,
				ValidAfter:         now,
			}
			if err := tx.Create(&link).Error; err != nil {
				return mapDBError(op, err)
			}

			pkg := types.SubmissionPackageTable{
				SubmissionID:       submitInfo.ID,
				ContractRevisionID: draft.ID,
				RateRevisionID:     effective,
				RatePosition:       position,
			}
			if err := tx.Create(&pkg).Error; err != nil {
				return mapDBError(op, err)
			}
		}

		// The draft joins are consumed by this submission; a later unlock
		// rebuilds them from the revision's linkage history. Leaving them in
		// place would make a submitted contract report draft rates it no
		// longer has.
		if err := tx.Where("contract_id = ?", raw.ID).Delete(&types.DraftRateJoinTable{}).Error; err != nil {
			return mapDBError(op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contract submitted", "contract_id", contractID, "submitted_by", args.SubmittedBy)
	return s.FindContractWithHistory(ctx, contractID)
}

// submitLinkedRate assigns the shared submit info to a linked rate's draft
// revision, or reuses its latest submitted revision when the rate is linked
// unchanged. Returns the revision id that is active for this submission.
func submitLinkedRate(tx *gorm.DB, op string, rate *types.RateTable, submitInfo types.UpdateInfoTable) (uuid.UUID, error) {
	var draft *types.RateRevisionTable
	var latest *types.RateRevisionTable
	for i := range rate.Revisions {
		rev := &rate.Revisions[i]
		if rev.SubmitInfo == nil && rev.SubmitInfoID == nil {
			if draft != nil {
				return uuid.Nil, domain.Invariantf(op, "rate %s has multiple draft revisions", rate.ID)
			}
			draft = rev
			continue
		}
		if latest == nil || (rev.SubmitInfo != nil && latest.SubmitInfo != nil &&
			rev.SubmitInfo.UpdatedAt.After(latest.SubmitInfo.UpdatedAt)) {
			latest = rev
		}
	}

	if draft != nil {
		if err := tx.Model(&types.RateRevisionTable{}).
			Where("id = ?", draft.ID).
			Update("submit_info_id", submitInfo.ID).Error; err != nil {
			return uuid.Nil, mapDBError(op, err)
		}
		return draft.ID, nil
	}
	if latest == nil {
		return uuid.Nil, domain.Invariantf(op, "rate %s is linked with no revision to submit", rate.ID)
	}
	return latest.ID, nil
}

// UnlockContractArgs reopens a submitted contract for editing, carrying the
// prior form data forward into a fresh draft. Linked rates unlock with it.
type UnlockContractArgs struct {
	ContractID     uuid.UUID
	UnlockedBy     string
	UnlockedReason string
}

func (s *Store) UnlockContract(ctx context.Context, args UnlockContractArgs) (*domain.Contract, error) {
	const op = "store.UnlockContract"

	var contractID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var raw types.ContractTable
		if err := contractHistoryPreloads(tx).First(&raw, "id = ?", args.ContractID).Error; err != nil {
			return mapDBError(op, err)
		}
		contractID = raw.ID

		if findDraftContractRevision(&raw) != nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"contract "+raw.ID.String()+" already has a draft revision", nil)
		}
		latest := latestSubmittedContractRevision(&raw)
		if latest == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"contract "+raw.ID.String()+" has never been submitted", nil)
		}

		unlockInfo := types.UpdateInfoTable{
			ID:            uuid.New(),
			UpdatedAt:     time.Now().UTC(),
			UpdatedBy:     args.UnlockedBy,
			UpdatedReason: args.UnlockedReason,
		}
		if err := tx.Create(&unlockInfo).Error; err != nil {
			return mapDBError(op, err)
		}

		draft := types.ContractRevisionTable{
			ID:           uuid.New(),
			ContractID:   raw.ID,
			UnlockInfoID: &unlockInfo.ID,
		}
		applyContractFormData(&draft, history.ContractRevisionFormData(latest))
		if err := tx.Create(&draft).Error; err != nil {
			return mapDBError(op, err)
		}

		// The new draft starts linked to the rates active at the latest
		// submitted revision; each of those rates gets its own fresh draft
		// carrying the same unlock info.
		active := activeRateRevisions(latest)
		if err := tx.Where("contract_id = ?", raw.ID).Delete(&types.DraftRateJoinTable{}).Error; err != nil {
			return mapDBError(op, err)
		}
		for position, rr := range active {
			join := types.DraftRateJoinTable{
				ContractID:   raw.ID,
				RateID:       rr.RateID,
				RatePosition: position,
			}
			if err := tx.Create(&join).Error; err != nil {
				return mapDBError(op, err)
			}
			if err := unlockRateRevision(tx, op, rr, unlockInfo); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("contract unlocked", "contract_id", contractID, "unlocked_by", args.UnlockedBy)
	return s.FindContractWithHistory(ctx, contractID)
}

// UpdateDraftContract replaces the current draft's form data.
func (s *Store) UpdateDraftContract(ctx context.Context, contractID uuid.UUID, fd domain.ContractFormData) (*domain.Contract, error) {
	const op = "store.UpdateDraftContract"

	if err := validation.ContractFormData(fd, validation.TierDraft, validation.Flags{}); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var raw types.ContractTable
		if err := contractHistoryPreloads(tx).First(&raw, "id = ?", contractID).Error; err != nil {
			return mapDBError(op, err)
		}
		draft := findDraftContractRevision(&raw)
		if draft == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"contract "+raw.ID.String()+" has no draft revision to update", nil)
		}

		if err := clearContractRevisionChildren(tx, op, draft.ID); err != nil {
			return err
		}

		updated := types.ContractRevisionTable{ID: draft.ID, ContractID: raw.ID, CreatedAt: draft.CreatedAt, UnlockInfoID: draft.UnlockInfoID}
		applyContractFormData(&updated, fd)
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&updated).Error; err != nil {
			return mapDBError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindContractWithHistory(ctx, contractID)
}

func clearContractRevisionChildren(tx *gorm.DB, op string, revisionID uuid.UUID) error {
	if err := tx.Where("contract_revision_id = ?", revisionID).Delete(&types.ContractDocumentTable{}).Error; err != nil {
		return mapDBError(op, err)
	}
	if err := tx.Where("contract_revision_id = ?", revisionID).Delete(&types.ContractSupportingDocumentTable{}).Error; err != nil {
		return mapDBError(op, err)
	}
	if err := tx.Where("contract_revision_id = ?", revisionID).Delete(&types.StateContactTable{}).Error; err != nil {
		return mapDBError(op, err)
	}
	return nil
}

func findDraftContractRevision(raw *types.ContractTable) *types.ContractRevisionTable {
	for i := range raw.Revisions {
		if raw.Revisions[i].SubmitInfoID == nil {
			return &raw.Revisions[i]
		}
	}
	return nil
}

func latestSubmittedContractRevision(raw *types.ContractTable) *types.ContractRevisionTable {
	var latest *types.ContractRevisionTable
	for i := range raw.Revisions {
		rev := &raw.Revisions[i]
		if rev.SubmitInfo == nil {
			continue
		}
		if latest == nil || rev.SubmitInfo.UpdatedAt.After(latest.SubmitInfo.UpdatedAt) {
			latest = rev
		}
	}
	return latest
}

// activeRateRevisions folds a submitted revision's linkage history down to
// the rates still attached at the end of its life, one revision per rate.
func activeRateRevisions(rev *types.ContractRevisionTable) []*types.RateRevisionTable {
	joins := make([]types.RateRevisionsOnContractRevisionTable, len(rev.RateRevisionJoins))
	copy(joins, rev.RateRevisionJoins)
	sortJoinsByValidAfter(joins)

	byRate := make(map[uuid.UUID]*types.RateRevisionTable)
	ordered := make(map[uuid.UUID]bool)
	var order []uuid.UUID
	for i := range joins {
		join := joins[i]
		if join.RateRevision == nil {
			continue
		}
		rateID := join.RateRevision.RateID
		if join.IsRemoval {
			delete(byRate, rateID)
			continue
		}
		// Membership in order is tracked separately from byRate so a rate
		// removed and linked again keeps a single position.
		if !ordered[rateID] {
			ordered[rateID] = true
			order = append(order, rateID)
		}
		byRate[rateID] = join.RateRevision
	}

	out := make([]*types.RateRevisionTable, 0, len(byRate))
	for _, rateID := range order {
		if rr, ok := byRate[rateID]; ok {
			out = append(out, rr)
		}
	}
	return out
}

func sortJoinsByValidAfter(joins []types.RateRevisionsOnContractRevisionTable) {
	sort.SliceStable(joins, func(i, j int) bool { return joins[i].ValidAfter.Before(joins[j].ValidAfter) })
}
