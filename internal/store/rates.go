package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/history"
	"github.com/mcreview/mcreview-backend/internal/types"
	"github.com/mcreview/mcreview-backend/internal/validation"
)

func rateHistoryPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Revisions.SubmitInfo.SubmittedContracts").
		Preload("Revisions.UnlockInfo").
		Preload("Revisions.RateDocuments").
		Preload("Revisions.SupportingDocuments").
		Preload("Revisions.ActuaryContacts").
		Preload("Revisions.SubmissionPackages.Submission.SubmittedContracts").
		Preload("Revisions.SubmissionPackages.Submission.SubmittedRates").
		Preload("Revisions.SubmissionPackages.ContractRevision.SubmitInfo").
		Preload("Revisions.SubmissionPackages.ContractRevision.ContractDocuments").
		Preload("Revisions.SubmissionPackages.ContractRevision.SupportingDocuments").
		Preload("Revisions.SubmissionPackages.ContractRevision.StateContacts").
		Preload("ReviewStatusActions").
		Preload("DraftContractJoins.Contract.Revisions.SubmitInfo").
		Preload("DraftContractJoins.Contract.Revisions.UnlockInfo").
		Preload("DraftContractJoins.Contract.Revisions.ContractDocuments").
		Preload("DraftContractJoins.Contract.Revisions.SupportingDocuments").
		Preload("DraftContractJoins.Contract.Revisions.StateContacts").
		Preload("DraftContractJoins.Contract.Revisions.RateRevisionJoins.RateRevision.SubmitInfo").
		Preload("DraftContractJoins.Contract.ReviewStatusActions")
}

// FindRateWithHistory fetches one rate's nested payload and reconstructs the
// full domain aggregate, including the draft contracts currently linking it.
func (s *Store) FindRateWithHistory(ctx context.Context, id uuid.UUID) (*domain.Rate, error) {
	const op = "store.FindRateWithHistory"

	var raw types.RateTable
	if err := rateHistoryPreloads(s.db.WithContext(ctx)).First(&raw, "id = ?", id).Error; err != nil {
		return nil, mapDBError(op, err)
	}
	return history.ParseRateWithHistory(&raw)
}

// FindAllRatesForDashboard lists a state's submitted rates in the CMS rate
// review shape. Unparseable rates are excluded and reported.
func (s *Store) FindAllRatesForDashboard(ctx context.Context, stateCode string) ([]*domain.Rate, []history.ParseFailure, error) {
	const op = "store.FindAllRatesForDashboard"

	var raws []*types.RateTable
	q := rateHistoryPreloads(s.db.WithContext(ctx)).
		Where("state_code = ?", stateCode).
		Where("EXISTS (SELECT 1 FROM rate_revision rr WHERE rr.rate_id = rate.id AND rr.submit_info_id IS NOT NULL)").
		Order("state_number ASC")
	if err := q.Find(&raws).Error; err != nil {
		return nil, nil, mapDBError(op, err)
	}

	parsed, failed := history.ParseRatesForDashboard(ctx, raws, s.log)
	return parsed, failed, nil
}

// InsertRateArgs creates a rate with its initial draft revision, linked to
// the contract that introduced it.
type InsertRateArgs struct {
	StateCode  string
	ContractID uuid.UUID
	FormData   domain.RateFormData
}

func (s *Store) InsertRate(ctx context.Context, args InsertRateArgs) (*domain.Rate, error) {
	const op = "store.InsertRate"

	if err := validation.RateFormData(args.FormData, validation.TierDraft, validation.Flags{}); err != nil {
		return nil, err
	}

	var rateID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract types.ContractTable
		if err := tx.Preload("DraftRateJoins").First(&contract, "id = ?", args.ContractID).Error; err != nil {
			return mapDBError(op, err)
		}

		stateNumber, err := nextStateRateCertNumber(tx, args.StateCode)
		if err != nil {
			return err
		}

		rate := types.RateTable{
			ID:          uuid.New(),
			StateCode:   args.StateCode,
			StateNumber: stateNumber,
		}
		if err := tx.Create(&rate).Error; err != nil {
			return mapDBError(op, err)
		}
		rateID = rate.ID

		draft := types.RateRevisionTable{
			ID:     uuid.New(),
			RateID: rate.ID,
		}
		applyRateFormData(&draft, args.FormData)
		if err := tx.Create(&draft).Error; err != nil {
			return mapDBError(op, err)
		}

		join := types.DraftRateJoinTable{
			ContractID:   contract.ID,
			RateID:       rate.ID,
			RatePosition: len(contract.DraftRateJoins),
		}
		if err := tx.Create(&join).Error; err != nil {
			return mapDBError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rate created", "rate_id", rateID, "state_code", args.StateCode, "contract_id", args.ContractID)
	return s.FindRateWithHistory(ctx, rateID)
}

// SubmitRateArgs submits an unlocked rate on its own, without resubmitting
// the contracts it is linked to. The prior revision's still-active links are
// superseded onto the new revision.
type SubmitRateArgs struct {
	RateID          uuid.UUID
	SubmittedBy     string
	SubmittedReason string
}

func (s *Store) SubmitRate(ctx context.Context, args SubmitRateArgs) (*domain.Rate, error) {
	const op = "store.SubmitRate"

	var rateID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var raw types.RateTable
		if err := rateHistoryPreloads(tx).First(&raw, "id = ?", args.RateID).Error; err != nil {
			return mapDBError(op, err)
		}
		rateID = raw.ID

		draft, previous := draftAndLatestRateRevision(&raw)
		if draft == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"rate "+raw.ID.String()+" has no draft revision to submit", nil)
		}
		if previous == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"rate "+raw.ID.String()+" has never been submitted with a contract; submit its parent contract instead", nil)
		}

		if err := validation.RateFormData(history.RateRevisionFormData(draft), validation.TierSubmit, validation.Flags{}); err != nil {
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

		if err := tx.Model(&types.RateRevisionTable{}).
			Where("id = ?", draft.ID).
			Update("submit_info_id", submitInfo.ID).Error; err != nil {
			return mapDBError(op, err)
		}

		// Every contract revision still linking the previous rate revision
		// picks up the new one; the history fold treats these as
		// RATE_SUBMISSION entries because ValidAfter matches the rate's own
		// submit time.
		contractRevIDs, err := contractRevisionsLinking(tx, op, previous.ID)
		if err != nil {
			return err
		}
		for position, contractRevID := range contractRevIDs {
			link := types.RateRevisionsOnContractRevisionTable{
				ContractRevisionID: contractRevID,
				RateRevisionID:     draft.ID,
				ValidAfter:         now,
			}
			if err := tx.Create(&link).Error; err != nil {
				return mapDBError(op, err)
			}
			pkg := types.SubmissionPackageTable{
				SubmissionID:       submitInfo.ID,
				ContractRevisionID: contractRevID,
				RateRevisionID:     draft.ID,
				RatePosition:       position,
			}
			if err := tx.Create(&pkg).Error; err != nil {
				return mapDBError(op, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rate submitted", "rate_id", rateID, "submitted_by", args.SubmittedBy)
	return s.FindRateWithHistory(ctx, rateID)
}

// UnlockRateArgs reopens a submitted rate for editing on its own.
type UnlockRateArgs struct {
	RateID         uuid.UUID
	UnlockedBy     string
	UnlockedReason string
}

func (s *Store) UnlockRate(ctx context.Context, args UnlockRateArgs) (*domain.Rate, error) {
	const op = "store.UnlockRate"

	var rateID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var raw types.RateTable
		if err := rateHistoryPreloads(tx).First(&raw, "id = ?", args.RateID).Error; err != nil {
			return mapDBError(op, err)
		}
		rateID = raw.ID

		draft, latest := draftAndLatestRateRevision(&raw)
		if draft != nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"rate "+raw.ID.String()+" already has a draft revision", nil)
		}
		if latest == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"rate "+raw.ID.String()+" has never been submitted", nil)
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
		return unlockRateRevision(tx, op, latest, unlockInfo)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rate unlocked", "rate_id", rateID, "unlocked_by", args.UnlockedBy)
	return s.FindRateWithHistory(ctx, rateID)
}

// UpdateDraftRate replaces the current draft's form data.
func (s *Store) UpdateDraftRate(ctx context.Context, rateID uuid.UUID, fd domain.RateFormData) (*domain.Rate, error) {
	const op = "store.UpdateDraftRate"

	if err := validation.RateFormData(fd, validation.TierDraft, validation.Flags{}); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var raw types.RateTable
		if err := rateHistoryPreloads(tx).First(&raw, "id = ?", rateID).Error; err != nil {
			return mapDBError(op, err)
		}
		draft, _ := draftAndLatestRateRevision(&raw)
		if draft == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"rate "+raw.ID.String()+" has no draft revision to update", nil)
		}

		if err := clearRateRevisionChildren(tx, op, draft.ID); err != nil {
			return err
		}

		updated := types.RateRevisionTable{ID: draft.ID, RateID: raw.ID, CreatedAt: draft.CreatedAt, UnlockInfoID: draft.UnlockInfoID}
		applyRateFormData(&updated, fd)
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&updated).Error; err != nil {
			return mapDBError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindRateWithHistory(ctx, rateID)
}

// LinkRateToContract attaches an already-submitted rate to a submitted
// contract mid-life, without resubmitting either side.
func (s *Store) LinkRateToContract(ctx context.Context, contractID, rateID uuid.UUID) (*domain.Contract, error) {
	return s.writeRateLink(ctx, "store.LinkRateToContract", contractID, rateID, false)
}

// UnlinkRateFromContract detaches a rate from a submitted contract mid-life.
func (s *Store) UnlinkRateFromContract(ctx context.Context, contractID, rateID uuid.UUID) (*domain.Contract, error) {
	return s.writeRateLink(ctx, "store.UnlinkRateFromContract", contractID, rateID, true)
}

func (s *Store) writeRateLink(ctx context.Context, op string, contractID, rateID uuid.UUID, removal bool) (*domain.Contract, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract types.ContractTable
		if err := tx.Preload("Revisions.SubmitInfo").First(&contract, "id = ?", contractID).Error; err != nil {
			return mapDBError(op, err)
		}
		contractRev := latestSubmittedContractRevision(&contract)
		if contractRev == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"contract "+contractID.String()+" has no submitted revision to link against", nil)
		}

		var rate types.RateTable
		if err := tx.Preload("Revisions.SubmitInfo").First(&rate, "id = ?", rateID).Error; err != nil {
			return mapDBError(op, err)
		}
		_, rateRev := draftAndLatestRateRevision(&rate)
		if rateRev == nil {
			return domain.NewError(domain.CodePreconditionFailed, op,
				"rate "+rateID.String()+" has no submitted revision to link", nil)
		}

		link := types.RateRevisionsOnContractRevisionTable{
			ContractRevisionID: contractRev.ID,
			RateRevisionID:     rateRev.ID,
			ValidAfter:         time.Now().UTC(),
			IsRemoval:          removal,
		}
		if err := tx.Create(&link).Error; err != nil {
			return mapDBError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rate link changed", "contract_id", contractID, "rate_id", rateID, "is_removal", removal)
	return s.FindContractWithHistory(ctx, contractID)
}

// unlockRateRevision clones a submitted revision's form data into a fresh
// draft carrying the given unlock info. Shared by contract-level cascade
// unlock and standalone rate unlock.
func unlockRateRevision(tx *gorm.DB, op string, latest *types.RateRevisionTable, unlockInfo types.UpdateInfoTable) error {
	var count int64
	if err := tx.Model(&types.RateRevisionTable{}).
		Where("rate_id = ? AND submit_info_id IS NULL", latest.RateID).
		Count(&count).Error; err != nil {
		return mapDBError(op, err)
	}
	if count > 0 {
		// Cascade unlock may reach a rate twice through two contracts.
		return nil
	}

	draft := types.RateRevisionTable{
		ID:           uuid.New(),
		RateID:       latest.RateID,
		UnlockInfoID: &unlockInfo.ID,
	}
	applyRateFormData(&draft, history.RateRevisionFormData(latest))
	if err := tx.Create(&draft).Error; err != nil {
		return mapDBError(op, err)
	}
	return nil
}

func clearRateRevisionChildren(tx *gorm.DB, op string, revisionID uuid.UUID) error {
	if err := tx.Where("rate_revision_id = ?", revisionID).Delete(&types.RateDocumentTable{}).Error; err != nil {
		return mapDBError(op, err)
	}
	if err := tx.Where("rate_revision_id = ?", revisionID).Delete(&types.RateSupportingDocumentTable{}).Error; err != nil {
		return mapDBError(op, err)
	}
	if err := tx.Where("rate_revision_id = ?", revisionID).Delete(&types.ActuaryContactTable{}).Error; err != nil {
		return mapDBError(op, err)
	}
	return nil
}

// draftAndLatestRateRevision splits a rate's revisions into the at-most-one
// draft and the most recently submitted revision.
func draftAndLatestRateRevision(raw *types.RateTable) (draft, latest *types.RateRevisionTable) {
	for i := range raw.Revisions {
		rev := &raw.Revisions[i]
		if rev.SubmitInfoID == nil {
			draft = rev
			continue
		}
		if latest == nil {
			latest = rev
			continue
		}
		if rev.SubmitInfo != nil && latest.SubmitInfo != nil && rev.SubmitInfo.UpdatedAt.After(latest.SubmitInfo.UpdatedAt) {
			latest = rev
		}
	}
	return draft, latest
}

// contractRevisionsLinking lists the contract revisions whose linkage
// history currently ends on the given rate revision.
func contractRevisionsLinking(tx *gorm.DB, op string, rateRevisionID uuid.UUID) ([]uuid.UUID, error) {
	var joins []types.RateRevisionsOnContractRevisionTable
	if err := tx.Where("rate_revision_id = ? AND is_removal = ?", rateRevisionID, false).
		Order("valid_after ASC").
		Find(&joins).Error; err != nil {
		return nil, mapDBError(op, err)
	}
	out := make([]uuid.UUID, 0, len(joins))
	seen := make(map[uuid.UUID]bool)
	for _, j := range joins {
		if seen[j.ContractRevisionID] {
			continue
		}
		seen[j.ContractRevisionID] = true
		out = append(out, j.ContractRevisionID)
	}
	return out, nil
}
